package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dconn.dev/folio/internal/models"
)

const sampleJSON = `[
	{"name": "Alpha", "slug": "alpha"},
	{"name": "Beta", "slug": "beta", "pin": true}
]`

func TestHTTPFetcher_ResolvesRelativeToPage(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	page, err := url.Parse(srv.URL + "/work/index.html")
	require.NoError(t, err)

	projects, err := NewHTTPFetcher(srv.Client(), page).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/work/projects.json", gotPath)
	require.Len(t, projects, 2)
	assert.Equal(t, models.Text("Beta"), projects[1].Name)
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	page, _ := url.Parse(srv.URL + "/")
	_, err := NewHTTPFetcher(srv.Client(), page).Fetch(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestHTTPFetcher_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	page, _ := url.Parse(srv.URL + "/")
	_, err := NewHTTPFetcher(srv.Client(), page).Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	page, _ := url.Parse(srv.URL + "/")
	srv.Close()

	_, err := NewHTTPFetcher(nil, page).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	projects, err := (&FileFetcher{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	_, err = (&FileFetcher{Path: filepath.Join(dir, "missing.json")}).Fetch(context.Background())
	assert.Error(t, err)
}

func TestProjectService_GetBySlug(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	svc := NewProjectService(&FileFetcher{Path: path})
	require.NoError(t, svc.Reload(context.Background()))

	p, err := svc.GetBySlug("beta")
	require.NoError(t, err)
	assert.True(t, p.Pinned())

	_, err = svc.GetBySlug("gamma")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Len(t, svc.GetAll(), 2)
}

func TestProjectService_ReloadKeepsPreviousOnFailure(t *testing.T) {
	calls := 0
	svc := NewProjectService(FetcherFunc(func(ctx context.Context) ([]models.Project, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("boom")
		}
		return []models.Project{{Name: "Only", Slug: "only"}}, nil
	}))

	require.NoError(t, svc.Reload(context.Background()))
	assert.Error(t, svc.Reload(context.Background()))

	all := svc.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, models.Text("Only"), all[0].Name)
}
