package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"dconn.dev/folio/internal/config"
	"dconn.dev/folio/internal/dom"
	"dconn.dev/folio/internal/models"
	"dconn.dev/folio/internal/render"
	"dconn.dev/folio/internal/services"
	"dconn.dev/folio/internal/theme"
	"dconn.dev/folio/internal/web"
)

const sampleJSON = `[
	{"name": "Alpha", "summary": "First", "slug": "alpha"},
	{"name": "Beta", "tagline": "Second", "slug": "beta", "pin": true, "status": "Live"}
]`

func fetcherOf(projects ...models.Project) services.Fetcher {
	return services.FetcherFunc(func(context.Context) ([]models.Project, error) {
		return projects, nil
	})
}

func TestBuildPage_ThemeAndGrid(t *testing.T) {
	store := theme.NewMemoryStore()
	require.NoError(t, store.Set(models.ThemeKey, "light"))

	doc, err := BuildPage(context.Background(), web.PageProjects, fetcherOf(
		models.Project{Name: "a", Slug: "a"},
		models.Project{Name: "b", Slug: "b", Pin: true},
	), store, nil)
	require.NoError(t, err)

	v, _ := dom.Attr(dom.ByTag(doc, "html"), theme.RootAttr)
	assert.Equal(t, "light", v)

	cards := dom.Children(dom.Query(doc, render.GridSelector))
	require.Len(t, cards, 2)
	assert.Equal(t, "b", dom.Text(dom.ByTag(cards[0], "h3")))
}

func TestBuildPage_IndexShowsPinnedOnly(t *testing.T) {
	doc, err := BuildPage(context.Background(), web.PageIndex, fetcherOf(
		models.Project{Name: "a", Slug: "a"},
		models.Project{Name: "b", Slug: "b", Pin: true},
	), theme.NewMemoryStore(), nil)
	require.NoError(t, err)

	cards := dom.Children(dom.Query(doc, render.GridSelector))
	require.Len(t, cards, 1)
	assert.Equal(t, "b", dom.Text(dom.ByTag(cards[0], "h3")))
}

func TestBuildPage_FetchFailure(t *testing.T) {
	failing := services.FetcherFunc(func(context.Context) ([]models.Project, error) {
		return nil, errors.New("offline")
	})

	doc, err := BuildPage(context.Background(), web.PageIndex, failing, theme.NewMemoryStore(), nil)
	require.NoError(t, err)

	assert.Equal(t, render.FallbackMessage, dom.Text(dom.Query(doc, render.GridSelector)))
	// theme still applies independently
	_, ok := dom.Attr(dom.ByTag(doc, "html"), theme.RootAttr)
	assert.False(t, ok)
	assert.Equal(t, "Light mode", dom.Text(dom.Query(doc, theme.ToggleSelector)))
}

func TestBuildDetailPage(t *testing.T) {
	p := &models.Project{
		Name:    "Folio",
		Summary: "Portfolio",
		Status:  "Active",
		Repo:    "https://github.com/dconn/folio",
		Details: "## Stack\n\n- Go\n- chi\n\n<script>alert(1)</script>",
	}

	doc, err := BuildDetailPage(p, theme.NewMemoryStore())
	require.NoError(t, err)

	detail := dom.Query(doc, DetailSelector)
	require.NotNil(t, detail)
	assert.Equal(t, "Folio", dom.Text(dom.ByTag(detail, "h1")))
	assert.Equal(t, "Active", dom.Text(dom.ByClass(detail, "status-label")))
	assert.Equal(t, "Stack", dom.Text(dom.ByTag(detail, "h2")))
	assert.Len(t, dom.FindAll(detail, func(n *html.Node) bool { return n.Data == "li" }), 2)
	assert.Nil(t, dom.ByTag(detail, "script"))

	links := dom.Children(dom.ByClass(detail, "card-actions"))
	require.Len(t, links, 1)
	assert.Equal(t, "View repo", dom.Text(links[0]))

	assert.Equal(t, "Folio | Dylan Connolly", dom.Text(dom.ByTag(doc, "title")))
}

func TestBuildDetailPage_NotFound(t *testing.T) {
	doc, err := BuildDetailPage(nil, theme.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, "Project not found.", dom.Text(dom.Query(doc, DetailSelector)))
}

func TestBuilder_Build(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "projects.json"), []byte(sampleJSON), 0644))

	cfg := config.Default()
	cfg.DataPath = dataDir

	store := theme.NewMemoryStore()
	require.NoError(t, store.Set(models.ThemeKey, "light"))

	out := t.TempDir()
	files, err := NewBuilder(cfg, store, nil).Build(context.Background(), out)
	require.NoError(t, err)
	assert.Len(t, files, 4)

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `data-theme="light"`)
	assert.NotContains(t, string(index), `action="/theme"`)
	assert.NotContains(t, string(index), "theme-toggle")
	assert.Contains(t, string(index), "<h3>Beta</h3>")
	assert.NotContains(t, string(index), "<h3>Alpha</h3>")

	all, err := os.ReadFile(filepath.Join(out, "projects.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(all), `action="/theme"`)
	assert.Less(t, strings.Index(string(all), "Beta"), strings.Index(string(all), "Alpha"))

	copied, err := os.ReadFile(filepath.Join(out, "projects.json"))
	require.NoError(t, err)
	assert.Equal(t, sampleJSON, string(copied))

	_, err = os.Stat(filepath.Join(out, "static", "style.css"))
	assert.NoError(t, err)
}

func TestBuilder_MalformedDataRendersFallback(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "projects.json"), []byte("{oops"), 0644))

	cfg := config.Default()
	cfg.DataPath = dataDir

	out := t.TempDir()
	_, err := NewBuilder(cfg, theme.NewMemoryStore(), nil).Build(context.Background(), out)
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), render.FallbackMessage)
}

func TestBuilder_MissingData(t *testing.T) {
	cfg := config.Default()
	cfg.DataPath = t.TempDir()

	_, err := NewBuilder(cfg, theme.NewMemoryStore(), nil).Build(context.Background(), t.TempDir())
	assert.Error(t, err)
}
