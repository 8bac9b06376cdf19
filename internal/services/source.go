package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/dustin/go-humanize"

	"dconn.dev/folio/internal/models"
)

// DefaultProjectsFile is the resource name the project list is fetched from
const DefaultProjectsFile = "projects.json"

// Fetcher loads the project list for one page render
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Project, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context) ([]models.Project, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context) ([]models.Project, error) {
	return f(ctx)
}

// StatusError reports a non-success response for the project resource
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("could not load projects from %s: status %d", e.URL, e.StatusCode)
}

// HTTPFetcher fetches the project list relative to a page URL
type HTTPFetcher struct {
	Client  *http.Client
	PageURL *url.URL
	Name    string // resource name, defaults to projects.json
}

// NewHTTPFetcher creates a fetcher resolving projects.json against pageURL
func NewHTTPFetcher(client *http.Client, pageURL *url.URL) *HTTPFetcher {
	return &HTTPFetcher{Client: client, PageURL: pageURL, Name: DefaultProjectsFile}
}

// URL returns the absolute resource URL
func (f *HTTPFetcher) URL() (*url.URL, error) {
	name := f.Name
	if name == "" {
		name = DefaultProjectsFile
	}
	ref, err := url.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("invalid projects resource %q: %w", name, err)
	}
	if f.PageURL == nil {
		return ref, nil
	}
	return f.PageURL.ResolveReference(ref), nil
}

// Fetch performs a single GET; there is no retry
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]models.Project, error) {
	u, err := f.URL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	return models.DecodeProjects(resp.Body)
}

// FileFetcher reads the project list from disk
type FileFetcher struct {
	Path string
}

// Fetch reads and parses the file
func (f *FileFetcher) Fetch(ctx context.Context) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	defer file.Close()

	counter := &countingReader{r: file}
	projects, err := models.DecodeProjects(counter)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded projects", "path", f.Path, "count", len(projects), "size", humanize.Bytes(counter.n))
	return projects, nil
}

type countingReader struct {
	r io.Reader
	n uint64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += uint64(n)
	return n, err
}
