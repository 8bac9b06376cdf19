package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"dconn.dev/folio/internal/config"
	"dconn.dev/folio/internal/dom"
	"dconn.dev/folio/internal/models"
	"dconn.dev/folio/internal/services"
	"dconn.dev/folio/internal/site"
	"dconn.dev/folio/internal/theme"
)

// FetcherFactory returns the project fetcher for one page request
type FetcherFactory func(r *http.Request) services.Fetcher

// PageFetcher builds the factory selected by cfg.ProjectsSource
func PageFetcher(cfg *config.Config) FetcherFactory {
	fileFetcher := func() FetcherFactory {
		fetcher := &services.FileFetcher{Path: cfg.ProjectsPath()}
		return func(*http.Request) services.Fetcher { return fetcher }
	}
	if cfg.ProjectsSource == config.SourceFile {
		return fileFetcher()
	}

	base, err := cfg.SiteBase()
	if err != nil {
		slog.Error("no usable site URL, reading projects from disk", "error", err)
		return fileFetcher()
	}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	return func(r *http.Request) services.Fetcher {
		f := services.NewHTTPFetcher(client, PageURL(base, r))
		f.Name = cfg.ProjectsFile
		return f
	}
}

// PageURL places the requested path and query under the trusted site base.
// The request's Host header is ignored.
func PageURL(base *url.URL, r *http.Request) *url.URL {
	return &url.URL{
		Scheme:   base.Scheme,
		Host:     base.Host,
		Path:     strings.TrimSuffix(base.Path, "/") + r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}

// PageHandler serves the rendered HTML pages
type PageHandler struct {
	fetchers       FetcherFactory
	projectService *services.ProjectService
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(fetchers FetcherFactory, ps *services.ProjectService) *PageHandler {
	return &PageHandler{fetchers: fetchers, projectService: ps}
}

// ListPage returns a handler for a page carrying the project grid
func (h *PageHandler) ListPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := theme.NewCookieStore(w, r)
		logger := slog.Default().With("page", name)

		doc, err := site.BuildPage(r.Context(), name, h.fetchers(r), store, logger)
		if err != nil {
			slog.Error("failed to build page", "page", name, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		respondHTML(w, http.StatusOK, doc)
	}
}

// DetailPage handles GET /project.html?project=<slug>
func (h *PageHandler) DetailPage(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("project")

	status := http.StatusOK
	var project *models.Project
	p, err := h.projectService.GetBySlug(slug)
	switch {
	case err == nil:
		project = p
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	default:
		slog.Error("failed to look up project", "slug", slug, "error", err)
		status = http.StatusInternalServerError
	}

	doc, err := site.BuildDetailPage(project, theme.NewCookieStore(w, r))
	if err != nil {
		slog.Error("failed to build detail page", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondHTML(w, status, doc)
}

// respondHTML serialises a document
func respondHTML(w http.ResponseWriter, status int, doc *html.Node) {
	var buf bytes.Buffer
	if err := dom.Render(&buf, doc); err != nil {
		slog.Error("failed to render HTML", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
