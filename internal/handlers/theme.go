package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"dconn.dev/folio/internal/theme"
	"dconn.dev/folio/internal/web"
)

// ThemeHandler handles the theme toggle endpoint
type ThemeHandler struct{}

// NewThemeHandler creates a new ThemeHandler
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// Toggle handles POST /theme. It flips the theme the referring page was
// displayed with, persists it as a cookie and sends the visitor back.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	back := returnPath(r)

	// The toggle acts on the page as the visitor saw it, rebuilt from the cookie
	doc, err := web.Page(pageFor(back))
	if err != nil {
		slog.Error("failed to load page for theme toggle", "error", err)
		respondError(w, http.StatusInternalServerError, "theme unavailable")
		return
	}

	c := theme.NewController(doc, theme.NewCookieStore(w, r))
	c.Init()
	next, err := c.Toggle()
	if err != nil {
		slog.Warn("failed to persist theme", "error", err)
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		respondJSON(w, http.StatusOK, map[string]string{"theme": string(next)})
		return
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

// returnPath is the same-site path from the Referer header, or "/"
func returnPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || r.Referer() == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	return ref.RequestURI()
}

// pageFor maps a return path onto the embedded page it shows
func pageFor(p string) string {
	u, err := url.Parse(p)
	if err != nil {
		return web.PageIndex
	}
	switch name := path.Base(u.Path); name {
	case web.PageProjects, web.PageDetail:
		return name
	default:
		return web.PageIndex
	}
}
