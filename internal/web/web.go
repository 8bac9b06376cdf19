// Package web holds the embedded page markup and stylesheet.
package web

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"golang.org/x/net/html"

	"dconn.dev/folio/internal/config"
	"dconn.dev/folio/internal/dom"
)

//go:embed pages/*.html pages/style.css.tmpl
var pages embed.FS

// Page names served by the site
const (
	PageIndex    = "index.html"
	PageProjects = "projects.html"
	PageDetail   = "project.html"
)

// ListPages are the pages carrying a project grid
var ListPages = []string{PageIndex, PageProjects}

var stylesheet = template.Must(template.ParseFS(pages, "pages/style.css.tmpl"))

// Page parses a fresh copy of the named page
func Page(name string) (*html.Node, error) {
	f, err := pages.Open("pages/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown page %s: %w", name, err)
	}
	defer f.Close()

	return dom.Parse(f)
}

// WriteStylesheet renders the stylesheet with the configured palettes
func WriteStylesheet(w io.Writer, theme config.Theme) error {
	if err := stylesheet.Execute(w, theme); err != nil {
		return fmt.Errorf("failed to render stylesheet: %w", err)
	}
	return nil
}
