// Package render materialises the project list into card elements inside a
// page's project grid.
package render

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/net/html"

	"dconn.dev/folio/internal/dom"
	"dconn.dev/folio/internal/models"
	"dconn.dev/folio/internal/services"
)

const (
	// GridSelector locates the container cards are rendered into
	GridSelector = "#project-grid"

	// FilterPinned is the data-filter value that restricts the grid to pinned projects
	FilterPinned = "pinned"

	// FallbackMessage replaces the grid when projects cannot be loaded
	FallbackMessage = "Projects are loading. If you see this for long, refresh."

	// DetailPage is the page full project details are served from
	DetailPage = "project.html"
)

// Renderer fills one page's project grid
type Renderer struct {
	container *html.Node
	fetcher   services.Fetcher
	logger    *slog.Logger
}

// NewRenderer binds a renderer to the grid in doc. A page without a grid
// yields a renderer whose operations do nothing.
func NewRenderer(doc *html.Node, fetcher services.Fetcher, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		container: dom.Query(doc, GridSelector),
		fetcher:   fetcher,
		logger:    logger,
	}
}

// Container returns the grid element, or nil if the page has none
func (r *Renderer) Container() *html.Node {
	return r.container
}

// Load fetches the project list once and renders it. Any fetch, status or
// parse failure replaces the grid with the fallback message instead.
func (r *Renderer) Load(ctx context.Context) {
	if r.container == nil {
		return
	}

	projects, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.logger.Warn("project load failed", "error", err)
		dom.ReplaceChildren(r.container, Fallback())
		return
	}

	r.Render(projects)
}

// Render replaces the grid contents with one card per project, honouring the
// grid's data-filter mode
func (r *Renderer) Render(projects []models.Project) {
	if r.container == nil {
		return
	}

	arranged := Arrange(projects, dom.Data(r.container, "filter"))

	dom.ClearChildren(r.container)
	for _, p := range arranged {
		r.container.AppendChild(BuildCard(p))
	}
}

// Arrange applies the filter mode and moves pinned projects ahead of the
// rest. Order within the pinned and unpinned groups is preserved.
func Arrange(projects []models.Project, mode string) []models.Project {
	pinned := make([]models.Project, 0, len(projects))
	var rest []models.Project

	for _, p := range projects {
		switch {
		case p.Pinned():
			pinned = append(pinned, p)
		case mode != FilterPinned:
			rest = append(rest, p)
		}
	}

	return append(pinned, rest...)
}

// BuildCard builds the card element for a project. All project text is
// inserted as literal text nodes.
func BuildCard(p models.Project) *html.Node {
	card := dom.Element("article", "card")

	card.AppendChild(dom.TextElement("h3", "", string(p.Name)))
	card.AppendChild(dom.TextElement("p", "", p.Description()))

	if p.Status != "" {
		status := dom.Element("div", "card-status")
		status.AppendChild(dom.TextElement("span", "status-label", string(p.Status)))
		card.AppendChild(status)
	}

	card.AppendChild(Actions(p))
	return card
}

// Actions builds the link row of a card: site, repo, then details
func Actions(p models.Project) *html.Node {
	actions := dom.Element("div", "card-actions")

	if p.Website != "" {
		actions.AppendChild(dom.Link("card-button", string(p.Website), "Visit site"))
	}
	if p.Repo != "" {
		actions.AppendChild(dom.Link("card-button", string(p.Repo), "View repo"))
	}
	actions.AppendChild(dom.Link("card-button", DetailHref(string(p.Slug)), "Full details"))

	return actions
}

// DetailHref returns the relative detail page link for slug, percent-encoded
func DetailHref(slug string) string {
	return DetailPage + "?" + url.Values{"project": {slug}}.Encode()
}

// Fallback returns the advisory shown when projects cannot be loaded
func Fallback() *html.Node {
	return dom.TextElement("p", "lead", FallbackMessage)
}
