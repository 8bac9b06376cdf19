// Package site assembles complete pages: it parses the page markup, applies
// the visitor's theme and renders project content into it.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"dconn.dev/folio/internal/dom"
	"dconn.dev/folio/internal/models"
	"dconn.dev/folio/internal/render"
	"dconn.dev/folio/internal/services"
	"dconn.dev/folio/internal/theme"
	"dconn.dev/folio/internal/web"
)

// DetailSelector locates the container the detail page renders into
const DetailSelector = "#project-detail"

const titleSuffix = " | Dylan Connolly"

// markdown renders project details. Raw HTML in the source is not passed through.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// BuildPage produces a list page: theme first, then the project grid.
// The theme controller and the renderer work on the same tree but share no state.
func BuildPage(ctx context.Context, name string, fetcher services.Fetcher, store theme.Store, logger *slog.Logger) (*html.Node, error) {
	doc, err := web.Page(name)
	if err != nil {
		return nil, err
	}

	theme.NewController(doc, store).Init()
	render.NewRenderer(doc, fetcher, logger).Load(ctx)

	return doc, nil
}

// BuildDetailPage produces the detail page for p. A nil project leaves the
// page's not-found message in place.
func BuildDetailPage(p *models.Project, store theme.Store) (*html.Node, error) {
	doc, err := web.Page(web.PageDetail)
	if err != nil {
		return nil, err
	}

	theme.NewController(doc, store).Init()

	container := dom.Query(doc, DetailSelector)
	if p == nil || container == nil {
		return doc, nil
	}

	if title := dom.ByTag(doc, "title"); title != nil {
		dom.SetText(title, string(p.Name)+titleSuffix)
	}

	children, err := detailNodes(p)
	if err != nil {
		return nil, err
	}
	dom.ReplaceChildren(container, children...)

	return doc, nil
}

func detailNodes(p *models.Project) ([]*html.Node, error) {
	nodes := []*html.Node{
		dom.TextElement("h1", "", string(p.Name)),
		dom.TextElement("p", "lead", p.Description()),
	}

	if p.Status != "" {
		status := dom.Element("div", "card-status")
		status.AppendChild(dom.TextElement("span", "status-label", string(p.Status)))
		nodes = append(nodes, status)
	}

	if p.Details != "" {
		body, err := renderMarkdown(string(p.Details))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, body)
	}

	links := dom.Element("div", "card-actions")
	if p.Website != "" {
		links.AppendChild(dom.Link("card-button", string(p.Website), "Visit site"))
	}
	if p.Repo != "" {
		links.AppendChild(dom.Link("card-button", string(p.Repo), "View repo"))
	}
	if links.FirstChild != nil {
		nodes = append(nodes, links)
	}

	return nodes, nil
}

// renderMarkdown converts markdown into a detached <div class="details"> subtree
func renderMarkdown(src string) (*html.Node, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("failed to render details: %w", err)
	}

	wrapper := dom.Element("div", "details")
	parsed, err := html.ParseFragment(&buf, &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered details: %w", err)
	}
	for _, n := range parsed {
		wrapper.AppendChild(n)
	}
	return wrapper, nil
}
