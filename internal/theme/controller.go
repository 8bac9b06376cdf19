// Package theme tracks the light/dark presentation mode of a page and
// persists the visitor's choice.
package theme

import (
	"strconv"

	"golang.org/x/net/html"

	"dconn.dev/folio/internal/dom"
	"dconn.dev/folio/internal/models"
)

const (
	// ToggleSelector locates the control that switches themes
	ToggleSelector = ".theme-toggle"

	// RootAttr is the attribute on the page root that external styling keys off
	RootAttr = "data-theme"
)

// Controller reflects a theme onto one page and handles its toggle
type Controller struct {
	root   *html.Node
	toggle *html.Node
	store  Store
}

// NewController binds a controller to doc's root element and theme toggle
func NewController(doc *html.Node, store Store) *Controller {
	return &Controller{
		root:   dom.ByTag(doc, "html"),
		toggle: dom.Query(doc, ToggleSelector),
		store:  store,
	}
}

// Wired reports whether the page has a toggle control to act on
func (c *Controller) Wired() bool {
	return c.toggle != nil
}

// Init applies the persisted theme, defaulting to dark
func (c *Controller) Init() models.Theme {
	t := models.DefaultTheme
	if v, ok := c.store.Get(models.ThemeKey); ok {
		t = models.ParseTheme(v)
	}
	c.Apply(t)
	return t
}

// Apply sets the root attribute for light mode or clears it for dark, and
// relabels the toggle to offer the other mode
func (c *Controller) Apply(t models.Theme) {
	if c.root != nil {
		if t == models.ThemeLight {
			dom.SetAttr(c.root, RootAttr, string(models.ThemeLight))
		} else {
			dom.RemoveAttr(c.root, RootAttr)
		}
	}

	if c.toggle != nil {
		dom.SetText(c.toggle, t.Opposite().Label())
		dom.SetAttr(c.toggle, "aria-pressed", strconv.FormatBool(t == models.ThemeLight))
	}
}

// Current returns the theme the page is displaying
func (c *Controller) Current() models.Theme {
	if c.root == nil {
		return models.DefaultTheme
	}
	v, _ := dom.Attr(c.root, RootAttr)
	return models.ParseTheme(v)
}

// Toggle switches to the opposite of the displayed theme, persists and applies it.
// The new theme is applied even when persisting fails.
func (c *Controller) Toggle() (models.Theme, error) {
	if !c.Wired() {
		return c.Current(), nil
	}

	next := c.Current().Opposite()
	err := c.store.Set(models.ThemeKey, string(next))
	c.Apply(next)
	return next, err
}
