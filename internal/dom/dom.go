// Package dom is a thin layer of browser-style helpers over golang.org/x/net/html
// node trees: lookup by id or class, attribute access, child replacement and
// element construction with literal text content.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a full HTML document
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// ParseString parses a full HTML document held in a string
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Render serialises a node and its descendants
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderString serialises a node to a string
func RenderString(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Element creates a detached element with the given tag and class
func Element(tag, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if class != "" {
		SetAttr(n, "class", class)
	}
	return n
}

// TextElement creates an element whose only child is a literal text node.
// The text is never interpreted as markup.
func TextElement(tag, class, text string) *html.Node {
	n := Element(tag, class)
	SetText(n, text)
	return n
}

// Link creates an anchor with a literal label
func Link(class, href, label string) *html.Node {
	a := TextElement("a", class, label)
	SetAttr(a, "href", href)
	return a
}

// SetText replaces all children of n with a single text node
func SetText(n *html.Node, text string) {
	ClearChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text content of n
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// ClearChildren detaches every child of n
func ClearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// ReplaceChildren clears n and appends the given nodes in order
func ReplaceChildren(n *html.Node, children ...*html.Node) {
	ClearChildren(n)
	for _, c := range children {
		n.AppendChild(c)
	}
}

// Children returns the element children of n
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of an attribute and whether it is present
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// Data returns a data-* attribute, named without the prefix (like element.dataset)
func Data(n *html.Node, name string) string {
	v, _ := Attr(n, "data-"+name)
	return v
}

// HasClass reports whether the class attribute contains class
func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns the first element in document order matching fn, or nil
func Find(root *html.Node, fn func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && fn(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, fn); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element matching fn in document order
func FindAll(root *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && fn(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// ByID finds an element by id
func ByID(root *html.Node, id string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// ByClass finds the first element carrying class
func ByClass(root *html.Node, class string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		return HasClass(n, class)
	})
}

// ByTag finds the first element with the given tag name
func ByTag(root *html.Node, tag string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		return n.Data == tag
	})
}

// Query returns the first element matching a CSS selector, or nil when
// nothing matches or the selector does not parse
func Query(root *html.Node, selector string) *html.Node {
	sel, err := cascadia.Compile(selector)
	if err != nil || root == nil {
		return nil
	}
	return sel.MatchFirst(root)
}

// QueryAll returns every element matching a CSS selector in document order
func QueryAll(root *html.Node, selector string) []*html.Node {
	sel, err := cascadia.Compile(selector)
	if err != nil || root == nil {
		return nil
	}
	return sel.MatchAll(root)
}

// Remove detaches n from its parent
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
