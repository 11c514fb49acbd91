package dom

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is the target (or related target) of a pointer event.
type Element interface {
	// TagName returns the lower-case tag name, for example "a".
	TagName() string

	// Href returns the absolute URL the element links to, or "" when the
	// element has no navigable link.
	Href() string

	// Contains reports whether other is this element or one of its descendants.
	Contains(other Element) bool
}

// IsAnchor reports whether e is an <a> element.
func IsAnchor(e Element) bool {
	return e != nil && e.TagName() == atom.A.String()
}

// Node is an Element backed by a parsed HTML node.
type Node struct {
	node *html.Node
	base *url.URL
}

// HTML returns the underlying node.
func (n *Node) HTML() *html.Node {
	return n.node
}

// TagName implements Element.
func (n *Node) TagName() string {
	if n == nil || n.node == nil || n.node.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.node.Data)
}

// Href implements Element. Only anchors and areas carry links.
func (n *Node) Href() string {
	switch n.TagName() {
	case "a", "area":
	default:
		return ""
	}
	return resolveHref(n.base, Attr(n.node, "href"))
}

// Contains implements Element.
func (n *Node) Contains(other Element) bool {
	o, ok := other.(*Node)
	if !ok || n == nil || o == nil {
		return false
	}
	for cur := o.node; cur != nil; cur = cur.Parent {
		if cur == n.node {
			return true
		}
	}
	return false
}

// ID returns the id attribute.
func (n *Node) ID() string {
	return Attr(n.node, "id")
}

// Text returns the concatenated text content.
func (n *Node) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			sb.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.node)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Attr returns the value of attribute key, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// resolveHref resolves href against base. Pseudo-links and anything that
// does not end up as an absolute http(s) URL resolve to "".
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}
