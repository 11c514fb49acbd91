package dom

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoBody is returned when a document has no <body> to mount into.
var ErrNoBody = errors.New("document has no body")

// Document is a parsed page. Its mutating methods are safe for concurrent use.
type Document struct {
	mu    sync.Mutex
	root  *html.Node
	body  *html.Node
	base  *url.URL
	nodes map[*html.Node]*Node
}

// Parse reads an HTML page. baseURL resolves relative links and may be
// empty, in which case relative links are not navigable.
func Parse(r io.Reader, baseURL string) (*Document, error) {
	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
		}
		base = u
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	d := &Document{
		root:  root,
		base:  base,
		nodes: make(map[*html.Node]*Node),
	}
	d.body = findFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})

	// A <base href> in the page overrides the location.
	if b := findFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Base && Attr(n, "href") != ""
	}); b != nil {
		if u, err := url.Parse(Attr(b, "href")); err == nil {
			if d.base != nil {
				u = d.base.ResolveReference(u)
			}
			d.base = u
		}
	}
	return d, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(page, baseURL string) (*Document, error) {
	return Parse(strings.NewReader(page), baseURL)
}

// Element returns the Element wrapping n. The same *Node is returned for
// the same html node, so Elements can be compared and used as map keys.
func (d *Document) Element(n *html.Node) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elementLocked(n)
}

func (d *Document) elementLocked(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	if e, ok := d.nodes[n]; ok {
		return e
	}
	e := &Node{node: n, base: d.base}
	d.nodes[n] = e
	return e
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Node {
	return d.Element(d.body)
}

// Anchors returns every <a> element in document order.
func (d *Document) Anchors() []*Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	var anchors []*Node
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			anchors = append(anchors, d.elementLocked(n))
		}
	})
	return anchors
}

// Append mounts n as the last child of <body>.
func (d *Document) Append(n *html.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.body == nil {
		return ErrNoBody
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	d.body.AppendChild(n)
	return nil
}

// Remove detaches n from wherever it is mounted. Detached nodes are ignored.
func (d *Document) Remove(n *html.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// FindByID returns the first element with the given id, or nil.
func (d *Document) FindByID(id string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	})
	return d.elementLocked(n)
}

// CountByID returns how many elements carry the given id.
func (d *Document) CountByID(id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && Attr(n, "id") == id {
			count++
		}
	})
	return count
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}
