package popup

import (
	"strings"

	"golang.org/x/net/html"
)

// Rendering is what a mounted popup tells the user.
type Rendering struct {
	Original string
	Resolved string
	Verdict  string
}

// Inspect reads the text fields back out of a popup node built by Show.
// Fields that are missing come back empty.
func Inspect(n *html.Node) Rendering {
	return Rendering{
		Original: textOfClass(n, "scameye-original"),
		Resolved: textOfClass(n, "scameye-resolved"),
		Verdict:  textOfClass(n, "scameye-verdict"),
	}
}

func textOfClass(n *html.Node, class string) string {
	if n == nil {
		return ""
	}
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "class" && a.Val == class {
				var sb strings.Builder
				collectText(n, &sb)
				return strings.TrimSpace(sb.String())
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s := textOfClass(c, class); s != "" {
			return s
		}
	}
	return ""
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
