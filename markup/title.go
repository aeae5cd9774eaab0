package markup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// headingOrder lists heading elements most-prominent first.
var headingOrder = [...]string{"h1", "h2", "h3", "h4", "h5", "h6"}

// titleMarkers are class/id/role substrings that indicate a chapter
// heading when no structural heading exists.
var titleMarkers = [...]string{"title", "chapter", "heading"}

// Title derives a human-readable section title from a markup resource. It
// scans, in priority order: heading elements (h1 before h2, and so on),
// the document title element, then elements whose class, id, or role marks
// them as a title or chapter heading. Returns "" when nothing non-empty is
// found; callers fall back to a generated chapter label.
func Title(src []byte) string {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return ""
	}

	for _, tag := range headingOrder {
		if n := findTag(doc, tag); n != nil {
			if text := elementText(n); text != "" {
				return text
			}
		}
	}

	if n := findTag(doc, "title"); n != nil {
		if text := elementText(n); text != "" {
			return text
		}
	}

	if n := findTitleMarked(doc); n != nil {
		if text := elementText(n); text != "" {
			return text
		}
	}

	return ""
}

// findTag returns the first element with the given tag name in document
// order.
func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findTitleMarked returns the first element whose class, id, or role
// attribute contains a title marker.
func findTitleMarked(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && !skipTags[n.Data] {
		for _, attr := range n.Attr {
			switch attr.Key {
			case "class", "id", "role":
				val := strings.ToLower(attr.Val)
				for _, marker := range titleMarkers {
					if strings.Contains(val, marker) {
						return n
					}
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTitleMarked(c); found != nil {
			return found
		}
	}
	return nil
}

// elementText is the trimmed, space-collapsed text of one element subtree.
func elementText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(collapseSpace(b.String()))
}
