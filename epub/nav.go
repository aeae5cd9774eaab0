package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"golang.org/x/net/html"
)

// ncxDocument is an EPUB 2 NCX navigation document.
type ncxDocument struct {
	XMLName xml.Name  `xml:"ncx"`
	Title   string    `xml:"docTitle>text"`
	NavMap  ncxNavMap `xml:"navMap"`
}

type ncxNavMap struct {
	NavPoints []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	ID       string        `xml:"id,attr"`
	Label    string        `xml:"navLabel>text"`
	Content  ncxContent    `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

// parseNavigation builds the raw outline tree from the EPUB 3 nav document
// when one is declared, falling back to the EPUB 2 NCX. An empty tree means
// the archive carries no usable navigation; synthesizing an outline from
// the spine is the document layer's job.
func (r *Reader) parseNavigation(zr *zip.Reader) []OutlineNode {
	if navItem := r.findNavDocument(); navItem != nil {
		content, err := r.readFile(zr, r.resolveHref(navItem.Href))
		if err == nil {
			if nodes := parseNavXHTML(content); len(nodes) > 0 {
				return nodes
			}
		}
	}

	if ncxItem := r.findNCX(); ncxItem != nil {
		content, err := r.readFile(zr, r.resolveHref(ncxItem.Href))
		if err == nil {
			if nodes := parseNCX(content); len(nodes) > 0 {
				return nodes
			}
		}
	}

	return nil
}

// findNavDocument finds the EPUB 3 nav document in the manifest.
func (r *Reader) findNavDocument() *ManifestItem {
	for _, item := range r.pkg.Manifest {
		for _, prop := range item.Properties {
			if prop == "nav" {
				return &item
			}
		}
	}
	return nil
}

// findNCX finds the NCX document in the manifest.
func (r *Reader) findNCX() *ManifestItem {
	for _, item := range r.pkg.Manifest {
		if item.MediaType == "application/x-dtbncx+xml" {
			return &item
		}
	}
	return nil
}

// parseNavXHTML parses an EPUB 3 nav document: the <ol> under the <nav>
// element typed "toc".
func parseNavXHTML(content []byte) []OutlineNode {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil
	}

	nav := findTOCNav(doc)
	if nav == nil {
		return nil
	}

	ol := findChildElement(nav, "ol")
	if ol == nil {
		return nil
	}
	return parseOLEntries(ol)
}

// findTOCNav locates the <nav> element marked as the table of contents.
func findTOCNav(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "nav" {
		for _, attr := range n.Attr {
			if (attr.Key == "epub:type" || attr.Key == "type") && strings.Contains(attr.Val, "toc") {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTOCNav(c); found != nil {
			return found
		}
	}
	return nil
}

// findChildElement does a depth-first search below n for the named element.
func findChildElement(n *html.Node, name string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			return c
		}
		if found := findChildElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// parseOLEntries converts the <li> children of an <ol> into outline nodes.
func parseOLEntries(ol *html.Node) []OutlineNode {
	var nodes []OutlineNode
	for c := ol.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			node := parseLIEntry(c)
			if node.Label != "" || node.Ref != "" {
				nodes = append(nodes, node)
			}
		}
	}
	return nodes
}

// parseLIEntry converts one <li>: an <a> or <span> label plus an optional
// nested <ol> of children.
func parseLIEntry(li *html.Node) OutlineNode {
	node := OutlineNode{}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "a":
			node.Label = nodeText(c)
			for _, attr := range c.Attr {
				if attr.Key == "href" {
					node.Ref = attr.Val
				}
			}
		case "span":
			if node.Label == "" {
				node.Label = nodeText(c)
			}
		case "ol":
			node.Children = parseOLEntries(c)
		}
	}
	return node
}

// parseNCX parses an EPUB 2 NCX document into outline nodes.
func parseNCX(content []byte) []OutlineNode {
	var ncx ncxDocument
	if err := xml.Unmarshal(content, &ncx); err != nil {
		return nil
	}
	return convertNavPoints(ncx.NavMap.NavPoints)
}

func convertNavPoints(points []ncxNavPoint) []OutlineNode {
	nodes := make([]OutlineNode, 0, len(points))
	for _, p := range points {
		nodes = append(nodes, OutlineNode{
			Label:    strings.TrimSpace(p.Label),
			Ref:      p.Content.Src,
			Children: convertNavPoints(p.Children),
		})
	}
	return nodes
}

// nodeText extracts the trimmed text content of a node subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
