// Package markup converts one XHTML/HTML resource into normalized plain
// text suitable for a fixed-width reading stream, and derives a chapter
// title when the markup offers one.
package markup

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// skipTags are elements whose subtrees carry no readable content.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
	"object":   true,
	"embed":    true,
	"svg":      true,
	"math":     true,
	"head":     true,
}

// paraTags are block elements separated from surrounding text by a blank
// line. lineTags start a new line without a paragraph break.
var paraTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true,
	"ul": true, "ol": true, "dl": true, "figure": true,
}

var lineTags = map[string]bool{
	"div": true, "li": true, "tr": true, "dt": true, "dd": true, "hr": true,
}

// cellTags are separated from their neighbours by a single space so table
// cells on one row do not run together.
var cellTags = map[string]bool{
	"td": true, "th": true,
}

// Text extracts normalized plain text from a markup resource: non-content
// subtrees are removed, whitespace runs collapse to single spaces, entity
// references are decoded by the parser, and any run of two or more block
// boundaries becomes exactly one blank line. The error is non-nil only
// when the markup cannot be tokenized at all; callers treat that as an
// empty chapter, not a failed load.
func Text(src []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return "", err
	}

	var w textWriter
	emit(doc, &w)
	return normalize(w.String()), nil
}

// textWriter accumulates text while tracking the trailing newline count so
// block boundaries never stack up.
type textWriter struct {
	b        strings.Builder
	newlines int // trailing newline count, 2 at most
}

func (w *textWriter) text(s string) {
	if s == "" {
		return
	}
	// Drop a leading space at the start of a line.
	if (w.newlines > 0 || w.b.Len() == 0) && s[0] == ' ' {
		s = s[1:]
		if s == "" {
			return
		}
	}
	w.b.WriteString(s)
	w.newlines = 0
}

// newline ensures the output ends with at least one newline.
func (w *textWriter) newline() {
	if w.b.Len() == 0 || w.newlines >= 1 {
		return
	}
	w.b.WriteByte('\n')
	w.newlines = 1
}

// blankline ensures the output ends with a full paragraph break.
func (w *textWriter) blankline() {
	if w.b.Len() == 0 {
		return
	}
	for w.newlines < 2 {
		w.b.WriteByte('\n')
		w.newlines++
	}
}

func (w *textWriter) String() string { return w.b.String() }

// emit walks the parse tree in document order writing text nodes and block
// boundaries.
func emit(n *html.Node, w *textWriter) {
	if n.Type == html.TextNode {
		w.text(collapseSpace(n.Data))
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}
	if n.Type == html.ElementNode {
		if skipTags[n.Data] {
			return
		}
		if n.Data == "br" {
			w.newline()
			return
		}
		switch {
		case paraTags[n.Data]:
			w.blankline()
		case lineTags[n.Data]:
			w.newline()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		emit(c, w)
	}

	if n.Type == html.ElementNode {
		switch {
		case paraTags[n.Data]:
			w.blankline()
		case lineTags[n.Data]:
			w.newline()
		case cellTags[n.Data]:
			w.text(" ")
		}
	}
}

// collapseSpace collapses runs of whitespace (including non-breaking
// spaces) to a single space. Edge whitespace is kept as one space so that
// adjacent inline elements stay separated.
func collapseSpace(s string) string {
	var b strings.Builder
	inSpace := false
	wrote := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		inSpace = false
		wrote = true
	}
	if !wrote {
		// A whitespace-only node still separates its neighbours.
		if inSpace {
			return " "
		}
		return ""
	}
	if inSpace {
		b.WriteByte(' ')
	}
	return b.String()
}

// normalize trims every line and collapses runs of blank lines into one,
// preserving single paragraph breaks while discarding formatting noise.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			blanks++
			continue
		}
		if blanks > 0 && len(out) > 0 {
			out = append(out, "")
		}
		blanks = 0
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}
