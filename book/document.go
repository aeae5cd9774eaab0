// Package book builds a readable Document from an EPUB archive: ordered
// chapters of plain text, a flat outline, fixed-size pages, bounds-checked
// navigation, and in-document search.
package book

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jpl-au/quarto/epub"
	"github.com/jpl-au/quarto/markup"
)

var (
	// ErrNoChapters indicates no chapter survived extraction; the archive
	// is unreadable as a book.
	ErrNoChapters = errors.New("book: no readable chapters in archive")

	// ErrPageGeometry indicates a pagination request below the minimum
	// supported page size (width 1, height 3).
	ErrPageGeometry = errors.New("book: page geometry below minimum")
)

// Chapter is one reading unit extracted from a content document. Chapter
// order is the document's fixed reading order.
type Chapter struct {
	Title   string
	ID      string // stable identifier: the manifest href, unique per document
	Content string // normalized plain text

	pages []string
	page  int
}

// Document owns the ordered chapters extracted from one archive. It is
// immutable after load except for each chapter's pages (replaced wholesale
// on re-pagination) and page pointer.
type Document struct {
	Title    string
	Author   string
	Path     string
	Chapters []*Chapter
	Outline  []OutlineEntry
}

// Option configures a Load call.
type Option func(*loader)

type loader struct {
	log *logrus.Logger
}

// WithLogger sets the logger used for per-resource load diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}

// Load opens an EPUB archive and builds the Document: resources are
// converted to plain text in spine order, whitespace-only chapters are
// dropped, and the outline is resolved against the surviving chapters.
// Per-resource failures are logged and isolated; only an unreadable
// archive or zero surviving chapters fails the load.
func Load(path string, opts ...Option) (*Document, error) {
	l := &loader{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(l)
	}

	r, err := epub.Open(path, epub.WithLogger(l.log))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	defer r.Close()

	chapters := make([]*Chapter, 0, len(r.Resources()))
	for _, res := range r.Resources() {
		text, err := markup.Text(res.Body)
		if err != nil {
			// Malformed markup yields an empty chapter, not a failed load.
			l.log.WithFields(logrus.Fields{"href": res.Href, "error": err}).Warn("malformed markup in resource")
			text = ""
		} else if strings.TrimSpace(text) == "" {
			continue
		}

		title := markup.Title(res.Body)
		if title == "" {
			title = fmt.Sprintf("Chapter %d", len(chapters)+1)
		}

		chapters = append(chapters, &Chapter{
			Title:   title,
			ID:      res.Href,
			Content: text,
			pages:   []string{""},
		})
	}

	if len(chapters) == 0 {
		return nil, ErrNoChapters
	}

	meta := r.Metadata()
	doc := &Document{
		Title:    meta.Title,
		Author:   meta.Author,
		Path:     path,
		Chapters: chapters,
	}
	doc.Outline = buildOutline(r.Outline(), chapters)
	return doc, nil
}

// Chapter returns the chapter at index i, or nil when out of range.
func (d *Document) Chapter(i int) *Chapter {
	if i < 0 || i >= len(d.Chapters) {
		return nil
	}
	return d.Chapters[i]
}

// Pages returns the chapter's current page sequence. Never empty: an
// unpaginated or empty chapter holds a single empty page.
func (c *Chapter) Pages() []string { return c.pages }

// PageCount returns the number of pages in the chapter.
func (c *Chapter) PageCount() int { return len(c.pages) }

// CurrentPage returns the chapter's page pointer.
func (c *Chapter) CurrentPage() int { return c.page }

// Page returns the content of the chapter's current page.
func (c *Chapter) Page() string {
	if c.page < 0 || c.page >= len(c.pages) {
		return ""
	}
	return c.pages[c.page]
}
