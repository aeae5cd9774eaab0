// Package quarto reads EPUB books for fixed-width, page-at-a-time display.
//
// Basic usage:
//
//	doc, err := quarto.Load("book.epub")
//	if err != nil {
//	    // handle error
//	}
//	doc.PaginateAll(80, 24)
//	nav := quarto.NewNav(doc)
//	fmt.Println(nav.Chapter().Page())
//
// The book package holds the document model, pagination, navigation, and
// search; epub and markup expose the lower-level archive and text layers.
// Persistence, settings, and on-disk library management live in store,
// config, and library, wired together by cmd/quarto.
package quarto

import (
	"github.com/jpl-au/quarto/book"
)

// Re-exported core types, so simple embedders need only this package.
type (
	Document     = book.Document
	Chapter      = book.Chapter
	Nav          = book.Nav
	Position     = book.Position
	BookInfo     = book.BookInfo
	Hit          = book.Hit
	OutlineEntry = book.OutlineEntry
	Option       = book.Option
)

// Load opens an EPUB file and builds its Document.
func Load(path string, opts ...Option) (*Document, error) {
	return book.Load(path, opts...)
}

// NewNav creates navigation state over a loaded Document.
func NewNav(doc *Document) *Nav {
	return book.NewNav(doc)
}

// WithLogger routes load diagnostics to a specific logger.
var WithLogger = book.WithLogger
