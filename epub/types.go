// Package epub reads the EPUB container format: a ZIP archive holding a
// package manifest (OPF), content documents in spine order, and an optional
// navigation document. It yields raw resources, metadata, and the raw
// outline tree; conversion to reading text happens upstream.
package epub

// Package is the parsed OPF package document.
type Package struct {
	Metadata Metadata
	Manifest map[string]ManifestItem // keyed by ID
	Spine    []SpineItem
	Version  string // "2.0" or "3.0"
}

// Metadata holds the Dublin Core fields quarto cares about. Title and
// Author are never empty: absent declarations fall back to "Unknown Title"
// and "Unknown Author".
type Metadata struct {
	Title       string
	Author      string
	Language    string
	Identifier  string
	Publisher   string
	Description string
}

// ManifestItem is one file declared by the package manifest.
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string // "nav", "cover-image", etc.
}

// SpineItem references a manifest item in reading order.
type SpineItem struct {
	IDRef  string
	Linear bool
}

// Resource is one spine document with its body decoded to UTF-8 text.
// Resources are yielded in spine order.
type Resource struct {
	ID        string
	Href      string // manifest href as written; stable identifier for outline resolution
	MediaType string
	Body      []byte
}

// OutlineNode is one node of the raw navigation tree. A node with no
// children is a leaf; a branch may itself carry a reference. Ref is the
// target as written in the navigation document, possibly with a fragment.
type OutlineNode struct {
	Label    string
	Ref      string
	Children []OutlineNode
}
