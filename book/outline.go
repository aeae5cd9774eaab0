package book

import (
	"strings"

	"github.com/jpl-au/quarto/epub"
)

// OutlineEntry is one flat, leveled table-of-contents entry pointing at a
// chapter index.
type OutlineEntry struct {
	Label   string
	Chapter int
	Level   int
}

// maxOutlineDepth caps traversal of the raw navigation tree. Children
// below the ceiling are dropped rather than risking unbounded work on
// malformed or cyclic input.
const maxOutlineDepth = 16

// buildOutline flattens the raw navigation tree into leveled entries,
// depth-first in document order, resolving each node's reference against
// the chapter identifiers. Unresolved nodes are dropped; their children
// are still processed and may resolve independently. When nothing at all
// resolves, a flat outline is synthesized from the chapters themselves.
func buildOutline(nodes []epub.OutlineNode, chapters []*Chapter) []OutlineEntry {
	type frame struct {
		node  epub.OutlineNode
		level int
	}

	stack := make([]frame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{nodes[i], 0})
	}

	var entries []OutlineEntry
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if idx, ok := resolveRef(f.node.Ref, chapters); ok {
			entries = append(entries, OutlineEntry{
				Label:   f.node.Label,
				Chapter: idx,
				Level:   f.level,
			})
		}

		if f.level+1 >= maxOutlineDepth {
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.level + 1})
		}
	}

	if len(entries) == 0 {
		entries = make([]OutlineEntry, 0, len(chapters))
		for i, c := range chapters {
			entries = append(entries, OutlineEntry{Label: c.Title, Chapter: i, Level: 0})
		}
	}
	return entries
}

// resolveRef maps a navigation reference to a chapter index. The fragment
// suffix is stripped, then the first chapter in reading order whose
// identifier the reference ends with wins. Identifiers can collide as
// suffixes of each other; first match is the pinned policy, deterministic
// if not always right.
func resolveRef(ref string, chapters []*Chapter) (int, bool) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref = ref[:i]
	}
	if ref == "" {
		return 0, false
	}
	for i, c := range chapters {
		if c.ID != "" && strings.HasSuffix(ref, c.ID) {
			return i, true
		}
	}
	return 0, false
}
