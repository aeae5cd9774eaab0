package book

import "strings"

// contextLines is how many lines either side of a match go into the
// context snippet.
const contextLines = 2

// Hit is one search match. Hits are ordered by (Chapter, Line).
type Hit struct {
	Chapter int    // chapter index
	Line    int    // 1-based line number within the chapter's content
	Text    string // matched line, trimmed
	Context string // surrounding lines, trimmed and newline-joined
}

// Search performs a case-insensitive substring search over every
// chapter's content, scanning chapters in reading order and lines in
// order. An empty query yields no hits.
func (d *Document) Search(query string) []Hit {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)

	var hits []Hit
	for ci, c := range d.Chapters {
		lines := strings.Split(c.Content, "\n")
		for li, line := range lines {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			hits = append(hits, Hit{
				Chapter: ci,
				Line:    li + 1,
				Text:    strings.TrimSpace(line),
				Context: searchContext(lines, li),
			})
		}
	}
	return hits
}

// searchContext joins up to contextLines lines either side of the match,
// clipped at the chapter bounds, each trimmed, match included.
func searchContext(lines []string, idx int) string {
	start := idx - contextLines
	if start < 0 {
		start = 0
	}
	end := idx + contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}

	trimmed := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		trimmed = append(trimmed, strings.TrimSpace(line))
	}
	return strings.Join(trimmed, "\n")
}
