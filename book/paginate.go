package book

import (
	"strings"
	"unicode/utf8"
)

// chromeLines is the display rows reserved for header and footer outside
// the content area.
const chromeLines = 2

// Minimum page geometry: one column of text and one content line after
// chrome reservation.
const (
	MinWidth  = 1
	MinHeight = chromeLines + 1
)

// Paginate splits the chapter's content into fixed-size pages: width
// columns, height-2 content lines per page. The page sequence is replaced
// wholesale; calling again with the same geometry yields an identical
// sequence. The page pointer is left untouched; callers that shrink the
// page count under a live position clamp it via Nav.ClampPage.
func (c *Chapter) Paginate(width, height int) error {
	if width < MinWidth || height < MinHeight {
		return ErrPageGeometry
	}
	c.pages = paginate(c.Content, width, height)
	return nil
}

// PaginateAll re-paginates every chapter with the same geometry.
func (d *Document) PaginateAll(width, height int) error {
	for _, c := range d.Chapters {
		if err := c.Paginate(width, height); err != nil {
			return err
		}
	}
	return nil
}

// paginate wraps each logical line to width columns and accumulates the
// wrapped lines into pages of height-2 lines. Always returns at least one
// page; empty content yields a single empty page.
func paginate(content string, width, height int) []string {
	perPage := height - chromeLines

	var pages []string
	var buf []string
	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrapLine(line, width) {
			if len(buf) >= perPage {
				pages = append(pages, strings.Join(buf, "\n"))
				buf = buf[:0]
			}
			buf = append(buf, wrapped)
		}
	}
	if len(buf) > 0 {
		pages = append(pages, strings.Join(buf, "\n"))
	}
	if len(pages) == 0 {
		pages = []string{""}
	}
	return pages
}

// wrapLine word-wraps one logical line to width columns. Words accumulate
// greedily; a word wider than the whole line is hard-sliced into
// width-sized chunks instead of overflowing. A line already within width
// passes through verbatim, preserving its spacing.
func wrapLine(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var out []string
	var cur string
	curLen := 0
	for _, word := range strings.Fields(line) {
		wordLen := utf8.RuneCountInString(word)
		if cur != "" && curLen+1+wordLen <= width {
			cur += " " + word
			curLen += 1 + wordLen
			continue
		}
		if cur != "" {
			out = append(out, cur)
		}
		for wordLen > width {
			runes := []rune(word)
			out = append(out, string(runes[:width]))
			word = string(runes[width:])
			wordLen -= width
		}
		cur = word
		curLen = wordLen
	}
	if cur != "" {
		out = append(out, cur)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
