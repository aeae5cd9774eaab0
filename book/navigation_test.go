package book

import (
	"fmt"
	"strings"
	"testing"
)

// testDocument builds a paginated document whose chapters each carry
// enough lines to span several pages at the given geometry.
func testDocument(t *testing.T, chapters, linesPerChapter, width, height int) *Document {
	t.Helper()

	doc := &Document{Title: "Test Book", Author: "Nobody"}
	for i := 0; i < chapters; i++ {
		var b strings.Builder
		for j := 0; j < linesPerChapter; j++ {
			fmt.Fprintf(&b, "chapter %d line %d\n", i, j)
		}
		doc.Chapters = append(doc.Chapters, &Chapter{
			Title:   fmt.Sprintf("Chapter %d", i+1),
			ID:      fmt.Sprintf("ch%d.xhtml", i+1),
			Content: strings.TrimSuffix(b.String(), "\n"),
		})
	}
	if err := doc.PaginateAll(width, height); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestNav_PageStepping(t *testing.T) {
	doc := testDocument(t, 1, 7, 80, 5) // 3 lines per page, 3 pages
	nav := NewNav(doc)

	if got := nav.Chapter().PageCount(); got != 3 {
		t.Fatalf("page count = %d, want 3", got)
	}

	if !nav.NextPage() || !nav.NextPage() {
		t.Fatal("expected two forward steps to succeed")
	}
	if nav.NextPage() {
		t.Error("stepped past the last page")
	}
	if pos := nav.Position(); pos.Page != 2 {
		t.Errorf("page = %d, want 2", pos.Page)
	}

	if !nav.PrevPage() || !nav.PrevPage() {
		t.Fatal("expected two backward steps to succeed")
	}
	if nav.PrevPage() {
		t.Error("stepped before the first page")
	}
}

func TestNav_ChapterStepping(t *testing.T) {
	doc := testDocument(t, 3, 4, 80, 5)
	nav := NewNav(doc)

	if nav.PrevChapter() {
		t.Error("stepped before the first chapter")
	}
	if !nav.NextChapter() || !nav.NextChapter() {
		t.Fatal("expected two forward chapter steps to succeed")
	}
	if nav.NextChapter() {
		t.Error("stepped past the last chapter")
	}
	if got := nav.ChapterIndex(); got != 2 {
		t.Errorf("chapter = %d, want 2", got)
	}
}

func TestNav_GotoChapterOutOfRange(t *testing.T) {
	doc := testDocument(t, 3, 7, 80, 5)
	nav := NewNav(doc)
	nav.GotoChapter(1)
	nav.GotoPage(1)
	before := nav.Position()

	for _, idx := range []int{-1, 3, 99} {
		if nav.GotoChapter(idx) {
			t.Errorf("GotoChapter(%d) succeeded", idx)
		}
		if got := nav.Position(); got != before {
			t.Errorf("GotoChapter(%d) moved position to %+v", idx, got)
		}
	}
}

func TestNav_GotoChapterResetsPage(t *testing.T) {
	doc := testDocument(t, 2, 7, 80, 5)
	nav := NewNav(doc)
	nav.GotoPage(2)

	if !nav.GotoChapter(1) {
		t.Fatal("GotoChapter(1) failed")
	}
	if pos := nav.Position(); pos.Chapter != 1 || pos.Page != 0 {
		t.Errorf("position = %+v, want chapter 1 page 0", pos)
	}
}

func TestNav_SetPosition(t *testing.T) {
	doc := testDocument(t, 3, 7, 80, 5) // 3 pages per chapter

	tests := []struct {
		name          string
		chapter, page int
		want          Position
	}{
		{"valid", 2, 1, Position{Chapter: 2, Page: 1}},
		{"bad chapter clamps to start", 9, 1, Position{Chapter: 0, Page: 0}},
		{"negative chapter clamps to start", -1, 0, Position{Chapter: 0, Page: 0}},
		{"bad page clamps to chapter start", 1, 50, Position{Chapter: 1, Page: 0}},
		{"negative page clamps to chapter start", 1, -2, Position{Chapter: 1, Page: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := NewNav(doc)
			nav.SetPosition(tt.chapter, tt.page)
			if got := nav.Position(); got != tt.want {
				t.Errorf("position = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNav_ClampPageAfterRepagination(t *testing.T) {
	doc := testDocument(t, 1, 13, 80, 5) // 5 pages
	nav := NewNav(doc)
	nav.GotoPage(4)

	// Taller terminal, fewer pages; the page pointer now dangles.
	if err := doc.PaginateAll(80, 10); err != nil {
		t.Fatal(err)
	}
	nav.ClampPage()

	last := nav.Chapter().PageCount() - 1
	if got := nav.Position().Page; got != last {
		t.Errorf("page = %d, want %d", got, last)
	}
}

func TestNav_Info(t *testing.T) {
	doc := testDocument(t, 4, 4, 80, 5)
	nav := NewNav(doc)
	nav.GotoChapter(2)

	info := nav.Info()
	if info.Title != "Test Book" || info.Author != "Nobody" {
		t.Errorf("info = %+v", info)
	}
	if info.ChapterCount != 4 || info.CurrentChapter != 2 {
		t.Errorf("info = %+v, want 4 chapters at index 2", info)
	}
}
