package book

import (
	"reflect"
	"testing"

	"github.com/jpl-au/quarto/epub"
)

func namedChapters(ids ...string) []*Chapter {
	chapters := make([]*Chapter, len(ids))
	for i, id := range ids {
		chapters[i] = &Chapter{Title: "Title " + id, ID: id}
	}
	return chapters
}

func TestBuildOutline_Nested(t *testing.T) {
	chapters := namedChapters("intro.xhtml", "ch1.xhtml", "ch2.xhtml")
	nodes := []epub.OutlineNode{
		{Label: "Introduction", Ref: "intro.xhtml"},
		{
			Label: "Part One",
			Ref:   "ch1.xhtml",
			Children: []epub.OutlineNode{
				{Label: "Section 1.1", Ref: "ch1.xhtml#s1"},
				{Label: "Section 1.2", Ref: "ch2.xhtml"},
			},
		},
	}

	want := []OutlineEntry{
		{Label: "Introduction", Chapter: 0, Level: 0},
		{Label: "Part One", Chapter: 1, Level: 0},
		{Label: "Section 1.1", Chapter: 1, Level: 1},
		{Label: "Section 1.2", Chapter: 2, Level: 1},
	}
	if got := buildOutline(nodes, chapters); !reflect.DeepEqual(got, want) {
		t.Errorf("outline = %+v, want %+v", got, want)
	}
}

func TestBuildOutline_UnresolvedParentKeepsChildren(t *testing.T) {
	chapters := namedChapters("ch1.xhtml")
	nodes := []epub.OutlineNode{
		{
			Label: "Missing",
			Ref:   "gone.xhtml",
			Children: []epub.OutlineNode{
				{Label: "Survivor", Ref: "ch1.xhtml"},
			},
		},
	}

	want := []OutlineEntry{{Label: "Survivor", Chapter: 0, Level: 1}}
	if got := buildOutline(nodes, chapters); !reflect.DeepEqual(got, want) {
		t.Errorf("outline = %+v, want %+v", got, want)
	}
}

func TestBuildOutline_FlatFallback(t *testing.T) {
	chapters := namedChapters("c1", "c2", "c3", "c4")

	// No navigation document at all.
	got := buildOutline(nil, chapters)
	if len(got) != 4 {
		t.Fatalf("got %d entries, want 4", len(got))
	}
	for i, e := range got {
		if e.Chapter != i || e.Level != 0 || e.Label != chapters[i].Title {
			t.Errorf("entry %d = %+v", i, e)
		}
	}

	// A navigation tree where nothing resolves falls back the same way.
	nodes := []epub.OutlineNode{{Label: "Elsewhere", Ref: "nowhere.xhtml"}}
	if got := buildOutline(nodes, chapters); len(got) != 4 {
		t.Errorf("got %d entries, want 4", len(got))
	}
}

func TestBuildOutline_DepthCeiling(t *testing.T) {
	chapters := namedChapters("deep.xhtml")

	// A chain twice as deep as the ceiling; everything below it is dropped.
	node := epub.OutlineNode{Label: "level 31", Ref: "deep.xhtml"}
	for i := 30; i >= 0; i-- {
		node = epub.OutlineNode{
			Label:    "chain",
			Ref:      "deep.xhtml",
			Children: []epub.OutlineNode{node},
		}
	}

	got := buildOutline([]epub.OutlineNode{node}, chapters)
	if len(got) != maxOutlineDepth {
		t.Fatalf("got %d entries, want %d", len(got), maxOutlineDepth)
	}
	if last := got[len(got)-1]; last.Level != maxOutlineDepth-1 {
		t.Errorf("deepest level = %d, want %d", last.Level, maxOutlineDepth-1)
	}
}

func TestResolveRef(t *testing.T) {
	chapters := namedChapters("text/ch1.xhtml", "text/ch2.xhtml")

	tests := []struct {
		ref     string
		want    int
		wantOK  bool
	}{
		{"text/ch1.xhtml", 0, true},
		{"ch2.xhtml", 0, false}, // bare name is not a suffix match the other way
		{"OEBPS/text/ch2.xhtml", 1, true},
		{"text/ch1.xhtml#frag", 0, true},
		{"#frag", 0, false},
		{"", 0, false},
		{"unrelated.xhtml", 0, false},
	}
	for _, tt := range tests {
		got, ok := resolveRef(tt.ref, chapters)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("resolveRef(%q) = %d, %v; want %d, %v", tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveRef_AmbiguousSuffix(t *testing.T) {
	// Both identifiers are suffixes of the reference; the first chapter in
	// reading order wins.
	chapters := namedChapters("a/ch.xhtml", "ch.xhtml")
	got, ok := resolveRef("oebps/a/ch.xhtml", chapters)
	if !ok || got != 0 {
		t.Errorf("resolveRef = %d, %v; want first match 0", got, ok)
	}
}
