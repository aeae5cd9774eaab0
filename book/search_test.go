package book

import (
	"reflect"
	"testing"
)

func TestSearch_SingleHit(t *testing.T) {
	doc := &Document{Chapters: []*Chapter{
		{Content: "first line\nsecond line\nthe quick brown fox\nfourth line\nfifth line"},
		{Content: "nothing relevant here"},
	}}

	hits := doc.Search("Brown Fox")
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	h := hits[0]
	if h.Chapter != 0 || h.Line != 3 {
		t.Errorf("hit at chapter %d line %d, want chapter 0 line 3", h.Chapter, h.Line)
	}
	if h.Text != "the quick brown fox" {
		t.Errorf("text = %q", h.Text)
	}
	wantCtx := "first line\nsecond line\nthe quick brown fox\nfourth line\nfifth line"
	if h.Context != wantCtx {
		t.Errorf("context = %q, want %q", h.Context, wantCtx)
	}
}

func TestSearch_Ordering(t *testing.T) {
	doc := &Document{Chapters: []*Chapter{
		{Content: "x\nneedle here\nx\nneedle again"},
		{Content: "needle first thing"},
	}}

	hits := doc.Search("needle")
	want := []struct{ chapter, line int }{{0, 2}, {0, 4}, {1, 1}}
	if len(hits) != len(want) {
		t.Fatalf("got %d hits, want %d", len(hits), len(want))
	}
	for i, w := range want {
		if hits[i].Chapter != w.chapter || hits[i].Line != w.line {
			t.Errorf("hit %d at chapter %d line %d, want chapter %d line %d",
				i, hits[i].Chapter, hits[i].Line, w.chapter, w.line)
		}
	}
}

func TestSearch_ContextClipping(t *testing.T) {
	doc := &Document{Chapters: []*Chapter{
		{Content: "match at top\nsecond\nthird\nfourth\nmatch at bottom"},
	}}

	hits := doc.Search("match")
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if got, want := hits[0].Context, "match at top\nsecond\nthird"; got != want {
		t.Errorf("top context = %q, want %q", got, want)
	}
	if got, want := hits[1].Context, "third\nfourth\nmatch at bottom"; got != want {
		t.Errorf("bottom context = %q, want %q", got, want)
	}
}

func TestSearch_TrimsLines(t *testing.T) {
	doc := &Document{Chapters: []*Chapter{
		{Content: "  padded match  \n\tindented neighbour"},
	}}

	hits := doc.Search("padded")
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Text != "padded match" {
		t.Errorf("text = %q", hits[0].Text)
	}
	if hits[0].Context != "padded match\nindented neighbour" {
		t.Errorf("context = %q", hits[0].Context)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	doc := &Document{Chapters: []*Chapter{{Content: "anything"}}}
	if hits := doc.Search(""); hits != nil {
		t.Errorf("empty query returned %d hits", len(hits))
	}
}

func TestSearch_NoMatch(t *testing.T) {
	doc := &Document{Chapters: []*Chapter{{Content: "plain text"}}}
	if hits := doc.Search("absent"); len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
	if !reflect.DeepEqual(doc.Search("absent"), []Hit(nil)) {
		t.Error("no-match search should return a nil slice")
	}
}
