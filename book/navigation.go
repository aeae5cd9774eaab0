package book

// Position is the (chapter, page) pair identifying a reading location. It
// is exchanged with persistence collaborators; the core never stores it
// beyond the live Nav.
type Position struct {
	Chapter int `json:"chapter"`
	Page    int `json:"page"`
}

// BookInfo is the summary handed to UI layers.
type BookInfo struct {
	Title          string
	Author         string
	ChapterCount   int
	CurrentChapter int
}

// Nav tracks the current chapter and page pointers over a Document and
// performs bounds-checked movement. Failed transitions return false and
// leave state untouched; nothing here panics. Nav is not safe for
// concurrent use.
type Nav struct {
	doc     *Document
	chapter int
}

// NewNav creates navigation state positioned at the first chapter's
// current page.
func NewNav(doc *Document) *Nav {
	return &Nav{doc: doc}
}

// Chapter returns the current chapter.
func (n *Nav) Chapter() *Chapter {
	return n.doc.Chapters[n.chapter]
}

// ChapterIndex returns the current chapter index.
func (n *Nav) ChapterIndex() int { return n.chapter }

// NextPage advances within the current chapter. Returns false at the last
// page.
func (n *Nav) NextPage() bool {
	c := n.Chapter()
	if c.page < len(c.pages)-1 {
		c.page++
		return true
	}
	return false
}

// PrevPage moves back within the current chapter. Returns false at the
// first page.
func (n *Nav) PrevPage() bool {
	c := n.Chapter()
	if c.page > 0 {
		c.page--
		return true
	}
	return false
}

// NextChapter advances to the next chapter. The target chapter's page
// pointer is left where it was; starting it at page 0 is caller policy.
func (n *Nav) NextChapter() bool {
	if n.chapter < len(n.doc.Chapters)-1 {
		n.chapter++
		return true
	}
	return false
}

// PrevChapter moves back one chapter, leaving the target's page pointer
// untouched.
func (n *Nav) PrevChapter() bool {
	if n.chapter > 0 {
		n.chapter--
		return true
	}
	return false
}

// GotoChapter jumps to the chapter at index i and resets its page pointer
// to 0. Returns false without moving for an out-of-range index.
func (n *Nav) GotoChapter(i int) bool {
	if i < 0 || i >= len(n.doc.Chapters) {
		return false
	}
	n.chapter = i
	n.doc.Chapters[i].page = 0
	return true
}

// GotoPage jumps within the current chapter. Returns false without moving
// for an out-of-range index.
func (n *Nav) GotoPage(i int) bool {
	c := n.Chapter()
	if i < 0 || i >= len(c.pages) {
		return false
	}
	c.page = i
	return true
}

// Position returns the current (chapter, page) pair.
func (n *Nav) Position() Position {
	return Position{Chapter: n.chapter, Page: n.Chapter().page}
}

// SetPosition restores an externally persisted position. Corrupted state
// must never crash a restore, so out-of-range values clamp instead of
// failing: a bad chapter resets to (0, 0); a valid chapter with a bad page
// resets that chapter's page to 0.
func (n *Nav) SetPosition(chapter, page int) {
	if chapter < 0 || chapter >= len(n.doc.Chapters) {
		n.chapter = 0
		n.doc.Chapters[0].page = 0
		return
	}
	n.chapter = chapter
	c := n.doc.Chapters[chapter]
	if page < 0 || page >= len(c.pages) {
		c.page = 0
		return
	}
	c.page = page
}

// ClampPage pulls the current chapter's page pointer back into range after
// a re-pagination shrank the page count.
func (n *Nav) ClampPage() {
	c := n.Chapter()
	if c.page >= len(c.pages) {
		c.page = len(c.pages) - 1
	}
	if c.page < 0 {
		c.page = 0
	}
}

// Info returns the book summary for display chrome.
func (n *Nav) Info() BookInfo {
	return BookInfo{
		Title:          n.doc.Title,
		Author:         n.doc.Author,
		ChapterCount:   len(n.doc.Chapters),
		CurrentChapter: n.chapter,
	}
}
