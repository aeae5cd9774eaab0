// Package store persists reading progress, bookmarks, and small settings
// in a folio database. The core never calls this package; the embedding
// application exchanges book.Position values between Nav and here.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jpl-au/folio"
)

const dbName = "quarto.folio"

// Record key prefixes. One folio document per book-progress, per-book
// bookmark list, and per setting.
const (
	progressPrefix = "progress:"
	bookmarkPrefix = "bookmarks:"
	settingPrefix  = "setting:"
)

var (
	// ErrNoProgress indicates no progress has been saved for the book.
	ErrNoProgress = errors.New("store: no saved progress")

	// ErrNoBookmark indicates a bookmark index out of range.
	ErrNoBookmark = errors.New("store: no such bookmark")
)

// Progress is the persisted reading state for one book.
type Progress struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Chapter  int       `json:"chapter"`
	Page     int       `json:"page"`
	LastRead time.Time `json:"last_read"`
}

// Bookmark marks one reading location with an optional note.
type Bookmark struct {
	Chapter int       `json:"chapter"`
	Page    int       `json:"page"`
	Note    string    `json:"note,omitempty"`
	Created time.Time `json:"created"`
}

// RecentBook pairs a book key with its saved progress, for the recent-
// books listing.
type RecentBook struct {
	Book string
	Progress
}

// Store wraps one folio database file.
type Store struct {
	db *folio.DB
}

// Open opens or creates the store in dir.
func Open(dir string) (*Store, error) {
	db, err := folio.Open(dir, dbName, folio.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProgress records the reading position for a book, stamping the
// last-read time.
func (s *Store) SaveProgress(book string, p Progress) error {
	p.LastRead = time.Now().UTC()
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	return s.db.Set(progressPrefix+label(book), string(body))
}

// Progress returns the saved reading position for a book, or ErrNoProgress
// when none exists.
func (s *Store) Progress(book string) (Progress, error) {
	body, err := s.db.Get(progressPrefix + label(book))
	if errors.Is(err, folio.ErrNotFound) {
		return Progress{}, ErrNoProgress
	}
	if err != nil {
		return Progress{}, err
	}

	var p Progress
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return Progress{}, fmt.Errorf("decoding progress: %w", err)
	}
	return p, nil
}

// Recent lists saved books most recently read first, up to limit.
func (s *Store) Recent(limit int) ([]RecentBook, error) {
	var books []RecentBook
	for doc, err := range s.db.All() {
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(doc.Label, progressPrefix) {
			continue
		}
		var p Progress
		if err := json.Unmarshal([]byte(doc.Data), &p); err != nil {
			continue // tolerate one corrupt record
		}
		books = append(books, RecentBook{
			Book:     strings.TrimPrefix(doc.Label, progressPrefix),
			Progress: p,
		})
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].LastRead.After(books[j].LastRead)
	})
	if limit > 0 && len(books) > limit {
		books = books[:limit]
	}
	return books, nil
}

// AddBookmark appends a bookmark to the book's list, stamping the
// creation time.
func (s *Store) AddBookmark(book string, b Bookmark) error {
	marks, err := s.Bookmarks(book)
	if err != nil {
		return err
	}
	b.Created = time.Now().UTC()
	marks = append(marks, b)
	return s.saveBookmarks(book, marks)
}

// Bookmarks returns the book's bookmarks in creation order.
func (s *Store) Bookmarks(book string) ([]Bookmark, error) {
	body, err := s.db.Get(bookmarkPrefix + label(book))
	if errors.Is(err, folio.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var marks []Bookmark
	if err := json.Unmarshal([]byte(body), &marks); err != nil {
		return nil, fmt.Errorf("decoding bookmarks: %w", err)
	}
	return marks, nil
}

// RemoveBookmark deletes the bookmark at index i.
func (s *Store) RemoveBookmark(book string, i int) error {
	marks, err := s.Bookmarks(book)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(marks) {
		return ErrNoBookmark
	}
	marks = append(marks[:i], marks[i+1:]...)
	return s.saveBookmarks(book, marks)
}

func (s *Store) saveBookmarks(book string, marks []Bookmark) error {
	key := bookmarkPrefix + label(book)
	if len(marks) == 0 {
		err := s.db.Delete(key)
		if errors.Is(err, folio.ErrNotFound) {
			return nil
		}
		return err
	}
	body, err := json.Marshal(marks)
	if err != nil {
		return fmt.Errorf("encoding bookmarks: %w", err)
	}
	return s.db.Set(key, string(body))
}

// SetSetting stores one application setting.
func (s *Store) SetSetting(key, value string) error {
	return s.db.Set(settingPrefix+label(key), value)
}

// Setting returns a stored setting, or fallback when absent.
func (s *Store) Setting(key, fallback string) string {
	value, err := s.db.Get(settingPrefix + label(key))
	if err != nil {
		return fallback
	}
	return value
}

// label makes a key safe for folio, which rejects double quotes.
func label(key string) string {
	return strings.ReplaceAll(key, `"`, "'")
}
