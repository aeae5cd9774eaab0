// Package library organizes book files on disk: adding (with content-hash
// deduplication), removing, and listing. It validates that an added file
// opens as an EPUB but never parses content beyond that; reading is the
// book package's job.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"

	"github.com/jpl-au/quarto/epub"
)

const indexName = ".index.json"

var (
	// ErrDuplicate indicates the file's content already exists in the
	// library under another name.
	ErrDuplicate = errors.New("library: book already in library")

	// ErrNotInLibrary indicates a remove target outside the library dir.
	ErrNotInLibrary = errors.New("library: file not managed by this library")
)

// Library manages one directory of book files plus a hash index used for
// deduplication.
type Library struct {
	dir   string
	log   *logrus.Logger
	index map[string]string // content hash -> filename
}

// Open opens (creating if needed) the library at dir.
func Open(dir string, log *logrus.Logger) (*Library, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library dir: %w", err)
	}

	l := &Library{dir: dir, log: log, index: make(map[string]string)}
	if err := l.loadIndex(); err != nil {
		// A corrupt index only costs deduplication; rebuilding it is a
		// matter of re-adding files.
		log.WithError(err).Warn("library index unreadable, starting empty")
		l.index = make(map[string]string)
	}
	return l, nil
}

// Add validates, deduplicates, and copies a book into the library. The
// returned path is the managed copy. Adding a file whose content is
// already present returns ErrDuplicate.
func (l *Library) Add(src, title, author string) (string, error) {
	r, err := epub.Open(src)
	if err != nil {
		return "", fmt.Errorf("validating %s: %w", src, err)
	}
	meta := r.Metadata()
	r.Close()

	if title == "" {
		title = meta.Title
	}
	if author == "" {
		author = meta.Author
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src, err)
	}

	sum := fmt.Sprintf("%016x", xxh3.Hash(data))
	if existing, ok := l.index[sum]; ok {
		if _, err := os.Stat(filepath.Join(l.dir, existing)); err == nil {
			return filepath.Join(l.dir, existing), ErrDuplicate
		}
		// Stale index entry for a removed file; fall through and re-add.
		delete(l.index, sum)
	}

	name := l.uniqueName(safeName(title, author))
	dst := filepath.Join(l.dir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("copying into library: %w", err)
	}

	l.index[sum] = name
	if err := l.saveIndex(); err != nil {
		l.log.WithError(err).Warn("failed to save library index")
	}

	l.log.WithFields(logrus.Fields{"title": title, "file": name}).Info("book added to library")
	return dst, nil
}

// Remove deletes a managed book file and its index entry.
func (l *Library) Remove(path string) error {
	dir, err := filepath.Abs(l.dir)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if filepath.Dir(abs) != dir {
		return ErrNotInLibrary
	}

	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("removing book: %w", err)
	}

	name := filepath.Base(abs)
	for sum, file := range l.index {
		if file == name {
			delete(l.index, sum)
		}
	}
	if err := l.saveIndex(); err != nil {
		l.log.WithError(err).Warn("failed to save library index")
	}
	return nil
}

// List returns the managed book paths, sorted by filename.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}

	var books []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".epub") {
			continue
		}
		books = append(books, filepath.Join(l.dir, e.Name()))
	}
	sort.Strings(books)
	return books, nil
}

// Search returns managed book paths whose filename contains the query,
// case-insensitively.
func (l *Library) Search(query string) ([]string, error) {
	books, err := l.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var matches []string
	for _, b := range books {
		if strings.Contains(strings.ToLower(filepath.Base(b)), query) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

// Cleanup removes managed files that no longer open as EPUBs and prunes
// index entries whose files are gone. Returns the number of files removed.
func (l *Library) Cleanup() (int, error) {
	books, err := l.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, b := range books {
		r, err := epub.Open(b)
		if err == nil {
			r.Close()
			continue
		}
		l.log.WithFields(logrus.Fields{"file": filepath.Base(b), "error": err}).Warn("removing invalid book")
		if err := os.Remove(b); err != nil {
			return removed, fmt.Errorf("removing invalid book: %w", err)
		}
		removed++
	}

	for sum, name := range l.index {
		if _, err := os.Stat(filepath.Join(l.dir, name)); os.IsNotExist(err) {
			delete(l.index, sum)
		}
	}
	if err := l.saveIndex(); err != nil {
		l.log.WithError(err).Warn("failed to save library index")
	}
	return removed, nil
}

// Stats returns the count and total size of managed book files.
func (l *Library) Stats() (count int, bytes int64, err error) {
	books, err := l.List()
	if err != nil {
		return 0, 0, err
	}
	for _, b := range books {
		info, err := os.Stat(b)
		if err != nil {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, nil
}

func (l *Library) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(l.dir, indexName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &l.index)
}

func (l *Library) saveIndex() error {
	data, err := json.Marshal(l.index)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.dir, indexName), data, 0o644)
}

// uniqueName appends a counter when the preferred filename is taken by a
// different book.
func (l *Library) uniqueName(name string) string {
	base := strings.TrimSuffix(name, ".epub")
	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(l.dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d.epub", base, i)
	}
}

// safeName builds a filesystem-safe "Title - Author.epub" filename.
func safeName(title, author string) string {
	name := title
	if author != "" && author != epub.UnknownAuthor {
		name = title + " - " + author
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	safe := strings.TrimSpace(b.String())
	if safe == "" {
		safe = "untitled"
	}
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return strings.TrimSpace(safe) + ".epub"
}
