// Command quarto is a minimal front end for the reading core: it loads a
// book, restores saved progress, and prints pages, the outline, or search
// results to stdout. A richer terminal UI would sit where this does,
// driving the same packages.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jpl-au/quarto/book"
	"github.com/jpl-au/quarto/config"
	"github.com/jpl-au/quarto/library"
	"github.com/jpl-au/quarto/store"
)

func main() {
	var (
		configPath = flag.String("config", filepath.Join("data", "quarto.yaml"), "config file path")
		width      = flag.Int("width", 0, "page width (overrides config)")
		height     = flag.Int("height", 0, "page height (overrides config)")
		info       = flag.Bool("info", false, "print book info and exit")
		outline    = flag.Bool("outline", false, "print the outline and exit")
		search     = flag.String("search", "", "search the book and exit")
		dump       = flag.Int("dump", -1, "print every page of the given chapter and exit")
		add        = flag.String("add", "", "add a book file to the library and exit")
		list       = flag.Bool("list", false, "list library books and exit")
		find       = flag.String("find", "", "search library filenames and exit")
		clean      = flag.Bool("clean", false, "remove invalid library books and exit")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	if *add != "" || *list || *find != "" || *clean {
		runLibrary(cfg, log, *add, *find, *clean)
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: quarto [flags] book.epub")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	doc, err := book.Load(path, book.WithLogger(log))
	if err != nil {
		log.WithError(err).Fatal("loading book")
	}

	w, h := cfg.Display()
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}
	if err := doc.PaginateAll(w, h); err != nil {
		log.WithError(err).Fatal("paginating")
	}

	switch {
	case *info:
		printInfo(doc)
	case *outline:
		printOutline(doc)
	case *search != "":
		printSearch(doc, *search)
	default:
		readSession(cfg, log, doc, path, *dump)
	}
}

func printInfo(doc *book.Document) {
	fmt.Printf("Title:    %s\n", doc.Title)
	fmt.Printf("Author:   %s\n", doc.Author)
	fmt.Printf("Chapters: %d\n", len(doc.Chapters))
	for i, c := range doc.Chapters {
		fmt.Printf("  %3d. %s (%d pages)\n", i+1, c.Title, c.PageCount())
	}
}

func printOutline(doc *book.Document) {
	for _, e := range doc.Outline {
		fmt.Printf("%s%s (chapter %d)\n", strings.Repeat("  ", e.Level), e.Label, e.Chapter+1)
	}
}

func printSearch(doc *book.Document, query string) {
	hits := doc.Search(query)
	if len(hits) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, hit := range hits {
		fmt.Printf("chapter %d, line %d: %s\n", hit.Chapter+1, hit.Line, hit.Text)
	}
	fmt.Printf("%d match(es)\n", len(hits))
}

// readSession restores saved progress, prints the requested chapter (or
// the current page when no -dump was given), and saves the position back.
func readSession(cfg *config.Config, log *logrus.Logger, doc *book.Document, path string, dump int) {
	st, err := store.Open(cfg.DataDir())
	if err != nil {
		log.WithError(err).Fatal("opening store")
	}
	defer st.Close()

	nav := book.NewNav(doc)
	if p, err := st.Progress(path); err == nil {
		nav.SetPosition(p.Chapter, p.Page)
	}

	if dump >= 0 {
		if !nav.GotoChapter(dump) {
			log.WithField("chapter", dump).Fatal("no such chapter")
		}
		c := nav.Chapter()
		for i, page := range c.Pages() {
			fmt.Printf("--- %s, page %d/%d ---\n", c.Title, i+1, c.PageCount())
			fmt.Println(page)
		}
		nav.GotoPage(c.PageCount() - 1)
	} else {
		c := nav.Chapter()
		fmt.Printf("--- %s, page %d/%d ---\n", c.Title, c.CurrentPage()+1, c.PageCount())
		fmt.Println(c.Page())
	}

	pos := nav.Position()
	err = st.SaveProgress(path, store.Progress{
		Title:   doc.Title,
		Author:  doc.Author,
		Chapter: pos.Chapter,
		Page:    pos.Page,
	})
	if err != nil {
		log.WithError(err).Warn("saving progress")
	}
}

func runLibrary(cfg *config.Config, log *logrus.Logger, add, find string, clean bool) {
	lib, err := library.Open(cfg.LibraryDir(), log)
	if err != nil {
		log.WithError(err).Fatal("opening library")
	}

	switch {
	case add != "":
		dst, err := lib.Add(add, "", "")
		if errors.Is(err, library.ErrDuplicate) {
			fmt.Printf("already in library: %s\n", dst)
			return
		}
		if err != nil {
			log.WithError(err).Fatal("adding book")
		}
		fmt.Printf("added: %s\n", dst)

	case find != "":
		books, err := lib.Search(find)
		if err != nil {
			log.WithError(err).Fatal("searching library")
		}
		for _, b := range books {
			fmt.Println(b)
		}

	case clean:
		removed, err := lib.Cleanup()
		if err != nil {
			log.WithError(err).Fatal("cleaning library")
		}
		fmt.Printf("removed %d invalid book(s)\n", removed)

	default:
		books, err := lib.List()
		if err != nil {
			log.WithError(err).Fatal("listing library")
		}
		for _, b := range books {
			fmt.Println(b)
		}
	}
}
