package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	w, h := c.Display()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("display = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
	if !c.AutoSave() {
		t.Error("auto save should default on")
	}
	if c.SaveInterval() != DefaultSaveInterval {
		t.Errorf("save interval = %v, want %v", c.SaveInterval(), DefaultSaveInterval)
	}
	if c.LibraryDir() != filepath.Join("data", "books") {
		t.Errorf("library dir = %q", c.LibraryDir())
	}
	if c.DataDir() != "data" {
		t.Errorf("data dir = %q", c.DataDir())
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarto.yaml")
	body := `display:
  width: 100
  height: 40
reading:
  auto_save: false
  save_interval: 2m
library:
  dir: /srv/books
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	w, h := c.Display()
	if w != 100 || h != 40 {
		t.Errorf("display = %dx%d, want 100x40", w, h)
	}
	if c.AutoSave() {
		t.Error("auto save should be off")
	}
	if c.SaveInterval() != 2*time.Minute {
		t.Errorf("save interval = %v, want 2m", c.SaveInterval())
	}
	if c.LibraryDir() != "/srv/books" {
		t.Errorf("library dir = %q", c.LibraryDir())
	}
}

func TestDisplay_FloorFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarto.yaml")
	body := `display:
  width: 0
  height: 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	w, h := c.Display()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("display = %dx%d, want defaults for sub-floor values", w, h)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "quarto.yaml")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Set("display.width", 120)
	c.Set("reading.auto_save", false)
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := reloaded.Display(); w != 120 {
		t.Errorf("width = %d, want 120", w)
	}
	if reloaded.AutoSave() {
		t.Error("auto save should persist as off")
	}
}
