// Package config holds user-facing reader settings backed by a viper
// config file with sensible defaults. Display geometry never flows into
// the core implicitly; callers read it here and pass it to PaginateAll
// explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when the config file is absent or silent on a key.
const (
	DefaultWidth        = 80
	DefaultHeight       = 24
	DefaultSaveInterval = 30 * time.Second
)

// Pagination floor: one text column, chrome plus one content line.
const (
	minWidth  = 1
	minHeight = 3
)

// Config is a loaded settings file.
type Config struct {
	v    *viper.Viper
	path string
}

// Load reads settings from path, creating nothing on disk. A missing file
// is not an error; defaults apply until Save is called.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("display.width", DefaultWidth)
	v.SetDefault("display.height", DefaultHeight)
	v.SetDefault("reading.auto_save", true)
	v.SetDefault("reading.save_interval", DefaultSaveInterval.String())
	v.SetDefault("library.dir", filepath.Join("data", "books"))
	v.SetDefault("data.dir", "data")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return &Config{v: v, path: path}, nil
}

// Save writes the current settings back to the config file, creating
// parent directories as needed.
func (c *Config) Save() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	return c.v.WriteConfigAs(c.path)
}

// Set overrides one setting for the lifetime of this Config (and for the
// file once Save is called).
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// Display returns the configured page geometry, falling back to the
// defaults when a stored value is below the pagination floor.
func (c *Config) Display() (width, height int) {
	width = c.v.GetInt("display.width")
	height = c.v.GetInt("display.height")
	if width < minWidth {
		width = DefaultWidth
	}
	if height < minHeight {
		height = DefaultHeight
	}
	return width, height
}

// AutoSave reports whether progress should be saved periodically.
func (c *Config) AutoSave() bool {
	return c.v.GetBool("reading.auto_save")
}

// SaveInterval returns how often progress is saved when AutoSave is on.
func (c *Config) SaveInterval() time.Duration {
	d := c.v.GetDuration("reading.save_interval")
	if d <= 0 {
		return DefaultSaveInterval
	}
	return d
}

// LibraryDir returns the directory holding managed book files.
func (c *Config) LibraryDir() string {
	return c.v.GetString("library.dir")
}

// DataDir returns the directory holding the progress store.
func (c *Config) DataDir() string {
	return c.v.GetString("data.dir")
}
