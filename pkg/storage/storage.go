// Package storage persists theme state on disk: the selected background,
// the user's tiling setting and the applied theme with its cache record.
// All writes go through a temp-file-then-rename step so a crash never
// leaves a half-written file behind.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"gitlab.com/tinyland/lab/chat-theme/pkg/imgutil"
	"gitlab.com/tinyland/lab/chat-theme/pkg/theme"
)

const (
	settingsFile   = "settings.toml"
	backgroundFile = "background.bmp"
	themeFile      = "theme.tdesktop-theme"
	themeCacheFile = "theme.cache"
)

// settings is the TOML document kept next to the blobs.
type settings struct {
	Background backgroundSettings `toml:"background"`
	Theme      themeSettings      `toml:"theme"`
}

type backgroundSettings struct {
	ID   int  `toml:"id"`
	Tile bool `toml:"tile"`
}

type themeSettings struct {
	PathRelative string `toml:"path_relative"`
	PathAbsolute string `toml:"path_absolute"`
}

// Store implements theme.Storage on a directory.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a Store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// ReadBackground implements theme.Storage.
func (s *Store) ReadBackground() (theme.BackgroundID, image.Image, bool, bool) {
	st, err := s.readSettings()
	if err != nil || st.Background.ID == int(theme.BackgroundUninitialized) {
		return theme.BackgroundUninitialized, nil, false, false
	}
	id := theme.BackgroundID(st.Background.ID)

	var img image.Image
	if id == theme.BackgroundCustom {
		data, err := os.ReadFile(s.path(backgroundFile))
		if err != nil {
			return theme.BackgroundUninitialized, nil, false, false
		}
		img, err = imgutil.Decode(data)
		if err != nil {
			log.Warn("stored chat background is unreadable, discarding", "err", err)
			return theme.BackgroundUninitialized, nil, false, false
		}
	}
	return id, img, st.Background.Tile, true
}

// WriteBackground implements theme.Storage. Built-in selections persist as
// the id alone; the image file is written only for a custom background.
func (s *Store) WriteBackground(id theme.BackgroundID, img image.Image) error {
	st, _ := s.readSettings()
	st.Background.ID = int(id)
	if err := s.writeSettings(st); err != nil {
		return err
	}
	if img == nil {
		if err := os.Remove(s.path(backgroundFile)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage: remove background: %w", err)
		}
		return nil
	}
	data, err := imgutil.EncodeBMP(img)
	if err != nil {
		return fmt.Errorf("storage: encode background: %w", err)
	}
	return atomicWrite(s.path(backgroundFile), data, s.dir)
}

// WriteUserSettings implements theme.Storage.
func (s *Store) WriteUserSettings(tile bool) error {
	st, _ := s.readSettings()
	st.Background.Tile = tile
	return s.writeSettings(st)
}

// WriteTheme implements theme.Storage. Empty content clears the stored
// theme.
func (s *Store) WriteTheme(pathRelative, pathAbsolute string, content []byte, cache *theme.Cached) error {
	if len(content) == 0 {
		for _, name := range []string{themeFile, themeCacheFile} {
			if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("storage: remove %s: %w", name, err)
			}
		}
		st, _ := s.readSettings()
		st.Theme = themeSettings{}
		return s.writeSettings(st)
	}

	if err := atomicWrite(s.path(themeFile), content, s.dir); err != nil {
		return err
	}
	if err := atomicWrite(s.path(themeCacheFile), cache.Encode(), s.dir); err != nil {
		return err
	}
	st, _ := s.readSettings()
	st.Theme = themeSettings{PathRelative: pathRelative, PathAbsolute: pathAbsolute}
	return s.writeSettings(st)
}

// HasTheme implements theme.Storage.
func (s *Store) HasTheme() bool {
	_, err := os.Stat(s.path(themeFile))
	return err == nil
}

// ReadTheme returns the stored theme content, its paths and its cache
// record, for feeding theme.Manager.Load at startup. ok is false when no
// theme is stored.
func (s *Store) ReadTheme() (pathRelative, pathAbsolute string, content []byte, cache *theme.Cached, ok bool) {
	content, err := os.ReadFile(s.path(themeFile))
	if err != nil {
		return "", "", nil, nil, false
	}
	if data, err := os.ReadFile(s.path(themeCacheFile)); err == nil {
		if decoded, err := theme.DecodeCached(data); err == nil {
			cache = decoded
		} else {
			log.Warn("stored theme cache is unreadable, will reload", "err", err)
		}
	}
	st, _ := s.readSettings()
	return st.Theme.PathRelative, st.Theme.PathAbsolute, content, cache, true
}

func (s *Store) readSettings() (settings, error) {
	var st settings
	if _, err := toml.DecodeFile(s.path(settingsFile), &st); err != nil {
		return settings{}, err
	}
	return st, nil
}

func (s *Store) writeSettings(st settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return fmt.Errorf("storage: encode settings: %w", err)
	}
	return atomicWrite(s.path(settingsFile), buf.Bytes(), s.dir)
}
