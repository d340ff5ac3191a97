package storage

import (
	"image"

	"gitlab.com/tinyland/lab/chat-theme/pkg/theme"
)

// Memory is a theme.Storage that keeps everything in process memory. Used
// by tooling that loads themes without a persistent profile directory.
type Memory struct {
	backgroundID  theme.BackgroundID
	background    image.Image
	tile          bool
	hasBackground bool

	themeContent []byte
	themeCache   *theme.Cached
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadBackground implements theme.Storage.
func (m *Memory) ReadBackground() (theme.BackgroundID, image.Image, bool, bool) {
	if !m.hasBackground {
		return theme.BackgroundUninitialized, nil, false, false
	}
	return m.backgroundID, m.background, m.tile, true
}

// WriteBackground implements theme.Storage.
func (m *Memory) WriteBackground(id theme.BackgroundID, img image.Image) error {
	m.backgroundID = id
	m.background = img
	m.hasBackground = true
	return nil
}

// WriteUserSettings implements theme.Storage.
func (m *Memory) WriteUserSettings(tile bool) error {
	m.tile = tile
	return nil
}

// WriteTheme implements theme.Storage.
func (m *Memory) WriteTheme(pathRelative, pathAbsolute string, content []byte, cache *theme.Cached) error {
	if len(content) == 0 {
		m.themeContent = nil
		m.themeCache = nil
		return nil
	}
	m.themeContent = append([]byte(nil), content...)
	if cache != nil {
		copied := *cache
		m.themeCache = &copied
	}
	return nil
}

// HasTheme implements theme.Storage.
func (m *Memory) HasTheme() bool {
	return m.themeContent != nil
}
