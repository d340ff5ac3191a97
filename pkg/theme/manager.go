// Package theme implements theme loading and live theme switching for the
// chat application: parsing packaged themes, deriving chat background
// pixmaps, checksum-based caching, and the preview/commit/revert workflow
// that lets a user try a theme before keeping it.
package theme

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"gitlab.com/tinyland/lab/chat-theme/pkg/palette"
)

// applying is the pending-commit record of a theme being previewed. It
// exists only while a preview is outstanding and is cleared on commit or
// revert. paletteForRevert is the palette snapshot taken before the first
// preview of the session; chained previews all revert to it.
type applying struct {
	path             string
	content          []byte
	cached           Cached
	paletteForRevert []byte
}

func (a *applying) pending() bool {
	return a.paletteForRevert != nil || a.path != "" || a.content != nil
}

// Options configures a Manager. Storage is required; everything else has a
// working default.
type Options struct {
	Palette *palette.Palette // live registry; defaults to palette.New()
	Storage Storage
	Artwork Artwork // built-in backgrounds; defaults to BuiltinArtwork
	Scale   float64 // device pixel density; defaults to 1
}

// Manager owns the subsystem state the original kept in a process-wide
// singleton: the live palette, the chat background state machine and the
// pending-preview record. The host application constructs one explicitly
// and tears it down with Close, which keeps lifecycle deterministic in
// tests.
type Manager struct {
	palette    *palette.Palette
	store      Storage
	art        Artwork
	notifier   Notifier
	scale      float64
	background *ChatBackground
	applying   applying
}

// NewManager wires a Manager from its collaborators.
func NewManager(opts Options) (*Manager, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("theme: storage is required")
	}
	m := &Manager{
		palette: opts.Palette,
		store:   opts.Storage,
		art:     opts.Artwork,
		scale:   opts.Scale,
	}
	if m.palette == nil {
		m.palette = palette.New()
	}
	if m.art == nil {
		m.art = BuiltinArtwork{}
	}
	if m.scale <= 0 {
		m.scale = 1
	}
	m.background = &ChatBackground{m: m}
	return m, nil
}

// Close drops all derived state: the pending preview, the prepared pixmaps
// and the revert snapshot. The manager is reusable afterwards; the next
// background operation starts from persisted state again.
func (m *Manager) Close() {
	m.applying = applying{}
	m.background = &ChatBackground{m: m}
	m.notifier.last = nil
}

// Palette returns the live color registry.
func (m *Manager) Palette() *palette.Palette {
	return m.palette
}

// Background returns the chat background state machine.
func (m *Manager) Background() *ChatBackground {
	return m.background
}

// OnUpdate subscribes an observer to background notifications.
func (m *Manager) OnUpdate(fn func(BackgroundUpdate)) {
	m.notifier.Subscribe(fn)
}

// Load applies a stored theme at startup: the cache fast path when the
// Cached record still matches, otherwise a full parse whose fresh Cached
// record is persisted under both path forms.
func (m *Manager) Load(pathRelative, pathAbsolute string, content []byte, cache *Cached) error {
	if len(content) < 4 {
		return fmt.Errorf("theme: could not load theme from %q (%q): content too short", pathRelative, pathAbsolute)
	}
	if m.loadFromCache(content, cache) {
		return nil
	}
	if cache == nil {
		cache = &Cached{}
	}
	if err := m.loadTheme(content, cache, nil); err != nil {
		return err
	}
	if err := m.store.WriteTheme(pathRelative, pathAbsolute, content, cache); err != nil {
		return fmt.Errorf("theme: persist theme: %w", err)
	}
	return nil
}

// LoadFromFile parses a theme file into a private Preview without touching
// live state.
func (m *Manager) LoadFromFile(path string) (*Preview, error) {
	content, err := readThemeContent(path)
	if err != nil {
		return nil, err
	}
	if len(content) < 4 {
		return nil, fmt.Errorf("theme: could not load theme from %q: content too short", path)
	}
	preview := &Preview{
		Path:    path,
		Content: content,
		Instance: Instance{
			Palette: palette.New(),
		},
	}
	if err := m.loadTheme(content, &preview.Instance.Cached, &preview.Instance); err != nil {
		return nil, err
	}
	return preview, nil
}

// ApplyFile loads a theme file and previews it.
func (m *Manager) ApplyFile(path string) error {
	preview, err := m.LoadFromFile(path)
	if err != nil {
		return err
	}
	m.Apply(preview)
	return nil
}

// Apply previews a loaded theme. The first preview of a pending session
// snapshots the palette for revert; chained previews keep the original
// snapshot so Revert always restores the pre-session state.
func (m *Manager) Apply(preview *Preview) {
	m.applying.path = preview.Path
	m.applying.content = preview.Content
	m.applying.cached = preview.Instance.Cached
	if m.applying.paletteForRevert == nil {
		m.applying.paletteForRevert = m.palette.Save()
	}
	m.background.SetTestingTheme(&preview.Instance)
}

// ApplyDefault previews the built-in default theme under the same pending
// session semantics as Apply.
func (m *Manager) ApplyDefault() {
	m.applying.path = ""
	m.applying.content = nil
	m.applying.cached = Cached{}
	if m.applying.paletteForRevert == nil {
		m.applying.paletteForRevert = m.palette.Save()
	}
	m.background.SetTestingDefaultTheme()
}

// KeepApplied commits the pending preview: the theme is persisted under
// both path forms (empty for a default preview), the pending record is
// cleared and the state machine leaves its testing state. Without a pending
// preview it is a no-op.
func (m *Manager) KeepApplied() {
	if !m.applying.pending() {
		return
	}
	var pathRelative, pathAbsolute string
	if m.applying.path != "" {
		if rel, err := filepath.Rel(".", m.applying.path); err == nil {
			pathRelative = rel
		} else {
			pathRelative = m.applying.path
		}
		if abs, err := filepath.Abs(m.applying.path); err == nil {
			pathAbsolute = abs
		} else {
			pathAbsolute = m.applying.path
		}
	}
	if err := m.store.WriteTheme(pathRelative, pathAbsolute, m.applying.content, &m.applying.cached); err != nil {
		// The theme stays applied for this run even when persisting
		// fails; the next start falls back to the previous theme.
		log.Warn("could not persist applied theme", "path", m.applying.path, "err", err)
	}
	m.applying = applying{}
	m.background.KeepApplied()
}

// Revert cancels the pending preview, restoring the snapshotted palette and
// the pre-preview background.
func (m *Manager) Revert() {
	if m.applying.paletteForRevert != nil {
		_ = m.palette.Load(m.applying.paletteForRevert)
	}
	m.applying = applying{}
	m.background.Revert()
}
