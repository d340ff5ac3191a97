package theme

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"gitlab.com/tinyland/lab/chat-theme/pkg/imgutil"
	"gitlab.com/tinyland/lab/chat-theme/pkg/palette"
	"gitlab.com/tinyland/lab/chat-theme/pkg/scheme"
)

// Size limits for theme packages and their entries.
const (
	// FileSizeLimit caps a whole theme file read from disk.
	FileSizeLimit = 5 * 1024 * 1024
	// BackgroundSizeLimit caps a background entry inside a package.
	BackgroundSizeLimit = 4 * 1024 * 1024
	// SchemeSizeLimit caps the color-scheme entry inside a package.
	SchemeSizeLimit = scheme.MaxSchemeSize
)

// schemeEntryName is the required color-scheme entry of a packaged theme,
// matched case-insensitively.
const schemeEntryName = "colors.tdesktop-theme"

// backgroundEntryNames are probed in priority order. The tiled.* names
// force the tiling flag on.
var backgroundEntryNames = [...]string{
	"background.jpg",
	"background.png",
	"tiled.jpg",
	"tiled.png",
}

// Instance is the result of parsing a theme into a private target: the
// palette it produces, its decoded background and the Cached record derived
// from both. Nothing in an Instance touches live state until it is handed
// to the background state machine.
type Instance struct {
	Palette    *palette.Palette
	Background image.Image
	Tiled      bool
	Cached     Cached
}

// Preview bundles an Instance with the path and raw content it came from,
// ready to be applied as a testing theme.
type Preview struct {
	Path     string
	Content  []byte
	Instance Instance
}

// readThemeContent reads a theme file from disk, enforcing FileSizeLimit.
func readThemeContent(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("theme: stat %s: %w", path, err)
	}
	if info.Size() > FileSizeLimit {
		return nil, fmt.Errorf("theme: file %s too large: %d bytes (limit %d)", path, info.Size(), FileSizeLimit)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return content, nil
}

// errEntryNotFound distinguishes an absent archive entry, which is an
// expected probing outcome, from a real read failure.
var errEntryNotFound = errors.New("entry not found")

// readZipEntry extracts a named entry, matched case-insensitively, honoring
// a size limit. Returns errEntryNotFound when no entry matches.
func readZipEntry(zr *zip.Reader, name string, limit uint64) ([]byte, error) {
	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		if f.UncompressedSize64 > limit {
			return nil, fmt.Errorf("theme: entry %q too large: %d bytes (limit %d)", name, f.UncompressedSize64, limit)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("theme: open entry %q: %w", name, err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("theme: read entry %q: %w", name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, errEntryNotFound
}

// loadBackgroundEntry probes the candidate background names in priority
// order. An absent entry is not an error; a read failure on a present one
// is. All four absent means a palette-only theme.
func loadBackgroundEntry(zr *zip.Reader) (data []byte, tiled bool, err error) {
	for _, name := range backgroundEntryNames {
		data, err = readZipEntry(zr, name, BackgroundSizeLimit)
		if errors.Is(err, errEntryNotFound) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return data, strings.HasPrefix(name, "tiled."), nil
	}
	return nil, false, nil
}

// loadTheme fully parses theme content. When out is nil the scheme is
// applied to the live palette and the background goes straight to the state
// machine; otherwise everything lands in out. On success the Cached record
// is populated with the palette snapshot and both checksums.
func (m *Manager) loadTheme(content []byte, cache *Cached, out *Instance) error {
	*cache = Cached{}

	var sink palette.Sink = m.palette
	if out != nil {
		sink = out.Palette
	}

	zr, zipErr := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if zipErr == nil {
		schemeContent, err := readZipEntry(zr, schemeEntryName, uint64(SchemeSizeLimit))
		if err != nil {
			return fmt.Errorf("theme: could not read %q in the theme file: %w", schemeEntryName, err)
		}
		if err := scheme.Parse(schemeContent, sink); err != nil {
			return err
		}

		backgroundContent, tiled, err := loadBackgroundEntry(zr)
		if err != nil {
			return err
		}
		if len(backgroundContent) > 0 {
			background, err := imgutil.Decode(backgroundContent)
			if err != nil {
				return fmt.Errorf("theme: could not read background image in the theme file: %w", err)
			}
			encoded, err := imgutil.EncodeBMP(background)
			if err != nil {
				return fmt.Errorf("theme: could not cache background image: %w", err)
			}
			cache.Background = encoded
			cache.Tiled = tiled

			if out != nil {
				out.Background = background
				out.Tiled = tiled
			} else {
				m.background.SetThemeData(background, tiled)
			}
		}
	} else {
		// Not a zip container, treat the whole content as a bare
		// color scheme.
		if err := scheme.Parse(content, sink); err != nil {
			return err
		}
	}

	if out != nil {
		cache.Colors = out.Palette.Save()
	} else {
		cache.Colors = m.palette.Save()
	}
	cache.PaletteChecksum = m.palette.Checksum()
	cache.ContentChecksum = crc32.ChecksumIEEE(content)
	return nil
}

// loadFromCache is the fast path: restore palette and background from a
// Cached record when both its checksums still match. Any mismatch or decode
// failure reports false and triggers a full reload, never an error.
func (m *Manager) loadFromCache(content []byte, cache *Cached) bool {
	if cache == nil {
		return false
	}
	if cache.PaletteChecksum != m.palette.Checksum() {
		return false
	}
	if cache.ContentChecksum != crc32.ChecksumIEEE(content) {
		return false
	}

	var background image.Image
	if len(cache.Background) > 0 {
		img, err := imgutil.Decode(cache.Background)
		if err != nil {
			return false
		}
		background = img
	}

	if err := m.palette.Load(cache.Colors); err != nil {
		return false
	}
	if background != nil {
		m.background.SetThemeData(background, cache.Tiled)
	}
	log.Debug("theme restored from cache", "tiled", cache.Tiled, "background", background != nil)
	return true
}
