package theme

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"gitlab.com/tinyland/lab/chat-theme/pkg/palette"
)

// memStore is an in-memory Storage that records what the engine persists.
type memStore struct {
	id     BackgroundID
	img    image.Image
	tile   bool
	stored bool // pre-seeded background available to ReadBackground

	themeContent []byte
	themeCache   *Cached
	pathRelative string
	pathAbsolute string

	backgroundWrites int
	settingsWrites   int
}

func (s *memStore) ReadBackground() (BackgroundID, image.Image, bool, bool) {
	if !s.stored {
		return BackgroundUninitialized, nil, false, false
	}
	return s.id, s.img, s.tile, true
}

func (s *memStore) WriteBackground(id BackgroundID, img image.Image) error {
	s.id = id
	s.img = img
	s.backgroundWrites++
	return nil
}

func (s *memStore) WriteUserSettings(tile bool) error {
	s.tile = tile
	s.settingsWrites++
	return nil
}

func (s *memStore) WriteTheme(pathRelative, pathAbsolute string, content []byte, cache *Cached) error {
	s.pathRelative = pathRelative
	s.pathAbsolute = pathAbsolute
	if len(content) == 0 {
		s.themeContent = nil
		s.themeCache = nil
		return nil
	}
	s.themeContent = append([]byte(nil), content...)
	if cache != nil {
		copied := *cache
		s.themeCache = &copied
	}
	return nil
}

func (s *memStore) HasTheme() bool {
	return s.themeContent != nil
}

func newTestManager(t *testing.T) (*Manager, *memStore) {
	t.Helper()
	store := &memStore{}
	m, err := NewManager(Options{Storage: store})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, store
}

// solidPNG encodes a w*h single-color image.
func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// themeZip packages the given entries into an in-memory theme container.
func themeZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func newInstance() *Instance {
	return &Instance{Palette: palette.New()}
}
