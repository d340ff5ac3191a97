package theme

import (
	"image"

	"github.com/charmbracelet/log"

	"gitlab.com/tinyland/lab/chat-theme/pkg/imgutil"
)

// minimumTiledSize is the threshold, in device-independent units, below
// which a background is repeated into a larger canvas instead of being
// stretched.
const minimumTiledSize = 512

// BackgroundID identifies which background is on screen.
type BackgroundID int

const (
	// BackgroundUninitialized is the pre-Start state.
	BackgroundUninitialized BackgroundID = iota
	// BackgroundInitial is the first-run artwork.
	BackgroundInitial
	// BackgroundDefault is the fallback artwork.
	BackgroundDefault
	// BackgroundTheme is the image supplied by the active theme package.
	BackgroundTheme
	// BackgroundCustom is a user-picked image, persisted with its pixels.
	BackgroundCustom
	// BackgroundTestingTheme previews a candidate theme's image.
	BackgroundTestingTheme
	// BackgroundTestingDefault previews the default artwork.
	BackgroundTestingDefault
)

func (id BackgroundID) testing() bool {
	return id == BackgroundTestingTheme || id == BackgroundTestingDefault
}

func (id BackgroundID) String() string {
	switch id {
	case BackgroundUninitialized:
		return "uninitialized"
	case BackgroundInitial:
		return "initial"
	case BackgroundDefault:
		return "default"
	case BackgroundTheme:
		return "theme"
	case BackgroundCustom:
		return "custom"
	case BackgroundTestingTheme:
		return "testing-theme"
	case BackgroundTestingDefault:
		return "testing-default"
	}
	return "unknown"
}

// ChatBackground owns the on-screen chat background: the current id, the
// prepared main and tiled pixmaps, the active theme's image, and the
// snapshot used to restore everything when a preview is cancelled.
type ChatBackground struct {
	m *Manager

	id             BackgroundID
	pixmap         *image.NRGBA
	pixmapForTiled *image.NRGBA
	tile           bool

	themeImage *image.NRGBA
	themeTile  bool

	idForRevert    BackgroundID
	imageForRevert *image.NRGBA
	tileForRevert  bool
}

// SetThemeData installs the active theme's background image without
// touching the on-screen state. A later transition to BackgroundTheme picks
// it up.
func (b *ChatBackground) SetThemeData(img image.Image, tiled bool) {
	b.themeImage = imgutil.ToNRGBA(img)
	b.themeTile = tiled
}

// Start restores the persisted background on first use, falling back to the
// theme-provided image (or the default artwork when the theme has none).
func (b *ChatBackground) Start() {
	if b.id != BackgroundUninitialized {
		return
	}
	if id, img, tile, ok := b.m.store.ReadBackground(); ok {
		b.tile = tile
		b.SetImage(id, img)
		return
	}
	b.SetImage(BackgroundTheme, nil)
}

// ensureStarted runs Start before any operation that inspects prepared
// state, so callers never observe empty pixmaps.
func (b *ChatBackground) ensureStarted() {
	if b.pixmap == nil {
		b.Start()
	}
}

// SetImage is the central transition. Built-in and downgrade rules:
// BackgroundTheme with no theme image becomes BackgroundDefault; a testing
// id with a nil image becomes BackgroundTestingDefault on the default
// artwork; BackgroundInitial loads (and density-scales) the first-run
// artwork; any other id with a nil image becomes BackgroundDefault.
// Non-built-in selections are persisted with their pixels.
func (b *ChatBackground) SetImage(id BackgroundID, img image.Image) {
	if id == BackgroundTheme && b.themeImage == nil {
		id = BackgroundDefault
	}
	b.id = id
	switch {
	case b.id == BackgroundTheme:
		b.tile = b.themeTile
		b.setPreparedImage(imgutil.CloneNRGBA(b.themeImage))

	case b.id.testing():
		if b.id == BackgroundTestingDefault || img == nil {
			img = b.m.art.Default()
			b.id = BackgroundTestingDefault
		}
		b.setPreparedImage(imgutil.ToNRGBA(img))

	default:
		if b.id == BackgroundInitial {
			img = b.m.art.Initial()
			if b.m.scale > 1 {
				width := int(float64(img.Bounds().Dx()) * b.m.scale)
				img = imgutil.ScaleToWidth(img, width)
			}
		} else if b.id == BackgroundDefault || img == nil {
			b.id = BackgroundDefault
			img = b.m.art.Default()
		}
		var persisted image.Image
		if b.id != BackgroundDefault && b.id != BackgroundInitial {
			persisted = img
		}
		if err := b.m.store.WriteBackground(b.id, persisted); err != nil {
			log.Warn("could not persist chat background", "id", b.id, "err", err)
		}
		b.setPreparedImage(imgutil.ToNRGBA(img))
	}
	if b.pixmap == nil || b.pixmapForTiled == nil {
		panic("theme: chat background pixmaps not prepared")
	}
	b.m.notifier.broadcast(BackgroundUpdate{Type: UpdateNew, Tiled: b.tile}, false)
}

// setPreparedImage normalizes the image, recomputes ambient service colors
// when the background is not theme-driven, and derives the tiled variant.
func (b *ChatBackground) setPreparedImage(img *image.NRGBA) {
	if b.id != BackgroundTheme && b.id != BackgroundTestingTheme {
		colorsFromTheme := b.m.store.HasTheme()
		if b.m.applying.paletteForRevert != nil {
			colorsFromTheme = b.m.applying.path != ""
		}
		if colorsFromTheme || (b.id != BackgroundDefault && b.id != BackgroundTestingDefault) {
			b.m.initColorsFromBackground(img)
		}
	}

	if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		panic("theme: chat background image has no pixels")
	}
	// The threshold is in device-independent units.
	b.pixmapForTiled = imgutil.Tile(img, int(minimumTiledSize*b.m.scale))
	b.pixmap = img
}

// ID returns the current background id.
func (b *ChatBackground) ID() BackgroundID {
	return b.id
}

// Tile reports whether the background is currently tiled.
func (b *ChatBackground) Tile() bool {
	return b.tile
}

// TileForSave is the tiling flag to persist: during a preview that is the
// pre-preview snapshot, not the live value.
func (b *ChatBackground) TileForSave() bool {
	if b.id.testing() {
		return b.tileForRevert
	}
	return b.tile
}

// Image returns the prepared main pixmap.
func (b *ChatBackground) Image() *image.NRGBA {
	return b.pixmap
}

// TiledImage returns the prepared repeated-background pixmap. It aliases
// Image when the source already meets the tiling threshold.
func (b *ChatBackground) TiledImage() *image.NRGBA {
	return b.pixmapForTiled
}

// SetTile switches tiling on or off, persisting the setting unless a
// preview is active.
func (b *ChatBackground) SetTile(tile bool) {
	b.ensureStarted()
	if b.tile == tile {
		return
	}
	b.tile = tile
	if !b.id.testing() {
		if err := b.m.store.WriteUserSettings(b.tile); err != nil {
			log.Warn("could not persist tile setting", "err", err)
		}
	}
	b.m.notifier.broadcast(BackgroundUpdate{Type: UpdateChanged, Tiled: b.tile}, false)
}

// SaveForRevert captures the pre-preview snapshot. While already previewing
// the existing snapshot stays authoritative.
func (b *ChatBackground) SaveForRevert() {
	b.ensureStarted()
	if b.id.testing() {
		return
	}
	b.idForRevert = b.id
	b.imageForRevert = imgutil.CloneNRGBA(b.pixmap)
	b.tileForRevert = b.tile
}

// Reset recomputes the revert snapshot during a preview (pointing it at the
// theme image or the default) and otherwise re-applies the theme background.
func (b *ChatBackground) Reset() {
	if b.id.testing() {
		if b.themeImage == nil {
			b.idForRevert = BackgroundDefault
			b.imageForRevert = nil
			b.tileForRevert = false
		} else {
			b.idForRevert = BackgroundTheme
			b.imageForRevert = imgutil.CloneNRGBA(b.themeImage)
			b.tileForRevert = b.themeTile
		}
		return
	}
	b.SetImage(BackgroundTheme, nil)
}

// SetTestingTheme applies a candidate theme's palette to the live registry
// and previews its background. A candidate without a background leaves the
// current image, re-preparing it so the ambient service colors follow the
// new palette.
func (b *ChatBackground) SetTestingTheme(inst *Instance) {
	b.m.palette.Apply(inst.Palette)
	if inst.Background != nil || b.id == BackgroundTheme {
		b.SaveForRevert()
		b.SetImage(BackgroundTestingTheme, inst.Background)
		b.SetTile(inst.Tiled)
	} else {
		// Re-apply the current image so service colors are recounted.
		b.SetImage(b.id, b.pixmap)
	}
	b.m.notifier.broadcast(BackgroundUpdate{Type: UpdateTestingTheme, Tiled: b.tile}, true)
}

// SetTestingDefaultTheme resets the live palette to built-in defaults and
// previews the default background.
func (b *ChatBackground) SetTestingDefaultTheme() {
	b.m.palette.Reset()
	if b.id == BackgroundTheme {
		b.SaveForRevert()
		b.SetImage(BackgroundTestingDefault, nil)
		b.SetTile(false)
	} else {
		// Re-apply the current image so service colors are recounted.
		b.SetImage(b.id, b.pixmap)
	}
	b.m.notifier.broadcast(BackgroundUpdate{Type: UpdateTestingTheme, Tiled: b.tile}, true)
}

// KeepApplied commits a preview: the testing id loses its testing
// qualifier, the now-current pixmap becomes the theme image for future
// BackgroundTheme transitions, and the selection is persisted.
func (b *ChatBackground) KeepApplied() {
	switch b.id {
	case BackgroundTestingTheme:
		b.id = BackgroundTheme
		b.themeImage = imgutil.CloneNRGBA(b.pixmap)
		b.themeTile = b.tile
		b.writeNewBackgroundSettings()
	case BackgroundTestingDefault:
		b.id = BackgroundDefault
		b.themeImage = nil
		b.themeTile = false
		b.writeNewBackgroundSettings()
	}
	b.m.notifier.broadcast(BackgroundUpdate{Type: UpdateApplyingTheme, Tiled: b.tile}, true)
}

func (b *ChatBackground) writeNewBackgroundSettings() {
	if b.tile != b.tileForRevert {
		if err := b.m.store.WriteUserSettings(b.tile); err != nil {
			log.Warn("could not persist tile setting", "err", err)
		}
	}
	if err := b.m.store.WriteBackground(b.id, nil); err != nil {
		log.Warn("could not persist chat background", "id", b.id, "err", err)
	}
}

// Revert cancels a preview, restoring the pre-preview snapshot. Outside a
// preview it re-applies the current image so ambient colors are recounted.
func (b *ChatBackground) Revert() {
	if b.id.testing() {
		b.SetTile(b.tileForRevert)
		b.SetImage(b.idForRevert, b.imageForRevert)
		b.imageForRevert = nil
	} else {
		// Re-apply the current image so service colors are recounted.
		b.SetImage(b.id, b.pixmap)
	}
	b.m.notifier.broadcast(BackgroundUpdate{Type: UpdateRevertingTheme, Tiled: b.tile}, true)
}
