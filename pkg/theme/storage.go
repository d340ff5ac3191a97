package theme

import "image"

// Storage persists theme state between runs. The engine treats it as a
// collaborator: pkg/storage implements it on disk, tests use an in-memory
// version.
type Storage interface {
	// ReadBackground restores the persisted background selection. ok is
	// false on first run or when nothing usable is stored. img is non-nil
	// only for a custom background; built-ins persist as id alone.
	ReadBackground() (id BackgroundID, img image.Image, tile bool, ok bool)

	// WriteBackground persists the background selection. img must be nil
	// for built-in ids.
	WriteBackground(id BackgroundID, img image.Image) error

	// WriteUserSettings persists the tiling flag.
	WriteUserSettings(tile bool) error

	// WriteTheme persists a theme's raw content and its Cached record
	// under both path forms. Empty paths with empty content clear the
	// stored theme.
	WriteTheme(pathRelative, pathAbsolute string, content []byte, cache *Cached) error

	// HasTheme reports whether a theme is currently stored.
	HasTheme() bool
}
