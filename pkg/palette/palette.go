// Package palette implements the named-color registry that backs the chat
// theme engine. A Palette maps fixed style identifiers to RGBA values, starts
// from built-in defaults, and supports binary snapshots so a complete color
// state can be persisted and restored byte-for-byte.
package palette

import (
	"fmt"
	"hash/crc32"
	"sort"
)

// RGBA is a non-premultiplied 8-bit-per-channel color value.
type RGBA struct {
	R, G, B, A uint8
}

// Hex formats the color as "#rrggbb" or "#rrggbbaa" when alpha is not opaque.
func (c RGBA) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Sink receives color assignments from a scheme parser. The live registry
// and a preview's private palette both implement it, so parsing never has to
// know whether it is mutating on-screen state.
type Sink interface {
	// SetColor assigns an explicit value to a named color. It reports
	// whether the name is known to the palette.
	SetColor(name string, value RGBA) bool

	// SetColorRef assigns the current value of another named color. It
	// reports false when either name is unknown.
	SetColorRef(name, ref string) bool
}

// Palette is an ordered registry of named colors. The name set is fixed at
// construction; only values change. The zero value is not usable, call New.
type Palette struct {
	names  []string
	index  map[string]int
	colors []RGBA
}

// New returns a palette initialized with the built-in default colors.
func New() *Palette {
	p := &Palette{
		names:  make([]string, 0, len(defaultColors)),
		index:  make(map[string]int, len(defaultColors)),
		colors: make([]RGBA, 0, len(defaultColors)),
	}
	for _, d := range defaultColors {
		p.index[d.name] = len(p.names)
		p.names = append(p.names, d.name)
		p.colors = append(p.colors, d.value)
	}
	return p
}

// SetColor implements Sink.
func (p *Palette) SetColor(name string, value RGBA) bool {
	i, ok := p.index[name]
	if !ok {
		return false
	}
	p.colors[i] = value
	return true
}

// SetColorRef implements Sink.
func (p *Palette) SetColorRef(name, ref string) bool {
	j, ok := p.index[ref]
	if !ok {
		return false
	}
	return p.SetColor(name, p.colors[j])
}

// Get returns the current value of a named color.
func (p *Palette) Get(name string) (RGBA, bool) {
	i, ok := p.index[name]
	if !ok {
		return RGBA{}, false
	}
	return p.colors[i], true
}

// Names returns all color names sorted alphabetically.
func (p *Palette) Names() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)
	sort.Strings(names)
	return names
}

// Apply copies every value from other into p. Both palettes share the fixed
// built-in name set, so this replaces the complete color state.
func (p *Palette) Apply(other *Palette) {
	copy(p.colors, other.colors)
}

// Reset restores every color to its built-in default value.
func (p *Palette) Reset() {
	for i, d := range defaultColors {
		p.colors[i] = d.value
	}
}

// Checksum returns the palette layout checksum: a CRC32 over the name set
// and default values. It changes when the built-in palette definition
// changes between builds, never when values are assigned at runtime. Cached
// theme records stamped with a different layout are recomputed from source.
func (p *Palette) Checksum() uint32 {
	return layoutChecksum
}

var layoutChecksum = func() uint32 {
	h := crc32.NewIEEE()
	for _, d := range defaultColors {
		h.Write([]byte(d.name))
		h.Write([]byte{d.value.R, d.value.G, d.value.B, d.value.A})
	}
	return h.Sum32()
}()
