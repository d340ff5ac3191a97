package palette

import (
	"encoding/binary"
	"fmt"
)

// Snapshot format: a 4-byte entry count followed by one RGBA quad per color
// in definition order. Names are not stored; the layout checksum guards
// against loading a snapshot produced by a different palette definition.

// Save serializes the current color values.
func (p *Palette) Save() []byte {
	out := make([]byte, 4, 4+4*len(p.colors))
	binary.BigEndian.PutUint32(out, uint32(len(p.colors)))
	for _, c := range p.colors {
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}

// Load restores color values from a snapshot produced by Save. The palette
// is left unchanged when the snapshot is malformed.
func (p *Palette) Load(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("palette: snapshot truncated (%d bytes)", len(data))
	}
	count := int(binary.BigEndian.Uint32(data))
	if count != len(p.colors) {
		return fmt.Errorf("palette: snapshot has %d colors, palette defines %d", count, len(p.colors))
	}
	if len(data) != 4+4*count {
		return fmt.Errorf("palette: snapshot size %d does not match %d colors", len(data), count)
	}
	for i := 0; i < count; i++ {
		off := 4 + 4*i
		p.colors[i] = RGBA{data[off], data[off+1], data[off+2], data[off+3]}
	}
	return nil
}
