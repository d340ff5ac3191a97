package theme

import (
	"encoding/binary"
	"fmt"
)

// Cached is the recomputable result of a full theme load: a palette
// snapshot plus the background re-encoded as BMP, stamped with checksums of
// the palette layout and the raw theme content. A record is usable only
// while both checksums still match; anything else means a full reload.
type Cached struct {
	PaletteChecksum uint32
	ContentChecksum uint32
	Colors          []byte
	Background      []byte
	Tiled           bool
}

var cachedMagic = [4]byte{'T', 'H', 'C', '1'}

// Encode serializes the record for persistence.
func (c *Cached) Encode() []byte {
	out := make([]byte, 0, 4+4+4+1+4+len(c.Colors)+4+len(c.Background))
	out = append(out, cachedMagic[:]...)
	out = binary.BigEndian.AppendUint32(out, c.PaletteChecksum)
	out = binary.BigEndian.AppendUint32(out, c.ContentChecksum)
	if c.Tiled {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = binary.BigEndian.AppendUint32(out, uint32(len(c.Colors)))
	out = append(out, c.Colors...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(c.Background)))
	out = append(out, c.Background...)
	return out
}

// DecodeCached parses a record produced by Encode.
func DecodeCached(data []byte) (*Cached, error) {
	if len(data) < 17 || [4]byte(data[:4]) != cachedMagic {
		return nil, fmt.Errorf("theme: cache record is malformed")
	}
	c := &Cached{
		PaletteChecksum: binary.BigEndian.Uint32(data[4:]),
		ContentChecksum: binary.BigEndian.Uint32(data[8:]),
		Tiled:           data[12] == 1,
	}
	pos := 13
	for i, dst := range []*[]byte{&c.Colors, &c.Background} {
		if len(data) < pos+4 {
			return nil, fmt.Errorf("theme: cache record truncated (field %d)", i)
		}
		n := int(binary.BigEndian.Uint32(data[pos:]))
		pos += 4
		if len(data) < pos+n {
			return nil, fmt.Errorf("theme: cache record truncated (field %d)", i)
		}
		if n > 0 {
			*dst = append([]byte(nil), data[pos:pos+n]...)
		}
		pos += n
	}
	return c, nil
}
