package theme

import "image"

// Artwork supplies the built-in background images. The host application
// normally provides its bundled assets; BuiltinArtwork is a self-contained
// fallback so the engine works without any asset files.
type Artwork interface {
	// Default returns the fallback chat background.
	Default() image.Image

	// Initial returns the first-run chat background.
	Initial() image.Image
}

// BuiltinArtwork generates artwork procedurally: a large vertical gradient
// for the default background and a small patterned square for the initial
// one. The initial image is deliberately below the tiling threshold so the
// repeated-background path is exercised.
type BuiltinArtwork struct{}

func (BuiltinArtwork) Default() image.Image {
	const size = 640
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		// Soft blue-gray fading toward the bottom.
		r := uint8(0xd9 - y*0x20/size)
		g := uint8(0xe7 - y*0x18/size)
		b := uint8(0xef - y*0x10/size)
		for x := 0; x < size; x++ {
			off := y*img.Stride + x*4
			img.Pix[off] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = b
			img.Pix[off+3] = 0xff
		}
	}
	return img
}

func (BuiltinArtwork) Initial() image.Image {
	const size = 160
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := y*img.Stride + x*4
			shade := uint8(0xe8)
			if (x/20+y/20)%2 == 0 {
				shade = 0xdd
			}
			img.Pix[off] = shade
			img.Pix[off+1] = shade + 6
			img.Pix[off+2] = shade + 12
			img.Pix[off+3] = 0xff
		}
	}
	return img
}
