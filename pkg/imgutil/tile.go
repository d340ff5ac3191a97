package imgutil

import "image"

// Tile prepares the repeated-background variant of img. When both
// dimensions already reach minSize the source itself is returned (no copy).
// Otherwise a canvas of ceil(minSize/width) by ceil(minSize/height) repeats
// is synthesized by copying source scanlines into every tile position.
func Tile(img *image.NRGBA, minSize int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		panic("imgutil: tile source has no pixels")
	}
	if w >= minSize && h >= minSize {
		return img
	}

	repeatX := (minSize + w - 1) / w
	repeatY := (minSize + h - 1) / h
	tiled := image.NewNRGBA(image.Rect(0, 0, w*repeatX, h*repeatY))

	rowBytes := w * 4
	for ty := 0; ty < repeatY; ty++ {
		for y := 0; y < h; y++ {
			src := img.Pix[y*img.Stride : y*img.Stride+rowBytes]
			dstRow := (ty*h + y) * tiled.Stride
			for tx := 0; tx < repeatX; tx++ {
				copy(tiled.Pix[dstRow+tx*rowBytes:dstRow+(tx+1)*rowBytes], src)
			}
		}
	}
	return tiled
}
