// Package imgutil holds the pixel-level helpers behind chat background
// preparation: format normalization, tiled-canvas synthesis, scaling and the
// lossless cache codec.
package imgutil

import (
	"image"
	"image/draw"
)

// ToNRGBA converts any image to *image.NRGBA for direct pixel access. An
// image that already is NRGBA is returned as-is, without copying.
func ToNRGBA(src image.Image) *image.NRGBA {
	if nrgba, ok := src.(*image.NRGBA); ok {
		return nrgba
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

// CloneNRGBA returns an independent pixel-for-pixel copy. Rows are copied
// one at a time so a sub-image view, whose stride spans its parent, clones
// correctly.
func CloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	rowBytes := bounds.Dx() * 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		srcOff := src.PixOffset(bounds.Min.X, y)
		dstOff := dst.PixOffset(bounds.Min.X, y)
		copy(dst.Pix[dstOff:dstOff+rowBytes], src.Pix[srcOff:srcOff+rowBytes])
	}
	return dst
}

// AverageColor computes the unweighted mean of the R, G and B channels over
// every pixel. Alpha is ignored. A zero-area image yields black.
func AverageColor(img *image.NRGBA) (r, g, b uint8) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	size := uint64(w) * uint64(h)
	if size == 0 {
		return 0, 0, 0
	}

	var sums [3]uint64
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			sums[0] += uint64(row[x])
			sums[1] += uint64(row[x+1])
			sums[2] += uint64(row[x+2])
		}
	}
	return uint8(sums[0] / size), uint8(sums[1] / size), uint8(sums[2] / size)
}
