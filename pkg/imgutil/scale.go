package imgutil

import (
	"image"

	"github.com/disintegration/imaging"
)

// ScaleToWidth resizes img to the given width, preserving aspect ratio,
// with CatmullRom resampling. Used for density-aware sizing of built-in
// artwork; a non-positive width returns the source unchanged.
func ScaleToWidth(img image.Image, width int) *image.NRGBA {
	if width <= 0 || img.Bounds().Dx() == width {
		return ToNRGBA(img)
	}
	return imaging.Resize(img, width, 0, imaging.CatmullRom)
}
