package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
)

// Decode reads an image from raw bytes. JPEG, PNG and BMP are negotiated by
// content sniffing.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imgutil: decode image: %w", err)
	}
	return img, nil
}

// EncodeBMP re-encodes an image into the lossless cache representation. The
// result never aliases the source's backing buffer, so the original theme
// package bytes can be released independently.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imgutil: encode BMP: %w", err)
	}
	return buf.Bytes(), nil
}
