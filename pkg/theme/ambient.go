package theme

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"gitlab.com/tinyland/lab/chat-theme/pkg/imgutil"
	"gitlab.com/tinyland/lab/chat-theme/pkg/palette"
)

// initColorsFromBackground recolors the fixed service chrome (message
// service bubbles, scrollbar) to match the background photo: the image's
// average color contributes its hue and saturation, each service color
// keeps its own lightness and alpha.
func (m *Manager) initColorsFromBackground(img *image.NRGBA) {
	r, g, b := imgutil.AverageColor(img)
	avg := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	hue, saturation, _ := avg.Hsl()

	for _, name := range palette.ServiceNames {
		current, ok := m.palette.Get(name)
		if !ok {
			continue
		}
		_, _, lightness := colorful.Color{
			R: float64(current.R) / 255,
			G: float64(current.G) / 255,
			B: float64(current.B) / 255,
		}.Hsl()
		cr, cg, cb := colorful.Hsl(hue, saturation, lightness).Clamped().RGB255()
		m.palette.SetColor(name, palette.RGBA{R: cr, G: cg, B: cb, A: current.A})
	}
}
