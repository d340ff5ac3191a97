package palette

// defaultColors is the built-in palette definition. Order is load-bearing:
// snapshots serialize values in this order and the layout checksum covers it.
var defaultColors = []struct {
	name  string
	value RGBA
}{
	{"window-background", RGBA{0xff, 0xff, 0xff, 0xff}},
	{"window-foreground", RGBA{0x00, 0x00, 0x00, 0xff}},
	{"window-text-secondary", RGBA{0x99, 0x99, 0x99, 0xff}},
	{"window-accent", RGBA{0x2e, 0xa6, 0xda, 0xff}},
	{"window-border", RGBA{0xe0, 0xe0, 0xe0, 0xff}},
	{"title-background", RGBA{0xf2, 0xf2, 0xf2, 0xff}},
	{"title-foreground", RGBA{0x50, 0x50, 0x50, 0xff}},

	{"dialogs-background", RGBA{0xff, 0xff, 0xff, 0xff}},
	{"dialogs-background-over", RGBA{0xf5, 0xf5, 0xf5, 0xff}},
	{"dialogs-background-active", RGBA{0x41, 0x9f, 0xd9, 0xff}},
	{"dialogs-name", RGBA{0x21, 0x21, 0x21, 0xff}},
	{"dialogs-text", RGBA{0x8a, 0x8a, 0x8a, 0xff}},
	{"dialogs-unread-badge", RGBA{0x62, 0xb0, 0xe8, 0xff}},

	{"history-background", RGBA{0xd9, 0xe7, 0xef, 0xff}},
	{"history-text-in", RGBA{0x00, 0x00, 0x00, 0xff}},
	{"history-text-out", RGBA{0x00, 0x00, 0x00, 0xff}},
	{"history-bubble-in", RGBA{0xff, 0xff, 0xff, 0xff}},
	{"history-bubble-out", RGBA{0xef, 0xff, 0xde, 0xff}},
	{"history-link", RGBA{0x2a, 0x8b, 0xc1, 0xff}},
	{"history-timestamp", RGBA{0xa0, 0xac, 0xb6, 0xff}},

	// Service colors are recomputed from the background image's average
	// hue and saturation, see the ambient derivation in pkg/theme.
	{"service-background", RGBA{0x45, 0x5e, 0x6d, 0x99}},
	{"service-background-selected", RGBA{0x45, 0x5e, 0x6d, 0xcc}},
	{"scrollbar-background", RGBA{0x00, 0x00, 0x00, 0x0a}},
	{"scrollbar-background-over", RGBA{0x00, 0x00, 0x00, 0x1a}},
	{"scrollbar-bar", RGBA{0x00, 0x00, 0x00, 0x35}},
	{"scrollbar-bar-over", RGBA{0x00, 0x00, 0x00, 0x4d}},
}

// ServiceNames lists the palette entries recolored by ambient derivation.
var ServiceNames = []string{
	"service-background",
	"service-background-selected",
	"scrollbar-background",
	"scrollbar-background-over",
	"scrollbar-bar",
	"scrollbar-bar-over",
}
