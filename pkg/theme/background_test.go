package theme

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/tinyland/lab/chat-theme/pkg/palette"
)

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeThemeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestStartFallsBackToDefault(t *testing.T) {
	m, store := newTestManager(t)
	m.Background().Start()
	if got := m.Background().ID(); got != BackgroundDefault {
		t.Errorf("ID after first start = %v, want BackgroundDefault", got)
	}
	if m.Background().Image() == nil || m.Background().TiledImage() == nil {
		t.Error("start left pixmaps empty")
	}
	if store.backgroundWrites == 0 {
		t.Error("default selection was not persisted")
	}
}

func TestStartRestoresCustomBackground(t *testing.T) {
	m, store := newTestManager(t)
	store.stored = true
	store.id = BackgroundCustom
	store.img = solidNRGBA(50, 50, color.NRGBA{10, 120, 60, 255})
	store.tile = true

	m.Background().Start()
	if got := m.Background().ID(); got != BackgroundCustom {
		t.Errorf("ID = %v, want BackgroundCustom", got)
	}
	if !m.Background().Tile() {
		t.Error("persisted tile flag not restored")
	}
}

func TestSetImageThemeWithoutThemeImageDowngrades(t *testing.T) {
	m, _ := newTestManager(t)
	m.Background().SetImage(BackgroundTheme, nil)
	if got := m.Background().ID(); got != BackgroundDefault {
		t.Errorf("ID = %v, want BackgroundDefault", got)
	}
}

func TestSetImageSmallCustomGetsTiledPixmap(t *testing.T) {
	m, _ := newTestManager(t)
	m.Background().SetImage(BackgroundCustom, solidNRGBA(100, 100, color.NRGBA{40, 40, 200, 255}))
	tiled := m.Background().TiledImage()
	if w, h := tiled.Bounds().Dx(), tiled.Bounds().Dy(); w != 600 || h != 600 {
		t.Errorf("tiled pixmap is %dx%d, want 600x600", w, h)
	}
	if m.Background().Image() == m.Background().TiledImage() {
		t.Error("small background must get a synthesized tiled pixmap, not an alias")
	}
}

func TestAmbientColorsFollowBackground(t *testing.T) {
	m, _ := newTestManager(t)
	before, _ := m.Palette().Get("service-background")

	m.Background().SetImage(BackgroundCustom, solidNRGBA(64, 64, color.NRGBA{255, 0, 0, 255}))

	after, ok := m.Palette().Get("service-background")
	if !ok {
		t.Fatal("service-background disappeared")
	}
	if after == before {
		t.Fatal("service colors did not follow the background")
	}
	// A pure red background pins hue 0 at full saturation: red channel
	// dominant, green and blue equal and near zero, alpha untouched.
	if after.R < 150 || after.G > 5 || after.B > 5 {
		t.Errorf("service-background = %v, want a saturated red", after)
	}
	if after.A != before.A {
		t.Errorf("alpha changed: %d -> %d", before.A, after.A)
	}
}

func TestAmbientSkippedForDefaultWithoutTheme(t *testing.T) {
	m, _ := newTestManager(t)
	before, _ := m.Palette().Get("service-background")
	m.Background().SetImage(BackgroundDefault, nil)
	if after, _ := m.Palette().Get("service-background"); after != before {
		t.Error("default artwork recolored service chrome without an applied theme")
	}
}

func TestSetTile(t *testing.T) {
	m, store := newTestManager(t)
	m.Background().Start()
	writes := store.settingsWrites

	m.Background().SetTile(true)
	if !m.Background().Tile() {
		t.Error("tile flag not set")
	}
	if store.settingsWrites != writes+1 {
		t.Error("tile change not persisted")
	}

	m.Background().SetTile(true) // no-op
	if store.settingsWrites != writes+1 {
		t.Error("unchanged tile flag was persisted again")
	}
}

func TestSetTileDuringPreviewNotPersisted(t *testing.T) {
	m, store := newTestManager(t)
	inst := newInstance()
	inst.Background = solidNRGBA(600, 600, color.NRGBA{1, 2, 3, 255})
	m.Background().SetTestingTheme(inst)

	writes := store.settingsWrites
	m.Background().SetTile(!m.Background().Tile())
	if store.settingsWrites != writes {
		t.Error("tile change during a preview was persisted")
	}
}

func TestPreviewCommit(t *testing.T) {
	scheme := "window-background: #101010;\n"
	content := themeZip(t, map[string][]byte{
		"colors.tdesktop-theme": []byte(scheme),
		"tiled.png":             solidPNG(t, 64, 64, color.NRGBA{77, 99, 11, 255}),
	})
	path := writeThemeFile(t, "candidate.tdesktop-theme", content)

	m, store := newTestManager(t)
	var updates []BackgroundUpdate
	m.OnUpdate(func(u BackgroundUpdate) { updates = append(updates, u) })

	if err := m.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	if got := m.Background().ID(); got != BackgroundTestingTheme {
		t.Fatalf("ID during preview = %v, want BackgroundTestingTheme", got)
	}
	if !m.Background().Tile() {
		t.Error("tiled.png preview did not enable tiling")
	}
	if got, _ := m.Palette().Get("window-background"); got != (palette.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}) {
		t.Errorf("preview palette not applied: %v", got)
	}
	if store.themeContent != nil {
		t.Error("preview persisted the theme before commit")
	}

	sawTesting := false
	for _, u := range updates {
		if u.Type == UpdateTestingTheme {
			sawTesting = true
		}
	}
	if !sawTesting {
		t.Error("no TestingTheme notification during preview")
	}

	m.KeepApplied()
	if got := m.Background().ID(); got != BackgroundTheme {
		t.Errorf("ID after commit = %v, want BackgroundTheme", got)
	}
	if store.themeContent == nil {
		t.Fatal("commit did not persist the theme")
	}
	if store.pathRelative == "" || store.pathAbsolute == "" {
		t.Error("commit must persist under both path forms")
	}
	if last := updates[len(updates)-1].Type; last != UpdateApplyingTheme {
		t.Errorf("last update = %v, want UpdateApplyingTheme", last)
	}

	// Committing again without a pending preview is a no-op.
	store.themeContent = nil
	m.KeepApplied()
	if store.themeContent != nil {
		t.Error("KeepApplied without a pending preview persisted something")
	}
}

func TestPreviewRevertRestoresOriginalState(t *testing.T) {
	m, _ := newTestManager(t)
	m.Background().Start()
	originalID := m.Background().ID()
	originalBG, _ := m.Palette().Get("window-background")

	themeA := writeThemeFile(t, "a.tdesktop-theme", []byte("window-background: #111111;\n"))
	themeB := writeThemeFile(t, "b.tdesktop-theme", []byte("window-background: #222222;\n"))

	if err := m.ApplyFile(themeA); err != nil {
		t.Fatalf("ApplyFile(a): %v", err)
	}
	if err := m.ApplyFile(themeB); err != nil {
		t.Fatalf("ApplyFile(b): %v", err)
	}
	if got, _ := m.Palette().Get("window-background"); got != (palette.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}) {
		t.Fatalf("chained preview palette = %v", got)
	}

	m.Revert()
	if got, _ := m.Palette().Get("window-background"); got != originalBG {
		t.Errorf("revert palette = %v, want the pre-session value %v (not theme A's)", got, originalBG)
	}
	if got := m.Background().ID(); got.testing() {
		t.Errorf("ID after revert = %v, still a testing state", got)
	}
	if got := m.Background().ID(); got != originalID {
		t.Errorf("ID after revert = %v, want %v", got, originalID)
	}
	if m.applying.pending() {
		t.Error("pending record not cleared by revert")
	}
}

func TestPreviewWithBackgroundRevertRestoresTile(t *testing.T) {
	content := themeZip(t, map[string][]byte{
		"colors.tdesktop-theme": []byte("window-background: #333333;\n"),
		"tiled.png":             solidPNG(t, 48, 48, color.NRGBA{5, 6, 7, 255}),
	})
	path := writeThemeFile(t, "tiled.tdesktop-theme", content)

	m, _ := newTestManager(t)
	m.Background().Start()
	if m.Background().Tile() {
		t.Fatal("unexpected initial tiling")
	}

	if err := m.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	if !m.Background().Tile() {
		t.Fatal("preview did not enable tiling")
	}
	// TileForSave must report the pre-preview value while testing.
	if m.Background().TileForSave() {
		t.Error("TileForSave leaked the preview tiling flag")
	}

	m.Revert()
	if m.Background().Tile() {
		t.Error("revert did not restore the tiling flag")
	}
}

func TestApplyDefaultPreview(t *testing.T) {
	m, _ := newTestManager(t)
	m.Background().Start()
	m.Palette().SetColor("window-background", palette.RGBA{R: 9, G: 9, B: 9, A: 9})

	m.ApplyDefault()
	def, _ := palette.New().Get("window-background")
	if got, _ := m.Palette().Get("window-background"); got != def {
		t.Errorf("ApplyDefault palette = %v, want built-in default %v", got, def)
	}

	m.Revert()
	if got, _ := m.Palette().Get("window-background"); got != (palette.RGBA{R: 9, G: 9, B: 9, A: 9}) {
		t.Errorf("revert after ApplyDefault = %v, want the pre-preview value", got)
	}
}

func TestKeepAppliedDefaultPersistsEmptyPaths(t *testing.T) {
	m, store := newTestManager(t)
	m.Background().Start()
	store.pathRelative = "stale"
	store.pathAbsolute = "stale"

	m.ApplyDefault()
	m.KeepApplied()
	if store.pathRelative != "" || store.pathAbsolute != "" {
		t.Error("default commit must use empty paths")
	}
	if got := m.Background().ID(); got != BackgroundDefault {
		t.Errorf("ID after default commit = %v, want BackgroundDefault", got)
	}
}

func TestThemeProvidedBackgroundSurvivesCommit(t *testing.T) {
	content := themeZip(t, map[string][]byte{
		"colors.tdesktop-theme": []byte("window-background: #454545;\n"),
		"background.png":        solidPNG(t, 600, 600, color.NRGBA{90, 30, 30, 255}),
	})
	path := writeThemeFile(t, "bg.tdesktop-theme", content)

	m, _ := newTestManager(t)
	if err := m.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	m.KeepApplied()

	// A later transition back to the theme background reuses the frozen
	// image.
	m.Background().SetImage(BackgroundCustom, solidNRGBA(600, 600, color.NRGBA{0, 0, 0, 255}))
	m.Background().SetImage(BackgroundTheme, nil)
	if got := m.Background().ID(); got != BackgroundTheme {
		t.Errorf("ID = %v, want BackgroundTheme (theme image must be frozen at commit)", got)
	}
}

func TestResetDuringPreviewPointsRevertAtTheme(t *testing.T) {
	committed := themeZip(t, map[string][]byte{
		"colors.tdesktop-theme": []byte("window-background: #0a0a0a;\n"),
		"background.png":        solidPNG(t, 600, 600, color.NRGBA{20, 60, 90, 255}),
	})
	candidate := themeZip(t, map[string][]byte{
		"colors.tdesktop-theme": []byte("window-background: #0b0b0b;\n"),
		"background.png":        solidPNG(t, 600, 600, color.NRGBA{90, 60, 20, 255}),
	})

	m, _ := newTestManager(t)
	if err := m.ApplyFile(writeThemeFile(t, "committed.tdesktop-theme", committed)); err != nil {
		t.Fatalf("ApplyFile(committed): %v", err)
	}
	m.KeepApplied()

	// Move off the theme background, then preview a second theme; the
	// revert snapshot now points at the custom image.
	m.Background().SetImage(BackgroundCustom, solidNRGBA(600, 600, color.NRGBA{0, 0, 0, 255}))
	if err := m.ApplyFile(writeThemeFile(t, "candidate.tdesktop-theme", candidate)); err != nil {
		t.Fatalf("ApplyFile(candidate): %v", err)
	}
	if got := m.Background().ID(); got != BackgroundTestingTheme {
		t.Fatalf("ID during preview = %v, want BackgroundTestingTheme", got)
	}

	// Reset recomputes the snapshot mid-preview, so cancelling now lands
	// on the committed theme's background, not the custom one.
	m.Background().Reset()
	m.Revert()
	if got := m.Background().ID(); got != BackgroundTheme {
		t.Errorf("ID after Reset and Revert = %v, want BackgroundTheme", got)
	}
	if m.Background().Image() == nil {
		t.Error("revert left no prepared pixmap")
	}
}

func TestResetDuringPreviewWithoutThemeImage(t *testing.T) {
	candidate := themeZip(t, map[string][]byte{
		"colors.tdesktop-theme": []byte("window-background: #0c0c0c;\n"),
		"tiled.png":             solidPNG(t, 48, 48, color.NRGBA{7, 8, 9, 255}),
	})

	m, _ := newTestManager(t)
	m.Background().Start()
	if err := m.ApplyFile(writeThemeFile(t, "candidate.tdesktop-theme", candidate)); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	if !m.Background().Tile() {
		t.Fatal("preview did not enable tiling")
	}

	m.Background().Reset()
	m.Revert()
	if got := m.Background().ID(); got != BackgroundDefault {
		t.Errorf("ID after Reset and Revert = %v, want BackgroundDefault", got)
	}
	if m.Background().Tile() {
		t.Error("Reset snapshot must carry tile=false when no theme image exists")
	}
}

func TestInitialBackgroundScaledForDensity(t *testing.T) {
	store := &memStore{}
	m, err := NewManager(Options{Storage: store, Scale: 2})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	m.Background().SetImage(BackgroundInitial, nil)
	if got := m.Background().ID(); got != BackgroundInitial {
		t.Fatalf("ID = %v, want BackgroundInitial", got)
	}

	// BuiltinArtwork.Initial is 160 units wide; at scale 2 the prepared
	// pixmap doubles.
	img := m.Background().Image()
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 320 || h != 320 {
		t.Errorf("prepared pixmap is %dx%d, want 320x320", w, h)
	}

	// The tiling threshold scales too (512 units -> 1024 pixels), so the
	// tiled canvas is synthesized at 4 repeats per axis.
	tiled := m.Background().TiledImage()
	if tiled == img {
		t.Fatal("scaled initial artwork must get a synthesized tiled pixmap")
	}
	if w, h := tiled.Bounds().Dx(), tiled.Bounds().Dy(); w != 1280 || h != 1280 {
		t.Errorf("tiled pixmap is %dx%d, want 1280x1280", w, h)
	}

	if store.img != nil {
		t.Error("built-in initial artwork must persist as id alone")
	}
	if store.id != BackgroundInitial {
		t.Errorf("persisted id = %v, want BackgroundInitial", store.id)
	}
}

func TestNotifierDedupesUnforced(t *testing.T) {
	var n Notifier
	count := 0
	n.Subscribe(func(BackgroundUpdate) { count++ })

	u := BackgroundUpdate{Type: UpdateNew, Tiled: false}
	n.broadcast(u, false)
	n.broadcast(u, false)
	if count != 1 {
		t.Errorf("unforced duplicate delivered %d times, want 1", count)
	}
	n.broadcast(u, true)
	if count != 2 {
		t.Errorf("forced duplicate not delivered (count %d)", count)
	}
	n.broadcast(BackgroundUpdate{Type: UpdateChanged, Tiled: true}, false)
	if count != 3 {
		t.Errorf("changed payload not delivered (count %d)", count)
	}
}

func TestManagerClose(t *testing.T) {
	m, _ := newTestManager(t)
	path := writeThemeFile(t, "x.tdesktop-theme", []byte("window-background: #777777;\n"))
	if err := m.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}

	m.Close()
	if m.applying.pending() {
		t.Error("Close left a pending preview")
	}
	if m.Background().Image() != nil {
		t.Error("Close left prepared pixmaps")
	}

	// The manager is reusable after Close.
	m.Background().Start()
	if m.Background().Image() == nil {
		t.Error("background unusable after Close")
	}
}

func TestLoadFromFileDoesNotTouchLiveState(t *testing.T) {
	m, _ := newTestManager(t)
	before, _ := m.Palette().Get("window-background")

	path := writeThemeFile(t, "p.tdesktop-theme", []byte("window-background: #888888;\n"))
	preview, err := m.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got, _ := preview.Instance.Palette.Get("window-background"); got != (palette.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}) {
		t.Errorf("preview palette = %v", got)
	}
	if got, _ := m.Palette().Get("window-background"); got != before {
		t.Error("LoadFromFile mutated the live palette")
	}
}
