package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/photowall/core"
	"github.com/lixenwraith/photowall/grid"
	"github.com/lixenwraith/photowall/imagecache"
	"github.com/lixenwraith/photowall/tile"
)

func TestCoverCrop(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		dstW, dstH float64
		panX, panY float64
		want       image.Rectangle
	}{
		{"same aspect", 300, 400, 300, 400, 0, 0, image.Rect(0, 0, 300, 400)},
		{"wide centered", 800, 400, 300, 400, 0, 0, image.Rect(250, 0, 550, 400)},
		{"wide left edge", 800, 400, 300, 400, -1, 0, image.Rect(0, 0, 300, 400)},
		{"wide right edge", 800, 400, 300, 400, 1, 0, image.Rect(500, 0, 800, 400)},
		{"tall centered", 300, 800, 300, 400, 0, 0, image.Rect(0, 200, 300, 600)},
		{"tall top", 300, 800, 300, 400, 0, -1, image.Rect(0, 0, 300, 400)},
		{"pan clamps", 300, 800, 300, 400, 0, 5, image.Rect(0, 400, 300, 800)},
		{"pan on fitted axis ignored", 300, 400, 300, 400, 1, 1, image.Rect(0, 0, 300, 400)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoverCrop(tt.srcW, tt.srcH, tt.dstW, tt.dstH, tt.panX, tt.panY)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoverCropKeepsAspect(t *testing.T) {
	r := CoverCrop(1280, 853, 300, 400, 0.3, 0)
	assert.InDelta(t, 300.0/400.0, float64(r.Dx())/float64(r.Dy()), 0.01)
	assert.True(t, r.In(image.Rect(0, 0, 1280, 853)))
}

func TestParallax(t *testing.T) {
	view := View{Width: 1000, Height: 800}
	m := grid.NewMapper(300, 400, 60)
	s := tile.NewStore()

	// Tile centered on the view has no pan
	centered := s.New(m, 0, 0, "u")
	centered.X, centered.Y = -150, -200
	p := Parallax(view, centered)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)

	// Tile at the right edge pans fully
	right := s.New(m, 0, 0, "u")
	right.X, right.Y = 500-150, -200
	assert.InDelta(t, 1, Parallax(view, right).X, 1e-9)

	// Halfway follows the sine curve
	half := s.New(m, 0, 0, "u")
	half.X, half.Y = 250-150, -200
	assert.InDelta(t, math.Sin(math.Pi/4), Parallax(view, half).X, 1e-9)
}

func TestViewRoundTrip(t *testing.T) {
	v := NewView(grid.Point{X: 40, Y: -25}, 100, 50, 6, 12)
	assert.Equal(t, 600.0, v.Width)
	assert.Equal(t, 600.0, v.Height)

	p := grid.Point{X: 123, Y: -45}
	assert.Equal(t, p, v.ToWorld(v.ToView(p)))

	// View center is world point -Offset
	assert.Equal(t, grid.Point{X: -40, Y: 25}, v.ToWorld(grid.Point{X: 300, Y: 300}))
}

type mapSource map[string]*imagecache.Entry

func (m mapSource) Get(url string) (*imagecache.Entry, bool) {
	e, ok := m[url]
	return e, ok
}

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestDrawFrameCullsOutsideBufferedView(t *testing.T) {
	m := grid.NewMapper(300, 400, 60)
	s := tile.NewStore()
	red := imagecache.NewEntry(solidImage(30, 40, color.RGBA{255, 0, 0, 255}), false)
	images := mapSource{"red": red}

	near := s.New(m, 0, 0, "red")
	far := s.New(m, 20, 20, "red")
	unloaded := s.New(m, 1, 0, "red")
	missing := s.New(m, -1, 0, "nowhere")
	near.Loaded, far.Loaded, missing.Loaded = true, true, true

	dc := gg.NewContext(100, 50)
	defer dc.Close()
	view := NewView(grid.Point{}, 100, 50, 6, 12)

	stats := NewRenderer().DrawFrame(dc, view, []*tile.Tile{near, far, unloaded, missing}, images)

	assert.Equal(t, []uint64{near.ID}, stats.Drawn)
	assert.Equal(t, 1, stats.Culled)
	assert.Equal(t, 2, stats.Pending)

	visible := view.Visible(1.5)
	assert.True(t, near.Bounds().Intersects(visible))
	assert.False(t, far.Bounds().Intersects(visible))
}

func TestDrawFramePaintsTile(t *testing.T) {
	m := grid.NewMapper(300, 400, 60)
	s := tile.NewStore()
	tl := s.New(m, 0, 0, "red")
	tl.Loaded = true
	images := mapSource{"red": imagecache.NewEntry(solidImage(30, 40, color.RGBA{255, 0, 0, 255}), false)}

	dc := gg.NewContext(100, 50)
	defer dc.Close()

	// Put the tile center at the view center
	view := NewView(grid.Point{X: -150, Y: -200}, 100, 50, 6, 12)
	NewRenderer().DrawFrame(dc, view, []*tile.Tile{tl}, images)

	img := dc.Image()
	r, g, b, _ := img.At(50, 25).RGBA()
	assert.Greater(t, r>>8, uint32(200), "tile interior is red")
	assert.Less(t, g>>8, uint32(60))
	assert.Less(t, b>>8, uint32(60))

	// Far corner is background
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Less(t, r>>8, uint32(60))
}

func TestFitSize(t *testing.T) {
	w, h := FitSize(300, 400, 900, 600)
	assert.InDelta(t, 450, w, 1e-9)
	assert.InDelta(t, 600, h, 1e-9)

	w, h = FitSize(1600, 400, 900, 600)
	assert.InDelta(t, 900, w, 1e-9)
	assert.InDelta(t, 225, h, 1e-9)

	w, h = FitSize(0, 400, 900, 600)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestDrawPreviewCenters(t *testing.T) {
	dc := gg.NewContext(100, 50)
	defer dc.Close()
	view := NewView(grid.Point{}, 100, 50, 6, 12)
	e := imagecache.NewEntry(solidImage(30, 40, color.RGBA{0, 0, 255, 255}), false)

	r := DrawPreview(dc, view, e, 0.9)
	require.NotZero(t, r.Width())
	assert.InDelta(t, view.Width/2, r.Center().X, 1e-9)
	assert.InDelta(t, view.Height/2, r.Center().Y, 1e-9)
	assert.InDelta(t, 0.9*view.Height, r.Height(), 1e-9)

	_, _, b, _ := dc.Image().At(50, 25).RGBA()
	assert.Greater(t, b>>8, uint32(200))
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestBlockQuadrant(t *testing.T) {
	white := RGB{255, 255, 255}
	black := RGB{}

	ch, fg, bg := block{white, white, black, black}.quadrant()
	// Upper half is either fg on '▀' or bg on '▄'
	switch ch {
	case '▀':
		assert.Equal(t, white, fg)
		assert.Equal(t, black, bg)
	case '▄':
		assert.Equal(t, black, fg)
		assert.Equal(t, white, bg)
	default:
		t.Fatalf("unexpected glyph %q", ch)
	}

	_, _, errSum := block{white, white, white, white}.split(0)
	assert.Zero(t, errSum)
}

func TestPresenterWritesCells(t *testing.T) {
	screen := newScreen(t, 10, 4)

	img := solidImage(8, 4, color.RGBA{10, 200, 30, 255}).(*image.RGBA)
	NewPresenter(screen, GlyphQuadrant).Present(img, 1, 1)

	// A flat block matches the empty pattern: background carries the color
	mainc, _, style, _ := screen.GetContent(1, 1)
	want := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(0, 0, 0)).
		Background(tcell.NewRGBColor(10, 200, 30))
	assert.Equal(t, ' ', mainc)
	assert.Equal(t, want, style)

	_, _, style, _ = screen.GetContent(0, 0)
	assert.NotEqual(t, want, style, "cells outside the raster are untouched")

	// Cells off screen are skipped without panicking
	NewPresenter(screen, GlyphHalf).Present(img, 8, 3)
	mainc, _, _, _ = screen.GetContent(9, 3)
	assert.Equal(t, '▀', mainc)
}

func TestParseGlyphMode(t *testing.T) {
	assert.Equal(t, GlyphHalf, ParseGlyphMode("half"))
	assert.Equal(t, GlyphQuadrant, ParseGlyphMode("quadrant"))
	assert.Equal(t, GlyphQuadrant, ParseGlyphMode(""))
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		out = append(out, ch)
	}
	return string(out)
}

func TestStatusBar(t *testing.T) {
	screen := newScreen(t, 80, 3)

	DrawStatusBar(screen, 2, StatusInfo{
		Mode:   core.ModeWall,
		Tiles:  42,
		Loaded: 40,
		Cached: 17,
		FPS:    30,
		Cell:   [2]int{-1, 3},
	})
	row := rowText(screen, 2)
	assert.Contains(t, row, "WALL")
	assert.Contains(t, row, "Tiles: 40/42")
	assert.Contains(t, row, "Cell: -1,3")
	assert.Contains(t, row, "FPS: 30")

	DrawStatusBar(screen, 2, StatusInfo{Mode: core.ModeCommand, CommandText: "goto 1 2"})
	assert.Contains(t, rowText(screen, 2), ":goto 1 2")

	DrawStatusBar(screen, 2, StatusInfo{Loading: true})
	assert.Contains(t, rowText(screen, 2), "loading...")
}

func TestStatusBarDropsLowPriorityItems(t *testing.T) {
	screen := newScreen(t, 30, 1)
	DrawStatusBar(screen, 0, StatusInfo{Tiles: 1, Loaded: 1, FPS: 60})
	row := rowText(screen, 0)
	assert.Contains(t, row, "Tiles: 1/1")
	assert.NotContains(t, row, "FPS")
}

func TestDrawOutput(t *testing.T) {
	screen := newScreen(t, 12, 4)

	DrawOutput(screen, []string{"first", "second", "a long line that gets cut", "last"}, 3)
	assert.Equal(t, " second     ", rowText(screen, 0))
	assert.Equal(t, " a long lin ", rowText(screen, 1))
	assert.Equal(t, " last       ", rowText(screen, 2))

	_, _, style, _ := screen.GetContent(0, 0)
	want := tcell.StyleDefault.Foreground(RgbOutputText).Background(RgbBackground)
	assert.Equal(t, want, style)
}
