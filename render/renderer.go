// Package render draws the wall into a raster and presents rasters on a
// terminal screen.
package render

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/grid"
	"github.com/lixenwraith/photowall/imagecache"
	"github.com/lixenwraith/photowall/tile"
)

// Tile decoration in world pixels
const (
	borderOuterWidth = 4.0
	borderInnerWidth = 2.0
	borderInnerInset = 3.0
	shadowOffsetY    = 5.0
	shadowBlur       = 10.0
	shadowSteps      = 3
)

// View describes what part of the world lands on the raster
type View struct {
	Offset grid.Point // camera offset; world point -Offset is the view center
	Width  float64    // viewport size in world pixels
	Height float64
	ScaleX float64 // raster pixels per world pixel
	ScaleY float64
}

// NewView builds a view for a raster of w x h pixels where one raster pixel
// spans pxW x pxH world pixels
func NewView(offset grid.Point, w, h int, pxW, pxH float64) View {
	return View{
		Offset: offset,
		Width:  float64(w) * pxW,
		Height: float64(h) * pxH,
		ScaleX: 1 / pxW,
		ScaleY: 1 / pxH,
	}
}

// Visible returns the world rect considered for drawing
func (v View) Visible(buffer float64) grid.Rect {
	return grid.VisibleRect(v.Offset, v.Width, v.Height, buffer)
}

// ToView maps a world point to viewport coordinates (world pixels from the
// viewport's top-left corner)
func (v View) ToView(p grid.Point) grid.Point {
	return grid.Point{X: p.X + v.Offset.X + v.Width/2, Y: p.Y + v.Offset.Y + v.Height/2}
}

// ToWorld is the inverse of ToView
func (v View) ToWorld(p grid.Point) grid.Point {
	return grid.Point{X: p.X - v.Offset.X - v.Width/2, Y: p.Y - v.Offset.Y - v.Height/2}
}

// ImageSource resolves a tile's image
type ImageSource interface {
	Get(url string) (*imagecache.Entry, bool)
}

// Stats reports what one frame drew
type Stats struct {
	Drawn   []uint64 // tile ids in draw order
	Culled  int      // outside the buffered view
	Pending int      // visible but without a loaded image
}

// Renderer draws tiles with a cover-fit crop, shadow and double border
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// DrawFrame clears dc and draws every loaded tile intersecting the buffered
// view. tiles need not be pre-culled.
func (r *Renderer) DrawFrame(dc *gg.Context, view View, tiles []*tile.Tile, images ImageSource) Stats {
	var stats Stats

	dc.ClearWithColor(WallBackground)
	visible := view.Visible(constants.DrawBufferFactor)

	dc.Push()
	defer dc.Pop()
	dc.Scale(view.ScaleX, view.ScaleY)
	dc.Translate(view.Width/2+view.Offset.X, view.Height/2+view.Offset.Y)

	for _, t := range tiles {
		if !t.Bounds().Intersects(visible) {
			stats.Culled++
			continue
		}
		if !t.Loaded {
			stats.Pending++
			continue
		}
		e, ok := images.Get(t.ImageURL)
		if !ok {
			stats.Pending++
			continue
		}
		r.drawTile(dc, view, t, e)
		stats.Drawn = append(stats.Drawn, t.ID)
	}
	return stats
}

func (r *Renderer) drawTile(dc *gg.Context, view View, t *tile.Tile, e *imagecache.Entry) {
	x, y, w, h := t.X, t.Y, t.Width, t.Height

	// Shadow approximated by stacked translucent rects
	for i := shadowSteps; i >= 1; i-- {
		grow := shadowBlur / 2 * float64(i) / shadowSteps
		dc.SetRGBA(TileShadow.R, TileShadow.G, TileShadow.B, TileShadow.A/shadowSteps)
		dc.DrawRectangle(x-grow, y+shadowOffsetY-grow, w+2*grow, h+2*grow)
		_ = dc.Fill()
	}

	pan := Parallax(view, t)
	src := CoverCrop(e.ThumbW, e.ThumbH, w, h, pan.X, pan.Y)
	dc.DrawImageEx(e.Thumb, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		SrcRect:       &src,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
	})

	dc.SetRGBA(TileBorder.R, TileBorder.G, TileBorder.B, TileBorder.A)
	dc.SetLineWidth(borderOuterWidth)
	dc.DrawRectangle(x, y, w, h)
	_ = dc.Stroke()

	dc.SetRGBA(TileInnerLine.R, TileInnerLine.G, TileInnerLine.B, TileInnerLine.A)
	dc.SetLineWidth(borderInnerWidth)
	dc.DrawRectangle(x+borderInnerInset, y+borderInnerInset, w-2*borderInnerInset, h-2*borderInnerInset)
	_ = dc.Stroke()
}

// Parallax returns the crop pan of a tile in [-1, 1] per axis, a sine of
// the tile center's position relative to the view center
func Parallax(view View, t *tile.Tile) grid.Point {
	c := view.ToView(t.Bounds().Center())
	return grid.Point{
		X: panFactor(c.X-view.Width/2, view.Width/2),
		Y: panFactor(c.Y-view.Height/2, view.Height/2),
	}
}

func panFactor(rel, half float64) float64 {
	if half <= 0 {
		return 0
	}
	k := math.Max(-1, math.Min(1, rel/half))
	return math.Sin(k * math.Pi / 2)
}

// CoverCrop returns the source rect that fills a dstW x dstH frame at the
// image's aspect ratio. The excess dimension is cropped; pan in [-1, 1]
// slides the window from one edge (-1) through center (0) to the other (1).
func CoverCrop(srcW, srcH int, dstW, dstH, panX, panY float64) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rect(0, 0, max(srcW, 0), max(srcH, 0))
	}

	sw, sh := float64(srcW), float64(srcH)
	cropW, cropH := sw, sh
	if sw/sh > dstW/dstH {
		cropW = sh * dstW / dstH
	} else {
		cropH = sw * dstH / dstW
	}

	x0 := (sw - cropW) / 2 * (1 + clampUnit(panX))
	y0 := (sh - cropH) / 2 * (1 + clampUnit(panY))

	minX := int(math.Round(x0))
	minY := int(math.Round(y0))
	w := max(int(math.Round(cropW)), 1)
	h := max(int(math.Round(cropH)), 1)
	minX = min(minX, srcW-w)
	minY = min(minY, srcH-h)
	return image.Rect(minX, minY, minX+w, minY+h)
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
