package render

import (
	"github.com/gogpu/gg"

	"github.com/lixenwraith/photowall/grid"
	"github.com/lixenwraith/photowall/imagecache"
)

// FitSize returns the largest size with the srcW:srcH aspect ratio that fits
// in maxW x maxH
func FitSize(srcW, srcH int, maxW, maxH float64) (w, h float64) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	ratio := float64(srcW) / float64(srcH)
	if ratio > maxW/maxH {
		// Wider than the box, width bound
		return maxW, maxW / ratio
	}
	return maxH * ratio, maxH
}

// DrawPreview dims the current raster and draws e centered, fit into fill
// of the viewport. Returns the image rect in viewport coordinates.
func DrawPreview(dc *gg.Context, view View, e *imagecache.Entry, fill float64) grid.Rect {
	dc.Push()
	defer dc.Pop()
	dc.Scale(view.ScaleX, view.ScaleY)

	dc.SetRGBA(PreviewBackdrop.R, PreviewBackdrop.G, PreviewBackdrop.B, PreviewBackdrop.A)
	dc.DrawRectangle(0, 0, view.Width, view.Height)
	_ = dc.Fill()

	w, h := FitSize(e.Width, e.Height, view.Width*fill, view.Height*fill)
	if w == 0 || h == 0 {
		return grid.Rect{}
	}
	x := (view.Width - w) / 2
	y := (view.Height - h) / 2

	dc.DrawImageEx(e.Image, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
	})

	dc.SetRGBA(TileBorder.R, TileBorder.G, TileBorder.B, TileBorder.A)
	dc.SetLineWidth(borderOuterWidth)
	dc.DrawRectangle(x, y, w, h)
	_ = dc.Stroke()

	return grid.Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}
