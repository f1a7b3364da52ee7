package imagecache

import (
	"image"
	"sync"

	"github.com/gogpu/gg"
)

// Placeholder dimensions keep the tile aspect ratio
const (
	placeholderWidth  = 150
	placeholderHeight = 200
)

var (
	placeholderOnce  sync.Once
	placeholderImage image.Image
)

// Placeholder returns the shared stand-in image drawn for failed or
// absent photos: a dark card with a framed picture glyph
func Placeholder() image.Image {
	placeholderOnce.Do(func() {
		dc := gg.NewContext(placeholderWidth, placeholderHeight)
		defer dc.Close()

		dc.ClearWithColor(gg.RGB(0.16, 0.17, 0.2))

		w, h := float64(placeholderWidth), float64(placeholderHeight)
		fx, fy, fw, fh := w*0.25, h*0.33, w*0.5, h*0.3

		// Frame
		dc.SetRGBA(0.55, 0.57, 0.62, 1)
		dc.SetLineWidth(3)
		dc.DrawRectangle(fx, fy, fw, fh)
		_ = dc.Stroke()

		// Mountain
		dc.MoveTo(fx+4, fy+fh-4)
		dc.LineTo(fx+fw*0.4, fy+fh*0.35)
		dc.LineTo(fx+fw*0.65, fy+fh*0.7)
		dc.LineTo(fx+fw*0.8, fy+fh*0.5)
		dc.LineTo(fx+fw-4, fy+fh-4)
		dc.ClosePath()
		_ = dc.Fill()

		// Sun
		dc.SetRGBA(0.85, 0.75, 0.4, 1)
		dc.DrawCircle(fx+fw*0.78, fy+fh*0.28, fh*0.12)
		_ = dc.Fill()

		placeholderImage = dc.Image()
	})
	return placeholderImage
}

// placeholderEntry builds a fresh cache entry for the placeholder
func placeholderEntry() *Entry {
	return NewEntry(Placeholder(), true)
}
