package render

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// quadrantGlyphs is indexed by a 4-bit foreground mask
// Bits: 0=upper-left 1=upper-right 2=lower-left 3=lower-right
var quadrantGlyphs = []rune(" ▘▝▀▖▌▞▛▗▚▐▜▄▙▟█")

// GlyphMode selects how 2x2 sub-pixels become a cell
type GlyphMode int

const (
	// GlyphQuadrant picks the best of 16 quadrant glyphs per cell
	GlyphQuadrant GlyphMode = iota
	// GlyphHalf uses upper half blocks, averaging each row pair horizontally
	GlyphHalf
)

// ParseGlyphMode maps a config string to a mode, defaulting to quadrant
func ParseGlyphMode(s string) GlyphMode {
	if s == "half" {
		return GlyphHalf
	}
	return GlyphQuadrant
}

// RGB is an opaque 8-bit color
type RGB struct {
	R, G, B uint8
}

func (c RGB) color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c RGB) distSq(o RGB) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// block is the 2x2 sub-pixel group of one cell, in mask bit order
type block [4]RGB

// mean averages the pixels selected (want=true) or excluded (want=false) by mask
func (b block) mean(mask int, want bool) RGB {
	var sum [3]int
	n := 0
	for i, px := range b {
		if (mask&(1<<i) != 0) != want {
			continue
		}
		sum[0] += int(px.R)
		sum[1] += int(px.G)
		sum[2] += int(px.B)
		n++
	}
	if n == 0 {
		return RGB{}
	}
	return RGB{uint8(sum[0] / n), uint8(sum[1] / n), uint8(sum[2] / n)}
}

// split colors the block with mask and returns the squared error
func (b block) split(mask int) (fg, bg RGB, cost int) {
	fg, bg = b.mean(mask, true), b.mean(mask, false)
	for i, px := range b {
		if mask&(1<<i) != 0 {
			cost += px.distSq(fg)
		} else {
			cost += px.distSq(bg)
		}
	}
	return fg, bg, cost
}

// quadrant searches all 16 masks for the lowest error; ties keep the lower mask
func (b block) quadrant() (rune, RGB, RGB) {
	best := -1
	var bestFg, bestBg RGB
	bestCost := 0
	for mask := range quadrantGlyphs {
		fg, bg, cost := b.split(mask)
		if best < 0 || cost < bestCost {
			best, bestCost, bestFg, bestBg = mask, cost, fg, bg
		}
	}
	return quadrantGlyphs[best], bestFg, bestBg
}

// half draws the top pair as foreground of an upper half block
func (b block) half() (rune, RGB, RGB) {
	return '▀', b.mean(0b0011, true), b.mean(0b1100, true)
}

// Presenter writes rasters of 2x2 sub-pixels per cell to a screen
type Presenter struct {
	screen tcell.Screen
	mode   GlyphMode
}

// NewPresenter creates a presenter for screen
func NewPresenter(screen tcell.Screen, mode GlyphMode) *Presenter {
	return &Presenter{screen: screen, mode: mode}
}

// Mode returns the glyph mode
func (p *Presenter) Mode() GlyphMode {
	return p.mode
}

// Present writes img at cell (x0, y0). img must be 2 sub-pixels per cell in
// each direction; cells falling outside the screen are skipped.
func (p *Presenter) Present(img image.Image, x0, y0 int) {
	bounds := img.Bounds()
	sw, sh := p.screen.Size()
	sample := sampler(img)

	for cy := range bounds.Dy() / 2 {
		sy := y0 + cy
		if sy < 0 || sy >= sh {
			continue
		}
		py := bounds.Min.Y + cy*2
		for cx := range bounds.Dx() / 2 {
			sx := x0 + cx
			if sx < 0 || sx >= sw {
				continue
			}
			px := bounds.Min.X + cx*2
			b := block{sample(px, py), sample(px+1, py), sample(px, py+1), sample(px+1, py+1)}

			var (
				ch     rune
				fg, bg RGB
			)
			if p.mode == GlyphHalf {
				ch, fg, bg = b.half()
			} else {
				ch, fg, bg = b.quadrant()
			}
			p.screen.SetContent(sx, sy, ch, nil, tcell.StyleDefault.Foreground(fg.color()).Background(bg.color()))
		}
	}
}

// sampler reads *image.RGBA directly and anything else through color.Color
func sampler(img image.Image) func(x, y int) RGB {
	if rgba, ok := img.(*image.RGBA); ok {
		return func(x, y int) RGB {
			i := rgba.PixOffset(x, y)
			return RGB{rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2]}
		}
	}
	return func(x, y int) RGB {
		return toRGB(img.At(x, y))
	}
}

// toRGB undoes alpha premultiplication
func toRGB(c color.Color) RGB {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGB{}
	}
	return RGB{uint8(r * 0xff / a), uint8(g * 0xff / a), uint8(b * 0xff / a)}
}
