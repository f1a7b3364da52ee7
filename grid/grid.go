// Package grid maps the infinite integer cell lattice of the wall onto
// world pixel space.
//
// Odd columns are shifted down by half a tile height, which gives the wall
// its brick layout. All functions are pure.
package grid

import "math"

// Cell is an integer (column, row) address in the lattice
type Cell struct {
	X, Y int
}

// Mapper converts between cells and world pixels
type Mapper struct {
	ImgWidth  float64
	ImgHeight float64
	Gap       float64
}

// NewMapper creates a mapper for the given tile size and gap
func NewMapper(imgWidth, imgHeight, gap float64) Mapper {
	return Mapper{ImgWidth: imgWidth, ImgHeight: imgHeight, Gap: gap}
}

// CellW returns the horizontal pitch of the lattice
func (m Mapper) CellW() float64 {
	return m.ImgWidth + m.Gap
}

// CellH returns the vertical pitch of the lattice
func (m Mapper) CellH() float64 {
	return m.ImgHeight + m.Gap
}

// ToPixel returns the world position of the top-left corner of a cell's tile
func (m Mapper) ToPixel(gx, gy int) (x, y float64) {
	yOffset := 0.0
	// gx%2 is -1 for negative odd columns
	if gx%2 != 0 {
		yOffset = m.ImgHeight / 2
	}
	x = float64(gx) * m.CellW()
	y = float64(gy)*m.CellH() + yOffset
	return x, y
}

// Bounds returns the world rect occupied by a cell's tile
func (m Mapper) Bounds(gx, gy int) Rect {
	x, y := m.ToPixel(gx, gy)
	return Rect{MinX: x, MinY: y, MaxX: x + m.ImgWidth, MaxY: y + m.ImgHeight}
}

// Range is an inclusive cell range
type Range struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Count returns the number of cells in the range
func (r Range) Count() int {
	if r.MaxX < r.MinX || r.MaxY < r.MinY {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// Contains reports whether a cell lies in the range
func (r Range) Contains(gx, gy int) bool {
	return gx >= r.MinX && gx <= r.MaxX && gy >= r.MinY && gy <= r.MaxY
}

// Each calls fn for every cell, row-major from the top-left
func (r Range) Each(fn func(gx, gy int)) {
	for gy := r.MinY; gy <= r.MaxY; gy++ {
		for gx := r.MinX; gx <= r.MaxX; gx++ {
			fn(gx, gy)
		}
	}
}

// CellRange converts a world rect to the inclusive cell range that covers it,
// expanded by margin cells on every side
func (m Mapper) CellRange(r Rect, margin int) Range {
	return Range{
		MinX: int(math.Floor(r.MinX/m.CellW())) - margin,
		MaxX: int(math.Ceil(r.MaxX/m.CellW())) + margin,
		MinY: int(math.Floor(r.MinY/m.CellH())) - margin,
		MaxY: int(math.Ceil(r.MaxY/m.CellH())) + margin,
	}
}

// Covering returns exactly the cells whose tile bounds intersect r
func (m Mapper) Covering(r Rect) []Cell {
	// One extra row absorbs the half-tile shift of odd columns
	rng := m.CellRange(r, 1)
	var cells []Cell
	rng.Each(func(gx, gy int) {
		if m.Bounds(gx, gy).Intersects(r) {
			cells = append(cells, Cell{X: gx, Y: gy})
		}
	})
	return cells
}
