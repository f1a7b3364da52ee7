package grid

// Point is a position or displacement in world pixels
type Point struct {
	X, Y float64
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p*k
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Rect is an axis-aligned rectangle in world pixels
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the rect midpoint
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Intersects reports whether two rects overlap
// Touching edges count as overlap, matching the original culling test
func (r Rect) Intersects(o Rect) bool {
	return !(o.MaxX < r.MinX || o.MinX > r.MaxX || o.MaxY < r.MinY || o.MinY > r.MaxY)
}

// Contains reports whether a point lies inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// VisibleRect returns the world rect seen by a camera at offset over a
// canvas of width x height, scaled by buffer
// The view centre in world space is -offset
func VisibleRect(offset Point, width, height, buffer float64) Rect {
	halfW := width * buffer / 2
	halfH := height * buffer / 2
	return Rect{
		MinX: -offset.X - halfW,
		MaxX: -offset.X + halfW,
		MinY: -offset.Y - halfH,
		MaxY: -offset.Y + halfH,
	}
}
