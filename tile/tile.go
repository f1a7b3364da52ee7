// Package tile holds the materialized cells of the wall.
package tile

import (
	"sort"

	"github.com/lixenwraith/photowall/grid"
)

// Tile is one materialized grid cell
// Position is fixed at creation
type Tile struct {
	ID       uint64
	GridX    int
	GridY    int
	X, Y     float64
	Width    float64
	Height   float64
	ImageURL string
	Loaded   bool

	// lastSeen is the last frame the tile was inside the retention region
	lastSeen uint64
}

// Bounds returns the tile's world rect
func (t *Tile) Bounds() grid.Rect {
	return grid.Rect{MinX: t.X, MinY: t.Y, MaxX: t.X + t.Width, MaxY: t.Y + t.Height}
}

// Cell returns the tile's lattice address
func (t *Tile) Cell() grid.Cell {
	return grid.Cell{X: t.GridX, Y: t.GridY}
}

// Store is a grid-keyed tile index
// Owned by the frame goroutine, no internal locking
type Store struct {
	tiles  map[grid.Cell]*Tile
	nextID uint64
	frame  uint64 // last frame passed to Touch
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{tiles: make(map[grid.Cell]*Tile)}
}

// NextID returns a fresh monotonic tile id
func (s *Store) NextID() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

// New builds a tile for a cell using mapper geometry; it is not added
func (s *Store) New(m grid.Mapper, gx, gy int, url string) *Tile {
	x, y := m.ToPixel(gx, gy)
	return &Tile{
		ID:       s.NextID(),
		GridX:    gx,
		GridY:    gy,
		X:        x,
		Y:        y,
		Width:    m.ImgWidth,
		Height:   m.ImgHeight,
		ImageURL: url,
	}
}

// ExistsAt reports whether a cell already has a tile
func (s *Store) ExistsAt(gx, gy int) bool {
	_, ok := s.tiles[grid.Cell{X: gx, Y: gy}]
	return ok
}

// Get returns the tile at a cell
func (s *Store) Get(gx, gy int) (*Tile, bool) {
	t, ok := s.tiles[grid.Cell{X: gx, Y: gy}]
	return t, ok
}

// Add inserts tiles, skipping any whose cell is already occupied
// New tiles count as seen in the latest touched frame
// Returns the number inserted
func (s *Store) Add(tiles ...*Tile) int {
	added := 0
	for _, t := range tiles {
		key := t.Cell()
		if _, ok := s.tiles[key]; ok {
			continue
		}
		t.lastSeen = s.frame
		s.tiles[key] = t
		added++
	}
	return added
}

// Len returns the number of tiles
func (s *Store) Len() int {
	return len(s.tiles)
}

// All returns every tile ordered by id (creation order)
func (s *Store) All() []*Tile {
	out := make([]*Tile, 0, len(s.tiles))
	for _, t := range s.tiles {
		out = append(out, t)
	}
	sortByID(out)
	return out
}

// Visible returns tiles whose bounds intersect r, ordered by id
func (s *Store) Visible(r grid.Rect) []*Tile {
	var out []*Tile
	for _, t := range s.tiles {
		if t.Bounds().Intersects(r) {
			out = append(out, t)
		}
	}
	sortByID(out)
	return out
}

// WithURL returns tiles assigned url
func (s *Store) WithURL(url string) []*Tile {
	var out []*Tile
	for _, t := range s.tiles {
		if t.ImageURL == url {
			out = append(out, t)
		}
	}
	return out
}

// MarkLoaded flags every tile showing url as loaded, returns how many changed
func (s *Store) MarkLoaded(url string) int {
	n := 0
	for _, t := range s.tiles {
		if t.ImageURL == url && !t.Loaded {
			t.Loaded = true
			n++
		}
	}
	return n
}

// Touch stamps every tile intersecting r with frame
func (s *Store) Touch(r grid.Rect, frame uint64) {
	s.frame = frame
	for _, t := range s.tiles {
		if t.Bounds().Intersects(r) {
			t.lastSeen = frame
		}
	}
}

// Evict removes tiles not touched for more than after frames
// after == 0 disables eviction
func (s *Store) Evict(frame, after uint64) []*Tile {
	if after == 0 {
		return nil
	}
	var evicted []*Tile
	for key, t := range s.tiles {
		if frame > t.lastSeen && frame-t.lastSeen > after {
			delete(s.tiles, key)
			evicted = append(evicted, t)
		}
	}
	sortByID(evicted)
	return evicted
}

func sortByID(tiles []*Tile) {
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].ID < tiles[j].ID })
}
