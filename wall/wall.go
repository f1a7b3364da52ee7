// Package wall drives the infinite photo wall: it owns the lattice, tile
// store, image pool, loader and camera, and advances them once per frame.
package wall

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/photowall/camera"
	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/grid"
	"github.com/lixenwraith/photowall/imagecache"
	"github.com/lixenwraith/photowall/pool"
	"github.com/lixenwraith/photowall/tile"
)

// Options configures a Wall
type Options struct {
	Mapper     grid.Mapper
	Camera     camera.Params
	EvictAfter uint64 // frames outside the retention region before a tile is dropped, 0 keeps all
	Rand       *rand.Rand
	Logger     *zap.Logger
}

// DefaultOptions returns the standard wall geometry and physics
func DefaultOptions() Options {
	return Options{
		Mapper:     grid.NewMapper(constants.TileWidth, constants.TileHeight, constants.TileGap),
		Camera:     camera.DefaultParams(),
		EvictAfter: constants.EvictAfterFrames,
	}
}

// FrameStats reports what one frame changed
type FrameStats struct {
	Added   int
	Evicted int
	Marked  int // tiles flagged loaded by completed fetches
}

// Wall is the single owner of all wall state
// Every method must be called from the frame goroutine
type Wall struct {
	mapper     grid.Mapper
	pool       *pool.Pool
	store      *tile.Store
	cache      *imagecache.Cache
	loader     *imagecache.Loader
	cam        *camera.Camera
	logger     *zap.Logger
	evictAfter uint64

	width, height float64 // viewport in world pixels
	frame         uint64
	home          grid.Point
}

// New creates a wall with an empty catalog
func New(cache *imagecache.Cache, loader *imagecache.Loader, opts Options) *Wall {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Mapper == (grid.Mapper{}) {
		opts.Mapper = DefaultOptions().Mapper
	}
	if opts.Camera == (camera.Params{}) {
		opts.Camera = camera.DefaultParams()
	}

	// Start with the first tile centered
	home := grid.Point{X: -opts.Mapper.ImgWidth / 2, Y: -opts.Mapper.ImgHeight / 2}
	cam := camera.New(opts.Camera)
	cam.Offset, cam.Target = home, home

	w := &Wall{
		mapper:     opts.Mapper,
		pool:       pool.New(nil, opts.Rand),
		store:      tile.NewStore(),
		cache:      cache,
		loader:     loader,
		cam:        cam,
		logger:     logger,
		evictAfter: opts.EvictAfter,
		home:       home,
	}
	loader.SetLiveness(w.holds)
	return w
}

// holds reports whether t is still the tile stored at its cell
func (w *Wall) holds(t *tile.Tile) bool {
	cur, ok := w.store.Get(t.GridX, t.GridY)
	return ok && cur == t
}

// Camera returns the wall camera
func (w *Wall) Camera() *camera.Camera {
	return w.cam
}

// Store returns the tile store
func (w *Wall) Store() *tile.Store {
	return w.store
}

// Pool returns the image pool
func (w *Wall) Pool() *pool.Pool {
	return w.pool
}

// Mapper returns the lattice geometry
func (w *Wall) Mapper() grid.Mapper {
	return w.mapper
}

// Offset returns the current camera offset
func (w *Wall) Offset() grid.Point {
	return w.cam.Offset
}

// Resize sets the viewport size in world pixels
func (w *Wall) Resize(width, height float64) {
	w.width, w.height = width, height
}

// Viewport returns the viewport size in world pixels
func (w *Wall) Viewport() (width, height float64) {
	return w.width, w.height
}

// SetCatalog swaps the pool's URLs; existing tiles keep their images
func (w *Wall) SetCatalog(urls []string) {
	w.pool.Reset(urls)
	w.logger.Info("catalog set", zap.Int("urls", len(urls)))
}

// Reset drops every tile, their queued loads, and returns the camera home
// Cached images survive; completions for dropped tiles find nothing to mark
func (w *Wall) Reset() {
	n := w.store.Len()
	dropped := w.loader.Clear()
	w.store = tile.NewStore()
	w.cam.Offset, w.cam.Target = w.home, w.home
	w.cam.Velocity = grid.Point{}
	w.cam.PointerLeave()
	w.logger.Info("wall reset", zap.Int("dropped", n), zap.Int("unqueued", dropped))
}

// Seed materializes exactly the cells covering the unbuffered view
// Returns the number of tiles created
func (w *Wall) Seed(now time.Time) int {
	if w.width <= 0 || w.height <= 0 {
		return 0
	}
	view := grid.VisibleRect(w.cam.Offset, w.width, w.height, 1)
	var created []*tile.Tile
	for _, c := range w.mapper.Covering(view) {
		if w.store.ExistsAt(c.X, c.Y) {
			continue
		}
		created = append(created, w.store.New(w.mapper, c.X, c.Y, w.pool.Next()))
	}
	return w.admit(created, now)
}

// FillGaps materializes every missing cell of the buffered view plus margin
// Safe to call every frame; occupied cells are never re-created
func (w *Wall) FillGaps(now time.Time) int {
	if w.width <= 0 || w.height <= 0 {
		return 0
	}
	rng := w.generateRange()
	var created []*tile.Tile
	rng.Each(func(gx, gy int) {
		if w.store.ExistsAt(gx, gy) {
			return
		}
		created = append(created, w.store.New(w.mapper, gx, gy, w.pool.Next()))
	})
	return w.admit(created, now)
}

func (w *Wall) admit(created []*tile.Tile, now time.Time) int {
	if len(created) == 0 {
		return 0
	}
	added := w.store.Add(created...)
	w.loader.Load(created, now)
	w.logger.Debug("tiles materialized",
		zap.Int("added", added),
		zap.Int("total", w.store.Len()))
	return added
}

func (w *Wall) generateRange() grid.Range {
	r := grid.VisibleRect(w.cam.Offset, w.width, w.height, constants.GenerateBufferFactor)
	return w.mapper.CellRange(r, constants.GenerateMarginCells)
}

// retention is the world region whose tiles count as seen: the generated
// range grown by one more cell
func (w *Wall) retention() grid.Rect {
	r := grid.VisibleRect(w.cam.Offset, w.width, w.height, constants.GenerateBufferFactor)
	cw := w.mapper.CellW() * float64(constants.GenerateMarginCells+1)
	ch := w.mapper.CellH() * float64(constants.GenerateMarginCells+1)
	return grid.Rect{MinX: r.MinX - cw, MinY: r.MinY - ch, MaxX: r.MaxX + cw, MaxY: r.MaxY + ch}
}

// Frame advances the wall by one frame of length dt
func (w *Wall) Frame(now time.Time, dt time.Duration) FrameStats {
	var stats FrameStats

	w.loader.Pump(now)
	for _, url := range w.loader.Drain() {
		stats.Marked += w.store.MarkLoaded(url)
	}

	w.cam.Step(dt)
	w.frame++

	if w.width > 0 && w.height > 0 {
		w.store.Touch(w.retention(), w.frame)
		if evicted := w.store.Evict(w.frame, w.evictAfter); len(evicted) > 0 {
			stats.Evicted = len(evicted)
			w.logger.Debug("tiles evicted", zap.Int("count", len(evicted)))
		}
	}

	if !w.cam.Dragging() {
		stats.Added = w.FillGaps(now)
	}
	return stats
}

// ToWorld maps a viewport point (world pixels from the top-left corner)
// to world space
func (w *Wall) ToWorld(p grid.Point) grid.Point {
	return grid.Point{X: p.X - w.cam.Offset.X - w.width/2, Y: p.Y - w.cam.Offset.Y - w.height/2}
}

// TileAt returns the tile under world point p; gaps return nil
func (w *Wall) TileAt(p grid.Point) *tile.Tile {
	gx := int(math.Floor(p.X / w.mapper.CellW()))
	_, y0 := w.mapper.ToPixel(gx, 0)
	gy := int(math.Floor((p.Y - y0) / w.mapper.CellH()))

	t, ok := w.store.Get(gx, gy)
	if !ok || !t.Bounds().Contains(p) {
		return nil
	}
	return t
}

// Center returns the world point at the middle of the viewport
func (w *Wall) Center() grid.Point {
	return w.cam.Offset.Scale(-1)
}

// CenterCell returns the cell nearest the middle of the viewport
func (w *Wall) CenterCell() grid.Cell {
	c := w.Center()
	gx := int(math.Floor(c.X / w.mapper.CellW()))
	_, y0 := w.mapper.ToPixel(gx, 0)
	gy := int(math.Floor((c.Y - y0) / w.mapper.CellH()))
	return grid.Cell{X: gx, Y: gy}
}

// GoTo eases the camera so cell (gx, gy) is centered
func (w *Wall) GoTo(gx, gy int) {
	b := w.mapper.Bounds(gx, gy)
	w.cam.JumpTo(b.Center().Scale(-1))
}

// Home eases the camera back to the starting view
func (w *Wall) Home() {
	w.cam.JumpTo(w.home)
}

// Pan nudges the camera target; positive dx moves the wall right
func (w *Wall) Pan(dx, dy float64) {
	w.cam.Nudge(grid.Point{X: dx, Y: dy})
}

// Stats is a snapshot for the status bar and the stats command
type Stats struct {
	Tiles    int
	Loaded   int
	Cached   int
	Fallback int
	InFlight int
	Pending  int
	Catalog  int
	Frame    uint64
}

// Stats returns counters describing the wall
func (w *Wall) Stats() Stats {
	s := Stats{
		Tiles:    w.store.Len(),
		Cached:   w.cache.Len(),
		Fallback: w.cache.Fallbacks(),
		InFlight: w.loader.InFlight(),
		Pending:  w.loader.Pending(),
		Catalog:  w.pool.Len(),
		Frame:    w.frame,
	}
	for _, t := range w.store.All() {
		if t.Loaded {
			s.Loaded++
		}
	}
	return s
}
