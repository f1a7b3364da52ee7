package imagecache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/core"
	"github.com/lixenwraith/photowall/pool"
	"github.com/lixenwraith/photowall/tile"
)

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithBatch overrides batch size and spacing
func WithBatch(size int, delay time.Duration) LoaderOption {
	return func(l *Loader) {
		if size > 0 {
			l.batchSize = size
		}
		if delay >= 0 {
			l.batchDelay = delay
		}
	}
}

// WithLoaderLogger sets the logger
func WithLoaderLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// batch is a slice of tiles due at a point in time
type batch struct {
	due   time.Time
	tiles []*tile.Tile
}

// Loader fetches images for tiles in the background.
// Tiles are only touched from the caller's goroutine: Load, Pump and Drain
// are called by the frame loop, fetches report back through Drain.
type Loader struct {
	cache   *Cache
	fetcher Fetcher
	logger  *zap.Logger

	batchSize  int
	batchDelay time.Duration
	queue      []batch
	live       func(*tile.Tile) bool

	group singleflight.Group
	ctx   context.Context
	stop  context.CancelFunc
	wg    sync.WaitGroup

	mu       sync.Mutex
	done     []string
	inFlight atomic.Int32
	failures atomic.Int32
	closed   atomic.Bool
}

// NewLoader creates a loader writing into cache
func NewLoader(cache *Cache, fetcher Fetcher, opts ...LoaderOption) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		cache:      cache,
		fetcher:    fetcher,
		logger:     zap.NewNop(),
		batchSize:  constants.LoadBatchSize,
		batchDelay: constants.LoadBatchDelay,
		ctx:        ctx,
		stop:       cancel,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetLiveness installs the check Pump uses to skip tiles dropped from the
// wall while their batch waited; nil treats every tile as live
func (l *Loader) SetLiveness(live func(*tile.Tile) bool) {
	l.live = live
}

// Clear drops every queued batch; fetches already running finish normally
func (l *Loader) Clear() int {
	n := l.Pending()
	l.queue = nil
	return n
}

// EnsureLoaded marks t loaded when its image is cached, otherwise starts a
// fetch. Returns true if the tile is loaded on return.
func (l *Loader) EnsureLoaded(t *tile.Tile) bool {
	if t.Loaded {
		return true
	}
	if l.cache.Has(t.ImageURL) {
		t.Loaded = true
		return true
	}
	if t.ImageURL == pool.FallbackURL {
		l.cache.Set(t.ImageURL, placeholderEntry())
		t.Loaded = true
		return true
	}
	l.start(t.ImageURL)
	return false
}

// Load schedules tiles in batches: the first batch starts now, each
// following batch one delay later
func (l *Loader) Load(tiles []*tile.Tile, now time.Time) {
	if len(tiles) == 0 || l.closed.Load() {
		return
	}

	// Continue after the last scheduled batch
	due := now
	if n := len(l.queue); n > 0 && l.queue[n-1].due.Add(l.batchDelay).After(now) {
		due = l.queue[n-1].due.Add(l.batchDelay)
	}

	for i := 0; i < len(tiles); i += l.batchSize {
		end := min(i+l.batchSize, len(tiles))
		l.queue = append(l.queue, batch{due: due, tiles: tiles[i:end]})
		due = due.Add(l.batchDelay)
	}
	l.Pump(now)
}

// Pump issues every batch that is due at now and returns how many tiles
// it started. Tiles that are no longer live are skipped.
func (l *Loader) Pump(now time.Time) int {
	started := 0
	for len(l.queue) > 0 && !l.queue[0].due.After(now) {
		b := l.queue[0]
		l.queue = l.queue[1:]
		for _, t := range b.tiles {
			if l.live != nil && !l.live(t) {
				continue
			}
			if !l.EnsureLoaded(t) {
				started++
			}
		}
	}
	return started
}

// Pending returns the number of tiles waiting in later batches
func (l *Loader) Pending() int {
	n := 0
	for _, b := range l.queue {
		n += len(b.tiles)
	}
	return n
}

// InFlight returns the number of running fetches
func (l *Loader) InFlight() int {
	return int(l.inFlight.Load())
}

// Failures returns how many fetches fell back to the placeholder
func (l *Loader) Failures() int {
	return int(l.failures.Load())
}

// Drain returns URLs whose cache entry became available since the last call
func (l *Loader) Drain() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.done) == 0 {
		return nil
	}
	out := l.done
	l.done = nil
	return out
}

// Close cancels running fetches and waits for them to exit
func (l *Loader) Close() {
	if !l.closed.CompareAndSwap(false, true) {
		return
	}
	l.stop()
	l.wg.Wait()
	l.queue = nil
}

func (l *Loader) start(url string) {
	if l.closed.Load() {
		return
	}
	l.wg.Add(1)
	core.Go(func() {
		defer l.wg.Done()
		_, _, _ = l.group.Do(url, func() (any, error) {
			l.fetch(url)
			return nil, nil
		})
	})
}

func (l *Loader) fetch(url string) {
	if l.cache.Has(url) {
		return
	}

	l.inFlight.Add(1)
	defer l.inFlight.Add(-1)

	img, err := l.fetcher.Fetch(l.ctx, url)
	if err != nil {
		if l.ctx.Err() != nil {
			// Shutting down; leave the URL uncached
			return
		}
		l.failures.Add(1)
		l.logger.Warn("image load failed, using placeholder",
			zap.String("url", url),
			zap.Error(err))
		l.cache.Set(url, placeholderEntry())
		l.complete(url)
		return
	}

	l.cache.Set(url, NewEntry(img, false))
	l.logger.Debug("image loaded", zap.String("url", url))
	l.complete(url)
}

func (l *Loader) complete(url string) {
	l.mu.Lock()
	l.done = append(l.done, url)
	l.mu.Unlock()
}
