package imagecache

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/photowall/grid"
	"github.com/lixenwraith/photowall/pool"
	"github.com/lixenwraith/photowall/tile"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 40, 40, 255})
		}
	}
	return img
}

func newTiles(urls ...string) []*tile.Tile {
	m := grid.NewMapper(300, 400, 60)
	s := tile.NewStore()
	out := make([]*tile.Tile, len(urls))
	for i, u := range urls {
		out[i] = s.New(m, i, 0, u)
	}
	return out
}

// waitDrain collects drained URLs until n arrive or the deadline passes
func waitDrain(t *testing.T, l *Loader, n int) []string {
	t.Helper()
	var got []string
	require.Eventually(t, func() bool {
		got = append(got, l.Drain()...)
		return len(got) >= n
	}, 2*time.Second, 5*time.Millisecond)
	return got
}

func TestLoaderFetchesAndReports(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := NewCache()
	l := NewLoader(cache, FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		return solid(30, 40), nil
	}))
	defer l.Close()

	tiles := newTiles("a", "b")
	l.Load(tiles, time.Now())

	got := waitDrain(t, l, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, got)

	e, ok := cache.Get("a")
	require.True(t, ok)
	assert.False(t, e.Fallback)
	assert.Equal(t, 30, e.Width)
	assert.Equal(t, 40, e.Height)

	// Tiles are marked by the caller after draining
	assert.False(t, tiles[0].Loaded)
	assert.True(t, l.EnsureLoaded(tiles[0]), "cached image marks the tile immediately")
	assert.True(t, tiles[0].Loaded)
}

func TestLoaderFailureStoresPlaceholder(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := NewCache()
	l := NewLoader(cache, FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		return nil, errors.New("404")
	}))
	defer l.Close()

	l.Load(newTiles("broken"), time.Now())
	assert.Equal(t, []string{"broken"}, waitDrain(t, l, 1))

	e, ok := cache.Get("broken")
	require.True(t, ok)
	assert.True(t, e.Fallback)
	assert.Equal(t, 1, l.Failures())
	assert.Equal(t, 1, cache.Fallbacks())
}

func TestLoaderFallbackURLSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(NewCache(), FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		calls.Add(1)
		return solid(1, 1), nil
	}))
	defer l.Close()

	tiles := newTiles(pool.FallbackURL)
	assert.True(t, l.EnsureLoaded(tiles[0]))
	assert.True(t, tiles[0].Loaded)
	assert.Zero(t, calls.Load())
}

func TestLoaderDeduplicatesConcurrentFetches(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLoader(NewCache(), FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		calls.Add(1)
		<-release
		return solid(2, 2), nil
	}), WithBatch(10, 0))
	defer l.Close()

	l.Load(newTiles("same", "same", "same"), time.Now())
	require.Eventually(t, func() bool { return l.InFlight() == 1 }, time.Second, time.Millisecond)
	close(release)

	got := waitDrain(t, l, 1)
	assert.Equal(t, []string{"same"}, got)

	// Let stragglers finish before counting
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, l.Drain(), "each URL completes once")
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoaderBatches(t *testing.T) {
	var (
		mu      sync.Mutex
		fetched []string
	)
	block := make(chan struct{})
	l := NewLoader(NewCache(), FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		mu.Lock()
		fetched = append(fetched, url)
		mu.Unlock()
		<-block
		return solid(1, 1), nil
	}), WithBatch(5, 100*time.Millisecond))
	defer l.Close()
	defer close(block)

	urls := make([]string, 12)
	for i := range urls {
		urls[i] = string(rune('a' + i))
	}

	t0 := time.Unix(1000, 0)
	l.Load(newTiles(urls...), t0)
	assert.Equal(t, 7, l.Pending(), "first batch of 5 starts immediately")

	assert.Zero(t, l.Pump(t0.Add(99*time.Millisecond)))
	assert.Equal(t, 5, l.Pump(t0.Add(100*time.Millisecond)))
	assert.Equal(t, 2, l.Pending())
	assert.Equal(t, 2, l.Pump(t0.Add(time.Second)), "late pump issues every due batch")
	assert.Zero(t, l.Pending())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fetched) == 12
	}, time.Second, time.Millisecond)
}

func TestLoaderLoadAppendsAfterQueuedBatches(t *testing.T) {
	l := NewLoader(NewCache(), FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), WithBatch(1, 100*time.Millisecond))

	t0 := time.Unix(1000, 0)
	l.Load(newTiles("a", "b"), t0)
	l.Load(newTiles("c"), t0)

	// a at t0, b at t0+100ms, c at t0+200ms
	assert.Equal(t, 2, l.Pending())
	assert.Equal(t, 1, l.Pump(t0.Add(150*time.Millisecond)))
	assert.Equal(t, 1, l.Pending())
	assert.Equal(t, 1, l.Pump(t0.Add(200*time.Millisecond)))

	l.Close()
	assert.Empty(t, l.Drain(), "cancelled fetches are not reported")
	assert.Zero(t, l.Failures())
}

// recordingFetcher blocks until ctx ends and remembers every requested URL
type recordingFetcher struct {
	mu   sync.Mutex
	urls []string
}

func (f *recordingFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *recordingFetcher) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

func TestLoaderClearDropsQueue(t *testing.T) {
	f := &recordingFetcher{}
	l := NewLoader(NewCache(), f, WithBatch(1, 100*time.Millisecond))

	t0 := time.Unix(1000, 0)
	l.Load(newTiles("old1", "old2", "old3"), t0)
	require.Equal(t, 2, l.Pending())

	assert.Equal(t, 2, l.Clear())
	assert.Zero(t, l.Pending())

	// Work queued after a clear starts now, not behind the dropped batches
	l.Load(newTiles("new"), t0.Add(10*time.Millisecond))
	assert.Zero(t, l.Pending())
	assert.Zero(t, l.Pump(t0.Add(time.Hour)))

	require.Eventually(t, func() bool { return len(f.seen()) == 2 }, time.Second, time.Millisecond)
	l.Close()
	assert.ElementsMatch(t, []string{"old1", "new"}, f.seen())
}

func TestLoaderSkipsTilesNoLongerLive(t *testing.T) {
	f := &recordingFetcher{}
	l := NewLoader(NewCache(), f, WithBatch(1, 100*time.Millisecond))

	tiles := newTiles("keep", "gone1", "gone2", "kept")
	dead := map[*tile.Tile]bool{tiles[1]: true, tiles[2]: true}
	l.SetLiveness(func(t *tile.Tile) bool { return !dead[t] })

	t0 := time.Unix(1000, 0)
	l.Load(tiles, t0)
	assert.Equal(t, 1, l.Pump(t0.Add(time.Hour)), "only the live tile of the queued batches starts")
	assert.Zero(t, l.Pending())

	require.Eventually(t, func() bool { return len(f.seen()) == 2 }, time.Second, time.Millisecond)
	l.Close()
	assert.ElementsMatch(t, []string{"keep", "kept"}, f.seen())
}

func TestLoaderCloseStopsGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoader(NewCache(), FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	l.Load(newTiles("x", "y", "z"), time.Now())
	l.Close()
	l.Close()

	tiles := newTiles("late")
	assert.False(t, l.EnsureLoaded(tiles[0]), "closed loader starts nothing")
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_ = png.Encode(w, solid(4, 6))
		case "/garbage":
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher()

	img, err := f.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 6), img.Bounds())

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrStatus)

	_, err = f.Fetch(context.Background(), srv.URL+"/garbage")
	assert.Error(t, err)
}

func TestCacheKeepsFirstEntry(t *testing.T) {
	c := NewCache()
	first := NewEntry(solid(2, 2), false)
	stored := c.Set("u", first)
	assert.Same(t, first, stored)

	again := c.Set("u", placeholderEntry())
	assert.Same(t, first, again)
	assert.Equal(t, 1, c.Len())
	assert.Zero(t, c.Fallbacks())
}

func TestPlaceholderIsShared(t *testing.T) {
	p := Placeholder()
	require.NotNil(t, p)
	assert.Equal(t, image.Rect(0, 0, placeholderWidth, placeholderHeight), p.Bounds())
	assert.Same(t, p, Placeholder())
}

func TestEntryThumbnail(t *testing.T) {
	e := NewEntry(solid(300, 400), false)
	assert.Equal(t, 300, e.Width)
	assert.Equal(t, 400, e.Height)
	assert.Equal(t, thumbSide, e.ThumbW)
	assert.Equal(t, 128, e.ThumbH)

	small := NewEntry(solid(30, 40), false)
	assert.Equal(t, 30, small.ThumbW)
	assert.Equal(t, 40, small.ThumbH)
}
