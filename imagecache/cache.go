// Package imagecache keeps decoded photos keyed by URL and loads missing
// ones in the background.
package imagecache

import (
	"image"
	"sync"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// thumbSide is the shorter side of the wall thumbnail in source pixels
const thumbSide = 96

// Entry is one cached image, ready to draw
type Entry struct {
	Image    *gg.ImageBuf // full resolution, used by the preview
	Width    int
	Height   int
	Thumb    *gg.ImageBuf // downscaled copy drawn on the wall
	ThumbW   int
	ThumbH   int
	Fallback bool // placeholder stored for a failed or absent image
}

// NewEntry converts a decoded image for drawing
func NewEntry(img image.Image, fallback bool) *Entry {
	b := img.Bounds()
	e := &Entry{
		Image:    gg.ImageBufFromImage(img),
		Width:    b.Dx(),
		Height:   b.Dy(),
		Fallback: fallback,
	}

	thumb := thumbnail(img)
	e.Thumb = gg.ImageBufFromImage(thumb)
	e.ThumbW, e.ThumbH = thumb.Bounds().Dx(), thumb.Bounds().Dy()
	return e
}

// thumbnail scales img so its shorter side is thumbSide; smaller images are kept
func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	short := min(b.Dx(), b.Dy())
	if short <= thumbSide {
		return img
	}
	w := b.Dx() * thumbSide / short
	h := b.Dy() * thumbSide / short
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Cache maps URL to a loaded image
// It only grows; entries live for the session
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Entry)}
}

// Has reports whether url has an entry
func (c *Cache) Has(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[url]
	return ok
}

// Get returns the entry for url
func (c *Cache) Get(url string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[url]
	return e, ok
}

// Set stores an entry; an existing entry for url is kept
// Returns the entry now stored
func (c *Cache) Set(url string, e *Entry) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.entries[url]; ok {
		return old
	}
	c.entries[url] = e
	return e
}

// Len returns the number of entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fallbacks returns how many entries are placeholders
func (c *Cache) Fallbacks() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if e.Fallback {
			n++
		}
	}
	return n
}
