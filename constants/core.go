package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the default rendering frame interval (~30 FPS)
	// Terminal output is the bottleneck, 60 FPS is reachable with --fps 60
	FrameUpdateInterval = 33 * time.Millisecond

	// FrameBaseline is the frame time the easing and velocity constants are tuned for
	FrameBaseline = 16 * time.Millisecond

	// EventQueueSize is the capacity of the input event channel
	EventQueueSize = 256
)

// Catalog Fetch
const (
	// CatalogTimeout bounds the one-shot catalog request
	CatalogTimeout = 15 * time.Second

	// CatalogCacheTTL is how long a search result stays cached
	CatalogCacheTTL = 15 * time.Minute

	// ImageFetchTimeout bounds a single photo download
	ImageFetchTimeout = 20 * time.Second

	// MaxImageBytes caps a single photo download
	MaxImageBytes = 16 << 20
)
