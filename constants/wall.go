package constants

import "time"

// Tile Geometry (world pixels)
const (
	TileWidth  = 300
	TileHeight = 400
	TileGap    = 60
)

// Visibility Buffers
const (
	// DrawBufferFactor expands the visible rect for culling
	DrawBufferFactor = 1.5

	// GenerateBufferFactor expands the visible rect for tile materialization
	GenerateBufferFactor = 1.2

	// GenerateMarginCells is the extra ring of cells around the generated range
	GenerateMarginCells = 1
)

// Camera Physics
const (
	// Easing is the per-baseline-frame follow factor toward the target offset
	Easing = 0.1

	// InertiaDamping is the velocity decay per baseline frame after release
	InertiaDamping = 0.95

	// InertiaEpsilon is the velocity magnitude below which inertia stops
	InertiaEpsilon = 0.1

	// FollowEpsilon is the offset delta below which easing is skipped
	FollowEpsilon = 0.1

	// MaxDragSpeed caps release velocity (world px per baseline frame)
	MaxDragSpeed = 240.0

	// MinPointerSampleGap merges pointer samples closer together than this
	MinPointerSampleGap = time.Millisecond

	// ClickSlop is the pointer travel (world px) under which a press/release is a click
	ClickSlop = 6.0
)

// Loader Admission
const (
	// LoadBatchSize is the number of loads issued per batch
	LoadBatchSize = 5

	// LoadBatchDelay is the spacing between batch issuance
	LoadBatchDelay = 100 * time.Millisecond
)

// Tile Eviction
const (
	// EvictAfterFrames drops tiles that stayed outside the generate region this long
	// 0 keeps every tile for the session
	EvictAfterFrames = 1800
)
