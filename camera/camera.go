// Package camera implements the wall viewport: a continuously eased offset
// chasing a target offset, with drag input and release inertia.
package camera

import (
	"math"
	"time"

	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/grid"
)

// State is the camera input state
type State uint8

const (
	StateIdle State = iota
	StateDragging
	StateInertial
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateInertial:
		return "inertial"
	default:
		return "unknown"
	}
}

// Params tunes the camera physics
type Params struct {
	Easing   float64       // follow factor per baseline frame
	Damping  float64       // velocity multiplier per frame after release
	Epsilon  float64       // velocity magnitude where inertia stops
	Baseline time.Duration // frame time the factors are tuned for
	MaxSpeed float64       // velocity magnitude cap, 0 disables
	MinGap   time.Duration // pointer samples closer than this are merged
}

// DefaultParams returns the standard wall physics
func DefaultParams() Params {
	return Params{
		Easing:   constants.Easing,
		Damping:  constants.InertiaDamping,
		Epsilon:  constants.InertiaEpsilon,
		Baseline: constants.FrameBaseline,
		MaxSpeed: constants.MaxDragSpeed,
		MinGap:   constants.MinPointerSampleGap,
	}
}

// Camera tracks the wall offset
// Offset is where the wall is drawn, Target is where input wants it
// Owned by the frame goroutine
type Camera struct {
	params Params

	Offset   grid.Point
	Target   grid.Point
	Velocity grid.Point // world px per baseline frame

	dragging   bool
	dragAnchor grid.Point
	lastPos    grid.Point
	lastTime   time.Time
	pressPos   grid.Point
	travel     float64
}

// New creates a camera at the origin
func New(params Params) *Camera {
	return &Camera{params: params}
}

// State derives the input state from drag flag and residual velocity
func (c *Camera) State() State {
	if c.dragging {
		return StateDragging
	}
	if c.speed() > c.params.Epsilon {
		return StateInertial
	}
	return StateIdle
}

// Dragging reports whether a drag is in progress
func (c *Camera) Dragging() bool {
	return c.dragging
}

// PointerDown starts a drag at pointer position p
func (c *Camera) PointerDown(p grid.Point, now time.Time) {
	c.dragging = true
	c.dragAnchor = p.Sub(c.Target)
	c.lastPos = p
	c.lastTime = now
	c.pressPos = p
	c.travel = 0
	c.Velocity = grid.Point{}
}

// PointerMove drags the target and samples velocity
// now is when the pointer event was generated; samples closer than MinGap
// to the previous one only move the target, the next sample measures the
// velocity over the combined span
func (c *Camera) PointerMove(p grid.Point, now time.Time) {
	if !c.dragging {
		return
	}

	c.Target = p.Sub(c.dragAnchor)
	c.travel = math.Max(c.travel, math.Hypot(p.X-c.pressPos.X, p.Y-c.pressPos.Y))

	elapsed := now.Sub(c.lastTime)
	if elapsed <= 0 || elapsed < c.params.MinGap {
		return
	}

	// Displacement per baseline frame
	k := float64(c.params.Baseline) / float64(elapsed)
	c.Velocity = p.Sub(c.lastPos).Scale(k)
	if speed := c.speed(); c.params.MaxSpeed > 0 && speed > c.params.MaxSpeed {
		c.Velocity = c.Velocity.Scale(c.params.MaxSpeed / speed)
	}

	c.lastPos = p
	c.lastTime = now
}

// PointerUp ends a drag; residual velocity carries on as inertia
// Returns true when the drag stayed within slop (a click)
func (c *Camera) PointerUp(slop float64) bool {
	if !c.dragging {
		return false
	}
	c.dragging = false
	if c.travel <= slop {
		c.Velocity = grid.Point{}
		return true
	}
	return false
}

// PointerLeave ends a drag without click semantics
func (c *Camera) PointerLeave() {
	c.dragging = false
}

// Nudge moves the target by d and cancels inertia
func (c *Camera) Nudge(d grid.Point) {
	c.Target = c.Target.Add(d)
	c.Velocity = grid.Point{}
}

// JumpTo sets a new target; the offset eases toward it
func (c *Camera) JumpTo(target grid.Point) {
	c.dragging = false
	c.Target = target
	c.Velocity = grid.Point{}
}

// Step advances the camera by one frame of length dt
// Inertia runs in baseline frames: a frame of two baselines glides and
// damps as much as two baseline frames would
func (c *Camera) Step(dt time.Duration) {
	if !c.dragging && c.speed() > c.params.Epsilon {
		k := float64(dt) / float64(c.params.Baseline)
		decay := math.Pow(c.params.Damping, k)
		// Sum of v*d^i over k frames
		glide := k
		if c.params.Damping != 1 {
			glide = (1 - decay) / (1 - c.params.Damping)
		}
		c.Target = c.Target.Add(c.Velocity.Scale(glide))
		c.Velocity = c.Velocity.Scale(decay)
	} else if !c.dragging {
		c.Velocity = grid.Point{}
	}

	d := c.Target.Sub(c.Offset)
	if math.Abs(d.X) <= constants.FollowEpsilon && math.Abs(d.Y) <= constants.FollowEpsilon {
		return
	}

	// Clamped so one long frame lands on the target instead of past it
	f := math.Min(c.params.Easing*float64(dt)/float64(c.params.Baseline), 1)
	c.Offset = c.Offset.Add(d.Scale(f))
}

func (c *Camera) speed() float64 {
	return math.Hypot(c.Velocity.X, c.Velocity.Y)
}
