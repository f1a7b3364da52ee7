package constants

import "time"

// UI Layout Constants
const (
	// ModeIndicatorWidth is the consistent width for all mode indicators
	ModeIndicatorWidth = 9

	// Mode indicator text (all padded to ModeIndicatorWidth)
	ModeTextWall    = " WALL    "
	ModeTextCommand = " COMMAND "
	ModeTextPreview = " PREVIEW "

	// StatusRows is the number of terminal rows reserved below the wall
	StatusRows = 1

	// PreviewFill is the fraction of the screen a preview may occupy
	PreviewFill = 0.9
)

// Panning Input
const (
	// KeyPanStep is the target offset change per arrow key press (world px)
	KeyPanStep = 120.0

	// WheelPanStep is the target offset change per wheel notch (world px)
	WheelPanStep = 90.0
)

// Terminal Cell Geometry
const (
	// CellWorldWidth is how many world pixels one terminal column spans
	CellWorldWidth = 12.0

	// CellWorldHeight is how many world pixels one terminal row spans
	// Terminal cells are roughly twice as tall as wide
	CellWorldHeight = 24.0
)

// Messages
const (
	// CommandStatusMessageTimeout is how long command status messages are displayed
	CommandStatusMessageTimeout = 3 * time.Second

	// MaxHistory is the number of commands kept in a session history
	MaxHistory = 100
)

// AudioStr is the status bar audio indicator
const AudioStr = " ♫ "
