package core

// InputMode selects how key and mouse events are routed
type InputMode uint8

const (
	ModeWall InputMode = iota
	ModeCommand
	ModePreview
)

func (m InputMode) String() string {
	switch m {
	case ModeWall:
		return "WALL"
	case ModeCommand:
		return "COMMAND"
	case ModePreview:
		return "PREVIEW"
	default:
		return "UNKNOWN"
	}
}
