package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/photowall/core"
	"github.com/lixenwraith/photowall/render"
)

// OpenScreen initializes the terminal for the wall: mouse drag reporting,
// focus events, hidden cursor. The screen is registered with the crash
// handler so a panic restores the terminal.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	PrepareScreen(screen)
	core.SetCrashScreen(screen)
	return screen, nil
}

// PrepareScreen applies the input modes and base style to an initialized screen
func PrepareScreen(screen tcell.Screen) {
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(render.RgbBackground))
	screen.Clear()
}
