package render

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// RgbOutputText is the command output panel text color
var RgbOutputText = tcell.NewRGBColor(192, 202, 245)

// DrawOutput draws command output as a panel in the top-left corner of the
// screen, one space of padding on each side. Only the last maxRows lines
// are kept; lines wider than the screen are cut.
func DrawOutput(screen tcell.Screen, lines []string, maxRows int) {
	if len(lines) == 0 || maxRows <= 0 {
		return
	}
	if len(lines) > maxRows {
		lines = lines[len(lines)-maxRows:]
	}

	sw, _ := screen.Size()
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	width = min(width+2, sw)

	style := tcell.StyleDefault.Foreground(RgbOutputText).Background(RgbBackground)
	for y, l := range lines {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
		x := 1
		for _, ch := range l {
			if x >= width-1 {
				break
			}
			screen.SetContent(x, y, ch, nil, style)
			x++
		}
	}
}
