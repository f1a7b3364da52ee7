package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/core"
)

// StatusInfo is the state shown in the status bar
type StatusInfo struct {
	Mode        core.InputMode
	Muted       bool
	AudioActive bool
	CommandText string // input line while in command mode
	Message     string
	IsError     bool
	Loading     bool
	Tiles       int
	Loaded      int
	Cached      int
	Cell        [2]int // cell under the view center
	FPS         int
}

type statusItem struct {
	text string
	fg   tcell.Color
	bg   tcell.Color
}

// DrawStatusBar writes the status bar on row y
func DrawStatusBar(screen tcell.Screen, y int, info StatusInfo) {
	width, height := screen.Size()
	if y < 0 || y >= height {
		return
	}

	bgStyle := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbBackground)
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, bgStyle)
	}

	x := 0
	put := func(text string, fg, bg tcell.Color) bool {
		style := tcell.StyleDefault.Foreground(fg).Background(bg)
		for _, ch := range text {
			if x >= width {
				return false
			}
			screen.SetContent(x, y, ch, nil, style)
			x++
		}
		return true
	}

	// Audio indicator, only when an output device exists
	if info.AudioActive {
		audioBg := RgbAudioUnmuted
		if info.Muted {
			audioBg = RgbAudioMuted
		}
		if !put(constants.AudioStr, RgbBlack, audioBg) {
			return
		}
	}

	modeText, modeBg := constants.ModeTextWall, RgbModeWallBg
	switch info.Mode {
	case core.ModeCommand:
		modeText, modeBg = constants.ModeTextCommand, RgbModeCommandBg
	case core.ModePreview:
		modeText, modeBg = constants.ModeTextPreview, RgbModePreviewBg
	}
	if !put(modeText, RgbStatusText, modeBg) {
		return
	}
	x++

	switch {
	case info.Mode == core.ModeCommand:
		if !put(":"+info.CommandText, RgbCommandInputText, RgbBackground) {
			return
		}
	case info.Loading:
		if !put("loading...", RgbLoadingText, RgbBackground) {
			return
		}
	case info.Message != "":
		fg := RgbStatusMessageText
		if info.IsError {
			fg = RgbErrorText
		}
		if !put(info.Message, fg, RgbBackground) {
			return
		}
	}
	leftEndX := x + 1

	// Right side items in priority order, dropped from the end when space is short
	items := []statusItem{
		{text: fmt.Sprintf(" Tiles: %d/%d ", info.Loaded, info.Tiles), fg: RgbBlack, bg: RgbTilesBg},
		{text: fmt.Sprintf(" Cell: %d,%d ", info.Cell[0], info.Cell[1]), fg: RgbBlack, bg: RgbPositionBg},
		{text: fmt.Sprintf(" Cache: %d ", info.Cached), fg: RgbBlack, bg: RgbCacheBg},
		{text: fmt.Sprintf(" FPS: %d ", info.FPS), fg: RgbBlack, bg: RgbFpsBg},
	}

	available := width - leftEndX
	total, fit := 0, 0
	for _, item := range items {
		w := utf8.RuneCountInString(item.text)
		if total+w > available {
			break
		}
		total += w
		fit++
	}

	x = width - total
	for _, item := range items[:fit] {
		put(item.text, item.fg, item.bg)
	}
}
