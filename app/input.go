package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/photowall/audio"
	"github.com/lixenwraith/photowall/camera"
	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/core"
	"github.com/lixenwraith/photowall/grid"
	"github.com/lixenwraith/photowall/modes"
)

// HandleEvent processes one terminal event
// Returns false when the app should exit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKeyEvent(ev)
	case *tcell.EventMouse:
		a.handleMouseEvent(ev, a.eventTime(ev))
	case *tcell.EventResize:
		w, h := ev.Size()
		a.resize(w, h)
		a.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			// Pointer left the terminal: end any drag without a click
			a.pressed = false
			a.wall.Camera().PointerLeave()
		}
	}
	return true
}

func (a *App) handleKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlQ {
		return false
	}

	switch a.mode {
	case core.ModeCommand:
		return a.handleCommandMode(ev)
	case core.ModePreview:
		return a.handlePreviewMode(ev)
	default:
		return a.handleWallMode(ev)
	}
}

func (a *App) handleWallMode(ev *tcell.EventKey) bool {
	step := constants.KeyPanStep
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		a.output = nil
		a.message = ""
		return true
	case tcell.KeyUp:
		a.wall.Pan(0, step)
		return true
	case tcell.KeyDown:
		a.wall.Pan(0, -step)
		return true
	case tcell.KeyLeft:
		a.wall.Pan(step, 0)
		return true
	case tcell.KeyRight:
		a.wall.Pan(-step, 0)
		return true
	case tcell.KeyHome:
		a.wall.Home()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case ':':
		a.mode = core.ModeCommand
		a.editor.Reset()
	case 'k':
		a.wall.Pan(0, step)
	case 'j':
		a.wall.Pan(0, -step)
	case 'h':
		a.wall.Pan(step, 0)
	case 'l':
		a.wall.Pan(-step, 0)
	case '0':
		a.wall.Home()
	case 'm':
		a.toggleMute()
	default:
		// Any other key dismisses command output
		a.output = nil
	}
	return true
}

func (a *App) handlePreviewMode(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape, tcell.KeyEnter:
		a.closePreview()
	case tcell.KeyRune:
		if ev.Rune() == 'q' || ev.Rune() == ' ' {
			a.closePreview()
		}
	}
	return true
}

func (a *App) handleCommandMode(ev *tcell.EventKey) bool {
	switch a.editor.HandleKey(ev) {
	case modes.EditCancel:
		a.mode = core.ModeWall
	case modes.EditSubmit:
		line := a.editor.Text()
		a.editor.Reset()
		a.mode = core.ModeWall
		return a.runCommand(line)
	}
	return true
}

// runCommand executes a command line and applies its result
// Returns false on quit
func (a *App) runCommand(line string) bool {
	res := a.dispatcher.Execute(line)
	a.logger.Debug("command", zap.String("line", line), zap.Uint8("kind", uint8(res.Kind)), zap.Bool("err", res.Err))

	if res.Err {
		a.setMessage(res.Text, true)
		a.player.Play(audio.SoundError)
		return true
	}

	switch res.Kind {
	case modes.KindText, modes.KindHTML:
		lines := res.Lines()
		switch len(lines) {
		case 0:
		case 1:
			a.setMessage(lines[0], false)
		default:
			a.output = lines
		}
	case modes.KindNavigate:
		// Links are shown, not launched: the terminal has no browser to hand them to
		a.setMessage(res.Lines()[0], false)
		a.logger.Info("navigate", zap.String("url", res.URL))
	case modes.KindEffect:
		return a.applyEffect(res)
	}
	return true
}

func (a *App) applyEffect(res modes.Result) bool {
	switch res.Effect {
	case modes.EffectQuit:
		return false
	case modes.EffectClear:
		a.output = nil
		a.message = ""
	case modes.EffectGoto:
		a.wall.GoTo(res.Cell.X, res.Cell.Y)
		a.setMessage(fmt.Sprintf("going to %d,%d", res.Cell.X, res.Cell.Y), false)
	case modes.EffectHome:
		a.wall.Home()
	case modes.EffectSearch:
		q := a.query
		q.Q = res.Query
		q.Page = 1
		a.setMessage("searching "+res.Query, false)
		a.startCatalog(q)
	case modes.EffectStats:
		a.output = a.statsLines()
	case modes.EffectMute:
		a.toggleMute()
	}
	return true
}

func (a *App) statsLines() []string {
	s := a.wall.Stats()
	c := a.wall.CenterCell()
	lines := []string{
		fmt.Sprintf("query      %s", a.query.Q),
		fmt.Sprintf("catalog    %d urls", s.Catalog),
		fmt.Sprintf("tiles      %d (%d loaded)", s.Tiles, s.Loaded),
		fmt.Sprintf("images     %d cached, %d placeholder", s.Cached, s.Fallback),
		fmt.Sprintf("loading    %d in flight, %d queued, %d failed", s.InFlight, s.Pending, a.loader.Failures()),
		fmt.Sprintf("camera     cell %d,%d %s", c.X, c.Y, a.wall.Camera().State()),
		fmt.Sprintf("frame      %d at %d fps", s.Frame, a.fps),
		fmt.Sprintf("session    %s", a.sessionID),
	}
	return append(lines, a.metrics.Lines()...)
}

func (a *App) toggleMute() {
	if a.player.ToggleMute() {
		a.setMessage("sound off", false)
	} else {
		a.setMessage("sound on", false)
	}
}

// viewportPoint maps a screen cell to the world-pixel center of that cell,
// measured from the viewport's top-left corner
func viewportPoint(x, y int) grid.Point {
	return grid.Point{
		X: (float64(x) + 0.5) * constants.CellWorldWidth,
		Y: (float64(y) + 0.5) * constants.CellWorldHeight,
	}
}

// eventTime is when the terminal reported ev; queued events keep their
// original spacing even when they are handled back to back
func (a *App) eventTime(ev tcell.Event) time.Time {
	if when := ev.When(); !when.IsZero() {
		return when
	}
	return a.now()
}

func (a *App) handleMouseEvent(ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	btn := ev.Buttons()
	cam := a.wall.Camera()

	switch {
	case btn&tcell.WheelUp != 0:
		a.wall.Pan(0, constants.WheelPanStep)
		return
	case btn&tcell.WheelDown != 0:
		a.wall.Pan(0, -constants.WheelPanStep)
		return
	case btn&tcell.WheelLeft != 0:
		a.wall.Pan(constants.WheelPanStep, 0)
		return
	case btn&tcell.WheelRight != 0:
		a.wall.Pan(-constants.WheelPanStep, 0)
		return
	}

	p := viewportPoint(x, y)
	down := btn&tcell.Button1 != 0

	switch {
	case down && !a.pressed:
		if y >= a.wallRows || a.mode == core.ModeCommand {
			return
		}
		a.pressed = true
		if a.mode == core.ModePreview {
			return
		}
		cam.PointerDown(p, now)
		a.player.Play(audio.SoundGrab)

	case down && a.pressed:
		cam.PointerMove(p, now)

	case !down && a.pressed:
		a.pressed = false
		if a.mode == core.ModePreview {
			a.closePreview()
			return
		}
		if cam.PointerUp(constants.ClickSlop) {
			a.openPreviewAt(p)
		} else if cam.State() == camera.StateInertial {
			a.player.Play(audio.SoundFling)
		}
	}
}

// openPreviewAt shows the tile under viewport point p, if its image is ready
func (a *App) openPreviewAt(p grid.Point) {
	t := a.wall.TileAt(a.wall.ToWorld(p))
	if t == nil || !t.Loaded {
		return
	}
	e, ok := a.cache.Get(t.ImageURL)
	if !ok {
		return
	}
	a.preview = e
	a.mode = core.ModePreview
	a.output = nil
	a.player.Play(audio.SoundReveal)
	a.logger.Debug("preview", zap.Uint64("tile", t.ID), zap.String("url", t.ImageURL))
}

func (a *App) closePreview() {
	a.preview = nil
	a.mode = core.ModeWall
}
