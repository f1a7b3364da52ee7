package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/core"
	"github.com/lixenwraith/photowall/render"
)

// Frame advances the wall by dt and redraws the screen
func (a *App) Frame(now time.Time, dt time.Duration) {
	if a.ready {
		stats := a.wall.Frame(now, dt)
		if stats.Added > 0 || stats.Evicted > 0 {
			a.logger.Debug("frame",
				zap.Int("added", stats.Added),
				zap.Int("evicted", stats.Evicted),
				zap.Int("marked", stats.Marked))
		}
	}

	a.fpsFrames++
	if a.fpsAt.IsZero() {
		a.fpsAt = now
	} else if elapsed := now.Sub(a.fpsAt); elapsed >= time.Second {
		a.fps = int(float64(a.fpsFrames) / elapsed.Seconds())
		a.fpsFrames = 0
		a.fpsAt = now
	}

	if a.message != "" && now.Sub(a.messageAt) > constants.CommandStatusMessageTimeout {
		a.message = ""
	}

	a.draw()
}

// draw rasterizes the wall, presents it and overlays the text layers
func (a *App) draw() {
	if a.dc != nil {
		view := render.NewView(a.wall.Offset(), a.cols*2, a.wallRows*2,
			constants.CellWorldWidth/2, constants.CellWorldHeight/2)

		start := time.Now()
		rs := a.renderer.DrawFrame(a.dc, view, a.wall.Store().All(), a.cache)
		a.metrics.Int("render.drawn").Store(int64(len(rs.Drawn)))
		a.metrics.Int("render.culled").Store(int64(rs.Culled))
		a.metrics.Int("render.pending").Store(int64(rs.Pending))
		if a.mode == core.ModePreview && a.preview != nil {
			render.DrawPreview(a.dc, view, a.preview, constants.PreviewFill)
		}
		a.presenter.Present(a.dc.Image(), 0, 0)
		a.metrics.Float("render.ms").Set(float64(time.Since(start).Microseconds()) / 1000)
	}

	render.DrawOutput(a.screen, a.output, a.wallRows)
	render.DrawStatusBar(a.screen, a.rows-1, a.statusInfo())
	a.screen.Show()
}

func (a *App) statusInfo() render.StatusInfo {
	s := a.wall.Stats()
	c := a.wall.CenterCell()
	return render.StatusInfo{
		Mode:        a.mode,
		Muted:       a.player.IsMuted(),
		AudioActive: a.player.Active(),
		CommandText: a.editor.Text(),
		Message:     a.message,
		IsError:     a.messageErr,
		Loading:     a.loading,
		Tiles:       s.Tiles,
		Loaded:      s.Loaded,
		Cached:      s.Cached,
		Cell:        [2]int{c.X, c.Y},
		FPS:         a.fps,
	}
}
