// Package app ties the wall to the terminal: it owns the screen, runs the
// frame loop, routes input and fetches the catalog.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/photowall/audio"
	"github.com/lixenwraith/photowall/catalog"
	"github.com/lixenwraith/photowall/config"
	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/core"
	"github.com/lixenwraith/photowall/imagecache"
	"github.com/lixenwraith/photowall/modes"
	"github.com/lixenwraith/photowall/render"
	"github.com/lixenwraith/photowall/status"
	"github.com/lixenwraith/photowall/wall"
)

// CatalogSource answers photo searches
type CatalogSource interface {
	Search(ctx context.Context, q catalog.Query) ([]catalog.Hit, error)
}

// Options wires an App; zero fields get working defaults
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Catalog CatalogSource
	Fetcher imagecache.Fetcher
	Player  *audio.Player
	Rand    *rand.Rand
}

type catalogResult struct {
	seq   uint64
	query catalog.Query
	urls  []string
	err   error
}

// App is the running photowall
// Everything except the event poller and fetch goroutines runs on the
// goroutine that calls Run
type App struct {
	screen    tcell.Screen
	cfg       *config.Config
	logger    *zap.Logger
	sessionID string

	wall      *wall.Wall
	cache     *imagecache.Cache
	loader    *imagecache.Loader
	renderer  *render.Renderer
	presenter *render.Presenter
	dc        *gg.Context
	player    *audio.Player
	source    CatalogSource
	metrics   *status.Registry

	dispatcher *modes.Dispatcher
	editor     *modes.LineEditor

	mode       core.InputMode
	preview    *imagecache.Entry
	output     []string
	message    string
	messageErr bool
	messageAt  time.Time

	query      catalog.Query
	loading    bool
	ready      bool // first catalog settled
	catalogs   chan catalogResult
	catalogSeq uint64 // latest request; older results are dropped

	cols, rows int // screen size in cells
	wallRows   int
	pressed    bool

	fps       int
	fpsFrames int
	fpsAt     time.Time
	lastFrame time.Time

	events chan tcell.Event
	stop   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	now    func() time.Time
}

// New builds an app drawing to an initialized screen
func New(screen tcell.Screen, opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sessionID := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session", sessionID))

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = imagecache.NewHTTPFetcher()
	}
	player := opts.Player
	if player == nil {
		player = audio.NewPlayer(cfg.Audio, logger)
	}

	cache := imagecache.NewCache()
	loader := imagecache.NewLoader(cache, fetcher,
		imagecache.WithBatch(cfg.Wall.BatchSize, cfg.GetBatchDelay()),
		imagecache.WithLoaderLogger(logger))

	wallOpts := wall.DefaultOptions()
	wallOpts.EvictAfter = cfg.Wall.EvictAfter
	wallOpts.Rand = opts.Rand
	wallOpts.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)
	session := modes.NewSession()

	a := &App{
		screen:     screen,
		cfg:        cfg,
		logger:     logger,
		sessionID:  sessionID,
		wall:       wall.New(cache, loader, wallOpts),
		cache:      cache,
		loader:     loader,
		renderer:   render.NewRenderer(),
		metrics:    status.NewRegistry(),
		presenter:  render.NewPresenter(screen, render.ParseGlyphMode(cfg.Display.Glyphs)),
		player:     player,
		source:     opts.Catalog,
		dispatcher: modes.NewDispatcher(session),
		editor:     modes.NewLineEditor(session),
		mode:       core.ModeWall,
		query:      cfg.Catalog.Query,
		catalogs:   make(chan catalogResult, 1),
		events:     make(chan tcell.Event, constants.EventQueueSize),
		stop:       make(chan struct{}),
		ctx:        gctx,
		cancel:     cancel,
		group:      group,
		now:        time.Now,
	}

	w, h := screen.Size()
	a.resize(w, h)
	return a
}

// SessionID identifies this run in the logs
func (a *App) SessionID() string {
	return a.sessionID
}

// Run starts the catalog fetch and event poller, then drives frames until
// the user quits or ctx ends
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("photowall started",
		zap.Int("cols", a.cols),
		zap.Int("rows", a.rows),
		zap.Int("fps", a.cfg.Display.FPS))

	a.startCatalog(a.query)
	core.Go(a.pollEvents)

	ticker := time.NewTicker(a.cfg.FrameInterval())
	defer ticker.Stop()
	a.lastFrame = a.now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-a.events:
			if !a.HandleEvent(ev) {
				a.logger.Info("quit requested")
				return nil
			}

		case res := <-a.catalogs:
			a.applyCatalog(res)

		case <-ticker.C:
			now := a.now()
			a.Frame(now, now.Sub(a.lastFrame))
			a.lastFrame = now
		}
	}
}

// Close stops background work and releases the raster and audio device
// The screen belongs to the caller
func (a *App) Close() error {
	select {
	case <-a.stop:
		return nil
	default:
		close(a.stop)
	}
	a.cancel()
	err := a.group.Wait()
	a.loader.Close()
	a.player.Close()
	if a.dc != nil {
		a.dc.Close()
		a.dc = nil
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app: background work: %w", err)
	}
	return nil
}

// pollEvents forwards screen events until the screen is finalized
func (a *App) pollEvents() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.stop:
			return
		}
	}
}

// startCatalog fetches q in the background; the result arrives on a.catalogs
func (a *App) startCatalog(q catalog.Query) {
	a.catalogSeq++
	seq := a.catalogSeq
	a.loading = true
	if a.source == nil {
		a.applyCatalog(catalogResult{seq: seq, query: q, err: catalog.ErrNoAPIKey})
		return
	}
	a.group.Go(func() error {
		ctx, cancel := context.WithTimeout(a.ctx, constants.CatalogTimeout)
		defer cancel()
		hits, err := a.source.Search(ctx, q)
		res := catalogResult{seq: seq, query: q, urls: catalog.URLs(hits), err: err}
		select {
		case a.catalogs <- res:
		case <-a.ctx.Done():
		}
		// Search failures are reported through the result, not the group
		return nil
	})
}

// applyCatalog installs a settled catalog fetch
// A failed first fetch still starts the wall, on placeholders.
// Results of superseded requests are dropped
func (a *App) applyCatalog(res catalogResult) {
	if res.seq != a.catalogSeq {
		a.logger.Debug("stale catalog dropped", zap.String("q", res.query.Q), zap.Uint64("seq", res.seq))
		return
	}
	a.loading = false
	if res.err != nil {
		a.logger.Warn("catalog fetch failed", zap.String("q", res.query.Q), zap.Error(res.err))
		a.setMessage(res.err.Error(), true)
		a.player.Play(audio.SoundError)
		if a.ready {
			return
		}
	} else {
		a.logger.Info("catalog ready", zap.String("q", res.query.Q), zap.Int("urls", len(res.urls)))
		if a.ready {
			a.wall.Reset()
		}
		a.query = res.query
	}

	a.wall.SetCatalog(res.urls)
	a.wall.Seed(a.now())
	a.ready = true
}

// resize tracks a new screen size and rebuilds the raster
func (a *App) resize(cols, rows int) {
	a.cols, a.rows = cols, rows
	a.wallRows = max(rows-constants.StatusRows, 0)
	a.wall.Resize(float64(cols)*constants.CellWorldWidth, float64(a.wallRows)*constants.CellWorldHeight)

	if a.dc != nil {
		a.dc.Close()
		a.dc = nil
	}
	if cols > 0 && a.wallRows > 0 {
		a.dc = gg.NewContext(cols*2, a.wallRows*2)
	}
	a.logger.Debug("resized", zap.Int("cols", cols), zap.Int("rows", rows))
}

func (a *App) setMessage(msg string, isErr bool) {
	a.message = msg
	a.messageErr = isErr
	a.messageAt = a.now()
}
