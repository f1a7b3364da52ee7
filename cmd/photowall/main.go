// Command photowall shows an infinite, draggable wall of photos in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/photowall/app"
	"github.com/lixenwraith/photowall/audio"
	"github.com/lixenwraith/photowall/catalog"
	"github.com/lixenwraith/photowall/config"
)

// catalogCacheHits bounds the search result cache, counted in hits
const catalogCacheHits = 2000

var (
	configPath string
	debug      bool
	query      string
	fps        int
	glyphs     string
	mute       bool

	cfg     *config.Config
	logger  *zap.Logger
	logSink io.Closer
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photowall",
		Short: "An infinite wall of photos in your terminal",
		Long: `photowall fills the terminal with an endless brick wall of photos.

Drag with the mouse to explore and release to fling. Click a photo to
preview it. Arrow keys or hjkl pan, 0 returns home, m toggles sound.
Press : for commands (help lists them), Ctrl+Q quits.

Photos come from the Pixabay API; set PIXABAY_API_KEY in the environment
or in a .env file. Without a key the wall shows placeholders.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
			if logSink != nil {
				_ = logSink.Close()
			}
		},
		RunE: runWall,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&configPath, "config", "photowall.yaml", "config file (YAML)")
	f.BoolVar(&debug, "debug", false, "write debug logs to the log file")
	f.StringVar(&query, "query", "", "photo search terms")
	f.IntVar(&fps, "fps", 0, "frames per second")
	f.StringVar(&glyphs, "mode", "", "cell glyphs: quadrant or half")
	f.BoolVar(&mute, "mute", false, "start with sound off")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, logSink, err = setupLogging(cfg.Logging, debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// applyFlags overrides cfg with the flags given on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("query") {
		cfg.Catalog.Query.Q = query
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = fps
	}
	if flags.Changed("mode") {
		cfg.Display.Glyphs = glyphs
	}
	if flags.Changed("mute") && mute {
		cfg.Audio.Enabled = false
	}
	if flags.Changed("debug") && debug {
		cfg.Logging.Enabled = true
	}
}

func runWall(cmd *cobra.Command, args []string) error {
	resultCache, err := catalog.NewResultCache(catalogCacheHits, cfg.GetCacheTTL())
	if err != nil {
		return err
	}
	defer resultCache.Close()

	client := catalog.NewClient(cfg.Catalog.APIKey,
		catalog.WithEndpoint(cfg.Catalog.Endpoint),
		catalog.WithCache(resultCache),
		catalog.WithLogger(logger))

	// A missing audio device leaves the wall silent
	player := audio.NewPlayer(cfg.Audio, logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}

	screen, err := app.OpenScreen()
	if err != nil {
		player.Close()
		return err
	}
	defer screen.Fini()

	a := app.New(screen, app.Options{
		Config:  cfg,
		Logger:  logger,
		Catalog: client,
		Player:  player,
	})
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}
