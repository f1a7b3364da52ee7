package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/photowall/config"
)

// setupLogging builds the file logger
// The terminal belongs to the wall, so nothing is ever written to stdout or
// stderr: with logging off the logger is a no-op and the std log is
// discarded, with it on both go to a rotating file
func setupLogging(cfg config.LoggingConfig, debug bool) (*zap.Logger, io.Closer, error) {
	if !debug && !cfg.Enabled {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil, nil
	}

	level := zapcore.DebugLevel
	if !debug {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid logging.level: %w", err)
		}
		level = parsed
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	sink := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), level)
	logger := zap.New(core, zap.AddCaller())

	log.SetOutput(sink)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return logger, sink, nil
}
