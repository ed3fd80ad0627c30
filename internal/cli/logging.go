package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mvp-joe/daemonprobe/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// lazyWriter resolves its destination on every write. On Windows a detach
// without NoClose replaces os.Stderr, and output has to follow it.
type lazyWriter func() io.Writer

func (w lazyWriter) Write(p []byte) (int, error) {
	return w().Write(p)
}

// newLogger builds the diagnostic logger. Without a log file it writes to
// stderr, which a detach without NoClose sends to the null device.
func newLogger(cfg config.LogConfig, verbose bool, stderr io.Writer) (*logrus.Logger, func(), error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.File == "" {
		logger.SetOutput(stderr)
		return logger, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	logger.SetOutput(rotator)

	return logger, func() { rotator.Close() }, nil
}
