package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidIterations indicates a negative loop count
	ErrInvalidIterations = errors.New("invalid loop iterations")

	// ErrInvalidInterval indicates a negative loop interval
	ErrInvalidInterval = errors.New("invalid loop interval")

	// ErrInvalidLogLevel indicates a level logrus does not know
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogRotation indicates negative rotation limits
	ErrInvalidLogRotation = errors.New("invalid log rotation settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Loop.Iterations < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidIterations, cfg.Loop.Iterations))
	}
	if cfg.Loop.Interval < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %v", ErrInvalidInterval, cfg.Loop.Interval))
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("%w: max_size_mb, max_backups and max_age_days must be >= 0", ErrInvalidLogRotation))
	}

	return errors.Join(errs...)
}
