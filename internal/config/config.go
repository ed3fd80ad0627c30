// Package config loads daemonprobe settings from defaults, an optional YAML
// file, DAEMONPROBE_* environment variables and command-line flags.
package config

import "time"

// Config represents the complete daemonprobe configuration.
// With no file, environment or flags it reproduces the plain probe: detach
// without chdir or stream redirection, count 0..9 at 500ms.
type Config struct {
	Detach   DetachConfig `yaml:"detach" mapstructure:"detach"`
	Loop     LoopConfig   `yaml:"loop" mapstructure:"loop"`
	Log      LogConfig    `yaml:"log" mapstructure:"log"`
	Progress bool         `yaml:"progress" mapstructure:"progress"` // progress bar on stderr
}

// DetachConfig holds the two detach options.
type DetachConfig struct {
	NoChdir bool `yaml:"no_chdir" mapstructure:"no_chdir"`
	NoClose bool `yaml:"no_close" mapstructure:"no_close"`
}

// LoopConfig defines the timed counter.
type LoopConfig struct {
	Iterations int           `yaml:"iterations" mapstructure:"iterations"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// LogConfig defines diagnostic logging. An empty File logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Detach: DetachConfig{
			NoChdir: true,
			NoClose: true,
		},
		Loop: LoopConfig{
			Iterations: 10,
			Interval:   500 * time.Millisecond,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
