package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"no-chdir":   "detach.no_chdir",
	"no-close":   "detach.no_close",
	"iterations": "loop.iterations",
	"interval":   "loop.interval",
	"log-file":   "log.file",
	"progress":   "progress",
}

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration.
	// Priority: defaults → config file → environment variables → flags (flags win)
	Load() (*Config, error)
}

type loader struct {
	configFile string
	configDir  string
	flags      *pflag.FlagSet
}

// NewLoader creates a loader. configFile, when set, must exist; otherwise
// config.yml is looked up in ~/.daemonprobe and may be missing. flags may be nil.
func NewLoader(configFile string, flags *pflag.FlagSet) Loader {
	l := &loader{
		configFile: configFile,
		flags:      flags,
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.configDir = filepath.Join(home, ".daemonprobe")
	}
	return l
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		if l.configDir != "" {
			v.AddConfigPath(l.configDir)
		}
	}

	// Environment variable support (e.g., DAEMONPROBE_LOOP_ITERATIONS)
	v.SetEnvPrefix("DAEMONPROBE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars(v)
	setDefaults(v)

	if err := l.bindFlags(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// Only the implicit file may be absent.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (l *loader) bindFlags(v *viper.Viper) error {
	if l.flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := l.flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// bindEnvVars binds all environment variables for the config.
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("detach.no_chdir")
	v.BindEnv("detach.no_close")

	v.BindEnv("loop.iterations")
	v.BindEnv("loop.interval")

	v.BindEnv("log.level")
	v.BindEnv("log.file")
	v.BindEnv("log.max_size_mb")
	v.BindEnv("log.max_backups")
	v.BindEnv("log.max_age_days")
	v.BindEnv("log.compress")

	v.BindEnv("progress")
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("detach.no_chdir", defaults.Detach.NoChdir)
	v.SetDefault("detach.no_close", defaults.Detach.NoClose)

	v.SetDefault("loop.iterations", defaults.Loop.Iterations)
	v.SetDefault("loop.interval", defaults.Loop.Interval)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)
	v.SetDefault("log.compress", defaults.Log.Compress)

	v.SetDefault("progress", defaults.Progress)
}
