package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hejijunhao/lsaccess/internal/naming"
)

// Config holds all lsaccess configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
	Watch  WatchConfig  `yaml:"watch"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig says where access logs are found.
type SourceConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"` // file name prefix of candidate logs
}

// OutputConfig says where copies and tables are written.
type OutputConfig struct {
	ArchiveDir string `yaml:"archive_dir"`
	Prefix     string `yaml:"prefix"`   // table file name prefix, before the date
	CSVMode    string `yaml:"csv_mode"` // "quoted" or "legacy"
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"` // quiet period after the last write before converting
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() Config {
	src, archive := "logs", "analyzed"
	if runtime.GOOS == "windows" {
		src = `C:\ProgramData\Parasoft\DTP\logs`
		archive = `C:\usage_logs_parasoft-analyzed`
	}
	return Config{
		Source: SourceConfig{
			Dir:    src,
			Prefix: naming.FilePrefix,
		},
		Output: OutputConfig{
			ArchiveDir: archive,
			Prefix:     naming.DefaultOutputPrefix,
			CSVMode:    "quoted",
		},
		Watch: WatchConfig{
			Debounce: 2 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("LSACCESS_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Source.Dir = getenv("LSACCESS_SOURCE_DIR", cfg.Source.Dir)
	cfg.Source.Prefix = getenv("LSACCESS_FILE_PREFIX", cfg.Source.Prefix)
	cfg.Output.ArchiveDir = getenv("LSACCESS_ARCHIVE_DIR", cfg.Output.ArchiveDir)
	cfg.Output.Prefix = getenv("LSACCESS_OUTPUT_PREFIX", cfg.Output.Prefix)
	cfg.Output.CSVMode = getenv("LSACCESS_CSV_MODE", cfg.Output.CSVMode)
	cfg.Watch.Debounce = getenvDuration("LSACCESS_WATCH_DEBOUNCE", cfg.Watch.Debounce)
	cfg.Log.Level = getenv("LSACCESS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenv("LSACCESS_LOG_FORMAT", cfg.Log.Format)

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
