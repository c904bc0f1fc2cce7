// Package config loads toolkit settings from .env files and the environment,
// sets up logging, and persists viewer preferences.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ha1tch/idef0-toolkit/pkg/imageedit"
	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

// Environment variable names.
const (
	EnvAPIKey       = "API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvModel        = "IDEF0_MODEL"
	EnvAPIBase      = "IDEF0_API_BASE"
	EnvEditTimeout  = "IDEF0_EDIT_TIMEOUT"
	EnvMaxUpload    = "IDEF0_MAX_UPLOAD"
	EnvCanvasWidth  = "IDEF0_CANVAS_WIDTH"
	EnvCanvasHeight = "IDEF0_CANVAS_HEIGHT"
	EnvLogLevel     = "IDEF0_LOG_LEVEL"
	EnvLogFile      = "IDEF0_LOG_FILE"
)

// EnvFiles are loaded in order when present. Variables already set in the
// process environment are never overridden.
var EnvFiles = []string{".env.local", ".env"}

// Config holds runtime settings.
type Config struct {
	APIKey      string
	Model       string
	APIBase     string
	EditTimeout time.Duration
	MaxUpload   int64

	CanvasWidth  float64
	CanvasHeight float64

	LogLevel string
	LogFile  string
}

// Default returns the built-in settings.
func Default() Config {
	opts := layout.DefaultOptions()
	return Config{
		Model:        imageedit.DefaultModel,
		APIBase:      imageedit.DefaultBaseURL,
		MaxUpload:    imageedit.MaxUploadBytes,
		CanvasWidth:  opts.Width,
		CanvasHeight: opts.Height,
		LogLevel:     "info",
	}
}

// Load reads the .env files, if any, then the environment.
func Load() (Config, error) {
	if err := loadEnvFiles(EnvFiles...); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

func loadEnvFiles(names ...string) error {
	for _, name := range names {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.APIKey = os.Getenv(EnvAPIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvGeminiAPIKey)
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvAPIBase); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogFile = os.Getenv(EnvLogFile)

	var err error
	if v := os.Getenv(EnvEditTimeout); v != "" {
		if cfg.EditTimeout, err = time.ParseDuration(v); err != nil || cfg.EditTimeout < 0 {
			return Config{}, fmt.Errorf("invalid %s %q: want a duration like 90s", EnvEditTimeout, v)
		}
	}
	if v := os.Getenv(EnvMaxUpload); v != "" {
		if cfg.MaxUpload, err = strconv.ParseInt(v, 10, 64); err != nil || cfg.MaxUpload <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q: want a positive byte count", EnvMaxUpload, v)
		}
	}
	if cfg.CanvasWidth, err = positiveFloat(EnvCanvasWidth, cfg.CanvasWidth); err != nil {
		return Config{}, err
	}
	if cfg.CanvasHeight, err = positiveFloat(EnvCanvasHeight, cfg.CanvasHeight); err != nil {
		return Config{}, err
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
	}

	return cfg, nil
}

func positiveFloat(name string, def float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive number", name, v)
	}
	return f, nil
}

// LayoutOptions returns layout options sized to the configured canvas.
func (c Config) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.Width = c.CanvasWidth
	opts.Height = c.CanvasHeight
	return opts
}

// EditOptions returns image edit client options for this configuration.
func (c Config) EditOptions() imageedit.Options {
	return imageedit.Options{
		APIKey:  c.APIKey,
		Model:   c.Model,
		BaseURL: c.APIBase,
		Timeout: c.EditTimeout,
	}
}
