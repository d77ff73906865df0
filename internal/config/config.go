// Package config reads runtime settings from the environment.
//
// An optional .env file in the working directory is loaded first; values
// already present in the environment win. Nothing is ever written back.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"filter-viewer/internal/logger"

	"github.com/joho/godotenv"
)

const (
	DefaultJPEGQuality  = 95
	DefaultWindowWidth  = 1000
	DefaultWindowHeight = 720
)

type Config struct {
	LogLevel     logger.LogLevel
	LogJSON      bool
	JPEGQuality  int
	WindowWidth  float32
	WindowHeight float32
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		LogLevel:     logger.InfoLevel,
		JPEGQuality:  DefaultJPEGQuality,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
	}

	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = logger.ParseLevel(v)
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		cfg.LogJSON = strings.EqualFold(strings.TrimSpace(v), "json")
	}

	if v, ok := lookup("JPEG_QUALITY"); ok {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("JPEG_QUALITY: %w", err)
		}
		if q < 1 || q > 100 {
			return nil, fmt.Errorf("JPEG_QUALITY must be within 1..100, got %d", q)
		}
		cfg.JPEGQuality = q
	}

	var err error
	if cfg.WindowWidth, err = parseDimension(lookup, "WINDOW_WIDTH", cfg.WindowWidth); err != nil {
		return nil, err
	}
	if cfg.WindowHeight, err = parseDimension(lookup, "WINDOW_HEIGHT", cfg.WindowHeight); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDimension(lookup func(string) (string, bool), key string, fallback float32) (float32, error) {
	v, ok := lookup(key)
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if f < 200 {
		return 0, fmt.Errorf("%s must be at least 200, got %v", key, f)
	}
	return float32(f), nil
}

// NewLogger builds the process logger described by the config.
func (c *Config) NewLogger() logger.Logger {
	if c.LogJSON {
		return logger.NewJSONLogger(c.LogLevel)
	}
	return logger.NewConsoleLogger(c.LogLevel)
}
