package config

import (
	"testing"

	"filter-viewer/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, logger.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, DefaultJPEGQuality, cfg.JPEGQuality)
	assert.Equal(t, float32(DefaultWindowWidth), cfg.WindowWidth)
	assert.Equal(t, float32(DefaultWindowHeight), cfg.WindowHeight)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"LOG_LEVEL":     "debug",
		"LOG_FORMAT":    "JSON",
		"JPEG_QUALITY":  "80",
		"WINDOW_WIDTH":  "1280",
		"WINDOW_HEIGHT": "800",
	}))
	require.NoError(t, err)
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.Equal(t, float32(1280), cfg.WindowWidth)
	assert.Equal(t, float32(800), cfg.WindowHeight)
}

func TestInvalidValues(t *testing.T) {
	for _, env := range []map[string]string{
		{"JPEG_QUALITY": "high"},
		{"JPEG_QUALITY": "0"},
		{"JPEG_QUALITY": "101"},
		{"WINDOW_WIDTH": "wide"},
		{"WINDOW_HEIGHT": "10"},
	} {
		_, err := FromLookup(lookupFrom(env))
		assert.Error(t, err, env)
	}
}
