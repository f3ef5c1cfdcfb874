// Package config reads the server's settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultMaxRequestBytes is the request line limit when none is configured.
const DefaultMaxRequestBytes = 32 * 1024 * 1024

// Config holds the server settings.
type Config struct {
	LogLevel        string  // "debug" enables request logging
	MaxRequestBytes int     // largest accepted JSON-RPC line
	ShowLabels      bool    // default for annotation_render
	RenderScale     float64 // default output scale for annotation_render
}

// Load reads the IMAGE_ANNOTATOR_* environment variables, falling back to
// defaults for unset or unparsable values.
func Load() *Config {
	return &Config{
		LogLevel:        strings.ToLower(getEnv("IMAGE_ANNOTATOR_LOG_LEVEL", "info")),
		MaxRequestBytes: getEnvAsInt("IMAGE_ANNOTATOR_MAX_REQUEST_BYTES", DefaultMaxRequestBytes),
		ShowLabels:      getEnvAsBool("IMAGE_ANNOTATOR_SHOW_LABELS", true),
		RenderScale:     getEnvAsFloat("IMAGE_ANNOTATOR_RENDER_SCALE", 1),
	}
}

// Debug reports whether debug logging is on.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}
