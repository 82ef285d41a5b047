// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"go.ngs.io/seaice-tsi/internal/adapter/archive"
)

// Config holds the archive location and server settings.
type Config struct {
	Root               string
	LatPath            string
	LonPath            string
	MaxSearchDays      int
	Port               string
	LogLevel           string
	CORSAllowedOrigins []string // Empty means all origins.
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	root := getEnv("AMSR_ROOT", "./data/amsr")
	cfg := Config{
		Root:     root,
		LatPath:  getEnv("AMSR_LAT_PATH", filepath.Join(root, "amsr_25km_lat.npy")),
		LonPath:  getEnv("AMSR_LON_PATH", filepath.Join(root, "amsr_25km_lon.npy")),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	days, err := strconv.Atoi(getEnv("AMSR_MAX_SEARCH_DAYS", strconv.Itoa(archive.DefaultMaxSearchDays)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid AMSR_MAX_SEARCH_DAYS: %w", err)
	}
	if days < 1 {
		return Config{}, fmt.Errorf("AMSR_MAX_SEARCH_DAYS must be positive, got %d", days)
	}
	cfg.MaxSearchDays = days

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}
	return cfg, nil
}

// Archive returns the archive configuration, logging through logger.
func (c Config) Archive(logger zerolog.Logger) archive.Config {
	ac := archive.DefaultConfig(c.Root)
	ac.MaxSearchDays = c.MaxSearchDays
	ac.Logger = logger
	return ac
}

// NewLogger builds a logger at the named level. Console output is human
// readable; otherwise lines are JSON.
func NewLogger(level string, w io.Writer, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
