package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	Grid    GridConfig
	Search  SearchConfig
	HTTP    HTTPConfig
	Logging LoggingConfig
	Sound   bool
}

// GridConfig describes the grid created at startup.
type GridConfig struct {
	Size int
	// Seed drives endpoint placement and wall generation. Zero means time based.
	Seed         int64
	WallClusters int
	WallSteps    int
	WallDensity  float64
}

// SearchConfig tunes the pathfinder.
type SearchConfig struct {
	Workers    int
	StepBudget int
	Timeout    time.Duration
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
	// File redirects logs away from stdout. The terminal editor needs it.
	File string
}

const (
	defaultGridSize        = 16
	defaultWallDensity     = 0.25
	defaultSearchWorkers   = 1
	defaultSearchTimeout   = 5 * time.Second
	defaultHost            = "127.0.0.1"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
)

// Load reads configuration from GRIDPATH_* environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Grid: GridConfig{
			Size:         parseIntWithDefault("GRIDPATH_GRID_SIZE", defaultGridSize),
			WallClusters: parseIntWithDefault("GRIDPATH_WALL_CLUSTERS", 0),
			WallSteps:    parseIntWithDefault("GRIDPATH_WALL_STEPS", 0),
			WallDensity:  defaultWallDensity,
		},
		Search: SearchConfig{
			Workers:    parseIntWithDefault("GRIDPATH_SEARCH_WORKERS", defaultSearchWorkers),
			StepBudget: parseIntWithDefault("GRIDPATH_SEARCH_STEP_BUDGET", 0),
			Timeout:    defaultSearchTimeout,
		},
		HTTP: HTTPConfig{
			Host:            valueOrDefault("GRIDPATH_HTTP_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("GRIDPATH_LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("GRIDPATH_LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("GRIDPATH_LOG_INCLUDE_CALLER", false),
			File:          os.Getenv("GRIDPATH_LOG_FILE"),
		},
		Sound: parseBoolWithDefault("GRIDPATH_SOUND", true),
	}

	if cfg.Grid.Size < 2 {
		return Config{}, fmt.Errorf("grid size %d is below 2", cfg.Grid.Size)
	}

	if v := os.Getenv("GRIDPATH_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GRIDPATH_SEED: %w", err)
		}
		cfg.Grid.Seed = seed
	}

	if v := os.Getenv("GRIDPATH_WALL_DENSITY"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GRIDPATH_WALL_DENSITY: %w", err)
		}
		if d < 0 || d > 1 {
			return Config{}, fmt.Errorf("wall density %v is outside [0,1]", d)
		}
		cfg.Grid.WallDensity = d
	}

	port, err := parsePort("GRIDPATH_HTTP_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"GRIDPATH_SEARCH_TIMEOUT", &cfg.Search.Timeout},
		{"GRIDPATH_HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"GRIDPATH_HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"GRIDPATH_HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"GRIDPATH_HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.target = parsed
		}
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
