// Package config resolves planner settings from defaults, an optional YAML
// file, an optional .env file and PLANNER_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// APIConfig controls the remote API client.
type APIConfig struct {
	URL         string `yaml:"url"`
	Retries     int    `yaml:"retries"`
	RetryBaseMs int    `yaml:"retry_base_ms"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	LogCalls    bool   `yaml:"log_calls"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// ServerConfig controls the development API server.
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API: APIConfig{
			URL:         "http://localhost:9010/api",
			Retries:     3,
			RetryBaseMs: 1000,
			TimeoutMs:   10000,
		},
		Log:    LogConfig{Level: "warn"},
		Server: ServerConfig{Addr: ":9010"},
	}
}

// SearchPaths lists the config files tried in order; the first one that
// exists wins.
func SearchPaths() []string {
	paths := []string{"planner.yaml", "planner.yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "planner", "config.yaml"))
	}
	return paths
}

// Load reads .env from the working directory (without overriding variables
// already set), then resolves the configuration from SearchPaths and the
// environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}
	return LoadFrom(SearchPaths(), os.Getenv)
}

// LoadFrom resolves the configuration from the first existing file in paths
// and from getenv.
func LoadFrom(paths []string, getenv func(string) string) (Config, error) {
	cfg := Default()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		break
	}

	if v := getenv("PLANNER_API_URL"); v != "" {
		cfg.API.URL = v
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{
		{"PLANNER_RETRIES", &cfg.API.Retries},
		{"PLANNER_RETRY_BASE_MS", &cfg.API.RetryBaseMs},
		{"PLANNER_TIMEOUT_MS", &cfg.API.TimeoutMs},
	} {
		v := getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %q is not a number", e.name, v)
		}
		*e.dst = n
	}
	if v := getenv("PLANNER_LOG_CALLS"); v != "" {
		cfg.API.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := getenv("PLANNER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("PLANNER_SERVE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("PLANNER_DB"); v != "" {
		cfg.Server.DBPath = v
	}

	if err := cfg.API.validate(); err != nil {
		return Config{}, err
	}
	if cfg.Server.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.Server.DBPath = filepath.Join(home, ".planner", "dev.db")
	}
	return cfg, nil
}

// validate checks the API settings after every source has been applied, so
// a file and the environment are held to the same limits.
func (c APIConfig) validate() error {
	switch {
	case c.Retries < 1:
		return fmt.Errorf("api.retries must be at least 1, got %d", c.Retries)
	case c.RetryBaseMs < 0:
		return fmt.Errorf("api.retry_base_ms must not be negative, got %d", c.RetryBaseMs)
	case c.TimeoutMs <= 0:
		return fmt.Errorf("api.timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	return nil
}

func (c APIConfig) RetryBase() time.Duration {
	return time.Duration(c.RetryBaseMs) * time.Millisecond
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SlogLevel maps the configured level name; unknown names mean warn.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
