// Package config loads paper-catalog settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/paper-catalog/internal/model"
)

// Config holds all paper-catalog settings.
type Config struct {
	// Data is the papers data document: a file path or an http(s) URL.
	Data string `yaml:"data"`

	// DB is an optional SQLite catalog index built by `import`.
	DB string `yaml:"db"`

	DefaultSort string `yaml:"default_sort"`

	// Watch reloads Data when the file changes (serve only).
	Watch bool `yaml:"watch"`

	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	StaticDir   string   `yaml:"static_dir"` // serves past_papers/ and specimen_papers/
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Data:        "papers_data.json",
		DefaultSort: string(model.SortByYear),
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $PAPER_CATALOG_CONFIG or ~/.paper-catalog/config.yaml.
func DefaultPath() string {
	if env := os.Getenv("PAPER_CATALOG_CONFIG"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paper-catalog", "config.yaml")
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := model.ParseSortMode(c.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PAPER_CATALOG_DATA"); v != "" {
		c.Data = v
	}
	if v := os.Getenv("PAPER_CATALOG_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("PAPER_CATALOG_ADDR"); v != "" {
		c.Server.Addr = v
	} else if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("PAPER_CATALOG_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
