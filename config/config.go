// Package config loads application settings from an optional YAML file,
// with environment variable overrides and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Analysis configures the diagram analysis client.
type Analysis struct {
	// BaseURL overrides the API endpoint, e.g. for a local model server.
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the API key. The key
	// itself never lives in the config file.
	APIKeyEnv string `yaml:"apiKeyEnv"`
}

// Config holds every tunable the application reads.
type Config struct {
	// DocumentPath is where the document is persisted.
	DocumentPath string `yaml:"documentPath"`

	// AutosaveDelayMS is the debounce window for autosave, in milliseconds.
	AutosaveDelayMS int `yaml:"autosaveDelayMs"`

	LogLevel string   `yaml:"logLevel"`
	Analysis Analysis `yaml:"analysis"`
}

// Delay returns the autosave debounce window as a duration.
func (c Config) Delay() time.Duration {
	return time.Duration(c.AutosaveDelayMS) * time.Millisecond
}

// APIKey resolves the analysis API key from the environment.
func (c Config) APIKey() string {
	return os.Getenv(c.Analysis.APIKeyEnv)
}

// Default returns the built-in settings used when no file or environment
// overrides are present.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DocumentPath:    filepath.Join(home, ".sld", "document.json"),
		AutosaveDelayMS: 2000,
		LogLevel:        "info",
		Analysis: Analysis{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "SLD_API_KEY",
		},
	}
}

// Load reads path if it exists, layering its values over the defaults and
// then applying environment overrides. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DocumentPath = getenv("SLD_DOCUMENT", cfg.DocumentPath)
	cfg.LogLevel = getenv("SLD_LOG_LEVEL", cfg.LogLevel)
	cfg.Analysis.BaseURL = getenv("SLD_ANALYSIS_URL", cfg.Analysis.BaseURL)
	cfg.Analysis.Model = getenv("SLD_ANALYSIS_MODEL", cfg.Analysis.Model)
	if v := os.Getenv("SLD_AUTOSAVE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.AutosaveDelayMS = ms
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
