// Package config holds marquee's configuration: a YAML file with environment
// overrides, validated once at startup. The TMDB API key is the single
// required value; its absence is a typed, terminal error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all marquee configuration.
type Config struct {
	// TMDB API access
	TMDB TMDBConfig `yaml:"tmdb"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Diagnostic file logging
	Logging LoggingConfig `yaml:"logging"`
}

// TMDBConfig configures the metadata API client.
type TMDBConfig struct {
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// UIConfig configures presentation defaults.
type UIConfig struct {
	Theme      string `yaml:"theme"`       // auto, light, dark
	PosterSize string `yaml:"poster_size"` // TMDB image size, e.g. w342
}

// LoggingConfig configures the per-category file logs. Disabled by default;
// the TUI owns the terminal, so diagnostics only ever go to files.
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir"`   // empty means <home>/.marquee/logs
	Level      string `yaml:"level"` // debug, info, warn, error
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// MissingKeyError reports the absent API credential. It is terminal: querying
// stays disabled until the program restarts with the key configured.
type MissingKeyError struct {
	EnvVar string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("TMDB API key not configured (set %s or tmdb.api_key in the config file)", e.EnvVar)
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			Language: "en-US",
			Timeout:  "15s",
		},
		UI: UIConfig{
			Theme:      "auto",
			PosterSize: "w342",
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// DefaultPath returns the standard config file location,
// <home>/.marquee/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".marquee", "config.yaml"), nil
}

// Load loads configuration from a YAML file. A missing file is not an error:
// defaults plus environment overrides are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file, creating the directory.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		c.TMDB.APIKey = key
	}
	if lang := os.Getenv("MARQUEE_LANGUAGE"); lang != "" {
		c.TMDB.Language = lang
	}
	if dir := os.Getenv("MARQUEE_LOG_DIR"); dir != "" {
		c.Logging.Dir = dir
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return &MissingKeyError{EnvVar: "TMDB_API_KEY"}
	}
	return nil
}

// GetTimeout returns the API request timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.TMDB.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// Redacted returns a copy safe for display, with the API key masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.TMDB.APIKey != "" {
		out.TMDB.APIKey = "********"
	}
	return out
}

// LogDir returns the effective log directory, resolving the default under the
// user's home when unset.
func (c *Config) LogDir() (string, error) {
	if c.Logging.Dir != "" {
		return c.Logging.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".marquee", "logs"), nil
}
