package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace directory holding config and logs.
const DirName = ".teamforge"

// Config holds all teamforge configuration.
type Config struct {
	// API is the recommendation service the client talks to
	API APIConfig `yaml:"api"`

	// Catalog browsing settings
	Catalog CatalogConfig `yaml:"catalog"`

	// UI settings
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the HTTP gateway.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// CatalogConfig configures the catalog browsers.
type CatalogConfig struct {
	PageSize int `yaml:"page_size"`

	// AbilityKinds populates the filter picker of the ability catalog.
	AbilityKinds []string `yaml:"ability_kinds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:5000/api",
			Timeout:   "15s",
			UserAgent: "teamforge",
		},
		Catalog: CatalogConfig{
			PageSize:     20,
			AbilityKinds: []string{"主动", "被动", "指挥", "突击", "兵种", "阵法"},
		},
		UI: *DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// DefaultPath returns the workspace config path if it exists, otherwise the
// one in the user's home directory.
func DefaultPath() string {
	local := filepath.Join(DirName, "config.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return local
	}
	return filepath.Join(home, DirName, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
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
	if v := os.Getenv("TEAMFORGE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("TEAMFORGE_API_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("TEAMFORGE_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("TEAMFORGE_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
	if v := os.Getenv("TEAMFORGE_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
}

// GetAPITimeout returns the API timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// GetPageSize returns the catalog page size, falling back to 20.
func (c *Config) GetPageSize() int {
	if c.Catalog.PageSize < 1 {
		return 20
	}
	return c.Catalog.PageSize
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url not configured (set TEAMFORGE_API_URL)")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base_url: %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported api scheme: %s", u.Scheme)
	}

	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("invalid api timeout %q: %w", c.API.Timeout, err)
		}
	}

	if c.Catalog.PageSize < 0 {
		return fmt.Errorf("catalog page_size must not be negative: %d", c.Catalog.PageSize)
	}

	if c.Logging.Level != "" {
		valid := false
		for _, l := range ValidLogLevels {
			if c.Logging.Level == l {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
		}
	}

	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid theme: %s (valid: auto, light, dark)", c.UI.Theme)
	}

	return nil
}
