package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	User      string `yaml:"user"`
	CacheTTL  string `yaml:"cache_ttl"`
	PageSize  int    `yaml:"page_size"`
	Debounce  string `yaml:"debounce"`
	TopicsCap int    `yaml:"topics_cap"`
	APIBase   string `yaml:"api_base"`
}

func (c *Config) TTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

func (c *Config) DebounceDelay() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 180 * time.Millisecond
	}
	return d
}

// GetPageSize returns the page size clamped to the API maximum of 100. An
// unset (zero) value means the maximum.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 || c.PageSize > 100 {
		return 100
	}
	return c.PageSize
}

// GetTopicsCap returns the topics display cap, defaulting to 6.
func (c *Config) GetTopicsCap() int {
	if c.TopicsCap <= 0 {
		return 6
	}
	return c.TopicsCap
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "suhail", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "suhail", "suhail.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "suhail", "suhail.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	// 0 means "unset"; GetPageSize substitutes the API maximum.
	if cfg.PageSize < 0 || cfg.PageSize > 100 {
		return fmt.Errorf("page_size must be between 0 and 100, got %d", cfg.PageSize)
	}
	if cfg.CacheTTL != "" {
		if _, err := time.ParseDuration(cfg.CacheTTL); err != nil {
			return fmt.Errorf("invalid cache_ttl: %w", err)
		}
	}
	if cfg.Debounce != "" {
		if _, err := time.ParseDuration(cfg.Debounce); err != nil {
			return fmt.Errorf("invalid debounce: %w", err)
		}
	}
	if cfg.APIBase != "" {
		u, err := url.Parse(cfg.APIBase)
		if err != nil {
			return fmt.Errorf("invalid api_base: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api_base scheme must be http or https, got %q", u.Scheme)
		}
	}
	return nil
}
