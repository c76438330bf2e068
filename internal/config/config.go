// Package config loads the scoringd configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml configs can say "30m" or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Redis configures the optional cache backend. An empty Addr selects the
// in-memory store.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Config is the scoringd configuration, loaded from scoringd.yaml.
type Config struct {
	Listen    string   `yaml:"listen"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"` // "text" or "json"
	CacheTTL  Duration `yaml:"cache_ttl"`
	Redis     Redis    `yaml:"redis"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:    ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		CacheTTL:  Duration(time.Hour),
		Redis: Redis{
			Prefix: "scoring:",
		},
	}
}

// Load reads a configuration file, filling unset keys with defaults.
// A missing file at the default path is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return cfg, fmt.Errorf("log_format must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}
	if cfg.CacheTTL < 0 {
		return cfg, fmt.Errorf("cache_ttl must not be negative")
	}
	return cfg, nil
}
