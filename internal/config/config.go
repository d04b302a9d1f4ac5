package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides: REM_YEARS_FIRST sets years.first.
const EnvPrefix = "REM_"

type Config struct {
	File        string    `koanf:"file"`
	ConfirmExit bool      `koanf:"confirm_exit"`
	Years       YearRange `koanf:"years"`
	Log         LogConfig `koanf:"log"`
}

type YearRange struct {
	First int `koanf:"first"`
	Last  int `koanf:"last"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// Load layers defaults, the YAML file at configPath (skipped when absent)
// and REM_* environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = expandPath(cfg.File)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps REM_YEARS_FIRST to years.first and REM_CONFIRM_EXIT to
// confirm_exit. Only the first underscore after a section name nests.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"years_", "log_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Years.First < 1 {
		return fmt.Errorf("config: years.first must be positive, got %d", c.Years.First)
	}
	if c.Years.First > c.Years.Last {
		return fmt.Errorf("config: years.first (%d) is after years.last (%d)", c.Years.First, c.Years.Last)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// DefaultPath returns config.yaml inside the data directory.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
