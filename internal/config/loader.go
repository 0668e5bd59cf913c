package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when ENJAZ_CONFIG is unset and the file exists.
const DefaultPath = "./enjaz.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An explicit ENJAZ_CONFIG must point to an existing file; a missing default
// file means ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("ENJAZ_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
