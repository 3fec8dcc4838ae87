package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
)

// Load reads the YAML file at path over DefaultConfig, applies BLOG_* environment
// overrides and validates the result. A blank or missing path skips the file.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv behaves like Load but reads overrides from environ instead of the process
// environment when environ is non-nil.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := DefaultConfig()

	if err := readYAML(&cfg, path); err != nil {
		return cfg, err
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("blog config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readYAML(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied config path
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("blog config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("blog config: parse %s: %w", path, err)
	}
	return nil
}
