package config

import (
	"fmt"
	"sync/atomic"
)

// current is the configuration the running command works with.
var current atomic.Pointer[Config]

// Current returns the installed configuration, or nil before Install.
func Current() *Config {
	return current.Load()
}

// Install makes cfg the current configuration.
func Install(cfg *Config) {
	current.Store(cfg)
}

// Reload loads path with environment overrides ("" means defaults) and
// installs the result. On error the current configuration is kept.
func Reload(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}
	Install(cfg)
	return cfg, nil
}
