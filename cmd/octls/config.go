package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectConfig is the optional octls.toml discovered upward from the
// working directory.
type projectConfig struct {
	Server serverConfig `toml:"server"`
	Check  checkConfig  `toml:"check"`
}

type serverConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type checkConfig struct {
	Cache *bool `toml:"cache"`
}

func findOctlsToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "octls.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectConfig returns the parsed config, or zero values when no
// octls.toml exists.
func loadProjectConfig(startDir string) (projectConfig, error) {
	path, ok, err := findOctlsToml(startDir)
	if err != nil || !ok {
		return projectConfig{}, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// cacheEnabled defaults to true unless the config disables it.
func (c checkConfig) cacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}
