package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/relic/timeline"
)

// Config holds file-based defaults. Command-line flags take precedence.
type Config struct {
	DB      string        `toml:"db"`
	Restore RestoreConfig `toml:"restore"`
	Dedupe  DedupeConfig  `toml:"dedupe"`
}

// RestoreConfig holds defaults for the restore command.
type RestoreConfig struct {
	Output      string `toml:"output"`
	UsersFile   string `toml:"users_file"`
	Concurrency int    `toml:"concurrency"`
	Neighbors   string `toml:"neighbors"` // "offset" or "adjacent"
}

// DedupeConfig holds defaults for the dedupe command.
type DedupeConfig struct {
	Prefix string `toml:"prefix"`
}

// LoadConfig reads a TOML config file. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if cfg.Restore.Concurrency < 0 {
		return nil, fmt.Errorf("restore.concurrency must not be negative in %s", path)
	}
	if _, err := timeline.ParseNeighborPolicy(cfg.Restore.Neighbors); err != nil {
		return nil, fmt.Errorf("restore.neighbors in %s: %w", path, err)
	}

	// Relative paths are relative to the config file.
	dir := filepath.Dir(path)
	cfg.DB = resolvePath(dir, cfg.DB)
	cfg.Restore.Output = resolvePath(dir, cfg.Restore.Output)
	cfg.Restore.UsersFile = resolvePath(dir, cfg.Restore.UsersFile)

	return &cfg, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || p == ":memory:" {
		return p
	}
	return filepath.Join(dir, p)
}
