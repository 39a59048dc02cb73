package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the per-project directory holding config.yaml and history.db
const DirName = ".wordexpand"

// HomeEnv overrides the directory returned by GetHome
const HomeEnv = "WORDEXPAND_HOME"

// GetHome returns the wordexpand home directory
// Priority order:
//  1. WORDEXPAND_HOME environment variable (if set)
//  2. .wordexpand in the current working directory
//
// The directory is not created; callers that write into it create it on demand.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, DirName), nil
}

// Load reads config.yaml from the home directory, falling back to defaults.
// A relative history.db_path is resolved against the home directory.
func Load() (*Config, error) {
	home, err := GetHome()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, err
	}

	cfg.ResolvePaths(home)
	return cfg, nil
}

// ResolvePaths makes a relative history.db_path absolute against base.
func (c *Config) ResolvePaths(base string) {
	if c.History.DBPath != "" && !filepath.IsAbs(c.History.DBPath) {
		c.History.DBPath = filepath.Join(base, c.History.DBPath)
	}
}
