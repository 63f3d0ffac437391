package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// configFileName is the TOML configuration file treeline looks for.
const configFileName = "treeline.toml"

// defaultCacheTTL bounds how long cached render results stay valid.
const defaultCacheTTL = 24 * time.Hour

// fileConfig holds defaults read from treeline.toml. Command-line flags win
// over file values whenever a flag is set explicitly.
type fileConfig struct {
	// Relations is the default relation allow-list (first entry primary).
	Relations []string `toml:"relations"`
	// Color enables level-keyed label colorization by default.
	Color bool `toml:"color"`
	// Format is the default render format: text, dot, or svg.
	Format string `toml:"format"`
	// CacheTTL is a duration string bounding cached result lifetime.
	CacheTTL string `toml:"cache_ttl"`
}

// loadConfig reads the config file at path, or searches the working
// directory and the XDG config directory when path is empty. A missing file
// is not an error; the zero config applies.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// findConfig returns the first existing config file path, or empty.
func findConfig() string {
	candidates := []string{configFileName}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, appName, configFileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", appName, configFileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// cacheTTL parses the configured TTL, falling back to the default on empty
// or malformed values.
func (c fileConfig) cacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return defaultCacheTTL
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return defaultCacheTTL
	}
	return d
}
