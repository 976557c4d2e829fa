// Package config holds the console's own settings: where the backend
// lives, where session state is kept, and how the console logs.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gdwatch/console/internal/domain"
)

// Config represents the complete console settings
type Config struct {
	// BackendURL is the watcher API root, e.g. http://127.0.0.1:8448/api
	BackendURL string `mapstructure:"backend_url"`

	// RequestTimeout bounds each backend call
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// StateDir holds the session database and console logs
	StateDir string `mapstructure:"state_dir"`

	// Locale is the default display locale; the session store remembers
	// the last selection on top of this
	Locale string `mapstructure:"locale"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures the console's own logging
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	FileEnabled bool   `mapstructure:"file_enabled"`
	MaxSizeMB   int    `mapstructure:"max_size_mb"`
	MaxAgeDays  int    `mapstructure:"max_age_days"`
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("%w: backend_url cannot be empty", domain.ErrConfigInvalid)
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: backend_url %q is not a valid URL", domain.ErrConfigInvalid, c.BackendURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", domain.ErrConfigInvalid)
	}

	if c.StateDir == "" {
		return fmt.Errorf("%w: state_dir cannot be empty", domain.ErrConfigInvalid)
	}

	return nil
}

// LogFilePath returns the console log file location under the state dir
func (c *Config) LogFilePath() string {
	return filepath.Join(c.StateDir, "logs", "console.log")
}

// DefaultStateDir returns the per-user state directory
func DefaultStateDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "gdwconsole")
	}
	return ".gdwconsole"
}
