package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gdwatch/console/internal/domain"
)

// DefaultConfigPaths returns the default paths to search for the
// console settings file
func DefaultConfigPaths() []string {
	paths := []string{
		".",
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "gdwconsole"))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "gdwconsole"))
		paths = append(paths, filepath.Join(homeDir, ".gdwconsole"))
	}

	return paths
}

// Load reads and parses the console settings.
// If path is empty, searches default locations for console.yaml; a
// missing file yields pure defaults rather than an error, since the
// console works against a local backend out of the box.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GDWCONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, domain.ErrConfigNotFound
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
		}
	} else {
		v.SetConfigName("console")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", "http://127.0.0.1:8448/api")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("state_dir", DefaultStateDir())
	v.SetDefault("locale", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_enabled", false)
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_age_days", 7)
}
