package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. COVER_PALETTE_LOG_LEVEL.
const EnvPrefix = "COVER_PALETTE"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cover-palette", "config.yml")
}

// Load reads the config from path, COVER_PALETTE_CONFIG, or the default
// path, in that order, then applies environment overrides. A missing default
// file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("extract.target_size", 100)
	v.SetDefault("extract.stride", 5)
	v.SetDefault("extract.bucket_width", 32)
	v.SetDefault("extract.alpha_threshold", 128)
	v.SetDefault("extract.min_saturation", 0.3)
	v.SetDefault("extract.min_brightness", 0.2)
	v.SetDefault("extract.max_brightness", 0.9)
	v.SetDefault("extract.resample", "linear")
	v.SetDefault("fetch.image_host", "")
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.max_bytes", 10<<20)
	v.SetDefault("fetch.user_agent", "cover-palette")
	v.SetDefault("cache.entries", 96)
	v.SetDefault("store.path", defaultStorePath())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPrefix + "_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	path = ExpandHome(path)
	v.SetConfigFile(path)

	file := path
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		file = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.File = file
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Store.Path = ExpandHome(cfg.Store.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// YAML renders the config as YAML.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultStorePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cover-palette", "palettes.db")
}
