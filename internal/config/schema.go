package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
	"github.com/ironsheep/cover-palette-mcp/internal/source"
)

// Config is the top-level cover-palette configuration.
type Config struct {
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
	Extract  ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Fetch    FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	Cache    CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Store    StoreConfig   `mapstructure:"store" yaml:"store"`

	// File is the config file that was read, empty if none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// ExtractConfig mirrors palette.Options.
type ExtractConfig struct {
	TargetSize     int     `mapstructure:"target_size" yaml:"target_size"`
	Stride         int     `mapstructure:"stride" yaml:"stride"`
	BucketWidth    int     `mapstructure:"bucket_width" yaml:"bucket_width"`
	AlphaThreshold int     `mapstructure:"alpha_threshold" yaml:"alpha_threshold"`
	MinSaturation  float64 `mapstructure:"min_saturation" yaml:"min_saturation"`
	MinBrightness  float64 `mapstructure:"min_brightness" yaml:"min_brightness"`
	MaxBrightness  float64 `mapstructure:"max_brightness" yaml:"max_brightness"`
	Resample       string  `mapstructure:"resample" yaml:"resample"`
}

// FetchConfig holds HTTP settings for remote covers.
type FetchConfig struct {
	// ImageHost is the host whose http:// references are upgraded to https.
	ImageHost string `mapstructure:"image_host" yaml:"image_host"`
	Timeout   string `mapstructure:"timeout" yaml:"timeout"` // Go duration, e.g. "15s"
	MaxBytes  int64  `mapstructure:"max_bytes" yaml:"max_bytes"`
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// CacheConfig bounds the in-memory palette cache.
type CacheConfig struct {
	Entries int `mapstructure:"entries" yaml:"entries"`
}

// StoreConfig locates the persistent palette store. An empty path disables it.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	level := strings.ToLower(c.LogLevel)
	known := false
	for _, l := range logLevels {
		if level == l {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("log_level %q: must be one of %s", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if _, err := c.Fetch.timeout(); err != nil {
		return err
	}
	if c.Fetch.MaxBytes < 0 {
		return fmt.Errorf("fetch.max_bytes must not be negative")
	}
	if c.Cache.Entries < 0 {
		return fmt.Errorf("cache.entries must not be negative")
	}
	switch strings.ToLower(c.Extract.Resample) {
	case "", palette.ResampleNearest, palette.ResampleLinear, palette.ResampleLanczos:
	default:
		return fmt.Errorf("extract.resample %q: must be nearest, linear or lanczos", c.Extract.Resample)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// ExtractOptions returns normalized pipeline options.
func (c *Config) ExtractOptions() palette.Options {
	return palette.Options{
		TargetSize:     c.Extract.TargetSize,
		Stride:         c.Extract.Stride,
		BucketWidth:    c.Extract.BucketWidth,
		AlphaThreshold: c.Extract.AlphaThreshold,
		MinSaturation:  c.Extract.MinSaturation,
		MinBrightness:  c.Extract.MinBrightness,
		MaxBrightness:  c.Extract.MaxBrightness,
		Resample:       c.Extract.Resample,
	}.Normalize()
}

// FetchOptions returns the HTTP fetcher settings.
func (c *Config) FetchOptions() (source.FetchOptions, error) {
	timeout, err := c.Fetch.timeout()
	if err != nil {
		return source.FetchOptions{}, err
	}
	return source.FetchOptions{
		Timeout:   timeout,
		MaxBytes:  c.Fetch.MaxBytes,
		UserAgent: c.Fetch.UserAgent,
	}, nil
}

func (f FetchConfig) timeout() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("fetch.timeout %q: %w", f.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("fetch.timeout %q must not be negative", f.Timeout)
	}
	return d, nil
}
