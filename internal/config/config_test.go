package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ironsheep/cover-palette-mcp/internal/config"
	"github.com/ironsheep/cover-palette-mcp/internal/palette"
)

// isolate points HOME at a temp dir and clears config overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("COVER_PALETTE_CONFIG", "")
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty", cfg.File)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if got := cfg.ExtractOptions(); got != palette.DefaultOptions() {
		t.Errorf("ExtractOptions = %+v, want defaults", got)
	}
	if cfg.Cache.Entries != 96 {
		t.Errorf("Cache.Entries = %d, want 96", cfg.Cache.Entries)
	}
	want := filepath.Join(home, ".local", "share", "cover-palette", "palettes.db")
	if cfg.Store.Path != want {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, want)
	}

	fo, err := cfg.FetchOptions()
	if err != nil {
		t.Fatalf("FetchOptions failed: %v", err)
	}
	if fo.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", fo.Timeout)
	}
	if fo.MaxBytes != 10<<20 {
		t.Errorf("MaxBytes = %d, want %d", fo.MaxBytes, 10<<20)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
log_level: debug
extract:
  stride: 2
  resample: lanczos
fetch:
  image_host: covers.example.com
  timeout: 3s
store:
  path: ""
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
	if !cfg.Debug() {
		t.Error("Debug() = false, want true")
	}
	opts := cfg.ExtractOptions()
	if opts.Stride != 2 || opts.Resample != palette.ResampleLanczos {
		t.Errorf("ExtractOptions = %+v", opts)
	}
	if opts.TargetSize != 100 {
		t.Errorf("TargetSize = %d, want default 100", opts.TargetSize)
	}
	if cfg.Fetch.ImageHost != "covers.example.com" {
		t.Errorf("ImageHost = %q", cfg.Fetch.ImageHost)
	}
	if cfg.Store.Path != "" {
		t.Errorf("Store.Path = %q, want empty", cfg.Store.Path)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("COVER_PALETTE_LOG_LEVEL", "DEBUG")
	t.Setenv("COVER_PALETTE_CACHE_ENTRIES", "7")
	t.Setenv("COVER_PALETTE_EXTRACT_BUCKET_WIDTH", "16")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Cache.Entries != 7 {
		t.Errorf("Cache.Entries = %d, want 7", cfg.Cache.Entries)
	}
	if cfg.ExtractOptions().BucketWidth != 16 {
		t.Errorf("BucketWidth = %d, want 16", cfg.ExtractOptions().BucketWidth)
	}
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "cache:\n  entries: 3\n")
	t.Setenv("COVER_PALETTE_CONFIG", path)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Cache.Entries != 3 {
		t.Errorf("Cache.Entries = %d, want 3", cfg.Cache.Entries)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad log level", "log_level: loud\n"},
		{"bad timeout", "fetch:\n  timeout: soon\n"},
		{"bad resample", "extract:\n  resample: box\n"},
		{"negative cache", "cache:\n  entries: -1\n"},
		{"malformed yaml", "extract: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, err := config.Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("Load of missing explicit file succeeded, want error")
	}
}

func TestConfig_YAML(t *testing.T) {
	isolate(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	for _, want := range []string{"log_level: info", "bucket_width: 32", "timeout: 15s", "entries: 96"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)
	if got := config.ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := config.ExpandHome("/abs/y.db"); got != "/abs/y.db" {
		t.Errorf("ExpandHome changed absolute path: %q", got)
	}
}
