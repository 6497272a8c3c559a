package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvCacheDir, EnvCacheBackend, EnvThreshold, EnvPDFRoot} {
		t.Setenv(k, "")
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := Path(), "/custom/config/citegraph/config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := Path(), filepath.Join(home, ".config", "citegraph", "config.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	content := "cache_backend: sqlite\nthreshold: 85.5\nlabel_width: 40\nyear_ranks: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CacheBackend != "sqlite" || cfg.Threshold != 85.5 || cfg.LabelWidth != 40 || !cfg.YearRanks {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.PragmaPrefix != "#pragma" || cfg.CacheDir != ".txt" {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("threshold: 80\ncache_dir: fromfile\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvThreshold, "95")
	t.Setenv(EnvCacheDir, "fromenv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Threshold != 95 || cfg.CacheDir != "fromenv" {
		t.Errorf("Load() = %+v, want env values", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("threshold: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() with malformed YAML error = nil")
	}

	t.Setenv(EnvThreshold, "high")
	if _, err := Load(filepath.Join(dir, "missing.yml")); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	notDir := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(notDir, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.CacheBackend = "redis" }},
		{"threshold above 100", func(c *Config) { c.Threshold = 101 }},
		{"negative threshold", func(c *Config) { c.Threshold = -1 }},
		{"empty prefix", func(c *Config) { c.PragmaPrefix = "" }},
		{"zero label width", func(c *Config) { c.LabelWidth = 0 }},
		{"empty cache dir", func(c *Config) { c.CacheDir = "" }},
		{"unknown reader", func(c *Config) { c.PDFReader = "acrobat" }},
		{"missing pdf root", func(c *Config) { c.PDFRoot = "/does/not/exist" }},
		{"pdf root is a file", func(c *Config) { c.PDFRoot = notDir }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/papers", filepath.Join(home, "papers")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
