package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/sganbold/tentlabel/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Solver.Mode != "accurate" {
		t.Errorf("default mode = %q, want accurate", cfg.Solver.Mode)
	}
	if cfg.Solver.Attempts != 100 {
		t.Errorf("default attempts = %d, want 100", cfg.Solver.Attempts)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("default cache backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default server addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Error("Load of missing file should return defaults")
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[solver]
mode = "fast"
seed = 42

[server]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Solver.Mode != "fast" {
		t.Errorf("mode = %q, want fast", cfg.Solver.Mode)
	}
	if cfg.Solver.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Solver.Seed)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	// Untouched sections keep their defaults
	if cfg.Solver.Attempts != 100 {
		t.Errorf("attempts = %d, want default 100", cfg.Solver.Attempts)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("cache backend = %q, want default file", cfg.Cache.Backend)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("solver = [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load of malformed TOML should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidConfig)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"fast mode", func(c *Config) { c.Solver.Mode = "fast" }, true},
		{"redis with addr", func(c *Config) { c.Cache.Backend = "redis"; c.Cache.Addr = "localhost:6379" }, true},
		{"no cache", func(c *Config) { c.Cache.Backend = "none" }, true},
		{"zero multiplier", func(c *Config) { c.Solver.MaxKMultiplier = 0 }, false},
		{"negative multiplier", func(c *Config) { c.Solver.MaxKMultiplier = -2 }, false},
		{"zero attempts", func(c *Config) { c.Solver.Attempts = 0 }, false},
		{"unknown mode", func(c *Config) { c.Solver.Mode = "turbo" }, false},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("Validate() should fail")
				}
				if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
					t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidConfig)
				}
			}
		})
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	want := filepath.Join("/tmp/xdg", "tentlabel", "config.toml")
	if path != want {
		t.Errorf("DefaultPath = %q, want %q", path, want)
	}
}
