package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tiers.LowMax != 5 || cfg.Tiers.MediumMax != 15 {
		t.Errorf("tier defaults = %d/%d", cfg.Tiers.LowMax, cfg.Tiers.MediumMax)
	}
	if cfg.Parse.Workers != 4 || cfg.Parse.MaxDepth != 200 || cfg.Parse.MaxErrorNodes != 10 {
		t.Errorf("parse defaults = %+v", cfg.Parse)
	}
	if cfg.Scan.MaxFileSizeBytes != 1_000_000 {
		t.Errorf("maxFileSizeBytes = %d", cfg.Scan.MaxFileSizeBytes)
	}
	if cfg.History.TimeoutMs != 5000 {
		t.Errorf("timeoutMs = %d", cfg.History.TimeoutMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Parse.Workers != DefaultConfig().Parse.Workers {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".repolens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"parse": {"workers": 8}, "tiers": {"lowMax": 3, "mediumMax": 9}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Parse.Workers != 8 {
		t.Errorf("workers = %d, expected override 8", cfg.Parse.Workers)
	}
	if cfg.Tiers.LowMax != 3 || cfg.Tiers.MediumMax != 9 {
		t.Errorf("tiers = %+v", cfg.Tiers)
	}
	// Untouched fields keep their defaults.
	if cfg.Parse.MaxDepth != 200 {
		t.Errorf("maxDepth = %d, expected default", cfg.Parse.MaxDepth)
	}
}

func TestSaveThenLoad(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Parse.Workers = 2
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Parse.Workers != 2 {
		t.Errorf("workers = %d", loaded.Parse.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero lowMax", func(c *Config) { c.Tiers.LowMax = 0 }, true},
		{"inverted tiers", func(c *Config) { c.Tiers.MediumMax = c.Tiers.LowMax }, true},
		{"zero workers", func(c *Config) { c.Parse.Workers = 0 }, true},
		{"zero depth", func(c *Config) { c.Parse.MaxDepth = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
