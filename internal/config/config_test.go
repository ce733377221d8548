package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFindsConfigUpwards(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "programs", "vault")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "format: json\nseverity_threshold: high\nlogging:\n  debug: true\n"
	if err := os.WriteFile(filepath.Join(root, ".anchorscan.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != filepath.Join(root, ".anchorscan.yaml") {
		t.Errorf("path = %q", path)
	}
	if cfg.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Format)
	}
	if cfg.SeverityThreshold != "high" {
		t.Errorf("threshold = %q, want high", cfg.SeverityThreshold)
	}
	if !cfg.Logging.Debug {
		t.Error("logging.debug not set")
	}
	// fields absent from the file keep their defaults
	if cfg.CatalogDir != "vulnerabilities" {
		t.Errorf("catalog_dir = %q, want default", cfg.CatalogDir)
	}
}

func TestLoadWithoutConfigReturnsDefaults(t *testing.T) {
	cfg, path, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ANCHORSCAN_FORMAT", "sarif")
	t.Setenv("ANCHORSCAN_FAIL_ON", "critical")

	cfg, _, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "sarif" {
		t.Errorf("format = %q, want sarif", cfg.Format)
	}
	if cfg.FailOn != "critical" {
		t.Errorf("fail_on = %q, want critical", cfg.FailOn)
	}
}
