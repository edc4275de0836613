package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/strand-systems/universal/internal/nerr"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.Errors.Default != "throw" {
		t.Errorf("Expected Errors.Default=throw, got %s", p.Errors.Default)
	}
	if p.Rounding.Mode != string(RoundNearestEven) {
		t.Errorf("Expected Rounding.Mode=nearest-even, got %s", p.Rounding.Mode)
	}
	if p.Saturation.FixedPoint {
		t.Error("Expected Saturation.FixedPoint=false")
	}
	if p.Saturation.Lns {
		t.Error("Expected Saturation.Lns=false")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("DefaultPolicy should validate cleanly: %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "numinspect.toml" {
		t.Errorf("Expected path to end with numinspect.toml, got %s", path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_policy.toml")

	p := DefaultPolicy()
	p.Errors.Default = "sentinel"
	p.Saturation.FixedPoint = true

	if err := p.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save policy: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Policy file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load policy: %v", err)
	}

	if loaded.Errors.Default != "sentinel" {
		t.Errorf("Expected Errors.Default=sentinel, got %s", loaded.Errors.Default)
	}
	if !loaded.Saturation.FixedPoint {
		t.Error("Expected Saturation.FixedPoint=true")
	}
	if loaded.ErrorPolicy() != nerr.Sentinel {
		t.Error("Expected ErrorPolicy() to report Sentinel")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	p, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}
	if p.Errors.Default != "throw" {
		t.Error("Expected default policy when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[errors]
default = 5
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestLoadRejectsUnsupportedRoundingMode(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "badround.toml")

	badTOML := `
[rounding]
mode = "round-half-up"
`
	if err := os.WriteFile(configPath, []byte(badTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("Expected error for unsupported rounding mode")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "numinspect.toml")

	p := DefaultPolicy()
	if err := p.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save policy: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Policy file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
