package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ShipPack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.AnnealSettings.Alpha = 0.8
	cfg.AnnealSettings.Seed = 42
	cfg.WritePDF = true
	cfg.OutputDir = "/tmp/runs"
	cfg.RecentRuns = []string{"/tmp/runs/a.json", "/tmp/runs/b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.AnnealSettings.Alpha != 0.8 {
		t.Errorf("expected Alpha=0.8, got %f", loaded.AnnealSettings.Alpha)
	}
	if loaded.AnnealSettings.Seed != 42 {
		t.Errorf("expected Seed=42, got %d", loaded.AnnealSettings.Seed)
	}
	if !loaded.WritePDF {
		t.Error("expected WritePDF to be true")
	}
	if loaded.OutputDir != "/tmp/runs" {
		t.Errorf("expected OutputDir=/tmp/runs, got %s", loaded.OutputDir)
	}
	if len(loaded.RecentRuns) != 2 {
		t.Errorf("expected 2 recent runs, got %d", len(loaded.RecentRuns))
	}
	if len(loaded.Catalog.Types) != 2 {
		t.Errorf("expected catalog with 2 types, got %d", len(loaded.Catalog.Types))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.AnnealSettings != defaults.AnnealSettings {
		t.Errorf("expected default schedule %+v, got %+v", defaults.AnnealSettings, cfg.AnnealSettings)
	}
	if cfg.MaxRecentRun != 10 {
		t.Errorf("expected MaxRecentRun=10, got %d", cfg.MaxRecentRun)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"write_dxf":true,"recent_runs":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentRuns == nil {
		t.Error("RecentRuns should not be nil after loading")
	}
	if !cfg.WriteDXF {
		t.Error("expected WriteDXF from file")
	}
	if cfg.AnnealSettings.StepsPerTemperature != model.DefaultAnnealSettings().StepsPerTemperature {
		t.Error("fields missing from the file should keep their defaults")
	}
}

func TestLoadAppConfigRejectsInvalidSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"anneal_settings":{"alpha":1.5}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for alpha outside (0, 1)")
	}
	if !strings.Contains(err.Error(), "alpha") {
		t.Errorf("error should name the bad field, got: %v", err)
	}
}

func TestLoadAppConfigRejectsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"catalog":{"types":[]}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for a catalog without package types")
	}
}

func TestSaveAppConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Catalog.Types = append(cfg.Catalog.Types, model.PackageType{Name: "flat", Width: 0, Height: 100})

	if err := SaveAppConfig(path, cfg); err == nil {
		t.Fatal("expected error for a package type with zero width")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config must not be written")
	}
}
