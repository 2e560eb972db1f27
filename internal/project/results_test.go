package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShipPack/internal/model"
)

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "result.json")

	result := model.PackResult{
		RunID: "run-1",
		Packages: []model.PackageResult{{
			Package: model.Package{ID: 1, Type: "package_type2", Width: 800, Height: 600},
			Boxes: []model.Box{
				{Index: 1, Width: 400, Height: 600, PackageID: 1, X: 200, Y: 300},
				{Index: 2, Width: 400, Height: 600, Rotated: true, PackageID: 1, X: 600, Y: 300},
			},
		}},
		Area:     480000,
		Settings: model.DefaultAnnealSettings(),
	}

	if err := SaveResult(path, "boxes.csv", model.DefaultCatalog(), result); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	file, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}

	if file.Version != ResultFileVersion {
		t.Errorf("expected version %s, got %s", ResultFileVersion, file.Version)
	}
	if file.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if file.Source != "boxes.csv" {
		t.Errorf("expected source boxes.csv, got %s", file.Source)
	}
	if len(file.Catalog.Types) != 2 {
		t.Errorf("expected 2 catalog types, got %d", len(file.Catalog.Types))
	}
	if file.Result.RunID != "run-1" || file.Result.BoxCount() != 2 {
		t.Errorf("result not preserved: %+v", file.Result)
	}
	if !file.Result.Packages[0].Boxes[1].Rotated {
		t.Error("expected rotation flag to survive")
	}
}

func TestLoadResultMissingFile(t *testing.T) {
	_, err := LoadResult(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadResultInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadResult(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadResultMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"result":{"area":0}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadResult(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}
