package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ShipPack/internal/model"
)

func TestExportDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	result := buildTestResult()

	if err := ExportDXF(path, result); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read DXF: %v", err)
	}
	content := string(data)

	for _, layer := range []string{LayerPackages, LayerBoxes, LayerBoxesRotated, LayerLabels} {
		if !strings.Contains(content, layer) {
			t.Errorf("expected layer %q in output", layer)
		}
	}

	// One rectangle per package and per box, four lines each
	lines := 0
	for _, tok := range strings.Fields(content) {
		if tok == "LINE" {
			lines++
		}
	}
	want := 4 * (len(result.Packages) + result.BoxCount())
	if lines != want {
		t.Errorf("expected %d LINE entities, got %d", want, lines)
	}

	if !strings.Contains(content, "Pallet") || !strings.Contains(content, "#2") {
		t.Error("expected box labels in output")
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	if err := ExportDXF(path, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
