package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShipPack/internal/model"
)

// buildTestResult returns two packages: A holding two boxes (one rotated)
// and B holding one box that fills it exactly.
func buildTestResult() model.PackResult {
	return model.PackResult{
		RunID: "3f6c1a52-0d7e-4c55-9b1e-2a9f0c7d8e11",
		Packages: []model.PackageResult{
			{
				Package: model.Package{ID: 1, Type: "A", Width: 800, Height: 1200},
				Boxes: []model.Box{
					{Index: 1, Label: "Crate", Width: 400, Height: 300, PackageID: 1, X: 200, Y: 150},
					{Index: 2, Width: 500, Height: 200, Rotated: true, PackageID: 1, X: 650, Y: 250},
				},
			},
			{
				Package: model.Package{ID: 2, Type: "B", Width: 800, Height: 600},
				Boxes: []model.Box{
					{Index: 3, Label: "Pallet", Width: 800, Height: 600, PackageID: 2, X: 400, Y: 300},
				},
			},
		},
		Area:        800*1200 + 800*600,
		InitialArea: 3 * 800 * 1200,
		LowerBound:  800 * 1200,
		Settings:    model.DefaultAnnealSettings(),
		Stats: model.AnnealStats{
			Temperatures:     13,
			Proposed:         13000,
			AcceptedDownhill: 9000,
			Rejected:         4000,
			PackagesRemoved:  1,
		},
	}
}

func assertNonEmptyFile(t *testing.T, path string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("file is empty")
	}
	return info
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, buildTestResult()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info := assertNonEmptyFile(t, path)
	// Two package pages plus the summary page
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPDF(path, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty result")
	}
}

func TestExportPDF_WithDroppedBoxes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dropped.pdf")

	result := buildTestResult()
	result.Dropped = []model.BoxSpec{
		{Index: 4, Label: "Too Big", Width: 3000, Height: 2000},
		{Index: 5, Width: 1500, Height: 1500},
	}

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_ManyBoxes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	pr := model.PackageResult{Package: model.Package{ID: 1, Type: "A", Width: 800, Height: 1200}}
	for i := 0; i < 40; i++ {
		pr.Boxes = append(pr.Boxes, model.Box{
			Index: i + 1, Width: 100, Height: 100, PackageID: 1,
			X: float64(i%8)*100 + 50, Y: float64(i/8)*100 + 50,
		})
	}
	result := model.PackResult{Packages: []model.PackageResult{pr}, Area: 800 * 1200}

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestBoxLabel(t *testing.T) {
	if got := boxLabel(model.Box{Index: 7, Label: "Crate"}); got != "Crate" {
		t.Errorf("expected label Crate, got %q", got)
	}
	if got := boxLabel(model.Box{Index: 7}); got != "#7" {
		t.Errorf("expected fallback #7, got %q", got)
	}
}
