package export

import (
	"fmt"

	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerPackages     = "packages"
	LayerBoxes        = "boxes"
	LayerBoxesRotated = "boxes-rotated"
	LayerLabels       = "labels"
)

// packageGap separates neighboring packages in the drawing, in drawing units.
const packageGap = 200.0

// ExportDXF draws every package side by side along the x axis with its boxes
// in place. Outlines are plain LINE entities so any CAD tool can read them.
func ExportDXF(path string, result model.PackResult) error {
	if len(result.Packages) == 0 {
		return fmt.Errorf("no packages to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerPackages, color.White},
		{LayerBoxes, color.Green},
		{LayerBoxesRotated, color.Yellow},
		{LayerLabels, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	offsetX := 0.0
	for _, pr := range result.Packages {
		pkg := pr.Package
		if err := drawRect(d, LayerPackages, offsetX, 0, pkg.Width, pkg.Height); err != nil {
			return err
		}
		if err := drawText(d, fmt.Sprintf("%d %s", pkg.ID, pkg.Type), offsetX, -60, 40); err != nil {
			return err
		}

		for _, b := range pr.Boxes {
			layer := LayerBoxes
			if b.Rotated {
				layer = LayerBoxesRotated
			}
			if err := drawRect(d, layer, offsetX+b.Left(), b.Bottom(), b.Width, b.Height); err != nil {
				return err
			}
			if err := drawText(d, boxLabel(b), offsetX+b.Left()+10, b.Bottom()+10, 25); err != nil {
				return err
			}
		}

		offsetX += pkg.Width + packageGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawRect adds the four edges of an axis-aligned rectangle on the layer.
func drawRect(d *drawing.Drawing, layer string, x, y, w, h float64) error {
	if err := d.ChangeLayer(layer); err != nil {
		return fmt.Errorf("failed to select layer %s: %w", layer, err)
	}
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}

func drawText(d *drawing.Drawing, text string, x, y, height float64) error {
	if err := d.ChangeLayer(LayerLabels); err != nil {
		return fmt.Errorf("failed to select layer %s: %w", LayerLabels, err)
	}
	if _, err := d.Text(text, x, y, 0, height); err != nil {
		return fmt.Errorf("failed to draw text: %w", err)
	}
	return nil
}
