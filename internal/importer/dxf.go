package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a 2D vertex read from a drawing.
type point struct {
	x, y float64
}

// outline is a closed polygon.
type outline []point

// bounds returns the extent of the outline.
func (o outline) bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range o {
		minX = math.Min(minX, p.x)
		minY = math.Min(minY, p.y)
		maxX = math.Max(maxX, p.x)
		maxY = math.Max(maxY, p.y)
	}
	return minX, minY, maxX, maxY
}

// isAxisRectangle reports whether the outline is four corners of an
// axis-aligned rectangle.
func (o outline) isAxisRectangle(tolerance float64) bool {
	if len(o) != 4 {
		return false
	}
	minX, minY, maxX, maxY := o.bounds()
	for _, p := range o {
		onX := math.Abs(p.x-minX) <= tolerance || math.Abs(p.x-maxX) <= tolerance
		onY := math.Abs(p.y-minY) <= tolerance || math.Abs(p.y-maxY) <= tolerance
		if !onX || !onY {
			return false
		}
	}
	return true
}

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// ImportDXF imports boxes from a DXF file. Each closed shape (LWPOLYLINE,
// CIRCLE, or chain of connected LINEs) becomes one box sized to the shape's
// bounding box. Shapes that are not axis-aligned rectangles are kept with a
// warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := make(outline, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				o = append(o, point{x: v[0], y: v[1]})
			}
			if len(o) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			for _, b := range e.Bulges {
				if math.Abs(b) > 1e-9 {
					result.Warnings = append(result.Warnings, "LWPOLYLINE arcs ignored, using straight edges")
					break
				}
			}
			outlines = append(outlines, o)

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			result.Warnings = append(result.Warnings, "CIRCLE imported as its bounding square")
			outlines = append(outlines, outline{{cx - r, cy - r}, {cx + r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})

		case *entity.Line:
			segments = append(segments, segment{
				start: point{x: e.Start[0], y: e.Start[1]},
				end:   point{x: e.End[0], y: e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for n, o := range outlines {
		minX, minY, maxX, maxY := o.bounds()
		width := maxX - minX
		height := maxY - minY

		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", width, height))
			continue
		}

		label := fmt.Sprintf("DXF Box %d", n+1)
		if !o.isAxisRectangle(0.01) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s is not a rectangle, using its bounding box", label))
		}

		result.Boxes = append(result.Boxes, model.BoxSpec{
			Index:  len(result.Boxes) + 1,
			Label:  label,
			Width:  width,
			Height: height,
		})
	}

	return result
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
// Open chains are discarded.
func chainSegments(segs []segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for start := range segs {
		if used[start] {
			continue
		}
		chain := []point{segs[start].start, segs[start].end}
		used[start] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
				} else if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[i] = true
				changed = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, outline(chain[:len(chain)-1]))
		}
	}

	// Largest first for a stable order
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o outline) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].x * o[j].y
		area -= o[j].x * o[i].y
	}
	return math.Abs(area) / 2
}
