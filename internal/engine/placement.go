package engine

import (
	"math/rand"

	"github.com/piwi3910/ShipPack/internal/model"
)

// gridX samples an x-center for a box of the given width uniformly from the
// grid lo, lo+step, ... within [width/2, containerWidth-width/2]. When the box
// is wider than the container the range is empty and lo is returned; the
// validity checker rejects that placement.
func gridX(rng *rand.Rand, width, containerWidth, step float64) float64 {
	lo := width / 2
	hi := containerWidth - width/2
	return lo + step*float64(rng.Intn(model.GridSteps(lo, hi, step)))
}

// stackY returns the y-center that rests a box of w x h centered at x on top
// of the highest box in the package whose x-interval overlaps it, or on the
// floor when none does. The box at position exclude is ignored.
func stackY(s *model.Shipment, packageID, exclude int, x, w, h float64) float64 {
	top := 0.0
	for i, b := range s.Boxes {
		if i == exclude || b.PackageID != packageID {
			continue
		}
		if model.IntervalsOverlap(x, w, b.X, b.Width) && b.Top() > top {
			top = b.Top()
		}
	}
	return top + h/2
}
