package model

import "math"

// AreaBound holds a lower-bound estimate of the package area a box set needs.
type AreaBound struct {
	TotalBoxArea     float64        `json:"total_box_area"`    // Sum of all box footprints
	BestType         string         `json:"best_type"`         // Catalog type giving the tightest single-type bound
	PackagesNeeded   int            `json:"packages_needed"`   // Packages of BestType needed by area alone
	SingleTypeArea   float64        `json:"single_type_area"`  // PackagesNeeded * area of BestType
	PerType          map[string]int `json:"per_type"`          // Packages needed by area, per catalog type
	LowerBound       float64        `json:"lower_bound"`       // No packing can use less package area than this
	UnplaceableBoxes int            `json:"unplaceable_boxes"` // Boxes that fit no catalog type
}

// CalculateAreaBound estimates the least package area that could hold the
// boxes. Boxes that fit no catalog type in either orientation are counted but
// excluded from the bound.
//
// The bound is the summed box area: any feasible packing needs at least that
// much container area. SingleTypeArea is reported separately as the cost of
// an all-one-type shipment packed with no waste, which is useful context but
// not a true lower bound when the catalog mixes sizes.
func CalculateAreaBound(boxes []BoxSpec, catalog Catalog) AreaBound {
	bound := AreaBound{PerType: make(map[string]int)}

	var largestBox BoxSpec
	for _, b := range boxes {
		if len(catalog.Eligible(b.Width, b.Height)) == 0 {
			bound.UnplaceableBoxes++
			continue
		}
		bound.TotalBoxArea += b.Width * b.Height
		if b.Width*b.Height > largestBox.Width*largestBox.Height {
			largestBox = b
		}
	}
	bound.LowerBound = bound.TotalBoxArea

	if bound.TotalBoxArea == 0 {
		return bound
	}

	bestArea := math.Inf(1)
	for _, t := range catalog.Types {
		if t.Area() <= 0 {
			continue
		}
		n := int(math.Ceil(bound.TotalBoxArea/t.Area() - geomEpsilon))
		bound.PerType[t.Name] = n
		if !FitsEitherOrientation(largestBox.Width, largestBox.Height, t.Width, t.Height) {
			continue
		}
		if area := float64(n) * t.Area(); area < bestArea {
			bestArea = area
			bound.BestType = t.Name
			bound.PackagesNeeded = n
			bound.SingleTypeArea = area
		}
	}

	// At least one package is always needed, so the smallest eligible
	// package area is also a bound.
	smallest := math.Inf(1)
	for _, t := range catalog.Eligible(largestBox.Width, largestBox.Height) {
		smallest = math.Min(smallest, t.Area())
	}
	if !math.IsInf(smallest, 1) && smallest > bound.LowerBound {
		bound.LowerBound = smallest
	}
	return bound
}
