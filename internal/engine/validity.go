package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/ShipPack/internal/model"
)

var (
	// ErrOutOfBounds is returned when a box extends past an edge of its package.
	ErrOutOfBounds = errors.New("box extends outside its package")
	// ErrOverlap is returned when two boxes in the same package overlap.
	ErrOverlap = errors.New("boxes overlap")
)

// Check reports the first constraint a shipment violates, or nil when every
// box lies inside its package and no two boxes in the same package overlap.
// Boxes in different packages are never compared.
func Check(s *model.Shipment) error {
	pkgs := make(map[int]model.Package, len(s.Packages))
	for _, p := range s.Packages {
		pkgs[p.ID] = p
	}

	for _, b := range s.Boxes {
		p, ok := pkgs[b.PackageID]
		if !ok {
			return fmt.Errorf("box %d in package %d: %w", b.Index, b.PackageID, model.ErrUnknownPackage)
		}
		if !model.WithinRange(b.X, b.Width, p.Width) || !model.WithinRange(b.Y, b.Height, p.Height) {
			return fmt.Errorf("box %d at (%g, %g) in package %d (%gx%g): %w",
				b.Index, b.X, b.Y, p.ID, p.Width, p.Height, ErrOutOfBounds)
		}
	}

	for i := 0; i < len(s.Boxes); i++ {
		a := s.Boxes[i]
		for j := i + 1; j < len(s.Boxes); j++ {
			b := s.Boxes[j]
			if a.PackageID != b.PackageID {
				continue
			}
			if a.Overlaps(b) {
				return fmt.Errorf("boxes %d and %d in package %d: %w", a.Index, b.Index, a.PackageID, ErrOverlap)
			}
		}
	}
	return nil
}

// Valid reports whether the shipment satisfies containment and non-overlap.
func Valid(s *model.Shipment) bool {
	return Check(s) == nil
}
