package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/piwi3910/ShipPack/internal/model"
)

// Packer builds a randomized, feasible starting shipment by dropping each box
// on top of whatever already sits beneath it in a randomly chosen package.
type Packer struct {
	catalog   model.Catalog
	precision float64
	rng       *rand.Rand
	logger    *slog.Logger
}

// NewPacker creates a packer. A nil logger discards all output.
func NewPacker(catalog model.Catalog, precision float64, rng *rand.Rand, logger *slog.Logger) *Packer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Packer{
		catalog:   catalog,
		precision: precision,
		rng:       rng,
		logger:    logger,
	}
}

// Pack places every box that fits some catalog type and returns the resulting
// shipment together with the boxes that fit no type at all.
func (p *Packer) Pack(specs []model.BoxSpec) (*model.Shipment, []model.BoxSpec, error) {
	if err := p.catalog.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if p.precision <= 0 {
		return nil, nil, fmt.Errorf("precision must be positive, got %g", p.precision)
	}

	var placeable, dropped []model.BoxSpec
	for _, spec := range specs {
		if len(p.catalog.Eligible(spec.Width, spec.Height)) == 0 {
			p.logger.Warn("box fits no package type, dropping",
				"index", spec.Index, "width", spec.Width, "height", spec.Height)
			dropped = append(dropped, spec)
			continue
		}
		placeable = append(placeable, spec)
	}

	s := model.NewShipment()
	for _, k := range p.rng.Perm(len(placeable)) {
		p.place(s, model.NewBox(placeable[k]))
	}

	p.logger.Debug("initial packing done",
		"boxes", len(s.Boxes), "packages", len(s.Packages), "dropped", len(dropped), "area", s.Area)
	return s, dropped, nil
}

// place assigns the box to an admitting package, opening a new one when no
// existing package has room for it as given, and stacks it at a random grid
// x. Only a box that opens a new package is ever rotated.
func (p *Packer) place(s *model.Shipment, box model.Box) {
	var admitting []model.Package
	for _, pkg := range s.Packages {
		if admits(s, pkg, box.Width, box.Height) {
			admitting = append(admitting, pkg)
		}
	}

	var pkg model.Package
	if len(admitting) == 0 {
		eligible := p.catalog.Eligible(box.Width, box.Height)
		pkg = s.AddPackage(eligible[p.rng.Intn(len(eligible))])
		if !model.FitsOrientation(box.Width, box.Height, pkg.Width, pkg.Height) {
			box.Rotate()
		}
	} else {
		pkg = admitting[p.rng.Intn(len(admitting))]
	}

	box.PackageID = pkg.ID
	box.X = gridX(p.rng, box.Width, pkg.Width, p.precision)
	box.Y = stackY(s, pkg.ID, -1, box.X, box.Width, box.Height)
	s.AddBox(box)
}

// admits reports whether a w x h box fits the package width and still fits
// below the ceiling when stacked on the package's highest box.
func admits(s *model.Shipment, pkg model.Package, w, h float64) bool {
	return model.FitsOrientation(w, s.TopEdge(pkg.ID, -1)+h, pkg.Width, pkg.Height)
}
