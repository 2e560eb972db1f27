package engine

import (
	"fmt"
	"math/rand"

	"github.com/piwi3910/ShipPack/internal/model"
)

// MoveKind identifies one of the perturbations the annealer can propose.
type MoveKind int

const (
	// MoveRelocate moves a box to a new spot in its own package.
	MoveRelocate MoveKind = iota
	// MoveRelocateOther moves a box into a different package.
	MoveRelocateOther
	// MoveRotate turns a box by 90 degrees around its center.
	MoveRotate
	// MoveSwapSame exchanges the centers of two boxes in one package.
	MoveSwapSame
	// MoveSwapAny exchanges centers and packages of any two boxes.
	MoveSwapAny

	numMoveKinds
)

var moveKindNames = [...]string{
	MoveRelocate:      "relocate",
	MoveRelocateOther: "relocate-other",
	MoveRotate:        "rotate",
	MoveSwapSame:      "swap-same",
	MoveSwapAny:       "swap-any",
}

func (k MoveKind) String() string {
	if k < 0 || k >= numMoveKinds {
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
	return moveKindNames[k]
}

// MoveKinds returns every move kind in declaration order.
func MoveKinds() []MoveKind {
	kinds := make([]MoveKind, 0, numMoveKinds)
	for k := MoveKind(0); k < numMoveKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Proposer produces candidate shipments for the annealer.
type Proposer interface {
	Propose(current *model.Shipment) (*model.Shipment, MoveKind)
}

// MoveGenerator proposes random neighbors of a shipment. Candidates are not
// checked for feasibility.
type MoveGenerator struct {
	precision float64
	rng       *rand.Rand
}

// NewMoveGenerator creates a generator that samples x-centers on a grid of
// the given precision.
func NewMoveGenerator(precision float64, rng *rand.Rand) *MoveGenerator {
	return &MoveGenerator{precision: precision, rng: rng}
}

// Propose copies current, applies one uniformly chosen move to the copy and
// returns it. current itself is never modified.
func (g *MoveGenerator) Propose(current *model.Shipment) (*model.Shipment, MoveKind) {
	cand := current.Clone()
	kind := MoveKind(g.rng.Intn(int(numMoveKinds)))
	g.Apply(cand, kind)
	return cand, kind
}

// Apply performs the move on s in place. It returns false when the move had
// nothing to act on and left s unchanged.
func (g *MoveGenerator) Apply(s *model.Shipment, kind MoveKind) bool {
	if len(s.Boxes) == 0 {
		return false
	}
	i := g.rng.Intn(len(s.Boxes))

	switch kind {
	case MoveRelocate:
		return g.relocate(s, i, s.Boxes[i].PackageID)
	case MoveRelocateOther:
		return g.relocateOther(s, i)
	case MoveRotate:
		s.RotateBox(i)
		return true
	case MoveSwapSame:
		return g.swapSame(s, i)
	case MoveSwapAny:
		return g.swapAny(s, i)
	}
	return false
}

// relocate assigns box i to the package, picks a grid x and stacks it on the
// other boxes there.
func (g *MoveGenerator) relocate(s *model.Shipment, i, packageID int) bool {
	pkg, ok := s.Package(packageID)
	if !ok {
		return false
	}
	b := s.Boxes[i]
	x := gridX(g.rng, b.Width, pkg.Width, g.precision)
	y := stackY(s, pkg.ID, i, x, b.Width, b.Height)
	s.AssignBox(i, pkg.ID)
	s.MoveBox(i, x, y)
	return true
}

func (g *MoveGenerator) relocateOther(s *model.Shipment, i int) bool {
	current := s.Boxes[i].PackageID
	var others []int
	for _, p := range s.Packages {
		if p.ID != current {
			others = append(others, p.ID)
		}
	}
	if len(others) == 0 {
		return false
	}
	return g.relocate(s, i, others[g.rng.Intn(len(others))])
}

func (g *MoveGenerator) swapSame(s *model.Shipment, i int) bool {
	var partners []int
	for _, j := range s.BoxesIn(s.Boxes[i].PackageID) {
		if j != i {
			partners = append(partners, j)
		}
	}
	if len(partners) == 0 {
		return false
	}
	s.SwapPositions(i, partners[g.rng.Intn(len(partners))])
	return true
}

func (g *MoveGenerator) swapAny(s *model.Shipment, i int) bool {
	if len(s.Boxes) < 2 {
		return false
	}
	j := g.rng.Intn(len(s.Boxes) - 1)
	if j >= i {
		j++
	}
	s.SwapPlacements(i, j)
	return true
}
