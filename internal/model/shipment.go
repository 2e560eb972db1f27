package model

import (
	"fmt"
	"sort"
)

// Shipment is one complete packing configuration: every package in use and
// every box with its placement. Area is derived from Packages and is kept in
// sync by the mutation methods; it is never an independent source of truth.
type Shipment struct {
	Packages []Package `json:"packages"`
	Boxes    []Box     `json:"boxes"`
	Area     float64   `json:"area"`

	nextID int
}

// NewShipment returns an empty shipment whose first package gets id 1.
func NewShipment() *Shipment {
	return &Shipment{nextID: 1}
}

// Clone returns a deep copy of the shipment.
func (s *Shipment) Clone() *Shipment {
	cp := &Shipment{
		Packages: make([]Package, len(s.Packages)),
		Boxes:    make([]Box, len(s.Boxes)),
		Area:     s.Area,
		nextID:   s.nextID,
	}
	copy(cp.Packages, s.Packages)
	copy(cp.Boxes, s.Boxes)
	return cp
}

// AddPackage instantiates a new package of the given type with the next
// monotonic id and returns it. A shipment built without NewShipment, such as
// one decoded from JSON, continues after its highest existing id.
func (s *Shipment) AddPackage(t PackageType) Package {
	if s.nextID < 1 {
		s.nextID = 1
		for _, p := range s.Packages {
			if p.ID >= s.nextID {
				s.nextID = p.ID + 1
			}
		}
	}
	p := Package{
		ID:     s.nextID,
		Type:   t.Name,
		Width:  t.Width,
		Height: t.Height,
	}
	s.nextID++
	s.Packages = append(s.Packages, p)
	s.Area += p.Area()
	return p
}

// Package returns the package with the given id.
func (s *Shipment) Package(id int) (Package, bool) {
	for _, p := range s.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// AddBox appends a box. The box must already name one of the shipment's packages.
func (s *Shipment) AddBox(b Box) {
	s.Boxes = append(s.Boxes, b)
}

// BoxesIn returns the positions in Boxes of every box assigned to the package.
func (s *Shipment) BoxesIn(packageID int) []int {
	var idx []int
	for i, b := range s.Boxes {
		if b.PackageID == packageID {
			idx = append(idx, i)
		}
	}
	return idx
}

// CountIn returns how many boxes are assigned to the package.
func (s *Shipment) CountIn(packageID int) int {
	n := 0
	for _, b := range s.Boxes {
		if b.PackageID == packageID {
			n++
		}
	}
	return n
}

// TopEdge returns the highest top edge among boxes in the package, skipping
// the box at position exclude (pass -1 to consider all boxes). It returns 0
// for an empty package.
func (s *Shipment) TopEdge(packageID, exclude int) float64 {
	top := 0.0
	for i, b := range s.Boxes {
		if i == exclude || b.PackageID != packageID {
			continue
		}
		if b.Top() > top {
			top = b.Top()
		}
	}
	return top
}

// AssignBox moves the box at position i into the package.
func (s *Shipment) AssignBox(i, packageID int) {
	s.Boxes[i].PackageID = packageID
}

// MoveBox sets the center of the box at position i.
func (s *Shipment) MoveBox(i int, x, y float64) {
	s.Boxes[i].X = x
	s.Boxes[i].Y = y
}

// RotateBox turns the box at position i by 90 degrees in place.
func (s *Shipment) RotateBox(i int) {
	s.Boxes[i].Rotate()
}

// SwapPositions exchanges the centers of two boxes, leaving package
// membership unchanged.
func (s *Shipment) SwapPositions(i, j int) {
	a, b := &s.Boxes[i], &s.Boxes[j]
	a.X, b.X = b.X, a.X
	a.Y, b.Y = b.Y, a.Y
}

// SwapPlacements exchanges both the centers and the package membership of
// two boxes, so each box ends up where the other one was.
func (s *Shipment) SwapPlacements(i, j int) {
	s.SwapPositions(i, j)
	a, b := &s.Boxes[i], &s.Boxes[j]
	a.PackageID, b.PackageID = b.PackageID, a.PackageID
}

// RemovePackage deletes an empty package. Removing a package that still holds
// boxes would orphan them, so it fails with ErrPackageNotEmpty.
func (s *Shipment) RemovePackage(id int) error {
	pos := -1
	for i, p := range s.Packages {
		if p.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("remove package %d: %w", id, ErrUnknownPackage)
	}
	if n := s.CountIn(id); n > 0 {
		return fmt.Errorf("remove package %d holding %d boxes: %w", id, n, ErrPackageNotEmpty)
	}
	s.Packages = append(s.Packages[:pos], s.Packages[pos+1:]...)
	s.RecomputeArea()
	return nil
}

// EmptyPackages returns the ids of packages that hold no boxes.
func (s *Shipment) EmptyPackages() []int {
	counts := make(map[int]int, len(s.Packages))
	for _, b := range s.Boxes {
		counts[b.PackageID]++
	}
	var ids []int
	for _, p := range s.Packages {
		if counts[p.ID] == 0 {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// PruneEmptyPackages removes every package holding zero boxes and returns how
// many were removed.
func (s *Shipment) PruneEmptyPackages() (int, error) {
	ids := s.EmptyPackages()
	for _, id := range ids {
		if err := s.RemovePackage(id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// RecomputeArea recalculates Area from the current package set.
func (s *Shipment) RecomputeArea() {
	var total float64
	for _, p := range s.Packages {
		total += p.Area()
	}
	s.Area = total
}

// BoxArea returns the summed footprint of all boxes.
func (s *Shipment) BoxArea() float64 {
	var total float64
	for _, b := range s.Boxes {
		total += b.Area()
	}
	return total
}

// Result groups the boxes by package for reporting. Packages are ordered by
// id and boxes within a package by index.
func (s *Shipment) Result() PackResult {
	res := PackResult{Area: s.Area}
	pkgs := make([]Package, len(s.Packages))
	copy(pkgs, s.Packages)
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].ID < pkgs[j].ID })

	for _, p := range pkgs {
		pr := PackageResult{Package: p}
		for _, i := range s.BoxesIn(p.ID) {
			pr.Boxes = append(pr.Boxes, s.Boxes[i])
		}
		sort.Slice(pr.Boxes, func(i, j int) bool { return pr.Boxes[i].Index < pr.Boxes[j].Index })
		res.Packages = append(res.Packages, pr)
	}
	return res
}
