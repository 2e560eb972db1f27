package engine

import (
	"errors"
	"testing"

	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singlePackage(boxes ...model.Box) *model.Shipment {
	s := model.NewShipment()
	p := s.AddPackage(model.PackageType{Name: "B", Width: 800, Height: 600})
	for _, b := range boxes {
		b.PackageID = p.ID
		s.AddBox(b)
	}
	return s
}

func TestCheck_EmptyShipmentIsValid(t *testing.T) {
	assert.NoError(t, Check(model.NewShipment()))
	assert.True(t, Valid(model.NewShipment()))
}

func TestCheck_Overlap(t *testing.T) {
	s := singlePackage(
		model.Box{Index: 1, Width: 400, Height: 400, X: 200, Y: 200},
		model.Box{Index: 2, Width: 400, Height: 400, X: 300, Y: 200},
	)
	err := Check(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlap))
	assert.False(t, Valid(s))
}

func TestCheck_TouchingEdgesAreNotOverlap(t *testing.T) {
	s := singlePackage(
		model.Box{Index: 1, Width: 400, Height: 400, X: 200, Y: 200},
		model.Box{Index: 2, Width: 400, Height: 400, X: 600, Y: 200},
		model.Box{Index: 3, Width: 400, Height: 200, X: 200, Y: 500},
	)
	assert.NoError(t, Check(s))
}

func TestCheck_OverlapOnOneAxisOnly(t *testing.T) {
	// Same x-interval, stacked on top of each other.
	s := singlePackage(
		model.Box{Index: 1, Width: 400, Height: 200, X: 200, Y: 100},
		model.Box{Index: 2, Width: 400, Height: 200, X: 200, Y: 300},
	)
	assert.True(t, Valid(s))
}

func TestCheck_ContainmentOneUnitFix(t *testing.T) {
	box := model.Box{Index: 1, Width: 400, Height: 400, X: 601, Y: 200}
	s := singlePackage(box)

	err := Check(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	s.MoveBox(0, 600, 200)
	assert.NoError(t, Check(s))

	// Same on the vertical axis, through the ceiling.
	s.MoveBox(0, 600, 401)
	assert.True(t, errors.Is(Check(s), ErrOutOfBounds))
	s.MoveBox(0, 600, 400)
	assert.True(t, Valid(s))

	// And through the floor.
	s.MoveBox(0, 600, 199)
	assert.False(t, Valid(s))
}

func TestCheck_DifferentPackagesNeverCompared(t *testing.T) {
	s := model.NewShipment()
	a := s.AddPackage(model.PackageType{Name: "A", Width: 800, Height: 1200})
	b := s.AddPackage(model.PackageType{Name: "B", Width: 800, Height: 600})
	s.AddBox(model.Box{Index: 1, Width: 400, Height: 400, PackageID: a.ID, X: 200, Y: 200})
	s.AddBox(model.Box{Index: 2, Width: 400, Height: 400, PackageID: b.ID, X: 200, Y: 200})

	assert.True(t, Valid(s))
}

func TestCheck_UnknownPackage(t *testing.T) {
	s := singlePackage(model.Box{Index: 1, Width: 100, Height: 100, X: 50, Y: 50})
	s.Boxes[0].PackageID = 99

	err := Check(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnknownPackage))
}

func TestCheck_RotationCanBreakContainment(t *testing.T) {
	s := singlePackage(model.Box{Index: 1, Width: 800, Height: 200, X: 400, Y: 100})
	require.True(t, Valid(s))

	s.RotateBox(0)
	assert.False(t, Valid(s))

	s.RotateBox(0)
	assert.True(t, Valid(s))
}
