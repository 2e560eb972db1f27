package engine

import (
	"testing"

	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPackageShipment has box 1 on the floor of package A and box 2 filling
// package B completely.
func twoPackageShipment() *model.Shipment {
	s := model.NewShipment()
	a := s.AddPackage(model.PackageType{Name: "A", Width: 800, Height: 1200})
	b := s.AddPackage(model.PackageType{Name: "B", Width: 800, Height: 600})
	s.AddBox(model.Box{Index: 1, Width: 400, Height: 400, PackageID: a.ID, X: 200, Y: 200})
	s.AddBox(model.Box{Index: 2, Width: 800, Height: 600, PackageID: b.ID, X: 400, Y: 300})
	return s
}

func TestMoveKind_String(t *testing.T) {
	assert.Equal(t, "relocate", MoveRelocate.String())
	assert.Equal(t, "relocate-other", MoveRelocateOther.String())
	assert.Equal(t, "rotate", MoveRotate.String())
	assert.Equal(t, "swap-same", MoveSwapSame.String())
	assert.Equal(t, "swap-any", MoveSwapAny.String())
	assert.Equal(t, "MoveKind(9)", MoveKind(9).String())
	assert.Len(t, MoveKinds(), 5)
}

func TestPropose_DoesNotModifyCurrent(t *testing.T) {
	s, _, err := NewPacker(testCatalog(), 10, newRand(1), nil).Pack(randomBoxes(15, 1))
	require.NoError(t, err)
	snapshot := s.Clone()

	g := NewMoveGenerator(10, newRand(2))
	for i := 0; i < 500; i++ {
		cand, _ := g.Propose(s)
		require.NotSame(t, s, cand)
	}
	assert.Equal(t, snapshot, s)
}

func TestPropose_DrawsEveryKind(t *testing.T) {
	s := twoPackageShipment()
	g := NewMoveGenerator(10, newRand(3))

	counts := make(map[MoveKind]int)
	for i := 0; i < 5000; i++ {
		_, kind := g.Propose(s)
		counts[kind]++
	}
	for _, k := range MoveKinds() {
		if counts[k] < 800 || counts[k] > 1200 {
			t.Errorf("move %s drawn %d times out of 5000", k, counts[k])
		}
	}
}

func TestApply_EmptyShipmentIsNoop(t *testing.T) {
	g := NewMoveGenerator(10, newRand(1))
	for _, k := range MoveKinds() {
		s := model.NewShipment()
		assert.False(t, g.Apply(s, k), k.String())
	}
}

func TestApply_RelocateOtherWithSinglePackage(t *testing.T) {
	s := singlePackage(model.Box{Index: 1, Width: 400, Height: 400, X: 200, Y: 200})
	before := s.Clone()

	assert.False(t, NewMoveGenerator(10, newRand(1)).Apply(s, MoveRelocateOther))
	assert.Equal(t, before, s)
}

func TestApply_SwapSameWithoutPartner(t *testing.T) {
	s := twoPackageShipment()
	before := s.Clone()

	assert.False(t, NewMoveGenerator(10, newRand(1)).Apply(s, MoveSwapSame))
	assert.Equal(t, before, s)
}

func TestApply_SwapAnyNeedsTwoBoxes(t *testing.T) {
	s := singlePackage(model.Box{Index: 1, Width: 400, Height: 400, X: 200, Y: 200})
	assert.False(t, NewMoveGenerator(10, newRand(1)).Apply(s, MoveSwapAny))
}

func TestApply_RelocateStaysInPackageOnGrid(t *testing.T) {
	g := NewMoveGenerator(10, newRand(4))
	for i := 0; i < 50; i++ {
		s := singlePackage(model.Box{Index: 1, Width: 300, Height: 200, X: 150, Y: 100})
		require.True(t, g.Apply(s, MoveRelocate))

		b := s.Boxes[0]
		assert.Equal(t, 1, b.PackageID)
		assert.Equal(t, 100.0, b.Y, "a lone box rests on the floor")
		assert.GreaterOrEqual(t, b.X, 150.0)
		assert.LessOrEqual(t, b.X, 650.0)
		assert.True(t, Valid(s))
	}
}

func TestApply_RelocateStacksOnOtherBoxes(t *testing.T) {
	g := NewMoveGenerator(10, newRand(5))
	for i := 0; i < 50; i++ {
		s := singlePackage(
			model.Box{Index: 1, Width: 200, Height: 100, X: 100, Y: 250},
			model.Box{Index: 2, Width: 800, Height: 200, X: 400, Y: 100},
		)
		before := s.Clone()
		require.True(t, g.Apply(s, MoveRelocate))

		if s.Boxes[1] == before.Boxes[1] {
			// Box 2 spans the full width, so box 1 always lands on it.
			assert.Equal(t, 250.0, s.Boxes[0].Y)
		} else {
			// Box 2 can only sit at x=400 and overlaps box 1 wherever that is.
			assert.Equal(t, before.Boxes[0], s.Boxes[0])
			assert.Equal(t, 400.0, s.Boxes[1].X)
			assert.Equal(t, 300.0, s.Boxes[1].Bottom())
		}
		assert.True(t, Valid(s))
	}
}

func TestApply_RelocateOtherMovesAcrossPackages(t *testing.T) {
	g := NewMoveGenerator(10, newRand(6))
	for i := 0; i < 20; i++ {
		s := twoPackageShipment()
		require.True(t, g.Apply(s, MoveRelocateOther))

		switch {
		case s.Boxes[0].PackageID == 2:
			// Box 1 lands on the full-width box in B and pokes through the lid.
			assert.Equal(t, 600.0, s.Boxes[0].Bottom())
			assert.False(t, Valid(s))
		case s.Boxes[1].PackageID == 1:
			// Box 2 spans A's width, so it stacks on box 1.
			assert.Equal(t, 400.0, s.Boxes[1].X)
			assert.Equal(t, 400.0, s.Boxes[1].Bottom())
			assert.True(t, Valid(s))
			assert.Equal(t, []int{2}, s.EmptyPackages())
		default:
			t.Fatalf("no box changed package: %+v", s.Boxes)
		}
	}
}

func TestApply_RotateTurnsOneBox(t *testing.T) {
	s := twoPackageShipment()
	require.True(t, NewMoveGenerator(10, newRand(7)).Apply(s, MoveRotate))

	rotated := 0
	for _, b := range s.Boxes {
		if b.Rotated {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)
	assert.Equal(t, 200.0, s.Boxes[0].X, "rotation keeps the center")
	assert.Equal(t, 400.0, s.Boxes[1].X)
}

func TestApply_SwapAnyExchangesPlacements(t *testing.T) {
	s := twoPackageShipment()
	require.True(t, NewMoveGenerator(10, newRand(8)).Apply(s, MoveSwapAny))

	assert.Equal(t, 2, s.Boxes[0].PackageID)
	assert.Equal(t, 1, s.Boxes[1].PackageID)
	assert.Equal(t, 400.0, s.Boxes[0].X)
	assert.Equal(t, 300.0, s.Boxes[0].Y)
	assert.Equal(t, 200.0, s.Boxes[1].X)
	assert.Equal(t, 200.0, s.Boxes[1].Y)
}

func TestApply_SwapSameExchangesCenters(t *testing.T) {
	s := singlePackage(
		model.Box{Index: 1, Width: 200, Height: 200, X: 100, Y: 100},
		model.Box{Index: 2, Width: 200, Height: 200, X: 700, Y: 100},
	)
	require.True(t, NewMoveGenerator(10, newRand(9)).Apply(s, MoveSwapSame))

	assert.Equal(t, 700.0, s.Boxes[0].X)
	assert.Equal(t, 100.0, s.Boxes[1].X)
	assert.True(t, Valid(s))
}
