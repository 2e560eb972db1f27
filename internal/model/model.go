package model

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrPackageNotEmpty is returned when removing a package that still holds boxes.
	ErrPackageNotEmpty = errors.New("package is not empty")
	// ErrUnknownPackage is returned when a package id is not part of the shipment.
	ErrUnknownPackage = errors.New("unknown package")
)

// BoxSpec is one input row: a box to be packed before it has a placement.
type BoxSpec struct {
	Index  int     `json:"index"`
	Label  string  `json:"label,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box is a rectangular item with its current orientation and placement.
// X and Y are the coordinates of the box center inside its package, with the
// origin at the package's bottom-left corner.
type Box struct {
	Index     int     `json:"index"`
	Label     string  `json:"label,omitempty"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rotated   bool    `json:"rotated"`
	PackageID int     `json:"package_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// NewBox creates an unplaced box from its input row.
func NewBox(spec BoxSpec) Box {
	return Box{
		Index:  spec.Index,
		Label:  spec.Label,
		Width:  spec.Width,
		Height: spec.Height,
	}
}

// Rotate swaps width and height and toggles the orientation flag.
func (b *Box) Rotate() {
	b.Width, b.Height = b.Height, b.Width
	b.Rotated = !b.Rotated
}

func (b Box) Left() float64 { return b.X - b.Width/2 }
func (b Box) Right() float64 { return b.X + b.Width/2 }
func (b Box) Bottom() float64 { return b.Y - b.Height/2 }
func (b Box) Top() float64 { return b.Y + b.Height/2 }

// Area returns the footprint of the box.
func (b Box) Area() float64 {
	return b.Width * b.Height
}

// Overlaps reports whether two boxes occupy overlapping space, ignoring the
// packages they belong to.
func (b Box) Overlaps(o Box) bool {
	return IntervalsOverlap(b.X, b.Width, o.X, o.Width) &&
		IntervalsOverlap(b.Y, b.Height, o.Y, o.Height)
}

// PackageType is one catalog entry.
type PackageType struct {
	Name   string  `json:"name" yaml:"name"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Area returns the area of one package of this type.
func (t PackageType) Area() float64 {
	return t.Width * t.Height
}

// Catalog is the fixed list of container types available for a run.
type Catalog struct {
	Types []PackageType `json:"types" yaml:"types"`
}

// DefaultCatalog returns the two standard package types.
func DefaultCatalog() Catalog {
	return Catalog{Types: []PackageType{
		{Name: "package_type1", Width: 800, Height: 1200},
		{Name: "package_type2", Width: 800, Height: 600},
	}}
}

// Lookup returns the catalog entry with the given name.
func (c Catalog) Lookup(name string) (PackageType, bool) {
	for _, t := range c.Types {
		if t.Name == name {
			return t, true
		}
	}
	return PackageType{}, false
}

// Eligible returns the catalog entries a box of w x h fits in either orientation.
func (c Catalog) Eligible(w, h float64) []PackageType {
	var out []PackageType
	for _, t := range c.Types {
		if FitsEitherOrientation(w, h, t.Width, t.Height) {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks that the catalog is usable for packing.
func (c Catalog) Validate() error {
	if len(c.Types) == 0 {
		return errors.New("catalog has no package types")
	}
	var err error
	seen := make(map[string]bool, len(c.Types))
	for i, t := range c.Types {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			err = multierr.Append(err, fmt.Errorf("package type %d: missing name", i+1))
		} else if seen[name] {
			err = multierr.Append(err, fmt.Errorf("package type %q: duplicate name", name))
		}
		seen[name] = true
		if t.Width <= 0 || t.Height <= 0 {
			err = multierr.Append(err, fmt.Errorf("package type %q: dimensions must be positive", t.Name))
		}
	}
	return err
}

// Package is a container instance of a catalog type. Its dimensions are
// copied from the catalog when it is created and never change.
type Package struct {
	ID     int     `json:"id"`
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the area of the package.
func (p Package) Area() float64 {
	return p.Width * p.Height
}

// AnnealSettings holds the cooling schedule and sampling parameters.
type AnnealSettings struct {
	InitialControl      float64 `json:"initial_control" yaml:"initial_control" mapstructure:"c0"`
	MinControl          float64 `json:"min_control" yaml:"min_control" mapstructure:"cmin"`
	Alpha               float64 `json:"alpha" yaml:"alpha" mapstructure:"alpha"`
	StepsPerTemperature int     `json:"steps_per_temperature" yaml:"steps_per_temperature" mapstructure:"steps"`
	Precision           float64 `json:"precision" yaml:"precision" mapstructure:"precision"` // Grid step for sampled x-centers
	Seed                int64   `json:"seed" yaml:"seed" mapstructure:"seed"`
}

// DefaultAnnealSettings returns the standard cooling schedule.
func DefaultAnnealSettings() AnnealSettings {
	return AnnealSettings{
		InitialControl:      10000,
		MinControl:          2,
		Alpha:               0.5,
		StepsPerTemperature: 1000,
		Precision:           10,
		Seed:                0,
	}
}

// Temperatures returns how many control parameter values the schedule visits.
func (s AnnealSettings) Temperatures() int {
	if s.Validate() != nil {
		return 0
	}
	n := 0
	for c := s.InitialControl; c >= s.MinControl; c *= s.Alpha {
		n++
	}
	return n
}

// Validate checks that the schedule terminates and the sampling grid is usable.
func (s AnnealSettings) Validate() error {
	var err error
	if s.InitialControl <= 0 {
		err = multierr.Append(err, fmt.Errorf("initial control parameter must be positive, got %g", s.InitialControl))
	}
	if s.MinControl <= 0 {
		err = multierr.Append(err, fmt.Errorf("minimum control parameter must be positive, got %g", s.MinControl))
	}
	if s.Alpha <= 0 || s.Alpha >= 1 {
		err = multierr.Append(err, fmt.Errorf("alpha must be in (0, 1), got %g", s.Alpha))
	}
	if s.StepsPerTemperature < 1 {
		err = multierr.Append(err, fmt.Errorf("steps per temperature must be at least 1, got %d", s.StepsPerTemperature))
	}
	if s.Precision <= 0 {
		err = multierr.Append(err, fmt.Errorf("precision must be positive, got %g", s.Precision))
	}
	return err
}
