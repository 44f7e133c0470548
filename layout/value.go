package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidValue is returned for negative or NaN lengths.
var ErrInvalidValue = errors.New("invalid layout value")

// Unit specifies how a Dimension is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Size determined by content/flex
	UnitLength              // Absolute terminal cells
	UnitPercent             // Percentage of the parent's content box
)

// Dimension represents a size that can be a length, a percentage, or auto.
type Dimension struct {
	Amount float64
	Unit   Unit
}

// Auto returns a Dimension that should be computed from content/flex.
func Auto() Dimension {
	return Dimension{Unit: UnitAuto}
}

// Length returns a Dimension of n cells.
func Length(n float64) Dimension {
	return Dimension{Amount: n, Unit: UnitLength}
}

// Percent returns a Dimension relative to the parent.
// The value is on a 0-100 scale (50.0 = 50%).
func Percent(p float64) Dimension {
	return Dimension{Amount: p, Unit: UnitPercent}
}

// IsAuto returns true if this value should be computed from content/flex.
func (d Dimension) IsAuto() bool {
	return d.Unit == UnitAuto
}

// Resolve returns the size in cells and whether it is definite.
// Percentages of an unbounded parent are not definite.
func (d Dimension) Resolve(parent float64) (float64, bool) {
	switch d.Unit {
	case UnitLength:
		return d.Amount, true
	case UnitPercent:
		if math.IsInf(parent, 0) || math.IsNaN(parent) {
			return 0, false
		}
		return parent * d.Amount / 100.0, true
	default:
		return 0, false
	}
}

// Validate reports an error if the dimension holds a negative or NaN amount.
func (d Dimension) Validate() error {
	if d.Unit == UnitAuto {
		return nil
	}
	return checkLength(d.Amount)
}

func checkLength(v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("%w: NaN", ErrInvalidValue)
	}
	if v < 0 {
		return fmt.Errorf("%w: %g is negative", ErrInvalidValue, v)
	}
	return nil
}

// SizeDim is a width and height pair of dimensions.
type SizeDim struct {
	W, H Dimension
}

// AutoSize returns a SizeDim with both axes auto.
func AutoSize() SizeDim {
	return SizeDim{W: Auto(), H: Auto()}
}

func (s SizeDim) axis(row bool) Dimension {
	if row {
		return s.W
	}
	return s.H
}

// TrackKind classifies a grid track sizing function.
type TrackKind uint8

const (
	TrackAuto       TrackKind = iota // Content sized, stretches into free space
	TrackLength                      // Fixed number of cells
	TrackFr                          // Fraction of the remaining space
	TrackMinContent                  // Content sized, never stretched
)

// Track is the sizing function of one grid row or column.
type Track struct {
	Kind  TrackKind
	Value float64
}

// AutoTrack returns a content sized track that absorbs free space.
func AutoTrack() Track { return Track{Kind: TrackAuto} }

// LengthTrack returns a fixed track of n cells.
func LengthTrack(n float64) Track { return Track{Kind: TrackLength, Value: n} }

// Fr returns a flexible track taking n shares of the remaining space.
func Fr(n float64) Track { return Track{Kind: TrackFr, Value: n} }

// MinContentTrack returns a content sized track that never stretches.
func MinContentTrack() Track { return Track{Kind: TrackMinContent} }

// Repeat returns n copies of t.
func Repeat(n int, t Track) []Track {
	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = t
	}
	return tracks
}

// Placement positions a grid item on one axis.
// Start is a 1-based grid line; 0 means auto placement.
type Placement struct {
	Start int
	Span  int  // number of tracks, 0 is treated as 1
	ToEnd bool // span up to the last explicit line
}

// Line places an item starting at grid line n.
func Line(n int) Placement { return Placement{Start: n, Span: 1} }

// Span auto-places an item spanning n tracks.
func Span(n int) Placement { return Placement{Span: n} }

// FullSpan places an item from the first to the last explicit line.
func FullSpan() Placement { return Placement{Start: 1, ToEnd: true} }

func (p Placement) span(explicit int) int {
	if p.ToEnd {
		start := max(p.Start, 1)
		return max(explicit-start+1, 1)
	}
	return max(p.Span, 1)
}
