package ui

import (
	"errors"
	"fmt"
	"math"

	"github.com/cansyan/flexui/layout"
)

// ErrInvalidStyle is returned when a patch carries a negative or NaN length.
var ErrInvalidStyle = errors.New("invalid style")

// StylePatch is a partial layout style. Nil fields are unset. Patches
// compose field by field: merging b over a keeps a's fields that b leaves
// unset, so combinators can be stacked in any number.
type StylePatch struct {
	Display   *layout.Display
	Direction *layout.Direction

	Width, Height       *layout.Dimension
	MinWidth, MinHeight *layout.Dimension
	MaxWidth, MaxHeight *layout.Dimension

	JustifyContent *layout.Justify
	AlignItems     *layout.Align
	AlignSelf      *layout.Align
	GapX, GapY     *float64

	FlexGrow   *float64
	FlexShrink *float64
	FlexBasis  *layout.Dimension

	Padding *layout.Edges
	Border  *layout.Edges
	Margin  *layout.Edges

	OverflowX, OverflowY *layout.Overflow

	Columns, Rows         []layout.Track
	AutoColumns, AutoRows *layout.Track
	GridRow, GridColumn   *layout.Placement
}

func ptr[T any](v T) *T { return &v }

func pick[T any](over, base *T) *T {
	if over != nil {
		return over
	}
	return base
}

// Merge returns p with every field set in q overriding p's.
func (p StylePatch) Merge(q StylePatch) StylePatch {
	p.Display = pick(q.Display, p.Display)
	p.Direction = pick(q.Direction, p.Direction)
	p.Width = pick(q.Width, p.Width)
	p.Height = pick(q.Height, p.Height)
	p.MinWidth = pick(q.MinWidth, p.MinWidth)
	p.MinHeight = pick(q.MinHeight, p.MinHeight)
	p.MaxWidth = pick(q.MaxWidth, p.MaxWidth)
	p.MaxHeight = pick(q.MaxHeight, p.MaxHeight)
	p.JustifyContent = pick(q.JustifyContent, p.JustifyContent)
	p.AlignItems = pick(q.AlignItems, p.AlignItems)
	p.AlignSelf = pick(q.AlignSelf, p.AlignSelf)
	p.GapX = pick(q.GapX, p.GapX)
	p.GapY = pick(q.GapY, p.GapY)
	p.FlexGrow = pick(q.FlexGrow, p.FlexGrow)
	p.FlexShrink = pick(q.FlexShrink, p.FlexShrink)
	p.FlexBasis = pick(q.FlexBasis, p.FlexBasis)
	p.Padding = pick(q.Padding, p.Padding)
	p.Border = pick(q.Border, p.Border)
	p.Margin = pick(q.Margin, p.Margin)
	p.OverflowX = pick(q.OverflowX, p.OverflowX)
	p.OverflowY = pick(q.OverflowY, p.OverflowY)
	if q.Columns != nil {
		p.Columns = q.Columns
	}
	if q.Rows != nil {
		p.Rows = q.Rows
	}
	p.AutoColumns = pick(q.AutoColumns, p.AutoColumns)
	p.AutoRows = pick(q.AutoRows, p.AutoRows)
	p.GridRow = pick(q.GridRow, p.GridRow)
	p.GridColumn = pick(q.GridColumn, p.GridColumn)
	return p
}

// Apply writes the set fields of p into s.
func (p StylePatch) Apply(s *layout.Style) {
	if p.Display != nil {
		s.Display = *p.Display
	}
	if p.Direction != nil {
		s.Direction = *p.Direction
	}
	applyDim(&s.Size.W, p.Width)
	applyDim(&s.Size.H, p.Height)
	applyDim(&s.MinSize.W, p.MinWidth)
	applyDim(&s.MinSize.H, p.MinHeight)
	applyDim(&s.MaxSize.W, p.MaxWidth)
	applyDim(&s.MaxSize.H, p.MaxHeight)
	applyDim(&s.FlexBasis, p.FlexBasis)
	if p.JustifyContent != nil {
		s.JustifyContent = *p.JustifyContent
	}
	if p.AlignItems != nil {
		s.AlignItems = *p.AlignItems
	}
	if p.AlignSelf != nil {
		s.AlignSelf = ptr(*p.AlignSelf)
	}
	if p.GapX != nil {
		s.Gap.W = *p.GapX
	}
	if p.GapY != nil {
		s.Gap.H = *p.GapY
	}
	if p.FlexGrow != nil {
		s.FlexGrow = *p.FlexGrow
	}
	if p.FlexShrink != nil {
		s.FlexShrink = *p.FlexShrink
	}
	if p.Padding != nil {
		s.Padding = *p.Padding
	}
	if p.Border != nil {
		s.Border = *p.Border
	}
	if p.Margin != nil {
		s.Margin = *p.Margin
	}
	if p.OverflowX != nil {
		s.Overflow.X = *p.OverflowX
	}
	if p.OverflowY != nil {
		s.Overflow.Y = *p.OverflowY
	}
	if p.Columns != nil {
		s.GridTemplateColumns = p.Columns
	}
	if p.Rows != nil {
		s.GridTemplateRows = p.Rows
	}
	if p.AutoColumns != nil {
		s.GridAutoColumns = *p.AutoColumns
	}
	if p.AutoRows != nil {
		s.GridAutoRows = *p.AutoRows
	}
	if p.GridRow != nil {
		s.GridRow = *p.GridRow
	}
	if p.GridColumn != nil {
		s.GridColumn = *p.GridColumn
	}
}

func applyDim(dst *layout.Dimension, d *layout.Dimension) {
	if d != nil {
		*dst = *d
	}
}

// Validate reports the first field holding a negative or NaN length.
func (p StylePatch) Validate() error {
	dims := []struct {
		name string
		d    *layout.Dimension
	}{
		{"width", p.Width}, {"height", p.Height},
		{"min width", p.MinWidth}, {"min height", p.MinHeight},
		{"max width", p.MaxWidth}, {"max height", p.MaxHeight},
		{"flex basis", p.FlexBasis},
	}
	for _, f := range dims {
		if f.d == nil {
			continue
		}
		if err := f.d.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidStyle, f.name, err)
		}
	}
	nums := []struct {
		name string
		v    *float64
	}{
		{"column gap", p.GapX}, {"row gap", p.GapY},
		{"flex grow", p.FlexGrow}, {"flex shrink", p.FlexShrink},
	}
	for _, f := range nums {
		if f.v != nil && (math.IsNaN(*f.v) || *f.v < 0) {
			return fmt.Errorf("%w: %s: %g", ErrInvalidStyle, f.name, *f.v)
		}
	}
	edges := []struct {
		name string
		e    *layout.Edges
	}{
		{"padding", p.Padding}, {"border", p.Border}, {"margin", p.Margin},
	}
	for _, f := range edges {
		if f.e == nil {
			continue
		}
		for _, v := range []float64{f.e.Top, f.e.Right, f.e.Bottom, f.e.Left} {
			if math.IsNaN(v) || v < 0 {
				return fmt.Errorf("%w: %s: %g", ErrInvalidStyle, f.name, v)
			}
		}
	}
	tracks := append(append([]layout.Track(nil), p.Columns...), p.Rows...)
	if p.AutoColumns != nil {
		tracks = append(tracks, *p.AutoColumns)
	}
	if p.AutoRows != nil {
		tracks = append(tracks, *p.AutoRows)
	}
	for _, t := range tracks {
		if math.IsNaN(t.Value) || t.Value < 0 {
			return fmt.Errorf("%w: grid track: %g", ErrInvalidStyle, t.Value)
		}
	}
	return nil
}

func (p StylePatch) scrolls() (x, y bool) {
	return p.OverflowX != nil && *p.OverflowX == layout.OverflowScroll,
		p.OverflowY != nil && *p.OverflowY == layout.OverflowScroll
}

// Size fixes both dimensions in cells.
func Size(w, h float64) StylePatch {
	return StylePatch{Width: ptr(layout.Length(w)), Height: ptr(layout.Length(h))}
}

// Width sets the width. Use layout.Percent for relative sizes.
func Width(d layout.Dimension) StylePatch { return StylePatch{Width: &d} }

func Height(d layout.Dimension) StylePatch { return StylePatch{Height: &d} }

func MinSize(w, h layout.Dimension) StylePatch {
	return StylePatch{MinWidth: &w, MinHeight: &h}
}

func MaxSize(w, h layout.Dimension) StylePatch {
	return StylePatch{MaxWidth: &w, MaxHeight: &h}
}

// Padding adds n cells inside every edge.
func Padding(n float64) StylePatch {
	return StylePatch{Padding: ptr(layout.EdgeAll(n))}
}

// PaddingXY pads the left and right edges by x and the top and bottom by y.
func PaddingXY(x, y float64) StylePatch {
	return StylePatch{Padding: ptr(layout.EdgeSymmetric(y, x))}
}

func Margin(e layout.Edges) StylePatch { return StylePatch{Margin: &e} }

// Gap sets the spacing between columns (x) and rows (y).
func Gap(x, y float64) StylePatch { return StylePatch{GapX: &x, GapY: &y} }

func Grow(n float64) StylePatch   { return StylePatch{FlexGrow: &n} }
func Shrink(n float64) StylePatch { return StylePatch{FlexShrink: &n} }

func Basis(d layout.Dimension) StylePatch { return StylePatch{FlexBasis: &d} }

// Row lays children out left to right.
func Row() StylePatch {
	return StylePatch{Display: ptr(layout.DisplayFlex), Direction: ptr(layout.Row)}
}

// Column lays children out top to bottom.
func Column() StylePatch {
	return StylePatch{Display: ptr(layout.DisplayFlex), Direction: ptr(layout.Column)}
}

// Grid makes the node a grid container.
func Grid() StylePatch { return StylePatch{Display: ptr(layout.DisplayGrid)} }

// Columns sets the explicit column tracks and makes the node a grid.
func Columns(tracks ...layout.Track) StylePatch {
	return StylePatch{Display: ptr(layout.DisplayGrid), Columns: tracks}
}

func Rows(tracks ...layout.Track) StylePatch {
	return StylePatch{Display: ptr(layout.DisplayGrid), Rows: tracks}
}

// AutoRows sets the size of implicit rows.
func AutoRows(t layout.Track) StylePatch { return StylePatch{AutoRows: &t} }

func GridRow(p layout.Placement) StylePatch    { return StylePatch{GridRow: &p} }
func GridColumn(p layout.Placement) StylePatch { return StylePatch{GridColumn: &p} }

func Justify(j layout.Justify) StylePatch { return StylePatch{JustifyContent: &j} }

func AlignItems(a layout.Align) StylePatch { return StylePatch{AlignItems: &a} }
func AlignSelf(a layout.Align) StylePatch  { return StylePatch{AlignSelf: &a} }

func Overflow(x, y layout.Overflow) StylePatch {
	return StylePatch{OverflowX: &x, OverflowY: &y}
}

// Scroll clips the node and scrolls its content on the given axes.
func Scroll(x, y bool) StylePatch {
	mode := func(on bool) layout.Overflow {
		if on {
			return layout.OverflowScroll
		}
		return layout.OverflowHidden
	}
	return Overflow(mode(x), mode(y))
}

// Hidden removes the node from layout and paint.
func Hidden() StylePatch { return StylePatch{Display: ptr(layout.DisplayNone)} }

// Bordered reserves one cell on every edge for a border line.
func Bordered() StylePatch { return StylePatch{Border: ptr(layout.EdgeAll(1))} }
