// Package ui builds flexbox and grid layouts out of immediate-mode widget
// calls and paints them onto a tcell screen.
//
// Each frame the application declares its tree through a Builder. Leaves
// are measured by running their own Draw routine against an off-screen
// painter, the tree is solved by the layout package, and the widgets are
// painted at their solved rectangles. Node identity is derived from the call
// order (or explicit keys), so state kept in Memory follows a widget from
// one frame to the next even though the tree is rebuilt every time.
package ui

import (
	"math"

	"github.com/cansyan/flexui/layout"
	"github.com/gdamore/tcell/v2"
)

type Screen = tcell.Screen
type EventKey = tcell.EventKey
type EventMouse = tcell.EventMouse
type EventResize = tcell.EventResize
type Color = tcell.Color

// Rect is a rectangle of terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Point is a cell position.
type Point struct {
	X, Y int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersect returns the overlap of r and o, or an empty rect at r's origin.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// cellRect snaps a solver rectangle to the cell grid by rounding its edges,
// so adjacent rects stay adjacent.
func cellRect(r layout.Rect) Rect {
	x0, y0 := int(math.Round(r.X)), int(math.Round(r.Y))
	x1, y1 := int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H))
	return Rect{X: x0, Y: y0, W: max(x1-x0, 0), H: max(y1-y0, 0)}
}

// Style is the visual style of painted text.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool
}

var DefaultStyle = Style{FG: tcell.ColorDefault, BG: tcell.ColorDefault}

func (s Style) Apply() tcell.Style {
	st := tcell.StyleDefault
	if s.FG != tcell.ColorDefault {
		st = st.Foreground(s.FG)
	}
	if s.BG != tcell.ColorDefault {
		st = st.Background(s.BG)
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

// Merge returns a new Style by applying the child style's non-default attributes
// over the receiver (parent) style.
func (s Style) Merge(child Style) Style {
	if child.FG == tcell.ColorDefault {
		child.FG = s.FG
	}
	if child.BG == tcell.ColorDefault {
		child.BG = s.BG
	}
	child.Bold = child.Bold || s.Bold
	child.Italic = child.Italic || s.Italic
	child.Underline = child.Underline || s.Underline
	child.Reverse = child.Reverse || s.Reverse
	return child
}
