package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ErrResponseRequired is the panic value when a response-computed background
// value is drawn without an interaction response.
var ErrResponseRequired = errors.New("background value needs an interaction response")

// VisualsFunc computes a value from the theme and the widget visuals picked
// for the node's state.
type VisualsFunc[T any] func(v *Visuals, w *WidgetVisuals) T

// ResponseFunc is like VisualsFunc but also sees the node's response.
type ResponseFunc[T any] func(v *Visuals, w *WidgetVisuals, r *Response) T

// Attr is one background attribute. Each tier may be set independently; the
// resolved value is the first set tier in the order constant, response,
// visuals, falling back to the theme default.
type Attr[T any] struct {
	value        T
	isConst      bool
	FromResponse ResponseFunc[T]
	FromVisuals  VisualsFunc[T]
}

// Const returns an attribute holding v.
func Const[T any](v T) Attr[T] {
	return Attr[T]{value: v, isConst: true}
}

// Const returns a copy of a with the constant tier set to v.
func (a Attr[T]) Const(v T) Attr[T] {
	a.value, a.isConst = v, true
	return a
}

// usesResponse reports whether resolving a consults the response.
func (a Attr[T]) usesResponse() bool {
	return !a.isConst && a.FromResponse != nil
}

// IsSet reports whether any tier is set.
func (a Attr[T]) IsSet() bool {
	return a.isConst || a.FromResponse != nil || a.FromVisuals != nil
}

func (a Attr[T]) resolve(v *Visuals, w *WidgetVisuals, r *Response, def T) T {
	switch {
	case a.isConst:
		return a.value
	case a.FromResponse != nil:
		if r == nil {
			panic(ErrResponseRequired)
		}
		return a.FromResponse(v, w, r)
	case a.FromVisuals != nil:
		return a.FromVisuals(v, w)
	}
	return def
}

// Background describes the fill and stroke painted under a node.
type Background struct {
	Fill        Attr[Color]
	Stroke      Attr[Color]
	StrokeWidth Attr[int]
	Radius      Attr[int]

	border bool
}

// NewBackground returns a background that paints nothing until configured.
func NewBackground() Background { return Background{} }

func (b Background) WithFill(c Color) Background {
	b.Fill = b.Fill.Const(c)
	return b
}

func (b Background) WithFillByVisuals(fn VisualsFunc[Color]) Background {
	b.Fill.FromVisuals = fn
	return b
}

func (b Background) WithFillByResponse(fn ResponseFunc[Color]) Background {
	b.Fill.FromResponse = fn
	return b
}

// WithBorder draws a stroke with the theme's color and width for the
// node's state.
func (b Background) WithBorder() Background {
	b.border = true
	return b
}

func (b Background) WithStroke(c Color) Background {
	b.Stroke = b.Stroke.Const(c)
	return b.WithBorder()
}

func (b Background) WithStrokeByVisuals(fn VisualsFunc[Color]) Background {
	b.Stroke.FromVisuals = fn
	return b.WithBorder()
}

func (b Background) WithStrokeByResponse(fn ResponseFunc[Color]) Background {
	b.Stroke.FromResponse = fn
	return b.WithBorder()
}

func (b Background) WithStrokeWidth(n int) Background {
	b.StrokeWidth = b.StrokeWidth.Const(n)
	return b.WithBorder()
}

func (b Background) WithStrokeWidthByVisuals(fn VisualsFunc[int]) Background {
	b.StrokeWidth.FromVisuals = fn
	return b.WithBorder()
}

func (b Background) WithStrokeWidthByResponse(fn ResponseFunc[int]) Background {
	b.StrokeWidth.FromResponse = fn
	return b.WithBorder()
}

func (b Background) WithRadius(n int) Background {
	b.Radius = b.Radius.Const(n)
	return b
}

func (b Background) WithRadiusByVisuals(fn VisualsFunc[int]) Background {
	b.Radius.FromVisuals = fn
	return b
}

func (b Background) WithRadiusByResponse(fn ResponseFunc[int]) Background {
	b.Radius.FromResponse = fn
	return b
}

// HasBorder reports whether the stroke is drawn.
func (b Background) HasBorder() bool {
	return b.border || b.Stroke.IsSet() || b.StrokeWidth.IsSet()
}

// needsResponse returns the name of the first attribute resolved from the
// response. A constant tier shadows the response tier.
func (b Background) needsResponse() (string, bool) {
	switch {
	case b.Fill.usesResponse():
		return "fill", true
	case b.Stroke.usesResponse():
		return "stroke", true
	case b.StrokeWidth.usesResponse():
		return "stroke width", true
	case b.Radius.usesResponse():
		return "radius", true
	}
	return "", false
}

// Resolved is a background with every attribute evaluated.
type Resolved struct {
	Fill        Color // tcell.ColorDefault paints no fill
	Stroke      Color
	StrokeWidth int // 0 paints no stroke
	Radius      int
}

// Resolve evaluates every attribute for the given response, which may be nil
// when no attribute needs one.
func (b Background) Resolve(v *Visuals, r *Response) Resolved {
	w := v.Widget(r)
	out := Resolved{
		Fill:   b.Fill.resolve(v, w, r, tcell.ColorDefault),
		Radius: b.Radius.resolve(v, w, r, w.Radius),
	}
	if b.HasBorder() {
		out.Stroke = b.Stroke.resolve(v, w, r, w.BgStroke)
		out.StrokeWidth = b.StrokeWidth.resolve(v, w, r, w.StrokeWidth)
	}
	return out
}

// DrawBackground paints bg over rect for a node without interaction. A
// background with any response-computed attribute is a programming error
// here and panics before anything is painted.
func DrawBackground(p Painter, rect Rect, bg Background, v *Visuals) {
	if name, ok := bg.needsResponse(); ok {
		panic(fmt.Errorf("%w: %s is computed from the response of a non-interactive node", ErrResponseRequired, name))
	}
	drawBackground(p, rect, bg, v, nil)
}

func drawBackground(p Painter, rect Rect, bg Background, v *Visuals, r *Response) {
	res := bg.Resolve(v, r)
	if res.Fill != tcell.ColorDefault {
		FillRect(p, rect, tcell.StyleDefault.Background(res.Fill))
	}
	if res.StrokeWidth > 0 {
		DrawStroke(p, rect, res.StrokeWidth, res.Radius, tcell.StyleDefault.Foreground(res.Stroke))
	}
}
