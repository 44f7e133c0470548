package ui

import (
	"math"

	"github.com/cansyan/flexui/layout"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Widget is a leaf that paints itself into a rect. The same Draw routine
// is used to measure the widget, so it must not depend on whether p is the
// screen or a probe. r is nil when the widget is measured.
type Widget interface {
	Draw(p Painter, rect Rect, r *Response)
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(p Painter, rect Rect, r *Response)

func (f WidgetFunc) Draw(p Painter, rect Rect, r *Response) { f(p, rect, r) }

// IntrinsicSize is a leaf's content footprint independent of layout.
type IntrinsicSize struct {
	Min       layout.Size // footprint at the narrowest width
	Max       layout.Size // footprint with unbounded width
	Preferred layout.Size // footprint at HintWidth, valid when HasHint
	HintWidth float64
	HasHint   bool
	// ExpandX and ExpandY report that the widget fills whatever space it
	// is given on that axis.
	ExpandX, ExpandY bool
}

const (
	probeUnbounded = 1 << 16
	probeHeight    = 1 << 16
)

// recorder is an off-screen painter that tracks the extent of everything
// drawn into it.
type recorder struct {
	w, h             int
	expandX, expandY bool
}

func (r *recorder) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 {
		return
	}
	r.w = max(r.w, x+max(runewidth.RuneWidth(primary), 1))
	r.h = max(r.h, y+1)
}

func (r *recorder) Expand(x, y bool) {
	r.expandX = r.expandX || x
	r.expandY = r.expandY || y
}

func probe(w Widget, width int) (layout.Size, *recorder) {
	rec := &recorder{}
	w.Draw(rec, Rect{W: width, H: probeHeight}, nil)
	return layout.Size{W: float64(rec.w), H: float64(rec.h)}, rec
}

// Measure runs the widget's draw routine against off-screen probes: with
// unbounded width, with zero width, and at the width the node resolved to in
// the previous sub-pass when there is one. The result is cached for the
// rest of the frame.
func (f *Frame) Measure(h NodeHandle) IntrinsicSize {
	n := f.arena.get(h)
	if n.intrinsic != nil {
		return *n.intrinsic
	}
	var in IntrinsicSize
	if n.widget != nil {
		var rec *recorder
		in.Max, rec = probe(n.widget, probeUnbounded)
		in.ExpandX, in.ExpandY = rec.expandX, rec.expandY
		if in.ExpandX {
			// Filling widgets draw across the whole probe, so their
			// footprint is taken from a single cell column.
			in.Max, _ = probe(n.widget, 1)
			in.Min = in.Max
		} else {
			in.Min, _ = probe(n.widget, 0)
		}
		if hint, ok := f.hints[n.id]; ok {
			in.Preferred, _ = probe(n.widget, hint)
			in.HintWidth = float64(hint)
			in.HasHint = true
		}
		if in.ExpandY {
			in.Min.H = math.Min(in.Min.H, 1)
			in.Max.H = math.Min(in.Max.H, 1)
			in.Preferred.H = math.Min(in.Preferred.H, 1)
		}
	}
	n.intrinsic = &in
	return in
}

// measureFunc adapts an intrinsic size to the solver. Widths between Min
// and Max that do not match the hint are estimated by keeping the area of
// the unbounded footprint, and the frame is marked for another sub-pass.
func (f *Frame) measureFunc(in IntrinsicSize) layout.MeasureFunc {
	return func(avail float64) layout.Size {
		fill := func(sz layout.Size) layout.Size {
			if in.ExpandX && !math.IsInf(avail, 1) {
				sz.W = math.Max(avail, in.Min.W)
			}
			return sz
		}
		switch {
		case math.IsInf(avail, 1) || avail >= in.Max.W:
			return fill(in.Max)
		case in.HasHint && math.Abs(avail-in.HintWidth) < 0.5:
			return fill(in.Preferred)
		case avail <= in.Min.W:
			return fill(in.Min)
		}
		f.estimated = true
		h := in.Max.H
		if avail > 0 {
			h = math.Ceil(in.Max.W * in.Max.H / avail)
		}
		return fill(layout.Size{W: avail, H: math.Min(math.Max(h, in.Max.H), math.Max(in.Min.H, in.Max.H))})
	}
}
