package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type countingPainter struct{ n int }

func (p *countingPainter) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	p.n++
}

func (p *countingPainter) Expand(x, y bool) {}

func TestAttr_Precedence(t *testing.T) {
	fromVisuals := func(v *Visuals, w *WidgetVisuals) int { return 2 }
	fromResponse := func(v *Visuals, w *WidgetVisuals, r *Response) int { return 3 }
	tests := []struct {
		name string
		attr Attr[int]
		want int
	}{
		{"default", Attr[int]{}, 9},
		{"visuals", Attr[int]{FromVisuals: fromVisuals}, 2},
		{"response over visuals", Attr[int]{FromVisuals: fromVisuals, FromResponse: fromResponse}, 3},
		{"constant over all", Attr[int]{FromVisuals: fromVisuals, FromResponse: fromResponse}.Const(1), 1},
		{"constant zero", Const(0), 0},
	}
	v := &Visuals{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.attr.resolve(v, &v.Inactive, &Response{}, 9)
			if got != tt.want {
				t.Errorf("resolve() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAttr_ResponseTierWithoutResponsePanics(t *testing.T) {
	a := Attr[int]{FromResponse: func(v *Visuals, w *WidgetVisuals, r *Response) int { return 1 }}
	v := &Visuals{}
	expectPanic(t, ErrResponseRequired, func() {
		a.resolve(v, &v.Noninteractive, nil, 0)
	})
	// A constant shadows the response tier.
	if got := a.Const(4).resolve(v, &v.Noninteractive, nil, 0); got != 4 {
		t.Errorf("resolve() = %d, want 4", got)
	}
}

func TestBackground_Resolve(t *testing.T) {
	v, err := NewVisuals(MarianaPalette())
	if err != nil {
		t.Fatal(err)
	}
	red := tcell.NewRGBColor(255, 0, 0)

	plain := NewBackground().Resolve(&v, nil)
	if plain.Fill != tcell.ColorDefault || plain.StrokeWidth != 0 {
		t.Errorf("empty background = %+v, want no fill and no stroke", plain)
	}

	bordered := NewBackground().WithBorder().Resolve(&v, nil)
	if bordered.Stroke != v.Noninteractive.BgStroke || bordered.StrokeWidth != 1 {
		t.Errorf("bordered = %+v, want theme stroke of width 1", bordered)
	}
	pressed := NewBackground().WithBorder().Resolve(&v, &Response{Hovered: true, Pressed: true})
	if pressed.Stroke != v.Active.BgStroke || pressed.StrokeWidth != v.Active.StrokeWidth {
		t.Errorf("pressed = %+v, want active visuals", pressed)
	}

	bg := NewBackground().
		WithFillByVisuals(func(v *Visuals, w *WidgetVisuals) Color { return w.BgFill }).
		WithFillByResponse(func(v *Visuals, w *WidgetVisuals, r *Response) Color {
			if r.Hovered {
				return v.Accent
			}
			return w.BgFill
		}).
		WithStrokeWidth(3).
		WithRadius(0)
	got := bg.Resolve(&v, &Response{Hovered: true})
	want := Resolved{Fill: v.Accent, Stroke: v.Hovered.BgStroke, StrokeWidth: 3, Radius: 0}
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
	if got := bg.WithFill(red).Resolve(&v, &Response{Hovered: true}); got.Fill != red {
		t.Errorf("constant fill = %v, want red", got.Fill)
	}
}

func TestDrawBackground_ResponseFillPanicsBeforePaint(t *testing.T) {
	v, _ := NewVisuals(MarianaPalette())
	tests := []struct {
		name string
		bg   Background
	}{
		{"fill", NewBackground().WithFillByResponse(func(v *Visuals, w *WidgetVisuals, r *Response) Color {
			return w.BgFill
		})},
		{"stroke", NewBackground().WithFill(v.Accent).WithStrokeByResponse(func(v *Visuals, w *WidgetVisuals, r *Response) Color {
			return w.BgStroke
		})},
		{"radius", NewBackground().WithBorder().WithRadiusByResponse(func(v *Visuals, w *WidgetVisuals, r *Response) int {
			return 1
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &countingPainter{}
			expectPanic(t, ErrResponseRequired, func() {
				DrawBackground(p, Rect{W: 4, H: 3}, tt.bg, &v)
			})
			if p.n != 0 {
				t.Errorf("painted %d cells before panicking", p.n)
			}
		})
	}
}

func TestDrawBackground(t *testing.T) {
	v, _ := NewVisuals(MarianaPalette())
	tests := []struct {
		name  string
		bg    Background
		cells int
	}{
		{"nothing", NewBackground(), 0},
		{"fill", NewBackground().WithFill(v.Accent), 12},
		{"stroke", NewBackground().WithBorder(), 10},
		{"fill and stroke", NewBackground().WithFill(v.Accent).WithBorder(), 22},
		{"shadowed response fill", NewBackground().
			WithFillByResponse(func(v *Visuals, w *WidgetVisuals, r *Response) Color { return w.BgFill }).
			WithFill(v.Accent), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &countingPainter{}
			DrawBackground(p, Rect{W: 4, H: 3}, tt.bg, &v)
			if p.n != tt.cells {
				t.Errorf("painted %d cells, want %d", p.n, tt.cells)
			}
		})
	}
}

func TestDrawInteractive(t *testing.T) {
	responseFill := NewBackground().WithFillByResponse(func(v *Visuals, w *WidgetVisuals, r *Response) Color {
		return w.BgFill
	})
	rect := Rect{X: 1, Y: 1, W: 4, H: 2}

	t.Run("click", func(t *testing.T) {
		s, _ := newTestSurface(t, 10, 5)
		r := DrawInteractive(s.Canvas(LayerContent), NewID("b"), rect, responseFill, SenseClick)
		if r == nil || r.ID != NewID("b") || r.Rect != rect {
			t.Fatalf("response = %+v", r)
		}
		if len(s.hits) != 1 {
			t.Errorf("hits = %d, want 1", len(s.hits))
		}
	})

	t.Run("opaque", func(t *testing.T) {
		s, _ := newTestSurface(t, 10, 5)
		r := DrawInteractive(s.Canvas(LayerContent), NewID("b"), rect, NewBackground().WithFill(s.Visuals.Accent), SenseOpaque)
		if r != nil {
			t.Errorf("response = %+v, want nil", r)
		}
		if len(s.hits) != 1 {
			t.Errorf("hits = %d, want 1", len(s.hits))
		}
	})

	t.Run("transparent", func(t *testing.T) {
		s, _ := newTestSurface(t, 10, 5)
		r := DrawInteractive(s.Canvas(LayerContent), NewID("b"), rect, NewBackground().WithFill(s.Visuals.Accent), SenseTransparent)
		if r != nil {
			t.Errorf("response = %+v, want nil", r)
		}
		if len(s.hits) != 0 {
			t.Errorf("hits = %d, want 0", len(s.hits))
		}
	})

	for _, sense := range []Sense{SenseOpaque, SenseTransparent} {
		t.Run(sense.String()+" with response fill", func(t *testing.T) {
			s, _ := newTestSurface(t, 10, 5)
			expectPanic(t, ErrResponseRequired, func() {
				DrawInteractive(s.Canvas(LayerContent), NewID("b"), rect, responseFill, sense)
			})
		})
	}
}

// An opaque target painted over a clickable one takes the pointer.
func TestSurface_OpaqueBlocksClicks(t *testing.T) {
	s, _ := newTestSurface(t, 10, 3)
	rect := Rect{W: 4, H: 2}
	s.addHit(NewID("under"), rect, SenseClick)
	s.addHit(NewID("over"), rect, SenseOpaque)
	s.EndFrame()

	click(s, 1, 1)
	r := s.respond(NewID("under"), rect, SenseClick, true)
	if r.Hovered || r.Clicked {
		t.Errorf("covered target got %+v", *r)
	}
}

type cell struct {
	r  rune
	st tcell.Style
}

type cellPainter map[Point]cell

func (p cellPainter) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	p[Point{X: x, Y: y}] = cell{primary, style}
}

func (p cellPainter) Expand(x, y bool) {}

// Every attribute resolves from its highest tier on its own.
func TestDrawBackground_AllTiers(t *testing.T) {
	v, _ := NewVisuals(MarianaPalette())
	fills := [3]Color{tcell.NewRGBColor(200, 0, 0), tcell.NewRGBColor(0, 200, 0), tcell.NewRGBColor(0, 0, 200)}
	strokes := [3]Color{tcell.NewRGBColor(1, 1, 1), tcell.NewRGBColor(2, 2, 2), tcell.NewRGBColor(3, 3, 3)}
	widths := [3]int{1, 2, 3}
	radii := [3]int{1, 0, 0}

	tiers := func(top int) Background {
		bg := NewBackground().
			WithFillByVisuals(func(*Visuals, *WidgetVisuals) Color { return fills[0] }).
			WithStrokeByVisuals(func(*Visuals, *WidgetVisuals) Color { return strokes[0] }).
			WithStrokeWidthByVisuals(func(*Visuals, *WidgetVisuals) int { return widths[0] }).
			WithRadiusByVisuals(func(*Visuals, *WidgetVisuals) int { return radii[0] })
		if top >= 1 {
			bg = bg.
				WithFillByResponse(func(*Visuals, *WidgetVisuals, *Response) Color { return fills[1] }).
				WithStrokeByResponse(func(*Visuals, *WidgetVisuals, *Response) Color { return strokes[1] }).
				WithStrokeWidthByResponse(func(*Visuals, *WidgetVisuals, *Response) int { return widths[1] }).
				WithRadiusByResponse(func(*Visuals, *WidgetVisuals, *Response) int { return radii[1] })
		}
		if top >= 2 {
			bg = bg.WithFill(fills[2]).WithStroke(strokes[2]).WithStrokeWidth(widths[2]).WithRadius(radii[2])
		}
		return bg
	}

	tests := []struct {
		name         string
		top          int
		corner, edge rune
	}{
		{"visuals", 0, '╭', '─'},
		{"response", 1, '┏', '━'},
		{"constant", 2, '╔', '═'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := cellPainter{}
			drawBackground(p, Rect{W: 4, H: 3}, tiers(tt.top), &v, &Response{Hovered: true})

			inner := p[Point{X: 1, Y: 1}]
			if _, bg, _ := inner.st.Decompose(); inner.r != ' ' || bg != fills[tt.top] {
				t.Errorf("inner cell = %q on %v, want fill %v", inner.r, bg, fills[tt.top])
			}
			corner := p[Point{}]
			if fg, _, _ := corner.st.Decompose(); corner.r != tt.corner || fg != strokes[tt.top] {
				t.Errorf("corner = %q in %v, want %q in %v", corner.r, fg, tt.corner, strokes[tt.top])
			}
			if got := p[Point{X: 1}].r; got != tt.edge {
				t.Errorf("top edge = %q, want %q", got, tt.edge)
			}
		})
	}
}
