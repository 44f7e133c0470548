package ui

import (
	"math"
	"testing"

	"github.com/cansyan/flexui/layout"
)

// measureWidget measures w as the only node of a fresh frame. hint is the
// resolved width of a previous sub-pass, or -1 for none.
func measureWidget(w Widget, hint int) IntrinsicSize {
	f := &Frame{hints: make(map[ID]int)}
	f.arena.reset()
	h := f.arena.alloc(-1, NewID("m"))
	f.arena.get(h).widget = w
	if hint >= 0 {
		f.hints[NewID("m")] = hint
	}
	return f.Measure(h)
}

func TestMeasure_Label(t *testing.T) {
	tests := []struct {
		name     string
		label    *Label
		hint     int
		min, max layout.Size
		pref     layout.Size
	}{
		{
			name:  "single line",
			label: NewLabel("hello"),
			hint:  -1,
			min:   layout.Size{W: 5, H: 1},
			max:   layout.Size{W: 5, H: 1},
		},
		{
			name:  "explicit lines",
			label: NewLabel("ab\nabcd"),
			hint:  -1,
			min:   layout.Size{W: 4, H: 2},
			max:   layout.Size{W: 4, H: 2},
		},
		{
			name:  "wrapping",
			label: &Label{Text: "hello big world", Wrap: true},
			hint:  9,
			min:   layout.Size{W: 5, H: 3},
			max:   layout.Size{W: 15, H: 1},
			pref:  layout.Size{W: 9, H: 2},
		},
		{
			name:  "wide runes",
			label: NewLabel("日本"),
			hint:  -1,
			min:   layout.Size{W: 4, H: 1},
			max:   layout.Size{W: 4, H: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := measureWidget(tt.label, tt.hint)
			if in.Min != tt.min {
				t.Errorf("Min = %+v, want %+v", in.Min, tt.min)
			}
			if in.Max != tt.max {
				t.Errorf("Max = %+v, want %+v", in.Max, tt.max)
			}
			if in.HasHint != (tt.hint >= 0) {
				t.Errorf("HasHint = %v", in.HasHint)
			}
			if in.HasHint && in.Preferred != tt.pref {
				t.Errorf("Preferred = %+v, want %+v", in.Preferred, tt.pref)
			}
			if in.ExpandX || in.ExpandY {
				t.Error("label reported expansion")
			}
		})
	}
}

func TestMeasure_SeparatorExpands(t *testing.T) {
	in := measureWidget(&Separator{}, -1)
	if !in.ExpandX || in.ExpandY {
		t.Errorf("expand = %v %v, want x only", in.ExpandX, in.ExpandY)
	}
	if want := (layout.Size{W: 1, H: 1}); in.Min != want || in.Max != want {
		t.Errorf("footprint = %+v %+v, want %+v", in.Min, in.Max, want)
	}

	fn := (&Frame{}).measureFunc(in)
	if got := fn(12); got != (layout.Size{W: 12, H: 1}) {
		t.Errorf("measure(12) = %+v, want 12x1", got)
	}
	if got := fn(math.Inf(1)); got != (layout.Size{W: 1, H: 1}) {
		t.Errorf("measure(inf) = %+v, want 1x1", got)
	}
}

func TestMeasure_Cached(t *testing.T) {
	calls := 0
	w := WidgetFunc(func(p Painter, rect Rect, r *Response) {
		calls++
		p.SetContent(rect.X, rect.Y, 'x', nil, DefaultStyle.Apply())
	})
	f := &Frame{hints: make(map[ID]int)}
	f.arena.reset()
	h := f.arena.alloc(-1, NewID("m"))
	f.arena.get(h).widget = w
	f.Measure(h)
	n := calls
	f.Measure(h)
	if calls != n {
		t.Errorf("second Measure drew %d more times", calls-n)
	}
}

func TestFrame_MeasureFunc(t *testing.T) {
	in := IntrinsicSize{
		Min: layout.Size{W: 3, H: 4},
		Max: layout.Size{W: 15, H: 1},
	}
	hinted := in
	hinted.Preferred = layout.Size{W: 7, H: 2}
	hinted.HintWidth = 7
	hinted.HasHint = true

	tests := []struct {
		name      string
		in        IntrinsicSize
		avail     float64
		want      layout.Size
		estimated bool
	}{
		{"unbounded", in, math.Inf(1), layout.Size{W: 15, H: 1}, false},
		{"wider than max", in, 20, layout.Size{W: 15, H: 1}, false},
		{"narrower than min", in, 2, layout.Size{W: 3, H: 4}, false},
		{"zero", in, 0, layout.Size{W: 3, H: 4}, false},
		{"between estimates", in, 7, layout.Size{W: 7, H: 3}, true},
		{"between at hint", hinted, 7, layout.Size{W: 7, H: 2}, false},
		{"between off hint", hinted, 5, layout.Size{W: 5, H: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Frame{}
			got := f.measureFunc(tt.in)(tt.avail)
			if got != tt.want {
				t.Errorf("measure(%v) = %+v, want %+v", tt.avail, got, tt.want)
			}
			if f.estimated != tt.estimated {
				t.Errorf("estimated = %v, want %v", f.estimated, tt.estimated)
			}
		})
	}
}
