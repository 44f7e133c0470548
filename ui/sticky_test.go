package ui

import (
	"testing"

	"github.com/cansyan/flexui/layout"
)

func TestClampSticky(t *testing.T) {
	viewport := Rect{W: 10, H: 5}
	wide := Rect{X: -20, Y: -20, W: 100, H: 100}
	tests := []struct {
		name   string
		rect   Rect
		sticky Sticky
		limit  Rect
		want   Rect
	}{
		{"not sticky", Rect{X: -7, Y: -4, W: 5, H: 1}, Sticky{}, wide, Rect{X: -7, Y: -4, W: 5, H: 1}},
		{"y scrolled out", Rect{X: 3, Y: -4, W: 5, H: 1}, StickyY, wide, Rect{X: 3, W: 5, H: 1}},
		{"x scrolled out", Rect{X: -7, Y: 2, W: 5, H: 1}, StickyX, wide, Rect{Y: 2, W: 5, H: 1}},
		{"both scrolled out", Rect{X: -7, Y: -4, W: 5, H: 1}, StickyBoth, wide, Rect{W: 5, H: 1}},
		{"still in view", Rect{Y: 3, W: 5, H: 1}, StickyY, wide, Rect{Y: 3, W: 5, H: 1}},
		{"held by container end", Rect{Y: -4, W: 5, H: 1}, StickyY, Rect{Y: -20, W: 10, H: 19}, Rect{Y: -2, W: 5, H: 1}},
		{"container scrolled away", Rect{Y: -30, W: 5, H: 1}, StickyY, Rect{Y: -30, W: 10, H: 3}, Rect{Y: -28, W: 5, H: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampSticky(tt.rect, tt.sticky, viewport, tt.limit)
			if got != tt.want {
				t.Errorf("ClampSticky() = %+v, want %+v", got, tt.want)
			}
			if again := ClampSticky(got, tt.sticky, viewport, tt.limit); again != got {
				t.Errorf("clamping twice = %+v, want %+v", again, got)
			}
		})
	}
}

// A node sticky on x keeps the scrolled y of its solved position.
func TestShow_StickyXKeepsScrolledY(t *testing.T) {
	s, _ := newTestSurface(t, 20, 5)
	root := NewID("t")
	s.Memory.SetScrollOffset(root.WithOrdinal(0), Point{X: 5, Y: 3})

	var h NodeHandle
	f := Show(s, root, Rect{W: 20, H: 5}, func(b *Builder) {
		b.Node(func(b *Builder) {
			for i := range 6 {
				b.Node(func(b *Builder) {
					if i == 4 {
						h = b.Begin(withWidget(NewLabel("pin")), WithSticky(StickyX),
							WithStyle(Width(layout.Length(5))))
						b.End(h)
					}
				}, WithStyle(Row(), Width(layout.Length(30)), Height(layout.Length(1))))
			}
		}, WithStyle(Column(), Scroll(true, true), Size(10, 3)))
	})

	solved := f.SolvedRect(h)
	if solved.X != 0 || solved.Y != 4 {
		t.Fatalf("solved rect = %+v, want x=0 y=4", solved)
	}
	if got, want := f.Rect(h), (Rect{X: 0, Y: 1, W: 5, H: 1}); got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
}

func TestShow_StickyHeldInsideParent(t *testing.T) {
	s, _ := newTestSurface(t, 10, 4)
	root := NewID("t")
	s.Memory.SetScrollOffset(root.WithOrdinal(0), Point{Y: 4})

	var h NodeHandle
	f := Show(s, root, Rect{W: 10, H: 4}, func(b *Builder) {
		b.Node(func(b *Builder) {
			// A section of three rows with a sticky title, then filler.
			b.Node(func(b *Builder) {
				h = b.Begin(withWidget(NewLabel("title")), WithSticky(StickyY))
				b.End(h)
				b.Add(NewLabel("a"))
				b.Add(NewLabel("b"))
			}, WithStyle(Column()))
			b.Node(nil, WithStyle(Height(layout.Length(10))))
		}, WithStyle(Column(), Scroll(false, true), Size(10, 4)))
	})

	// The section covers rows 0 to 2 and is scrolled up by 4, so the title
	// stops at the last row of its section.
	if got, want := f.Rect(h), (Rect{Y: -2, W: 10, H: 1}); got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
}
