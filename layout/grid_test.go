package layout

import (
	"math"
	"testing"
)

func gridStyle(cols ...Track) Style {
	s := DefaultStyle()
	s.Display = DisplayGrid
	s.GridTemplateColumns = cols
	return s
}

func TestGrid_AutoPlacementRowMajor(t *testing.T) {
	var b treeBuilder
	root := b.add(-1, gridStyle(Repeat(3, Fr(1))...))
	var cells []int
	for range 6 {
		cells = append(cells, b.leaf(root, DefaultStyle(), 2, 1))
	}

	out := solve(t, &b, 30, math.Inf(1))
	if r := out[root].Rect; r.W != 30 || r.H != 2 {
		t.Fatalf("grid = %+v, want 30x2", r)
	}
	for i, c := range cells {
		want := Rect{X: float64(i%3) * 10, Y: float64(i / 3), W: 10, H: 1}
		if out[c].Rect != want {
			t.Errorf("cell %d = %+v, want %+v", i, out[c].Rect, want)
		}
	}
}

func TestGrid_FullSpanWithGap(t *testing.T) {
	var b treeBuilder
	gs := gridStyle(LengthTrack(4), LengthTrack(6), LengthTrack(5))
	gs.Gap = Size{W: 1}
	root := b.add(-1, gs)
	hs := DefaultStyle()
	hs.GridColumn = FullSpan()
	header := b.leaf(root, hs, 3, 1)
	next := b.leaf(root, DefaultStyle(), 1, 1)

	out := solve(t, &b, 40, math.Inf(1))
	if r := out[header].Rect; r.X != 0 || r.W != 17 {
		t.Errorf("header = %+v, want x=0 w=17", r)
	}
	if r := out[next].Rect; r.X != 0 || r.Y != 1 || r.W != 4 {
		t.Errorf("next = %+v, want x=0 y=1 w=4", r)
	}
}

func TestGrid_ExplicitPlacementSkipsOccupied(t *testing.T) {
	var b treeBuilder
	root := b.add(-1, gridStyle(Repeat(3, LengthTrack(2))...))
	auto1 := b.leaf(root, DefaultStyle(), 1, 1)
	ps := DefaultStyle()
	ps.GridRow = Line(1)
	ps.GridColumn = Line(2)
	pinned := b.leaf(root, ps, 1, 1)
	auto2 := b.leaf(root, DefaultStyle(), 1, 1)
	auto3 := b.leaf(root, DefaultStyle(), 1, 1)

	out := solve(t, &b, 40, math.Inf(1))
	tests := []struct {
		name string
		node int
		x, y float64
	}{
		{"auto1", auto1, 0, 0},
		{"pinned", pinned, 2, 0},
		{"auto2", auto2, 4, 0},
		{"auto3", auto3, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := out[tt.node].Rect; r.X != tt.x || r.Y != tt.y {
				t.Errorf("rect = %+v, want (%v,%v)", r, tt.x, tt.y)
			}
		})
	}
}

func TestGrid_RowLockedItemTakesFirstFreeColumn(t *testing.T) {
	var b treeBuilder
	root := b.add(-1, gridStyle(Repeat(2, LengthTrack(3))...))
	first := b.leaf(root, DefaultStyle(), 1, 1)
	rs := DefaultStyle()
	rs.GridRow = Line(1)
	locked := b.leaf(root, rs, 1, 1)

	out := solve(t, &b, 20, math.Inf(1))
	if r := out[locked].Rect; r.X != 0 || r.Y != 0 {
		t.Errorf("locked = %+v, want (0,0)", r)
	}
	if r := out[first].Rect; r.X != 3 || r.Y != 0 {
		t.Errorf("first = %+v, want (3,0)", r)
	}
}

func TestGrid_ContentSizedColumns(t *testing.T) {
	var b treeBuilder
	root := b.add(-1, gridStyle(MinContentTrack(), MinContentTrack()))
	b.leaf(root, DefaultStyle(), 3, 1)
	b.leaf(root, DefaultStyle(), 7, 1)
	b.leaf(root, DefaultStyle(), 5, 1)
	last := b.leaf(root, DefaultStyle(), 2, 1)

	out := solve(t, &b, 40, math.Inf(1))
	if r := out[last].Rect; r.X != 5 || r.W != 7 {
		t.Errorf("last = %+v, want x=5 w=7", r)
	}
	if out[root].ContentSize.W != 12 {
		t.Errorf("content width = %v, want 12", out[root].ContentSize.W)
	}
}

func TestGrid_SpanningItemGrowsTracks(t *testing.T) {
	var b treeBuilder
	root := b.add(-1, gridStyle(MinContentTrack(), MinContentTrack()))
	b.leaf(root, DefaultStyle(), 2, 1)
	second := b.leaf(root, DefaultStyle(), 2, 1)
	ss := DefaultStyle()
	ss.GridColumn = Span(2)
	b.leaf(root, ss, 10, 1)

	out := solve(t, &b, 40, math.Inf(1))
	if r := out[second].Rect; r.X != 5 || r.W != 5 {
		t.Errorf("second = %+v, want x=5 w=5", r)
	}
}

func TestGrid_RowHeightFollowsColumnWidth(t *testing.T) {
	var b treeBuilder
	root := b.add(-1, gridStyle(LengthTrack(5)))
	txt := b.text(root, DefaultStyle(), 12)
	below := b.leaf(root, DefaultStyle(), 1, 1)

	out := solve(t, &b, 40, math.Inf(1))
	if r := out[txt].Rect; r.W != 5 || r.H != 3 {
		t.Errorf("text = %+v, want 5x3", r)
	}
	if out[below].Rect.Y != 3 {
		t.Errorf("below.Y = %v, want 3", out[below].Rect.Y)
	}
}

func TestGrid_AlignCenterInCell(t *testing.T) {
	var b treeBuilder
	gs := gridStyle(LengthTrack(10))
	gs.GridTemplateRows = []Track{LengthTrack(3)}
	gs.AlignItems = AlignCenter
	root := b.add(-1, gs)
	c := b.leaf(root, DefaultStyle(), 4, 1)

	out := solve(t, &b, 40, 10)
	if want := (Rect{X: 3, Y: 1, W: 4, H: 1}); out[c].Rect != want {
		t.Errorf("rect = %+v, want %+v", out[c].Rect, want)
	}
}

func TestGrid_FixedRowsKeepHeightInsideScroll(t *testing.T) {
	var b treeBuilder
	gs := gridStyle(Fr(1))
	gs.Size.H = Length(4)
	gs.Overflow = OverflowXY{Y: OverflowScroll}
	gs.GridAutoRows = LengthTrack(1)
	root := b.add(-1, gs)
	for range 20 {
		b.leaf(root, DefaultStyle(), 1, 1)
	}

	out := solve(t, &b, 10, 24)
	if out[root].Rect.H != 4 {
		t.Errorf("viewport = %v, want 4", out[root].Rect.H)
	}
	if out[root].ContentSize.H != 20 {
		t.Errorf("content height = %v, want 20", out[root].ContentSize.H)
	}
}
