package ui

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// gridPainter records the last rune set at each cell.
type gridPainter map[Point]rune

func (g gridPainter) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	g[Point{X: x, Y: y}] = primary
}

func (g gridPainter) Expand(x, y bool) {}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"exact", "hello world", 11, []string{"hello world"}},
		{"break at space", "hello world", 5, []string{"hello", "world"}},
		{"long word", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"min content keeps words", "abcdefgh ij", 0, []string{"abcdefgh", "ij"}},
		{"newline", "a\nb", 10, []string{"a", "b"}},
		{"blank line", "a\n\nb", 10, []string{"a", "", "b"}},
		{"wide runes", "日本語", 4, []string{"日本", "語"}},
		{"trailing space", "ab ", 10, []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestDrawString(t *testing.T) {
	g := gridPainter{}
	n := DrawString(g, 0, 0, 4, "a日本b", tcell.StyleDefault)
	// 日 takes two cells, so 本 does not fit.
	if n != 3 {
		t.Errorf("used %d cells, want 3", n)
	}
	if g[Point{X: 0}] != 'a' || g[Point{X: 1}] != '日' {
		t.Errorf("cells = %v", g)
	}
	if _, ok := g[Point{X: 3}]; ok {
		t.Error("drew past the cut")
	}
}

func TestDrawStroke(t *testing.T) {
	tests := []struct {
		name          string
		width, radius int
		corner        rune
		horizontal    rune
		vertical      rune
	}{
		{"light", 1, 0, '┌', '─', '│'},
		{"rounded", 1, 1, '╭', '─', '│'},
		{"heavy", 2, 1, '┏', '━', '┃'},
		{"double", 3, 0, '╔', '═', '║'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridPainter{}
			DrawStroke(g, Rect{X: 1, Y: 1, W: 4, H: 3}, tt.width, tt.radius, tcell.StyleDefault)
			if got := g[Point{X: 1, Y: 1}]; got != tt.corner {
				t.Errorf("corner = %q, want %q", got, tt.corner)
			}
			if got := g[Point{X: 2, Y: 3}]; got != tt.horizontal {
				t.Errorf("bottom edge = %q, want %q", got, tt.horizontal)
			}
			if got := g[Point{X: 4, Y: 2}]; got != tt.vertical {
				t.Errorf("right edge = %q, want %q", got, tt.vertical)
			}
			if len(g) != 10 {
				t.Errorf("drew %d cells, want 10", len(g))
			}
		})
	}

	g := gridPainter{}
	DrawStroke(g, Rect{W: 1, H: 5}, 1, 0, tcell.StyleDefault)
	DrawStroke(g, Rect{W: 5, H: 5}, 0, 0, tcell.StyleDefault)
	if len(g) != 0 {
		t.Errorf("drew %d cells for a degenerate stroke", len(g))
	}
}

func TestScrollThumb(t *testing.T) {
	tests := []struct {
		track, viewport, content, offset int
		pos, size                        int
	}{
		{10, 10, 5, 0, 0, 10},
		{10, 10, 20, 0, 0, 5},
		{10, 10, 20, 5, 2, 5},
		{10, 10, 20, 10, 5, 5},
		{10, 10, 1000, 990, 9, 1},
	}
	for _, tt := range tests {
		pos, size := scrollThumb(tt.track, tt.viewport, tt.content, tt.offset)
		if pos != tt.pos || size != tt.size {
			t.Errorf("scrollThumb(%d, %d, %d, %d) = %d, %d; want %d, %d",
				tt.track, tt.viewport, tt.content, tt.offset, pos, size, tt.pos, tt.size)
		}
	}
}

func TestCanvas_Clip(t *testing.T) {
	s, screen := newTestSurface(t, 10, 3)
	c := s.Canvas(LayerContent).WithClip(Rect{X: 2, W: 3, H: 1})
	DrawString(c, 0, 0, 10, "abcdefg", tcell.StyleDefault)
	s.Flush()
	if got := screenLine(screen, 0); got != "  cde" {
		t.Errorf("line 0 = %q, want %q", got, "  cde")
	}
}

// Text painted without a background over a filled cell keeps the fill.
func TestSurface_FlushKeepsBackground(t *testing.T) {
	s, screen := newTestSurface(t, 10, 3)
	fill := tcell.NewRGBColor(10, 20, 30)
	FillRect(s.Canvas(LayerContent), Rect{W: 4, H: 1}, tcell.StyleDefault.Background(fill))
	s.Canvas(LayerOverlay).SetContent(1, 0, 'x', nil, tcell.StyleDefault.Foreground(tcell.ColorRed))
	s.Flush()

	r, _, st, _ := screen.GetContent(1, 0)
	if r != 'x' {
		t.Errorf("rune = %q, want 'x'", r)
	}
	fg, bg, _ := st.Decompose()
	if bg != fill {
		t.Errorf("background = %v, want %v", bg, fill)
	}
	if fg != tcell.ColorRed {
		t.Errorf("foreground = %v, want red", fg)
	}
}
