package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/cansyan/flexui/layout"
	"github.com/cansyan/flexui/ui"
	"github.com/gdamore/tcell/v2"
	"golang.design/x/clipboard"
)

type demo struct {
	name string
	show func(b *ui.Builder, st *state)
}

var demos = []demo{
	{"Sticky grid", stickyGrid},
	{"Virtual grid", virtualGrid},
	{"Backgrounds", backgrounds},
	{"Grow", growDemo},
	{"Overflow", overflowDemo},
	{"Holy grail", holyGrail},
}

type state struct {
	active  int
	status  string
	clicks  int
	rounded bool
	// copy writes text to the system clipboard. It is nil when the
	// clipboard is unavailable.
	copy func(text string)
}

func newState() *state {
	return &state{status: "Ready"}
}

func (st *state) frame(s *ui.Surface) {
	w, h := s.Screen.Size()
	ui.Show(s, ui.NewID("flexui demo"), ui.Rect{W: w, H: h}, st.build)
}

func (st *state) build(b *ui.Builder) {
	v := b.Visuals()
	if err := b.Style(b.Current(), ui.Row()); err != nil {
		st.status = err.Error()
	}

	b.Node(func(b *ui.Builder) {
		b.Heading("flexui")
		b.Separator()
		for i, d := range demos {
			label := "  " + d.name
			if i == st.active {
				label = "▸ " + d.name
			}
			if b.Tab(label, i == st.active, ui.WithKey("nav", d.name)).Clicked {
				st.active = i
			}
		}
		b.Spacer()
		b.Separator()
		b.Label(st.status)
	}, ui.WithStyle(
		ui.Column(),
		ui.Width(layout.Length(24)),
		ui.Shrink(0),
		ui.PaddingXY(1, 0),
	), ui.WithBackground(ui.NewBackground().WithFill(v.PanelFill)))

	b.Node(func(b *ui.Builder) {
		demos[st.active].show(b, st)
	}, ui.WithKey("demo", demos[st.active].name), ui.WithStyle(
		ui.Column(),
		ui.Grow(1),
		ui.Basis(layout.Length(0)),
		ui.MinSize(layout.Length(0), layout.Length(0)),
		ui.PaddingXY(1, 0),
	))
}

// stickyGrid is a scrolling grid with a pinned header row, a pinned header
// column and a corner cell pinned on both axes.
func stickyGrid(b *ui.Builder, st *state) {
	const rows, columns = 16, 16
	v := b.Visuals()
	headerBg := ui.NewBackground().
		WithFill(ui.Blend(v.PanelFill, v.Accent, 0.35)).
		WithBorder().
		WithRadius(0)
	cellBg := ui.NewBackground().WithBorder().WithRadius(0)
	cell := func(row, col int) ui.StylePatch {
		return ui.GridRow(layout.Line(row)).
			Merge(ui.GridColumn(layout.Line(col))).
			Merge(ui.Column()).
			Merge(ui.AlignItems(layout.AlignCenter)).
			Merge(ui.Bordered()).
			Merge(ui.PaddingXY(1, 0))
	}

	b.Heading("Sticky header and column in grid")
	b.Node(func(b *ui.Builder) {
		for i := 1; i < rows; i++ {
			for j := 1; j < columns; j++ {
				b.Node(func(b *ui.Builder) {
					b.Label(fmt.Sprintf("Cell %d %d", i, j))
				}, ui.WithStyle(cell(i+1, j+1)), ui.WithBackground(cellBg))
			}
		}
		for j := 1; j < columns; j++ {
			b.Node(func(b *ui.Builder) {
				b.Label(fmt.Sprintf("Header %d", j))
			}, ui.WithSticky(ui.StickyY), ui.WithStyle(cell(1, j+1)), ui.WithBackground(headerBg))
		}
		for i := 1; i < rows; i++ {
			b.Node(func(b *ui.Builder) {
				b.Label(fmt.Sprintf("Row header %d", i))
			}, ui.WithSticky(ui.StickyX), ui.WithStyle(cell(i+1, 1)), ui.WithBackground(headerBg))
		}
		b.Node(func(b *ui.Builder) {
			b.Label("Top left")
		}, ui.WithSticky(ui.StickyBoth), ui.WithStyle(cell(1, 1)), ui.WithBackground(headerBg))
	}, ui.WithStyle(
		ui.Columns(layout.Repeat(columns, layout.AutoTrack())...),
		ui.Scroll(true, true),
		ui.Grow(1),
		ui.Basis(layout.Length(0)),
		ui.MinSize(layout.Length(0), layout.Length(0)),
	))
}

// virtualGrid shows 100,000 rows of which only the visible ones are built.
// Clicking a cell copies its text to the clipboard.
func virtualGrid(b *ui.Builder, st *state) {
	v := b.Visuals()
	headerBg := ui.NewBackground().WithFill(ui.Blend(v.PanelFill, v.Accent, 0.35))
	params := ui.VirtualParams{HeaderRows: 2, TotalRows: 100_000}

	b.Heading("Virtual grid rows")
	var w ui.Window
	b.Node(func(b *ui.Builder) {
		w = ui.VirtualRows(b, params, func(b *ui.Builder, r ui.RowInfo) {
			if r.Header {
				st.header(b, r, headerBg)
				return
			}
			if r.Index%2 == 0 {
				for col := 1; col <= 2; col++ {
					st.copyButton(b, fmt.Sprintf("Cell %d %d", r.Index, col), ui.WithStyle(r.GridRowPatch()), r.Key(col))
				}
				return
			}
			st.copyButton(b, fmt.Sprintf("Cell %d - Colspan 2", r.Index),
				ui.WithStyle(r.GridRowPatch(), ui.GridColumn(layout.Span(2))), r.Key("span"))
		})
	}, ui.WithStyle(
		ui.Columns(layout.AutoTrack(), layout.AutoTrack()),
		ui.AutoRows(layout.MinContentTrack()),
		ui.Gap(1, 0),
		ui.Scroll(false, true),
		ui.Grow(1),
		ui.Basis(layout.Length(0)),
		ui.MinSize(layout.Length(0), layout.Length(0)),
	))

	info := fmt.Sprintf("%d rows", w.Total)
	if w.Count > 0 {
		info = fmt.Sprintf("Rows %d-%d of %d", w.First, w.First+w.Count-1, w.Total)
	}
	b.Label(info, ui.WithStyle(ui.Shrink(0)))
}

func (st *state) header(b *ui.Builder, r ui.RowInfo, bg ui.Background) {
	if r.Index == 0 {
		b.Node(func(b *ui.Builder) {
			b.Label("Colspan 2 header")
		}, r.Key(), ui.WithSticky(ui.StickyY), ui.WithBackground(bg), ui.WithStyle(
			r.GridRowPatch(),
			ui.GridColumn(layout.Span(2)),
			ui.Column(),
			ui.AlignItems(layout.AlignCenter),
		))
		return
	}
	for col := range 2 {
		b.Node(func(b *ui.Builder) {
			b.Label(fmt.Sprintf("Header %d %d", r.Index+1, col))
		}, r.Key(col), ui.WithSticky(ui.StickyY), ui.WithBackground(bg), ui.WithStyle(r.GridRowPatch()))
	}
}

func (st *state) copyButton(b *ui.Builder, text string, opts ...ui.NodeOption) {
	if !b.Button(text, opts...).Clicked {
		return
	}
	if st.copy == nil {
		st.status = "Clipboard unavailable"
		return
	}
	st.copy(text)
	st.status = "Copied " + text
}

// backgrounds shows each way a background attribute can be resolved.
func backgrounds(b *ui.Builder, st *state) {
	v := b.Visuals()
	swatch := func(title string, bg ui.Background, opts ...ui.NodeOption) {
		opts = append(opts, ui.WithBackground(bg), ui.WithStyle(ui.Bordered(), ui.PaddingXY(1, 0)))
		b.Node(func(b *ui.Builder) { b.Label(title) }, opts...)
	}
	radius := 0
	if st.rounded {
		radius = 1
	}

	b.Heading("BACKGROUNDS")
	b.Node(func(b *ui.Builder) {
		swatch("Constant", ui.NewBackground().WithFill(v.Accent).WithBorder().WithRadius(radius))
		swatch("From theme", ui.NewBackground().
			WithFillByVisuals(func(v *ui.Visuals, w *ui.WidgetVisuals) ui.Color { return w.BgFill }).
			WithBorder().WithRadius(radius))
		swatch("Opaque", ui.NewBackground().WithFill(v.Weak.FG).WithBorder().WithRadius(radius),
			ui.WithSense(ui.SenseOpaque))
		for width := 1; width <= 3; width++ {
			swatch(fmt.Sprintf("Stroke %d", width), ui.NewBackground().WithStrokeWidth(width).WithRadius(radius))
		}
	}, ui.WithStyle(ui.Row(), ui.Gap(1, 0)))

	b.Heading("BUTTONS")
	b.Node(func(b *ui.Builder) {
		hover := ui.ButtonBackground().
			WithStrokeByResponse(func(v *ui.Visuals, w *ui.WidgetVisuals, r *ui.Response) ui.Color {
				if r.Hovered {
					return v.Accent
				}
				return w.BgStroke
			}).
			WithRadius(radius)
		r := b.Clickable(hover, func(b *ui.Builder) {
			b.Label(fmt.Sprintf("Clicked %d times", st.clicks))
		}, ui.WithStyle(ui.Bordered(), ui.PaddingXY(1, 0)))
		if r.Clicked {
			st.clicks++
		}
		if b.Button("Reset").Clicked {
			st.clicks = 0
		}
		b.Checkbox("Rounded corners", &st.rounded)
	}, ui.WithStyle(ui.Row(), ui.Gap(1, 0), ui.AlignItems(layout.AlignCenter)))

	b.ProgressBar(float64(st.clicks%11) / 10)
	b.Separator()
	b.Label("Fill, stroke color, stroke width and radius resolve independently: " +
		"a constant wins over a value computed from the response, which wins over " +
		"one computed from the theme.")
}

// growDemo shares free space between siblings by their grow factors, on
// both axes.
func growDemo(b *ui.Builder, st *state) {
	border := ui.NewBackground().WithBorder()
	grown := func(grow int, opts ...ui.StylePatch) {
		b.Node(func(b *ui.Builder) {
			b.Label(fmt.Sprintf("Grow %d", grow))
		}, ui.WithBackground(border), ui.WithStyle(append([]ui.StylePatch{
			ui.Grow(float64(grow)),
			ui.Bordered(),
			ui.PaddingXY(1, 0),
			ui.AlignItems(layout.AlignCenter),
		}, opts...)...))
	}

	b.Heading("Grow")
	b.Node(func(b *ui.Builder) {
		for grow := range 4 {
			grown(grow)
		}
		b.Node(func(b *ui.Builder) {
			for grow := range 4 {
				grown(grow, ui.Justify(layout.JustifyCenter))
			}
		}, ui.WithBackground(border), ui.WithStyle(
			ui.Row(),
			ui.Grow(6),
			ui.Bordered(),
			ui.Gap(1, 0),
			ui.AlignSelf(layout.AlignStretch),
		))
	}, ui.WithStyle(
		ui.Column(),
		ui.Grow(1),
		ui.Basis(layout.Length(0)),
		ui.MinSize(layout.Length(0), layout.Length(0)),
		ui.AlignItems(layout.AlignEnd),
	))
}

// overflowDemo puts the same long column into boxes that differ only in
// their vertical overflow.
func overflowDemo(b *ui.Builder, st *state) {
	modes := []struct {
		name string
		mode layout.Overflow
	}{
		{"Visible", layout.OverflowVisible},
		{"Hidden", layout.OverflowHidden},
		{"Scroll", layout.OverflowScroll},
	}

	b.Heading("Overflow")
	b.Node(func(b *ui.Builder) {
		for _, m := range modes {
			b.Node(func(b *ui.Builder) {
				for i := range 30 {
					b.Label(fmt.Sprintf("%s %d", m.name, i))
				}
			}, ui.WithKey("overflow", m.name), ui.WithBackground(ui.NewBackground().WithBorder()), ui.WithStyle(
				ui.Column(),
				ui.Overflow(layout.OverflowVisible, m.mode),
				ui.MaxSize(layout.Auto(), layout.Length(12)),
				ui.Bordered(),
				ui.PaddingXY(1, 0),
			))
		}
	}, ui.WithStyle(ui.Row(), ui.Gap(2, 0), ui.AlignItems(layout.AlignStart)))
}

// holyGrail is the classic page layout: header and footer across three
// columns, fixed sidebars and a flexible center.
func holyGrail(b *ui.Builder, st *state) {
	v := b.Visuals()
	area := func(text string, fill ui.Color, row, col layout.Placement) {
		b.Node(func(b *ui.Builder) {
			b.Label(text, ui.WithStyle(ui.Shrink(1)))
		}, ui.WithKey("area", text), ui.WithBackground(ui.NewBackground().WithFill(fill)), ui.WithStyle(
			ui.GridRow(row),
			ui.GridColumn(col),
			ui.Row(),
			ui.Justify(layout.JustifyCenter),
			ui.AlignItems(layout.AlignCenter),
		))
	}

	b.Heading("Holy grail")
	b.Node(func(b *ui.Builder) {
		edge := ui.Blend(v.PanelFill, v.Accent, 0.35)
		side := ui.Blend(v.PanelFill, v.Accent, 0.15)
		area("header", edge, layout.Line(1), layout.Span(3))
		area("left", side, layout.Line(2), layout.Line(1))
		area("content", v.PanelFill, layout.Line(2), layout.Line(2))
		area("right", side, layout.Line(2), layout.Line(3))
		area("footer", edge, layout.Line(3), layout.Span(3))
	}, ui.WithStyle(
		ui.Columns(layout.LengthTrack(12), layout.Fr(1), layout.LengthTrack(12)),
		ui.Rows(layout.LengthTrack(3), layout.Fr(1), layout.LengthTrack(3)),
		ui.Grow(1),
		ui.Basis(layout.Length(0)),
		ui.MinSize(layout.Length(0), layout.Length(0)),
	))
}

func main() {
	themePath := flag.String("theme", "", "load colors from a TOML theme `file`")
	start := flag.Int("demo", 0, "index of the demo to open")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	st := newState()
	st.active = max(0, min(*start, len(demos)-1))
	if err := clipboard.Init(); err == nil {
		st.copy = func(text string) { clipboard.Write(clipboard.FmtText, []byte(text)) }
	}

	app := ui.NewApp(screen, st.frame)
	if *themePath != "" {
		v, err := ui.LoadTheme(*themePath, ui.MarianaPalette())
		if err != nil {
			log.Fatal(err)
		}
		app.Surface.Visuals = v
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
