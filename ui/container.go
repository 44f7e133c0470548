package ui

import (
	"github.com/cansyan/flexui/layout"
)

// Label adds a wrapping text leaf in the theme's text style.
func (b *Builder) Label(text string, opts ...NodeOption) *Response {
	return b.Add(&Label{Text: text, Style: b.Visuals().Text, Wrap: true}, opts...)
}

// Heading adds a single line of text in the heading style.
func (b *Builder) Heading(text string, opts ...NodeOption) *Response {
	return b.Add(&Label{Text: text, Style: b.Visuals().Heading}, opts...)
}

// Separator adds a horizontal line that stretches across its container.
func (b *Builder) Separator(opts ...NodeOption) {
	v := b.Visuals()
	b.Add(&Separator{Style: Style{FG: v.Noninteractive.BgStroke}}, opts...)
}

// Spacer adds an empty leaf that grows into the free space of a flex
// container.
func (b *Builder) Spacer() {
	b.Add(Spacer{}, WithStyle(Grow(1)))
}

// ProgressBar adds a bar filled to fraction.
func (b *Builder) ProgressBar(fraction float64, opts ...NodeOption) {
	v := b.Visuals()
	b.Add(&ProgressBar{Fraction: fraction, Fill: v.Accent, Track: v.Noninteractive.BgStroke}, opts...)
}

// ButtonBackground fills with the widget visuals of the button's state.
func ButtonBackground() Background {
	return NewBackground().WithFillByResponse(func(v *Visuals, w *WidgetVisuals, r *Response) Color {
		return w.BgFill
	})
}

// Button adds a clickable node holding text, padded by one cell left and
// right, and returns its response.
func (b *Builder) Button(text string, opts ...NodeOption) *Response {
	return b.button(text, false, opts)
}

// Tab is a button drawn in bold accent while selected.
func (b *Builder) Tab(text string, selected bool, opts ...NodeOption) *Response {
	return b.button(text, selected, opts)
}

func (b *Builder) button(text string, selected bool, opts []NodeOption) *Response {
	opts = append([]NodeOption{
		WithSense(SenseClick),
		WithBackground(ButtonBackground()),
		WithStyle(PaddingXY(1, 0)),
	}, opts...)
	v := b.Visuals()
	return b.Node(func(b *Builder) {
		b.Add(&Button{Text: text, Visuals: v, Selected: selected})
	}, opts...)
}

// Checkbox adds a toggle bound to checked. Clicking flips the value.
func (b *Builder) Checkbox(text string, checked *bool, opts ...NodeOption) *Response {
	opts = append([]NodeOption{
		WithSense(SenseClick),
		WithBackground(ButtonBackground()),
		WithStyle(PaddingXY(1, 0)),
	}, opts...)
	v := b.Visuals()
	h := b.Begin(opts...)
	r := b.f.arena.get(h).response
	if r.Clicked {
		*checked = !*checked
	}
	b.Add(&Checkbox{Text: text, Checked: *checked, Visuals: v})
	b.End(h)
	return r
}

// Clickable adds a sensing container painted with bg and filled by fn.
func (b *Builder) Clickable(bg Background, fn func(b *Builder), opts ...NodeOption) *Response {
	opts = append([]NodeOption{WithSense(SenseClick), WithBackground(bg)}, opts...)
	return b.Node(fn, opts...)
}

// Panel adds a bordered container with the theme's panel fill.
func (b *Builder) Panel(fn func(b *Builder), opts ...NodeOption) {
	v := b.Visuals()
	bg := NewBackground().WithFill(v.PanelFill).WithBorder()
	opts = append([]NodeOption{WithBackground(bg), WithStyle(Bordered(), Column())}, opts...)
	b.Node(fn, opts...)
}

// ScrollArea adds a container that scrolls its content on the given axes.
// The area grows into the free space of its parent. Content is laid out in
// a column.
func (b *Builder) ScrollArea(x, y bool, fn func(b *Builder), opts ...NodeOption) {
	opts = append([]NodeOption{WithStyle(
		Column(),
		Scroll(x, y),
		Grow(1),
		Basis(layout.Length(0)),
		MinSize(layout.Length(0), layout.Length(0)),
	)}, opts...)
	b.Node(fn, opts...)
}
