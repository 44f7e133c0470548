package ui

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	hLine = '─'
	vLine = '│'
)

// Label is a block of text. With Wrap set, lines longer than the rect are
// broken at spaces; otherwise they are cut.
type Label struct {
	Text  string
	Style Style
	Wrap  bool
}

func NewLabel(text string) *Label {
	return &Label{Text: text, Style: DefaultStyle}
}

func (l *Label) lines(width int) []string {
	if l.Wrap {
		return wrapText(l.Text, width)
	}
	return strings.Split(l.Text, "\n")
}

func (l *Label) Draw(p Painter, rect Rect, r *Response) {
	st := l.Style.Apply()
	for i, line := range l.lines(rect.W) {
		if i >= rect.H {
			break
		}
		DrawString(p, rect.X, rect.Y+i, max(rect.W, runewidth.StringWidth(line)), line, st)
	}
}

// Button is the text of a clickable node. Its colors follow the response:
// text takes the foreground of the widget visuals for the current state.
type Button struct {
	Text     string
	Visuals  *Visuals
	Selected bool
}

func (b *Button) Draw(p Painter, rect Rect, r *Response) {
	w := b.Visuals.Widget(r)
	st := Style{FG: w.FgStroke, BG: tcell.ColorDefault}
	if b.Selected {
		st = st.Merge(Style{FG: b.Visuals.Accent, BG: tcell.ColorDefault, Bold: true})
	}
	DrawString(p, rect.X, rect.Y, max(rect.W, runewidth.StringWidth(b.Text)), b.Text, st.Apply())
}

// Checkbox draws a check mark in brackets followed by its text.
type Checkbox struct {
	Text    string
	Checked bool
	Visuals *Visuals
}

func (c *Checkbox) Draw(p Painter, rect Rect, r *Response) {
	w := c.Visuals.Widget(r)
	box := "[ ] "
	if c.Checked {
		box = "[x] "
	}
	st := Style{FG: w.FgStroke, BG: tcell.ColorDefault}
	n := DrawString(p, rect.X, rect.Y, 4, box, Style{FG: c.Visuals.Accent, BG: tcell.ColorDefault}.Apply())
	DrawString(p, rect.X+n, rect.Y, max(rect.W-n, runewidth.StringWidth(c.Text)), c.Text, st.Apply())
}

// Separator is a line across the space it is given.
type Separator struct {
	Vertical bool
	Style    Style
}

func (d *Separator) Draw(p Painter, rect Rect, r *Response) {
	p.Expand(!d.Vertical, d.Vertical)
	st := d.Style.Apply()
	if !d.Vertical {
		for i := range max(rect.W, 1) {
			p.SetContent(rect.X+i, rect.Y, hLine, nil, st)
		}
	} else {
		for i := range max(min(rect.H, 1<<10), 1) {
			p.SetContent(rect.X, rect.Y+i, vLine, nil, st)
		}
	}
}

// ProgressBar fills the fraction of its width given by Fraction.
type ProgressBar struct {
	Fraction float64
	Fill     Color
	Track    Color
}

func (b *ProgressBar) Draw(p Painter, rect Rect, r *Response) {
	p.Expand(true, false)
	w := max(rect.W, 1)
	frac := math.Max(0, math.Min(b.Fraction, 1))
	done := int(math.Round(frac * float64(w)))
	fill := tcell.StyleDefault.Foreground(b.Fill)
	track := tcell.StyleDefault.Foreground(b.Track)
	for i := range w {
		if i < done {
			p.SetContent(rect.X+i, rect.Y, '█', nil, fill)
		} else {
			p.SetContent(rect.X+i, rect.Y, '░', nil, track)
		}
	}
}

// Spacer takes no room of its own and grows into free space.
type Spacer struct{}

func (Spacer) Draw(Painter, Rect, *Response) {}
