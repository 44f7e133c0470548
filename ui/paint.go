package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Painter is the drawing target of widgets. The screen canvas and the
// measurement probe both implement it.
type Painter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	// Expand reports that the widget wants to fill the available space
	// on the given axes. It has no effect on screen.
	Expand(x, y bool)
}

// Canvas buffers paint output for one layer of a surface. Cells outside
// the clip rect are dropped.
type Canvas struct {
	s     *Surface
	layer Layer
	clip  Rect
}

func (c *Canvas) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if !c.clip.Contains(x, y) {
		return
	}
	c.s.layers[c.layer] = append(c.s.layers[c.layer], paintOp{
		x: x, y: y, primary: primary, combining: combining, style: style,
	})
}

func (c *Canvas) Expand(x, y bool) {}

// Clip returns the visible area of the canvas.
func (c *Canvas) Clip() Rect { return c.clip }

// WithClip returns a canvas on the same layer further clipped to r.
func (c *Canvas) WithClip(r Rect) *Canvas {
	return &Canvas{s: c.s, layer: c.layer, clip: c.clip.Intersect(r)}
}

// OnLayer returns a canvas with the same clip on another layer.
func (c *Canvas) OnLayer(l Layer) *Canvas {
	return &Canvas{s: c.s, layer: l, clip: c.clip}
}

// Surface returns the surface the canvas paints to.
func (c *Canvas) Surface() *Surface { return c.s }

// DrawString draws s on one line starting at x, y, cutting it at maxW cells.
// It returns the number of cells used.
func DrawString(p Painter, x, y, maxW int, s string, style tcell.Style) int {
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		w := runewidth.StringWidth(g.Str())
		if w == 0 {
			continue
		}
		if used+w > maxW {
			break
		}
		p.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}

// wrapText breaks s into lines no wider than width cells. Words are kept
// whole when they fit on a line; longer words are broken between grapheme
// clusters. Explicit newlines always break. A width below one cell puts
// every word on its own line, unbroken.
func wrapText(s string, width int) []string {
	keepWords := width < 1
	width = max(width, 1)
	var lines []string
	var line, word []byte
	lineW, wordW := 0, 0

	flushWord := func() {
		if wordW == 0 {
			return
		}
		if lineW > 0 && lineW+wordW > width {
			lines = append(lines, trimRightSpace(string(line)))
			line, lineW = line[:0], 0
		}
		line = append(line, word...)
		lineW += wordW
		word, wordW = word[:0], 0
	}

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		switch {
		case cluster == "\n" || cluster == "\r\n":
			flushWord()
			lines = append(lines, trimRightSpace(string(line)))
			line, lineW = line[:0], 0
			continue
		case cluster == " " || cluster == "\t":
			flushWord()
			if lineW > 0 && lineW < width {
				line = append(line, ' ')
				lineW++
			}
			continue
		}
		w := runewidth.StringWidth(cluster)
		if wordW > 0 && wordW+w > width && !keepWords {
			// The word alone overflows a line: emit what fits.
			if lineW > 0 {
				lines = append(lines, trimRightSpace(string(line)))
				line, lineW = line[:0], 0
			}
			lines = append(lines, string(word))
			word, wordW = word[:0], 0
		}
		word = append(word, cluster...)
		wordW += w
	}
	flushWord()
	if lineW > 0 || len(lines) == 0 {
		lines = append(lines, trimRightSpace(string(line)))
	}
	return lines
}

func trimRightSpace(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

// FillRect sets every cell of rect to a blank with the given style.
func FillRect(p Painter, rect Rect, style tcell.Style) {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			p.SetContent(x, y, ' ', nil, style)
		}
	}
}

// boxRunes holds the line drawing characters of one stroke style, in the
// order horizontal, vertical, top-left, top-right, bottom-left, bottom-right.
type boxRunes [6]rune

var (
	boxLight   = boxRunes{'─', '│', '┌', '┐', '└', '┘'}
	boxRounded = boxRunes{'─', '│', '╭', '╮', '╰', '╯'}
	boxHeavy   = boxRunes{'━', '┃', '┏', '┓', '┗', '┛'}
	boxDouble  = boxRunes{'═', '║', '╔', '╗', '╚', '╝'}
)

// strokeRunes maps a stroke width and corner radius to line characters.
// Rounded corners exist only for light lines.
func strokeRunes(width, radius int) boxRunes {
	switch {
	case width >= 3:
		return boxDouble
	case width == 2:
		return boxHeavy
	case radius > 0:
		return boxRounded
	default:
		return boxLight
	}
}

// DrawStroke draws a box outline along the edge cells of rect.
func DrawStroke(p Painter, rect Rect, width, radius int, style tcell.Style) {
	// Too small to draw a border
	if width <= 0 || rect.W < 2 || rect.H < 2 {
		return
	}
	b := strokeRunes(width, radius)
	for i := 1; i < rect.W-1; i++ {
		p.SetContent(rect.X+i, rect.Y, b[0], nil, style)
		p.SetContent(rect.X+i, rect.Bottom()-1, b[0], nil, style)
	}
	for i := 1; i < rect.H-1; i++ {
		p.SetContent(rect.X, rect.Y+i, b[1], nil, style)
		p.SetContent(rect.Right()-1, rect.Y+i, b[1], nil, style)
	}
	p.SetContent(rect.X, rect.Y, b[2], nil, style)
	p.SetContent(rect.Right()-1, rect.Y, b[3], nil, style)
	p.SetContent(rect.X, rect.Bottom()-1, b[4], nil, style)
	p.SetContent(rect.Right()-1, rect.Bottom()-1, b[5], nil, style)
}

// scrollThumb returns the offset and length of a scrollbar thumb on a
// track of the given length.
func scrollThumb(track, viewport, content, offset int) (pos, size int) {
	if content <= viewport || track <= 0 {
		return 0, track
	}
	size = max(1, track*viewport/content)
	pos = (track - size) * offset / (content - viewport)
	return min(pos, track-size), size
}

// drawScrollbars draws the vertical and horizontal bars of a scroll
// container whose content overflows its viewport.
func drawScrollbars(p Painter, viewport Rect, content Rect, offset Point, v *Visuals) {
	track := v.ScrollTrack.Apply()
	thumb := v.ScrollThumb.Apply()
	if content.H > viewport.H && viewport.W > 0 {
		x := viewport.Right() - 1
		pos, size := scrollThumb(viewport.H, viewport.H, content.H, offset.Y)
		for i := range viewport.H {
			st, r := track, '│'
			if i >= pos && i < pos+size {
				st, r = thumb, '┃'
			}
			p.SetContent(x, viewport.Y+i, r, nil, st)
		}
	}
	if content.W > viewport.W && viewport.H > 0 {
		y := viewport.Bottom() - 1
		pos, size := scrollThumb(viewport.W, viewport.W, content.W, offset.X)
		for i := range viewport.W {
			st, r := track, '─'
			if i >= pos && i < pos+size {
				st, r = thumb, '━'
			}
			p.SetContent(viewport.X+i, y, r, nil, st)
		}
	}
}
