package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// WidgetVisuals is how a widget looks in one interaction state.
type WidgetVisuals struct {
	BgFill      Color
	BgStroke    Color
	FgStroke    Color // text and glyph color
	StrokeWidth int
	Radius      int
}

// Visuals is the theme shared by every node of a surface.
type Visuals struct {
	Text        Style
	Heading     Style
	Weak        Style
	PanelFill   Color
	Accent      Color
	ScrollTrack Style
	ScrollThumb Style

	Noninteractive WidgetVisuals
	Inactive       WidgetVisuals
	Hovered        WidgetVisuals
	Active         WidgetVisuals
}

// Widget picks the widget visuals for a response; nil selects the
// non-interactive visuals.
func (v *Visuals) Widget(r *Response) *WidgetVisuals {
	switch {
	case r == nil:
		return &v.Noninteractive
	case r.Pressed:
		return &v.Active
	case r.Hovered:
		return &v.Hovered
	default:
		return &v.Inactive
	}
}

// Palette is the set of base colors a theme is derived from, as hex
// strings. It is also the format of theme files.
type Palette struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Accent     string `toml:"accent"`
	Border     string `toml:"border"`
	Hover      string `toml:"hover"`
	Selection  string `toml:"selection"`
	Comment    string `toml:"comment"`
	// Radius is the corner radius of widget frames; 0 draws square corners.
	Radius int `toml:"radius"`
}

func BreakersPalette() Palette {
	return Palette{
		Foreground: "#333333", // grey3
		Background: "#fbffff", // white5
		Accent:     "#5fb3b3", // blue2
		Border:     "#d9e0e4", // white2
		Hover:      "#dae0e2", // white3
		Selection:  "#c594c5", // pink
		Comment:    "#999999", // grey2
		Radius:     1,
	}
}

func MarianaPalette() Palette {
	return Palette{
		Foreground: "#d8dee9", // white3
		Background: "#303841", // blue3
		Accent:     "#fac863", // orange
		Border:     "#65737e", // blue4
		Hover:      "#4e5a65",
		Selection:  "#6699cc", // blue
		Comment:    "#a7adba", // blue6
		Radius:     1,
	}
}

// DefaultVisuals picks the light or dark theme from the terminal background.
func DefaultVisuals() Visuals {
	p := MarianaPalette()
	if detectLightTerminal() {
		p = BreakersPalette()
	}
	v, err := NewVisuals(p)
	if err != nil {
		// Built-in palettes are valid.
		panic(err)
	}
	return v
}

// detectLightTerminal detects if terminal has a light background via COLORFGBG.
// iTerm2 and other terminals set this as "foreground;background".
// Background 7 or 15 indicates light, 0-6 and 8 indicate dark.
func detectLightTerminal() bool {
	colorfgbg := os.Getenv("COLORFGBG")
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	if len(parts) != 2 {
		return false
	}
	bg := parts[1]
	return bg == "7" || bg == "15"
}

// NewVisuals derives a full theme from p. Intermediate fills are blended in
// Lab space so they stay perceptually between their endpoints.
func NewVisuals(p Palette) (Visuals, error) {
	var c struct{ fg, bg, accent, border, hover, sel, comment colorful.Color }
	for _, f := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"foreground", p.Foreground, &c.fg},
		{"background", p.Background, &c.bg},
		{"accent", p.Accent, &c.accent},
		{"border", p.Border, &c.border},
		{"hover", p.Hover, &c.hover},
		{"selection", p.Selection, &c.sel},
		{"comment", p.Comment, &c.comment},
	} {
		col, err := colorful.Hex(f.hex)
		if err != nil {
			return Visuals{}, fmt.Errorf("theme color %s: %w", f.name, err)
		}
		*f.dst = col
	}
	if p.Radius < 0 {
		return Visuals{}, fmt.Errorf("theme radius %d is negative", p.Radius)
	}

	inactive := c.bg.BlendLab(c.fg, 0.12)
	active := c.hover.BlendLab(c.sel, 0.45)
	v := Visuals{
		Text:        Style{FG: tcellColor(c.fg), BG: tcell.ColorDefault},
		Heading:     Style{FG: tcellColor(c.accent), BG: tcell.ColorDefault, Bold: true},
		Weak:        Style{FG: tcellColor(c.comment), BG: tcell.ColorDefault},
		PanelFill:   tcellColor(c.bg),
		Accent:      tcellColor(c.accent),
		ScrollTrack: Style{FG: tcellColor(c.border), BG: tcell.ColorDefault},
		ScrollThumb: Style{FG: tcellColor(c.accent), BG: tcell.ColorDefault},
		Noninteractive: WidgetVisuals{
			BgFill:      tcellColor(c.bg),
			BgStroke:    tcellColor(c.border),
			FgStroke:    tcellColor(c.fg),
			StrokeWidth: 1,
			Radius:      p.Radius,
		},
		Inactive: WidgetVisuals{
			BgFill:      tcellColor(inactive),
			BgStroke:    tcellColor(c.border),
			FgStroke:    tcellColor(c.fg),
			StrokeWidth: 1,
			Radius:      p.Radius,
		},
		Hovered: WidgetVisuals{
			BgFill:      tcellColor(c.hover),
			BgStroke:    tcellColor(c.accent),
			FgStroke:    tcellColor(c.fg),
			StrokeWidth: 1,
			Radius:      p.Radius,
		},
		Active: WidgetVisuals{
			BgFill:      tcellColor(active),
			BgStroke:    tcellColor(c.accent),
			FgStroke:    tcellColor(c.fg),
			StrokeWidth: 2,
			Radius:      p.Radius,
		},
	}
	return v, nil
}

// LoadTheme reads a TOML palette from path. Colors missing from the file
// are taken from base.
func LoadTheme(path string, base Palette) (Visuals, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Visuals{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	p := base
	if err := toml.Unmarshal(data, &p); err != nil {
		return Visuals{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	v, err := NewVisuals(p)
	if err != nil {
		return Visuals{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func tcellColor(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes a toward b by t in Lab space. Non-RGB colors are returned
// unchanged.
func Blend(a, b Color, t float64) Color {
	if !a.IsRGB() || !b.IsRGB() {
		return a
	}
	return tcellColor(colorfulColor(a).BlendLab(colorfulColor(b), t))
}

func colorfulColor(c Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
