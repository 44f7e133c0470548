package ui

// Sense selects how a node takes part in hit-testing.
type Sense uint8

const (
	// SenseTransparent nodes are not hit-tested; input passes through.
	SenseTransparent Sense = iota
	// SenseOpaque nodes consume input over their rect but report nothing.
	SenseOpaque
	// SenseClick nodes consume input and report hover, press and click.
	SenseClick
)

func (s Sense) String() string {
	switch s {
	case SenseTransparent:
		return "transparent"
	case SenseOpaque:
		return "opaque"
	case SenseClick:
		return "click"
	}
	return "unknown"
}

// Response is the interaction state of a sensing node.
type Response struct {
	ID      ID
	Rect    Rect
	Hovered bool
	Pressed bool // primary button held down after pressing on the node
	Clicked bool
}

// DrawInteractive senses input over rect, then paints bg. Only SenseClick
// returns a response, and only then may bg hold response-computed values.
func DrawInteractive(c *Canvas, id ID, rect Rect, bg Background, sense Sense) *Response {
	s := c.Surface()
	switch sense {
	case SenseClick:
		s.addHit(id, rect.Intersect(c.Clip()), sense)
		r := s.respond(id, rect, sense, true)
		drawBackground(c, rect, bg, &s.Visuals, r)
		return r
	case SenseOpaque:
		s.addHit(id, rect.Intersect(c.Clip()), sense)
	}
	DrawBackground(c, rect, bg, &s.Visuals)
	return nil
}
