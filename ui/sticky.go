package ui

// Sticky selects the axes on which a node stays inside the viewport of its
// nearest scrolling ancestor.
type Sticky struct {
	X, Y bool
}

var (
	StickyX    = Sticky{X: true}
	StickyY    = Sticky{Y: true}
	StickyBoth = Sticky{X: true, Y: true}
)

func (s Sticky) Any() bool  { return s.X || s.Y }
func (s Sticky) Both() bool { return s.X && s.Y }

// ClampSticky moves rect on its sticky axes so that it starts no earlier
// than the viewport. The node never moves before its own position and never
// past the end of limit, the content box of its container. Clamping a
// clamped rect again returns it unchanged.
func ClampSticky(rect Rect, s Sticky, viewport, limit Rect) Rect {
	if s.X {
		rect.X = max(rect.X, min(viewport.X, limit.Right()-rect.W))
	}
	if s.Y {
		rect.Y = max(rect.Y, min(viewport.Y, limit.Bottom()-rect.H))
	}
	return rect
}
