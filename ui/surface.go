package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Layer orders paint output. Layers are flushed to the screen in order.
type Layer uint8

const (
	LayerContent Layer = iota
	LayerOverlay
	layerCount
)

type paintOp struct {
	x, y      int
	primary   rune
	combining []rune
	style     tcell.Style
}

type hit struct {
	id    ID
	rect  Rect
	sense Sense
}

type scrollRegion struct {
	id       ID
	viewport Rect
	canX     bool
	canY     bool
}

type pointer struct {
	pos     Point
	known   bool
	down    bool
	pressID ID
	clickID ID
	wheel   Point
}

// Surface is the immediate-mode target of a frame: it owns the screen,
// the pointer state, the paint buffer and the memory kept across frames.
type Surface struct {
	Screen  tcell.Screen
	Memory  *Memory
	Visuals Visuals
	// ScrollStep is the number of cells scrolled per wheel notch.
	ScrollStep int

	pointer pointer
	layers  [layerCount][]paintOp

	// Hit-test and scroll targets of the frame being painted, and of the
	// last completed frame, in paint order.
	hits, prevHits       []hit
	regions, prevRegions []scrollRegion
}

// NewSurface returns a surface drawing to screen with the given theme.
func NewSurface(screen tcell.Screen, v Visuals) *Surface {
	return &Surface{
		Screen:     screen,
		Memory:     NewMemory(),
		Visuals:    v,
		ScrollStep: 3,
	}
}

// HandleEvent updates the pointer state from a tcell event and reports
// whether the frame should be redrawn.
func (s *Surface) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		s.pointer.pos = Point{X: x, Y: y}
		s.pointer.known = true
		btn := ev.Buttons()
		shift := ev.Modifiers()&tcell.ModShift != 0
		switch {
		case btn&tcell.WheelUp != 0 && shift, btn&tcell.WheelLeft != 0:
			s.pointer.wheel.X--
		case btn&tcell.WheelDown != 0 && shift, btn&tcell.WheelRight != 0:
			s.pointer.wheel.X++
		case btn&tcell.WheelUp != 0:
			s.pointer.wheel.Y--
		case btn&tcell.WheelDown != 0:
			s.pointer.wheel.Y++
		}
		primary := btn&tcell.ButtonPrimary != 0
		switch {
		case primary && !s.pointer.down:
			s.pointer.down = true
			s.pointer.pressID = s.hitAt(x, y)
		case !primary && s.pointer.down:
			s.pointer.down = false
			// A click is a press and release over the same target.
			if id := s.hitAt(x, y); id != 0 && id == s.pointer.pressID {
				s.pointer.clickID = id
			}
			s.pointer.pressID = 0
		}
		return true
	case *tcell.EventResize:
		return true
	}
	return false
}

// hitAt returns the topmost sensing target of the last frame at x, y.
func (s *Surface) hitAt(x, y int) ID {
	for i := len(s.prevHits) - 1; i >= 0; i-- {
		if h := s.prevHits[i]; h.rect.Contains(x, y) {
			return h.id
		}
	}
	return 0
}

func (s *Surface) addHit(id ID, rect Rect, sense Sense) {
	if sense == SenseTransparent || rect.IsEmpty() {
		return
	}
	s.hits = append(s.hits, hit{id: id, rect: rect, sense: sense})
}

// respond builds the interaction response of id at rect. Only sensing
// targets report hover and press; clicks are reported when report is set.
func (s *Surface) respond(id ID, rect Rect, sense Sense, report bool) *Response {
	r := &Response{ID: id, Rect: rect}
	if sense != SenseClick || !s.pointer.known {
		return r
	}
	r.Hovered = s.hitAt(s.pointer.pos.X, s.pointer.pos.Y) == id
	r.Pressed = r.Hovered && s.pointer.down && s.pointer.pressID == id
	r.Clicked = report && s.pointer.clickID == id
	return r
}

// scrollTarget returns the innermost scroll region of the last frame under
// the pointer that can move in the direction of d.
func (s *Surface) scrollTarget(d Point) (ID, bool) {
	p := s.pointer.pos
	for i := len(s.prevRegions) - 1; i >= 0; i-- {
		r := s.prevRegions[i]
		if !r.viewport.Contains(p.X, p.Y) {
			continue
		}
		if (d.X != 0 && r.canX) || (d.Y != 0 && r.canY) {
			return r.id, true
		}
	}
	return 0, false
}

// applyWheel moves the scroll region under the pointer by the pending wheel
// delta. Offsets are clamped when the region is next laid out.
func (s *Surface) applyWheel() {
	d := s.pointer.wheel
	if d == (Point{}) {
		return
	}
	s.pointer.wheel = Point{}
	if id, ok := s.scrollTarget(d); ok {
		s.Memory.ScrollBy(id, d.X*s.ScrollStep, d.Y*s.ScrollStep)
	}
}

// Canvas returns a painter for layer clipped to the whole screen.
func (s *Surface) Canvas(layer Layer) *Canvas {
	w, h := s.Screen.Size()
	return &Canvas{s: s, layer: layer, clip: Rect{W: w, H: h}}
}

// Flush writes buffered paint output to the screen, layer by layer. Cells
// painted without a background keep the one already underneath.
func (s *Surface) Flush() {
	for l := range s.layers {
		for _, op := range s.layers[l] {
			st := op.style
			if _, bg, _ := st.Decompose(); bg == tcell.ColorDefault {
				_, _, under, _ := s.Screen.GetContent(op.x, op.y)
				if _, ubg, _ := under.Decompose(); ubg != tcell.ColorDefault {
					st = st.Background(ubg)
				}
			}
			s.Screen.SetContent(op.x, op.y, op.primary, op.combining, st)
		}
		s.layers[l] = s.layers[l][:0]
	}
}

// EndFrame closes a logical frame: targets painted this frame become the
// hit-test state of the next, and consumed input is cleared.
func (s *Surface) EndFrame() {
	s.prevHits, s.hits = s.hits, s.prevHits[:0]
	s.prevRegions, s.regions = s.regions, s.prevRegions[:0]
	s.pointer.clickID = 0
	s.pointer.wheel = Point{}
	s.Memory.sweep()
}

// StaleFrames is how many frames the scroll offset and row statistics of
// a node outlive its last appearance.
const StaleFrames = 256

// Memory holds per-node state across frames, keyed by node ID.
//
// Layout results are kept only for the nodes of the last frame. Scroll
// offsets and row statistics survive StaleFrames frames without their node,
// so a panel that is hidden for a moment keeps its position. Values are
// owned by the application and never dropped.
type Memory struct {
	rects    map[ID]Rect
	scroll   map[ID]Point
	viewport map[ID]Rect
	content  map[ID]Rect
	rows     map[ID]rowStats
	values   map[ID]any

	frame uint64
	seen  map[ID]uint64 // frame each node was last built or scrolled in
}

func NewMemory() *Memory {
	return &Memory{
		rects:    make(map[ID]Rect),
		scroll:   make(map[ID]Point),
		viewport: make(map[ID]Rect),
		content:  make(map[ID]Rect),
		rows:     make(map[ID]rowStats),
		values:   make(map[ID]any),
		seen:     make(map[ID]uint64),
	}
}

func (m *Memory) touch(id ID) { m.seen[id] = m.frame }

// sweep ends a frame: layout results of nodes not built in it are dropped,
// and so is state not touched for StaleFrames frames.
func (m *Memory) sweep() {
	for id := range m.rects {
		if m.seen[id] != m.frame {
			delete(m.rects, id)
		}
	}
	for id := range m.content {
		if m.seen[id] != m.frame {
			delete(m.content, id)
		}
	}
	for id := range m.viewport {
		if m.seen[id] != m.frame {
			delete(m.viewport, id)
		}
	}
	for id, last := range m.seen {
		if m.frame-last < StaleFrames {
			continue
		}
		delete(m.scroll, id)
		delete(m.rows, id)
		delete(m.seen, id)
	}
	m.frame++
}

// Rect returns the rect the node was last painted at.
func (m *Memory) Rect(id ID) (Rect, bool) {
	r, ok := m.rects[id]
	return r, ok
}

// ScrollOffset returns the scroll offset of a scroll container.
func (m *Memory) ScrollOffset(id ID) Point { return m.scroll[id] }

func (m *Memory) SetScrollOffset(id ID, p Point) {
	m.scroll[id] = p
	m.touch(id)
}

func (m *Memory) ScrollBy(id ID, dx, dy int) {
	p := m.scroll[id]
	m.scroll[id] = Point{X: p.X + dx, Y: p.Y + dy}
	m.touch(id)
}

// Viewport returns the visible content box of a scroll container as of
// the last layout.
func (m *Memory) Viewport(id ID) (Rect, bool) {
	r, ok := m.viewport[id]
	return r, ok
}

// ContentSize returns the extent of a container's children as of the last
// layout.
func (m *Memory) ContentSize(id ID) (w, h int) {
	r := m.content[id]
	return r.W, r.H
}

// Value returns application state stored under id.
func (m *Memory) Value(id ID) (any, bool) {
	v, ok := m.values[id]
	return v, ok
}

func (m *Memory) SetValue(id ID, v any) { m.values[id] = v }
