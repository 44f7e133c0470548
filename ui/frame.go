package ui

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"sync/atomic"

	"github.com/cansyan/flexui/internal/debug"
	"github.com/cansyan/flexui/layout"
)

// MaxSubPasses bounds how many times a logical frame is rebuilt and solved
// before its last pass is painted.
const MaxSubPasses = 3

// ErrFrameState is the panic value when a frame operation runs in the
// wrong phase.
var ErrFrameState = errors.New("frame operation in wrong phase")

type phase uint8

const (
	phaseBuilding phase = iota
	phaseMeasured
	phaseSolved
	phasePainted
)

func (p phase) String() string {
	switch p {
	case phaseBuilding:
		return "building"
	case phaseMeasured:
		return "measured"
	case phaseSolved:
		return "solved"
	case phasePainted:
		return "painted"
	}
	return "unknown"
}

// frameSerial numbers logical frames across all surfaces.
var frameSerial atomic.Uint64

// Frame is one logical frame of a layout shown on a surface.
type Frame struct {
	surface *Surface
	root    ID
	area    Rect
	serial  uint64

	arena arena
	phase phase
	pass  int

	// hints holds the content width each leaf resolved to in the previous
	// sub-pass.
	hints       map[ID]int
	estimated   bool
	requestPass bool
	afterSolve  []func(*Frame)
	seen        map[ID]struct{}
}

// Show lays out the tree declared by build inside area and paints it.
// build runs once per sub-pass and must declare the same tree every time
// given the same state. The returned frame can be queried for the rects of
// the final pass.
func Show(s *Surface, id ID, area Rect, build func(b *Builder)) *Frame {
	f := &Frame{
		surface: s,
		root:    id,
		area:    area,
		serial:  frameSerial.Add(1),
		hints:   make(map[ID]int),
		seen:    make(map[ID]struct{}),
	}
	s.applyWheel()

	var prev map[ID]Rect
	for f.pass = 0; f.pass < MaxSubPasses; f.pass++ {
		f.build(build)
		f.measure()
		f.solve()
		for _, fn := range f.afterSolve {
			fn(f)
		}
		cur := f.remember()
		if !f.estimated && !f.requestPass {
			break
		}
		if prev != nil && maps.Equal(prev, cur) && !f.requestPass {
			break
		}
		if f.pass == MaxSubPasses-1 {
			debug.Log("frame %s painted without converging after %d passes", id, MaxSubPasses)
			break
		}
		prev = cur
	}
	f.paint()
	s.Flush()
	f.phase = phasePainted
	return f
}

func (f *Frame) expect(p phase) {
	if f.phase != p {
		panic(fmt.Errorf("%w: frame is %s, want %s", ErrFrameState, f.phase, p))
	}
}

func (f *Frame) register(id ID) {
	if _, dup := f.seen[id]; dup {
		debug.Warnf("duplicate node id %s", id)
	}
	f.seen[id] = struct{}{}
	f.surface.Memory.touch(id)
}

// respond computes the response of a node being built from where it was
// painted in the last frame. Clicks are reported on the first sub-pass only.
func (f *Frame) respond(id ID, sense Sense) *Response {
	rect := f.surface.Memory.rects[id]
	return f.surface.respond(id, rect, sense, f.pass == 0)
}

func (f *Frame) build(fn func(b *Builder)) {
	f.arena.reset()
	f.phase = phaseBuilding
	f.estimated, f.requestPass = false, false
	f.afterSolve = f.afterSolve[:0]
	clear(f.seen)

	h := f.arena.alloc(-1, f.root)
	f.register(f.root)
	root := f.arena.get(h)
	root.patch = Size(float64(f.area.W), float64(f.area.H)).Merge(Column())
	root.response = f.respond(f.root, SenseTransparent)

	b := &Builder{f: f, stack: []int32{h.slot}}
	if fn != nil {
		fn(b)
	}
	if len(b.stack) != 1 {
		n := &f.arena.nodes[b.stack[len(b.stack)-1]]
		panic(fmt.Errorf("%w: node %s was never ended", ErrNestingViolation, n.id))
	}
	b.End(h)
}

func (f *Frame) measure() {
	f.phase = phaseMeasured
	for i := range f.arena.nodes {
		n := &f.arena.nodes[i]
		if !n.isLeaf() || n.hidden() {
			continue
		}
		if n.widget == nil {
			if n.style.Size.W.IsAuto() && n.style.Size.H.IsAuto() && n.style.FlexGrow == 0 {
				debug.Warnf("leaf %s has no intrinsic size and no size constraint", n.id)
			}
			continue
		}
		f.Measure(NodeHandle{slot: int32(i), frame: f.arena.frame})
	}
}

func (f *Frame) solve() {
	tree := layout.Tree{Nodes: make([]layout.Node, len(f.arena.nodes))}
	for i := range f.arena.nodes {
		n := &f.arena.nodes[i]
		tree.Nodes[i] = layout.Node{Parent: int(n.parent), Style: n.style}
		if n.widget != nil && n.intrinsic != nil {
			tree.Nodes[i].Measure = f.measureFunc(*n.intrinsic)
		}
	}
	results, err := layout.Solve(tree, layout.Size{W: float64(f.area.W), H: float64(f.area.H)})
	if err != nil {
		// The builder only produces well-formed trees.
		panic(fmt.Errorf("solve frame %s: %w", f.root, err))
	}
	for i := range results {
		f.arena.nodes[i].solved = results[i]
	}
	f.place(0, Point{}, Rect{X: f.area.X, Y: f.area.Y, W: f.area.W, H: f.area.H}, -1)
	f.phase = phaseSolved
}

// unbounded is the clip of an axis that does not clip.
const unbounded = math.MaxInt32 / 2

// place turns solved rects into painted rects. shift is the displacement
// from scrolling and sticky ancestors, clip the visible area and region the
// nearest scrolling ancestor.
func (f *Frame) place(i int32, shift Point, clip Rect, region int32) {
	n := &f.arena.nodes[i]
	n.region = region
	if n.hidden() {
		n.rect, n.content, n.clip = Rect{}, Rect{}, Rect{}
		return
	}
	mem := f.surface.Memory
	rect := cellRect(n.solved.Rect).Translate(f.area.X+shift.X, f.area.Y+shift.Y)
	if n.sticky.Any() && region >= 0 {
		sc := &f.arena.nodes[region]
		limit := sc.content
		if n.parent >= 0 {
			limit = f.arena.nodes[n.parent].content
		}
		pinned := ClampSticky(rect, n.sticky, sc.content, limit)
		shift = Point{X: shift.X + pinned.X - rect.X, Y: shift.Y + pinned.Y - rect.Y}
		rect = pinned
	}
	n.rect = rect
	n.content = cellRect(n.solved.ContentBox(n.style)).Translate(f.area.X+shift.X, f.area.Y+shift.Y)
	n.clip = clip

	if n.isLeaf() {
		if n.widget != nil {
			f.hints[n.id] = int(math.Round(n.solved.ContentBox(n.style).W))
		}
		return
	}

	ov := n.style.Overflow
	if ov.X.Clips() || ov.Y.Clips() {
		inner := n.content
		if !ov.X.Clips() {
			inner.X, inner.W = -unbounded, 2*unbounded
		}
		if !ov.Y.Clips() {
			inner.Y, inner.H = -unbounded, 2*unbounded
		}
		clip = clip.Intersect(inner)
	}
	n.scroll = ov.X == layout.OverflowScroll || ov.Y == layout.OverflowScroll
	if n.scroll {
		cw := int(math.Ceil(n.solved.ContentSize.W))
		ch := int(math.Ceil(n.solved.ContentSize.H))
		off := mem.scroll[n.id]
		off.X = clampInt(off.X, 0, max(cw-n.content.W, 0))
		off.Y = clampInt(off.Y, 0, max(ch-n.content.H, 0))
		if ov.X != layout.OverflowScroll {
			off.X = 0
		}
		if ov.Y != layout.OverflowScroll {
			off.Y = 0
		}
		mem.scroll[n.id] = off
		mem.viewport[n.id] = n.content
		shift = Point{X: shift.X - off.X, Y: shift.Y - off.Y}
		region = i
	}
	for _, c := range n.children {
		f.place(c, shift, clip, region)
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// remember records the pass' rects and content sizes in memory and returns
// the rects for convergence checks.
func (f *Frame) remember() map[ID]Rect {
	mem := f.surface.Memory
	cur := make(map[ID]Rect, len(f.arena.nodes))
	for i := range f.arena.nodes {
		n := &f.arena.nodes[i]
		if n.hidden() {
			continue
		}
		cur[n.id] = n.rect
		mem.rects[n.id] = n.rect
		if !n.isLeaf() {
			cs := n.solved.ContentSize
			mem.content[n.id] = Rect{W: int(math.Ceil(cs.W)), H: int(math.Ceil(cs.H))}
		}
	}
	return cur
}

// paint walks the final pass in build order. Sticky nodes are held back
// until the rest of their scroll region is painted: nodes pinned on one axis
// first, then nodes pinned on both.
func (f *Frame) paint() {
	f.expect(phaseSolved)
	deferred := make(map[int32][]int32)

	var visit func(i, pinned int32)
	visit = func(i, pinned int32) {
		n := &f.arena.nodes[i]
		if n.hidden() {
			return
		}
		if n.sticky.Any() && n.region >= 0 && n.region != pinned {
			deferred[n.region] = append(deferred[n.region], i)
			return
		}
		f.paintNode(n)
		for _, c := range n.children {
			visit(c, pinned)
		}
		if !n.scroll {
			return
		}
		for _, both := range []bool{false, true} {
			for _, j := range deferred[i] {
				if f.arena.nodes[j].sticky.Both() == both {
					visit(j, i)
				}
			}
		}
		f.paintScrollbars(n)
	}
	visit(0, -1)
}

func (f *Frame) paintNode(n *node) {
	s := f.surface
	c := s.Canvas(LayerContent).WithClip(n.clip)
	visible := n.rect.Intersect(n.clip)
	s.addHit(n.id, visible, n.sense)
	if n.bg != nil {
		if n.sense == SenseClick {
			drawBackground(c, n.rect, *n.bg, &s.Visuals, n.response)
		} else {
			DrawBackground(c, n.rect, *n.bg, &s.Visuals)
		}
	}
	if n.widget != nil {
		n.widget.Draw(c.WithClip(n.rect), n.content, n.response)
	}
	if n.scroll {
		ov := n.style.Overflow
		s.regions = append(s.regions, scrollRegion{
			id:       n.id,
			viewport: n.content.Intersect(n.clip),
			canX:     ov.X == layout.OverflowScroll,
			canY:     ov.Y == layout.OverflowScroll,
		})
	}
}

func (f *Frame) paintScrollbars(n *node) {
	s := f.surface
	content := s.Memory.content[n.id]
	if n.style.Overflow.X != layout.OverflowScroll {
		content.W = 0
	}
	if n.style.Overflow.Y != layout.OverflowScroll {
		content.H = 0
	}
	c := s.Canvas(LayerOverlay).WithClip(n.clip)
	drawScrollbars(c, n.content, content, s.Memory.scroll[n.id], &s.Visuals)
}

func (f *Frame) solvedNode(h NodeHandle) *node {
	if f.phase < phaseSolved {
		panic(fmt.Errorf("%w: frame is %s", ErrNotSolved, f.phase))
	}
	return f.arena.get(h)
}

// Rect returns the rect h is painted at, after scrolling and sticky
// clamping. It panics before the frame is solved.
func (f *Frame) Rect(h NodeHandle) Rect { return f.solvedNode(h).rect }

// ContentRect returns the painted rect of h minus border and padding.
func (f *Frame) ContentRect(h NodeHandle) Rect { return f.solvedNode(h).content }

// SolvedRect returns the solver's rect of h, relative to the frame area and
// before scrolling.
func (f *Frame) SolvedRect(h NodeHandle) layout.Rect { return f.solvedNode(h).solved.Rect }

// ContentSize returns the extent of the children of h.
func (f *Frame) ContentSize(h NodeHandle) layout.Size {
	return f.solvedNode(h).solved.ContentSize
}

// ID returns the identity of h.
func (f *Frame) ID(h NodeHandle) ID { return f.arena.get(h).id }

// Pass returns the index of the sub-pass being run, or of the painted pass.
func (f *Frame) Pass() int { return f.pass }

// RequestPass asks for another sub-pass. It is honored while the frame is
// under MaxSubPasses.
func (f *Frame) RequestPass() { f.requestPass = true }
