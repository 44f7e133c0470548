package layout

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoRoot         = errors.New("layout tree has no root")
	ErrMultipleRoots  = errors.New("layout tree has more than one root")
	ErrDanglingParent = errors.New("layout node references a missing parent")
	ErrCycle          = errors.New("layout tree contains a cycle")
)

// MeasureFunc reports the content size of a leaf given the available
// content width, which may be +Inf.
type MeasureFunc func(availableWidth float64) Size

// Node is one element of the solver input.
type Node struct {
	Parent  int // index of the parent, -1 for the root
	Style   Style
	Measure MeasureFunc // nil for containers and zero-intrinsic leaves
}

// Tree is the flat solver input. Children are ordered by index.
type Tree struct {
	Nodes []Node
}

// Result is the solved geometry of one node.
type Result struct {
	// Rect is the border box in absolute coordinates, before any scrolling.
	Rect Rect
	// ContentSize is the extent of the children measured from the content
	// box origin. Scroll containers compare it with their content box.
	ContentSize Size
}

// ContentBox returns the result's rect minus border and padding.
func (r Result) ContentBox(s Style) Rect {
	return r.Rect.Inset(s.insets())
}

type measureKey struct {
	node int
	w, h float64
}

type solver struct {
	nodes    []Node
	children [][]int
	out      []Result
	cache    map[measureKey]Size
}

// Solve lays out the tree within the available size and returns one Result
// per node, indexed like tree.Nodes. It fails only on malformed input.
func Solve(tree Tree, available Size) ([]Result, error) {
	s := &solver{
		nodes:    tree.Nodes,
		children: make([][]int, len(tree.Nodes)),
		out:      make([]Result, len(tree.Nodes)),
		cache:    make(map[measureKey]Size),
	}
	root, err := s.link()
	if err != nil {
		return nil, err
	}

	style := s.nodes[root].Style
	w, ok := style.Size.W.Resolve(available.W)
	if !ok {
		w = available.W
	}
	h, ok := style.Size.H.Resolve(available.H)
	if !ok {
		h = available.H
	}
	if math.IsInf(w, 1) || math.IsInf(h, 1) {
		m := s.measure(root, available)
		if math.IsInf(w, 1) {
			w = m.W
		}
		if math.IsInf(h, 1) {
			h = m.H
		}
	}
	w = clampMinMax(w, style.MinSize.W, style.MaxSize.W, available.W)
	h = clampMinMax(h, style.MinSize.H, style.MaxSize.H, available.H)
	s.place(root, Rect{W: w, H: h})
	return s.out, nil
}

// link builds the child lists and checks that every node hangs off a single root.
func (s *solver) link() (int, error) {
	root := -1
	for i, n := range s.nodes {
		switch {
		case n.Parent == -1:
			if root >= 0 {
				return 0, fmt.Errorf("%w: nodes %d and %d", ErrMultipleRoots, root, i)
			}
			root = i
		case n.Parent < 0 || n.Parent >= len(s.nodes) || n.Parent == i:
			if n.Parent == i {
				return 0, fmt.Errorf("%w: node %d is its own parent", ErrCycle, i)
			}
			return 0, fmt.Errorf("%w: node %d parent %d", ErrDanglingParent, i, n.Parent)
		default:
			s.children[n.Parent] = append(s.children[n.Parent], i)
		}
	}
	if root < 0 {
		if len(s.nodes) == 0 {
			return 0, ErrNoRoot
		}
		return 0, fmt.Errorf("%w: no node without a parent", ErrCycle)
	}

	// Every node has exactly one parent, so a node unreachable from the
	// root must sit on a cycle.
	seen := make([]bool, len(s.nodes))
	stack := []int{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seen[n] = true
		stack = append(stack, s.children[n]...)
	}
	for i, ok := range seen {
		if !ok {
			return 0, fmt.Errorf("%w: node %d unreachable from root", ErrCycle, i)
		}
	}
	return root, nil
}

// measure returns the border box size node i wants inside the available
// space. Unbounded axes are +Inf.
func (s *solver) measure(i int, avail Size) Size {
	key := measureKey{node: i, w: avail.W, h: avail.H}
	if m, ok := s.cache[key]; ok {
		return m
	}

	style := s.nodes[i].Style
	if style.Display == DisplayNone {
		return Size{}
	}
	insets := style.insets()

	w, wDef := style.Size.W.Resolve(avail.W)
	h, hDef := style.Size.H.Resolve(avail.H)
	if !wDef || !hDef {
		inner := Size{W: math.Inf(1), H: math.Inf(1)}
		if wDef {
			inner.W = math.Max(0, w-insets.Horizontal())
		} else if !math.IsInf(avail.W, 1) {
			maxW, ok := style.MaxSize.W.Resolve(avail.W)
			if !ok {
				maxW = avail.W
			}
			inner.W = math.Max(0, math.Min(avail.W, maxW)-insets.Horizontal())
		}
		if hDef {
			inner.H = math.Max(0, h-insets.Vertical())
		}
		content := s.arrange(i, Point{}, inner, false)
		if !wDef {
			w = content.W + insets.Horizontal()
		}
		if !hDef {
			h = content.H + insets.Vertical()
		}
	}

	m := Size{
		W: clampMinMax(w, style.MinSize.W, style.MaxSize.W, avail.W),
		H: clampMinMax(h, style.MinSize.H, style.MaxSize.H, avail.H),
	}
	s.cache[key] = m
	return m
}

// place records rect as the border box of node i and lays out its subtree.
func (s *solver) place(i int, rect Rect) {
	style := s.nodes[i].Style
	if style.Display == DisplayNone {
		s.hide(i, rect.Min())
		return
	}
	s.out[i].Rect = rect
	content := rect.Inset(style.insets())
	s.out[i].ContentSize = s.arrange(i, content.Min(), content.Size(), true)
}

// hide gives node i and its subtree a zero rect at p.
func (s *solver) hide(i int, p Point) {
	s.out[i] = Result{Rect: Rect{X: p.X, Y: p.Y}}
	for _, c := range s.children[i] {
		s.hide(c, p)
	}
}

// arrange lays out the children of node i inside a content box of the given
// size starting at origin, and returns the content extent. Unbounded axes of
// box are +Inf. Child rects are only recorded when commit is true.
func (s *solver) arrange(i int, origin Point, box Size, commit bool) Size {
	n := s.nodes[i]
	if len(s.children[i]) == 0 {
		if n.Measure == nil {
			return Size{}
		}
		return n.Measure(box.W)
	}
	if n.Style.Display == DisplayGrid {
		return s.arrangeGrid(i, origin, box, commit)
	}
	return s.arrangeFlex(i, origin, box, commit)
}

// visibleChildren returns the children of i that take part in layout,
// hiding the others when commit is true.
func (s *solver) visibleChildren(i int, origin Point, commit bool) []int {
	var kids []int
	for _, c := range s.children[i] {
		if s.nodes[c].Style.Display == DisplayNone {
			if commit {
				s.hide(c, origin)
			}
			continue
		}
		kids = append(kids, c)
	}
	return kids
}

// clampMinMax restricts v to the resolved min/max. If min > max, min wins.
func clampMinMax(v float64, minD, maxD Dimension, parent float64) float64 {
	if maxV, ok := maxD.Resolve(parent); ok && v > maxV {
		v = maxV
	}
	if minV, ok := minD.Resolve(parent); ok && v < minV {
		v = minV
	}
	return math.Max(v, 0)
}

func alignOffset(align Align, space, size float64) float64 {
	switch align {
	case AlignEnd:
		return space - size
	case AlignCenter:
		return (space - size) / 2
	default:
		return 0
	}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
