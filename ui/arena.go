package ui

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cansyan/flexui/layout"
)

var (
	// ErrStaleHandle is the panic value when a handle from another frame is used.
	ErrStaleHandle = errors.New("node handle from another frame")
	// ErrNotSolved is the panic value when a rect is read before layout.
	ErrNotSolved = errors.New("node rect read before layout was solved")
)

// NodeHandle refers to a node of the frame that issued it. Handles stay
// valid for the whole frame because the arena never moves or removes nodes
// before it is reset.
type NodeHandle struct {
	slot  int32
	frame uint64
}

// node is one element of the per-frame tree. The arena owns every node;
// parent is a back-reference only.
type node struct {
	id       ID
	parent   int32 // -1 for the root
	children []int32
	ordinal  int // next unkeyed child ordinal
	open     bool

	patch    StylePatch
	style    layout.Style
	rejected bool

	widget    Widget
	intrinsic *IntrinsicSize
	sticky    Sticky
	bg        *Background
	sense     Sense
	response  *Response

	// Filled once the frame is solved.
	solved  layout.Result
	rect    Rect  // painted rect: scrolled and sticky-clamped
	content Rect  // content box of rect
	clip    Rect  // visible area inherited from clipping ancestors
	region  int32 // nearest scrolling ancestor, -1 when none
	scroll  bool
}

func (n *node) isLeaf() bool { return len(n.children) == 0 }

func (n *node) hidden() bool { return n.style.Display == layout.DisplayNone }

// exposed returns the response handed to application code. Only sensing
// nodes expose one.
func (n *node) exposed() *Response {
	if n.sense != SenseClick {
		return nil
	}
	return n.response
}

type arena struct {
	nodes []node
	frame uint64
}

// generation numbers every sub-pass of every frame, so a handle kept from
// an earlier frame never matches the current one.
var generation atomic.Uint64

// reset discards every node and starts a new frame generation.
func (a *arena) reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:0]
	a.frame = generation.Add(1)
}

func (a *arena) alloc(parent int32, id ID) NodeHandle {
	a.nodes = append(a.nodes, node{id: id, parent: parent, open: true})
	slot := int32(len(a.nodes) - 1)
	if parent >= 0 {
		p := &a.nodes[parent]
		p.children = append(p.children, slot)
	}
	return NodeHandle{slot: slot, frame: a.frame}
}

func (a *arena) get(h NodeHandle) *node {
	if h.frame != a.frame || h.slot < 0 || int(h.slot) >= len(a.nodes) {
		panic(fmt.Errorf("%w: slot %d of frame %d, current frame %d", ErrStaleHandle, h.slot, h.frame, a.frame))
	}
	return &a.nodes[h.slot]
}

// walk visits i and its descendants in build order. Returning false from
// fn skips the node's children.
func (a *arena) walk(i int32, fn func(i int32, n *node) bool) {
	n := &a.nodes[i]
	if !fn(i, n) {
		return
	}
	for _, c := range n.children {
		a.walk(c, fn)
	}
}
