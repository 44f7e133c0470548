package ui

import (
	"errors"
	"fmt"

	"github.com/cansyan/flexui/internal/debug"
	"github.com/cansyan/flexui/layout"
)

// ErrNestingViolation is the panic value when nodes are not ended in
// strict nesting order.
var ErrNestingViolation = errors.New("node nesting violation")

// Builder turns a sequence of Begin/End calls into the frame's node tree.
// The shape of the tree follows the call order: every node begun while
// another is open becomes its child.
type Builder struct {
	f     *Frame
	stack []int32
}

// NodeOption configures a node at Begin.
type NodeOption func(*nodeConfig)

type nodeConfig struct {
	key     *string
	patches []StylePatch
	sticky  Sticky
	bg      *Background
	sense   Sense
	widget  Widget
}

// WithKey gives the node an explicit key instead of its sibling ordinal,
// keeping its ID stable when siblings are inserted, removed or reordered.
func WithKey(parts ...any) NodeOption {
	key := Key(parts...)
	return func(c *nodeConfig) { c.key = &key }
}

// WithStyle applies patches as if passed to Builder.Style.
func WithStyle(patches ...StylePatch) NodeOption {
	return func(c *nodeConfig) { c.patches = append(c.patches, patches...) }
}

// WithSticky pins the node inside its nearest scrolling ancestor.
func WithSticky(s Sticky) NodeOption {
	return func(c *nodeConfig) { c.sticky = s }
}

// WithBackground paints bg under the node's content.
func WithBackground(bg Background) NodeOption {
	return func(c *nodeConfig) { c.bg = &bg }
}

// WithSense sets how the node takes part in hit-testing.
func WithSense(s Sense) NodeOption {
	return func(c *nodeConfig) { c.sense = s }
}

func withWidget(w Widget) NodeOption {
	return func(c *nodeConfig) { c.widget = w }
}

func (b *Builder) top() int32 {
	if len(b.stack) == 0 {
		panic(fmt.Errorf("%w: no open node", ErrNestingViolation))
	}
	return b.stack[len(b.stack)-1]
}

// Begin opens a child of the innermost open node.
func (b *Builder) Begin(opts ...NodeOption) NodeHandle {
	b.f.expect(phaseBuilding)
	var cfg nodeConfig
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.bg != nil && cfg.sense != SenseClick {
		if name, ok := cfg.bg.needsResponse(); ok {
			panic(fmt.Errorf("%w: %s is computed from the response of a node sensing %s", ErrResponseRequired, name, cfg.sense))
		}
	}

	parent := b.top()
	pn := &b.f.arena.nodes[parent]
	var id ID
	if cfg.key != nil {
		id = pn.id.WithKey(*cfg.key)
	} else {
		id = pn.id.WithOrdinal(pn.ordinal)
		pn.ordinal++
	}
	h := b.f.arena.alloc(parent, id)
	b.stack = append(b.stack, h.slot)
	b.f.register(id)

	n := b.f.arena.get(h)
	n.widget = cfg.widget
	n.sticky = cfg.sticky
	n.bg = cfg.bg
	n.sense = cfg.sense
	n.response = b.f.respond(id, cfg.sense)
	if len(cfg.patches) > 0 {
		// A rejected patch is recorded on the node and logged.
		_ = b.Style(h, cfg.patches...)
	}
	return h
}

// Style merges patches into the node's style. A patch holding an invalid
// length is rejected: the node is laid out as hidden and the error is
// returned and logged. The rest of the frame is unaffected.
func (b *Builder) Style(h NodeHandle, patches ...StylePatch) error {
	n := b.f.arena.get(h)
	if !n.open {
		panic(fmt.Errorf("%w: style set on ended node %s", ErrNestingViolation, n.id))
	}
	for _, p := range patches {
		if err := p.Validate(); err != nil {
			n.rejected = true
			debug.Warnf("node %s rejected: %v", n.id, err)
			return err
		}
		n.patch = n.patch.Merge(p)
	}
	return nil
}

// End closes h, which must be the innermost open node.
func (b *Builder) End(h NodeHandle) {
	n := b.f.arena.get(h)
	if len(b.stack) == 0 || b.stack[len(b.stack)-1] != h.slot {
		panic(fmt.Errorf("%w: node %s is not the innermost open node", ErrNestingViolation, n.id))
	}
	n.style = layout.DefaultStyle()
	n.patch.Apply(&n.style)
	if n.rejected {
		n.style.Display = layout.DisplayNone
	}
	n.open = false
	b.stack = b.stack[:len(b.stack)-1]
}

// Node adds a container and runs fn to fill it.
func (b *Builder) Node(fn func(b *Builder), opts ...NodeOption) *Response {
	h := b.Begin(opts...)
	if fn != nil {
		fn(b)
	}
	b.End(h)
	return b.f.arena.get(h).exposed()
}

// Add adds a leaf drawn by w.
func (b *Builder) Add(w Widget, opts ...NodeOption) *Response {
	h := b.Begin(append(opts, withWidget(w))...)
	b.End(h)
	return b.f.arena.get(h).exposed()
}

// Current returns the handle of the innermost open node.
func (b *Builder) Current() NodeHandle {
	return NodeHandle{slot: b.top(), frame: b.f.arena.frame}
}

// ID returns the ID of the innermost open node.
func (b *Builder) ID() ID {
	return b.f.arena.nodes[b.top()].id
}

// Memory returns the state kept across frames.
func (b *Builder) Memory() *Memory { return b.f.surface.Memory }

// Visuals returns the active theme.
func (b *Builder) Visuals() *Visuals { return &b.f.surface.Visuals }

// Pass returns the index of the current sub-pass, starting at 0.
func (b *Builder) Pass() int { return b.f.pass }

// AfterSolve registers fn to run once the frame's layout is solved, before
// painting. Hooks may read rects through the Frame.
func (b *Builder) AfterSolve(fn func(f *Frame)) {
	b.f.afterSolve = append(b.f.afterSolve, fn)
}

func (b *Builder) openPatch() StylePatch {
	return b.f.arena.nodes[b.top()].patch
}
