package ui

import (
	"math"

	"github.com/cansyan/flexui/internal/debug"
	"github.com/cansyan/flexui/layout"
)

// DefaultRowHeight is the row height estimate used before any row of a
// virtual grid has been laid out.
const DefaultRowHeight = 1.0

// VirtualParams describes the rows of a virtual grid. Header rows are
// always built; TotalRows counts the rows below them.
type VirtualParams struct {
	HeaderRows int
	TotalRows  int
}

// Window is the slice of rows built in one frame.
type Window struct {
	First      int // index of the first built row
	Count      int
	HeaderRows int
	Total      int
	Estimate   float64 // row height used for rows that are not built
}

// BeforeGap is the height standing in for the rows above the window.
func (w Window) BeforeGap() float64 { return float64(w.First) * w.Estimate }

// AfterGap is the height standing in for the rows below the window.
func (w Window) AfterGap() float64 {
	return float64(w.Total-w.First-w.Count) * w.Estimate
}

// Extent is the height of the whole grid at the estimated row height. It
// does not depend on where the window is.
func (w Window) Extent() float64 {
	return float64(w.HeaderRows+w.Total) * w.Estimate
}

// ComputeWindow returns the rows visible at offset cells below the top of
// the grid in a viewport of the given height. Header rows are assumed to be
// pinned at the top of the viewport and as tall as the estimate, so they
// cover the first header rows of it. A viewport with no height yields an
// empty window.
func ComputeWindow(offset, viewport, estimate float64, p VirtualParams) Window {
	if !(estimate > 0) || math.IsInf(estimate, 0) {
		estimate = DefaultRowHeight
	}
	return bodyWindow(offset, viewport-float64(max(p.HeaderRows, 0))*estimate, estimate, p)
}

// bodyWindow is ComputeWindow for a viewport of which bodyH cells are left
// below the pinned header rows.
func bodyWindow(offset, bodyH, estimate float64, p VirtualParams) Window {
	if !(estimate > 0) || math.IsInf(estimate, 0) {
		estimate = DefaultRowHeight
	}
	total := max(p.TotalRows, 0)
	w := Window{HeaderRows: max(p.HeaderRows, 0), Total: total, Estimate: estimate}
	offset = max(offset, 0)

	first := min(int(math.Floor(offset/estimate)), total)
	if bodyH <= 0 {
		w.First = first
		return w
	}
	last := int(math.Ceil((offset + bodyH) / estimate))
	w.First = first
	w.Count = max(min(last, total)-first, 0)
	return w
}

// RowInfo identifies one row handed to the row callback of VirtualRows.
type RowInfo struct {
	Index   int  // index among header rows or among body rows
	Header  bool // the row is one of the header rows
	GridRow int  // 1-based grid line the row's cells go on
}

// Key returns a node option keying a cell of the row by its logical index,
// so the cell keeps its ID while the window slides.
func (r RowInfo) Key(parts ...any) NodeOption {
	kind := "row"
	if r.Header {
		kind = "header"
	}
	return WithKey(append([]any{kind, r.Index}, parts...)...)
}

// GridRowPatch places a cell on the row's grid line.
func (r RowInfo) GridRowPatch() StylePatch {
	return GridRow(layout.Line(r.GridRow))
}

// rowStats is the running mean of built row heights of one virtual grid,
// where the grid starts inside its scroll container and how tall its header
// rows were laid out.
type rowStats struct {
	sum   float64
	count int
	top   int

	header      float64
	headerKnown bool

	// Samples of every sub-pass replace those of the pass before, so a
	// frame adds its rows once. base is the mean before frame's samples.
	frame     uint64
	baseSum   float64
	baseCount int
}

func (s rowStats) estimate() float64 {
	if s.count == 0 {
		return DefaultRowHeight
	}
	return s.sum / float64(s.count)
}

// bodyHeight is the part of a viewport left below the pinned header rows.
func (s rowStats) bodyHeight(viewport float64, p VirtualParams) float64 {
	if s.headerKnown {
		return viewport - s.header
	}
	return viewport - float64(max(p.HeaderRows, 0))*s.estimate()
}

// beginSamples starts or restarts the samples of frame.
func (s *rowStats) beginSamples(frame uint64) {
	if s.frame != frame {
		s.frame = frame
		s.baseSum, s.baseCount = s.sum, s.count
		return
	}
	s.sum, s.count = s.baseSum, s.baseCount
}

// maxRowSamples bounds the running mean so it keeps following the data.
const maxRowSamples = 1 << 12

func (s *rowStats) add(h float64) {
	if s.count == maxRowSamples {
		s.sum -= s.sum / float64(s.count)
		s.count--
	}
	s.sum += h
	s.count++
}

// VirtualRows fills the open grid node with its header rows and the body
// rows visible in the nearest vertically scrolling ancestor. Rows outside the
// window are replaced by a filler above and a filler below it, so the grid
// keeps the height it would have with every row built. row is called once
// per built row and must place the row's cells with RowInfo.GridRowPatch.
func VirtualRows(b *Builder, p VirtualParams, row func(b *Builder, r RowInfo)) Window {
	mem := b.Memory()
	grid := b.Current()
	id := b.ID()
	stats := mem.rows[id]

	scroller, scrolls := b.scrollAncestor()
	var offset, viewport float64
	if scrolls {
		sid := b.f.arena.get(scroller).id
		offset = float64(mem.ScrollOffset(sid).Y - stats.top)
		if vp, ok := mem.Viewport(sid); ok {
			viewport = float64(vp.H)
		}
	} else {
		debug.Warnf("virtual rows %s have no scrolling ancestor", id)
		viewport = float64(b.f.area.H)
	}
	w := bodyWindow(offset, stats.bodyHeight(viewport, p), stats.estimate(), p)

	line := 1
	headerStart := len(b.f.arena.nodes[grid.slot].children)
	for i := range w.HeaderRows {
		row(b, RowInfo{Index: i, Header: true, GridRow: line})
		line++
	}
	headers := append([]int32(nil), b.f.arena.nodes[grid.slot].children[headerStart:]...)
	filler := func(key string, h float64) {
		b.Add(nil, WithKey(key), WithStyle(
			GridRow(layout.Line(line)),
			GridColumn(layout.FullSpan()),
			Height(layout.Length(h)),
		))
		line++
	}
	if gap := w.BeforeGap(); gap > 0 {
		filler("before", gap)
	}
	// First node of each built body row, for measuring row heights.
	firsts := make([]int32, 0, w.Count)
	for i := w.First; i < w.First+w.Count; i++ {
		before := len(b.f.arena.nodes[grid.slot].children)
		row(b, RowInfo{Index: i, GridRow: line})
		if kids := b.f.arena.nodes[grid.slot].children; len(kids) > before {
			firsts = append(firsts, kids[before])
		}
		line++
	}
	if gap := w.AfterGap(); gap > 0 {
		filler("after", gap)
	}

	b.AfterSolve(func(f *Frame) {
		st := mem.rows[id]
		st.beginSamples(f.serial)
		for _, slot := range firsts {
			st.add(f.arena.nodes[slot].solved.Rect.H)
		}
		if len(headers) > 0 {
			top, bottom := math.Inf(1), math.Inf(-1)
			for _, slot := range headers {
				if n := &f.arena.nodes[slot]; !n.hidden() {
					top, bottom = math.Min(top, n.solved.Rect.Y), math.Max(bottom, n.solved.Rect.Bottom())
				}
			}
			if bottom > top {
				st.header, st.headerKnown = bottom-top, true
			}
		}
		next := w
		if scrolls {
			sid := f.ID(scroller)
			st.top = 0
			if scroller != grid {
				st.top = f.Rect(grid).Y - f.ContentRect(scroller).Y + mem.ScrollOffset(sid).Y
			}
			off := float64(mem.ScrollOffset(sid).Y - st.top)
			next = bodyWindow(off, st.bodyHeight(float64(f.ContentRect(scroller).H), p), st.estimate(), p)
		}
		mem.rows[id] = st
		if next != w {
			f.RequestPass()
		}
	})
	return w
}

// scrollAncestor returns the nearest open node that scrolls vertically.
func (b *Builder) scrollAncestor() (NodeHandle, bool) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		slot := b.stack[i]
		if _, y := b.f.arena.nodes[slot].patch.scrolls(); y {
			return NodeHandle{slot: slot, frame: b.f.arena.frame}, true
		}
	}
	return NodeHandle{}, false
}
