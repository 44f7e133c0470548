package layout

import "math"

type gridItem struct {
	node             int
	style            Style
	row, col         int // 0-based start track
	rowSpan, colSpan int
}

type cell struct{ row, col int }

// arrangeGrid places the children of a grid container into tracks and
// sizes the tracks from their content.
func (s *solver) arrangeGrid(i int, origin Point, box Size, commit bool) Size {
	style := s.nodes[i].Style
	kids := s.visibleChildren(i, origin, commit)
	if len(kids) == 0 {
		return Size{}
	}

	items := s.placeGridItems(style, kids)
	numCols, numRows := len(style.GridTemplateColumns), len(style.GridTemplateRows)
	for _, it := range items {
		numCols = max(numCols, it.col+it.colSpan)
		numRows = max(numRows, it.row+it.rowSpan)
	}

	cols := s.sizeTracks(trackList(style.GridTemplateColumns, style.GridAutoColumns, numCols),
		items, box.W, style.Gap.W, nil)
	rows := s.sizeTracks(trackList(style.GridTemplateRows, style.GridAutoRows, numRows),
		items, box.H, style.Gap.H, cols)

	colStart := trackStarts(cols, style.Gap.W)
	rowStart := trackStarts(rows, style.Gap.H)

	if commit {
		for _, it := range items {
			area := Rect{
				X: origin.X + colStart[it.col],
				Y: origin.Y + rowStart[it.row],
				W: spanSize(cols, it.col, it.colSpan, style.Gap.W),
				H: spanSize(rows, it.row, it.rowSpan, style.Gap.H),
			}
			align := style.AlignItems
			if it.style.AlignSelf != nil {
				align = *it.style.AlignSelf
			}
			s.place(it.node, s.gridItemRect(it, area, align))
		}
	}

	return Size{
		W: spanSize(cols, 0, len(cols), style.Gap.W),
		H: spanSize(rows, 0, len(rows), style.Gap.H),
	}
}

// placeGridItems resolves grid lines for every child. Items with both lines
// definite are placed first, then items locked to a row, then the rest in
// row-major order following an auto-placement cursor.
func (s *solver) placeGridItems(style Style, kids []int) []gridItem {
	explicitCols := len(style.GridTemplateColumns)
	explicitRows := len(style.GridTemplateRows)
	numCols := max(explicitCols, 1)

	items := make([]gridItem, len(kids))
	for k, c := range kids {
		st := s.nodes[c].Style
		items[k] = gridItem{
			node:    c,
			style:   st,
			row:     -1,
			col:     -1,
			rowSpan: st.GridRow.span(explicitRows),
			colSpan: st.GridColumn.span(explicitCols),
		}
		if st.GridRow.Start > 0 {
			items[k].row = st.GridRow.Start - 1
		}
		if st.GridColumn.Start > 0 {
			items[k].col = st.GridColumn.Start - 1
			numCols = max(numCols, items[k].col+items[k].colSpan)
		} else {
			numCols = max(numCols, items[k].colSpan)
		}
	}

	occupied := make(map[cell]bool)
	free := func(it *gridItem, row, col int) bool {
		for r := row; r < row+it.rowSpan; r++ {
			for c := col; c < col+it.colSpan; c++ {
				if occupied[cell{r, c}] {
					return false
				}
			}
		}
		return true
	}
	mark := func(it *gridItem) {
		for r := it.row; r < it.row+it.rowSpan; r++ {
			for c := it.col; c < it.col+it.colSpan; c++ {
				occupied[cell{r, c}] = true
			}
		}
	}

	for k := range items {
		if it := &items[k]; it.row >= 0 && it.col >= 0 {
			mark(it)
		}
	}
	for k := range items {
		it := &items[k]
		if it.row < 0 || it.col >= 0 {
			continue
		}
		it.col = numCols
		for c := 0; c+it.colSpan <= numCols; c++ {
			if free(it, it.row, c) {
				it.col = c
				break
			}
		}
		numCols = max(numCols, it.col+it.colSpan)
		mark(it)
	}

	cursor := cell{}
	for k := range items {
		it := &items[k]
		if it.row >= 0 {
			continue
		}
		if it.col >= 0 {
			r := cursor.row
			for !free(it, r, it.col) {
				r++
			}
			it.row = r
			mark(it)
			continue
		}
		r, c := cursor.row, cursor.col
		for {
			if c+it.colSpan > numCols {
				r, c = r+1, 0
				continue
			}
			if free(it, r, c) {
				break
			}
			c++
		}
		it.row, it.col = r, c
		cursor = cell{row: r, col: c + it.colSpan}
		mark(it)
	}
	return items
}

// sizeTracks resolves the size of each track on one axis. When colSizes is
// nil the axis is horizontal; otherwise the tracks are rows and items are
// measured at the width of the columns they span.
func (s *solver) sizeTracks(tracks []Track, items []gridItem, avail, gap float64, colSizes []float64) []float64 {
	horizontal := colSizes == nil
	sizes := make([]float64, len(tracks))
	content := make([]bool, len(tracks))
	totalFr := 0.0
	for k, t := range tracks {
		switch t.Kind {
		case TrackLength:
			sizes[k] = t.Value
		case TrackFr:
			totalFr += t.Value
			content[k] = true
		default:
			content[k] = true
		}
	}

	contribution := func(it gridItem) float64 {
		m := it.style.Margin
		if horizontal {
			return s.measure(it.node, Unbounded()).W + m.Horizontal()
		}
		w := spanSize(colSizes, it.col, it.colSpan, 0) - m.Horizontal()
		return s.measure(it.node, Size{W: math.Max(0, w), H: math.Inf(1)}).H + m.Vertical()
	}
	start := func(it gridItem) (int, int) {
		if horizontal {
			return it.col, it.colSpan
		}
		return it.row, it.rowSpan
	}

	for _, it := range items {
		if k, span := start(it); span == 1 && content[k] {
			sizes[k] = math.Max(sizes[k], contribution(it))
		}
	}
	for _, it := range items {
		k, span := start(it)
		if span == 1 {
			continue
		}
		need := contribution(it) - spanSize(sizes, k, span, gap)
		if need <= 0 {
			continue
		}
		var targets []int
		for t := k; t < k+span; t++ {
			if content[t] {
				targets = append(targets, t)
			}
		}
		for _, t := range targets {
			sizes[t] += need / float64(len(targets))
		}
	}

	if !finite(avail) {
		return sizes
	}
	leftover := avail - spanSize(sizes, 0, len(sizes), gap)
	if totalFr > 0 {
		fixed := 0.0
		for k, t := range tracks {
			if t.Kind != TrackFr {
				fixed += sizes[k]
			}
		}
		share := (avail - fixed - gap*float64(max(len(sizes)-1, 0))) / totalFr
		for k, t := range tracks {
			if t.Kind == TrackFr {
				sizes[k] = math.Max(sizes[k], share*t.Value)
			}
		}
		return sizes
	}
	if leftover > 0 {
		var autos []int
		for k, t := range tracks {
			if t.Kind == TrackAuto {
				autos = append(autos, k)
			}
		}
		for _, k := range autos {
			sizes[k] += leftover / float64(len(autos))
		}
	}
	return sizes
}

func (s *solver) gridItemRect(it gridItem, area Rect, align Align) Rect {
	m := it.style.Margin
	inner := area.Inset(m)
	w, okW := it.style.Size.W.Resolve(inner.W)
	h, okH := it.style.Size.H.Resolve(inner.H)
	if !okW || !okH {
		if align == AlignStretch {
			if !okW {
				w = inner.W
			}
			if !okH {
				h = inner.H
			}
		} else {
			availW := inner.W
			if okW {
				availW = w
			}
			sz := s.measure(it.node, Size{W: availW, H: math.Inf(1)})
			if !okW {
				w = sz.W
			}
			if !okH {
				h = sz.H
			}
		}
	}
	w = clampMinMax(w, it.style.MinSize.W, it.style.MaxSize.W, inner.W)
	h = clampMinMax(h, it.style.MinSize.H, it.style.MaxSize.H, inner.H)
	return Rect{
		X: inner.X + alignOffset(align, inner.W, w),
		Y: inner.Y + alignOffset(align, inner.H, h),
		W: w,
		H: h,
	}
}

func trackList(explicit []Track, auto Track, count int) []Track {
	tracks := make([]Track, count)
	copy(tracks, explicit)
	for k := len(explicit); k < count; k++ {
		tracks[k] = auto
	}
	return tracks
}

func trackStarts(sizes []float64, gap float64) []float64 {
	starts := make([]float64, len(sizes))
	pos := 0.0
	for k, sz := range sizes {
		starts[k] = pos
		pos += sz + gap
	}
	return starts
}

// spanSize returns the size of span tracks starting at k, including the
// gaps between them.
func spanSize(sizes []float64, k, span int, gap float64) float64 {
	if span <= 0 {
		return 0
	}
	total := 0.0
	for t := k; t < k+span && t < len(sizes); t++ {
		total += sizes[t]
	}
	return total + gap*float64(span-1)
}
