package layout

import "math"

// flexItem holds intermediate calculation state for a child.
// This is allocated per arrange call, not stored on nodes.
type flexItem struct {
	node        int
	style       Style
	mainMargin  [2]float64 // start, end
	crossMargin [2]float64
	hypothetic  float64
	minMain     float64
	maxMain     float64
	mainSize    float64
	crossSize   float64
	mainPos     float64
	crossPos    float64
	contentMain bool // basis came from content
}

func (f *flexItem) outerMain() float64 {
	return f.mainSize + f.mainMargin[0] + f.mainMargin[1]
}

func (f *flexItem) outerCross() float64 {
	return f.crossSize + f.crossMargin[0] + f.crossMargin[1]
}

// arrangeFlex implements a single-line flexbox algorithm.
func (s *solver) arrangeFlex(i int, origin Point, box Size, commit bool) Size {
	style := s.nodes[i].Style
	isRow := style.Direction == Row
	kids := s.visibleChildren(i, origin, commit)
	if len(kids) == 0 {
		return Size{}
	}

	mainAvail, crossAvail := box.W, box.H
	gap := style.Gap.W
	mainOverflow := style.Overflow.X
	if !isRow {
		mainAvail, crossAvail = crossAvail, mainAvail
		gap = style.Gap.H
		mainOverflow = style.Overflow.Y
	}
	totalGap := gap * float64(len(kids)-1)

	// Phase 1: hypothetical main sizes
	items := make([]flexItem, len(kids))
	used := totalGap
	for k, c := range kids {
		it := &items[k]
		it.node = c
		it.style = s.nodes[c].Style
		m := it.style.Margin
		if isRow {
			it.mainMargin = [2]float64{m.Left, m.Right}
			it.crossMargin = [2]float64{m.Top, m.Bottom}
		} else {
			it.mainMargin = [2]float64{m.Top, m.Bottom}
			it.crossMargin = [2]float64{m.Left, m.Right}
		}

		basis, ok := it.style.FlexBasis.Resolve(mainAvail)
		if !ok {
			basis, ok = it.style.Size.axis(isRow).Resolve(mainAvail)
		}
		if !ok {
			it.contentMain = true
			basis = mainOf(s.measure(c, childAvail(isRow, math.Inf(1), crossAvail-it.crossMargin[0]-it.crossMargin[1])), isRow)
		}
		it.minMain = s.autoMinMain(it, isRow, mainAvail, basis)
		it.maxMain = math.Inf(1)
		if v, ok := it.style.MaxSize.axis(isRow).Resolve(mainAvail); ok {
			it.maxMain = v
		}
		it.hypothetic = clampRange(basis, it.minMain, it.maxMain)
		it.mainSize = it.hypothetic
		used += it.outerMain()
	}

	// Phase 2: distribute free space
	if finite(mainAvail) {
		free := mainAvail - used
		switch {
		case free > 0:
			s.grow(items, free)
		case free < 0 && !mainOverflow.Clips():
			s.shrink(items, -free)
		}
	}

	// Phase 3: cross sizes
	lineCross := crossAvail
	for k := range items {
		it := &items[k]
		align := style.AlignItems
		if it.style.AlignSelf != nil {
			align = *it.style.AlignSelf
		}
		crossDim := it.style.Size.axis(!isRow)
		margin := it.crossMargin[0] + it.crossMargin[1]
		if v, ok := crossDim.Resolve(crossAvail); ok {
			it.crossSize = v
		} else if align == AlignStretch && finite(crossAvail) {
			it.crossSize = crossAvail - margin
		} else {
			it.crossSize = mainOf(s.measure(it.node, childAvail(isRow, it.mainSize, crossAvail-margin)), !isRow)
		}
		it.crossSize = clampMinMax(it.crossSize, it.style.MinSize.axis(!isRow), it.style.MaxSize.axis(!isRow), crossAvail)
	}
	if !finite(lineCross) {
		lineCross = 0
		for k := range items {
			lineCross = math.Max(lineCross, items[k].outerCross())
		}
		// Stretch auto-sized items to the line now that it is known.
		for k := range items {
			it := &items[k]
			align := style.AlignItems
			if it.style.AlignSelf != nil {
				align = *it.style.AlignSelf
			}
			if align == AlignStretch && it.style.Size.axis(!isRow).IsAuto() {
				it.crossSize = clampMinMax(lineCross-it.crossMargin[0]-it.crossMargin[1],
					it.style.MinSize.axis(!isRow), it.style.MaxSize.axis(!isRow), lineCross)
			}
		}
	}

	// Phase 4: justify along the main axis
	used = totalGap
	for k := range items {
		used += items[k].outerMain()
	}
	free := 0.0
	if finite(mainAvail) {
		free = math.Max(0, mainAvail-used)
	}
	offset := justifyOffset(style.JustifyContent, free, len(items))
	spacing := justifySpacing(style.JustifyContent, free, len(items))

	extent := Size{}
	for k := range items {
		it := &items[k]
		align := style.AlignItems
		if it.style.AlignSelf != nil {
			align = *it.style.AlignSelf
		}
		it.mainPos = offset + it.mainMargin[0]
		it.crossPos = alignOffset(align, lineCross, it.outerCross()) + it.crossMargin[0]
		offset += it.outerMain() + gap + spacing

		var r Rect
		if isRow {
			r = Rect{X: origin.X + it.mainPos, Y: origin.Y + it.crossPos, W: it.mainSize, H: it.crossSize}
		} else {
			r = Rect{X: origin.X + it.crossPos, Y: origin.Y + it.mainPos, W: it.crossSize, H: it.mainSize}
		}
		end := Size{W: r.Right() - origin.X, H: r.Bottom() - origin.Y}
		if isRow {
			end.W += it.mainMargin[1]
			end.H += it.crossMargin[1]
		} else {
			end.H += it.mainMargin[1]
			end.W += it.crossMargin[1]
		}
		extent = extent.Max(end)
		if commit {
			s.place(it.node, r)
		}
	}
	return extent
}

// autoMinMain returns the minimum main size of a flex item. Items that clip
// their content may shrink to zero; content sized items never shrink below
// their content height in a column, nor below a leaf's min-content width in a row.
func (s *solver) autoMinMain(it *flexItem, isRow bool, mainAvail, basis float64) float64 {
	if v, ok := it.style.MinSize.axis(isRow).Resolve(mainAvail); ok {
		return v
	}
	overflow := it.style.Overflow.Y
	if isRow {
		overflow = it.style.Overflow.X
	}
	if overflow.Clips() || !it.contentMain {
		return 0
	}
	if !isRow {
		return basis
	}
	if n := s.nodes[it.node]; n.Measure != nil && len(s.children[it.node]) == 0 {
		return n.Measure(0).W + n.Style.insets().Horizontal()
	}
	return 0
}

func (s *solver) grow(items []flexItem, free float64) {
	total := 0.0
	for k := range items {
		total += items[k].style.FlexGrow
	}
	if total == 0 {
		return
	}
	for k := range items {
		it := &items[k]
		if it.style.FlexGrow > 0 {
			it.mainSize = clampRange(it.hypothetic+free*it.style.FlexGrow/total, it.minMain, it.maxMain)
		}
	}
}

// shrink removes deficit from the items, weighting each by shrink factor
// times hypothetical size as CSS does.
func (s *solver) shrink(items []flexItem, deficit float64) {
	total := 0.0
	for k := range items {
		total += items[k].style.FlexShrink * items[k].hypothetic
	}
	if total == 0 {
		return
	}
	for k := range items {
		it := &items[k]
		weight := it.style.FlexShrink * it.hypothetic
		if weight > 0 {
			it.mainSize = clampRange(it.hypothetic-deficit*weight/total, it.minMain, it.maxMain)
		}
	}
}

// justifyOffset returns the initial offset for positioning children
// based on the justify mode and available free space.
func justifyOffset(justify Justify, free float64, count int) float64 {
	if free <= 0 || count == 0 {
		return 0
	}
	switch justify {
	case JustifyEnd:
		return free
	case JustifyCenter:
		return free / 2
	case JustifySpaceAround:
		return free / float64(count*2)
	case JustifySpaceEvenly:
		return free / float64(count+1)
	default: // JustifyStart, JustifySpaceBetween
		return 0
	}
}

// justifySpacing returns the extra spacing between children
// based on the justify mode and available free space.
func justifySpacing(justify Justify, free float64, count int) float64 {
	if free <= 0 || count <= 1 && justify != JustifySpaceAround {
		return 0
	}
	switch justify {
	case JustifySpaceBetween:
		return free / float64(count-1)
	case JustifySpaceAround:
		return free / float64(count)
	case JustifySpaceEvenly:
		return free / float64(count+1)
	default:
		return 0
	}
}

func childAvail(isRow bool, main, cross float64) Size {
	if isRow {
		return Size{W: main, H: cross}
	}
	return Size{W: cross, H: main}
}

func mainOf(sz Size, isRow bool) float64 {
	if isRow {
		return sz.W
	}
	return sz.H
}

// clampRange restricts v to [lo, hi]. If lo > hi, lo wins.
func clampRange(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
