package layout

// Display selects the layout algorithm of a node.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayGrid
	DisplayNone // Not laid out, zero rect
)

// Direction specifies the main axis of a flex container.
type Direction uint8

const (
	Row    Direction = iota // Children laid out left-to-right
	Column                  // Children laid out top-to-bottom
)

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // Pack at start
	JustifyEnd                         // Pack at end
	JustifyCenter                      // Center children
	JustifySpaceBetween                // Even space between, none at edges
	JustifySpaceAround                 // Even space around each child
	JustifySpaceEvenly                 // Equal space between and at edges
)

// Align specifies how children are positioned on the cross axis.
// Grid containers apply it to both axes of a cell.
type Align uint8

const (
	AlignStretch Align = iota // Stretch to fill cross axis
	AlignStart                // Align to start of cross axis
	AlignEnd                  // Align to end of cross axis
	AlignCenter               // Center on cross axis
)

// Overflow controls whether content larger than the node grows it.
type Overflow uint8

const (
	OverflowVisible Overflow = iota // Content contributes to the node size
	OverflowHidden                  // Content is clipped
	OverflowScroll                  // Content is clipped and scrollable
)

// OverflowXY holds the overflow mode of each axis.
type OverflowXY struct {
	X, Y Overflow
}

// Clips reports whether the axis clips its content.
func (o Overflow) Clips() bool { return o != OverflowVisible }

// Style contains all layout properties for a node.
type Style struct {
	Display Display

	// Sizing
	Size    SizeDim
	MinSize SizeDim
	MaxSize SizeDim

	// Flex container properties
	Direction      Direction
	JustifyContent Justify
	AlignItems     Align
	Gap            Size // W is the gap between columns, H between rows

	// Flex item properties
	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Dimension
	AlignSelf  *Align // Override parent's AlignItems (nil = inherit)

	// Spacing
	Padding Edges
	Border  Edges
	Margin  Edges

	Overflow OverflowXY

	// Grid container properties
	GridTemplateColumns []Track
	GridTemplateRows    []Track
	GridAutoColumns     Track
	GridAutoRows        Track

	// Grid item properties
	GridRow    Placement
	GridColumn Placement
}

// DefaultStyle returns a Style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		Size:       AutoSize(),
		MinSize:    AutoSize(),
		MaxSize:    AutoSize(),
		Direction:  Row,
		AlignItems: AlignStretch,
		FlexShrink: 1,
		FlexBasis:  Auto(),
	}
}

// Validate reports the first negative or NaN length in the style.
func (s Style) Validate() error {
	for _, d := range []Dimension{
		s.Size.W, s.Size.H, s.MinSize.W, s.MinSize.H, s.MaxSize.W, s.MaxSize.H, s.FlexBasis,
	} {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	values := []float64{s.Gap.W, s.Gap.H, s.FlexGrow, s.FlexShrink}
	for _, e := range []Edges{s.Padding, s.Border, s.Margin} {
		v := e.values()
		values = append(values, v[:]...)
	}
	for _, v := range values {
		if err := checkLength(v); err != nil {
			return err
		}
	}
	for _, tracks := range [][]Track{s.GridTemplateColumns, s.GridTemplateRows, {s.GridAutoColumns, s.GridAutoRows}} {
		for _, t := range tracks {
			if err := checkLength(t.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s Style) insets() Edges {
	return s.Padding.Add(s.Border)
}
