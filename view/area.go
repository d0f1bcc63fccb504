package view

// Area is a rectangular region of the terminal surface. A zero-area region
// is legal and means the region is currently hidden.
type Area struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// NewArea returns an area with the given geometry.
func NewArea(left, top, width, height int) Area {
	return Area{Left: left, Top: top, Width: width, Height: height}
}

// chromeRows is the number of surface rows reserved outside the table:
// one title row at the top, then status, input/hint and one spare row at
// the bottom.
const chromeRows = 4

// Layout partitions the terminal surface into the fixed chrome regions.
// Regions are derived state, recomputed only when the surface size changes;
// idle refresh ticks cost nothing.
type Layout struct {
	Title  Area
	Table  Area
	Status Area
	Input  Area
	Hint   Area

	lastWidth  int
	lastHeight int
}

// Resize recomputes the regions for a width x height surface. It returns
// false without touching anything when the size is unchanged since the last
// call, so the caller knows whether a full clear and redraw is needed.
func (l *Layout) Resize(width, height int) bool {
	if width == l.lastWidth && height == l.lastHeight {
		return false
	}
	l.lastWidth = width
	l.lastHeight = height

	tableHeight := height - chromeRows
	if tableHeight < 0 {
		tableHeight = 0
	}

	l.Title = NewArea(0, 0, width, 1)
	l.Table = NewArea(0, 1, width, tableHeight)
	l.Status = NewArea(0, height-3, width, 1)
	l.Input = NewArea(0, height-2, width/2, 1)
	l.Hint = NewArea(width/2, height-2, width-width/2, 1)
	return true
}
