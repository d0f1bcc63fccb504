package view

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TableView is a virtualized table over an append-only row sequence. It owns
// the scroll state and only ever touches the rows inside the current
// viewport, so the cost of a draw does not grow with history size. Rows are
// never removed or reordered.
type TableView[T any] struct {
	columns []Column[T]
	rows    []T

	offset         int
	viewportHeight int
	width          int
}

// NewTableView returns an empty table over the given columns. The column
// set is fixed for the lifetime of the view.
func NewTableView[T any](columns []Column[T]) *TableView[T] {
	return &TableView[T]{columns: columns}
}

// RowCount reports how many rows have been appended so far.
func (t *TableView[T]) RowCount() int {
	return len(t.rows)
}

// Append extends the row sequence. The offset is left alone: whether the
// view should follow the new rows is the caller's call, made through
// IsAtBottom before the append and ScrollToBottom after it.
func (t *TableView[T]) Append(rows ...T) {
	t.rows = append(t.rows, rows...)
}

func (t *TableView[T]) maxOffset() int {
	m := len(t.rows) - t.viewportHeight
	if m < 0 {
		return 0
	}
	return m
}

func (t *TableView[T]) clampOffset() {
	if t.offset < 0 {
		t.offset = 0
	}
	if m := t.maxOffset(); t.offset > m {
		t.offset = m
	}
}

// IsAtBottom reports whether the viewport currently shows the last row.
func (t *TableView[T]) IsAtBottom() bool {
	return t.offset == t.maxOffset()
}

// ScrollToBottom moves the viewport so the last row is visible.
func (t *TableView[T]) ScrollToBottom() {
	t.offset = t.maxOffset()
}

// ScrollLines moves the viewport by delta rows, negative is up. Deltas that
// would leave the valid range clamp silently.
func (t *TableView[T]) ScrollLines(delta int) {
	t.offset += delta
	t.clampOffset()
}

// ScrollPages moves the viewport by delta viewport heights.
func (t *TableView[T]) ScrollPages(delta int) {
	t.ScrollLines(delta * t.viewportHeight)
}

// SetViewportHeight updates the number of visible rows and re-clamps the
// offset; shrinking the viewport can pull the offset down.
func (t *TableView[T]) SetViewportHeight(h int) {
	if h < 0 {
		h = 0
	}
	t.viewportHeight = h
	t.clampOffset()
}

// SetWidth reallocates column widths for a new region width.
func (t *TableView[T]) SetWidth(w int) {
	if w < 0 {
		w = 0
	}
	if w == t.width {
		return
	}
	t.width = w
	allocateWidths(t.columns, w)
}

// VisibleRange returns the half-open row index range [lo, hi) currently in
// the viewport.
func (t *TableView[T]) VisibleRange() (lo, hi int) {
	lo = t.offset
	hi = t.offset + t.viewportHeight
	if hi > len(t.rows) {
		hi = len(t.rows)
	}
	return lo, hi
}

// Draw renders the visible rows into the area. Columns with zero allocated
// width are skipped entirely; each visible cell is rendered, fitted to its
// column width and emitted with its style.
func (t *TableView[T]) Draw(screen tcell.Screen, area Area) {
	t.SetViewportHeight(area.Height)
	t.SetWidth(area.Width)

	lo, hi := t.VisibleRange()
	for i := lo; i < hi; i++ {
		y := area.Top + (i - lo)
		x := area.Left
		for c := range t.columns {
			col := &t.columns[c]
			if col.width == 0 {
				continue
			}
			cell := col.Render(t.rows[i])
			emitText(screen, x, y, fitCell(cell.Text, col.width, col.Align), cell.Style)
			x += col.width
		}
	}
}

// VisibleText renders the visible slice as plain text, one line per row,
// columns separated by a single space. Used for copy-to-clipboard.
func (t *TableView[T]) VisibleText() string {
	var b strings.Builder
	lo, hi := t.VisibleRange()
	for i := lo; i < hi; i++ {
		parts := make([]string, 0, len(t.columns))
		for c := range t.columns {
			col := &t.columns[c]
			if col.width == 0 {
				continue
			}
			parts = append(parts, fitCell(col.Render(t.rows[i]).Text, col.width, col.Align))
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, " "), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// emitText draws a string starting at x,y with one style. Wide runes take
// their full display width; drawing past the screen edge is a no-op in
// tcell, so no clipping is needed here.
func emitText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		if w := runewidth.RuneWidth(r); w > 1 {
			x += w
		} else {
			x++
		}
	}
}
