package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntTable(viewport int, rows ...int) *TableView[int] {
	t := NewTableView([]Column[int]{})
	t.SetViewportHeight(viewport)
	t.Append(rows...)
	return t
}

func offsetInvariant(t *testing.T, tv *TableView[int]) {
	t.Helper()
	max := tv.RowCount() - tv.viewportHeight
	if max < 0 {
		max = 0
	}
	require.GreaterOrEqual(t, tv.offset, 0)
	require.LessOrEqual(t, tv.offset, max)
}

func Test_TableView_ScrollClamping(t *testing.T) {
	tv := newIntTable(5, make([]int, 30)...)

	tv.ScrollLines(-100)
	assert.Equal(t, 0, tv.offset)
	offsetInvariant(t, tv)

	tv.ScrollLines(100)
	assert.Equal(t, 25, tv.offset)
	assert.True(t, tv.IsAtBottom())

	tv.ScrollLines(-3)
	assert.Equal(t, 22, tv.offset)
	assert.False(t, tv.IsAtBottom())

	tv.ScrollPages(-1)
	assert.Equal(t, 17, tv.offset)
	tv.ScrollPages(5)
	assert.Equal(t, 25, tv.offset)
	offsetInvariant(t, tv)
}

func Test_TableView_OffsetInvariantUnderOpSequence(t *testing.T) {
	tv := newIntTable(4)
	ops := []func(){
		func() { tv.Append(1, 2, 3) },
		func() { tv.ScrollLines(7) },
		func() { tv.SetViewportHeight(2) },
		func() { tv.ScrollPages(-3) },
		func() { tv.Append(4, 5, 6, 7, 8) },
		func() { tv.ScrollLines(-1) },
		func() { tv.SetViewportHeight(10) },
		func() { tv.ScrollPages(2) },
		func() { tv.SetViewportHeight(1) },
		func() { tv.ScrollLines(1000) },
	}
	for _, op := range ops {
		op()
		offsetInvariant(t, tv)
	}
}

func Test_TableView_AppendDoesNotMoveOffset(t *testing.T) {
	tv := newIntTable(3, 1, 2, 3, 4, 5)
	tv.ScrollLines(-100)
	require.Equal(t, 0, tv.offset)

	tv.Append(6, 7, 8)
	assert.Equal(t, 0, tv.offset, "append must not scroll a user who moved away")
	assert.False(t, tv.IsAtBottom())
}

func Test_TableView_StickyTailProtocol(t *testing.T) {
	tv := newIntTable(3, 1, 2, 3, 4)
	tv.ScrollToBottom()

	// The controller's refresh protocol: capture before, append, restore.
	for _, batch := range [][]int{{5}, {6, 7}, {8, 9, 10, 11}} {
		wasAtBottom := tv.IsAtBottom()
		tv.Append(batch...)
		if wasAtBottom {
			tv.ScrollToBottom()
		}
		assert.True(t, tv.IsAtBottom())
	}
	assert.Equal(t, 8, tv.offset)
}

func Test_TableView_ViewportShrinkReclamps(t *testing.T) {
	tv := newIntTable(10, make([]int, 12)...)
	tv.ScrollToBottom()
	require.Equal(t, 2, tv.offset)

	tv.SetViewportHeight(20)
	assert.Equal(t, 0, tv.offset, "growing the viewport pulls the offset back in range")

	tv.SetViewportHeight(5)
	offsetInvariant(t, tv)
}

func Test_TableView_VisibleRange(t *testing.T) {
	tv := newIntTable(5, make([]int, 8)...)
	lo, hi := tv.VisibleRange()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 5, hi)

	tv.ScrollToBottom()
	lo, hi = tv.VisibleRange()
	assert.Equal(t, 3, lo)
	assert.Equal(t, 8, hi)

	empty := newIntTable(5)
	lo, hi = empty.VisibleRange()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}
