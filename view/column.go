package view

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Align controls how cell text is placed within the column width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Cell is one rendered table cell: display text plus a style from the skin.
type Cell struct {
	Text  string
	Style tcell.Style
}

// Column describes one table column. Render must be pure and total: it is
// called for every visible row on every draw and has to return a placeholder
// cell (typically empty text) for data that has not been computed yet.
type Column[T any] struct {
	Name     string
	MinWidth int
	MaxWidth int
	Align    Align
	Render   func(row T) Cell

	width int // allocated, 0 when hidden
}

// NewColumn returns a left-aligned column with the given width bounds.
func NewColumn[T any](name string, minWidth, maxWidth int, render func(T) Cell) Column[T] {
	return Column[T]{
		Name:     name,
		MinWidth: minWidth,
		MaxWidth: maxWidth,
		Align:    AlignLeft,
		Render:   render,
	}
}

// WithAlign returns the column with its alignment set.
func (c Column[T]) WithAlign(a Align) Column[T] {
	c.Align = a
	return c
}

// Width reports the currently allocated width, 0 when the column is hidden.
func (c Column[T]) Width() int {
	return c.width
}

// allocateWidths distributes available width over the columns in order.
//
// When the minimums do not fit, a prefix of columns gets exactly MinWidth
// while the budget lasts and the rest are hidden. Otherwise every column
// starts at MinWidth and the slack is absorbed left to right, each column
// growing to at most MaxWidth; slack nobody can absorb stays unused.
func allocateWidths[T any](columns []Column[T], available int) {
	needed := 0
	for i := range columns {
		needed += columns[i].MinWidth
	}

	if needed > available {
		budget := available
		hidden := false
		for i := range columns {
			if !hidden && columns[i].MinWidth <= budget {
				columns[i].width = columns[i].MinWidth
				budget -= columns[i].MinWidth
			} else {
				hidden = true
				columns[i].width = 0
			}
		}
		return
	}

	slack := available - needed
	for i := range columns {
		grow := columns[i].MaxWidth - columns[i].MinWidth
		if grow > slack {
			grow = slack
		}
		columns[i].width = columns[i].MinWidth + grow
		slack -= grow
	}
}

// fitCell pads or truncates text to exactly width display cells per the
// alignment. Overlong text is cut with no ellipsis marker.
func fitCell(text string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	text = runewidth.Truncate(text, width, "")
	pad := width - runewidth.StringWidth(text)
	if pad <= 0 {
		return text
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}
