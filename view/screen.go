package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/depvet/depvet/model"
)

// VerifyScreen is the per-tick screen controller: it owns the chrome layout
// and the virtualized dependency table and composes a full refresh from a
// table snapshot. It never blocks; one Update call is one synchronous draw.
type VerifyScreen struct {
	title  string
	skin   *Skin
	layout Layout
	table  *TableView[*model.Dep]
}

// NewVerifyScreen builds the screen with the fixed dependency column set.
func NewVerifyScreen(title string, skin *Skin) *VerifyScreen {
	return &VerifyScreen{
		title: title,
		skin:  skin,
		table: NewTableView(verifyColumns(skin)),
	}
}

// verifyColumns is the fixed, ordered column set of the verify table. Every
// renderer is total: rows whose computation has not landed yet render as
// "?" or empty cells, never fail.
func verifyColumns(skin *Skin) []Column[*model.Dep] {
	return []Column[*model.Dep]{
		NewColumn("module", 10, 60, func(d *model.Dep) Cell {
			return Cell{Text: d.Path, Style: skin.Std}
		}),
		NewColumn("version", 9, 13, func(d *model.Dep) Cell {
			return Cell{Text: d.Version, Style: skin.Std}
		}).WithAlign(AlignRight),
		NewColumn("trust", 6, 6, func(d *model.Dep) Cell {
			cd := d.Computed()
			if cd == nil {
				return Cell{Text: "?", Style: skin.Medium}
			}
			switch cd.Trust {
			case model.VerificationPassed:
				return Cell{Text: "high", Style: skin.Good}
			case model.VerificationInsufficient:
				return Cell{Text: "none", Style: skin.None}
			case model.VerificationFailed:
				return Cell{Text: "NO", Style: skin.Bad}
			default:
				return Cell{Text: "?", Style: skin.Medium}
			}
		}),
		NewColumn("digest", 6, 6, func(d *model.Dep) Cell {
			cd := d.Computed()
			if cd == nil || cd.DigestOK == nil {
				return Cell{Text: "", Style: skin.Std}
			}
			if *cd.DigestOK {
				return Cell{Text: "ok", Style: skin.Good}
			}
			return Cell{Text: "BAD", Style: skin.Bad}
		}).WithAlign(AlignCenter),
		NewColumn("last trusted", 12, 16, func(d *model.Dep) Cell {
			cd := d.Computed()
			if cd == nil {
				return Cell{Text: "?", Style: skin.Medium}
			}
			return Cell{Text: cd.LatestTrusted, Style: skin.Std}
		}).WithAlign(AlignRight),
		NewColumn("reviews", 3, 3, func(d *model.Dep) Cell {
			cd := d.Computed()
			if cd == nil {
				return Cell{Text: "?", Style: skin.Medium}
			}
			return Cell{Text: CountStr(cd.Reviews.Version), Style: skin.Std}
		}).WithAlign(AlignCenter),
		NewColumn("reviews", 3, 3, func(d *model.Dep) Cell {
			cd := d.Computed()
			if cd == nil {
				return Cell{Text: "?", Style: skin.Medium}
			}
			return Cell{Text: CountStr(cd.Reviews.Total), Style: skin.Std}
		}).WithAlign(AlignCenter),
		NewColumn("issues", 2, 2, func(d *model.Dep) Cell {
			if cd := d.Computed(); cd != nil && cd.Issues.Trusted > 0 {
				return Cell{Text: fmt.Sprintf("%d", cd.Issues.Trusted), Style: skin.Bad}
			}
			return Cell{Text: "", Style: skin.Std}
		}).WithAlign(AlignRight),
		NewColumn("issues", 3, 3, func(d *model.Dep) Cell {
			if cd := d.Computed(); cd != nil && cd.Issues.Total > 0 {
				return Cell{Text: fmt.Sprintf("%d", cd.Issues.Total), Style: skin.Medium}
			}
			return Cell{Text: "", Style: skin.Std}
		}).WithAlign(AlignRight),
		NewColumn("owners", 2, 2, func(d *model.Dep) Cell {
			if cd := d.Computed(); cd != nil && cd.Owners.Trusted > 0 {
				return Cell{Text: fmt.Sprintf("%d", cd.Owners.Trusted), Style: skin.Good}
			}
			return Cell{Text: "", Style: skin.Std}
		}).WithAlign(AlignRight),
		NewColumn("owners", 3, 3, func(d *model.Dep) Cell {
			if cd := d.Computed(); cd != nil && cd.Owners.Total > 0 {
				return Cell{Text: fmt.Sprintf("%d", cd.Owners.Total), Style: skin.Std}
			}
			return Cell{Text: "", Style: skin.Std}
		}).WithAlign(AlignRight),
		NewColumn("l.o.c.", 6, 6, func(d *model.Dep) Cell {
			cd := d.Computed()
			if cd == nil || cd.Loc == nil {
				return Cell{Text: "", Style: skin.Std}
			}
			return Cell{Text: CountStr(*cd.Loc), Style: skin.Std}
		}).WithAlign(AlignRight),
	}
}

// Update performs one full refresh: resize check, title, table (placeholder
// or live rows), status, input and hint, in that order.
func (s *VerifyScreen) Update(screen tcell.Screen, snap model.Snapshot) {
	w, h := screen.Size()
	if s.layout.Resize(w, h) {
		screen.Clear()
		s.table.SetViewportHeight(s.layout.Table.Height)
		s.table.SetWidth(s.layout.Table.Width)
	}
	s.drawTitle(screen)
	s.updateTable(screen, snap)
	s.drawStatus(screen, snap.Status)
	s.drawInput(screen)
	s.drawHint(screen, snap.Status)
}

func (s *VerifyScreen) drawTitle(screen tcell.Screen) {
	drawLine(screen, s.layout.Title, s.title, s.skin.Title)
}

// updateTable ingests rows that arrived since the last tick and draws the
// visible slice. The at-bottom state is captured before the append so the
// view follows new rows only while the user has not scrolled away.
func (s *VerifyScreen) updateTable(screen tcell.Screen, snap model.Snapshot) {
	fillArea(screen, s.layout.Table, s.skin.Std)
	if snap.Status.BeforeRows() {
		drawLine(screen, s.layout.Table, "preparing table... You may quit at any time with q", s.skin.Medium)
		return
	}
	wasAtBottom := s.table.IsAtBottom()
	for i := s.table.RowCount(); i < len(snap.Deps); i++ {
		s.table.Append(snap.Deps[i])
	}
	if wasAtBottom {
		s.table.ScrollToBottom()
	}
	s.table.Draw(screen, s.layout.Table)
}

func (s *VerifyScreen) drawStatus(screen tcell.Screen, status model.ComputationStatus) {
	var text string
	switch status.Phase {
	case model.PhaseNew:
		text = "Computation starting..."
	case model.PhaseScanning:
		text = fmt.Sprintf("Scanning modules : %d / %d", status.Progress.Done, status.Progress.Total)
	case model.PhaseEvaluating:
		text = fmt.Sprintf("Evaluating trust : %d / %d", status.Progress.Done, status.Progress.Total)
	case model.PhaseDone:
		text = "Computation finished"
	}
	drawLine(screen, s.layout.Status, text, s.skin.Status)
}

// drawInput clears the input line; it is reserved for future input echo and
// its main purpose for now is cleaning the area after a resize.
func (s *VerifyScreen) drawInput(screen tcell.Screen) {
	drawLine(screen, s.layout.Input, "", s.skin.Std)
}

func (s *VerifyScreen) drawHint(screen tcell.Screen, status model.ComputationStatus) {
	text := "Hit q to quit"
	if !status.BeforeRows() {
		text = "Hit q to quit, PageUp or PageDown to scroll"
	}
	drawLine(screen, s.layout.Hint, text, s.skin.Hint)
}

// ScrollLines forwards a line-wise scroll command to the table buffer; it
// takes effect on the next draw.
func (s *VerifyScreen) ScrollLines(delta int) {
	s.table.ScrollLines(delta)
}

// ScrollPages forwards a page-wise scroll command to the table buffer.
func (s *VerifyScreen) ScrollPages(delta int) {
	s.table.ScrollPages(delta)
}

// VisibleText returns the currently visible rows as plain text.
func (s *VerifyScreen) VisibleText() string {
	return s.table.VisibleText()
}

// drawLine draws a single line of text filling the region width, truncating
// what does not fit. Zero-area regions are skipped.
func drawLine(screen tcell.Screen, area Area, text string, style tcell.Style) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	emitText(screen, area.Left, area.Top, fitCell(text, area.Width, AlignLeft), style)
}

// fillArea blanks a region.
func fillArea(screen tcell.Screen, area Area, style tcell.Style) {
	for y := area.Top; y < area.Top+area.Height; y++ {
		for x := area.Left; x < area.Left+area.Width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}
