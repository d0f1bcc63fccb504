package view

import "github.com/gdamore/tcell/v2"

// Skin is the closed style palette used by the verify screen. It is built
// once at startup and passed into construction; the renderer treats the
// styles as opaque tags.
type Skin struct {
	Std    tcell.Style
	Bad    tcell.Style
	Medium tcell.Style
	Good   tcell.Style
	None   tcell.Style

	Title  tcell.Style
	Status tcell.Style
	Hint   tcell.Style
}

// DefaultSkin returns the standard palette.
func DefaultSkin() *Skin {
	std := tcell.StyleDefault
	return &Skin{
		Std:    std,
		Bad:    std.Foreground(tcell.ColorWhite).Background(tcell.ColorRed),
		Medium: std.Foreground(tcell.ColorYellow),
		Good:   std.Foreground(tcell.ColorGreen),
		None:   std.Foreground(tcell.ColorGray),
		Title:  std.Foreground(tcell.ColorYellow).Bold(true),
		Status: std.Background(tcell.ColorDarkSlateGray),
		Hint:   std.Foreground(tcell.ColorGray),
	}
}
