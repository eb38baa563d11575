package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background     tcell.Color
	Foreground     tcell.Color
	PanelBg        tcell.Color
	PanelFg        tcell.Color
	HiddenFg       tcell.Color
	SelectionBg    tcell.Color
	SelectionFg    tcell.Color
	InactiveSelBg  tcell.Color
	InactiveSelFg  tcell.Color
	DirectoryFg    tcell.Color
	SymlinkFg      tcell.Color
	FileFg         tcell.Color
	TagFg          tcell.Color
	TagCheckedFg   tcell.Color
	TagLabelFg     tcell.Color
	MatchFg        tcell.Color
	DisabledFg     tcell.Color
	FooterBg       tcell.Color
	FooterFg       tcell.Color
	FilterBarBg    tcell.Color
	FilterBarFg    tcell.Color
	ErrorFg        tcell.Color
	StatusFg       tcell.Color
	PromptCursorBg tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:     tcell.ColorDefault,
		Foreground:     tcell.ColorDefault,
		PanelBg:        tcell.ColorDefault,
		PanelFg:        tcell.ColorDefault,
		HiddenFg:       tcell.ColorLightSlateGray,
		SelectionBg:    tcell.Color33,
		SelectionFg:    tcell.ColorWhite,
		InactiveSelBg:  tcell.Color238,
		InactiveSelFg:  tcell.ColorWhite,
		DirectoryFg:    tcell.Color33,
		SymlinkFg:      tcell.Color51,
		FileFg:         tcell.ColorDefault,
		TagFg:          tcell.ColorDefault,
		TagCheckedFg:   tcell.ColorGreen,
		TagLabelFg:     tcell.Color141, // tag names next to entries
		MatchFg:        tcell.ColorYellow,
		DisabledFg:     tcell.ColorDarkGray,
		FooterBg:       tcell.ColorDefault,
		FooterFg:       tcell.ColorDefault,
		FilterBarBg:    tcell.Color236,
		FilterBarFg:    tcell.Color252,
		ErrorFg:        tcell.ColorRed,
		StatusFg:       tcell.ColorYellowGreen,
		PromptCursorBg: tcell.Color33,
	}
}
