package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	SectionColor      tcell.Color
	MenuKeyColor      tcell.Color
	TitleColor        tcell.Color
	UnreadColor       tcell.Color
	OnlineColor       tcell.Color
	OfflineColor      tcell.Color
	FlashColor        tcell.Color
	PromptBorderColor tcell.Color
}

// DefaultTheme returns a k9s-inspired dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorCadetBlue,
		BorderColor:       tcell.ColorDodgerBlue,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorAqua,
		SectionColor:      tcell.ColorOrange,
		MenuKeyColor:      tcell.ColorDodgerBlue,
		TitleColor:        tcell.ColorFuchsia,
		UnreadColor:       tcell.ColorPapayaWhip,
		OnlineColor:       tcell.ColorGreen,
		OfflineColor:      tcell.ColorOrangeRed,
		FlashColor:        tcell.ColorNavajoWhite,
		PromptBorderColor: tcell.ColorDodgerBlue,
	}
}

// ColorTag returns the tview color tag name of c.
func ColorTag(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
