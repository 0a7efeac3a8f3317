package views

import (
	"strings"
	"unicode"

	"github.com/rivo/tview"
)

// cellText prepares user text for a single table cell or text line. Line
// breaks and other control characters become spaces, and emoji joiners,
// skin tones and variation selectors are dropped because tcell measures the
// joined sequences wrongly. The result is escaped for tview color tags.
func cellText(s string) string {
	return tview.Escape(strings.Map(func(r rune) rune {
		switch {
		case isEmojiModifier(r):
			return -1
		case unicode.IsControl(r):
			return ' '
		}
		return r
	}, s))
}

func isEmojiModifier(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF:
		// Skin tones.
		return true
	case r == 0x200D:
		// Zero width joiner.
		return true
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xE0100 && r <= 0xE01EF:
		return true
	}
	return false
}
