package views

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactCard shows a contact with a scannable QR code of its vCard.
type ContactCard struct {
	*tview.TextView
}

// NewContactCard creates a new contact card view.
func NewContactCard(theme *ui.Theme) *ContactCard {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Contact ")
	tv.SetTitleColor(theme.TitleColor)

	return &ContactCard{TextView: tv}
}

// Name implements ui.Component.
func (cc *ContactCard) Name() string { return "card" }

// Hints implements ui.Component.
func (cc *ContactCard) Hints() []ui.MenuHint {
	return []ui.MenuHint{{Key: "Esc", Description: "Back"}}
}

// Show renders c.
func (cc *ContactCard) Show(c chat.Contact) {
	cc.Clear()
	cc.SetTitle(fmt.Sprintf(" %s ", cellText(c.DisplayName())))
	_, _ = fmt.Fprintf(cc, "\n[::b]%s[-:-:-]  %s  [::d]section %s[-:-:-]\n\n%s",
		cellText(c.DisplayName()),
		tview.Escape(c.Username),
		c.InitialLetter,
		renderQR(c.VCard()))
}

// renderQR converts a string to a compact QR code using Unicode
// half-block characters.
func renderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "  (QR generation failed: " + err.Error() + ")"
	}

	bitmap := qr.Bitmap()
	rows := len(bitmap)
	cols := 0
	if rows > 0 {
		cols = len(bitmap[0])
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			top := bitmap[y][x]
			bot := false
			if y+1 < rows {
				bot = bitmap[y+1][x]
			}
			switch {
			case top && bot:
				sb.WriteRune('█') // █
			case top && !bot:
				sb.WriteRune('▀') // ▀
			case !top && bot:
				sb.WriteRune('▄') // ▄
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
