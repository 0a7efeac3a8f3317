package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/easekit/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar displays the profile, network status, key hints and flash messages.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	profile string
	status  string
	hints   []ui.MenuHint
	flash   string
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, theme: theme}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetStatus updates the status display.
func (sb *StatusBar) SetStatus(status string) {
	sb.status = status
	sb.render()
}

// SetHints shows the key hints of the current page.
func (sb *StatusBar) SetHints(hints []ui.MenuHint) {
	sb.hints = hints
	sb.render()
}

// SetFlash sets a temporary message.
func (sb *StatusBar) SetFlash(msg string) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()
	_, _ = fmt.Fprint(sb, sb.line(time.Now()))
}

func (sb *StatusBar) line(now time.Time) string {
	color := sb.theme.OfflineColor
	if sb.status == "ONLINE" {
		color = sb.theme.OnlineColor
	}

	var keys []string
	for _, h := range sb.hints {
		keys = append(keys, fmt.Sprintf("[%s]<%s>[-] %s", ui.ColorTag(sb.theme.MenuKeyColor), h.Key, h.Description))
	}

	line := fmt.Sprintf(" [::b]%s[-:-:-] | [%s]%s[-] | %s", sb.profile, ui.ColorTag(color), sb.status, now.Format("15:04"))
	if len(keys) > 0 {
		line += " | " + strings.Join(keys, " ")
	}
	if sb.flash != "" {
		line += fmt.Sprintf(" | [%s]%s[-]", ui.ColorTag(sb.theme.FlashColor), tview.Escape(sb.flash))
	}
	return line
}
