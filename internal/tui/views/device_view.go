package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/tui/ui"
	"github.com/rivo/tview"
)

// DeviceView shows the daemon's environment probes and store counters.
type DeviceView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewDeviceView creates a new device view.
func NewDeviceView(theme *ui.Theme) *DeviceView {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBorder(true).SetTitle(" Device ")
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)
	return &DeviceView{TextView: tv, theme: theme}
}

// Name implements ui.Component.
func (dv *DeviceView) Name() string { return "device" }

// Hints implements ui.Component.
func (dv *DeviceView) Hints() []ui.MenuHint {
	return []ui.MenuHint{{Key: "Esc", Description: "Back"}}
}

// Update renders env.
func (dv *DeviceView) Update(env *rpc.EnvironmentResponse) {
	dv.Clear()
	if env == nil {
		return
	}
	s := env.Snapshot
	m := env.Metrics
	uptime := (time.Duration(env.UptimeMs) * time.Millisecond).Truncate(time.Second)

	_, _ = fmt.Fprintf(dv, "\n [::b]Profile[-:-:-]   %s (%s, up %s)\n", env.Profile, env.Status, uptime)
	_, _ = fmt.Fprintf(dv, " [::b]Locale[-:-:-]    %s\n\n", env.Locale)
	_, _ = fmt.Fprintf(dv, " [::b]Network[-:-:-]   %s\n", dv.yesNo(s.NetworkConnected, "connected", "disconnected"))
	_, _ = fmt.Fprintf(dv, " [::b]Storage[-:-:-]   %s\n", dv.yesNo(s.ExternalStorage, "mounted", "unavailable"))
	_, _ = fmt.Fprintf(dv, " [::b]Screen[-:-:-]    %.0fx%.0f px, %.0f dpi, density %.2f, scaled %.2f\n",
		s.Screen[0], s.Screen[1], s.Screen[2], s.Screen[3], s.Screen[4])
	_, _ = fmt.Fprintf(dv, " [::b]Foreground[-:-:-] %s\n\n", tview.Escape(s.TopActivity))
	_, _ = fmt.Fprintf(dv, " [::b]1dp[-:-:-] = %.2fpx   [::b]1sp[-:-:-] = %.2fpx\n\n", m.Density, m.ScaledDensity)
	_, _ = fmt.Fprintf(dv, " %d contacts, %d conversations, %d messages\n",
		env.Counts.Contacts, env.Counts.Conversations, env.Counts.Messages)
}

func (dv *DeviceView) yesNo(ok bool, yes, no string) string {
	if ok {
		return fmt.Sprintf("[%s]%s[-]", ui.ColorTag(dv.theme.OnlineColor), yes)
	}
	return fmt.Sprintf("[%s]%s[-]", ui.ColorTag(dv.theme.OfflineColor), no)
}
