package views

import (
	"fmt"

	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/tui/ui"
	"github.com/rivo/tview"
)

// MessageView displays the messages of one conversation by their digest.
type MessageView struct {
	*tview.TextView
	conversationID string
}

// NewMessageView creates a new message view.
func NewMessageView(theme *ui.Theme) *MessageView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Messages ")
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)

	return &MessageView{TextView: tv}
}

// Name implements ui.Component.
func (mv *MessageView) Name() string { return "messages" }

// Hints implements ui.Component.
func (mv *MessageView) Hints() []ui.MenuHint {
	return []ui.MenuHint{{Key: "Esc", Description: "Back"}}
}

// SetConversation updates the title with the conversation name.
func (mv *MessageView) SetConversation(id, name string) {
	mv.conversationID = id
	mv.SetTitle(fmt.Sprintf(" %s ", cellText(name)))
}

// ConversationID returns the id of the displayed conversation.
func (mv *MessageView) ConversationID() string {
	return mv.conversationID
}

// Update refreshes the view. Messages arrive newest first.
func (mv *MessageView) Update(msgs []rpc.Message) {
	mv.Clear()
	for i := len(msgs) - 1; i >= 0; i-- {
		_, _ = fmt.Fprint(mv, messageLine(msgs[i]))
	}
	mv.ScrollToEnd()
}

func messageLine(m rpc.Message) string {
	sender := m.From
	if m.Direction == chat.Send {
		sender = "You"
	}
	mute := ""
	if m.Silent {
		mute = " [::d](muted)[-:-:-]"
	}
	return fmt.Sprintf("[::b]%s[-:-:-] [::d]%s[-:-:-]%s\n%s\n\n",
		cellText(sender),
		formatTimestamp(m.Timestamp),
		mute,
		cellText(m.Digest))
}
