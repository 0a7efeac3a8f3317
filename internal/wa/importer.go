// Package wa converts WhatsApp history-sync dumps into easekit messages,
// contacts and conversations.
package wa

import (
	"fmt"
	"strings"

	"github.com/matheus3301/easekit/internal/chat"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/proto/waHistorySync"
	"go.mau.fi/whatsmeow/proto/waWeb"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"
)

// DefaultSelf names the local user when the dump does not say who it is.
const DefaultSelf = "me"

// Custom event name for shared contact cards.
const EventContactCard = "contact_card"

// ParseHistorySync decodes a serialized waHistorySync.HistorySync blob.
func ParseHistorySync(data []byte) (*waHistorySync.HistorySync, error) {
	var hs waHistorySync.HistorySync
	if err := proto.Unmarshal(data, &hs); err != nil {
		return nil, fmt.Errorf("decode history sync: %w", err)
	}
	return &hs, nil
}

// Import is the result of converting one history-sync dump.
type Import struct {
	Messages      []*chat.Message
	Contacts      []chat.Contact
	Conversations []chat.Conversation
	Skipped       int
}

// Importer converts history-sync data. Self is the id recorded as the sender
// of our own messages.
type Importer struct {
	Self string
}

// Convert walks every conversation of the dump.
func (im Importer) Convert(hs *waHistorySync.HistorySync) *Import {
	out := &Import{}
	if hs == nil {
		return out
	}

	for _, pn := range hs.GetPushnames() {
		id := NormalizeJID(pn.GetID())
		if id == "" {
			continue
		}
		out.Contacts = append(out.Contacts, chat.Contact{Username: id, Nickname: pn.GetPushname()})
	}

	for _, conv := range hs.GetConversations() {
		convID := NormalizeJID(conv.GetID())
		if convID == "" {
			continue
		}
		c := chat.NewConversation(convID, ConversationTypeOfJID(convID))
		c.Name = conv.GetName()
		out.Conversations = append(out.Conversations, *c)

		for _, hm := range conv.GetMessages() {
			m, ok := im.ConvertMessage(convID, hm.GetMessage())
			if !ok {
				out.Skipped++
				continue
			}
			out.Messages = append(out.Messages, m)
		}
	}
	return out
}

// ConvertMessage maps one WhatsApp message of a conversation to a
// chat.Message. ok is false for empty or unsupported messages.
func (im Importer) ConvertMessage(conversationID string, info *waWeb.WebMessageInfo) (*chat.Message, bool) {
	if info == nil || info.GetMessage() == nil {
		return nil, false
	}
	key := info.GetKey()
	if key.GetID() == "" {
		return nil, false
	}

	m := &chat.Message{
		ID:               key.GetID(),
		ConversationID:   conversationID,
		ConversationType: ConversationTypeOfJID(conversationID),
		Timestamp:        int64(info.GetMessageTimestamp()) * 1000,
	}
	if !fillBody(m, info.GetMessage()) {
		return nil, false
	}

	self := im.Self
	if self == "" {
		self = DefaultSelf
	}
	if key.GetFromMe() {
		m.Direction = chat.Send
		m.From = self
		m.To = conversationID
	} else {
		m.Direction = chat.Receive
		m.From = conversationID
		if p := firstNonEmpty(key.GetParticipant(), info.GetParticipant()); p != "" {
			m.From = NormalizeJID(p)
		}
		m.To = self
	}
	return m, true
}

func fillBody(m *chat.Message, msg *waE2E.Message) bool {
	switch {
	case msg.GetConversation() != "":
		setText(m, msg.GetConversation())
	case msg.GetExtendedTextMessage() != nil:
		setText(m, msg.GetExtendedTextMessage().GetText())
	case msg.GetImageMessage() != nil:
		img := msg.GetImageMessage()
		m.Type = chat.TypeImage
		m.Body.File = &chat.FileBody{URL: img.GetURL(), Size: int64(img.GetFileLength())}
	case msg.GetAudioMessage() != nil:
		a := msg.GetAudioMessage()
		m.Type = chat.TypeVoice
		m.Body.File = &chat.FileBody{URL: a.GetURL(), Size: int64(a.GetFileLength()), DurationSec: int(a.GetSeconds())}
	case msg.GetVideoMessage() != nil:
		v := msg.GetVideoMessage()
		m.Type = chat.TypeVideo
		m.Body.File = &chat.FileBody{URL: v.GetURL(), Size: int64(v.GetFileLength()), DurationSec: int(v.GetSeconds())}
	case msg.GetDocumentMessage() != nil:
		d := msg.GetDocumentMessage()
		m.Type = chat.TypeFile
		m.Body.File = &chat.FileBody{
			Name: firstNonEmpty(d.GetFileName(), d.GetTitle()),
			URL:  d.GetURL(),
			Size: int64(d.GetFileLength()),
		}
	case msg.GetLocationMessage() != nil:
		l := msg.GetLocationMessage()
		m.Type = chat.TypeLocation
		m.Body.Location = &chat.LocationBody{
			Latitude:  l.GetDegreesLatitude(),
			Longitude: l.GetDegreesLongitude(),
			Address:   firstNonEmpty(l.GetAddress(), l.GetName()),
		}
	case msg.GetStickerMessage() != nil:
		// Stickers carry no text, so the digest falls back to the expression label.
		setText(m, "")
		m.Attributes.BigExpression = true
	case msg.GetContactMessage() != nil:
		c := msg.GetContactMessage()
		m.Type = chat.TypeCustom
		m.Body.Custom = &chat.CustomBody{
			Event:  EventContactCard,
			Params: map[string]string{"display_name": c.GetDisplayName(), "vcard": c.GetVcard()},
		}
	default:
		return false
	}
	return true
}

func setText(m *chat.Message, text string) {
	m.Type = chat.TypeText
	m.Body.Text = &chat.TextBody{Message: text}
}

// NormalizeJID strips device and agent suffixes so a user has one id across
// devices. Strings that are not JIDs are returned unchanged.
func NormalizeJID(s string) string {
	if s == "" || !strings.Contains(s, "@") {
		return s
	}
	jid, err := types.ParseJID(s)
	if err != nil {
		return s
	}
	return jid.ToNonAD().String()
}

// ConversationTypeOfJID classifies a chat JID: groups are group chats,
// newsletters and broadcast lists are chat rooms, everything else is a
// single chat.
func ConversationTypeOfJID(s string) chat.ConversationType {
	_, server, _ := strings.Cut(s, "@")
	switch server {
	case types.GroupServer:
		return chat.ConversationGroupChat
	case types.NewsletterServer, types.BroadcastServer:
		return chat.ConversationChatRoom
	default:
		return chat.ConversationChat
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
