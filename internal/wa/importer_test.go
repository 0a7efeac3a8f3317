package wa

import (
	"testing"

	"github.com/matheus3301/easekit/internal/chat"
	"go.mau.fi/whatsmeow/proto/waCommon"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/proto/waHistorySync"
	"go.mau.fi/whatsmeow/proto/waWeb"
	"google.golang.org/protobuf/proto"
)

func webMsg(id string, fromMe bool, participant string, ts uint64, msg *waE2E.Message) *waWeb.WebMessageInfo {
	key := &waCommon.MessageKey{ID: proto.String(id), FromMe: proto.Bool(fromMe)}
	if participant != "" {
		key.Participant = proto.String(participant)
	}
	return &waWeb.WebMessageInfo{Key: key, MessageTimestamp: proto.Uint64(ts), Message: msg}
}

func TestConvertMessageKinds(t *testing.T) {
	im := Importer{}
	tests := []struct {
		name  string
		msg   *waE2E.Message
		want  chat.MessageType
		check func(t *testing.T, m *chat.Message)
	}{
		{"conversation", &waE2E.Message{Conversation: proto.String("hello")}, chat.TypeText, func(t *testing.T, m *chat.Message) {
			if text, _ := m.Text(); text != "hello" {
				t.Errorf("text = %q", text)
			}
		}},
		{"extended text", &waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: proto.String("ext")}}, chat.TypeText, func(t *testing.T, m *chat.Message) {
			if text, _ := m.Text(); text != "ext" {
				t.Errorf("text = %q", text)
			}
		}},
		{"image", &waE2E.Message{ImageMessage: &waE2E.ImageMessage{FileLength: proto.Uint64(42)}}, chat.TypeImage, func(t *testing.T, m *chat.Message) {
			if m.Body.File == nil || m.Body.File.Size != 42 {
				t.Errorf("file = %+v", m.Body.File)
			}
		}},
		{"audio", &waE2E.Message{AudioMessage: &waE2E.AudioMessage{Seconds: proto.Uint32(7)}}, chat.TypeVoice, func(t *testing.T, m *chat.Message) {
			if m.Body.File == nil || m.Body.File.DurationSec != 7 {
				t.Errorf("file = %+v", m.Body.File)
			}
		}},
		{"video", &waE2E.Message{VideoMessage: &waE2E.VideoMessage{}}, chat.TypeVideo, nil},
		{"document", &waE2E.Message{DocumentMessage: &waE2E.DocumentMessage{FileName: proto.String("a.pdf")}}, chat.TypeFile, func(t *testing.T, m *chat.Message) {
			if m.Body.File == nil || m.Body.File.Name != "a.pdf" {
				t.Errorf("file = %+v", m.Body.File)
			}
		}},
		{"location", &waE2E.Message{LocationMessage: &waE2E.LocationMessage{
			DegreesLatitude: proto.Float64(1.5), DegreesLongitude: proto.Float64(-2), Name: proto.String("Cafe"),
		}}, chat.TypeLocation, func(t *testing.T, m *chat.Message) {
			loc := m.Body.Location
			if loc == nil || loc.Latitude != 1.5 || loc.Longitude != -2 || loc.Address != "Cafe" {
				t.Errorf("location = %+v", loc)
			}
		}},
		{"sticker", &waE2E.Message{StickerMessage: &waE2E.StickerMessage{}}, chat.TypeText, func(t *testing.T, m *chat.Message) {
			if !m.Attributes.BigExpression {
				t.Error("sticker should set BigExpression")
			}
			if text, ok := m.Text(); !ok || text != "" {
				t.Errorf("sticker text = %q, %v", text, ok)
			}
		}},
		{"contact", &waE2E.Message{ContactMessage: &waE2E.ContactMessage{DisplayName: proto.String("Bob")}}, chat.TypeCustom, func(t *testing.T, m *chat.Message) {
			if m.Body.Custom == nil || m.Body.Custom.Event != EventContactCard || m.Body.Custom.Params["display_name"] != "Bob" {
				t.Errorf("custom = %+v", m.Body.Custom)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := im.ConvertMessage("alice@s.whatsapp.net", webMsg("m1", false, "", 10, tt.msg))
			if !ok {
				t.Fatal("ConvertMessage() rejected message")
			}
			if m.Type != tt.want {
				t.Errorf("Type = %q, want %q", m.Type, tt.want)
			}
			if tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

func TestConvertMessageRejects(t *testing.T) {
	im := Importer{}
	tests := []struct {
		name string
		info *waWeb.WebMessageInfo
	}{
		{"nil", nil},
		{"no message", &waWeb.WebMessageInfo{Key: &waCommon.MessageKey{ID: proto.String("x")}}},
		{"no id", webMsg("", false, "", 1, &waE2E.Message{Conversation: proto.String("hi")})},
		{"unsupported", webMsg("x", false, "", 1, &waE2E.Message{})},
		{"empty conversation", webMsg("x", false, "", 1, &waE2E.Message{Conversation: proto.String("")})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := im.ConvertMessage("c@s.whatsapp.net", tt.info); ok {
				t.Error("ConvertMessage() should reject")
			}
		})
	}
}

func TestConvertMessageDirection(t *testing.T) {
	im := Importer{Self: "owner@s.whatsapp.net"}
	text := &waE2E.Message{Conversation: proto.String("hi")}

	sent, _ := im.ConvertMessage("alice@s.whatsapp.net", webMsg("s1", true, "", 5, text))
	if sent.Direction != chat.Send || sent.From != "owner@s.whatsapp.net" || sent.To != "alice@s.whatsapp.net" {
		t.Errorf("sent = %+v", sent)
	}
	if sent.Timestamp != 5000 {
		t.Errorf("Timestamp = %d, want 5000", sent.Timestamp)
	}

	recv, _ := im.ConvertMessage("alice@s.whatsapp.net", webMsg("r1", false, "", 5, text))
	if recv.Direction != chat.Receive || recv.From != "alice@s.whatsapp.net" || recv.To != "owner@s.whatsapp.net" {
		t.Errorf("received = %+v", recv)
	}

	group, _ := im.ConvertMessage("123@g.us", webMsg("g1", false, "bob:3@s.whatsapp.net", 5, text))
	if group.From != "bob@s.whatsapp.net" {
		t.Errorf("group sender = %q, want bob@s.whatsapp.net", group.From)
	}
	if group.ConversationType != chat.ConversationGroupChat {
		t.Errorf("ConversationType = %q, want groupchat", group.ConversationType)
	}

	anon, _ := Importer{}.ConvertMessage("alice@s.whatsapp.net", webMsg("a1", true, "", 5, text))
	if anon.From != DefaultSelf {
		t.Errorf("From = %q, want %q", anon.From, DefaultSelf)
	}
}

// TestNormalizeJID verifies that device/agent suffixes are stripped so the
// same contact does not end up with duplicate conversations.
func TestNormalizeJID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"558592403672@s.whatsapp.net", "558592403672@s.whatsapp.net"},
		{"558592403672:0@s.whatsapp.net", "558592403672@s.whatsapp.net"},
		{"558592403672:5@s.whatsapp.net", "558592403672@s.whatsapp.net"},
		{"120363123456@g.us", "120363123456@g.us"},
		{"", ""},
		{"invalid", "invalid"},
		{"3917077286968@lid", "3917077286968@lid"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeJID(tt.input); got != tt.want {
				t.Errorf("NormalizeJID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConversationTypeOfJID(t *testing.T) {
	tests := []struct {
		jid  string
		want chat.ConversationType
	}{
		{"1@s.whatsapp.net", chat.ConversationChat},
		{"1@g.us", chat.ConversationGroupChat},
		{"1@newsletter", chat.ConversationChatRoom},
		{"status@broadcast", chat.ConversationChatRoom},
		{"plain", chat.ConversationChat},
	}
	for _, tt := range tests {
		if got := ConversationTypeOfJID(tt.jid); got != tt.want {
			t.Errorf("ConversationTypeOfJID(%q) = %q, want %q", tt.jid, got, tt.want)
		}
	}
}

func TestParseAndConvertHistorySync(t *testing.T) {
	hs := &waHistorySync.HistorySync{
		SyncType: waHistorySync.HistorySync_INITIAL_BOOTSTRAP.Enum(),
		Pushnames: []*waHistorySync.Pushname{
			{ID: proto.String("alice:2@s.whatsapp.net"), Pushname: proto.String("Alice")},
			{ID: proto.String("")},
		},
		Conversations: []*waHistorySync.Conversation{
			{
				ID:   proto.String("team@g.us"),
				Name: proto.String("Team"),
				Messages: []*waHistorySync.HistorySyncMsg{
					{Message: webMsg("hm1", false, "alice@s.whatsapp.net", 100, &waE2E.Message{Conversation: proto.String("history msg")})},
					{Message: webMsg("hm2", false, "alice@s.whatsapp.net", 101, &waE2E.Message{})},
				},
			},
			{
				ID: proto.String("alice@s.whatsapp.net"),
				Messages: []*waHistorySync.HistorySyncMsg{
					{Message: webMsg("hm3", true, "", 102, &waE2E.Message{StickerMessage: &waE2E.StickerMessage{}})},
				},
			},
		},
	}
	data, err := proto.Marshal(hs)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseHistorySync(data)
	if err != nil {
		t.Fatalf("ParseHistorySync() error = %v", err)
	}
	out := Importer{}.Convert(parsed)

	if len(out.Contacts) != 1 || out.Contacts[0].Username != "alice@s.whatsapp.net" || out.Contacts[0].Nickname != "Alice" {
		t.Errorf("contacts = %+v", out.Contacts)
	}
	if len(out.Conversations) != 2 {
		t.Fatalf("conversations = %+v", out.Conversations)
	}
	if out.Conversations[0].Name != "Team" || !out.Conversations[0].IsGroup {
		t.Errorf("group conversation = %+v", out.Conversations[0])
	}
	if len(out.Messages) != 2 || out.Skipped != 1 {
		t.Errorf("messages = %d skipped = %d, want 2 and 1", len(out.Messages), out.Skipped)
	}
}

func TestParseHistorySyncInvalid(t *testing.T) {
	if _, err := ParseHistorySync([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Error("ParseHistorySync() expected error for garbage input")
	}
}

func TestConvertNil(t *testing.T) {
	out := Importer{}.Convert(nil)
	if len(out.Messages) != 0 || len(out.Contacts) != 0 {
		t.Errorf("Convert(nil) = %+v", out)
	}
}
