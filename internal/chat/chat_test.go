package chat

import (
	"encoding/json"
	"testing"
)

func TestConversationTypeOf(t *testing.T) {
	tests := []struct {
		code int
		want ConversationType
	}{
		{ChatTypeSingle, ConversationChat},
		{ChatTypeGroup, ConversationGroupChat},
		{ChatTypeChatRoom, ConversationChatRoom},
		{0, ConversationChatRoom},
		{42, ConversationChatRoom},
		{-1, ConversationChatRoom},
	}
	for _, tt := range tests {
		if got := ConversationTypeOf(tt.code); got != tt.want {
			t.Errorf("ConversationTypeOf(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestChatTypeOf(t *testing.T) {
	tests := []struct {
		name string
		conv *Conversation
		want int
	}{
		{"nil", nil, ChatTypeSingle},
		{"single", NewConversation("alice", ConversationChat), ChatTypeSingle},
		{"group", NewConversation("g1", ConversationGroupChat), ChatTypeGroup},
		{"chat room", NewConversation("r1", ConversationChatRoom), ChatTypeChatRoom},
		// The group flag wins over the type tag.
		{"chat room without group flag", &Conversation{ID: "r2", Type: ConversationChatRoom}, ChatTypeSingle},
		{"group flag on chat type", &Conversation{ID: "x", Type: ConversationChat, IsGroup: true}, ChatTypeGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChatTypeOf(tt.conv); got != tt.want {
				t.Errorf("ChatTypeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestChatTypeRoundTrip pins the known asymmetry between the two mappings:
// only the single chat code survives code -> type -> code unchanged when the
// group flag is not set from the type.
func TestChatTypeRoundTrip(t *testing.T) {
	single := &Conversation{Type: ConversationTypeOf(ChatTypeSingle)}
	if got := ChatTypeOf(single); got != ChatTypeSingle {
		t.Errorf("single round trip = %d, want %d", got, ChatTypeSingle)
	}
	for _, code := range []int{ChatTypeGroup, ChatTypeChatRoom} {
		c := &Conversation{Type: ConversationTypeOf(code)}
		if got := ChatTypeOf(c); got != ChatTypeSingle {
			t.Errorf("code %d without group flag = %d, want %d (lossy)", code, got, ChatTypeSingle)
		}
		c = NewConversation("x", ConversationTypeOf(code))
		if got := ChatTypeOf(c); got != code {
			t.Errorf("code %d with SDK group flag = %d, want %d", code, got, code)
		}
	}
	// An unknown code comes back as a chat room, not as itself.
	c := NewConversation("x", ConversationTypeOf(9))
	if got := ChatTypeOf(c); got != ChatTypeChatRoom {
		t.Errorf("unknown code round trip = %d, want %d", got, ChatTypeChatRoom)
	}
}

func TestIsSilent(t *testing.T) {
	if IsSilent(nil) {
		t.Error("IsSilent(nil) = true, want false")
	}
	if IsSilent(&Message{Type: TypeText}) {
		t.Error("IsSilent() without attribute = true, want false")
	}
	m := &Message{Attributes: Attributes{IgnoreNotification: true}}
	if !IsSilent(m) {
		t.Error("IsSilent() with ignore flag = false, want true")
	}
}

func TestAttributesWireNames(t *testing.T) {
	var m Message
	raw := `{"type":"txt","attributes":{"em_ignore_notification":true,"is_voice_call":true,"em_expression_id":"e1"}}`
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatal(err)
	}
	if !m.Attributes.IgnoreNotification || !m.Attributes.VoiceCall {
		t.Errorf("attributes = %+v, want ignore and voice call set", m.Attributes)
	}
	if m.Attributes.ExpressionID != "e1" {
		t.Errorf("ExpressionID = %q, want e1", m.Attributes.ExpressionID)
	}
	if m.Attributes.VideoCall || m.Attributes.BigExpression {
		t.Errorf("absent attributes should default to false: %+v", m.Attributes)
	}
}

func TestNewExpressionMessage(t *testing.T) {
	m := NewExpressionMessage("bob", "smile", "ee_1")
	if text, ok := m.Text(); !ok || text != "[smile]" {
		t.Errorf("text = %q, %v, want [smile]", text, ok)
	}
	if !m.Attributes.BigExpression {
		t.Error("BigExpression = false, want true")
	}
	if m.Attributes.ExpressionID != "ee_1" {
		t.Errorf("ExpressionID = %q, want ee_1", m.Attributes.ExpressionID)
	}
	if m.Direction != Send || m.To != "bob" || m.ID == "" {
		t.Errorf("unexpected message header: %+v", m)
	}

	noID := NewExpressionMessage("bob", "smile", "")
	if noID.Attributes.ExpressionID != "" {
		t.Errorf("ExpressionID = %q, want empty", noID.Attributes.ExpressionID)
	}
}

func TestIsTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"0", false},
		{"-5", false},
		{"1700000000000", true},
		{"12abc", false},
		{"99999999999999999999", false},
	}
	for _, tt := range tests {
		if got := IsTimestamp(tt.in); got != tt.want {
			t.Errorf("IsTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMessageTypeKnown(t *testing.T) {
	for _, mt := range []MessageType{TypeText, TypeImage, TypeVoice, TypeVideo, TypeLocation, TypeFile, TypeCustom} {
		if !mt.Known() {
			t.Errorf("%q should be known", mt)
		}
	}
	if MessageType("cmd").Known() {
		t.Error(`"cmd" should not be known`)
	}
}

func TestContactDisplayName(t *testing.T) {
	c := &Contact{Username: "u1"}
	if c.DisplayName() != "u1" {
		t.Errorf("DisplayName() = %q, want u1", c.DisplayName())
	}
	c.Nickname = "Nick"
	if c.DisplayName() != "Nick" {
		t.Errorf("DisplayName() = %q, want Nick", c.DisplayName())
	}
}

func TestContactVCard(t *testing.T) {
	c := &Contact{Username: "bob", Nickname: "Bob; the builder"}
	want := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Bob\\; the builder\r\nNICKNAME:Bob\\; the builder\r\nUID:bob\r\nEND:VCARD\r\n"
	if got := c.VCard(); got != want {
		t.Errorf("VCard() = %q, want %q", got, want)
	}

	bare := &Contact{Username: "alice"}
	if got := bare.VCard(); got != "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:alice\r\nUID:alice\r\nEND:VCARD\r\n" {
		t.Errorf("VCard() = %q", got)
	}
}
