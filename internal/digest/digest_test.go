package digest

import (
	"testing"

	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/i18n"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"
)

const testCatalog = `
location_recv = "%s shared a location"
location_prefix = "[Location]"
picture = "[Picture]"
voice_prefix = "[Voice]"
video = "[Video]"
file = "[File]"
custom = "[Custom]"
voice_call = "[Voice Call]"
video_call = "[Video Call]"
dynamic_expression = "[Sticker]"
`

type users map[string]*chat.Contact

func (u users) LookupUser(id string) (*chat.Contact, bool) {
	c, ok := u[id]
	return c, ok
}

func testFormatter(t *testing.T, u UserProvider) (*Formatter, *observer.ObservedLogs) {
	t.Helper()
	catalog, err := i18n.Parse(language.English, testCatalog)
	if err != nil {
		t.Fatal(err)
	}
	core, logs := observer.New(zapcore.DebugLevel)
	return New(catalog, u, zap.New(core)), logs
}

func text(s string) chat.Body {
	return chat.Body{Text: &chat.TextBody{Message: s}}
}

func TestDigestByType(t *testing.T) {
	f, _ := testFormatter(t, nil)
	tests := []struct {
		name string
		msg  *chat.Message
		want string
	}{
		{"image", &chat.Message{Type: chat.TypeImage}, "[Picture]"},
		{"voice", &chat.Message{Type: chat.TypeVoice}, "[Voice]"},
		{"video", &chat.Message{Type: chat.TypeVideo}, "[Video]"},
		{"file", &chat.Message{Type: chat.TypeFile}, "[File]"},
		{"custom", &chat.Message{Type: chat.TypeCustom}, "[Custom]"},
		{"location sent", &chat.Message{Type: chat.TypeLocation, Direction: chat.Send}, "[Location]"},
		{"plain text", &chat.Message{Type: chat.TypeText, Body: text("hello")}, "hello"},
		{"text without body", &chat.Message{Type: chat.TypeText}, ""},
		{"empty text", &chat.Message{Type: chat.TypeText, Body: text("")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Digest(tt.msg); got != tt.want {
				t.Errorf("Digest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDigestTextAttributePrecedence(t *testing.T) {
	f, _ := testFormatter(t, nil)
	tests := []struct {
		name  string
		attrs chat.Attributes
		body  chat.Body
		want  string
	}{
		{"voice call", chat.Attributes{VoiceCall: true}, text("3:12"), "[Voice Call]3:12"},
		{"video call", chat.Attributes{VideoCall: true}, text("0:45"), "[Video Call]0:45"},
		{"voice beats video", chat.Attributes{VoiceCall: true, VideoCall: true}, text("x"), "[Voice Call]x"},
		{"video beats expression", chat.Attributes{VideoCall: true, BigExpression: true}, text("x"), "[Video Call]x"},
		{"expression with text", chat.Attributes{BigExpression: true}, text("[smile]"), "[smile]"},
		{"expression without text", chat.Attributes{BigExpression: true}, text(""), "[Sticker]"},
		{"expression without body", chat.Attributes{BigExpression: true}, chat.Body{}, ""},
		{"call without body", chat.Attributes{VoiceCall: true}, chat.Body{}, ""},
		{"silent flag is ignored", chat.Attributes{IgnoreNotification: true}, text("hi"), "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &chat.Message{Type: chat.TypeText, Attributes: tt.attrs, Body: tt.body}
			if got := f.Digest(m); got != tt.want {
				t.Errorf("Digest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDigestLocationReceived(t *testing.T) {
	u := users{
		"alice": {Username: "alice", Nickname: "Alice W."},
		"bob":   {Username: "bob"},
	}
	f, _ := testFormatter(t, u)
	tests := []struct {
		from string
		want string
	}{
		{"alice", "Alice W. shared a location"},
		{"bob", "bob shared a location"},     // known, no nickname
		{"carol", "carol shared a location"}, // unknown user
	}
	for _, tt := range tests {
		m := &chat.Message{Type: chat.TypeLocation, Direction: chat.Receive, From: tt.from}
		if got := f.Digest(m); got != tt.want {
			t.Errorf("Digest(from %s) = %q, want %q", tt.from, got, tt.want)
		}
	}

	noUsers, _ := testFormatter(t, nil)
	m := &chat.Message{Type: chat.TypeLocation, Direction: chat.Receive, From: "alice"}
	if got := noUsers.Digest(m); got != "alice shared a location" {
		t.Errorf("Digest() without provider = %q", got)
	}
}

func TestDigestUnknownTypeLogs(t *testing.T) {
	f, logs := testFormatter(t, nil)
	m := &chat.Message{ID: "m1", Type: "cmd"}
	if got := f.Digest(m); got != "" {
		t.Errorf("Digest() = %q, want empty", got)
	}
	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("got %d error logs, want 1", len(entries))
	}
	if entries[0].ContextMap()["type"] != "cmd" {
		t.Errorf("logged type = %v, want cmd", entries[0].ContextMap()["type"])
	}
}

func TestDigestNilMessage(t *testing.T) {
	f, logs := testFormatter(t, nil)
	if got := f.Digest(nil); got != "" {
		t.Errorf("Digest(nil) = %q, want empty", got)
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Error("expected an error log for nil message")
	}
}

func TestDigestWithoutCollaborators(t *testing.T) {
	f := New(nil, nil, nil)
	if got := f.Digest(&chat.Message{Type: chat.TypeImage}); got != "" {
		t.Errorf("Digest() without resolver = %q, want empty", got)
	}
	if got := f.Digest(&chat.Message{Type: chat.TypeText, Body: text("hi")}); got != "hi" {
		t.Errorf("Digest() = %q, want hi", got)
	}
}

func TestTemplateWithoutPlaceholder(t *testing.T) {
	catalog, err := i18n.Parse(language.English, `location_recv = "[Location]"`)
	if err != nil {
		t.Fatal(err)
	}
	f := New(catalog, nil, nil)
	m := &chat.Message{Type: chat.TypeLocation, Direction: chat.Receive, From: "x"}
	if got := f.Digest(m); got != "[Location]" {
		t.Errorf("Digest() = %q, want [Location]", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"你好世界", 3, "你好…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestPreview(t *testing.T) {
	f, _ := testFormatter(t, nil)
	m := &chat.Message{Type: chat.TypeText, Attributes: chat.Attributes{VoiceCall: true}, Body: text("01:02:03")}
	if got := f.Preview(m, 9); got != "[Voice C…" {
		t.Errorf("Preview() = %q", got)
	}
}
