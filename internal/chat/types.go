package chat

import (
	"fmt"
	"strings"
)

// MessageType is the body kind of a message.
type MessageType string

const (
	TypeText     MessageType = "txt"
	TypeImage    MessageType = "image"
	TypeVoice    MessageType = "voice"
	TypeVideo    MessageType = "video"
	TypeLocation MessageType = "location"
	TypeFile     MessageType = "file"
	TypeCustom   MessageType = "custom"
)

// Known reports whether t is one of the supported message types.
func (t MessageType) Known() bool {
	switch t {
	case TypeText, TypeImage, TypeVoice, TypeVideo, TypeLocation, TypeFile, TypeCustom:
		return true
	}
	return false
}

// Direction tells whether a message was sent by us or received.
type Direction string

const (
	Send    Direction = "send"
	Receive Direction = "receive"
)

// Attributes holds the extension flags a message may carry. Zero values are the defaults.
// JSON names match the attribute keys other chat clients put on the wire.
type Attributes struct {
	VoiceCall          bool   `json:"is_voice_call,omitempty"`
	VideoCall          bool   `json:"is_video_call,omitempty"`
	BigExpression      bool   `json:"em_is_big_expression,omitempty"`
	ExpressionID       string `json:"em_expression_id,omitempty"`
	IgnoreNotification bool   `json:"em_ignore_notification,omitempty"`
}

// TextBody is the body of a text message.
type TextBody struct {
	Message string `json:"message"`
}

// LocationBody is the body of a location message.
type LocationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// FileBody is the body of image, voice, video and file messages.
type FileBody struct {
	Name        string `json:"name,omitempty"`
	URL         string `json:"url,omitempty"`
	Size        int64  `json:"size,omitempty"`
	DurationSec int    `json:"duration_sec,omitempty"`
}

// CustomBody is the body of a custom message.
type CustomBody struct {
	Event  string            `json:"event"`
	Params map[string]string `json:"params,omitempty"`
}

// Body holds the type-dependent payload. Only the part matching the message
// type is expected to be set.
type Body struct {
	Text     *TextBody     `json:"text,omitempty"`
	Location *LocationBody `json:"location,omitempty"`
	File     *FileBody     `json:"file,omitempty"`
	Custom   *CustomBody   `json:"custom,omitempty"`
}

// Message is a chat message as seen by the UI layer.
type Message struct {
	ID               string           `json:"id"`
	ConversationID   string           `json:"conversation_id"`
	ConversationType ConversationType `json:"conversation_type,omitempty"`
	From             string           `json:"from"`
	To               string           `json:"to"`
	Type             MessageType      `json:"type"`
	Direction        Direction        `json:"direction"`
	Attributes       Attributes       `json:"attributes"`
	Body             Body             `json:"body"`
	Timestamp        int64            `json:"timestamp"` // unix ms
}

// Text returns the text body and whether one is present.
func (m *Message) Text() (string, bool) {
	if m == nil || m.Body.Text == nil {
		return "", false
	}
	return m.Body.Text.Message, true
}

// DefaultLetter is the sort bucket for names that do not start with A-Z.
const DefaultLetter = "#"

// Contact is a user entry of the contact list.
type Contact struct {
	Username      string `json:"username"`
	Nickname      string `json:"nickname,omitempty"`
	InitialLetter string `json:"initial_letter"`
}

// DisplayName returns the nickname, falling back to the username.
func (c *Contact) DisplayName() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.Username
}

// VCard renders the contact as a minimal vCard 3.0 card.
func (c *Contact) VCard() string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
	fmt.Fprintf(&b, "FN:%s\r\n", vcardEscape(c.DisplayName()))
	if c.Nickname != "" {
		fmt.Fprintf(&b, "NICKNAME:%s\r\n", vcardEscape(c.Nickname))
	}
	fmt.Fprintf(&b, "UID:%s\r\n", vcardEscape(c.Username))
	b.WriteString("END:VCARD\r\n")
	return b.String()
}

var vcardReplacer = strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\n", `\n`)

func vcardEscape(s string) string {
	return vcardReplacer.Replace(s)
}
