package chat

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IsSilent reports whether a message asks not to notify the user (no tone, no vibration).
func IsSilent(m *Message) bool {
	if m == nil {
		return false
	}
	return m.Attributes.IgnoreNotification
}

// NewTextMessage creates an outgoing text message.
func NewTextMessage(to, text string) *Message {
	return &Message{
		ID:               uuid.New().String(),
		ConversationID:   to,
		ConversationType: ConversationChat,
		To:               to,
		Type:             TypeText,
		Direction:        Send,
		Body:             Body{Text: &TextBody{Message: text}},
		Timestamp:        time.Now().UnixMilli(),
	}
}

// NewExpressionMessage creates an outgoing big-expression (sticker) message.
// The text body is "[name]" so clients without the sticker still show something.
func NewExpressionMessage(to, name, identityCode string) *Message {
	m := NewTextMessage(to, "["+name+"]")
	m.Attributes.BigExpression = true
	if identityCode != "" {
		m.Attributes.ExpressionID = identityCode
	}
	return m
}

// IsTimestamp reports whether s is a positive base-10 integer.
func IsTimestamp(s string) bool {
	if s == "" {
		return false
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	return ts > 0
}
