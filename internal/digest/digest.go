// Package digest builds the one-line message previews shown in conversation lists.
package digest

import (
	"strings"
	"unicode/utf8"

	"github.com/matheus3301/easekit/internal/chat"
	"go.uber.org/zap"
)

// String resource keys.
const (
	KeyLocationReceived  = "location_recv"
	KeyLocationSent      = "location_prefix"
	KeyPicture           = "picture"
	KeyVoice             = "voice_prefix"
	KeyVideo             = "video"
	KeyFile              = "file"
	KeyCustom            = "custom"
	KeyVoiceCall         = "voice_call"
	KeyVideoCall         = "video_call"
	KeyDynamicExpression = "dynamic_expression"
)

// Resolver looks up a localized string by key.
type Resolver interface {
	Resolve(key string) string
}

// UserProvider looks up a user profile by id.
type UserProvider interface {
	LookupUser(id string) (*chat.Contact, bool)
}

// Formatter renders message digests. It holds no mutable state and is safe for
// concurrent use as long as its collaborators are.
type Formatter struct {
	res    Resolver
	users  UserProvider
	logger *zap.Logger
}

// New creates a formatter. users may be nil when no profiles are known.
func New(res Resolver, users UserProvider, logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{res: res, users: users, logger: logger}
}

// Digest returns the preview text of m. It never fails: an unknown message
// type is logged and yields an empty digest.
func (f *Formatter) Digest(m *chat.Message) string {
	if m == nil {
		f.logger.Error("digest of nil message")
		return ""
	}

	var digest string
	switch m.Type {
	case chat.TypeLocation:
		if m.Direction == chat.Receive {
			return f.locationReceived(m)
		}
		digest = f.resolve(KeyLocationSent)
	case chat.TypeImage:
		digest = f.resolve(KeyPicture)
	case chat.TypeVoice:
		digest = f.resolve(KeyVoice)
	case chat.TypeVideo:
		digest = f.resolve(KeyVideo)
	case chat.TypeCustom:
		digest = f.resolve(KeyCustom)
	case chat.TypeFile:
		digest = f.resolve(KeyFile)
	case chat.TypeText:
		digest = f.text(m)
	default:
		f.logger.Error("unknown message type", zap.String("type", string(m.Type)), zap.String("msg_id", m.ID))
		return ""
	}

	f.logger.Debug("message digest", zap.String("msg_id", m.ID), zap.String("digest", digest))
	return digest
}

// Preview returns the digest cut to at most maxRunes runes, with an ellipsis
// when something was cut. maxRunes <= 0 disables the limit.
func (f *Formatter) Preview(m *chat.Message, maxRunes int) string {
	return Truncate(f.Digest(m), maxRunes)
}

// Truncate cuts s to at most maxRunes runes.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	if maxRunes == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:maxRunes-1]) + "…"
}

func (f *Formatter) text(m *chat.Message) string {
	body, ok := m.Text()
	if !ok {
		return ""
	}
	attrs := m.Attributes
	switch {
	case attrs.VoiceCall:
		return f.resolve(KeyVoiceCall) + body
	case attrs.VideoCall:
		return f.resolve(KeyVideoCall) + body
	case attrs.BigExpression:
		if body != "" {
			return body
		}
		return f.resolve(KeyDynamicExpression)
	default:
		return body
	}
}

func (f *Formatter) locationReceived(m *chat.Message) string {
	from := m.From
	if f.users != nil {
		if u, ok := f.users.LookupUser(m.From); ok && u != nil && u.Nickname != "" {
			from = u.Nickname
		}
	}
	digest := strings.Replace(f.resolve(KeyLocationReceived), "%s", from, 1)
	f.logger.Debug("message digest", zap.String("msg_id", m.ID), zap.String("digest", digest))
	return digest
}

func (f *Formatter) resolve(key string) string {
	if f.res == nil {
		return ""
	}
	return f.res.Resolve(key)
}
