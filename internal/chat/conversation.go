package chat

// ConversationType is the conversation kind used by the chat SDK.
type ConversationType string

const (
	ConversationChat      ConversationType = "chat"
	ConversationGroupChat ConversationType = "groupchat"
	ConversationChatRoom  ConversationType = "chatroom"
)

// Chat type codes used by the application layer.
const (
	ChatTypeSingle   = 1
	ChatTypeGroup    = 2
	ChatTypeChatRoom = 3
)

// Conversation is a chat thread shown in the conversation list.
type Conversation struct {
	ID                string           `json:"id"`
	Type              ConversationType `json:"type"`
	IsGroup           bool             `json:"is_group"`
	Name              string           `json:"name,omitempty"`
	UnreadCount       int              `json:"unread_count"`
	LastMessageAt     int64            `json:"last_message_at"`
	LastMessageDigest string           `json:"last_message_digest"`
}

// NewConversation creates a conversation with the group flag set the way the SDK
// does: group chats and chat rooms are both group conversations.
func NewConversation(id string, t ConversationType) *Conversation {
	return &Conversation{
		ID:      id,
		Type:    t,
		IsGroup: t == ConversationGroupChat || t == ConversationChatRoom,
	}
}

// ConversationTypeOf maps an application chat type code to a conversation type.
// Unknown codes map to chat rooms.
func ConversationTypeOf(chatType int) ConversationType {
	switch chatType {
	case ChatTypeSingle:
		return ConversationChat
	case ChatTypeGroup:
		return ConversationGroupChat
	default:
		return ConversationChatRoom
	}
}

// ChatTypeOf maps a conversation to an application chat type code. The group
// flag is checked first; only group conversations distinguish chat rooms by type.
// A non-group conversation is always single, whatever its type says.
func ChatTypeOf(c *Conversation) int {
	if c == nil || !c.IsGroup {
		return ChatTypeSingle
	}
	if c.Type == ConversationChatRoom {
		return ChatTypeChatRoom
	}
	return ChatTypeGroup
}
