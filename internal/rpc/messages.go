package rpc

import (
	"encoding/json"

	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/platform"
)

// Contacts.

type Section struct {
	Letter   string         `json:"letter"`
	Contacts []chat.Contact `json:"contacts"`
}

type ListContactsRequest struct {
	Letter string `json:"letter,omitempty"`
}

type ListContactsResponse struct {
	Sections []Section `json:"sections"`
	Total    int       `json:"total"`
}

type GetContactRequest struct {
	Username string `json:"username"`
}

type UpsertContactRequest struct {
	Contact chat.Contact `json:"contact"`
}

type ContactResponse struct {
	Contact chat.Contact `json:"contact"`
}

type DeleteContactRequest struct {
	Username string `json:"username"`
}

type DeleteContactResponse struct{}

type InitialLetterRequest struct {
	Name string `json:"name"`
}

type InitialLetterResponse struct {
	Letter string `json:"letter"`
}

// Conversations.

// Conversation is a conversation with its numeric chat type.
type Conversation struct {
	chat.Conversation
	ChatType int `json:"chat_type"`
}

type ListConversationsRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
	HasMore       bool           `json:"has_more"`
}

type GetConversationRequest struct {
	ID string `json:"id"`
}

type ConversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

type MarkReadRequest struct {
	ID string `json:"id"`
}

type MarkReadResponse struct{}

type ResolveChatTypeRequest struct {
	ChatType int `json:"chat_type"`
}

type ResolveChatTypeResponse struct {
	ConversationType chat.ConversationType `json:"conversation_type"`
}

// Messages.

// Message is a stored message with its digest and silent flag.
type Message struct {
	chat.Message
	Digest string `json:"digest"`
	Silent bool   `json:"silent"`
}

type IngestRequest struct {
	Message chat.Message `json:"message"`
}

type IngestResponse struct {
	Digest  string `json:"digest"`
	Created bool   `json:"created"`
	Silent  bool   `json:"silent"`
}

type IngestBatchRequest struct {
	Messages []chat.Message `json:"messages"`
}

type IngestBatchResponse struct {
	Messages      int `json:"messages"`
	Created       int `json:"created"`
	Conversations int `json:"conversations"`
}

// ImportHistoryRequest carries a serialized WhatsApp history-sync blob.
type ImportHistoryRequest struct {
	Data []byte `json:"data"`
	Self string `json:"self,omitempty"`
}

type ImportHistoryResponse struct {
	Messages      int `json:"messages"`
	Created       int `json:"created"`
	Skipped       int `json:"skipped"`
	Contacts      int `json:"contacts"`
	Conversations int `json:"conversations"`
}

type ListMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
	BeforeUnixMs   int64  `json:"before_unix_ms,omitempty"`
	Limit          int    `json:"limit,omitempty"`
}

type ListMessagesResponse struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}

type DigestRequest struct {
	Message chat.Message `json:"message"`
}

type DigestResponse struct {
	Digest string `json:"digest"`
	Silent bool   `json:"silent"`
}

type WatchEventsRequest struct {
	Namespace string `json:"namespace,omitempty"`
}

// Event is a bus event as seen by clients.
type Event struct {
	ID               string          `json:"id"`
	Profile          string          `json:"profile"`
	Kind             string          `json:"kind"`
	OccurredAtUnixMs int64           `json:"occurred_at_unix_ms"`
	Payload          json.RawMessage `json:"payload,omitempty"`
}

// Device.

type GetEnvironmentRequest struct{}

type Counts struct {
	Contacts      int64 `json:"contacts"`
	Conversations int64 `json:"conversations"`
	Messages      int64 `json:"messages"`
}

type EnvironmentResponse struct {
	Profile  string            `json:"profile"`
	Status   string            `json:"status"`
	Locale   string            `json:"locale"`
	UptimeMs int64             `json:"uptime_ms"`
	Snapshot platform.Snapshot `json:"snapshot"`
	Metrics  platform.Metrics  `json:"metrics"`
	Counts   Counts            `json:"counts"`
}

// Units accepted by ConvertRequest.
const (
	UnitDip = "dip"
	UnitSp  = "sp"
)

type ConvertRequest struct {
	Unit  string  `json:"unit"`
	Value float32 `json:"value"`
}

type ConvertResponse struct {
	Pixels float32 `json:"pixels"`
}
