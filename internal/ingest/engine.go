// Package ingest stores incoming messages and keeps conversation digests,
// unread counters and notifications in step with them.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/matheus3301/easekit/internal/bus"
	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/digest"
	"github.com/matheus3301/easekit/internal/store"
	"go.uber.org/zap"
)

// PreviewRunes bounds the digest stored on a conversation.
const PreviewRunes = 100

// MessageEvent is the payload of bus.KindUpserted.
type MessageEvent struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	Digest         string `json:"digest"`
	Created        bool   `json:"created"`
}

// Notification is the payload of bus.KindNotify.
type Notification struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	From           string `json:"from"`
	Digest         string `json:"digest"`
}

// BatchSummary is the payload of bus.KindSyncBatch.
type BatchSummary struct {
	Messages      int `json:"messages"`
	Created       int `json:"created"`
	Conversations int `json:"conversations"`
}

// Engine handles idempotent ingestion of messages into the store.
// It subscribes to "inbound." events on the bus and processes them.
type Engine struct {
	db     *store.DB
	digest *digest.Formatter
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
}

// NewEngine creates a new ingestion engine.
func NewEngine(db *store.DB, f *digest.Formatter, b *bus.Bus, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:     db,
		digest: f,
		bus:    b,
		logger: logger,
	}
}

// Start subscribes to inbound events on the bus.
func (e *Engine) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)
	ch, unsub := e.bus.Subscribe("inbound.", 256)

	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				e.handleEvent(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the engine.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}

func (e *Engine) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.KindInbound:
		m, ok := evt.Payload.(*chat.Message)
		if !ok {
			return
		}
		if _, err := e.IngestMessage(m); err != nil {
			e.logger.Error("failed to ingest message", zap.Error(err), zap.String("msg_id", m.ID))
		}
	case bus.KindInboundBatch:
		msgs, ok := evt.Payload.([]*chat.Message)
		if !ok {
			return
		}
		summary, err := e.IngestBatch(msgs)
		if err != nil {
			e.logger.Error("failed to ingest batch", zap.Error(err), zap.Int("count", len(msgs)))
			return
		}
		e.logger.Info("batch ingested", zap.Int("messages", summary.Messages), zap.Int("created", summary.Created))
	}
}

// ErrInvalidMessage is returned for messages that cannot be stored.
var ErrInvalidMessage = errors.New("invalid message")

func validate(m *chat.Message) error {
	switch {
	case m == nil:
		return fmt.Errorf("%w: nil", ErrInvalidMessage)
	case m.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidMessage)
	case m.ConversationID == "":
		return fmt.Errorf("%w: empty conversation id", ErrInvalidMessage)
	case !m.Type.Known():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, m.Type)
	}
	return nil
}

// IngestMessage stores a message, refreshes its conversation and publishes
// message.upserted. Newly received messages bump the unread counter and,
// unless silent, publish notify.message.
func (e *Engine) IngestMessage(m *chat.Message) (*MessageEvent, error) {
	if err := validate(m); err != nil {
		return nil, err
	}
	var evt *MessageEvent
	err := e.db.InTx(func(tx *store.Tx) error {
		var err error
		evt, err = e.apply(tx, m)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.bus.Publish(bus.NewEvent(bus.KindUpserted, *evt))
	if evt.Created && m.Direction == chat.Receive && !chat.IsSilent(m) {
		e.bus.Publish(bus.NewEvent(bus.KindNotify, Notification{
			ConversationID: m.ConversationID,
			MessageID:      m.ID,
			From:           m.From,
			Digest:         evt.Digest,
		}))
	}
	return evt, nil
}

// IngestBatch stores a batch of history messages in one transaction and
// publishes a single sync.batch summary. Batches never notify. Invalid
// messages are skipped and logged.
func (e *Engine) IngestBatch(msgs []*chat.Message) (*BatchSummary, error) {
	summary := &BatchSummary{}
	convs := make(map[string]struct{})

	err := e.db.InTx(func(tx *store.Tx) error {
		for _, m := range msgs {
			if err := validate(m); err != nil {
				e.logger.Warn("skipping message", zap.Error(err))
				continue
			}
			evt, err := e.apply(tx, m)
			if err != nil {
				return fmt.Errorf("message %q: %w", m.ID, err)
			}
			summary.Messages++
			if evt.Created {
				summary.Created++
			}
			convs[m.ConversationID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary.Conversations = len(convs)

	e.bus.Publish(bus.NewEvent(bus.KindSyncBatch, *summary))
	return summary, nil
}

func (e *Engine) apply(tx *store.Tx, m *chat.Message) (*MessageEvent, error) {
	typ := m.ConversationType
	if typ == "" {
		typ = chat.ConversationChat
	}
	preview := e.digest.Preview(m, PreviewRunes)

	conv := chat.NewConversation(m.ConversationID, typ)
	conv.LastMessageAt = m.Timestamp
	conv.LastMessageDigest = preview
	if err := tx.UpsertConversation(conv); err != nil {
		return nil, fmt.Errorf("upsert conversation: %w", err)
	}

	created, err := tx.UpsertMessage(m)
	if err != nil {
		return nil, fmt.Errorf("upsert message: %w", err)
	}
	if created && m.Direction == chat.Receive {
		if err := tx.IncrementUnread(m.ConversationID); err != nil {
			return nil, fmt.Errorf("bump unread: %w", err)
		}
	}
	return &MessageEvent{
		ConversationID: m.ConversationID,
		MessageID:      m.ID,
		Digest:         preview,
		Created:        created,
	}, nil
}
