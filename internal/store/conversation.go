package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/matheus3301/easekit/internal/chat"
)

// UpsertConversation inserts or updates a conversation. The last-message
// fields only move forward in time, a blank name keeps the stored one and the
// unread count is only set on insert.
func (db *DB) UpsertConversation(c *chat.Conversation) error {
	return upsertConversation(db.DB, c)
}

// UpsertConversation is the transactional form of DB.UpsertConversation.
func (tx *Tx) UpsertConversation(c *chat.Conversation) error {
	return upsertConversation(tx.tx, c)
}

func upsertConversation(ex execer, c *chat.Conversation) error {
	typ := c.Type
	if typ == "" {
		typ = chat.ConversationChat
	}
	_, err := ex.Exec(`
		INSERT INTO conversations (id, type, is_group, name, unread_count, last_message_at, last_message_digest, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			is_group = excluded.is_group,
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE conversations.name END,
			last_message_digest = CASE WHEN excluded.last_message_at >= conversations.last_message_at
				THEN excluded.last_message_digest ELSE conversations.last_message_digest END,
			last_message_at = MAX(conversations.last_message_at, excluded.last_message_at),
			updated_at = excluded.updated_at`,
		c.ID, string(typ), c.IsGroup, c.Name, c.UnreadCount, c.LastMessageAt, c.LastMessageDigest, time.Now().UnixMilli())
	return err
}

// IncrementUnread bumps the unread counter of a conversation.
func (tx *Tx) IncrementUnread(id string) error {
	return incrementUnread(tx.tx, id)
}

// IncrementUnread bumps the unread counter of a conversation.
func (db *DB) IncrementUnread(id string) error {
	return incrementUnread(db.DB, id)
}

func incrementUnread(ex execer, id string) error {
	res, err := ex.Exec(`UPDATE conversations SET unread_count = unread_count + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// MarkRead resets the unread counter of a conversation.
func (db *DB) MarkRead(id string) error {
	res, err := db.Exec(`UPDATE conversations SET unread_count = 0, updated_at = ? WHERE id = ?`,
		time.Now().UnixMilli(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const conversationColumns = `
	c.id,
	COALESCE(NULLIF(c.name,''), NULLIF(ct.nickname,''), c.id) AS display_name,
	c.type, c.is_group, c.unread_count, c.last_message_at, c.last_message_digest`

// ListConversations returns conversations sorted by last message timestamp
// descending. Names fall back to the contact nickname, then the id.
func (db *DB) ListConversations(limit, offset int) ([]chat.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT `+conversationColumns+`
		FROM conversations c
		LEFT JOIN contacts ct ON c.id = ct.username
		ORDER BY c.last_message_at DESC, c.id
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var convs []chat.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, *c)
	}
	return convs, rows.Err()
}

// GetConversation returns a single conversation, or nil when unknown.
func (db *DB) GetConversation(id string) (*chat.Conversation, error) {
	row := db.QueryRow(`
		SELECT `+conversationColumns+`
		FROM conversations c
		LEFT JOIN contacts ct ON c.id = ct.username
		WHERE c.id = ?`, id)
	c, err := scanConversation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversation(s scanner) (*chat.Conversation, error) {
	var (
		c   chat.Conversation
		typ string
	)
	if err := s.Scan(&c.ID, &c.Name, &typ, &c.IsGroup, &c.UnreadCount, &c.LastMessageAt, &c.LastMessageDigest); err != nil {
		return nil, err
	}
	c.Type = chat.ConversationType(typ)
	return &c, nil
}
