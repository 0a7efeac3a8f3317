package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/matheus3301/easekit/internal/chat"
)

// UpsertMessage inserts or updates a message (idempotent on conversation id +
// message id). created reports whether the message was new.
func (db *DB) UpsertMessage(m *chat.Message) (created bool, err error) {
	return upsertMessage(db.DB, m)
}

// UpsertMessage is the transactional form of DB.UpsertMessage.
func (tx *Tx) UpsertMessage(m *chat.Message) (bool, error) {
	return upsertMessage(tx.tx, m)
}

func upsertMessage(ex execer, m *chat.Message) (bool, error) {
	body, err := json.Marshal(m.Body)
	if err != nil {
		return false, fmt.Errorf("encode body: %w", err)
	}
	attrs, err := json.Marshal(m.Attributes)
	if err != nil {
		return false, fmt.Errorf("encode attributes: %w", err)
	}

	res, err := ex.Exec(`
		INSERT INTO messages (conversation_id, msg_id, sender, recipient, type, direction, body, attributes, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(conversation_id, msg_id) DO NOTHING`,
		m.ConversationID, m.ID, m.From, m.To, string(m.Type), string(m.Direction),
		string(body), string(attrs), m.Timestamp, time.Now().UnixMilli())
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}

	_, err = ex.Exec(`
		UPDATE messages SET body = ?, attributes = ?, type = ?
		WHERE conversation_id = ? AND msg_id = ?`,
		string(body), string(attrs), string(m.Type), m.ConversationID, m.ID)
	return false, err
}

// ListMessages returns messages of a conversation newest first, using keyset
// pagination by timestamp.
func (db *DB) ListMessages(conversationID string, beforeTs int64, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if beforeTs <= 0 {
		beforeTs = time.Now().UnixMilli() + 1
	}
	rows, err := db.Query(`
		SELECT m.conversation_id, m.msg_id, m.sender, m.recipient, m.type, m.direction,
			m.body, m.attributes, m.timestamp, COALESCE(c.type, '')
		FROM messages m
		LEFT JOIN conversations c ON c.id = m.conversation_id
		WHERE m.conversation_id = ? AND m.timestamp < ?
		ORDER BY m.timestamp DESC, m.id DESC
		LIMIT ?`, conversationID, beforeTs, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []chat.Message
	for rows.Next() {
		var (
			m                          chat.Message
			typ, dir, body, attrs, cvt string
		)
		if err := rows.Scan(&m.ConversationID, &m.ID, &m.From, &m.To, &typ, &dir, &body, &attrs, &m.Timestamp, &cvt); err != nil {
			return nil, err
		}
		m.Type = chat.MessageType(typ)
		m.Direction = chat.Direction(dir)
		m.ConversationType = chat.ConversationType(cvt)
		if err := json.Unmarshal([]byte(body), &m.Body); err != nil {
			return nil, fmt.Errorf("decode body of %q: %w", m.ID, err)
		}
		if err := json.Unmarshal([]byte(attrs), &m.Attributes); err != nil {
			return nil, fmt.Errorf("decode attributes of %q: %w", m.ID, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
