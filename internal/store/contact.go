package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/letter"
)

// UpsertContact inserts or replaces a contact. The initial letter is
// recomputed from the stored nickname or username and written back to c.
func (db *DB) UpsertContact(c *chat.Contact) error {
	if c == nil || c.Username == "" {
		return fmt.Errorf("upsert contact: empty username")
	}
	letter.Assign(c, db.letters)
	_, err := db.Exec(`
		INSERT INTO contacts (username, nickname, initial_letter, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			nickname = excluded.nickname,
			initial_letter = excluded.initial_letter,
			updated_at = excluded.updated_at`,
		c.Username, c.Nickname, c.InitialLetter, time.Now().UnixMilli())
	return err
}

// BulkUpsertContacts inserts or updates multiple contacts in a single
// transaction. An empty incoming nickname keeps the stored one, together with
// the letter derived from it.
func (db *DB) BulkUpsertContacts(contacts []chat.Contact) error {
	return db.InTx(func(tx *Tx) error {
		now := time.Now().UnixMilli()
		for i := range contacts {
			c := &contacts[i]
			if c.Username == "" {
				continue
			}
			letter.Assign(c, db.letters)
			if _, err := tx.tx.Exec(`
				INSERT INTO contacts (username, nickname, initial_letter, updated_at)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(username) DO UPDATE SET
					nickname = CASE WHEN excluded.nickname != '' THEN excluded.nickname ELSE contacts.nickname END,
					initial_letter = CASE WHEN excluded.nickname != '' THEN excluded.initial_letter ELSE contacts.initial_letter END,
					updated_at = excluded.updated_at`,
				c.Username, c.Nickname, c.InitialLetter, now); err != nil {
				return fmt.Errorf("upsert contact %q: %w", c.Username, err)
			}
		}
		return nil
	})
}

// GetContact returns a contact by username, or nil when unknown.
func (db *DB) GetContact(username string) (*chat.Contact, error) {
	var c chat.Contact
	err := db.QueryRow(`SELECT username, nickname, initial_letter FROM contacts WHERE username = ?`, username).
		Scan(&c.Username, &c.Nickname, &c.InitialLetter)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LookupUser implements digest.UserProvider. Lookup failures count as unknown.
func (db *DB) LookupUser(username string) (*chat.Contact, bool) {
	c, err := db.GetContact(username)
	if err != nil || c == nil {
		return nil, false
	}
	return c, true
}

// ListContacts returns contacts ordered by initial letter and display name,
// A..Z first and "#" last. A non-empty letter restricts the result to that
// section.
func (db *DB) ListContacts(section string) ([]chat.Contact, error) {
	q := `
		SELECT username, nickname, initial_letter
		FROM contacts`
	var args []any
	if section != "" {
		q += " WHERE initial_letter = ?"
		args = append(args, strings.ToUpper(section))
	}
	q += `
		ORDER BY CASE WHEN initial_letter = '#' THEN 1 ELSE 0 END,
			initial_letter,
			LOWER(COALESCE(NULLIF(nickname, ''), username))`

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []chat.Contact
	for rows.Next() {
		var c chat.Contact
		if err := rows.Scan(&c.Username, &c.Nickname, &c.InitialLetter); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// DeleteContact removes a contact.
func (db *DB) DeleteContact(username string) error {
	res, err := db.Exec(`DELETE FROM contacts WHERE username = ?`, username)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
