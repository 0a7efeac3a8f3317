package store

// Stats summarizes the contents of the database.
type Stats struct {
	Contacts      int64 `json:"contacts"`
	Conversations int64 `json:"conversations"`
	Messages      int64 `json:"messages"`
}

// Stats counts rows in every table.
func (db *DB) Stats() (*Stats, error) {
	var s Stats
	err := db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM conversations),
			(SELECT COUNT(*) FROM messages)`).
		Scan(&s.Contacts, &s.Conversations, &s.Messages)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
