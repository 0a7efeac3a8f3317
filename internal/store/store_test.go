package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/matheus3301/easekit/internal/chat"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
}

func TestUpsertContactComputesLetter(t *testing.T) {
	db := testDB(t)

	tests := []struct {
		contact chat.Contact
		want    string
	}{
		{chat.Contact{Username: "alice"}, "A"},
		{chat.Contact{Username: "u1", Nickname: "张三"}, "Z"},
		{chat.Contact{Username: "u2", Nickname: "3 Musketeers"}, "#"},
		{chat.Contact{Username: "bob", Nickname: "", InitialLetter: "Q"}, "B"},
	}
	for _, tt := range tests {
		c := tt.contact
		if err := db.UpsertContact(&c); err != nil {
			t.Fatal(err)
		}
		if c.InitialLetter != tt.want {
			t.Errorf("%s: letter on struct = %q, want %q", c.Username, c.InitialLetter, tt.want)
		}
		got, err := db.GetContact(c.Username)
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || got.InitialLetter != tt.want {
			t.Errorf("%s: stored = %+v, want letter %q", c.Username, got, tt.want)
		}
	}
}

func TestUpsertContactRecomputesOnRename(t *testing.T) {
	db := testDB(t)

	c := &chat.Contact{Username: "u1", Nickname: "李四"}
	if err := db.UpsertContact(c); err != nil {
		t.Fatal(err)
	}
	c.Nickname = "Wendy"
	if err := db.UpsertContact(c); err != nil {
		t.Fatal(err)
	}
	got, _ := db.GetContact("u1")
	if got.InitialLetter != "W" {
		t.Errorf("letter = %q, want W", got.InitialLetter)
	}

	c.Nickname = ""
	if err := db.UpsertContact(c); err != nil {
		t.Fatal(err)
	}
	got, _ = db.GetContact("u1")
	if got.InitialLetter != "U" || got.Nickname != "" {
		t.Errorf("after clearing nickname = %+v, want letter U", got)
	}
}

func TestUpsertContactRejectsEmptyUsername(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertContact(&chat.Contact{Nickname: "x"}); err == nil {
		t.Error("UpsertContact() should reject an empty username")
	}
}

func TestBulkUpsertKeepsNickname(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertContact(&chat.Contact{Username: "u1", Nickname: "王五"}); err != nil {
		t.Fatal(err)
	}
	err := db.BulkUpsertContacts([]chat.Contact{
		{Username: "u1"},
		{Username: "zed", Nickname: "Zed"},
		{Username: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := db.GetContact("u1")
	if got.Nickname != "王五" || got.InitialLetter != "W" {
		t.Errorf("u1 = %+v, want nickname kept with letter W", got)
	}
	stats, _ := db.Stats()
	if stats.Contacts != 2 {
		t.Errorf("contacts = %d, want 2", stats.Contacts)
	}
}

func TestListContactsOrder(t *testing.T) {
	db := testDB(t)

	for _, c := range []chat.Contact{
		{Username: "9lives"},
		{Username: "bob"},
		{Username: "u1", Nickname: "alice"},
		{Username: "u2", Nickname: "Aaron"},
	} {
		c := c
		if err := db.UpsertContact(&c); err != nil {
			t.Fatal(err)
		}
	}

	all, err := db.ListContacts("")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range all {
		names = append(names, c.DisplayName())
	}
	want := []string{"Aaron", "alice", "bob", "9lives"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names = %v, want %v", names, want)
			break
		}
	}

	section, err := db.ListContacts("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(section) != 2 {
		t.Errorf("section A has %d contacts, want 2", len(section))
	}
}

func TestLookupUser(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertContact(&chat.Contact{Username: "alice", Nickname: "Alice"}); err != nil {
		t.Fatal(err)
	}
	if c, ok := db.LookupUser("alice"); !ok || c.Nickname != "Alice" {
		t.Errorf("LookupUser(alice) = %+v, %v", c, ok)
	}
	if _, ok := db.LookupUser("nobody"); ok {
		t.Error("LookupUser(nobody) should miss")
	}
}

func TestDeleteContact(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertContact(&chat.Contact{Username: "alice"}); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteContact("alice"); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteContact("alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteContact() error = %v, want ErrNotFound", err)
	}
}

func TestConversationUpsertMovesForward(t *testing.T) {
	db := testDB(t)

	c := chat.NewConversation("g1", chat.ConversationGroupChat)
	c.Name = "Team"
	c.LastMessageAt = 2000
	c.LastMessageDigest = "newer"
	if err := db.UpsertConversation(c); err != nil {
		t.Fatal(err)
	}

	older := chat.NewConversation("g1", chat.ConversationGroupChat)
	older.LastMessageAt = 1000
	older.LastMessageDigest = "older"
	if err := db.UpsertConversation(older); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetConversation("g1")
	if err != nil {
		t.Fatal(err)
	}
	if got.LastMessageAt != 2000 || got.LastMessageDigest != "newer" {
		t.Errorf("last message = %d %q, want 2000 newer", got.LastMessageAt, got.LastMessageDigest)
	}
	if got.Name != "Team" {
		t.Errorf("name = %q, want Team kept", got.Name)
	}
	if !got.IsGroup || got.Type != chat.ConversationGroupChat {
		t.Errorf("type = %s group=%v", got.Type, got.IsGroup)
	}
	if chat.ChatTypeOf(got) != chat.ChatTypeGroup {
		t.Errorf("ChatTypeOf(stored) = %d, want %d", chat.ChatTypeOf(got), chat.ChatTypeGroup)
	}
}

func TestListConversationsNameFallback(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertContact(&chat.Contact{Username: "alice", Nickname: "Alice"}); err != nil {
		t.Fatal(err)
	}
	for _, c := range []*chat.Conversation{
		{ID: "alice", Type: chat.ConversationChat, LastMessageAt: 1000},
		{ID: "bob", Type: chat.ConversationChat, LastMessageAt: 3000},
		{ID: "room", Type: chat.ConversationChatRoom, Name: "Lobby", IsGroup: true, LastMessageAt: 2000},
	} {
		if err := db.UpsertConversation(c); err != nil {
			t.Fatal(err)
		}
	}

	convs, err := db.ListConversations(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"bob", "Lobby", "Alice"}
	if len(convs) != len(want) {
		t.Fatalf("got %d conversations, want %d", len(convs), len(want))
	}
	for i, name := range want {
		if convs[i].Name != name {
			t.Errorf("conversation %d name = %q, want %q", i, convs[i].Name, name)
		}
	}

	page, err := db.ListConversations(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].ID != "room" {
		t.Errorf("page = %+v, want room", page)
	}
}

func TestUnreadAndMarkRead(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertConversation(&chat.Conversation{ID: "c1"}); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := db.IncrementUnread("c1"); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := db.GetConversation("c1")
	if got.UnreadCount != 3 {
		t.Errorf("unread = %d, want 3", got.UnreadCount)
	}
	if err := db.MarkRead("c1"); err != nil {
		t.Fatal(err)
	}
	got, _ = db.GetConversation("c1")
	if got.UnreadCount != 0 {
		t.Errorf("unread after MarkRead = %d, want 0", got.UnreadCount)
	}
	if err := db.MarkRead("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkRead(missing) error = %v, want ErrNotFound", err)
	}
	if err := db.IncrementUnread("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("IncrementUnread(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGetConversationMissing(t *testing.T) {
	db := testDB(t)
	c, err := db.GetConversation("missing")
	if err != nil {
		t.Fatal(err)
	}
	if c != nil {
		t.Error("expected nil for missing conversation")
	}
}

func TestMessageUpsertIdempotent(t *testing.T) {
	db := testDB(t)

	msg := &chat.Message{
		ID: "m1", ConversationID: "c1", From: "alice", To: "me",
		Type: chat.TypeText, Direction: chat.Receive,
		Attributes: chat.Attributes{IgnoreNotification: true},
		Body:       chat.Body{Text: &chat.TextBody{Message: "hello"}},
		Timestamp:  1000,
	}
	created, err := db.UpsertMessage(msg)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Error("first UpsertMessage() should report created")
	}

	msg.Body.Text.Message = "hello updated"
	created, err = db.UpsertMessage(msg)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("second UpsertMessage() should not report created")
	}

	msgs, err := db.ListMessages("c1", 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1 (idempotent upsert failed)", len(msgs))
	}
	got := msgs[0]
	if text, _ := got.Text(); text != "hello updated" {
		t.Errorf("body = %q, want hello updated", text)
	}
	if !chat.IsSilent(&got) {
		t.Error("attributes were not round-tripped")
	}
	if got.From != "alice" || got.Direction != chat.Receive || got.Type != chat.TypeText {
		t.Errorf("message = %+v", got)
	}
}

func TestListMessagesKeyset(t *testing.T) {
	db := testDB(t)

	for i, ts := range []int64{1000, 2000, 3000, 4000} {
		m := &chat.Message{
			ID: string(rune('a' + i)), ConversationID: "c1",
			Type: chat.TypeLocation, Direction: chat.Send,
			Body:      chat.Body{Location: &chat.LocationBody{Latitude: 1, Longitude: 2}},
			Timestamp: ts,
		}
		if _, err := db.UpsertMessage(m); err != nil {
			t.Fatal(err)
		}
	}

	page, err := db.ListMessages("c1", 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].Timestamp != 4000 || page[1].Timestamp != 3000 {
		t.Fatalf("first page = %+v", page)
	}
	next, err := db.ListMessages("c1", page[1].Timestamp, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(next) != 2 || next[0].Timestamp != 2000 {
		t.Errorf("second page = %+v", next)
	}
	if next[0].Body.Location == nil || next[0].Body.Location.Longitude != 2 {
		t.Errorf("location body lost: %+v", next[0].Body)
	}
}

func TestInTxRollsBack(t *testing.T) {
	db := testDB(t)

	boom := errors.New("boom")
	err := db.InTx(func(tx *Tx) error {
		if _, err := tx.UpsertMessage(&chat.Message{ID: "m1", ConversationID: "c1", Type: chat.TypeText, Direction: chat.Send}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx() error = %v, want boom", err)
	}
	stats, _ := db.Stats()
	if stats.Messages != 0 {
		t.Errorf("messages = %d, want 0 after rollback", stats.Messages)
	}
}
