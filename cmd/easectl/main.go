package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/lock"
	"github.com/matheus3301/easekit/internal/profile"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/tui/client"
	"github.com/mdp/qrterminal/v3"
	qrcode "github.com/skip2/go-qrcode"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Listing profiles only reads the filesystem.
	if args[0] == "profiles" {
		cmdProfiles(*jsonFlag)
		return
	}

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fail(err)
	}

	socketPath := profile.SocketPath(profileName)
	c, err := client.New(socketPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot connect to daemon for profile %q: %v\n", profileName, err)
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()

	ctl := &ctl{c: c, json: *jsonFlag}

	if args[0] == "watch" {
		// Streams until interrupted, so no deadline.
		ctl.watch(context.Background(), arg(args, 1))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "env":
		ctl.env(ctx)
	case "convert":
		need(args, 3, "convert <dip|sp> <value>")
		ctl.convert(ctx, args[1], args[2])
	case "letter":
		need(args, 2, "letter <name>")
		ctl.letter(ctx, args[1])
	case "contacts":
		ctl.contacts(ctx, arg(args, 1))
	case "contact":
		need(args, 3, "contact <add|get|rm|card> <username> [nickname|file.png]")
		ctl.contact(ctx, args[1], args[2], arg(args, 3))
	case "conversations":
		ctl.conversations(ctx)
	case "read":
		need(args, 2, "read <conversation-id>")
		ctl.markRead(ctx, args[1])
	case "messages":
		need(args, 2, "messages <conversation-id> [before-unix-ms]")
		ctl.messages(ctx, args[1], arg(args, 2))
	case "send":
		need(args, 3, "send <conversation-id> <text>")
		ctl.record(ctx, chat.NewTextMessage(args[1], strings.Join(args[2:], " ")))
	case "sticker":
		need(args, 3, "sticker <conversation-id> <name> [expression-id]")
		ctl.record(ctx, chat.NewExpressionMessage(args[1], args[2], arg(args, 3)))
	case "chattype":
		need(args, 2, "chattype <code>")
		ctl.chatType(ctx, args[1])
	case "digest":
		need(args, 2, "digest <message.json>")
		ctl.digest(ctx, args[1])
	case "ingest":
		need(args, 2, "ingest <message.json>")
		ctl.ingest(ctx, args[1])
	case "import":
		need(args, 2, "import <history.pb> [self-id]")
		ctl.importHistory(ctx, args[1], arg(args, 2))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: easectl [--profile <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  env                          Show network, storage, screen and foreground probes")
	fmt.Fprintln(os.Stderr, "  convert <dip|sp> <value>     Convert a dimension to pixels")
	fmt.Fprintln(os.Stderr, "  letter <name>                Show the initial letter of a name")
	fmt.Fprintln(os.Stderr, "  contacts [letter]            List contacts by section")
	fmt.Fprintln(os.Stderr, "  contact add <user> [nick]    Add or rename a contact")
	fmt.Fprintln(os.Stderr, "  contact get <user>           Show a contact")
	fmt.Fprintln(os.Stderr, "  contact rm <user>            Delete a contact")
	fmt.Fprintln(os.Stderr, "  contact card <user> [png]    Print or save a contact QR card")
	fmt.Fprintln(os.Stderr, "  conversations                List conversations")
	fmt.Fprintln(os.Stderr, "  read <id>                    Mark a conversation read")
	fmt.Fprintln(os.Stderr, "  messages <id> [before-ms]    List messages of a conversation")
	fmt.Fprintln(os.Stderr, "  send <id> <text>             Record a text message sent by us")
	fmt.Fprintln(os.Stderr, "  sticker <id> <name> [eid]    Record a sticker sent by us")
	fmt.Fprintln(os.Stderr, "  chattype <code>              Map a chat type code to a conversation type")
	fmt.Fprintln(os.Stderr, "  digest <file|->              Format the digest of a JSON message")
	fmt.Fprintln(os.Stderr, "  ingest <file|->              Store a JSON message or array of messages")
	fmt.Fprintln(os.Stderr, "  import <history.pb> [self]   Import a WhatsApp history-sync dump")
	fmt.Fprintln(os.Stderr, "  watch [namespace]            Stream daemon events")
	fmt.Fprintln(os.Stderr, "  profiles                     List known profiles")
}

type ctl struct {
	c    *client.Client
	json bool
}

func (t *ctl) env(ctx context.Context) {
	resp, err := t.c.Device.GetEnvironment(ctx, &rpc.GetEnvironmentRequest{})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	s := resp.Snapshot
	fmt.Printf("Profile:    %s\n", resp.Profile)
	fmt.Printf("Status:     %s\n", resp.Status)
	fmt.Printf("Uptime:     %dms\n", resp.UptimeMs)
	fmt.Printf("Locale:     %s\n", resp.Locale)
	fmt.Printf("Network:    %v\n", s.NetworkConnected)
	fmt.Printf("Storage:    %v\n", s.ExternalStorage)
	fmt.Printf("Screen:     %v\n", s.Screen)
	fmt.Printf("Foreground: %s\n", s.TopActivity)
	fmt.Printf("Store:      %d contacts, %d conversations, %d messages\n",
		resp.Counts.Contacts, resp.Counts.Conversations, resp.Counts.Messages)
}

func (t *ctl) convert(ctx context.Context, unit, value string) {
	v, err := strconv.ParseFloat(value, 32)
	check(err)
	resp, err := t.c.Device.Convert(ctx, &rpc.ConvertRequest{Unit: unit, Value: float32(v)})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	fmt.Printf("%g%s = %gpx\n", v, unit, resp.Pixels)
}

func (t *ctl) letter(ctx context.Context, name string) {
	resp, err := t.c.Contact.InitialLetter(ctx, &rpc.InitialLetterRequest{Name: name})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	fmt.Println(resp.Letter)
}

func (t *ctl) contacts(ctx context.Context, section string) {
	resp, err := t.c.Contact.ListContacts(ctx, &rpc.ListContactsRequest{Letter: section})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	if resp.Total == 0 {
		fmt.Println("No contacts found.")
		return
	}
	for _, sec := range resp.Sections {
		fmt.Println(sec.Letter)
		for _, c := range sec.Contacts {
			fmt.Printf("  %-30s %s\n", c.DisplayName(), c.Username)
		}
	}
}

func (t *ctl) contact(ctx context.Context, sub, username, extra string) {
	switch sub {
	case "add":
		resp, err := t.c.Contact.UpsertContact(ctx, &rpc.UpsertContactRequest{
			Contact: chat.Contact{Username: username, Nickname: extra},
		})
		check(err)
		if t.json {
			outputJSON(resp)
			return
		}
		fmt.Printf("%s saved under %s\n", resp.Contact.DisplayName(), resp.Contact.InitialLetter)
	case "get":
		resp, err := t.c.Contact.GetContact(ctx, &rpc.GetContactRequest{Username: username})
		check(err)
		if t.json {
			outputJSON(resp)
			return
		}
		fmt.Printf("Username: %s\nNickname: %s\nSection:  %s\n",
			resp.Contact.Username, resp.Contact.Nickname, resp.Contact.InitialLetter)
	case "rm":
		_, err := t.c.Contact.DeleteContact(ctx, &rpc.DeleteContactRequest{Username: username})
		check(err)
		fmt.Printf("%s deleted\n", username)
	case "card":
		resp, err := t.c.Contact.GetContact(ctx, &rpc.GetContactRequest{Username: username})
		check(err)
		card := resp.Contact.VCard()
		if extra != "" {
			check(qrcode.WriteFile(card, qrcode.Medium, 256, extra))
			fmt.Printf("card written to %s\n", extra)
			return
		}
		qrterminal.GenerateHalfBlock(card, qrterminal.L, os.Stdout)
	default:
		fail(fmt.Errorf("unknown contact subcommand: %s", sub))
	}
}

func (t *ctl) conversations(ctx context.Context) {
	resp, err := t.c.Conversation.ListConversations(ctx, &rpc.ListConversationsRequest{Limit: 100})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	if len(resp.Conversations) == 0 {
		fmt.Println("No conversations found.")
		return
	}
	for _, c := range resp.Conversations {
		name := c.Name
		if name == "" {
			name = c.ID
		}
		fmt.Printf("%-30s %-9s unread=%-4d %s\n", name, c.Type, c.UnreadCount, c.LastMessageDigest)
	}
}

func (t *ctl) markRead(ctx context.Context, id string) {
	_, err := t.c.Conversation.MarkRead(ctx, &rpc.MarkReadRequest{ID: id})
	check(err)
	fmt.Printf("%s marked read\n", id)
}

func (t *ctl) messages(ctx context.Context, id, before string) {
	req := &rpc.ListMessagesRequest{ConversationID: id, Limit: 50}
	if before != "" {
		if !chat.IsTimestamp(before) {
			fail(fmt.Errorf("invalid timestamp %q", before))
		}
		req.BeforeUnixMs, _ = strconv.ParseInt(before, 10, 64)
	}
	resp, err := t.c.Message.ListMessages(ctx, req)
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	for i := len(resp.Messages) - 1; i >= 0; i-- {
		m := resp.Messages[i]
		ts := time.UnixMilli(m.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("%s %-20s %s\n", ts, m.From, m.Digest)
	}
}

func (t *ctl) chatType(ctx context.Context, code string) {
	n, err := strconv.Atoi(code)
	check(err)
	resp, err := t.c.Conversation.ResolveChatType(ctx, &rpc.ResolveChatTypeRequest{ChatType: n})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	fmt.Println(resp.ConversationType)
}

func (t *ctl) digest(ctx context.Context, path string) {
	var m chat.Message
	check(json.Unmarshal(readInput(path), &m))
	resp, err := t.c.Message.Digest(ctx, &rpc.DigestRequest{Message: m})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	fmt.Println(resp.Digest)
}

func (t *ctl) ingest(ctx context.Context, path string) {
	data := readInput(path)

	var batch []chat.Message
	if err := json.Unmarshal(data, &batch); err == nil {
		resp, err := t.c.Message.IngestBatch(ctx, &rpc.IngestBatchRequest{Messages: batch})
		check(err)
		if t.json {
			outputJSON(resp)
			return
		}
		fmt.Printf("%d messages (%d new) in %d conversations\n", resp.Messages, resp.Created, resp.Conversations)
		return
	}

	var m chat.Message
	check(json.Unmarshal(data, &m))
	resp, err := t.c.Message.Ingest(ctx, &rpc.IngestRequest{Message: m})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	fmt.Printf("created=%v silent=%v %s\n", resp.Created, resp.Silent, resp.Digest)
}

// record stores a message composed here as one sent by us.
func (t *ctl) record(ctx context.Context, m *chat.Message) {
	// Keep the type of a known conversation; new ones start as single chats.
	if conv, err := t.c.Conversation.GetConversation(ctx, &rpc.GetConversationRequest{ID: m.ConversationID}); err == nil {
		m.ConversationType = conv.Conversation.Type
	}
	resp, err := t.c.Message.Ingest(ctx, &rpc.IngestRequest{Message: *m})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	fmt.Printf("%s %s\n", m.ID, resp.Digest)
}

func (t *ctl) importHistory(ctx context.Context, path, self string) {
	resp, err := t.c.Message.ImportHistory(ctx, &rpc.ImportHistoryRequest{Data: readInput(path), Self: self})
	check(err)
	if t.json {
		outputJSON(resp)
		return
	}
	fmt.Printf("Imported %d messages (%d new, %d skipped), %d contacts, %d conversations\n",
		resp.Messages, resp.Created, resp.Skipped, resp.Contacts, resp.Conversations)
}

func (t *ctl) watch(ctx context.Context, namespace string) {
	stream, err := t.c.Message.WatchEvents(ctx, &rpc.WatchEventsRequest{Namespace: namespace})
	check(err)
	for {
		evt, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return
		}
		check(err)
		if t.json {
			outputJSON(evt)
			continue
		}
		ts := time.UnixMilli(evt.OccurredAtUnixMs).Format("15:04:05")
		fmt.Printf("%s %-24s %s\n", ts, evt.Kind, evt.Payload)
	}
}

type profileInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
}

func cmdProfiles(jsonOut bool) {
	entries, err := os.ReadDir(filepath.Join(profile.BaseDir(), "profiles"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fail(err)
	}

	var profiles []profileInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := profileInfo{Name: e.Name(), Path: profile.Dir(e.Name())}
		p.PID, p.Running = lock.Holder(p.Path)
		profiles = append(profiles, p)
	}

	if jsonOut {
		outputJSON(profiles)
		return
	}
	if len(profiles) == 0 {
		fmt.Println("No profiles found.")
		return
	}
	for _, p := range profiles {
		state := "stopped"
		if p.Running {
			state = fmt.Sprintf("running, pid %d", p.PID)
		}
		fmt.Printf("%-20s %s (%s)\n", p.Name, p.Path, state)
	}
}

func readInput(path string) []byte {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	check(err)
	return data
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func need(args []string, n int, usage string) {
	if len(args) < n {
		fmt.Fprintf(os.Stderr, "usage: easectl %s\n", usage)
		os.Exit(1)
	}
}

func check(err error) {
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
