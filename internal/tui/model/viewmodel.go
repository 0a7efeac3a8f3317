package model

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/tui/client"
)

// ViewModel caches state fetched from the daemon and signals UI refreshes.
type ViewModel struct {
	mu sync.RWMutex

	client        *client.Client
	Environment   *rpc.EnvironmentResponse
	Conversations []rpc.Conversation
	Sections      []rpc.Section
	Messages      []rpc.Message
	ActiveID      string
	Flash         Flash

	refreshCh chan struct{}
}

// NewViewModel creates a new view model connected to the daemon client.
func NewViewModel(c *client.Client) *ViewModel {
	return &ViewModel{
		client:    c,
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// LoadEnvironment fetches the daemon's environment snapshot.
func (vm *ViewModel) LoadEnvironment(ctx context.Context) error {
	resp, err := vm.client.Device.GetEnvironment(ctx, &rpc.GetEnvironmentRequest{})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.Environment = resp
	vm.mu.Unlock()
	return nil
}

// LoadConversations fetches the conversation list.
func (vm *ViewModel) LoadConversations(ctx context.Context) error {
	resp, err := vm.client.Conversation.ListConversations(ctx, &rpc.ListConversationsRequest{Limit: 200})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.Conversations = resp.Conversations
	vm.mu.Unlock()
	return nil
}

// LoadContacts fetches all contacts grouped by initial letter.
func (vm *ViewModel) LoadContacts(ctx context.Context) error {
	resp, err := vm.client.Contact.ListContacts(ctx, &rpc.ListContactsRequest{})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.Sections = resp.Sections
	vm.mu.Unlock()
	return nil
}

// LoadMessages fetches the latest messages of a conversation and makes it active.
func (vm *ViewModel) LoadMessages(ctx context.Context, conversationID string) error {
	resp, err := vm.client.Message.ListMessages(ctx, &rpc.ListMessagesRequest{
		ConversationID: conversationID,
		Limit:          100,
	})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.ActiveID = conversationID
	vm.Messages = resp.Messages
	vm.mu.Unlock()
	return nil
}

// MarkRead clears the unread counter of a conversation.
func (vm *ViewModel) MarkRead(ctx context.Context, conversationID string) error {
	_, err := vm.client.Conversation.MarkRead(ctx, &rpc.MarkReadRequest{ID: conversationID})
	return err
}

// Convert turns a dip or sp value into pixels on the daemon's display.
func (vm *ViewModel) Convert(ctx context.Context, unit string, value float32) (float32, error) {
	resp, err := vm.client.Device.Convert(ctx, &rpc.ConvertRequest{Unit: unit, Value: value})
	if err != nil {
		return 0, err
	}
	return resp.Pixels, nil
}

// InitialLetter asks the daemon for the section letter of name.
func (vm *ViewModel) InitialLetter(ctx context.Context, name string) (string, error) {
	resp, err := vm.client.Contact.InitialLetter(ctx, &rpc.InitialLetterRequest{Name: name})
	if err != nil {
		return "", err
	}
	return resp.Letter, nil
}

// Watch streams daemon events and signals a refresh for each one. It
// returns when ctx is done or the stream breaks.
func (vm *ViewModel) Watch(ctx context.Context) error {
	stream, err := vm.client.Message.WatchEvents(ctx, &rpc.WatchEventsRequest{})
	if err != nil {
		return err
	}
	for {
		if _, err := stream.Recv(); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		vm.signalRefresh()
	}
}

// GetEnvironment returns the last environment snapshot.
func (vm *ViewModel) GetEnvironment() *rpc.EnvironmentResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Environment
}

// GetConversations returns a snapshot of the current conversation list.
func (vm *ViewModel) GetConversations() []rpc.Conversation {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Conversations
}

// GetSections returns a snapshot of the contact sections.
func (vm *ViewModel) GetSections() []rpc.Section {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Sections
}

// GetMessages returns a snapshot of the active conversation's messages.
func (vm *ViewModel) GetMessages() []rpc.Message {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Messages
}

// GetActiveID returns the id of the open conversation.
func (vm *ViewModel) GetActiveID() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.ActiveID
}
