package api

import (
	"context"
	"errors"

	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/store"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// ConversationService implements the ConversationService gRPC service.
type ConversationService struct {
	db *store.DB
}

// NewConversationService creates a new conversation service backed by the store.
func NewConversationService(db *store.DB) *ConversationService {
	return &ConversationService{db: db}
}

func (s *ConversationService) ListConversations(_ context.Context, req *rpc.ListConversationsRequest) (*rpc.ListConversationsResponse, error) {
	limit := 50
	if req.Limit > 0 {
		limit = req.Limit
	}
	if req.Offset < 0 {
		return nil, grpcstatus.Error(codes.InvalidArgument, "offset must not be negative")
	}

	convs, err := s.db.ListConversations(limit, req.Offset)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "list conversations: %v", err)
	}

	resp := &rpc.ListConversationsResponse{HasMore: len(convs) == limit}
	for i := range convs {
		resp.Conversations = append(resp.Conversations, conversationToRPC(&convs[i]))
	}
	return resp, nil
}

func (s *ConversationService) GetConversation(_ context.Context, req *rpc.GetConversationRequest) (*rpc.ConversationResponse, error) {
	c, err := s.db.GetConversation(req.ID)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "get conversation: %v", err)
	}
	if c == nil {
		return nil, grpcstatus.Errorf(codes.NotFound, "conversation %q not found", req.ID)
	}
	return &rpc.ConversationResponse{Conversation: conversationToRPC(c)}, nil
}

func (s *ConversationService) MarkRead(_ context.Context, req *rpc.MarkReadRequest) (*rpc.MarkReadResponse, error) {
	if err := s.db.MarkRead(req.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, grpcstatus.Errorf(codes.NotFound, "conversation %q not found", req.ID)
		}
		return nil, grpcstatus.Errorf(codes.Internal, "mark read: %v", err)
	}
	return &rpc.MarkReadResponse{}, nil
}

func (s *ConversationService) ResolveChatType(_ context.Context, req *rpc.ResolveChatTypeRequest) (*rpc.ResolveChatTypeResponse, error) {
	return &rpc.ResolveChatTypeResponse{ConversationType: chat.ConversationTypeOf(req.ChatType)}, nil
}

func conversationToRPC(c *chat.Conversation) rpc.Conversation {
	return rpc.Conversation{Conversation: *c, ChatType: chat.ChatTypeOf(c)}
}
