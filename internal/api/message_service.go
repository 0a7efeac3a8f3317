package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/matheus3301/easekit/internal/bus"
	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/digest"
	"github.com/matheus3301/easekit/internal/ingest"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/store"
	"github.com/matheus3301/easekit/internal/wa"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// MessageService implements the MessageService gRPC service.
type MessageService struct {
	db          *store.DB
	engine      *ingest.Engine
	digest      *digest.Formatter
	bus         *bus.Bus
	profileName string
	logger      *zap.Logger
}

// NewMessageService creates a new message service.
func NewMessageService(profileName string, db *store.DB, engine *ingest.Engine, f *digest.Formatter, b *bus.Bus, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		db:          db,
		engine:      engine,
		digest:      f,
		bus:         b,
		profileName: profileName,
		logger:      logger,
	}
}

func (s *MessageService) Ingest(_ context.Context, req *rpc.IngestRequest) (*rpc.IngestResponse, error) {
	m := req.Message
	evt, err := s.engine.IngestMessage(&m)
	if err != nil {
		return nil, ingestError(err)
	}
	return &rpc.IngestResponse{Digest: evt.Digest, Created: evt.Created, Silent: chat.IsSilent(&m)}, nil
}

func (s *MessageService) IngestBatch(_ context.Context, req *rpc.IngestBatchRequest) (*rpc.IngestBatchResponse, error) {
	msgs := make([]*chat.Message, len(req.Messages))
	for i := range req.Messages {
		msgs[i] = &req.Messages[i]
	}
	summary, err := s.engine.IngestBatch(msgs)
	if err != nil {
		return nil, ingestError(err)
	}
	return &rpc.IngestBatchResponse{
		Messages:      summary.Messages,
		Created:       summary.Created,
		Conversations: summary.Conversations,
	}, nil
}

func (s *MessageService) ImportHistory(_ context.Context, req *rpc.ImportHistoryRequest) (*rpc.ImportHistoryResponse, error) {
	hs, err := wa.ParseHistorySync(req.Data)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "%v", err)
	}
	out := wa.Importer{Self: req.Self}.Convert(hs)

	if err := s.db.BulkUpsertContacts(out.Contacts); err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "import contacts: %v", err)
	}
	summary, err := s.engine.IngestBatch(out.Messages)
	if err != nil {
		return nil, ingestError(err)
	}
	for i := range out.Conversations {
		if err := s.db.UpsertConversation(&out.Conversations[i]); err != nil {
			return nil, grpcstatus.Errorf(codes.Internal, "import conversation: %v", err)
		}
	}

	s.logger.Info("history imported",
		zap.Int("messages", summary.Messages),
		zap.Int("created", summary.Created),
		zap.Int("skipped", out.Skipped),
		zap.Int("contacts", len(out.Contacts)))

	return &rpc.ImportHistoryResponse{
		Messages:      summary.Messages,
		Created:       summary.Created,
		Skipped:       out.Skipped,
		Contacts:      len(out.Contacts),
		Conversations: len(out.Conversations),
	}, nil
}

func (s *MessageService) ListMessages(_ context.Context, req *rpc.ListMessagesRequest) (*rpc.ListMessagesResponse, error) {
	if req.ConversationID == "" {
		return nil, grpcstatus.Error(codes.InvalidArgument, "conversation_id is required")
	}
	limit := 50
	if req.Limit > 0 {
		limit = req.Limit
	}

	msgs, err := s.db.ListMessages(req.ConversationID, req.BeforeUnixMs, limit)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "list messages: %v", err)
	}

	resp := &rpc.ListMessagesResponse{HasMore: len(msgs) == limit}
	for i := range msgs {
		m := &msgs[i]
		resp.Messages = append(resp.Messages, rpc.Message{
			Message: *m,
			Digest:  s.digest.Digest(m),
			Silent:  chat.IsSilent(m),
		})
	}
	return resp, nil
}

func (s *MessageService) Digest(_ context.Context, req *rpc.DigestRequest) (*rpc.DigestResponse, error) {
	m := req.Message
	return &rpc.DigestResponse{Digest: s.digest.Digest(&m), Silent: chat.IsSilent(&m)}, nil
}

func (s *MessageService) WatchEvents(req *rpc.WatchEventsRequest, stream grpc.ServerStreamingServer[rpc.Event]) error {
	ch, unsub := s.bus.Subscribe(req.Namespace, 256)
	defer unsub()

	for {
		select {
		case evt := <-ch:
			payload, err := json.Marshal(evt.Payload)
			if err != nil {
				s.logger.Warn("dropping unencodable event", zap.String("kind", evt.Kind), zap.Error(err))
				continue
			}
			if err := stream.Send(&rpc.Event{
				ID:               uuid.New().String(),
				Profile:          s.profileName,
				Kind:             evt.Kind,
				OccurredAtUnixMs: evt.Timestamp.UnixMilli(),
				Payload:          payload,
			}); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return nil
		}
	}
}

func ingestError(err error) error {
	if errors.Is(err, ingest.ErrInvalidMessage) {
		return grpcstatus.Errorf(codes.InvalidArgument, "%v", err)
	}
	return grpcstatus.Errorf(codes.Internal, "ingest: %v", err)
}
