package api

import (
	"context"
	"errors"
	"strings"

	"github.com/matheus3301/easekit/internal/bus"
	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/letter"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/store"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// ContactService implements the ContactService gRPC service.
type ContactService struct {
	db  *store.DB
	bus *bus.Bus
}

// NewContactService creates a new contact service backed by the store.
func NewContactService(db *store.DB, b *bus.Bus) *ContactService {
	return &ContactService{db: db, bus: b}
}

func (s *ContactService) ListContacts(_ context.Context, req *rpc.ListContactsRequest) (*rpc.ListContactsResponse, error) {
	section := strings.ToUpper(req.Letter)
	if section != "" && !validLetter(section) {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "invalid section letter %q", req.Letter)
	}

	contacts, err := s.db.ListContacts(section)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "list contacts: %v", err)
	}

	resp := &rpc.ListContactsResponse{Total: len(contacts)}
	for _, sec := range letter.Sections(contacts) {
		resp.Sections = append(resp.Sections, rpc.Section{Letter: sec.Letter, Contacts: sec.Contacts})
	}
	return resp, nil
}

func validLetter(s string) bool {
	if s == chat.DefaultLetter {
		return true
	}
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

func (s *ContactService) GetContact(_ context.Context, req *rpc.GetContactRequest) (*rpc.ContactResponse, error) {
	c, err := s.db.GetContact(req.Username)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "get contact: %v", err)
	}
	if c == nil {
		return nil, grpcstatus.Errorf(codes.NotFound, "contact %q not found", req.Username)
	}
	return &rpc.ContactResponse{Contact: *c}, nil
}

func (s *ContactService) UpsertContact(_ context.Context, req *rpc.UpsertContactRequest) (*rpc.ContactResponse, error) {
	c := req.Contact
	if c.Username == "" {
		return nil, grpcstatus.Error(codes.InvalidArgument, "username is required")
	}
	if err := s.db.UpsertContact(&c); err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "upsert contact: %v", err)
	}
	s.bus.Publish(bus.NewEvent(bus.KindContact, c))
	return &rpc.ContactResponse{Contact: c}, nil
}

func (s *ContactService) DeleteContact(_ context.Context, req *rpc.DeleteContactRequest) (*rpc.DeleteContactResponse, error) {
	if err := s.db.DeleteContact(req.Username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, grpcstatus.Errorf(codes.NotFound, "contact %q not found", req.Username)
		}
		return nil, grpcstatus.Errorf(codes.Internal, "delete contact: %v", err)
	}
	s.bus.Publish(bus.NewEvent(bus.KindContactGone, chat.Contact{Username: req.Username}))
	return &rpc.DeleteContactResponse{}, nil
}

func (s *ContactService) InitialLetter(_ context.Context, req *rpc.InitialLetterRequest) (*rpc.InitialLetterResponse, error) {
	return &rpc.InitialLetterResponse{Letter: letter.Of(req.Name, s.db.Letters())}, nil
}
