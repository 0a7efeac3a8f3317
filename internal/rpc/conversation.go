package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ConversationService_ListConversations_FullMethodName = "/easekit.v1.ConversationService/ListConversations"
	ConversationService_GetConversation_FullMethodName   = "/easekit.v1.ConversationService/GetConversation"
	ConversationService_MarkRead_FullMethodName          = "/easekit.v1.ConversationService/MarkRead"
	ConversationService_ResolveChatType_FullMethodName   = "/easekit.v1.ConversationService/ResolveChatType"
)

// ConversationServiceServer is the server API for ConversationService.
type ConversationServiceServer interface {
	ListConversations(context.Context, *ListConversationsRequest) (*ListConversationsResponse, error)
	GetConversation(context.Context, *GetConversationRequest) (*ConversationResponse, error)
	MarkRead(context.Context, *MarkReadRequest) (*MarkReadResponse, error)
	ResolveChatType(context.Context, *ResolveChatTypeRequest) (*ResolveChatTypeResponse, error)
}

var ConversationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "easekit.v1.ConversationService",
	HandlerType: (*ConversationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListConversations", Handler: unary(ConversationService_ListConversations_FullMethodName, ConversationServiceServer.ListConversations)},
		{MethodName: "GetConversation", Handler: unary(ConversationService_GetConversation_FullMethodName, ConversationServiceServer.GetConversation)},
		{MethodName: "MarkRead", Handler: unary(ConversationService_MarkRead_FullMethodName, ConversationServiceServer.MarkRead)},
		{MethodName: "ResolveChatType", Handler: unary(ConversationService_ResolveChatType_FullMethodName, ConversationServiceServer.ResolveChatType)},
	},
	Metadata: "easekit/v1/conversation",
}

func RegisterConversationServiceServer(s grpc.ServiceRegistrar, srv ConversationServiceServer) {
	s.RegisterService(&ConversationService_ServiceDesc, srv)
}

// ConversationServiceClient is the client API for ConversationService.
type ConversationServiceClient interface {
	ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error)
	GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*ConversationResponse, error)
	MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MarkReadResponse, error)
	ResolveChatType(ctx context.Context, in *ResolveChatTypeRequest, opts ...grpc.CallOption) (*ResolveChatTypeResponse, error)
}

type conversationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewConversationServiceClient(cc grpc.ClientConnInterface) ConversationServiceClient {
	return &conversationServiceClient{cc}
}

func (c *conversationServiceClient) ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error) {
	return invoke[ListConversationsResponse](ctx, c.cc, ConversationService_ListConversations_FullMethodName, in, opts)
}

func (c *conversationServiceClient) GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*ConversationResponse, error) {
	return invoke[ConversationResponse](ctx, c.cc, ConversationService_GetConversation_FullMethodName, in, opts)
}

func (c *conversationServiceClient) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MarkReadResponse, error) {
	return invoke[MarkReadResponse](ctx, c.cc, ConversationService_MarkRead_FullMethodName, in, opts)
}

func (c *conversationServiceClient) ResolveChatType(ctx context.Context, in *ResolveChatTypeRequest, opts ...grpc.CallOption) (*ResolveChatTypeResponse, error) {
	return invoke[ResolveChatTypeResponse](ctx, c.cc, ConversationService_ResolveChatType_FullMethodName, in, opts)
}
