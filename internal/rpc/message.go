package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	MessageService_Ingest_FullMethodName        = "/easekit.v1.MessageService/Ingest"
	MessageService_IngestBatch_FullMethodName   = "/easekit.v1.MessageService/IngestBatch"
	MessageService_ImportHistory_FullMethodName = "/easekit.v1.MessageService/ImportHistory"
	MessageService_ListMessages_FullMethodName  = "/easekit.v1.MessageService/ListMessages"
	MessageService_Digest_FullMethodName        = "/easekit.v1.MessageService/Digest"
	MessageService_WatchEvents_FullMethodName   = "/easekit.v1.MessageService/WatchEvents"
)

// MessageServiceServer is the server API for MessageService.
type MessageServiceServer interface {
	Ingest(context.Context, *IngestRequest) (*IngestResponse, error)
	IngestBatch(context.Context, *IngestBatchRequest) (*IngestBatchResponse, error)
	ImportHistory(context.Context, *ImportHistoryRequest) (*ImportHistoryResponse, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error)
	Digest(context.Context, *DigestRequest) (*DigestResponse, error)
	WatchEvents(*WatchEventsRequest, grpc.ServerStreamingServer[Event]) error
}

func watchEventsHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchEventsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(MessageServiceServer).WatchEvents(in, &grpc.GenericServerStream[WatchEventsRequest, Event]{ServerStream: stream})
}

var MessageService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "easekit.v1.MessageService",
	HandlerType: (*MessageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ingest", Handler: unary(MessageService_Ingest_FullMethodName, MessageServiceServer.Ingest)},
		{MethodName: "IngestBatch", Handler: unary(MessageService_IngestBatch_FullMethodName, MessageServiceServer.IngestBatch)},
		{MethodName: "ImportHistory", Handler: unary(MessageService_ImportHistory_FullMethodName, MessageServiceServer.ImportHistory)},
		{MethodName: "ListMessages", Handler: unary(MessageService_ListMessages_FullMethodName, MessageServiceServer.ListMessages)},
		{MethodName: "Digest", Handler: unary(MessageService_Digest_FullMethodName, MessageServiceServer.Digest)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchEvents", Handler: watchEventsHandler, ServerStreams: true},
	},
	Metadata: "easekit/v1/message",
}

func RegisterMessageServiceServer(s grpc.ServiceRegistrar, srv MessageServiceServer) {
	s.RegisterService(&MessageService_ServiceDesc, srv)
}

// MessageServiceClient is the client API for MessageService.
type MessageServiceClient interface {
	Ingest(ctx context.Context, in *IngestRequest, opts ...grpc.CallOption) (*IngestResponse, error)
	IngestBatch(ctx context.Context, in *IngestBatchRequest, opts ...grpc.CallOption) (*IngestBatchResponse, error)
	ImportHistory(ctx context.Context, in *ImportHistoryRequest, opts ...grpc.CallOption) (*ImportHistoryResponse, error)
	ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error)
	Digest(ctx context.Context, in *DigestRequest, opts ...grpc.CallOption) (*DigestResponse, error)
	WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error)
}

type messageServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMessageServiceClient(cc grpc.ClientConnInterface) MessageServiceClient {
	return &messageServiceClient{cc}
}

func (c *messageServiceClient) Ingest(ctx context.Context, in *IngestRequest, opts ...grpc.CallOption) (*IngestResponse, error) {
	return invoke[IngestResponse](ctx, c.cc, MessageService_Ingest_FullMethodName, in, opts)
}

func (c *messageServiceClient) IngestBatch(ctx context.Context, in *IngestBatchRequest, opts ...grpc.CallOption) (*IngestBatchResponse, error) {
	return invoke[IngestBatchResponse](ctx, c.cc, MessageService_IngestBatch_FullMethodName, in, opts)
}

func (c *messageServiceClient) ImportHistory(ctx context.Context, in *ImportHistoryRequest, opts ...grpc.CallOption) (*ImportHistoryResponse, error) {
	return invoke[ImportHistoryResponse](ctx, c.cc, MessageService_ImportHistory_FullMethodName, in, opts)
}

func (c *messageServiceClient) ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error) {
	return invoke[ListMessagesResponse](ctx, c.cc, MessageService_ListMessages_FullMethodName, in, opts)
}

func (c *messageServiceClient) Digest(ctx context.Context, in *DigestRequest, opts ...grpc.CallOption) (*DigestResponse, error) {
	return invoke[DigestResponse](ctx, c.cc, MessageService_Digest_FullMethodName, in, opts)
}

func (c *messageServiceClient) WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(ctx, &MessageService_ServiceDesc.Streams[0], MessageService_WatchEvents_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchEventsRequest, Event]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
