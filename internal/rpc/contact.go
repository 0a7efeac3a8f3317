package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ContactService_ListContacts_FullMethodName  = "/easekit.v1.ContactService/ListContacts"
	ContactService_GetContact_FullMethodName    = "/easekit.v1.ContactService/GetContact"
	ContactService_UpsertContact_FullMethodName = "/easekit.v1.ContactService/UpsertContact"
	ContactService_InitialLetter_FullMethodName = "/easekit.v1.ContactService/InitialLetter"
	ContactService_DeleteContact_FullMethodName = "/easekit.v1.ContactService/DeleteContact"
)

// ContactServiceServer is the server API for ContactService.
type ContactServiceServer interface {
	ListContacts(context.Context, *ListContactsRequest) (*ListContactsResponse, error)
	GetContact(context.Context, *GetContactRequest) (*ContactResponse, error)
	UpsertContact(context.Context, *UpsertContactRequest) (*ContactResponse, error)
	InitialLetter(context.Context, *InitialLetterRequest) (*InitialLetterResponse, error)
	DeleteContact(context.Context, *DeleteContactRequest) (*DeleteContactResponse, error)
}

var ContactService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "easekit.v1.ContactService",
	HandlerType: (*ContactServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListContacts", Handler: unary(ContactService_ListContacts_FullMethodName, ContactServiceServer.ListContacts)},
		{MethodName: "GetContact", Handler: unary(ContactService_GetContact_FullMethodName, ContactServiceServer.GetContact)},
		{MethodName: "UpsertContact", Handler: unary(ContactService_UpsertContact_FullMethodName, ContactServiceServer.UpsertContact)},
		{MethodName: "InitialLetter", Handler: unary(ContactService_InitialLetter_FullMethodName, ContactServiceServer.InitialLetter)},
		{MethodName: "DeleteContact", Handler: unary(ContactService_DeleteContact_FullMethodName, ContactServiceServer.DeleteContact)},
	},
	Metadata: "easekit/v1/contact",
}

func RegisterContactServiceServer(s grpc.ServiceRegistrar, srv ContactServiceServer) {
	s.RegisterService(&ContactService_ServiceDesc, srv)
}

// ContactServiceClient is the client API for ContactService.
type ContactServiceClient interface {
	ListContacts(ctx context.Context, in *ListContactsRequest, opts ...grpc.CallOption) (*ListContactsResponse, error)
	GetContact(ctx context.Context, in *GetContactRequest, opts ...grpc.CallOption) (*ContactResponse, error)
	UpsertContact(ctx context.Context, in *UpsertContactRequest, opts ...grpc.CallOption) (*ContactResponse, error)
	InitialLetter(ctx context.Context, in *InitialLetterRequest, opts ...grpc.CallOption) (*InitialLetterResponse, error)
	DeleteContact(ctx context.Context, in *DeleteContactRequest, opts ...grpc.CallOption) (*DeleteContactResponse, error)
}

type contactServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewContactServiceClient(cc grpc.ClientConnInterface) ContactServiceClient {
	return &contactServiceClient{cc}
}

func (c *contactServiceClient) ListContacts(ctx context.Context, in *ListContactsRequest, opts ...grpc.CallOption) (*ListContactsResponse, error) {
	return invoke[ListContactsResponse](ctx, c.cc, ContactService_ListContacts_FullMethodName, in, opts)
}

func (c *contactServiceClient) GetContact(ctx context.Context, in *GetContactRequest, opts ...grpc.CallOption) (*ContactResponse, error) {
	return invoke[ContactResponse](ctx, c.cc, ContactService_GetContact_FullMethodName, in, opts)
}

func (c *contactServiceClient) UpsertContact(ctx context.Context, in *UpsertContactRequest, opts ...grpc.CallOption) (*ContactResponse, error) {
	return invoke[ContactResponse](ctx, c.cc, ContactService_UpsertContact_FullMethodName, in, opts)
}

func (c *contactServiceClient) InitialLetter(ctx context.Context, in *InitialLetterRequest, opts ...grpc.CallOption) (*InitialLetterResponse, error) {
	return invoke[InitialLetterResponse](ctx, c.cc, ContactService_InitialLetter_FullMethodName, in, opts)
}

func (c *contactServiceClient) DeleteContact(ctx context.Context, in *DeleteContactRequest, opts ...grpc.CallOption) (*DeleteContactResponse, error) {
	return invoke[DeleteContactResponse](ctx, c.cc, ContactService_DeleteContact_FullMethodName, in, opts)
}
