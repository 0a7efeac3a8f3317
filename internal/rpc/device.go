package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	DeviceService_GetEnvironment_FullMethodName = "/easekit.v1.DeviceService/GetEnvironment"
	DeviceService_Convert_FullMethodName        = "/easekit.v1.DeviceService/Convert"
)

// DeviceServiceServer is the server API for DeviceService.
type DeviceServiceServer interface {
	GetEnvironment(context.Context, *GetEnvironmentRequest) (*EnvironmentResponse, error)
	Convert(context.Context, *ConvertRequest) (*ConvertResponse, error)
}

var DeviceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "easekit.v1.DeviceService",
	HandlerType: (*DeviceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetEnvironment", Handler: unary(DeviceService_GetEnvironment_FullMethodName, DeviceServiceServer.GetEnvironment)},
		{MethodName: "Convert", Handler: unary(DeviceService_Convert_FullMethodName, DeviceServiceServer.Convert)},
	},
	Metadata: "easekit/v1/device",
}

func RegisterDeviceServiceServer(s grpc.ServiceRegistrar, srv DeviceServiceServer) {
	s.RegisterService(&DeviceService_ServiceDesc, srv)
}

// DeviceServiceClient is the client API for DeviceService.
type DeviceServiceClient interface {
	GetEnvironment(ctx context.Context, in *GetEnvironmentRequest, opts ...grpc.CallOption) (*EnvironmentResponse, error)
	Convert(ctx context.Context, in *ConvertRequest, opts ...grpc.CallOption) (*ConvertResponse, error)
}

type deviceServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDeviceServiceClient(cc grpc.ClientConnInterface) DeviceServiceClient {
	return &deviceServiceClient{cc}
}

func (c *deviceServiceClient) GetEnvironment(ctx context.Context, in *GetEnvironmentRequest, opts ...grpc.CallOption) (*EnvironmentResponse, error) {
	return invoke[EnvironmentResponse](ctx, c.cc, DeviceService_GetEnvironment_FullMethodName, in, opts)
}

func (c *deviceServiceClient) Convert(ctx context.Context, in *ConvertRequest, opts ...grpc.CallOption) (*ConvertResponse, error) {
	return invoke[ConvertResponse](ctx, c.cc, DeviceService_Convert_FullMethodName, in, opts)
}
