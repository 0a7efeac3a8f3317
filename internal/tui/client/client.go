package client

import (
	"context"
	"fmt"
	"time"

	"github.com/matheus3301/easekit/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client wraps gRPC connections to the daemon.
type Client struct {
	conn         *grpc.ClientConn
	Contact      rpc.ContactServiceClient
	Conversation rpc.ConversationServiceClient
	Message      rpc.MessageServiceClient
	Device       rpc.DeviceServiceClient
}

// New dials the daemon's Unix domain socket and returns typed service clients.
func New(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient(
		"unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(rpc.CallOption()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}

	return &Client{
		conn:         conn,
		Contact:      rpc.NewContactServiceClient(conn),
		Conversation: rpc.NewConversationServiceClient(conn),
		Message:      rpc.NewMessageServiceClient(conn),
		Device:       rpc.NewDeviceServiceClient(conn),
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Probe reports whether a daemon answers on socketPath.
func Probe(socketPath string) bool {
	c, err := New(socketPath)
	if err != nil {
		return false
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = c.Device.GetEnvironment(ctx, &rpc.GetEnvironmentRequest{})
	return err == nil
}

// WaitReady polls Probe until it succeeds or timeout elapses.
func WaitReady(socketPath string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if Probe(socketPath) {
			return true
		}
		time.Sleep(300 * time.Millisecond)
	}
	return false
}
