package api

import (
	"context"
	"strings"
	"time"

	"github.com/matheus3301/easekit/internal/platform"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/status"
	"github.com/matheus3301/easekit/internal/store"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// DeviceService implements the DeviceService gRPC service.
type DeviceService struct {
	profileName string
	locale      string
	startedAt   time.Time
	env         *platform.Environment
	machine     *status.Machine
	db          *store.DB
}

// NewDeviceService creates a new device service.
func NewDeviceService(profileName, locale string, env *platform.Environment, machine *status.Machine, db *store.DB) *DeviceService {
	return &DeviceService{
		profileName: profileName,
		locale:      locale,
		startedAt:   time.Now(),
		env:         env,
		machine:     machine,
		db:          db,
	}
}

func (s *DeviceService) GetEnvironment(ctx context.Context, _ *rpc.GetEnvironmentRequest) (*rpc.EnvironmentResponse, error) {
	resp := &rpc.EnvironmentResponse{
		Profile:  s.profileName,
		Status:   string(s.machine.Current()),
		Locale:   s.locale,
		UptimeMs: time.Since(s.startedAt).Milliseconds(),
		Snapshot: s.env.Snapshot(ctx),
		Metrics:  s.metrics(),
	}

	stats, err := s.db.Stats()
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "stats: %v", err)
	}
	resp.Counts = rpc.Counts{
		Contacts:      stats.Contacts,
		Conversations: stats.Conversations,
		Messages:      stats.Messages,
	}
	return resp, nil
}

func (s *DeviceService) Convert(_ context.Context, req *rpc.ConvertRequest) (*rpc.ConvertResponse, error) {
	m := s.metrics()
	switch strings.ToLower(req.Unit) {
	case rpc.UnitDip:
		return &rpc.ConvertResponse{Pixels: platform.DipToPixels(m, req.Value)}, nil
	case rpc.UnitSp:
		return &rpc.ConvertResponse{Pixels: platform.SpToPixels(m, req.Value)}, nil
	default:
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "unknown unit %q (want dip or sp)", req.Unit)
	}
}

// metrics returns the current display metrics, zero when no display is known.
func (s *DeviceService) metrics() platform.Metrics {
	if s.env == nil || s.env.Display == nil {
		return platform.Metrics{}
	}
	m, _ := s.env.Display.CurrentMetrics()
	return m
}
