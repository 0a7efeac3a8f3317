// Package netwatch polls host connectivity and drives the status machine.
package netwatch

import (
	"context"
	"time"

	"github.com/matheus3301/easekit/internal/platform"
	"github.com/matheus3301/easekit/internal/status"
	"go.uber.org/zap"
)

// Monitor periodically probes connectivity.
type Monitor struct {
	conn     platform.Connectivity
	machine  *status.Machine
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewMonitor creates a monitor. A non-positive interval defaults to 10s.
func NewMonitor(conn platform.Connectivity, m *status.Machine, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		conn:     conn,
		machine:  m,
		interval: interval,
		logger:   logger,
	}
}

// Start probes once synchronously, then keeps polling until Stop.
func (w *Monitor) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.Check(ctx)
	go w.loop(ctx)
}

// Stop stops the poll loop and waits for it to exit.
func (w *Monitor) Stop() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}

func (w *Monitor) loop(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check runs one probe and feeds the result to the machine.
func (w *Monitor) Check(ctx context.Context) {
	connected := platform.IsNetworkConnected(ctx, w.conn)
	changed, err := w.machine.Observe(connected)
	if err != nil {
		w.logger.Error("network state transition failed", zap.Error(err))
		return
	}
	if changed {
		w.logger.Info("network state changed", zap.String("state", string(w.machine.Current())))
	}
}
