package netwatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matheus3301/easekit/internal/bus"
	"github.com/matheus3301/easekit/internal/platform"
	"github.com/matheus3301/easekit/internal/status"
)

type flakyConn struct {
	connected atomic.Bool
}

func (f *flakyConn) ActiveNetwork(context.Context) (*platform.NetworkInfo, error) {
	return &platform.NetworkInfo{Available: true, Connected: f.connected.Load()}, nil
}

func TestCheckTransitionsOnChange(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("network.", 10)
	defer unsub()

	conn := &flakyConn{}
	m := status.NewMachine(b)
	w := NewMonitor(conn, m, time.Hour, nil)
	ctx := context.Background()

	w.Check(ctx)
	if m.Current() != status.Offline {
		t.Fatalf("state = %s, want OFFLINE", m.Current())
	}
	w.Check(ctx)
	conn.connected.Store(true)
	w.Check(ctx)
	w.Check(ctx)
	if m.Current() != status.Online {
		t.Fatalf("state = %s, want ONLINE", m.Current())
	}
	if len(ch) != 2 {
		t.Errorf("published %d events, want 2", len(ch))
	}
}

func TestNilConnectivityIsOffline(t *testing.T) {
	m := status.NewMachine(nil)
	NewMonitor(nil, m, 0, nil).Check(context.Background())
	if m.Current() != status.Offline {
		t.Errorf("state = %s, want OFFLINE", m.Current())
	}
}

func TestStartStop(t *testing.T) {
	conn := &flakyConn{}
	conn.connected.Store(true)
	m := status.NewMachine(nil)
	w := NewMonitor(conn, m, 10*time.Millisecond, nil)

	w.Start(context.Background())
	if m.Current() != status.Online {
		t.Errorf("state after Start = %s, want ONLINE", m.Current())
	}

	conn.connected.Store(false)
	deadline := time.After(2 * time.Second)
	for m.Current() != status.Offline {
		select {
		case <-deadline:
			t.Fatal("monitor did not observe disconnect")
		case <-time.After(5 * time.Millisecond):
		}
	}
	w.Stop()
}
