// Package platform answers environment questions for the UI layer: network,
// external storage, display metrics and the foreground task. Every probe
// degrades to a default value instead of failing.
package platform

import (
	"context"
)

// StateMounted is the storage state of usable external storage.
const StateMounted = "mounted"

// NetworkInfo describes the active network.
type NetworkInfo struct {
	Name      string
	Available bool
	Connected bool
}

// Connectivity reports the active network, or nil when there is none.
type Connectivity interface {
	ActiveNetwork(ctx context.Context) (*NetworkInfo, error)
}

// Storage reports the external storage state ("mounted", "unmounted", "removed").
type Storage interface {
	ExternalStorageState(ctx context.Context) (string, error)
}

// Display reports the current display metrics. ok is false when no display is known.
type Display interface {
	CurrentMetrics() (m Metrics, ok bool)
}

// Foreground reports the name of the foreground task.
type Foreground interface {
	TopTask(ctx context.Context) (name string, ok bool, err error)
}

// IsNetworkConnected reports whether an active network exists and is both
// available and connected. A nil collaborator or a failed query yields false.
func IsNetworkConnected(ctx context.Context, c Connectivity) bool {
	if c == nil {
		return false
	}
	info, err := c.ActiveNetwork(ctx)
	if err != nil || info == nil {
		return false
	}
	return info.Available && info.Connected
}

// IsExternalStorageAvailable reports whether external storage is mounted.
func IsExternalStorageAvailable(ctx context.Context, s Storage) bool {
	if s == nil {
		return false
	}
	state, err := s.ExternalStorageState(ctx)
	if err != nil {
		return false
	}
	return state == StateMounted
}

// ScreenInfo returns [widthPx, heightPx, densityDpi, density, scaledDensity],
// all zero when no display is available.
func ScreenInfo(d Display) [5]float32 {
	if d == nil {
		return [5]float32{}
	}
	m, ok := d.CurrentMetrics()
	if !ok {
		return [5]float32{}
	}
	return m.Vector()
}

// TopActivityName returns the foreground task name, or "" when unknown.
func TopActivityName(ctx context.Context, f Foreground) string {
	if f == nil {
		return ""
	}
	name, ok, err := f.TopTask(ctx)
	if err != nil || !ok {
		return ""
	}
	return name
}

// Environment bundles the probes of one host.
type Environment struct {
	Connectivity Connectivity
	Storage      Storage
	Display      Display
	Foreground   Foreground
}

// Snapshot is the result of running every probe once.
type Snapshot struct {
	NetworkConnected bool       `json:"network_connected"`
	ExternalStorage  bool       `json:"external_storage"`
	Screen           [5]float32 `json:"screen"`
	TopActivity      string     `json:"top_activity"`
}

// Snapshot runs all probes. A nil environment yields the zero snapshot.
func (e *Environment) Snapshot(ctx context.Context) Snapshot {
	if e == nil {
		return Snapshot{}
	}
	return Snapshot{
		NetworkConnected: IsNetworkConnected(ctx, e.Connectivity),
		ExternalStorage:  IsExternalStorageAvailable(ctx, e.Storage),
		Screen:           ScreenInfo(e.Display),
		TopActivity:      TopActivityName(ctx, e.Foreground),
	}
}
