package platform

import (
	"context"
	"errors"
	"net"
	"slices"
	"sync"

	"github.com/shirou/gopsutil/v4/disk"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// HostConnectivity reads the network interfaces of the local host.
type HostConnectivity struct {
	interfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
}

// NewHostConnectivity creates a connectivity source backed by gopsutil.
func NewHostConnectivity() *HostConnectivity {
	return &HostConnectivity{interfaces: psnet.InterfacesWithContext}
}

// ActiveNetwork implements Connectivity. The active network is the first
// non-loopback interface that is up; it is connected once it holds a global
// unicast address.
func (h *HostConnectivity) ActiveNetwork(ctx context.Context) (*NetworkInfo, error) {
	if h == nil {
		return nil, errNilHost
	}
	list := h.interfaces
	if list == nil {
		list = psnet.InterfacesWithContext
	}
	ifaces, err := list(ctx)
	if err != nil {
		return nil, err
	}
	var fallback *NetworkInfo
	for _, iface := range ifaces {
		if slices.Contains(iface.Flags, "loopback") || !slices.Contains(iface.Flags, "up") {
			continue
		}
		info := &NetworkInfo{Name: iface.Name, Available: true, Connected: hasGlobalAddr(iface.Addrs)}
		if info.Connected {
			return info, nil
		}
		if fallback == nil {
			fallback = info
		}
	}
	return fallback, nil
}

func hasGlobalAddr(addrs psnet.InterfaceAddrList) bool {
	for _, a := range addrs {
		ip, _, err := net.ParseCIDR(a.Addr)
		if err != nil {
			ip = net.ParseIP(a.Addr)
		}
		if ip != nil && ip.IsGlobalUnicast() {
			return true
		}
	}
	return false
}

var errNilHost = errors.New("nil host source")

// Storage states reported by MountStorage.
const (
	StateUnmounted = "unmounted"
	StateRemoved   = "removed"
)

// MountStorage treats a mount point as the external storage.
type MountStorage struct {
	mu         sync.RWMutex
	Path       string
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
}

// SetPath changes the watched mount point.
func (s *MountStorage) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Path = path
}

func (s *MountStorage) mountPoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Path
}

// NewMountStorage creates a storage source for the given mount point.
func NewMountStorage(path string) *MountStorage {
	return &MountStorage{Path: path, partitions: disk.PartitionsWithContext}
}

// ExternalStorageState implements Storage.
func (s *MountStorage) ExternalStorageState(ctx context.Context) (string, error) {
	if s == nil {
		return "", errNilHost
	}
	path := s.mountPoint()
	if path == "" {
		return StateRemoved, nil
	}
	partitions := s.partitions
	if partitions == nil {
		partitions = disk.PartitionsWithContext
	}
	parts, err := partitions(ctx, true)
	if err != nil {
		return "", err
	}
	for _, p := range parts {
		if p.Mountpoint == path {
			return StateMounted, nil
		}
	}
	return StateUnmounted, nil
}

// HostForeground finds the newest foreground process of the host.
type HostForeground struct {
	processes func(ctx context.Context) ([]*process.Process, error)
}

// NewHostForeground creates a foreground-task source backed by gopsutil.
func NewHostForeground() *HostForeground {
	return &HostForeground{processes: process.ProcessesWithContext}
}

// TopTask implements Foreground.
func (h *HostForeground) TopTask(ctx context.Context) (string, bool, error) {
	if h == nil {
		return "", false, errNilHost
	}
	list := h.processes
	if list == nil {
		list = process.ProcessesWithContext
	}
	procs, err := list(ctx)
	if err != nil {
		return "", false, err
	}
	var (
		top     *process.Process
		topTime int64
	)
	for _, p := range procs {
		fg, err := p.ForegroundWithContext(ctx)
		if err != nil || !fg {
			continue
		}
		created, err := p.CreateTimeWithContext(ctx)
		if err != nil {
			continue
		}
		if top == nil || created > topTime {
			top, topTime = p, created
		}
	}
	if top == nil {
		return "", false, nil
	}
	name, err := top.NameWithContext(ctx)
	if err != nil {
		return "", false, err
	}
	return name, name != "", nil
}
