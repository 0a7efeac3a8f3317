// Package status tracks the daemon's network state.
package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/easekit/internal/bus"
)

// State represents a daemon runtime state.
type State string

const (
	Booting State = "BOOTING"
	Online  State = "ONLINE"
	Offline State = "OFFLINE"
	Error   State = "ERROR"
)

var validTransitions = map[State][]State{
	Booting: {Online, Offline, Error},
	Online:  {Offline, Error},
	Offline: {Online, Error},
	Error:   {Booting},
}

// Machine tracks and enforces daemon runtime state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	since   time.Time
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Booting state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Booting,
		since:   time.Now(),
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Since returns when the current state was entered.
func (m *Machine) Since() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.since
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	m.since = time.Now()
	if m.bus != nil {
		m.bus.Publish(bus.NewEvent(bus.KindNetworkStatus, StatusChange{From: from, To: to}))
	}
	return nil
}

// Observe records a connectivity result. It transitions only when the result
// differs from the current state and reports whether a transition happened.
func (m *Machine) Observe(connected bool) (bool, error) {
	target := Offline
	if connected {
		target = Online
	}
	cur := m.Current()
	if cur == target {
		return false, nil
	}
	if cur == Error {
		if err := m.Transition(Booting); err != nil {
			return false, err
		}
	}
	if err := m.Transition(target); err != nil {
		return false, err
	}
	return true, nil
}

// StatusChange is the payload for status change events.
type StatusChange struct {
	From State `json:"from"`
	To   State `json:"to"`
}
