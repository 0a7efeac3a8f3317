package model

import (
	"sync"
	"time"
)

// FlashDuration is how long a flash line stays on the status bar.
const FlashDuration = 5 * time.Second

// Flash is the one-line notice shown next to the key hints.
type Flash struct {
	mu      sync.RWMutex
	message string
	expires time.Time
	now     func() time.Time
}

func (f *Flash) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

// Show replaces the current notice for FlashDuration.
func (f *Flash) Show(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
	f.expires = f.clock().Add(FlashDuration)
}

// Clear drops the notice immediately.
func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = ""
}

// Get returns the notice, or "" once it expired.
func (f *Flash) Get() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.clock().Before(f.expires) {
		return ""
	}
	return f.message
}
