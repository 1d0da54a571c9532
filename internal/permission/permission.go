// Package permission answers whether a platform capability is currently granted.
package permission

import (
	"context"
	"sync"
)

type Capability string

const (
	Calendar      Capability = "calendar"
	Notifications Capability = "notifications"
)

type Checker interface {
	Granted(ctx context.Context, c Capability) bool
}

// Static is a Checker whose grants are set in process, from config or tests.
type Static struct {
	mu      sync.RWMutex
	granted map[Capability]bool
}

func NewStatic(granted ...Capability) *Static {
	s := &Static{granted: make(map[Capability]bool, len(granted))}
	for _, c := range granted {
		s.granted[c] = true
	}
	return s
}

func (s *Static) Granted(_ context.Context, c Capability) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.granted[c]
}

func (s *Static) Set(c Capability, granted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted[c] = granted
}
