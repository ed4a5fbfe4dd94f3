package tg

import (
	"context"
	"sync"

	"github.com/gotd/td/session"
)

// memorySession keeps gotd session bytes in memory so they can be handed to
// the caller as transient state and loaded back on the next operation.
// Nothing ever touches disk.
type memorySession struct {
	mu   sync.RWMutex
	data []byte
}

func newMemorySession(data []byte) *memorySession {
	s := &memorySession{}
	if len(data) > 0 {
		s.data = make([]byte, len(data))
		copy(s.data, data)
	}
	return s
}

func (s *memorySession) LoadSession(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.data) == 0 {
		return nil, session.ErrNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *memorySession) StoreSession(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// Bytes snapshots the current session state.
func (s *memorySession) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}
