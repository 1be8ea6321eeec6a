package security

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStoreContention is returned when an optimistic update keeps losing races.
var ErrStoreContention = errors.New("lockout state contention")

// State is the lockout record of one identity. BlockCount only grows.
type State struct {
	Attempts     []time.Time `json:"attempts,omitempty"`
	BlockedUntil time.Time   `json:"blocked_until,omitempty"`
	BlockCount   int         `json:"block_count"`
}

func (s *State) zero() bool {
	return len(s.Attempts) == 0 && s.BlockedUntil.IsZero() && s.BlockCount == 0
}

// Store holds lockout state. Update must apply fn atomically per key: no
// other update of the same key may interleave between load and save. Get is a
// plain read and returns the zero State for an unknown key.
type Store interface {
	Get(ctx context.Context, key string) (State, error)
	Update(ctx context.Context, key string, fn func(*State) error) error
}

// MemoryStore keeps state in process. It is not shared between instances.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.states[key]
	st.Attempts = append([]time.Time(nil), st.Attempts...)
	return st, nil
}

func (s *MemoryStore) Update(_ context.Context, key string, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.states[key]
	st.Attempts = append([]time.Time(nil), st.Attempts...)
	if err := fn(&st); err != nil {
		return err
	}
	if st.zero() {
		delete(s.states, key)
		return nil
	}
	s.states[key] = st
	return nil
}
