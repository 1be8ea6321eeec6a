// Package security implements the progressive login lockout.
//
// Each client identity moves through Clear, Tracking(n) and Blocked(until, K).
// Three failures within five minutes block the identity; every block lasts
// longer than the previous one and the block counter is never reset, not even
// by a successful login. Expiry is lazy: a block ends when it is queried
// after its deadline.
package security

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"gedo/internal/metrics"
)

const (
	DefaultMaxAttempts = 3
	DefaultWindow      = 300 * time.Second
)

// DefaultBlockDurations is indexed by the number of earlier blocks; the last
// entry applies to every block after it.
var DefaultBlockDurations = []time.Duration{
	15 * time.Minute,
	time.Hour,
	6 * time.Hour,
	24 * time.Hour,
	7 * 24 * time.Hour,
	28 * 24 * time.Hour,
}

// Manager tracks failed logins per identity on top of a Store.
type Manager struct {
	store       Store
	maxAttempts int
	window      time.Duration
	durations   []time.Duration
	now         func() time.Time
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

func NewManager(store Store, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		maxAttempts: DefaultMaxAttempts,
		window:      DefaultWindow,
		durations:   DefaultBlockDurations,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BlockDuration returns the duration of a block given how many blocks came before.
func (m *Manager) BlockDuration(previousBlocks int) time.Duration {
	if previousBlocks < 0 {
		previousBlocks = 0
	}
	if previousBlocks >= len(m.durations) {
		previousBlocks = len(m.durations) - 1
	}
	return m.durations[previousBlocks]
}

// Failure is the outcome of RegisterFailure.
type Failure struct {
	Attempts  int
	Blocked   bool
	Remaining time.Duration
}

// RegisterFailure records a failed attempt. When it reaches the threshold the
// identity is blocked and the window is cleared. A failure while already
// blocked does not escalate.
func (m *Manager) RegisterFailure(ctx context.Context, id string) (Failure, error) {
	var out Failure
	var level int
	err := m.store.Update(ctx, id, func(st *State) error {
		now := m.now()
		if until := st.BlockedUntil; !until.IsZero() && !now.After(until) {
			out = Failure{Blocked: true, Remaining: until.Sub(now)}
			return nil
		}
		st.BlockedUntil = time.Time{}

		st.Attempts = m.prune(st.Attempts, now)
		st.Attempts = append(st.Attempts, now)
		out = Failure{Attempts: len(st.Attempts)}

		if len(st.Attempts) >= m.maxAttempts {
			d := m.BlockDuration(st.BlockCount)
			st.BlockedUntil = now.Add(d)
			st.BlockCount++
			st.Attempts = nil
			level = st.BlockCount
			out.Blocked = true
			out.Remaining = d
		}
		return nil
	})
	if err != nil {
		return Failure{}, err
	}

	m.metrics.LoginFailed()
	if level > 0 {
		m.metrics.Lockout(strconv.Itoa(level))
		m.logger.WarnContext(ctx, "client blocked after repeated login failures",
			"identity", id,
			"block_count", level,
			"duration", out.Remaining.String(),
		)
	}
	return out, nil
}

// IsBlocked reports whether id is blocked and for how long. It only reads:
// an expired block counts as cleared and is reset by the next failure.
func (m *Manager) IsBlocked(ctx context.Context, id string) (bool, time.Duration, error) {
	st, err := m.store.Get(ctx, id)
	if err != nil {
		return false, 0, err
	}
	now := m.now()
	if st.BlockedUntil.IsZero() || now.After(st.BlockedUntil) {
		return false, 0, nil
	}
	return true, st.BlockedUntil.Sub(now), nil
}

// RegisterSuccess clears the failed-attempt window. The block counter stays.
func (m *Manager) RegisterSuccess(ctx context.Context, id string) error {
	return m.store.Update(ctx, id, func(st *State) error {
		st.Attempts = nil
		return nil
	})
}

// Snapshot returns the stored state for id as IsBlocked sees it: stale
// attempts are pruned and an expired block reads as cleared.
func (m *Manager) Snapshot(ctx context.Context, id string) (State, error) {
	st, err := m.store.Get(ctx, id)
	if err != nil {
		return State{}, err
	}
	now := m.now()
	st.Attempts = m.prune(st.Attempts, now)
	if !st.BlockedUntil.IsZero() && now.After(st.BlockedUntil) {
		st.BlockedUntil = time.Time{}
	}
	return st, nil
}

func (m *Manager) prune(attempts []time.Time, now time.Time) []time.Time {
	kept := attempts[:0]
	for _, at := range attempts {
		if now.Sub(at) < m.window {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// IsBlockedError reports whether err carries a block.
func IsBlockedError(err error) (*BlockedError, bool) {
	var be *BlockedError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// BlockedError is returned to callers gating work on the lockout.
type BlockedError struct {
	Remaining time.Duration
}

func (e *BlockedError) Error() string {
	return "client temporarily blocked after repeated failed logins"
}

// RemainingSeconds rounds the remaining time up to whole seconds.
func (e *BlockedError) RemainingSeconds() int64 {
	s := int64(e.Remaining / time.Second)
	if e.Remaining%time.Second != 0 {
		s++
	}
	return s
}
