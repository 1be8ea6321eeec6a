package security

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gedo/internal/logging"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestManager(store Store, clock *fakeClock) *Manager {
	return NewManager(store, logging.Discard(), WithClock(clock.Now))
}

const id = "203.0.113.7:0123456789abcdef"

func fail(t *testing.T, m *Manager, times int) Failure {
	t.Helper()
	var f Failure
	for i := 0; i < times; i++ {
		var err error
		f, err = m.RegisterFailure(context.Background(), id)
		require.NoError(t, err)
	}
	return f
}

func TestManager_ThirdFailureBlocks(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newTestManager(NewMemoryStore(), clock)

	f := fail(t, m, 1)
	assert.Equal(t, Failure{Attempts: 1}, f)
	f = fail(t, m, 1)
	assert.Equal(t, Failure{Attempts: 2}, f)

	blocked, _, err := m.IsBlocked(ctx, id)
	require.NoError(t, err)
	assert.False(t, blocked)

	f = fail(t, m, 1)
	assert.True(t, f.Blocked)
	assert.Equal(t, 15*time.Minute, f.Remaining)

	blocked, remaining, err := m.IsBlocked(ctx, id)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, 15*time.Minute, remaining)

	clock.Advance(10 * time.Minute)
	blocked, remaining, err = m.IsBlocked(ctx, id)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, 5*time.Minute, remaining)
}

func TestManager_WindowPrunesOldAttempts(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(NewMemoryStore(), clock)

	fail(t, m, 2)
	clock.Advance(301 * time.Second)

	f := fail(t, m, 1)
	assert.False(t, f.Blocked)
	assert.Equal(t, 1, f.Attempts)
}

func TestManager_AttemptAfterExpiryIsFreshTracking(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newTestManager(NewMemoryStore(), clock)

	fail(t, m, 3)
	clock.Advance(15*time.Minute + time.Second)

	f := fail(t, m, 1)
	assert.Equal(t, Failure{Attempts: 1}, f)

	blocked, _, err := m.IsBlocked(ctx, id)
	require.NoError(t, err)
	assert.False(t, blocked)

	st, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, st.BlockCount)
	assert.Len(t, st.Attempts, 1)
}

func TestManager_LazyExpiryKeepsCounter(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newTestManager(NewMemoryStore(), clock)

	fail(t, m, 3)
	clock.Advance(16 * time.Minute)

	blocked, remaining, err := m.IsBlocked(ctx, id)
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Zero(t, remaining)

	st, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.True(t, st.BlockedUntil.IsZero())
	assert.Equal(t, 1, st.BlockCount)
}

// countingStore records how often each Store method is used.
type countingStore struct {
	Store
	gets, updates int
}

func (c *countingStore) Get(ctx context.Context, key string) (State, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func (c *countingStore) Update(ctx context.Context, key string, fn func(*State) error) error {
	c.updates++
	return c.Store.Update(ctx, key, fn)
}

func TestManager_IsBlockedOnlyReads(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := &countingStore{Store: NewMemoryStore()}
	m := newTestManager(store, clock)

	fail(t, m, 3)
	store.updates = 0

	blocked, _, err := m.IsBlocked(ctx, id)
	require.NoError(t, err)
	assert.True(t, blocked)

	clock.Advance(16 * time.Minute)
	blocked, _, err = m.IsBlocked(ctx, id)
	require.NoError(t, err)
	assert.False(t, blocked)

	assert.Equal(t, 2, store.gets)
	assert.Zero(t, store.updates)
}

func TestManager_ProgressiveDurations(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(NewMemoryStore(), clock)

	want := []time.Duration{
		900 * time.Second,
		3600 * time.Second,
		21600 * time.Second,
		86400 * time.Second,
		604800 * time.Second,
		2419200 * time.Second,
		2419200 * time.Second,
		2419200 * time.Second,
	}

	var prev time.Duration
	for i, w := range want {
		f := fail(t, m, 3)
		require.True(t, f.Blocked, "cycle %d", i+1)
		assert.Equal(t, w, f.Remaining, "block %d", i+1)
		assert.GreaterOrEqual(t, f.Remaining, prev)
		prev = f.Remaining
		clock.Advance(f.Remaining + time.Second)
	}
}

func TestManager_FailureWhileBlockedDoesNotEscalate(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newTestManager(NewMemoryStore(), clock)

	fail(t, m, 3)
	clock.Advance(time.Minute)
	f := fail(t, m, 3)
	assert.True(t, f.Blocked)
	assert.Equal(t, 14*time.Minute, f.Remaining)

	st, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, st.BlockCount)
}

func TestManager_SuccessClearsWindowButNotCounter(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newTestManager(NewMemoryStore(), clock)

	fail(t, m, 3)
	clock.Advance(15*time.Minute + time.Second)
	fail(t, m, 2)

	require.NoError(t, m.RegisterSuccess(ctx, id))

	st, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, st.Attempts)
	assert.Equal(t, 1, st.BlockCount)

	// next block is the second level
	f := fail(t, m, 3)
	assert.Equal(t, time.Hour, f.Remaining)
}

func TestManager_IdentitiesAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(NewMemoryStore(), newFakeClock())

	fail(t, m, 3)
	other := Identity("203.0.113.7", "curl/8.0")
	blocked, _, err := m.IsBlocked(ctx, other)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestManager_ConcurrentFailures(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore()
	m := newTestManager(store, clock)

	var wg sync.WaitGroup
	var mu sync.Mutex
	blocks := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := m.RegisterFailure(ctx, id)
			assert.NoError(t, err)
			if f.Blocked && f.Attempts > 0 {
				mu.Lock()
				blocks++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, blocks)
	st, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, st.BlockCount)
}

func TestBlockDuration_Caps(t *testing.T) {
	m := NewManager(NewMemoryStore(), logging.Discard())
	assert.Equal(t, 15*time.Minute, m.BlockDuration(-1))
	assert.Equal(t, 28*24*time.Hour, m.BlockDuration(5))
	assert.Equal(t, 28*24*time.Hour, m.BlockDuration(50))
}

func TestBlockedError(t *testing.T) {
	err := error(&BlockedError{Remaining: 1500 * time.Millisecond})
	be, ok := IsBlockedError(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), be.RemainingSeconds())

	_, ok = IsBlockedError(assert.AnError)
	assert.False(t, ok)
}

func TestIdentity(t *testing.T) {
	a := Identity("10.0.0.1", "Mozilla/5.0")
	assert.Regexp(t, `^10\.0\.0\.1:[0-9a-f]{16}$`, a)
	assert.Equal(t, a, Identity("10.0.0.1", "Mozilla/5.0"))
	assert.NotEqual(t, a, Identity("10.0.0.1", "curl/8.0"))
	assert.NotEqual(t, a, Identity("10.0.0.2", "Mozilla/5.0"))
}
