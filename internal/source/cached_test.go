package source

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/userdir/internal/engine/cache"
	"github.com/rshade/userdir/internal/users"
)

type stubFetcher struct {
	calls   atomic.Int32
	records []users.User
	err     error
	gate    chan struct{}
}

func (s *stubFetcher) FetchAllUsers(context.Context) ([]users.User, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

var stubRecords = []users.User{{ID: 1, Name: "Bob"}, {ID: 2, Name: "alice"}}

func TestCachedFetcher_ServesFromCache(t *testing.T) {
	next := &stubFetcher{records: stubRecords}
	store := cache.NewSnapshotCache(true, 60, 4)
	f := NewCachedFetcher(next, "users", store, nil)

	first, err := f.FetchAllUsers(context.Background())
	require.NoError(t, err)
	second, err := f.FetchAllUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, stubRecords, first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), next.calls.Load())
	assert.Equal(t, 1, store.Len())
}

func TestCachedFetcher_Refresh(t *testing.T) {
	next := &stubFetcher{records: stubRecords}
	f := NewCachedFetcher(next, "users", cache.NewSnapshotCache(true, 60, 4), nil)

	_, err := f.FetchAllUsers(context.Background())
	require.NoError(t, err)

	next.records = []users.User{{ID: 3, Name: "Carol"}}
	refreshed, err := f.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Carol", refreshed[0].Name)
	assert.Equal(t, int32(2), next.calls.Load())

	cached, err := f.FetchAllUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, refreshed, cached)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCachedFetcher_ErrorsAreNotCached(t *testing.T) {
	failure := &FetchError{Kind: FailureStatus, URL: "http://x", StatusCode: 500}
	next := &stubFetcher{err: failure}
	store := cache.NewSnapshotCache(true, 60, 4)
	f := NewCachedFetcher(next, "users", store, nil)

	_, err := f.FetchAllUsers(context.Background())
	require.ErrorIs(t, err, ErrFetchFailure)
	assert.Equal(t, 0, store.Len())

	next.err = nil
	next.records = stubRecords
	records, err := f.FetchAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCachedFetcher_DisabledCache(t *testing.T) {
	next := &stubFetcher{records: stubRecords}
	f := NewCachedFetcher(next, "users", cache.NewSnapshotCache(false, 60, 4), nil)

	for range 3 {
		_, err := f.FetchAllUsers(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), next.calls.Load())

	_, err := f.Refresh(context.Background())
	require.NoError(t, err)
}

func TestCachedFetcher_CoalescesConcurrentLoads(t *testing.T) {
	next := &stubFetcher{records: stubRecords, gate: make(chan struct{})}
	f := NewCachedFetcher(next, "users", cache.NewSnapshotCache(false, 60, 4), nil)

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]users.User, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.FetchAllUsers(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return next.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	// Let the other callers reach the in-flight group before releasing.
	time.Sleep(20 * time.Millisecond)
	close(next.gate)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, stubRecords, results[i])
	}
	assert.LessOrEqual(t, next.calls.Load(), int32(callers))
}

// ctxAwareStub blocks until released and fails if its own ctx ends first.
type ctxAwareStub struct {
	calls   atomic.Int32
	records []users.User
	gate    chan struct{}
}

func (s *ctxAwareStub) FetchAllUsers(ctx context.Context) ([]users.User, error) {
	s.calls.Add(1)
	select {
	case <-s.gate:
		return s.records, nil
	case <-ctx.Done():
		return nil, &FetchError{Kind: FailureNetwork, Err: ctx.Err()}
	}
}

func TestCachedFetcher_CancelledCallerDoesNotFailOthers(t *testing.T) {
	next := &ctxAwareStub{records: stubRecords, gate: make(chan struct{})}
	f := NewCachedFetcher(next, "users", cache.NewSnapshotCache(true, 60, 4), nil)

	leaderCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	leaderErr := make(chan error, 1)
	go func() {
		_, err := f.FetchAllUsers(leaderCtx)
		leaderErr <- err
	}()
	require.Eventually(t, func() bool { return next.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		records []users.User
		err     error
	}
	follower := make(chan result, 1)
	go func() {
		records, err := f.FetchAllUsers(context.Background())
		follower <- result{records, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-leaderErr:
		require.ErrorIs(t, err, ErrFetchFailure)
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(next.gate)
	got := <-follower
	require.NoError(t, got.err)
	assert.Equal(t, stubRecords, got.records)

	cached, err := f.FetchAllUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stubRecords, cached, "the detached load still fills the cache")
}

func TestCachedFetcher_ImplementsRefresher(t *testing.T) {
	var r Refresher = NewCachedFetcher(&stubFetcher{}, "k", cache.NewSnapshotCache(true, 60, 1), nil)
	assert.NotNil(t, r)
}
