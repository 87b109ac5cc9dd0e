package source

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/userdir/internal/engine/cache"
	"github.com/rshade/userdir/internal/users"
)

// Refresher is a Fetcher that can bypass its cache.
type Refresher interface {
	Fetcher
	Refresh(ctx context.Context) ([]users.User, error)
}

// CachedFetcher serves snapshots from a SnapshotCache and falls through to the
// wrapped Fetcher on a miss. Concurrent loads for the same key share one request.
type CachedFetcher struct {
	next   Fetcher
	url    string
	key    string
	cache  *cache.SnapshotCache
	group  singleflight.Group
	logger zerolog.Logger
}

// NewCachedFetcher wraps next. key identifies the snapshot (see cache.GenerateKey).
// A nil logger disables logging.
func NewCachedFetcher(next Fetcher, key string, store *cache.SnapshotCache, logger *zerolog.Logger) *CachedFetcher {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "snapshot-cache").Logger()
	}
	var url string
	if u, ok := next.(interface{ URL() string }); ok {
		url = u.URL()
	}
	return &CachedFetcher{
		next:   next,
		url:    url,
		key:    key,
		cache:  store,
		logger: l,
	}
}

// FetchAllUsers returns the cached snapshot if present, otherwise loads it.
func (f *CachedFetcher) FetchAllUsers(ctx context.Context) ([]users.User, error) {
	entry, err := f.cache.Get(f.key)
	if err == nil {
		f.logger.Debug().
			Ctx(ctx).
			Int("count", len(entry.Users)).
			Dur("age", entry.Age()).
			Msg("serving cached snapshot")
		return entry.Users, nil
	}
	if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheDisabled) {
		f.logger.Debug().Ctx(ctx).Err(err).Msg("snapshot cache miss")
	}

	return f.load(ctx)
}

// Refresh drops the cached snapshot and loads a fresh one.
func (f *CachedFetcher) Refresh(ctx context.Context) ([]users.User, error) {
	if err := f.cache.Delete(f.key); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		f.logger.Warn().Ctx(ctx).Err(err).Msg("could not invalidate snapshot")
	}
	return f.load(ctx)
}

// load runs one upstream request per key at a time. The shared request is
// detached from any single caller's cancellation; each caller stops waiting when
// its own ctx is done.
func (f *CachedFetcher) load(ctx context.Context) ([]users.User, error) {
	shared := context.WithoutCancel(ctx)
	ch := f.group.DoChan(f.key, func() (any, error) {
		records, fetchErr := f.next.FetchAllUsers(shared)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if setErr := f.cache.Set(f.key, records); setErr != nil && !errors.Is(setErr, cache.ErrCacheDisabled) {
			f.logger.Warn().Ctx(shared).Err(setErr).Msg("could not cache snapshot")
		}
		return records, nil
	})

	select {
	case <-ctx.Done():
		return nil, &FetchError{Kind: FailureNetwork, URL: f.url, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			f.logger.Debug().Ctx(ctx).Msg("joined in-flight fetch")
		}
		records, _ := res.Val.([]users.User)
		return records, nil
	}
}
