package engine

import (
	"slices"
	"time"

	"github.com/rshade/userdir/internal/pagination"
	"github.com/rshade/userdir/internal/users"
)

// FetchToken identifies one fetch. Only the most recently issued token is accepted.
type FetchToken uint64

// Session owns the query state and the fetched snapshot for one browser instance.
//
// The snapshot is replaced in full by each accepted fetch and never modified in
// place; every query change re-derives the view from it without fetching again.
// Session is not safe for concurrent use: it is owned by a single event loop.
type Session struct {
	pipeline *users.Pipeline
	query    Query

	snapshot  []users.User
	fetchedAt time.Time

	generation FetchToken
	loading    bool
	lastErr    error

	now func() time.Time
}

// NewSession creates a session with the default query and the given page size.
// A non-positive pageSize falls back to pagination.DefaultPageSize.
func NewSession(pipeline *users.Pipeline, pageSize int) *Session {
	if pipeline == nil {
		pipeline = users.DefaultPipeline()
	}
	q := DefaultQuery()
	if pageSize >= pagination.MinPageSize {
		q.PageSize = pageSize
	}
	return &Session{
		pipeline: pipeline,
		query:    q,
		now:      time.Now,
	}
}

// BeginFetch issues a new token and marks the session as loading.
// Any fetch started earlier becomes stale.
func (s *Session) BeginFetch() FetchToken {
	s.generation++
	s.loading = true
	return s.generation
}

// CompleteFetch applies the outcome of the fetch identified by token.
//
// Results for stale tokens are discarded and false is returned. A failed fetch
// leaves the list empty and records the error; a successful one replaces the
// snapshot. Either way the loading flag is cleared.
func (s *Session) CompleteFetch(token FetchToken, records []users.User, err error) bool {
	if token != s.generation {
		return false
	}

	s.loading = false
	s.fetchedAt = s.now()

	if err != nil {
		s.lastErr = err
		s.snapshot = nil
		s.query.CurrentPage = pagination.DefaultPage
		return true
	}

	s.lastErr = nil
	s.snapshot = slices.Clone(records)
	s.query.CurrentPage = pagination.ClampPage(s.query.CurrentPage, s.View().TotalPages)
	return true
}

// Generation returns the most recently issued token.
func (s *Session) Generation() FetchToken {
	return s.generation
}

// Loading reports whether the latest fetch has not completed yet.
func (s *Session) Loading() bool {
	return s.loading
}

// LastError returns the error from the latest completed fetch, if it failed.
func (s *Session) LastError() error {
	return s.lastErr
}

// FetchedAt returns when the latest fetch completed, or the zero time.
func (s *Session) FetchedAt() time.Time {
	return s.fetchedAt
}

// Snapshot returns the records from the latest accepted fetch.
// Callers must not modify the returned slice.
func (s *Session) Snapshot() []users.User {
	return s.snapshot
}

// Query returns the current query.
func (s *Session) Query() Query {
	return s.query
}

// SetSearch changes the search term. It reports whether the term changed,
// in which case the page was reset to 1.
func (s *Session) SetSearch(term string) bool {
	next := s.query.WithSearch(term)
	changed := next != s.query
	s.query = next
	return changed
}

// SetSortOrder changes the sort order, resetting the page to 1 on change.
func (s *Session) SetSortOrder(order users.SortOrder) bool {
	next := s.query.WithSortOrder(order)
	changed := next != s.query
	s.query = next
	return changed
}

// ToggleSort flips the sort order and returns the new one.
func (s *Session) ToggleSort() users.SortOrder {
	s.SetSortOrder(s.query.SortOrder.Toggle())
	return s.query.SortOrder
}

// SetPage moves to page if it lies within [1, TotalPages].
// Out-of-range pages are rejected and the current page is kept.
func (s *Session) SetPage(page int) bool {
	total := s.View().TotalPages
	if page < pagination.MinPage || page > total {
		return false
	}
	s.query = s.query.WithPage(page)
	return true
}

// NextPage advances one page if there is one.
func (s *Session) NextPage() bool {
	return s.SetPage(s.query.CurrentPage + 1)
}

// PrevPage goes back one page if there is one.
func (s *Session) PrevPage() bool {
	return s.SetPage(s.query.CurrentPage - 1)
}

// View derives the current view from the snapshot.
func (s *Session) View() View {
	return Derive(s.pipeline, s.snapshot, s.query)
}
