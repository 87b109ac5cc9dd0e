package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/userdir/internal/engine"
	"github.com/rshade/userdir/internal/engine/cache"
	"github.com/rshade/userdir/internal/source"
	"github.com/rshade/userdir/internal/users"
)

type fakeFetcher struct {
	records   []users.User
	err       error
	calls     int
	refreshes int
}

func (f *fakeFetcher) FetchAllUsers(context.Context) ([]users.User, error) {
	f.calls++
	return f.records, f.err
}

func (f *fakeFetcher) Refresh(ctx context.Context) ([]users.User, error) {
	f.refreshes++
	return f.FetchAllUsers(ctx)
}

func sampleDirectory(n int) []users.User {
	out := make([]users.User, n)
	for i := range out {
		out[i] = users.User{ID: i + 1, Name: fmt.Sprintf("User %02d", i+1)}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a model whose initial fetch has completed.
func loadedModel(t *testing.T, records []users.User) (*UserListModel, *fakeFetcher) {
	t.Helper()
	f := &fakeFetcher{records: records}
	m := NewUserListModel(context.Background(), f, engine.NewSession(nil, 5))
	require.NotNil(t, m.fetchCmd)

	m.Update(m.fetchCmd())
	require.Equal(t, ViewStateList, m.State())
	return m, f
}

func TestNewUserListModel(t *testing.T) {
	m := NewUserListModel(context.Background(), &fakeFetcher{}, nil)

	assert.Equal(t, ViewStateLoading, m.State())
	assert.True(t, m.Session().Loading())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Fetching users")
}

func TestUserListModel_ScenarioBobAlice(t *testing.T) {
	m, _ := loadedModel(t, []users.User{{ID: 1, Name: "Bob"}, {ID: 2, Name: "alice"}})

	view := m.Session().View()
	require.Len(t, view.Users, 2)
	assert.Equal(t, "alice", view.Users[0].Name)
	assert.Equal(t, "Bob", view.Users[1].Name)

	m.Update(runes("/"))
	m.Update(runes("b"))
	m.Update(runes("o"))

	view = m.Session().View()
	require.Len(t, view.Users, 1)
	assert.Equal(t, "Bob", view.Users[0].Name)
	assert.Equal(t, "bo", view.Query.SearchTerm)
}

func TestUserListModel_SearchResetsPage(t *testing.T) {
	m, _ := loadedModel(t, sampleDirectory(12))

	m.Update(runes("3"))
	require.Equal(t, 3, m.Session().Query().CurrentPage)

	m.Update(runes("/"))
	m.Update(runes("1"))

	assert.Equal(t, 1, m.Session().Query().CurrentPage)
	assert.Equal(t, "1", m.Session().Query().SearchTerm, "digits typed into the search box are text")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showSearch)

	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Empty(t, m.Session().Query().SearchTerm, "esc in the list clears the search")
}

func TestUserListModel_Paging(t *testing.T) {
	m, _ := loadedModel(t, sampleDirectory(12))

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Session().Query().CurrentPage)

	m.Update(runes("l"))
	assert.Equal(t, 3, m.Session().Query().CurrentPage)

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 3, m.Session().Query().CurrentPage, "no page past the last")

	m.Update(runes("h"))
	assert.Equal(t, 2, m.Session().Query().CurrentPage)

	m.Update(runes("9"))
	assert.Equal(t, 2, m.Session().Query().CurrentPage, "out-of-range page button ignored")

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 3, m.Session().Query().CurrentPage)
	assert.Len(t, m.Session().View().Users, 2)

	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 1, m.Session().Query().CurrentPage)
}

func TestUserListModel_SortToggle(t *testing.T) {
	m, _ := loadedModel(t, sampleDirectory(7))
	m.Update(runes("2"))

	m.Update(runes("s"))
	q := m.Session().Query()
	assert.Equal(t, users.Descending, q.SortOrder)
	assert.Equal(t, 1, q.CurrentPage)
	assert.Equal(t, "User 07", m.Session().View().Users[0].Name)
	assert.Contains(t, m.View(), "Z→A")
}

func TestUserListModel_DetailView(t *testing.T) {
	m, _ := loadedModel(t, sampleDirectory(3))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewStateDetail, m.State())
	require.NotNil(t, m.SelectedUser())
	assert.Equal(t, 2, m.SelectedUser().ID)
	assert.Contains(t, m.View(), "USER DETAIL")

	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, ViewStateList, m.State())
}

func TestUserListModel_EnterOnEmptyListStays(t *testing.T) {
	m, _ := loadedModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateList, m.State())
	assert.Contains(t, m.View(), "No users to display")
}

func TestUserListModel_FetchFailureLeavesListEmpty(t *testing.T) {
	f := &fakeFetcher{err: &source.FetchError{Kind: source.FailureStatus, URL: "http://x", StatusCode: 500}}
	m := NewUserListModel(context.Background(), f, engine.NewSession(nil, 5))

	m.Update(m.fetchCmd())

	assert.Equal(t, ViewStateList, m.State())
	assert.False(t, m.Session().Loading())
	assert.True(t, m.Session().View().IsEmpty())
	assert.Contains(t, m.View(), "Could not load users")
}

// runCmd executes cmd, expanding batches, and returns the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}

// deliverFetches runs cmd and feeds every fetch result back into m.
func deliverFetches(m *UserListModel, cmd tea.Cmd) {
	for _, msg := range runCmd(cmd) {
		if fetched, ok := msg.(usersFetchedMsg); ok {
			m.Update(fetched)
		}
	}
}

func TestUserListModel_RefreshKeys(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		wantCalls     int
		wantRefreshes int
	}{
		{name: "r reuses the cache path", key: "r", wantCalls: 2, wantRefreshes: 0},
		{name: "R forces a reload", key: "R", wantCalls: 2, wantRefreshes: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, f := loadedModel(t, sampleDirectory(3))
			f.records = sampleDirectory(8)

			_, cmd := m.Update(runes(tt.key))
			require.NotNil(t, cmd)
			assert.True(t, m.Session().Loading())
			assert.Contains(t, m.View(), "refreshing")

			deliverFetches(m, cmd)

			assert.Equal(t, tt.wantCalls, f.calls)
			assert.Equal(t, tt.wantRefreshes, f.refreshes)
			assert.False(t, m.Session().Loading())
			assert.Equal(t, 8, m.Session().View().TotalRecords)
		})
	}
}

// countingUpstream counts the loads that reach the source.
type countingUpstream struct {
	records []users.User
	err     error
	gets    int
}

func (c *countingUpstream) FetchAllUsers(context.Context) ([]users.User, error) {
	c.gets++
	return c.records, c.err
}

func cachedModel(t *testing.T, upstream *countingUpstream, enabled bool) *UserListModel {
	t.Helper()
	store := cache.NewSnapshotCache(enabled, cache.DefaultTTLSeconds, cache.DefaultMaxEntries)
	fetcher := source.NewCachedFetcher(upstream, cache.GenerateKey("https://example.com/users"), store, nil)

	m := NewUserListModel(context.Background(), fetcher, engine.NewSession(nil, 5))
	m.Update(m.fetchCmd())
	require.Equal(t, ViewStateList, m.State())
	return m
}

func TestUserListModel_RefreshWithinTTLServesSnapshot(t *testing.T) {
	upstream := &countingUpstream{records: sampleDirectory(7)}
	m := cachedModel(t, upstream, true)
	require.Equal(t, 1, upstream.gets)

	upstream.records = sampleDirectory(9)
	for range 3 {
		_, cmd := m.Update(runes("r"))
		deliverFetches(m, cmd)
	}
	assert.Equal(t, 1, upstream.gets, "refreshes within the TTL make no upstream request")
	assert.Equal(t, 7, m.Session().View().TotalRecords)

	_, cmd := m.Update(runes("R"))
	deliverFetches(m, cmd)
	assert.Equal(t, 2, upstream.gets)
	assert.Equal(t, 9, m.Session().View().TotalRecords)

	_, cmd = m.Update(runes("r"))
	deliverFetches(m, cmd)
	assert.Equal(t, 2, upstream.gets, "a reload repopulates the cache")
}

func TestUserListModel_RefreshWithCacheDisabled(t *testing.T) {
	upstream := &countingUpstream{records: sampleDirectory(4)}
	m := cachedModel(t, upstream, false)

	for range 3 {
		_, cmd := m.Update(runes("r"))
		deliverFetches(m, cmd)
	}
	assert.Equal(t, 4, upstream.gets)
}

func TestUserListModel_RetryAfterFailureReachesSource(t *testing.T) {
	upstream := &countingUpstream{err: &source.FetchError{Kind: source.FailureStatus, StatusCode: 503}}
	m := cachedModel(t, upstream, true)
	assert.Contains(t, m.View(), "Could not load users")

	upstream.err = nil
	upstream.records = sampleDirectory(2)
	_, cmd := m.Update(runes("r"))
	deliverFetches(m, cmd)

	assert.Equal(t, 2, upstream.gets, "failures are not cached")
	assert.Equal(t, 2, m.Session().View().TotalRecords)
	assert.NotContains(t, m.View(), "Could not load users")
}

func TestUserListModel_StaleFetchDiscarded(t *testing.T) {
	f := &fakeFetcher{records: sampleDirectory(2)}
	m := NewUserListModel(context.Background(), f, engine.NewSession(nil, 5))
	stale := m.fetchCmd

	f.records = sampleDirectory(6)
	fresh := m.startFetch(false)

	m.Update(fresh())
	require.Equal(t, 6, m.Session().View().TotalRecords)

	f.records = sampleDirectory(2)
	m.Update(stale())
	assert.Equal(t, 6, m.Session().View().TotalRecords, "older token must not overwrite newer data")
}

func TestUserListModel_Quit(t *testing.T) {
	m, _ := loadedModel(t, sampleDirectory(1))
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.Empty(t, m.View())
}

func TestUserListModel_QuitWhileLoading(t *testing.T) {
	m := NewUserListModel(context.Background(), &fakeFetcher{}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateQuitting, m.State())
}

func TestUserListModel_NilFetcher(t *testing.T) {
	m := NewUserListModel(context.Background(), nil, nil)
	msg, ok := m.fetchCmd().(usersFetchedMsg)
	require.True(t, ok)
	assert.True(t, errors.Is(msg.err, source.ErrFetchFailure))
}

func TestUserListModel_WindowSize(t *testing.T) {
	m, _ := loadedModel(t, sampleDirectory(2))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestUserListModel_PageButtonsRendered(t *testing.T) {
	m, _ := loadedModel(t, sampleDirectory(12))
	out := m.View()
	assert.Contains(t, out, "Page 1/3")
	assert.Contains(t, out, "12 of 12 users")
	assert.Contains(t, out, "User 01")
	assert.NotContains(t, out, "User 06")
}
