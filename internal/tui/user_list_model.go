package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/userdir/internal/engine"
	"github.com/rshade/userdir/internal/logging"
	"github.com/rshade/userdir/internal/source"
	listview "github.com/rshade/userdir/internal/tui/list"
	"github.com/rshade/userdir/internal/users"
)

// fetchFailedStatus is shown under the list after a failed fetch.
const fetchFailedStatus = "Could not load users. Press r to retry."

// usersFetchedMsg carries a fetch result and the token it was started with.
type usersFetchedMsg struct {
	token   engine.FetchToken
	records []users.User
	err     error
}

// UserListModel is the Bubble Tea model for browsing the user directory.
type UserListModel struct {
	// View state
	state   ViewState
	session *engine.Session
	ctx     context.Context
	fetcher source.Fetcher

	// Interactive components
	list       *listview.SelectListModel[users.User]
	textInput  textinput.Model
	showSearch bool

	// Display configuration
	width  int
	height int

	// Loading state
	loading  *LoadingState
	fetchCmd tea.Cmd

	// status is a muted note under the list, set after a failed fetch.
	status string
}

// NewUserListModel creates a model in the loading state. The first fetch
// starts when the program calls Init.
func NewUserListModel(ctx context.Context, fetcher source.Fetcher, session *engine.Session) *UserListModel {
	if session == nil {
		session = engine.NewSession(nil, 0)
	}

	m := &UserListModel{
		state:     ViewStateLoading,
		session:   session,
		ctx:       ctx,
		fetcher:   fetcher,
		textInput: newSearchInput(),
		width:     defaultWidth,
		height:    defaultHeight,
		loading:   NewLoadingState(),
	}
	m.list = listview.NewSelectListModel(session.View().Users, m.width, renderUserRow)
	m.fetchCmd = m.startFetch(false)
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search by name..."
	ti.Prompt = ""
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

// Init starts the spinner and the initial fetch.
func (m *UserListModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd)
}

// startFetch issues a new fetch token and returns the command that runs it.
// A forced refresh bypasses the snapshot cache when the fetcher supports it;
// otherwise a snapshot still within its TTL is reused.
func (m *UserListModel) startFetch(refresh bool) tea.Cmd {
	token := m.session.BeginFetch()
	ctx := m.ctx
	fetcher := m.fetcher

	return func() tea.Msg {
		if fetcher == nil {
			return usersFetchedMsg{token: token, err: &source.FetchError{Kind: source.FailureNetwork, Err: errNoFetcher}}
		}
		var (
			records []users.User
			err     error
		)
		if r, ok := fetcher.(source.Refresher); ok && refresh {
			records, err = r.Refresh(ctx)
		} else {
			records, err = fetcher.FetchAllUsers(ctx)
		}
		return usersFetchedMsg{token: token, records: records, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *UserListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Update(msg)
		return m, nil
	case usersFetchedMsg:
		return m.handleFetched(msg)
	case spinner.TickMsg:
		if m.state == ViewStateLoading || m.session.Loading() {
			return m, m.loading.Update(msg)
		}
		return m, nil
	}

	if m.showSearch {
		return m.handleSearchInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleQuitKeys(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m *UserListModel) handleFetched(msg usersFetchedMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)

	if !m.session.CompleteFetch(msg.token, msg.records, msg.err) {
		log.Debug().
			Ctx(m.ctx).
			Str("component", "tui").
			Uint64("token", uint64(msg.token)).
			Uint64("current", uint64(m.session.Generation())).
			Msg("discarding stale fetch result")
		return m, nil
	}

	if msg.err != nil {
		log.Warn().
			Ctx(m.ctx).
			Str("component", "tui").
			Err(msg.err).
			Msg("user fetch failed; showing empty list")
		m.status = fetchFailedStatus
	} else {
		log.Debug().
			Ctx(m.ctx).
			Str("component", "tui").
			Int("count", len(msg.records)).
			Msg("user snapshot loaded")
		m.status = ""
	}

	if m.state == ViewStateLoading || m.state == ViewStateDetail {
		m.state = ViewStateList
	}
	m.syncList()
	return m, nil
}

func (m *UserListModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showSearch = false
			m.textInput.Blur()
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.session.SetSearch(m.textInput.Value()) {
		m.list.SetSelected(0)
	}
	m.syncList()
	return m, cmd
}

func (m *UserListModel) handleQuitKeys(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

//nolint:cyclop // one case per key binding
func (m *UserListModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := keyMsg.String()
	switch key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.showSearch = true
		return m, m.textInput.Focus()
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.session.SetSearch("")
			m.list.SetSelected(0)
			m.syncList()
		}
		return m, nil
	case keyS:
		m.session.ToggleSort()
		m.list.SetSelected(0)
		m.syncList()
		return m, nil
	case keyR:
		m.status = ""
		return m, tea.Batch(m.loading.Init(), m.startFetch(false))
	case keyReload:
		m.status = ""
		return m, tea.Batch(m.loading.Init(), m.startFetch(true))
	case keyLeft, keyH, keyPgUp:
		m.changePage(m.session.PrevPage())
		return m, nil
	case keyRight, keyL, keyPgDown:
		m.changePage(m.session.NextPage())
		return m, nil
	case keyHome:
		m.changePage(m.session.SetPage(1))
		return m, nil
	case keyEnd:
		m.changePage(m.session.SetPage(m.session.View().TotalPages))
		return m, nil
	case keyEnter:
		if m.list.GetSelectedItem() != nil {
			m.state = ViewStateDetail
		}
		return m, nil
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
		m.changePage(m.session.SetPage(n))
		return m, nil
	}

	m.list.Update(msg)
	return m, nil
}

func (m *UserListModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc, keyBackspace, keyEnter:
			m.state = ViewStateList
			return m, nil
		}
	}
	return m, nil
}

func (m *UserListModel) changePage(changed bool) {
	if changed {
		m.list.SetSelected(0)
		m.syncList()
	}
}

// syncList pushes the current page into the row list.
func (m *UserListModel) syncList() {
	m.list.SetItems(m.session.View().Users)
}

// State returns the current view state.
func (m *UserListModel) State() ViewState {
	return m.state
}

// Session returns the underlying session.
func (m *UserListModel) Session() *engine.Session {
	return m.session
}

// SelectedUser returns the highlighted user, or nil.
func (m *UserListModel) SelectedUser() *users.User {
	return m.list.GetSelectedItem()
}
