package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/config"
	"github.com/five82/curio/internal/logtail"
	"github.com/five82/curio/internal/prefs"
	"github.com/five82/curio/internal/router"
	"github.com/five82/curio/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Router    *router.Router
	Config    config.Config
	Logger    *slog.Logger
	Levels    LevelControl
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
	StartPath string
}

// LevelControl adjusts the minimum log level at runtime.
type LevelControl interface {
	SetLevel(raw string)
	Level() slog.Level
}

// listResume is stored on a list history entry so going back restores it.
type listResume struct {
	Query state.ListQuery
	Row   int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	router    *router.Router
	cfg       config.Config
	logger    *slog.Logger
	levels    LevelControl
	baseLevel slog.Level
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	keys      keyMap

	theme  Theme
	width  int
	height int
	ready  bool

	route       router.Match
	selectedRow int
	detailErr   string
	lastErr     string
	startCmd    tea.Cmd

	detailViewport viewport.Model
	detailBuilt    bool
	logViewport    viewport.Model
	logEntries     []logtail.Entry
	logErr         string
	showLogs       bool

	spinner  spinner.Model
	showHelp bool
	modal    Modal
}

// New creates the model and enters the start path.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rt := opts.Router
	if rt == nil {
		rt = router.New(opts.Config.BasePath)
	}
	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Defaults()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		router:    rt,
		cfg:       opts.Config,
		logger:    logger,
		levels:    opts.Levels,
		prefs:     p,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(p.Theme),
		spinner:   sp,
	}
	m.spinner.Style = m.theme.Styles().AccentText

	start := strings.TrimSpace(opts.StartPath)
	if start == "" {
		start = rt.HomePath()
	}
	next, cmd := m.navigate(start)
	next.startCmd = cmd
	return next
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCmd)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m.updateModal(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(m.width, m.contentHeight())
			m.ready = true
		} else {
			m.logViewport.Width, m.logViewport.Height = m.width, m.contentHeight()
		}
		if m.detailBuilt {
			m.detailViewport.Width, m.detailViewport.Height = m.width, m.contentHeight()
		}
		m.refreshDetail()
		m.refreshLogView()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case objectsLoadedMsg:
		m.noteError(msg.err, "objects")
		if n := len(m.store.List.GetObjects()); m.selectedRow >= n {
			m.selectedRow = maxInt(n-1, 0)
		}
		return m, nil

	case objectLoadedMsg:
		m.noteError(msg.err, fmt.Sprintf("object %d", msg.id))
		m.refreshDetail()
		return m, nil

	case logsLoadedMsg:
		m.logEntries = msg.entries
		m.logErr = ""
		if msg.err != nil {
			m.logErr = msg.err.Error()
		}
		m.refreshLogView()
		m.logViewport.GotoBottom()
		return m, nil

	case promptSubmitMsg:
		return m.handlePrompt(msg)

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to save preferences", "path", m.prefsPath, "error", msg.err)
		}
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = next
	}
	return m, cmd
}

func (m Model) openPrompt(kind promptKind, title, placeholder, value string) (tea.Model, tea.Cmd) {
	modal, cmd := newPromptModal(kind, title, placeholder, value)
	m.modal = modal
	return m, cmd
}

func (m Model) handlePrompt(msg promptSubmitMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case promptPath:
		if msg.value == "" {
			return m, nil
		}
		m.showLogs = false
		return m.navigate(msg.value)
	case promptFilter:
		if m.route.View != router.ViewList {
			return m, nil
		}
		return m.changeSettings(state.Settings{}.WithFilterTerm(msg.value).WithPage(1))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Sequence(m.savePrefsCmd(), tea.Quit)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.spinner.Style = m.theme.Styles().AccentText
		m.refreshDetail()
		m.refreshLogView()
		return m, m.savePrefsCmd()

	case key.Matches(msg, m.keys.ToggleDebug):
		m.toggleDebug()
		return m, nil

	case key.Matches(msg, m.keys.GoTo):
		return m.openPrompt(promptPath, "Go to path", m.router.ListPath(), m.route.Path)

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, loadLogsCmd(m.logPath)
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	switch m.route.View {
	case router.ViewHome:
		if key.Matches(msg, m.keys.Open) {
			return m.navigate(m.router.ListPath())
		}
	case router.ViewList:
		return m.handleListKey(msg)
	case router.ViewDetail:
		return m.handleDetailKey(msg)
	case router.ViewNotFound:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.back()
		case key.Matches(msg, m.keys.Open):
			return m.navigate(m.router.HomePath())
		}
	}
	return m, nil
}

// navigate leaves the current route and pushes raw onto the history.
func (m Model) navigate(raw string) (Model, tea.Cmd) {
	m.leaveRoute()
	match := m.router.Navigate(raw)
	return m.enterRoute(match, queryValues(raw), nil)
}

// back returns to the previous history entry. With no history it falls back
// to the parent view.
func (m Model) back() (Model, tea.Cmd) {
	if m.router.Len() < 2 {
		switch m.route.View {
		case router.ViewHome:
			return m, nil
		case router.ViewDetail:
			return m.navigate(m.router.ListPath())
		default:
			return m.navigate(m.router.HomePath())
		}
	}
	m.leaveRoute()
	entry, ok := m.router.Back()
	if !ok {
		return m, nil
	}
	return m.enterRoute(entry.Match, nil, entry.Resume)
}

func (m *Model) leaveRoute() {
	switch m.route.View {
	case router.ViewList:
		if m.store != nil {
			m.router.SetResume(listResume{Query: m.store.List.GetQuery(), Row: m.selectedRow})
		}
	case router.ViewDetail:
		if m.store != nil {
			m.store.Detail.ResetStore()
		}
	}
}

func (m Model) enterRoute(match router.Match, query url.Values, resume any) (Model, tea.Cmd) {
	m.route = match
	m.selectedRow = 0
	m.detailErr = ""
	m.lastErr = ""
	if match.View != router.ViewNotFound {
		m.prefs.LastPath = match.Path
	}

	switch match.View {
	case router.ViewList:
		if m.store == nil {
			return m, nil
		}
		if r, ok := resume.(listResume); ok {
			m.store.List.ApplySettings(state.SettingsFromQuery(r.Query))
			m.selectedRow = r.Row
		} else if s, ok := settingsFromValues(query); ok {
			m.store.List.ApplySettings(s)
		}
		return m, m.fetchObjects()

	case router.ViewDetail:
		m.buildDetailView()
		raw := match.Prop("id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			m.detailErr = fmt.Sprintf("%q is not a valid object id", raw)
			m.refreshDetail()
			return m, nil
		}
		m.prefs = m.prefs.Remember(id)
		m.refreshDetail()
		if m.store == nil {
			return m, nil
		}
		return m, tea.Batch(fetchObjectCmd(m.ctx, m.store, id), m.savePrefsCmd())
	}
	return m, nil
}

// toggleDebug switches between debug logging and the level curio started with.
func (m *Model) toggleDebug() {
	if m.levels == nil {
		return
	}
	if m.levels.Level() > slog.LevelDebug {
		m.baseLevel = m.levels.Level()
		m.levels.SetLevel("debug")
	} else {
		m.levels.SetLevel(m.baseLevel.String())
	}
	m.logger.Info("log level changed", "level", m.levels.Level().String())
}

// buildDetailView creates the detail viewport the first time a detail route
// is entered.
func (m *Model) buildDetailView() {
	if m.detailBuilt {
		return
	}
	m.detailViewport = viewport.New(m.width, m.contentHeight())
	m.detailBuilt = true
}

// changeSettings applies settings and then fetches with the updated query.
func (m Model) changeSettings(s state.Settings) (Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	m.store.List.ApplySettings(s)
	m.selectedRow = 0
	return m, m.fetchObjects()
}

func (m Model) fetchObjects() tea.Cmd {
	return fetchObjectsCmd(m.ctx, m.store, m.store.List.GetQuery())
}

func (m *Model) noteError(err error, what string) {
	switch {
	case err == nil:
		m.lastErr = ""
	case errors.Is(err, state.ErrSuperseded), errors.Is(err, context.Canceled):
	case api.IsNotFound(err):
		m.lastErr = what + " not found"
	default:
		m.lastErr = err.Error()
	}
}

func (m Model) contentHeight() int {
	return maxInt(m.height-chromeRows, 1)
}

func (m Model) savePrefsCmd() tea.Cmd {
	if m.prefsPath == "" {
		return nil
	}
	path, p := m.prefsPath, m.prefs
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// queryValues returns the query string of a raw path, if any.
func queryValues(raw string) url.Values {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return u.Query()
}

// settingsFromValues reads list settings from a path's query string, using
// the same keys the list query serializes to.
func settingsFromValues(values url.Values) (state.Settings, bool) {
	var s state.Settings
	found := false
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			s = s.WithPage(page)
			found = true
		}
	}
	if values.Has("filterTerm") {
		s = s.WithFilterTerm(values.Get("filterTerm"))
		found = true
	}
	if values.Has("filterType") {
		s = s.WithFilterType(values.Get("filterType"))
		found = true
	}
	if values.Has("sortBy") {
		s = s.WithSortBy(values.Get("sortBy"))
		found = true
	}
	return s, found
}

// Messages

type objectsLoadedMsg struct {
	query state.ListQuery
	err   error
}

type objectLoadedMsg struct {
	id  int64
	err error
}

type logsLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

type prefsSavedMsg struct {
	err error
}

// Commands

func fetchObjectsCmd(ctx context.Context, store *state.Store, q state.ListQuery) tea.Cmd {
	return func() tea.Msg {
		return objectsLoadedMsg{query: q, err: store.List.FetchObjects(ctx, q)}
	}
}

func fetchObjectCmd(ctx context.Context, store *state.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		return objectLoadedMsg{id: id, err: store.Detail.FetchObject(ctx, id)}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logsLoadedMsg{entries: logtail.ParseLines(lines), err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
