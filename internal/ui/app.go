package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lens/internal/download"
	"github.com/five82/lens/internal/filter"
	"github.com/five82/lens/internal/library"
	"github.com/five82/lens/internal/pixabay"
	"github.com/five82/lens/internal/prefs"
	"github.com/five82/lens/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewGrid View = iota
	ViewDetail
	ViewDownloads
	ViewActivity
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxColumnsPref        = 8
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Controller     *filter.Controller
	Source         pixabay.Searcher
	Downloader     *download.Downloader
	Library        *library.Library
	Logger         *slog.Logger
	ThemeName      string
	Columns        int
	PrefsPath      string
	LogFile        string
	RequestTimeout time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx            context.Context
	controller     *filter.Controller
	feed           *state.Feed
	source         pixabay.Searcher
	downloader     *download.Downloader
	library        *library.Library
	logger         *slog.Logger
	prefsPath      string
	logFile        string
	requestTimeout time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	columnsPref int
	currentView View
	width       int
	height      int
	ready       bool

	// Feed state
	snapshot   state.Snapshot
	layout     masonry
	selected   int
	scrollTop  int
	downloaded map[int64]bool

	// Search and category bar
	searchInput     textinput.Model
	searchSeq       int
	categoryFocused bool
	categoryCursor  int
	categoryIdx     int // active category, -1 for none

	// Filter modal
	modal Modal

	// Detail state
	detailImage    pixabay.Image
	detailViewport viewport.Model
	detailBusy     bool

	// Downloads and Activity views
	downloads listState
	activity  listState

	// Notifications
	spinner       spinner.Model
	status        string
	statusIsError bool
	statusID      int

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model and starts loading the first page.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	controller := opts.Controller
	if controller == nil {
		controller = filter.NewController(state.NewFeed())
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:            ctx,
		controller:     controller,
		feed:           controller.Feed(),
		source:         opts.Source,
		downloader:     opts.Downloader,
		library:        opts.Library,
		logger:         logger,
		prefsPath:      prefsPath,
		logFile:        opts.LogFile,
		requestTimeout: timeout,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(themeName),
		columnsPref:    clampInt(opts.Columns, 0, maxColumnsPref),
		currentView:    ViewGrid,
		downloaded:     make(map[int64]bool),
		searchInput:    newSearchInput(),
		categoryIdx:    categoryIndex(controller.Category()),
		detailViewport: viewport.New(0, 0),
		downloads:      listState{viewport: viewport.New(0, 0)},
		activity:       listState{viewport: viewport.New(0, 0)},
		spinner:        sp,
	}
	m.controller.Refresh()
	m.syncFeed()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadDownloadedIDsCmd(m.ctx, m.library),
	}
	if req, ok := m.feed.Pending(); ok {
		cmds = append(cmds, fetchCmd(m.ctx, m.source, req, m.requestTimeout))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.syncFeed()
		m.scrollTop = m.layout.follow(m.selected, m.scrollTop, m.gridHeight())
		m.downloads.resize(m.width, m.contentHeight())
		m.activity.resize(m.width, m.contentHeight())
		m.updateDetailViewport()
		cmd := m.reportScroll()
		return m, cmd

	case fetchResultMsg:
		return m.handleFetchResult(msg)

	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)

	case downloadDoneMsg:
		return m.handleDownloadDone(msg)

	case shareDoneMsg:
		return m.handleShareDone(msg)

	case openDoneMsg:
		return m.handleOpenDone(msg)

	case activityLoadedMsg:
		return m.handleActivityLoaded(msg)

	case downloadsLoadedMsg:
		return m.handleDownloadsLoaded(msg)

	case downloadedIDsMsg:
		return m.handleDownloadedIDs(msg)

	case clearStatusMsg:
		return m.handleClearStatus(msg)

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save prefs failed", "error", msg.err)
			cmd := m.notifyError("Could not save preferences: " + msg.err.Error())
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.detailBusy {
			m.updateDetailViewport()
		}
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	// Show filter modal if active
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}
	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}
	if m.categoryFocused {
		return m.handleCategoryKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.updateDetailViewport()
		return m, m.savePrefsCmd()

	case key.Matches(msg, m.keys.ViewDownloads):
		cmd := m.openDownloads()
		return m, cmd

	case key.Matches(msg, m.keys.ViewActivity):
		cmd := m.openActivity()
		return m, cmd
	}

	// View-specific keys
	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewDownloads, ViewActivity:
		return m.handleListKey(msg)
	}
	return m.handleGridKey(msg)
}

// handleGridKey processes keyboard input for the grid view.
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.categoryFocused = false
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Categories):
		m.categoryFocused = true
		m.categoryCursor = maxInt(0, m.categoryIdx)
		return m, nil

	case key.Matches(msg, m.keys.Filters):
		m.modal = newFilterModal(m.controller.Facets())
		return m, nil

	case key.Matches(msg, m.keys.ClearFacet):
		cmd := m.clearFacetByDigit(msg.String())
		return m, cmd

	case key.Matches(msg, m.keys.ResetFilters):
		req, ok := m.controller.ResetAllFilters()
		if !ok {
			cmd := m.notify("No filters to reset")
			return m, cmd
		}
		cmd := m.startFetch(req)
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.startFetch(m.controller.Refresh())
		return m, cmd

	case key.Matches(msg, m.keys.MoreColumns):
		cmd := m.changeColumns(1)
		return m, cmd

	case key.Matches(msg, m.keys.FewerColumns):
		cmd := m.changeColumns(-1)
		return m, cmd

	case key.Matches(msg, m.keys.Confirm):
		cmd := m.openDetail()
		return m, cmd

	case key.Matches(msg, m.keys.Download):
		img, ok := m.selectedImage()
		if !ok || m.detailBusy {
			return m, nil
		}
		m.detailBusy = true
		return m, tea.Batch(m.spinner.Tick, downloadCmd(m.ctx, m.downloader, img))

	case key.Matches(msg, m.keys.Share):
		if img, ok := m.selectedImage(); ok {
			return m, shareCmd(m.downloader, img)
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenPage):
		if img, ok := m.selectedImage(); ok {
			return m, openCmd(m.downloader, img.PageURL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.status != "" {
			m.status = ""
			m.statusIsError = false
		}
		return m, nil
	}

	if m.moveSelection(gridDirection(m.keys, msg)) {
		cmd := m.reportScroll()
		return m, cmd
	}
	return m, nil
}

// gridDirection maps a key to a grid movement.
func gridDirection(keys keyMap, msg tea.KeyMsg) string {
	switch {
	case key.Matches(msg, keys.Up):
		return "up"
	case key.Matches(msg, keys.Down):
		return "down"
	case key.Matches(msg, keys.Left):
		return "left"
	case key.Matches(msg, keys.Right):
		return "right"
	case key.Matches(msg, keys.Top):
		return "top"
	case key.Matches(msg, keys.Bottom):
		return "bottom"
	case key.Matches(msg, keys.PageUp):
		return "pageup"
	case key.Matches(msg, keys.PageDown):
		return "pagedown"
	case key.Matches(msg, keys.HalfPageUp):
		return "halfup"
	case key.Matches(msg, keys.HalfPageDown):
		return "halfdown"
	}
	return ""
}

// startFetch syncs the view with a feed transition and runs its request.
func (m *Model) startFetch(req state.Request) tea.Cmd {
	if !req.Append {
		m.selected = 0
		m.scrollTop = 0
	}
	m.syncFeed()
	m.logger.Debug("fetch started",
		"tag", req.Tag,
		"append", req.Append,
		"query", req.Query.Encode(),
	)
	return tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.source, req, m.requestTimeout))
}

func (m Model) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	res := msg.result
	if !m.feed.Complete(res) {
		m.logger.Debug("discarded stale result", "tag", res.Tag)
		return m, nil
	}
	m.syncFeed()

	var cmds []tea.Cmd
	switch {
	case errors.Is(res.Err, pixabay.ErrMalformedResponse):
		m.logger.Warn("malformed response treated as empty page", "tag", res.Tag, "error", res.Err)
	case res.Err != nil:
		m.logger.Warn("fetch failed",
			"tag", res.Tag,
			"failures", m.snapshot.ConsecutiveFailures,
			"error", res.Err,
		)
		cmds = append(cmds, m.notifyError("Could not load images: "+res.Err.Error()))
	default:
		m.logger.Debug("fetch complete",
			"tag", res.Tag,
			"hits", len(res.Response.Hits),
			"items", len(m.snapshot.Items),
			"total", m.snapshot.Total,
		)
	}
	cmds = append(cmds, m.reportScroll())
	return m, tea.Batch(cmds...)
}

// syncFeed refreshes the cached snapshot and layout from the feed.
func (m *Model) syncFeed() {
	m.snapshot = m.feed.Snapshot()
	m.layout = layoutMasonry(m.snapshot.Items, m.width, m.columnsPref)
	if n := m.feed.Len(); n == 0 {
		m.selected = 0
	} else {
		m.selected = clampInt(m.selected, 0, n-1)
	}
	m.scrollTop = m.layout.clampScroll(m.scrollTop, m.gridHeight())
}

// reportScroll passes the grid's distance from the bottom to the feed and
// runs the next-page request it may produce.
func (m *Model) reportScroll() tea.Cmd {
	if !m.ready {
		return nil
	}
	req, ok := m.feed.OnScroll(m.layout.offsetFromBottom(m.scrollTop, m.gridHeight()))
	if !ok {
		m.snapshot.AtEnd = m.feed.Snapshot().AtEnd
		return nil
	}
	return m.startFetch(req)
}

func (m *Model) changeColumns(delta int) tea.Cmd {
	current := m.columnsPref
	if current == 0 {
		current = m.layout.columns
	}
	m.columnsPref = clampInt(current+delta, 1, maxColumnsPref)
	m.syncFeed()
	m.scrollTop = m.layout.follow(m.selected, m.scrollTop, m.gridHeight())
	return tea.Batch(
		m.notify(fmt.Sprintf("%d columns", m.layout.columns)),
		m.savePrefsCmd(),
		m.reportScroll(),
	)
}

func (m Model) savePrefsCmd() tea.Cmd {
	path := m.prefsPath
	p := prefs.Prefs{Theme: m.theme.Name, Columns: m.columnsPref}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

func (m Model) selectedImage() (pixabay.Image, bool) {
	return m.feed.Item(m.selected)
}

// busy reports whether anything is animating the spinner.
func (m Model) busy() bool {
	if m.snapshot.Fetching() || m.detailBusy {
		return true
	}
	switch m.currentView {
	case ViewDownloads:
		return !m.downloads.loaded
	case ViewActivity:
		return !m.activity.loaded
	}
	return false
}

// gridHeight is the number of rows available to the grid.
func (m Model) gridHeight() int {
	return m.contentHeight()
}

// contentHeight is the number of rows between the header and the footer.
func (m Model) contentHeight() int {
	return maxInt(1, m.height-HeaderRows-FooterRows)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	lines := []string{
		m.renderHeader(),
		m.renderSearchLine(),
		m.renderCategoryBar(),
		m.renderChips(),
		m.renderContent(),
		m.renderStatusLine(),
		m.renderCommandBar(),
	}
	return strings.Join(lines, "\n")
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewDownloads, ViewActivity:
		return m.renderList()
	default:
		return m.renderGrid(m.gridHeight())
	}
}

// Messages

type fetchResultMsg struct {
	result state.Result
}

// Commands

func fetchCmd(ctx context.Context, src pixabay.Searcher, req state.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fetchResultMsg{result: state.Fetch(ctx, src, req)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
