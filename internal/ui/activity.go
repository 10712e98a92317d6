package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lens/internal/library"
	"github.com/five82/lens/internal/logtail"
)

type activityLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

type downloadsLoadedMsg struct {
	records []library.Download
	err     error
}

type downloadedIDsMsg struct {
	ids map[int64]bool
	err error
}

// listState backs the Downloads and Activity views.
type listState struct {
	viewport viewport.Model
	loaded   bool
	err      error
}

func (l *listState) resize(width, height int) {
	l.viewport.Width = maxInt(10, width-2)
	l.viewport.Height = height
}

// openActivity switches to the Activity view and reloads the log.
func (m *Model) openActivity() tea.Cmd {
	m.currentView = ViewActivity
	m.activity.resize(m.width, m.contentHeight())
	return loadActivityCmd(m.logFile)
}

// openDownloads switches to the Downloads view and reloads the ledger.
func (m *Model) openDownloads() tea.Cmd {
	m.currentView = ViewDownloads
	m.downloads.resize(m.width, m.contentHeight())
	return loadDownloadsCmd(m.ctx, m.library)
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, ActivityLineLimit)
		if err != nil {
			return activityLoadedMsg{err: err}
		}
		return activityLoadedMsg{entries: logtail.Parse(lines)}
	}
}

func loadDownloadsCmd(ctx context.Context, lib *library.Library) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, LibraryQueryTimeout)
		defer cancel()
		records, err := lib.Recent(ctx, DownloadsListLimit)
		return downloadsLoadedMsg{records: records, err: err}
	}
}

func loadDownloadedIDsCmd(ctx context.Context, lib *library.Library) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, LibraryQueryTimeout)
		defer cancel()
		ids, err := lib.DownloadedIDs(ctx)
		return downloadedIDsMsg{ids: ids, err: err}
	}
}

// checkDownloadedCmd looks up a single image so the detail view also marks
// downloads recorded after startup, including by another lens process.
func checkDownloadedCmd(ctx context.Context, lib *library.Library, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, LibraryQueryTimeout)
		defer cancel()
		has, err := lib.Has(ctx, id)
		if err != nil || !has {
			return downloadedIDsMsg{err: err}
		}
		return downloadedIDsMsg{ids: map[int64]bool{id: true}}
	}
}

// handleListKey processes input for the Downloads and Activity views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewGrid
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if m.currentView == ViewActivity {
			return m, loadActivityCmd(m.logFile)
		}
		return m, loadDownloadsCmd(m.ctx, m.library)
	case key.Matches(msg, m.keys.Top):
		m.currentList().viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.currentList().viewport.GotoBottom()
		return m, nil
	}

	list := m.currentList()
	var cmd tea.Cmd
	list.viewport, cmd = list.viewport.Update(msg)
	return m, cmd
}

func (m *Model) currentList() *listState {
	if m.currentView == ViewActivity {
		return &m.activity
	}
	return &m.downloads
}

func (m Model) handleActivityLoaded(msg activityLoadedMsg) (tea.Model, tea.Cmd) {
	m.activity.loaded = true
	m.activity.err = msg.err
	m.activity.viewport.SetContent(m.renderActivityContent(msg.entries))
	m.activity.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleDownloadsLoaded(msg downloadsLoadedMsg) (tea.Model, tea.Cmd) {
	m.downloads.loaded = true
	m.downloads.err = msg.err
	if msg.err != nil {
		m.logger.Warn("load downloads failed", "error", msg.err)
	}
	m.downloads.viewport.SetContent(m.renderDownloadsContent(msg.records))
	m.downloads.viewport.GotoTop()
	return m, nil
}

func (m Model) handleDownloadedIDs(msg downloadedIDsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("load downloaded ids failed", "error", msg.err)
		return m, nil
	}
	for id := range msg.ids {
		m.downloaded[id] = true
	}
	if msg.ids[m.detailImage.ID] {
		m.updateDetailViewport()
	}
	return m, nil
}

// renderActivityContent formats parsed log entries, oldest first.
func (m Model) renderActivityContent(entries []logtail.Entry) string {
	styles := m.theme.Styles()
	if len(entries) == 0 {
		if m.logFile == "" {
			return styles.FaintText.Render("No log file configured")
		}
		return styles.FaintText.Render("No activity recorded in " + m.logFile)
	}

	width := maxInt(20, m.width-4)
	var b strings.Builder
	for _, e := range entries {
		stamp := "        "
		if !e.Time.IsZero() {
			stamp = e.Time.Local().Format("15:04:05")
		}
		b.WriteString(styles.FaintText.Render(stamp))
		b.WriteString(" ")
		b.WriteString(m.levelStyle(e.Level).Render(padRight(levelTag(e.Level), 5)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))

		var attrs []string
		for _, a := range e.Attrs {
			attrs = append(attrs, styles.MutedText.Render(a.Key+"=")+styles.InfoText.Render(a.Value))
		}
		if len(attrs) > 0 {
			b.WriteString(" ")
			b.WriteString(lipgloss.NewStyle().MaxWidth(maxInt(10, width-lipgloss.Width(e.Message)-16)).Render(strings.Join(attrs, " ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func levelTag(level string) string {
	switch level {
	case "":
		return "-"
	case "WARNING":
		return "WARN"
	default:
		return level
	}
}

func (m Model) levelStyle(level string) lipgloss.Style {
	styles := m.theme.Styles()
	switch level {
	case "ERROR":
		return styles.DangerText
	case "WARN", "WARNING":
		return styles.WarningText
	case "INFO":
		return styles.InfoText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.MutedText
	}
}

// renderDownloadsContent lists library records, newest first.
func (m Model) renderDownloadsContent(records []library.Download) string {
	styles := m.theme.Styles()
	if m.library == nil {
		return styles.FaintText.Render("Download history is unavailable (library not open)")
	}
	if len(records) == 0 {
		return styles.FaintText.Render("No downloads yet. Press d on an image to save it.")
	}

	pathWidth := maxInt(20, m.width-40)
	var b strings.Builder
	header := fmt.Sprintf("%-16s %-10s %-8s %s", "When", "Image", "Mode", "Location")
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")
	for _, d := range records {
		where := d.Path
		if where == "" {
			where = d.SourceURL
		}
		modeStyle := styles.SuccessText
		if d.Mode != "file" {
			modeStyle = styles.InfoText
		}
		b.WriteString(styles.FaintText.Render(padRight(d.CreatedAt.Local().Format("2006-01-02 15:04"), 16)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(padRight(fmt.Sprintf("#%d", d.ImageID), 10)))
		b.WriteString(" ")
		b.WriteString(modeStyle.Render(padRight(d.Mode, 8)))
		b.WriteString(" ")
		b.WriteString(styles.AccentText.Render(truncateMiddle(where, pathWidth)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderList renders the Downloads or Activity view.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	list := m.currentList()
	if !list.loaded {
		return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(m.spinner.View()+" Loading..."))
	}
	if list.err != nil {
		return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center,
			styles.DangerText.Render("Error: "+list.err.Error()))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(list.viewport.View())
}
