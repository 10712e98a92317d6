package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lens/internal/filter"
	"github.com/five82/lens/internal/pixabay"
)

// searchDebounceMsg fires once the search box has been quiet for
// SearchDebounce. Only the message carrying the latest seq acts.
type searchDebounceMsg struct {
	seq  int
	text string
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search images"
	ti.CharLimit = 100
	return ti
}

func debounceCmd(seq int, text string) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, text: text}
	})
}

// handleSearchKey processes input while the search box is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.searchInput.Blur()
		m.searchSeq++
		cmd := m.applySearch(m.searchInput.Value())
		return m, cmd
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, debounceCmd(m.searchSeq, m.searchInput.Value()))
}

// handleSearchDebounce runs the search for the latest keystroke only.
func (m Model) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.searchSeq {
		return m, nil
	}
	cmd := m.applySearch(msg.text)
	return m, cmd
}

// applySearch resets the feed for text when it passes the length gate and
// differs from the active search.
func (m *Model) applySearch(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if !filter.ShouldSearch(text) || text == m.controller.SearchText() {
		return nil
	}
	m.logger.Debug("search", "text", text)
	req := m.controller.SetSearch(text)
	m.categoryIdx = -1
	return m.startFetch(req)
}

// handleCategoryKey processes input while the category bar is focused.
func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(pixabay.Categories)
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Categories):
		m.categoryFocused = false
	case key.Matches(msg, m.keys.Left):
		m.categoryCursor = (m.categoryCursor - 1 + count) % count
	case key.Matches(msg, m.keys.Right):
		m.categoryCursor = (m.categoryCursor + 1) % count
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Toggle):
		cmd := m.toggleCategory(pixabay.Categories[m.categoryCursor])
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// toggleCategory selects cat, or clears it when it is already active. Any
// typed search is dropped.
func (m *Model) toggleCategory(cat string) tea.Cmd {
	if cat == m.controller.Category() {
		cat = ""
	}
	m.searchSeq++
	m.searchInput.SetValue("")
	m.categoryIdx = categoryIndex(cat)
	return m.startFetch(m.controller.SetCategory(cat))
}

func categoryIndex(cat string) int {
	for i, c := range pixabay.Categories {
		if c == cat {
			return i
		}
	}
	return -1
}

// renderSearchLine renders the search box line.
func (m Model) renderSearchLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	ti := m.searchInput
	ti.Width = maxInt(10, m.width-24)
	ti.PromptStyle = styles.AccentText
	ti.TextStyle = styles.Text
	ti.PlaceholderStyle = styles.FaintText
	ti.Cursor.Style = styles.AccentText

	line := ti.View()
	if !m.searchInput.Focused() {
		value := strings.TrimSpace(m.searchInput.Value())
		switch {
		case value != "":
			line = bg.Pair("/", styles.FaintText, value, styles.Text)
		default:
			line = bg.Pair("/", styles.FaintText, "Search images", styles.FaintText)
		}
		if m.searchPending() {
			line += bg.Spaces(2) + bg.Render("(min 3 characters)", styles.WarningText)
		}
	}
	return bg.Line(line, m.width)
}

// searchPending reports a typed query that is too short to run.
func (m Model) searchPending() bool {
	value := strings.TrimSpace(m.searchInput.Value())
	return value != "" && !filter.ShouldSearch(value)
}

// renderCategoryBar renders the category strip, scrolled so the cursor
// stays in view.
func (m Model) renderCategoryBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	active := m.controller.Category()
	cursor := m.categoryCursor
	if !m.categoryFocused {
		cursor = maxInt(0, m.categoryIdx)
	}

	labels := make([]string, len(pixabay.Categories))
	for i, cat := range pixabay.Categories {
		style := styles.MutedText
		switch {
		case m.categoryFocused && i == cursor:
			style = styles.Selected.Bold(true)
		case cat == active:
			style = styles.AccentText.Bold(true)
		}
		labels[i] = style.Padding(0, 1).Render(cat)
	}

	avail := maxInt(10, m.width-2)
	start := 0
	for start < cursor && lipgloss.Width(strings.Join(labels[start:cursor+1], " ")) > avail {
		start++
	}
	var b strings.Builder
	if m.categoryFocused {
		b.WriteString(styles.AccentText.Render("▸"))
	} else {
		b.WriteString(styles.FaintText.Render("c"))
	}
	b.WriteString(bg.Space())
	for i := start; i < len(labels); i++ {
		if lipgloss.Width(b.String())+lipgloss.Width(labels[i]) > avail {
			b.WriteString(styles.FaintText.Render("…"))
			break
		}
		b.WriteString(labels[i])
	}
	return fitLine(b.String(), m.width)
}

// renderChips renders one chip per active facet. The digit shown clears it.
func (m Model) renderChips() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	facets := m.controller.Facets()
	if len(facets) == 0 {
		return fitLine(styles.FaintText.Render(" no filters  (f to add)"), m.width)
	}

	var b strings.Builder
	b.WriteString(bg.Space())
	for _, name := range facets.Names() {
		value := facets[name]
		label := name + ": " + value
		if digit := facetDigit(name); digit != "" {
			label = digit + " " + label + " ×"
		}
		style := styles.Selected
		if name == pixabay.FacetColors {
			style = styles.SwatchStyle(value)
		}
		b.WriteString(bg.Chip(label, style))
	}
	b.WriteString(styles.FaintText.Render("X reset"))
	return fitLine(b.String(), m.width)
}

// facetDigit returns the key that clears the named facet.
func facetDigit(name string) string {
	for i, n := range pixabay.FacetNames {
		if n == name {
			return string(rune('1' + i))
		}
	}
	return ""
}

// clearFacetByDigit clears the facet bound to digit if it is set.
func (m *Model) clearFacetByDigit(digit string) tea.Cmd {
	i := int(digit[0] - '1')
	if i < 0 || i >= len(pixabay.FacetNames) {
		return nil
	}
	name := pixabay.FacetNames[i]
	if _, ok := m.controller.Facets()[name]; !ok {
		return nil
	}
	return m.startFetch(m.controller.ClearFacet(name))
}
