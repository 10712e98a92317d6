package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lens/internal/filter"
	"github.com/five82/lens/internal/pixabay"
)

// filterAction is how the filter modal was closed.
type filterAction int

const (
	filterCancel filterAction = iota
	filterApply
	filterReset
)

// filterModal edits a copy of the facet selection. Nothing reaches the
// controller until the modal closes with filterApply or filterReset.
type filterModal struct {
	selection filter.Selection
	section   int
	cursors   []int
	action    filterAction
}

var _ Modal = (*filterModal)(nil)

func newFilterModal(current filter.Selection) *filterModal {
	fm := &filterModal{
		selection: current.Clone(),
		cursors:   make([]int, len(pixabay.FacetNames)),
	}
	for i, name := range pixabay.FacetNames {
		for j, v := range pixabay.FacetValues[name] {
			if v == fm.selection[name] {
				fm.cursors[i] = j
			}
		}
	}
	return fm
}

// Update implements Modal.
func (f *filterModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}
	sections := len(pixabay.FacetNames)
	values := pixabay.FacetValues[pixabay.FacetNames[f.section]]

	switch {
	case key.Matches(keyMsg, keys.Escape):
		f.action = filterCancel
		return f, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		f.action = filterApply
		return f, nil, true
	case key.Matches(keyMsg, keys.Refresh), key.Matches(keyMsg, keys.ResetFilters):
		f.action = filterReset
		return f, nil, true
	case key.Matches(keyMsg, keys.Up):
		f.section = (f.section - 1 + sections) % sections
	case key.Matches(keyMsg, keys.Down), keyMsg.String() == "tab":
		f.section = (f.section + 1) % sections
	case key.Matches(keyMsg, keys.Left):
		f.cursors[f.section] = (f.cursors[f.section] - 1 + len(values)) % len(values)
	case key.Matches(keyMsg, keys.Right):
		f.cursors[f.section] = (f.cursors[f.section] + 1) % len(values)
	case key.Matches(keyMsg, keys.Toggle):
		f.toggle()
	}
	return f, nil, false
}

// toggle selects the value under the cursor, or clears the facet when that
// value is already selected.
func (f *filterModal) toggle() {
	name := pixabay.FacetNames[f.section]
	value := pixabay.FacetValues[name][f.cursors[f.section]]
	if f.selection[name] == value {
		f.selection.Set(name, "")
		return
	}
	f.selection.Set(name, value)
}

// View implements Modal.
func (f *filterModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	modalWidth := 50

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filters"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", modalWidth-6)))
	b.WriteString("\n\n")

	for i, name := range pixabay.FacetNames {
		title := styles.MutedText.Render(titleCase(name))
		if i == f.section {
			title = styles.AccentText.Bold(true).Render("▸ " + titleCase(name))
		}
		b.WriteString(title)
		b.WriteString("\n")

		var row []string
		for j, v := range pixabay.FacetValues[name] {
			label := v
			style := styles.MutedText
			if f.selection[name] == v {
				label = "● " + v
				style = styles.SuccessText
				if name == pixabay.FacetColors {
					style = styles.SwatchStyle(v)
				}
			}
			if i == f.section && j == f.cursors[i] {
				style = styles.Selected.Bold(true)
			}
			row = append(row, style.Render(label))
		}
		b.WriteString(wrapChips(row, modalWidth-6))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("up/down section  left/right value  space toggle"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter apply  r reset all  esc cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// wrapChips joins rendered chips with single spaces, breaking lines at width.
func wrapChips(chips []string, width int) string {
	var lines []string
	var line string
	for _, chip := range chips {
		switch {
		case line == "":
			line = chip
		case lipgloss.Width(line)+1+lipgloss.Width(chip) > width:
			lines = append(lines, line)
			line = chip
		default:
			line += " " + chip
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
