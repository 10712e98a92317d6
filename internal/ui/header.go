package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title line with the feed status.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	snap := m.snapshot
	parts := []string{bg.Render("lens", styles.Logo)}

	label := snap.Query.Label()
	if label == "" {
		label = "Editor's choice"
	}
	parts = append(parts, bg.Render(truncate(label, ternaryInt(compact, 30, 60)), styles.Text.Bold(true)))

	switch {
	case snap.HasPage:
		count := fmt.Sprintf("%d of %s", len(snap.Items), formatCount(snap.Total))
		parts = append(parts, bg.Pair(count, styles.Text, "images", styles.MutedText))
		parts = append(parts, bg.Pair("page", styles.MutedText, fmt.Sprintf("%d", snap.Query.Page), styles.Text))
	case !snap.Fetching() && snap.LastError == nil:
		parts = append(parts, bg.Render("idle", styles.FaintText))
	}

	if snap.Fetching() {
		parts = append(parts, bg.Pair(m.spinner.View(), styles.AccentText, "loading", styles.MutedText))
	} else if snap.EndOfResults && snap.HasPage && len(snap.Items) > 0 {
		parts = append(parts, bg.Render("end of results", styles.FaintText))
	}

	if snap.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	}

	if snap.LastError != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		parts = append(parts,
			bg.Pair("ERROR", styles.DangerText.Bold(true), truncate(snap.LastError.Error(), maxErr), styles.DangerText),
		)
	}

	return styles.Header.Width(m.width).MaxHeight(1).Render(bg.Join(parts, sep))
}

// keyHint is one key hint in the command bar.
type keyHint struct {
	key  string
	desc string
}

// renderCommandBar renders key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var cmds []keyHint
	switch {
	case m.modal != nil:
		cmds = []keyHint{{"↑↓", "Section"}, {"←→", "Value"}, {"Space", "Toggle"}, {"Enter", "Apply"}, {"r", "Reset"}, {"Esc", "Cancel"}}
	case m.searchInput.Focused():
		cmds = []keyHint{{"Enter", "Search now"}, {"Esc", "Done"}}
	case m.categoryFocused:
		cmds = []keyHint{{"←→", "Move"}, {"Enter", "Toggle"}, {"Esc", "Done"}}
	case m.currentView == ViewDetail:
		cmds = []keyHint{{"d", "Download"}, {"s", "Share"}, {"o", "Open page"}, {"q", "Back"}}
	case m.currentView == ViewDownloads, m.currentView == ViewActivity:
		cmds = []keyHint{{"j/k", "Scroll"}, {"r", "Reload"}, {"q", "Back"}}
	default:
		cmds = []keyHint{{"/", "Search"}, {"c", "Categories"}, {"f", "Filters"}, {"Enter", "Open"}, {"d", "Download"}, {"D", "Downloads"}, {"L", "Activity"}}
	}
	cmds = append(cmds, keyHint{"h", "Help"}, keyHint{"e", "Quit"})

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(cmds))
	for _, c := range cmds {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	return styles.Footer.Width(m.width).MaxHeight(1).Render(bg.Join(segments, "  "))
}

// renderStatusLine renders the transient notification, if any.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	if m.status == "" {
		return lipgloss.NewStyle().Width(m.width).Render("")
	}
	style := styles.SuccessText
	prefix := "✓ "
	if m.statusIsError {
		style = styles.DangerText
		prefix = "! "
	}
	return fitLine(" "+style.Render(prefix+truncate(m.status, maxInt(10, m.width-4))), m.width)
}
