package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lens/internal/pixabay"
)

// card is one placed image in the masonry layout.
type card struct {
	index  int // position in the feed
	column int
	top    int
	height int
}

func (c card) bottom() int { return c.top + c.height }

func (c card) center() int { return c.top + c.height/2 }

// masonry is the placement of every feed item into columns. Each card goes
// into the currently shortest column, ties going to the leftmost one.
type masonry struct {
	columns  int
	colWidth int
	cards    []card  // indexed like the feed
	byColumn [][]int // feed indices per column, top to bottom
	height   int     // tallest column, in rows
}

// columnsFor picks the column count for a terminal width. A positive pref
// wins as long as every column keeps a usable width.
func columnsFor(width, pref int) int {
	if pref > 0 {
		limit := maxInt(1, (width+LayoutColumnGap)/(12+LayoutColumnGap))
		return clampInt(pref, 1, limit)
	}
	cols := (width + LayoutColumnGap) / (LayoutMinCardWidth + LayoutColumnGap)
	return clampInt(cols, 1, LayoutMaxAutoColumns)
}

// cardHeight returns the rows a card of the given outer width needs. The
// preview area follows the image's height/width ratio; terminal cells are
// about twice as tall as they are wide.
func cardHeight(colWidth int, aspect float64) int {
	inner := maxInt(1, colWidth-2)
	art := int(math.Round(float64(inner) * aspect / 2))
	return 2 + CardTextRows + clampInt(art, 1, CardMaxArtRows)
}

func layoutMasonry(items []pixabay.Image, width, pref int) masonry {
	cols := columnsFor(width, pref)
	colWidth := maxInt(6, (width-(cols-1)*LayoutColumnGap)/cols)

	g := masonry{
		columns:  cols,
		colWidth: colWidth,
		cards:    make([]card, len(items)),
		byColumn: make([][]int, cols),
	}
	heights := make([]int, cols)
	for i, img := range items {
		col := 0
		for c := 1; c < cols; c++ {
			if heights[c] < heights[col] {
				col = c
			}
		}
		h := cardHeight(colWidth, img.AspectRatio())
		g.cards[i] = card{index: i, column: col, top: heights[col], height: h}
		g.byColumn[col] = append(g.byColumn[col], i)
		heights[col] += h
	}
	for _, h := range heights {
		g.height = maxInt(g.height, h)
	}
	return g
}

func (g masonry) valid(sel int) bool {
	return sel >= 0 && sel < len(g.cards)
}

// positionInColumn returns where sel sits within its column.
func (g masonry) positionInColumn(sel int) int {
	for pos, idx := range g.byColumn[g.cards[sel].column] {
		if idx == sel {
			return pos
		}
	}
	return -1
}

// vertical moves delta cards up or down within the selected column. It
// reports false when the move would leave the column.
func (g masonry) vertical(sel, delta int) (int, bool) {
	if !g.valid(sel) {
		return sel, false
	}
	column := g.byColumn[g.cards[sel].column]
	pos := g.positionInColumn(sel) + delta
	if pos < 0 || pos >= len(column) {
		return sel, false
	}
	return column[pos], true
}

// horizontal jumps to the card in the neighbouring column whose center is
// closest to the selected card's center.
func (g masonry) horizontal(sel, delta int) int {
	if !g.valid(sel) {
		return sel
	}
	from := g.cards[sel]
	for col := from.column + delta; col >= 0 && col < g.columns; col += delta {
		if idx := g.nearestInColumn(col, from.center()); idx >= 0 {
			return idx
		}
	}
	return sel
}

// nearestInColumn returns the card in col closest to row, or -1 when the
// column is empty.
func (g masonry) nearestInColumn(col, row int) int {
	best, bestDist := -1, math.MaxInt
	for _, idx := range g.byColumn[col] {
		c := g.cards[idx]
		dist := 0
		switch {
		case row < c.top:
			dist = c.top - row
		case row >= c.bottom():
			dist = row - c.bottom() + 1
		}
		if dist < bestDist {
			best, bestDist = idx, dist
		}
	}
	return best
}

// last returns the card that ends lowest.
func (g masonry) last() int {
	best := -1
	for i, c := range g.cards {
		if best < 0 || c.bottom() >= g.cards[best].bottom() {
			best = i
		}
	}
	return best
}

func (g masonry) maxScroll(viewH int) int {
	return maxInt(0, g.height-viewH)
}

func (g masonry) clampScroll(top, viewH int) int {
	return clampInt(top, 0, g.maxScroll(viewH))
}

// follow adjusts top so the selected card is visible.
func (g masonry) follow(sel, top, viewH int) int {
	if !g.valid(sel) {
		return g.clampScroll(top, viewH)
	}
	c := g.cards[sel]
	switch {
	case c.top < top:
		top = c.top
	case c.bottom() > top+viewH:
		top = minInt(c.top, c.bottom()-viewH)
	}
	return g.clampScroll(top, viewH)
}

// offsetFromBottom is the number of content rows below the viewport.
// Content shorter than the viewport gives a negative offset.
func (g masonry) offsetFromBottom(top, viewH int) float64 {
	return float64(g.height - (top + viewH))
}

// moveSelection applies a navigation key to the grid. It returns false when
// the key is not a grid movement.
func (m *Model) moveSelection(msgKey string) bool {
	g := m.layout
	if len(g.cards) == 0 {
		return false
	}
	viewH := m.gridHeight()
	sel := clampInt(m.selected, 0, len(g.cards)-1)

	switch msgKey {
	case "up":
		if next, ok := g.vertical(sel, -1); ok {
			sel = next
		} else {
			m.scrollTop = 0
		}
	case "down":
		if next, ok := g.vertical(sel, 1); ok {
			sel = next
		} else {
			// Bottom of the column: reveal the rest of the content.
			m.selected = sel
			m.scrollTop = g.maxScroll(viewH)
			return true
		}
	case "left":
		sel = g.horizontal(sel, -1)
	case "right":
		sel = g.horizontal(sel, 1)
	case "top":
		sel = 0
		m.scrollTop = 0
	case "bottom":
		sel = g.last()
		m.selected = sel
		m.scrollTop = g.maxScroll(viewH)
		return true
	case "pageup", "pagedown", "halfup", "halfdown":
		rows := viewH
		if strings.HasPrefix(msgKey, "half") {
			rows = maxInt(1, viewH/2)
		}
		if strings.HasSuffix(msgKey, "up") {
			rows = -rows
		}
		c := g.cards[sel]
		if idx := g.nearestInColumn(c.column, c.center()+rows); idx >= 0 {
			sel = idx
		}
		m.scrollTop = g.clampScroll(m.scrollTop+rows, viewH)
	default:
		return false
	}

	m.selected = sel
	m.scrollTop = g.follow(sel, m.scrollTop, viewH)
	return true
}

// renderGrid renders the visible slice of the masonry grid.
func (m Model) renderGrid(height int) string {
	styles := m.theme.Styles()
	if len(m.snapshot.Items) == 0 {
		return m.renderEmptyGrid(styles, height)
	}

	g := m.layout
	blank := strings.Repeat(" ", g.colWidth)
	columns := make([][]string, g.columns)
	for col := range columns {
		lines := make([]string, height)
		for i := range lines {
			lines[i] = blank
		}
		columns[col] = lines

		for _, idx := range g.byColumn[col] {
			c := g.cards[idx]
			if c.bottom() <= m.scrollTop {
				continue
			}
			if c.top >= m.scrollTop+height {
				break
			}
			for i, line := range m.renderCard(m.snapshot.Items[idx], c, idx == m.selected) {
				if y := c.top + i - m.scrollTop; y >= 0 && y < height {
					lines[y] = line
				}
			}
		}
	}

	gap := strings.Repeat(" ", LayoutColumnGap)
	rows := make([]string, height)
	for y := range rows {
		parts := make([]string, g.columns)
		for col := range columns {
			parts[col] = columns[col][y]
		}
		rows[y] = fitLine(strings.Join(parts, gap), m.width)
	}
	return strings.Join(rows, "\n")
}

// renderCard renders one card as exactly c.height lines of the column width.
func (m Model) renderCard(img pixabay.Image, c card, selected bool) []string {
	styles := m.theme.Styles()
	width := m.layout.colWidth
	inner := maxInt(1, width-2)
	artRows := maxInt(1, c.height-2-CardTextRows)

	artBg := m.theme.SurfaceAlt
	if selected {
		artBg = m.theme.SelectionBg
	}
	label := fmt.Sprintf("%d×%d", img.ImageWidth, img.ImageHeight)
	if img.Type != "" && inner >= len(label)+len(img.Type)+3 {
		label = img.Type + " · " + label
	}
	art := lipgloss.NewStyle().
		Background(lipgloss.Color(artBg)).
		Foreground(lipgloss.Color(m.theme.Faint)).
		Width(inner).
		Height(artRows).
		Align(lipgloss.Center, lipgloss.Center).
		Render(truncate(label, inner))

	tags := strings.Join(img.TagList(), ", ")
	if tags == "" {
		tags = fmt.Sprintf("#%d", img.ID)
	}
	tagLine := styles.Text.Render(truncate(tags, inner))

	stats := styles.MutedText.Render(fmt.Sprintf("♥ %s  ↓ %s", formatCount(img.Likes), formatCount(img.Downloads)))
	if m.downloaded[img.ID] {
		mark := styles.SuccessText.Render("✓")
		stats = fitLine(stats, maxInt(0, inner-1)) + mark
	}

	body := lipgloss.JoinVertical(lipgloss.Left, art, fitLine(tagLine, inner), fitLine(stats, inner))
	box := styles.Card
	if selected {
		box = styles.CardSelected
	}
	lines := strings.Split(box.Width(inner).Render(body), "\n")

	out := make([]string, c.height)
	for i := range out {
		if i < len(lines) {
			out[i] = fitLine(lines[i], width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return out
}

func (m Model) renderEmptyGrid(styles Styles, height int) string {
	var msg string
	switch {
	case m.snapshot.Fetching():
		msg = styles.MutedText.Render(m.spinner.View() + " Loading images...")
	case m.snapshot.LastError != nil:
		msg = styles.DangerText.Render("Could not load images") + "\n" +
			styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), maxInt(20, m.width-10))) + "\n\n" +
			styles.FaintText.Render("Press r to retry")
	case m.snapshot.HasPage:
		msg = styles.MutedText.Render("No images match the current search and filters")
		if len(m.controller.Facets()) > 0 {
			msg += "\n" + styles.FaintText.Render("Press X to reset filters")
		}
	default:
		msg = styles.FaintText.Render("Nothing loaded yet")
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
}
