package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders segments of a chrome line on one background color.
// Lipgloss resets the background after every styled segment, so spaces
// between segments must carry the background themselves.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle returns a BgStyle for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render styles text word by word so the gaps keep the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns one styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(b.space, n)
}

// Join joins rendered parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// Pair renders a value followed by its unit, as in "25 images" or "page 2".
func (b BgStyle) Pair(first string, firstStyle lipgloss.Style, second string, secondStyle lipgloss.Style) string {
	return b.Render(first, firstStyle) + b.space + b.Render(second, secondStyle)
}

// Line renders content as one row of exactly width cells.
func (b BgStyle) Line(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).MaxHeight(1).Padding(0, 1).Render(content)
}

// Chip renders a padded label, such as an active filter, followed by a gap.
func (b BgStyle) Chip(label string, style lipgloss.Style) string {
	return style.Padding(0, 1).Render(label) + b.space
}
