package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lens/internal/download"
	"github.com/five82/lens/internal/pixabay"
)

type downloadDoneMsg struct {
	image  pixabay.Image
	result download.Result
	err    error
}

type shareDoneMsg struct {
	result download.ShareResult
	err    error
}

type openDoneMsg struct {
	url string
	err error
}

// openDetail shows the selected image.
func (m *Model) openDetail() tea.Cmd {
	img, ok := m.selectedImage()
	if !ok {
		return nil
	}
	m.detailImage = img
	m.currentView = ViewDetail
	m.detailViewport = viewport.New(maxInt(10, m.width-2), m.contentHeight())
	m.updateDetailViewport()
	if m.downloaded[img.ID] || m.library == nil {
		return nil
	}
	return checkDownloadedCmd(m.ctx, m.library, img.ID)
}

func (m *Model) updateDetailViewport() {
	if m.currentView != ViewDetail {
		return
	}
	m.detailViewport.Width = maxInt(10, m.width-2)
	m.detailViewport.Height = m.contentHeight()
	m.detailViewport.SetContent(m.renderDetailContent())
}

// handleDetailKey processes input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewGrid
		return m, nil
	case key.Matches(msg, m.keys.Download):
		if m.detailBusy {
			return m, nil
		}
		m.detailBusy = true
		m.updateDetailViewport()
		return m, tea.Batch(m.spinner.Tick, downloadCmd(m.ctx, m.downloader, m.detailImage))
	case key.Matches(msg, m.keys.Share):
		return m, shareCmd(m.downloader, m.detailImage)
	case key.Matches(msg, m.keys.OpenPage):
		return m, openCmd(m.downloader, m.detailImage.PageURL)
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	m.detailBusy = false
	if msg.err != nil {
		m.logger.Warn("download failed", "image_id", msg.image.ID, "error", msg.err)
		cmd := m.notifyError("Download failed: " + msg.err.Error())
		m.updateDetailViewport()
		return m, cmd
	}
	m.downloaded[msg.image.ID] = true
	text := "Saved " + truncateMiddle(msg.result.Path, 60) + " (" + formatBytes(msg.result.Bytes) + ")"
	if msg.result.Mode == download.ModeBrowser {
		text = "Opened image in browser"
	}
	cmd := m.notify(text)
	m.updateDetailViewport()
	return m, cmd
}

func (m Model) handleShareDone(msg shareDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.notifyError("Share failed: " + msg.err.Error())
		return m, cmd
	}
	if msg.result.Copied {
		cmd := m.notify("Link copied to clipboard")
		return m, cmd
	}
	cmd := m.notify("Clipboard unavailable, opened the page instead")
	return m, cmd
}

func (m Model) handleOpenDone(msg openDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.notifyError("Open failed: " + msg.err.Error())
		return m, cmd
	}
	cmd := m.notify("Opened " + truncateMiddle(msg.url, 60))
	return m, cmd
}

func downloadCmd(ctx context.Context, d *download.Downloader, img pixabay.Image) tea.Cmd {
	return func() tea.Msg {
		res, err := d.Save(ctx, img)
		return downloadDoneMsg{image: img, result: res, err: err}
	}
}

func shareCmd(d *download.Downloader, img pixabay.Image) tea.Cmd {
	return func() tea.Msg {
		res, err := d.Share(img)
		return shareDoneMsg{result: res, err: err}
	}
}

func openCmd(d *download.Downloader, url string) tea.Cmd {
	return func() tea.Msg {
		return openDoneMsg{url: url, err: d.Open(url)}
	}
}

// renderDetailContent renders metadata, sizes and URLs for the open image.
func (m Model) renderDetailContent() string {
	styles := m.theme.Styles()
	img := m.detailImage
	labelWidth := 12
	valueWidth := maxInt(20, m.width-labelWidth-6)

	row := func(label, value string, style lipgloss.Style) string {
		if strings.TrimSpace(value) == "" {
			value = "-"
			style = styles.FaintText
		}
		return styles.MutedText.Render(padRight(label, labelWidth)) + style.Render(truncateMiddle(value, valueWidth))
	}
	section := func(title string) string {
		return styles.AccentText.Bold(true).Render(title) + "\n" +
			styles.FaintText.Render(strings.Repeat("─", minInt(40, maxInt(10, m.width-4))))
	}

	var b strings.Builder
	title := fmt.Sprintf("Image #%d", img.ID)
	b.WriteString(styles.Text.Bold(true).Render(title))
	switch {
	case m.detailBusy:
		b.WriteString("  " + styles.WarningText.Render(m.spinner.View()+" downloading"))
	case m.downloaded[img.ID]:
		b.WriteString("  " + styles.SuccessText.Render("✓ downloaded"))
	}
	b.WriteString("\n")
	if tags := img.TagList(); len(tags) > 0 {
		var chips []string
		for _, tag := range tags {
			chips = append(chips, styles.Selected.Padding(0, 1).Render(tag))
		}
		b.WriteString(wrapChips(chips, maxInt(20, m.width-4)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(section("Details"))
	b.WriteString("\n")
	b.WriteString(row("Type", titleCase(img.Type), styles.Text) + "\n")
	b.WriteString(row("Author", img.User, styles.Text) + "\n")
	b.WriteString(row("Views", formatCount(img.Views), styles.Text) + "\n")
	b.WriteString(row("Downloads", formatCount(img.Downloads), styles.Text) + "\n")
	b.WriteString(row("Likes", formatCount(img.Likes), styles.Text) + "\n")
	b.WriteString(row("Comments", formatCount(img.Comments), styles.Text) + "\n")
	b.WriteString("\n")

	b.WriteString(section("Sizes"))
	b.WriteString("\n")
	b.WriteString(row("Original", fmt.Sprintf("%d × %d", img.ImageWidth, img.ImageHeight), styles.Text) + "\n")
	if img.ImageSize > 0 {
		b.WriteString(row("File size", formatBytes(img.ImageSize), styles.Text) + "\n")
	}
	b.WriteString(row("Preview", fmt.Sprintf("%d × %d", img.PreviewWidth, img.PreviewHeight), styles.Text) + "\n")
	b.WriteString(row("Saves as", img.FileName(), styles.Text) + "\n")
	b.WriteString("\n")

	b.WriteString(section("Links"))
	b.WriteString("\n")
	b.WriteString(row("Page", img.PageURL, styles.InfoText) + "\n")
	b.WriteString(row("Full size", img.FullURL(), styles.InfoText) + "\n")
	b.WriteString(row("Preview", img.PreviewURL, styles.InfoText) + "\n")
	return b.String()
}

// renderDetail renders the detail view.
func (m Model) renderDetail() string {
	return lipgloss.NewStyle().Padding(0, 1).Render(m.detailViewport.View())
}
