package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roadwatch/potholectl/internal/api"
	"github.com/roadwatch/potholectl/internal/emoji"
)

// View renders the current view
func (m *Model) View() string {
	if !m.ready {
		return lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true).Render("Starting potholectl...")
	}

	if m.quitting {
		goodbye := lipgloss.NewStyle().
			Foreground(m.successColor).
			Bold(true).
			Render("Thanks for reporting. Safer roads ahead!")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, goodbye)
	}

	switch m.view {
	case ViewCollect:
		return m.renderCollectView()
	case ViewResults:
		return m.renderResultsView()
	case ViewCarousel:
		return m.renderCarouselView()
	case ViewCompose:
		return m.renderComposeView()
	case ViewDispatch:
		return m.renderDispatchView()
	case ViewHelp:
		return m.renderHelpView()
	default:
		return m.renderCollectView()
	}
}

func (m *Model) renderCollectView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("road") + " potholectl")

	summary := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(m.sess.Summary())

	var workingLine string
	if m.sess.Busy(api.OpDetect) {
		spinner := lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true).Render(spinnerChars[m.spinnerFrame])
		workingLine = fmt.Sprintf("%s Detecting potholes%s", spinner, strings.Repeat(".", (m.tick/5)%4))
	}

	keys := []string{
		emoji.GetEmoji("detect") + " d/Enter  Detect staged images",
		emoji.GetEmoji("carousel") + " r        View last results",
		emoji.GetEmoji("compose") + " c        Compose complaint",
		emoji.GetEmoji("clear") + " x        Clear session",
		emoji.GetEmoji("help") + " h        Help",
		emoji.GetEmoji("door") + " q        Quit",
	}
	if m.drops != nil {
		keys = append([]string{emoji.GetEmoji("drop") + " Drop folder active: " + m.cfg.Watch.Dir}, keys...)
	}

	keyList := make([]string, 0, len(keys))
	for _, k := range keys {
		keyList = append(keyList, lipgloss.NewStyle().Foreground(m.secondaryColor).Render(k))
	}

	parts := []string{title, "", summary, ""}
	if workingLine != "" {
		parts = append(parts, workingLine, "")
	}
	parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, keyList...))
	if m.notice != "" {
		parts = append(parts, "", m.renderNotice())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return m.renderFramed(content, 70)
}

func (m *Model) renderResultsView() string {
	results := m.sess.Results()

	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(fmt.Sprintf("%s Detection Results - %d potholes total", emoji.GetEmoji("pothole"), m.sess.TotalCount()))

	if len(results) == 0 {
		empty := lipgloss.NewStyle().Foreground(m.secondaryColor).Render("No results yet. Press Esc and detect first.")
		return m.renderFramed(lipgloss.JoinVertical(lipgloss.Left, title, "", empty), 70)
	}

	rows := make([]string, 0, len(results))
	for i, r := range results {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(m.countColor(r.Count))
		if i == m.selectedIndex {
			prefix = "▶ "
			style = lipgloss.NewStyle().Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s - %d potholes", prefix, r.OriginalFilename, r.Count)))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("↑↓ Navigate • Enter Open image • s Save image • c Compose • Esc Back")

	parts := []string{title, "", lipgloss.JoinVertical(lipgloss.Left, rows...), "", instructions}
	if m.notice != "" {
		parts = append(parts, "", m.renderNotice())
	}

	return m.renderFramed(lipgloss.JoinVertical(lipgloss.Left, parts...), 80)
}

func (m *Model) renderCarouselView() string {
	result, ok := m.sess.CurrentResult()
	if !ok {
		return m.renderResultsView()
	}

	idx, _ := m.sess.CarouselIndex()
	total := len(m.sess.Results())

	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(fmt.Sprintf("%s %s (%d/%d)", emoji.GetEmoji("carousel"), result.OriginalFilename, idx+1, total))

	count := lipgloss.NewStyle().
		Foreground(m.countColor(result.Count)).
		Bold(true).
		Render(fmt.Sprintf("%d potholes detected", result.Count))

	// terminals cannot show the annotated image; report its presence and size
	payload := "No annotated image payload"
	if result.ImageDataURI != "" {
		payload = fmt.Sprintf("Annotated image ready (%d KiB encoded) - press s to save", len(result.ImageDataURI)/1024)
	}
	payloadLine := lipgloss.NewStyle().Foreground(m.secondaryColor).Render(payload)

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("←/→ Previous/Next (wraps around) • s Save image • Esc Back")

	parts := []string{title, "", count, "", payloadLine, "", instructions}
	if m.notice != "" {
		parts = append(parts, "", m.renderNotice())
	}

	return m.renderFramed(lipgloss.JoinVertical(lipgloss.Left, parts...), 70)
}

func (m *Model) renderComposeView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("compose") + " Compose Complaint")

	labels := []string{"Road", "Area", "City", "Count", "Details"}
	formRows := make([]string, 0, composeFieldCount)
	for i, input := range m.composeInputs {
		label := lipgloss.NewStyle().Foreground(m.secondaryColor).Width(9).Render(labels[i])
		formRows = append(formRows, lipgloss.JoinHorizontal(lipgloss.Top, label, input.View()))
	}

	var workingLine string
	if m.sess.Busy(api.OpComplaint) {
		spinner := lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true).Render(spinnerChars[m.spinnerFrame])
		workingLine = spinner + " Generating complaint..."
	}

	complaint := m.sess.ComplaintText()
	complaintBlock := ""
	if complaint != "" {
		complaintBlock = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(m.secondaryColor).
			Padding(0, 1).
			Width(min(m.width-10, 76)).
			Render(truncateLines(complaint, 12))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Tab Next field • Enter Generate • Ctrl+P Export PDF • Ctrl+E Email • Esc Back")

	parts := []string{title, "", lipgloss.JoinVertical(lipgloss.Left, formRows...)}
	if workingLine != "" {
		parts = append(parts, "", workingLine)
	}
	if complaintBlock != "" {
		parts = append(parts, "", complaintBlock)
	}
	parts = append(parts, "", instructions)
	if m.notice != "" {
		parts = append(parts, "", m.renderNotice())
	}

	return m.renderFramed(lipgloss.JoinVertical(lipgloss.Left, parts...), 84)
}

func (m *Model) renderDispatchView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("email") + " Dispatch Complaint")

	labels := []string{"To", "Subject"}
	formRows := make([]string, 0, dispatchFieldCount)
	for i, input := range m.dispatchInputs {
		label := lipgloss.NewStyle().Foreground(m.secondaryColor).Width(9).Render(labels[i])
		formRows = append(formRows, lipgloss.JoinHorizontal(lipgloss.Top, label, input.View()))
	}

	attachments := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(fmt.Sprintf("%s %d annotated images will be attached", emoji.GetEmoji("upload"), len(m.sess.Results())))

	var workingLine string
	if m.sess.Busy(api.OpDispatch) {
		spinner := lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true).Render(spinnerChars[m.spinnerFrame])
		workingLine = spinner + " Sending email..."
	}

	body := m.sess.Draft().Body
	if body == "" {
		body = m.sess.ComplaintText()
	}
	bodyBlock := ""
	if body != "" {
		bodyBlock = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(m.secondaryColor).
			Padding(0, 1).
			Width(min(m.width-10, 76)).
			Render(truncateLines(body, 8))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Tab Next field • Enter Send • Ctrl+P Export PDF • Esc Back")

	parts := []string{title, "", lipgloss.JoinVertical(lipgloss.Left, formRows...), "", attachments}
	if workingLine != "" {
		parts = append(parts, "", workingLine)
	}
	if bodyBlock != "" {
		parts = append(parts, "", bodyBlock)
	}
	parts = append(parts, "", instructions)
	if m.notice != "" {
		parts = append(parts, "", m.renderNotice())
	}

	return m.renderFramed(lipgloss.JoinVertical(lipgloss.Left, parts...), 84)
}

func (m *Model) renderHelpView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("help") + " potholectl Help")

	sections := []string{
		"Workflow:",
		"  1. Stage road photos (arguments or drop folder)",
		"  2. d    Detect potholes in the staged batch",
		"  3. Enter    Inspect annotated results, s to save",
		"  4. c    Compose a complaint from the findings",
		"  5. Ctrl+P    Export the complaint as PDF",
		"  6. Ctrl+E    Email it with images attached",
		"",
		"Navigation:",
		"  ↑↓ or j/k    Move in lists",
		"  ←/→    Cycle through result images (wraps)",
		"  Esc    Go back",
		"",
		"Exit:",
		"  q    Quit",
		"  Ctrl+C    Force quit",
	}

	var helpList []string
	for _, line := range sections {
		if strings.HasSuffix(line, ":") {
			helpList = append(helpList, lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true).Render(line))
		} else {
			helpList = append(helpList, lipgloss.NewStyle().Foreground(m.secondaryColor).Render(line))
		}
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.warningColor).
		Bold(true).
		Render("Press Esc to go back")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", lipgloss.JoinVertical(lipgloss.Left, helpList...), "", instructions)
	return m.renderFramed(content, 70)
}

func (m *Model) renderNotice() string {
	return lipgloss.NewStyle().Foreground(m.warningColor).Render(m.notice)
}

func (m *Model) renderFramed(content string, width int) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, width))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) countColor(count int) lipgloss.AdaptiveColor {
	switch {
	case count == 0:
		return m.successColor
	case count >= 4:
		return m.errorColor
	default:
		return m.warningColor
	}
}

func truncateLines(text string, maxLines int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n") + "\n..."
}
