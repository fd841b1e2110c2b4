package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeStatistics(&b, report)

	if len(report.Results) > 0 {
		f.writePerImage(&b, report)
	} else {
		b.WriteString("No images analyzed.\n")
	}

	return []byte(b.String()), nil
}

// writeHeader writes a header with box drawing
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Pothole Detection Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeStatistics writes batch statistics with tree-style formatting
func (f *terminalFormatter) writeStatistics(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	items := []termfmt.TreeItem{
		{Label: "Images Analyzed", Value: formatNumber(len(report.Results))},
		{Label: "Total Potholes", Value: formatNumber(report.TotalCount)},
		{Label: "Average per Image", Value: fmt.Sprintf("%.1f", averageCount(report))},
	}

	if worst := worstResult(report); worst >= 0 && report.Results[worst].Count > 0 {
		r := report.Results[worst]
		items = append(items, termfmt.TreeItem{
			Label: "Worst Image",
			Value: fmt.Sprintf("%s (%d)", r.OriginalFilename, r.Count),
			Last:  true,
		})
	} else {
		items = append(items, termfmt.TreeItem{Label: "Worst Image", Value: "N/A", Last: true})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writePerImage writes one tree entry per analyzed image with a share bar
func (f *terminalFormatter) writePerImage(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("info", f.opts)
	b.WriteString(symbol + " Per Image\n")

	items := make([]termfmt.TreeItem, 0, len(report.Results))
	for i, r := range report.Results {
		emoji := getCountEmoji(r.Count)
		shareBar := termfmt.CreateConfidenceBar(countShare(r.Count, report.TotalCount), f.opts)

		item := termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s", emoji, r.OriginalFilename),
			Value: fmt.Sprintf("%d potholes (%s)", r.Count, severityLabel(r.Count)),
			Children: []termfmt.TreeItem{
				{Label: shareBar + " share of batch", Value: ""},
			},
			Last: i == len(report.Results)-1,
		}
		items = append(items, item)
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n")
}
