package formatter

import (
	"fmt"
	"strings"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Pothole Detection Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, report)

	if len(report.Results) > 0 {
		f.writeImageTable(&b, report)
		f.writeDistributionChart(&b, report)
	}

	return []byte(b.String()), nil
}

// writeSummaryTable writes the batch summary table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	b.WriteString("## Summary\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Images Analyzed | %s |\n", formatNumber(len(report.Results)))
	fmt.Fprintf(b, "| Total Potholes | %s |\n", formatNumber(report.TotalCount))
	fmt.Fprintf(b, "| Average per Image | %.1f |\n\n", averageCount(report))
}

// writeImageTable writes one row per analyzed image
func (f *markdownFormatter) writeImageTable(b *strings.Builder, report *Report) {
	b.WriteString("## Images\n\n")

	b.WriteString("| Image | Potholes | Condition |\n")
	b.WriteString("|-------|----------|-----------|\n")
	for _, r := range report.Results {
		fmt.Fprintf(b, "| %s | %d | %s |\n", r.OriginalFilename, r.Count, severityLabel(r.Count))
	}
	b.WriteString("\n")
}

// writeDistributionChart writes an ASCII chart of counts per image
func (f *markdownFormatter) writeDistributionChart(b *strings.Builder, report *Report) {
	b.WriteString("## Distribution\n\n")

	maxCount := 0
	for _, r := range report.Results {
		if r.Count > maxCount {
			maxCount = r.Count
		}
	}

	b.WriteString("```\n")
	for _, r := range report.Results {
		barLength := 0
		if maxCount > 0 {
			barLength = int(float64(r.Count) / float64(maxCount) * 20)
		}

		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 20-barLength)
		fmt.Fprintf(b, "%-20s │%s│ %d\n", truncateName(r.OriginalFilename, 20), bar, r.Count)
	}
	b.WriteString("```\n")
}

func truncateName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	return name[:limit-3] + "..."
}
