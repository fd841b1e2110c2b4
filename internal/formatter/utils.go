package formatter

import (
	"fmt"

	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// severity buckets drive emoji and wording for per-image counts
const severeCount = 4

// getCountEmoji returns the indicator for a per-image pothole count
func getCountEmoji(count int) string {
	opts := termfmt.DefaultOptions()
	switch {
	case count == 0:
		return termfmt.GetEmoji("success", opts)
	case count >= severeCount:
		return termfmt.GetEmoji("error", opts)
	default:
		return termfmt.GetEmoji("warning", opts)
	}
}

// severityLabel returns the condition wording for a per-image count
func severityLabel(count int) string {
	switch {
	case count == 0:
		return "clear"
	case count >= severeCount:
		return "severe"
	default:
		return "damaged"
	}
}

// countShare returns the image's share of the report total, in [0, 1]
func countShare(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// averageCount returns the mean pothole count per image
func averageCount(report *Report) float64 {
	if len(report.Results) == 0 {
		return 0
	}
	return float64(report.TotalCount) / float64(len(report.Results))
}

// worstResult returns the result with the highest count, or -1 when empty
func worstResult(report *Report) int {
	worst := -1
	for i, r := range report.Results {
		if worst < 0 || r.Count > report.Results[worst].Count {
			worst = i
		}
	}
	return worst
}
