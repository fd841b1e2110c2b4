package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// csvFormatter formats per-image results as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Filename",
		"Pothole Count",
		"Severity",
		"Batch Share",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range report.Results {
		record := []string{
			r.OriginalFilename,
			fmt.Sprintf("%d", r.Count),
			severityLabel(r.Count),
			fmt.Sprintf("%.3f", countShare(r.Count, report.TotalCount)),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
