package formatter

import (
	"fmt"
	"time"

	"github.com/roadwatch/potholectl/internal/session"
)

// Report is the formatter input: one detection pass over a batch of images
type Report struct {
	Results     []session.Result
	TotalCount  int
	GeneratedAt time.Time
}

// NewReport builds a report from the current detection results
func NewReport(results []session.Result, totalCount int) *Report {
	return &Report{
		Results:     results,
		TotalCount:  totalCount,
		GeneratedAt: time.Now(),
	}
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// New returns the formatter for the named output format
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
