package formatter

import (
	"encoding/json"
	"time"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &JSONOutput{
		Summary: createSummary(report),
		Images:  createImageOutputs(report),
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the machine-readable report structure
type JSONOutput struct {
	Summary *SummaryOutput `json:"summary"`
	Images  []*ImageOutput `json:"images"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	ImageCount    int       `json:"image_count"`
	TotalPotholes int       `json:"total_potholes"`
	AveragePerImg float64   `json:"average_per_image"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// ImageOutput represents one analyzed image
type ImageOutput struct {
	Filename     string  `json:"filename"`
	PotholeCount int     `json:"pothole_count"`
	Severity     string  `json:"severity"`
	BatchShare   float64 `json:"batch_share"`
	HasOverlay   bool    `json:"has_overlay"`
}

func createSummary(report *Report) *SummaryOutput {
	return &SummaryOutput{
		ImageCount:    len(report.Results),
		TotalPotholes: report.TotalCount,
		AveragePerImg: averageCount(report),
		GeneratedAt:   report.GeneratedAt,
	}
}

func createImageOutputs(report *Report) []*ImageOutput {
	outputs := make([]*ImageOutput, 0, len(report.Results))

	for _, r := range report.Results {
		outputs = append(outputs, &ImageOutput{
			Filename:     r.OriginalFilename,
			PotholeCount: r.Count,
			Severity:     severityLabel(r.Count),
			BatchShare:   countShare(r.Count, report.TotalCount),
			HasOverlay:   r.ImageDataURI != "",
		})
	}

	return outputs
}
