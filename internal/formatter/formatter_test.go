package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/roadwatch/potholectl/internal/session"
)

func sampleReport() *Report {
	return NewReport([]session.Result{
		{OriginalFilename: "highway.jpg", Count: 5, ImageDataURI: "data:image/jpeg;base64,aGk="},
		{OriginalFilename: "street.jpg", Count: 2, ImageDataURI: "data:image/jpeg;base64,aG8="},
		{OriginalFilename: "lane.png", Count: 0, ImageDataURI: ""},
	}, 7)
}

func TestNewFactory(t *testing.T) {
	for _, format := range []string{"", "text", "json", "markdown", "md", "csv"} {
		if _, err := New(format, false); err != nil {
			t.Errorf("Expected formatter for %q, got error: %v", format, err)
		}
	}

	if _, err := New("xml", false); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestTerminalFormat(t *testing.T) {
	f := NewTerminal(false)

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "Pothole Detection Summary") {
		t.Error("Expected header in terminal output")
	}
	if !strings.Contains(text, "highway.jpg") {
		t.Error("Expected per-image entries in terminal output")
	}
	if !strings.Contains(text, "Total Potholes") {
		t.Error("Expected statistics tree in terminal output")
	}
}

func TestTerminalFormatEmptyReport(t *testing.T) {
	f := NewTerminal(false)

	out, err := f.Format(NewReport(nil, 0))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(string(out), "No images analyzed") {
		t.Error("Expected empty-batch notice")
	}
}

func TestJSONFormat(t *testing.T) {
	f := NewJSON()

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var parsed JSONOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.TotalPotholes != 7 {
		t.Errorf("Expected total 7, got %d", parsed.Summary.TotalPotholes)
	}
	if len(parsed.Images) != 3 {
		t.Fatalf("Expected 3 image entries, got %d", len(parsed.Images))
	}
	if parsed.Images[0].Severity != "severe" {
		t.Errorf("Expected severe for count 5, got %q", parsed.Images[0].Severity)
	}
	if parsed.Images[2].HasOverlay {
		t.Error("Expected no overlay flag for empty data URI")
	}
}

func TestMarkdownFormat(t *testing.T) {
	f := NewMarkdown()

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "# Pothole Detection Report") {
		t.Error("Expected markdown title")
	}
	if !strings.Contains(text, "| highway.jpg | 5 | severe |") {
		t.Error("Expected image table row")
	}
	if !strings.Contains(text, "░") {
		t.Error("Expected distribution chart")
	}
}

func TestCSVFormat(t *testing.T) {
	f := NewCSV()

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Filename,") {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "highway.jpg,5,severe,") {
		t.Errorf("Unexpected first row: %q", lines[1])
	}
}

func TestSeverityLabel(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "clear"},
		{1, "damaged"},
		{3, "damaged"},
		{4, "severe"},
		{12, "severe"},
	}

	for _, tt := range tests {
		if got := severityLabel(tt.count); got != tt.want {
			t.Errorf("severityLabel(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.n); got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
