package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveFile(dir, "complaint.pdf", []byte("pdf-bytes"))
	if err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if filepath.Base(path) != "complaint.pdf" {
		t.Errorf("Expected complaint.pdf, got %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Errorf("Saved payload differs: %q", data)
	}
}

func TestSaveFileCollision(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveFile(dir, "result_a.jpg", []byte("one"))
	if err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	second, err := SaveFile(dir, "result_a.jpg", []byte("two"))
	if err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	if first == second {
		t.Fatal("Expected colliding save to pick a new path")
	}
	if filepath.Base(second) != "result_a-1.jpg" {
		t.Errorf("Expected result_a-1.jpg, got %s", filepath.Base(second))
	}

	data, _ := os.ReadFile(first)
	if string(data) != "one" {
		t.Error("Existing export was overwritten")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.jpg", "a.jpg"},
		{"../evil.jpg", "evil.jpg"},
		{"sub/dir/file.png", "file.png"},
		{"", "unnamed"},
		{"..", "unnamed"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
