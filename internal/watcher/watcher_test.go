package watcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"pothole.jpg", true},
		{"pothole.JPG", true},
		{"pothole.jpeg", true},
		{"pothole.png", true},
		{"/drop/dir/pothole.png", true},
		{"notes.txt", false},
		{"report.pdf", false},
		{"archive.jpg.tar", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNewRejectsBadDirectories(t *testing.T) {
	if _, err := New("", nil); err == nil {
		t.Error("Expected error for empty directory")
	}

	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("Expected error for missing directory")
	}

	file := filepath.Join(t.TempDir(), "file.jpg")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(file, nil); err == nil {
		t.Error("Expected error for non-directory path")
	}
}

func TestPickUp(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = w.fsw.Close() }()

	path := filepath.Join(dir, "road.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	img, ok := w.pickUp(path)
	if !ok {
		t.Fatal("Expected image to be picked up")
	}
	if img.Name != "road.jpg" {
		t.Errorf("Expected base name, got %q", img.Name)
	}
	if string(img.Data) != "jpeg-bytes" {
		t.Error("Expected file contents in image data")
	}

	// a second event for the same path is a duplicate
	if _, ok := w.pickUp(path); ok {
		t.Error("Expected duplicate path to be skipped")
	}
}

func TestPickUpSkipsNonImages(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = w.fsw.Close() }()

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.pickUp(txt); ok {
		t.Error("Expected non-image file to be skipped")
	}

	empty := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.pickUp(empty); ok {
		t.Error("Expected empty file to be skipped")
	}
}
