package session

import (
	"context"
	"testing"

	"github.com/roadwatch/potholectl/internal/api"
)

func sessionWithResults(t *testing.T, n int) *Session {
	t.Helper()

	results := make([]api.DetectResult, n)
	images := make([]Image, n)
	for i := range results {
		name := string(rune('a'+i)) + ".jpg"
		results[i] = api.DetectResult{OriginalFilename: name, Count: 1, ResultImageDataURI: "data:image/jpeg;base64,aGk="}
		images[i] = Image{Name: name, Data: []byte("jpeg")}
	}

	s := New(&fakeService{detectResp: &api.DetectResponse{Results: results}}, nil)
	s.AddFromSelection(images)
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return s
}

func TestOpenCarouselEmptyCollection(t *testing.T) {
	s := New(&fakeService{}, nil)

	if err := s.OpenCarousel(0); !api.IsValidationError(err) {
		t.Fatalf("Expected validation error on empty collection, got %v", err)
	}
	if _, open := s.CarouselIndex(); open {
		t.Error("Carousel must stay closed after a rejected open")
	}
}

func TestOpenCarouselOutOfRange(t *testing.T) {
	s := sessionWithResults(t, 3)

	if err := s.OpenCarousel(3); !api.IsValidationError(err) {
		t.Errorf("Expected validation error for index 3, got %v", err)
	}
	if err := s.OpenCarousel(-1); !api.IsValidationError(err) {
		t.Errorf("Expected validation error for index -1, got %v", err)
	}
}

func TestCarouselWrapsForward(t *testing.T) {
	s := sessionWithResults(t, 3)

	if err := s.OpenCarousel(2); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	idx, err := s.NextResult()
	if err != nil {
		t.Fatalf("NextResult failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("Expected wrap to 0 from last position, got %d", idx)
	}
}

func TestCarouselWrapsBackward(t *testing.T) {
	s := sessionWithResults(t, 3)

	if err := s.OpenCarousel(0); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	idx, err := s.PrevResult()
	if err != nil {
		t.Fatalf("PrevResult failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("Expected wrap to 2 from first position, got %d", idx)
	}
}

func TestCarouselFullCycle(t *testing.T) {
	s := sessionWithResults(t, 3)

	if err := s.OpenCarousel(1); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.NextResult(); err != nil {
			t.Fatalf("NextResult step %d failed: %v", i, err)
		}
	}

	idx, open := s.CarouselIndex()
	if !open || idx != 1 {
		t.Errorf("Expected full cycle back to 1, got %d (open=%v)", idx, open)
	}
}

func TestCarouselNavigationWhenClosed(t *testing.T) {
	s := sessionWithResults(t, 2)

	if _, err := s.NextResult(); !api.IsValidationError(err) {
		t.Errorf("Expected validation error navigating closed carousel, got %v", err)
	}
	if _, err := s.PrevResult(); !api.IsValidationError(err) {
		t.Errorf("Expected validation error navigating closed carousel, got %v", err)
	}
}

func TestCarouselSingleResult(t *testing.T) {
	s := sessionWithResults(t, 1)

	if err := s.OpenCarousel(0); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	idx, err := s.NextResult()
	if err != nil {
		t.Fatalf("NextResult failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("Single result must wrap onto itself, got %d", idx)
	}
}

func TestCurrentResult(t *testing.T) {
	s := sessionWithResults(t, 3)

	if _, ok := s.CurrentResult(); ok {
		t.Error("Expected no current result while closed")
	}

	if err := s.OpenCarousel(1); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	r, ok := s.CurrentResult()
	if !ok {
		t.Fatal("Expected current result while open")
	}
	if r.OriginalFilename != "b.jpg" {
		t.Errorf("Expected b.jpg at index 1, got %s", r.OriginalFilename)
	}
}

func TestCloseCarouselIdempotent(t *testing.T) {
	s := sessionWithResults(t, 2)

	if err := s.OpenCarousel(0); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	s.CloseCarousel()
	s.CloseCarousel()

	if _, open := s.CarouselIndex(); open {
		t.Error("Expected carousel closed")
	}
}

func TestNewSubmissionClosesCarousel(t *testing.T) {
	s := sessionWithResults(t, 2)

	if err := s.OpenCarousel(1); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Resubmit failed: %v", err)
	}

	if _, open := s.CarouselIndex(); open {
		t.Error("A new detection pass must close the carousel")
	}
}
