package session

import (
	"fmt"

	"github.com/roadwatch/potholectl/internal/api"
)

// carousel tracks the full-view browser: closed, or open at an index into
// the results collection. Navigation wraps modulo the collection length.
type carousel struct {
	isOpen bool
	index  int
}

func (c *carousel) close() {
	c.isOpen = false
	c.index = 0
}

// OpenCarousel opens the full-view browser at the given index. Opening on
// an empty collection or out-of-range index is a precondition violation,
// not silently defaulted.
func (s *Session) OpenCarousel(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.results) == 0 {
		return api.NewValidationError("carousel", "no results to view")
	}
	if index < 0 || index >= len(s.results) {
		return api.NewValidationError("carousel", fmt.Sprintf("index %d out of range [0, %d)", index, len(s.results)))
	}

	s.carousel.isOpen = true
	s.carousel.index = index
	return nil
}

// CarouselIndex returns the open index, or false when the carousel is closed
func (s *Session) CarouselIndex() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.carousel.isOpen {
		return 0, false
	}
	return s.carousel.index, true
}

// NextResult advances the carousel cyclically and returns the new index.
// Only valid while open.
func (s *Session) NextResult() (int, error) {
	return s.step(1)
}

// PrevResult steps the carousel backwards cyclically and returns the new
// index. Only valid while open.
func (s *Session) PrevResult() (int, error) {
	return s.step(-1)
}

func (s *Session) step(delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.carousel.isOpen {
		return 0, api.NewValidationError("carousel", "carousel is not open")
	}

	n := len(s.results)
	s.carousel.index = (s.carousel.index + delta + n) % n
	return s.carousel.index, nil
}

// CloseCarousel closes the full-view browser. Idempotent; dismiss gestures
// and explicit closes land in the same state.
func (s *Session) CloseCarousel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carousel.close()
}

// CurrentResult returns the result under the carousel cursor, or false when
// the carousel is closed
func (s *Session) CurrentResult() (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.carousel.isOpen || s.carousel.index >= len(s.results) {
		return Result{}, false
	}
	return s.results[s.carousel.index], true
}
