package imageedit

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrNoImageLoaded = errors.New("no image loaded")
	ErrEmptyPrompt   = errors.New("please enter a description for the edit")
	ErrBusy          = errors.New("an edit is already in progress")
)

// Session holds the image being edited and allows one edit at a time.
// It is safe for concurrent use.
type Session struct {
	editor Editor

	mu       sync.Mutex
	image    string // data URI, empty when nothing is loaded
	lastErr  error
	inFlight bool
}

// NewSession creates a session that edits through e.
func NewSession(e Editor) *Session {
	return &Session{editor: e}
}

// SetImage replaces the current image and clears the last error.
func (s *Session) SetImage(dataURI string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = dataURI
	s.lastErr = nil
}

// Image returns the current image data URI, or "".
func (s *Session) Image() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// Err returns the error of the last submit, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Busy reports whether an edit is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Clear drops the current image and error. It does not cancel an edit in
// flight; if that edit succeeds its result becomes the current image.
func (s *Session) Clear() {
	s.SetImage("")
}

// Submit edits the current image with prompt. It blocks until the edit
// finishes. On success the result replaces the current image and is
// returned; on failure the current image is kept and the error is recorded.
// Validation failures are recorded too but never reach the editor.
func (s *Session) Submit(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return "", ErrBusy
	}
	var err error
	switch {
	case s.image == "":
		err = ErrNoImageLoaded
	case strings.TrimSpace(prompt) == "":
		err = ErrEmptyPrompt
	}
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		return "", err
	}
	image := s.image
	s.inFlight = true
	s.lastErr = nil
	s.mu.Unlock()

	out, err := s.editor.Edit(ctx, image, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.lastErr = err
		return "", err
	}
	s.image = out
	return out, nil
}
