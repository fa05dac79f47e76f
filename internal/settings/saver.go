package settings

import (
	"sync"
	"time"
)

// Saver coalesces save requests and fires a single save callback after a
// debounce window. Every request resets the window, so a burst of tag
// creations produces one write.
type Saver struct {
	debounce time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	pending  bool

	onSave func()
}

// NewSaver creates a saver with the given debounce duration.
func NewSaver(debounce time.Duration, onSave func()) *Saver {
	return &Saver{
		debounce: debounce,
		onSave:   onSave,
	}
}

// Request schedules a save and resets the debounce timer. It never blocks
// on the save itself.
func (s *Saver) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = true

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
}

// fire runs the save callback if a request is still pending. The callback
// runs outside the lock so new requests are never blocked behind file IO.
func (s *Saver) fire() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil
	fn := s.onSave
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush cancels the timer and runs the callback now if a save was pending.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.pending
	s.pending = false
	fn := s.onSave
	s.mu.Unlock()

	if pending && fn != nil {
		fn()
	}
}

// Stop cancels any pending save without running it.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
}

// Pending reports whether a save is scheduled.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
