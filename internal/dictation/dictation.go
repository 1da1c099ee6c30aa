// Package dictation turns speech-to-text events into ingredient text.
//
// A Session owns at most one active Recognizer. Recognizers report
// discrete events (start, partial, final, error, end) over a channel; the
// session appends finals to a Field, exposes the latest partial for live
// feedback, and releases the recognizer on stop, on error, on end of
// stream and on teardown.
package dictation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pantrychef/internal/logger"
)

// ErrUnavailable is returned when the host has no speech-to-text capability.
var ErrUnavailable = errors.New("speech recognition is not available")

// EventKind identifies a recognizer event.
type EventKind string

const (
	EventStart   EventKind = "start"
	EventPartial EventKind = "partial"
	EventFinal   EventKind = "final"
	EventError   EventKind = "error"
	EventEnd     EventKind = "end"
)

// Event is one message from a recognizer. Reason is set for errors
// ("not-allowed", "no-speech", ...).
type Event struct {
	Kind   EventKind `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

// Recognizer is a speech-to-text capability. Start opens a listening
// session whose events arrive on the returned channel until it is closed
// or Stop is called. Stop must be safe to call more than once.
type Recognizer interface {
	Start(ctx context.Context) (<-chan Event, error)
	Stop() error
}

// AppendTranscript joins a finalized transcript onto existing ingredient
// text with a comma, or returns it alone when the text is empty.
func AppendTranscript(existing, transcript string) string {
	if existing == "" {
		return transcript
	}
	return existing + ", " + transcript
}

// Field is the ingredient text shared by typing and dictation.
type Field struct {
	mu   sync.RWMutex
	text string
}

// Text returns the current text.
func (f *Field) Text() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// Set replaces the text.
func (f *Field) Set(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
}

// Append adds a finalized transcript and returns the new text.
func (f *Field) Append(transcript string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = AppendTranscript(f.text, transcript)
	return f.text
}

// State is the session state.
type State int

const (
	StateStopped State = iota
	StateListening
)

// String returns a human-readable state.
func (s State) String() string {
	if s == StateListening {
		return "listening"
	}
	return "stopped"
}

// Status is a snapshot of the session for display.
type Status struct {
	Available bool   `json:"available"`
	Listening bool   `json:"listening"`
	Interim   string `json:"interim,omitempty"`
	Text      string `json:"text"`
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers a callback invoked after every status change.
// It runs outside the session lock and must not block for long.
func WithObserver(fn func(Status)) Option {
	return func(s *Session) {
		s.observer = fn
	}
}

// Session is the dictation state machine: stopped ↔ listening.
type Session struct {
	rec      Recognizer
	field    *Field
	log      *logger.Logger
	observer func(Status)

	// recMu serializes recognizer Start and Stop; taken before mu.
	recMu   sync.Mutex
	mu      sync.Mutex
	state   State
	interim string
	cancel  context.CancelFunc
	gen     int
}

// NewSession creates a stopped session writing into field. A nil
// recognizer yields a session that reports itself unavailable.
func NewSession(rec Recognizer, field *Field, log *logger.Logger, opts ...Option) *Session {
	s := &Session{
		rec:   rec,
		field: field,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a recognizer is present.
func (s *Session) Available() bool {
	return s.rec != nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns a display snapshot.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Start begins listening. Starting an already listening session is a no-op.
func (s *Session) Start(ctx context.Context) error {
	if s.rec == nil {
		return ErrUnavailable
	}

	s.recMu.Lock()
	defer s.recMu.Unlock()

	s.mu.Lock()
	if s.state == StateListening {
		s.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	events, err := s.rec.Start(ctx)
	if err != nil {
		s.mu.Unlock()
		cancel()
		return fmt.Errorf("start recognizer: %w", err)
	}
	s.gen++
	gen := s.gen
	s.state = StateListening
	s.interim = ""
	s.cancel = cancel
	st := s.statusLocked()
	s.mu.Unlock()

	s.log.Debugw("dictation started")
	s.notify(st)
	go s.pump(ctx, gen, events)
	return nil
}

// Stop ends listening and releases the recognizer. Safe in any state.
func (s *Session) Stop() {
	s.release(s.currentGen(), "stopped")
}

// Close tears the session down. Unlike Stop it returns only after the
// recognizer has been stopped.
func (s *Session) Close() {
	s.Stop()
	if s.rec == nil {
		return
	}
	s.recMu.Lock()
	defer s.recMu.Unlock()
	if s.State() == StateListening {
		return
	}
	if err := s.rec.Stop(); err != nil {
		s.log.Warnw("dictation stop failed", "err", err)
	}
}

func (s *Session) currentGen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Session) pump(ctx context.Context, gen int, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			s.release(gen, "context done")
			return
		case ev, ok := <-events:
			if !ok {
				s.release(gen, "stream closed")
				return
			}
			if done := s.handle(gen, ev); done {
				return
			}
		}
	}
}

// handle applies one event and reports whether the listening session ended.
func (s *Session) handle(gen int, ev Event) bool {
	switch ev.Kind {
	case EventStart:
		return false
	case EventPartial:
		s.update(gen, func() { s.interim = ev.Text })
		return false
	case EventFinal:
		text := strings.TrimSpace(ev.Text)
		s.update(gen, func() {
			if text != "" {
				s.field.Append(text)
			}
			s.interim = ""
		})
		return false
	case EventError:
		// Dictation is a convenience; failures are logged, never surfaced.
		s.log.Warnw("dictation error", "reason", ev.Reason)
		s.release(gen, "error: "+ev.Reason)
		return true
	case EventEnd:
		s.release(gen, "ended")
		return true
	default:
		s.log.Debugw("dictation event ignored", "kind", ev.Kind)
		return false
	}
}

func (s *Session) update(gen int, fn func()) {
	s.mu.Lock()
	if s.gen != gen || s.state != StateListening {
		s.mu.Unlock()
		return
	}
	fn()
	st := s.statusLocked()
	s.mu.Unlock()
	s.notify(st)
}

func (s *Session) release(gen int, why string) {
	s.recMu.Lock()
	defer s.recMu.Unlock()

	s.mu.Lock()
	if s.gen != gen || s.state != StateListening {
		s.mu.Unlock()
		return
	}
	s.state = StateStopped
	s.interim = ""
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	st := s.statusLocked()
	s.mu.Unlock()

	if err := s.rec.Stop(); err != nil {
		s.log.Warnw("dictation stop failed", "err", err)
	}
	s.log.Debugw("dictation stopped", "why", why)
	s.notify(st)
}

func (s *Session) statusLocked() Status {
	return Status{
		Available: s.rec != nil,
		Listening: s.state == StateListening,
		Interim:   s.interim,
		Text:      s.field.Text(),
	}
}

func (s *Session) notify(st Status) {
	if s.observer != nil {
		s.observer(st)
	}
}
