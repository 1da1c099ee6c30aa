package dictation

import (
	"context"
	"errors"
	"sync"
)

// ErrNotListening is returned when events are pushed to a stopped stream.
var ErrNotListening = errors.New("dictation stream is not listening")

// ErrStreamFull is returned when the consumer falls too far behind.
var ErrStreamFull = errors.New("dictation stream is full")

// Compile-time interface check.
var _ Recognizer = (*StreamRecognizer)(nil)

// StreamRecognizer is a Recognizer fed from outside, typically by a browser
// running its own speech recognition and forwarding results over a socket.
type StreamRecognizer struct {
	mu     sync.Mutex
	ch     chan Event
	active bool
}

// NewStreamRecognizer creates an idle stream.
func NewStreamRecognizer() *StreamRecognizer {
	return &StreamRecognizer{}
}

// Start opens a fresh event channel.
func (r *StreamRecognizer) Start(ctx context.Context) (<-chan Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		close(r.ch)
	}
	r.ch = make(chan Event, 32)
	r.active = true
	return r.ch, nil
}

// Stop closes the current channel. Safe to call when idle.
func (r *StreamRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		close(r.ch)
		r.active = false
	}
	return nil
}

// Push delivers one event to the listening session without blocking.
func (r *StreamRecognizer) Push(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return ErrNotListening
	}
	select {
	case r.ch <- ev:
		return nil
	default:
		return ErrStreamFull
	}
}
