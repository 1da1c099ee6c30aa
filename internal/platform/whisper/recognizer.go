// Package whisper is a dictation.Recognizer backed by a local Whisper
// model. It records the microphone in short chunks and emits each non-empty
// transcription as a final event.
package whisper

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"pantrychef/internal/dictation"
	"pantrychef/internal/logger"
)

// Compile-time interface check.
var _ dictation.Recognizer = (*Recognizer)(nil)

// Option configures the Recognizer.
type Option func(*Recognizer)

// WithChunkDuration sets how long each recording chunk lasts.
func WithChunkDuration(d time.Duration) Option {
	return func(r *Recognizer) { r.chunk = d }
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) Option {
	return func(r *Recognizer) { r.tempDir = dir }
}

// WithSilenceChunks sets how many empty chunks end a dictation once
// something has been heard. Before any speech twice as many are allowed.
func WithSilenceChunks(n int) Option {
	return func(r *Recognizer) { r.silenceChunks = n }
}

// WithVerbose passes whisper's own output through.
func WithVerbose(v bool) Option {
	return func(r *Recognizer) { r.verbose = v }
}

// Recognizer drives whisper-cli through the audiotranscriber package.
type Recognizer struct {
	whisperBin    string
	modelPath     string
	tempDir       string
	chunk         time.Duration
	silenceChunks int
	verbose       bool
	log           *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a recognizer for the given whisper binary and GGML model.
func New(whisperBin, modelPath string, log *logger.Logger, opts ...Option) *Recognizer {
	r := &Recognizer{
		whisperBin:    whisperBin,
		modelPath:     modelPath,
		tempDir:       ".pantrychef-stt",
		chunk:         3 * time.Second,
		silenceChunks: 2,
		log:           log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether the whisper binary can be found.
func (r *Recognizer) Available() bool {
	_, err := exec.LookPath(r.whisperBin)
	return err == nil
}

// Start begins recording in the background.
func (r *Recognizer) Start(ctx context.Context) (<-chan dictation.Event, error) {
	if !r.Available() {
		return nil, fmt.Errorf("whisper binary %q not found", r.whisperBin)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil, fmt.Errorf("whisper recognizer already listening")
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan dictation.Event, 8)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go r.run(ctx, out, done)
	return out, nil
}

// Stop cancels recording and waits for the current chunk to wind down.
func (r *Recognizer) Stop() error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (r *Recognizer) run(ctx context.Context, out chan<- dictation.Event, done chan<- struct{}) {
	defer close(done)
	defer close(out)

	if !send(ctx, out, dictation.Event{Kind: dictation.EventStart}) {
		return
	}

	heard := false
	empty := 0
	for {
		if ctx.Err() != nil {
			return
		}

		text, err := r.recordChunk(ctx)
		if err != nil {
			send(ctx, out, dictation.Event{Kind: dictation.EventError, Reason: "audio-capture"})
			r.log.Warnw("whisper recording failed", "err", err)
			return
		}

		text = Clean(text)
		if text == "" {
			empty++
			limit := r.silenceChunks
			if !heard {
				limit *= 2
			}
			if empty >= limit {
				if heard {
					send(ctx, out, dictation.Event{Kind: dictation.EventEnd})
				} else {
					send(ctx, out, dictation.Event{Kind: dictation.EventError, Reason: "no-speech"})
				}
				return
			}
			continue
		}

		heard = true
		empty = 0
		r.log.Debugw("whisper heard", "text", text)
		if !send(ctx, out, dictation.Event{Kind: dictation.EventFinal, Text: text}) {
			return
		}
	}
}

func send(ctx context.Context, out chan<- dictation.Event, ev dictation.Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// recordChunk does one recording cycle and returns whisper's transcription.
func (r *Recognizer) recordChunk(ctx context.Context) (string, error) {
	var (
		result string
		wg     sync.WaitGroup
	)
	wg.Add(1)
	callback := func(text string) {
		result = text
		wg.Done()
	}

	t, err := audiotranscriber.NewTranscriber(r.whisperBin, r.modelPath, r.tempDir, "wav", callback, r.verbose)
	if err != nil {
		return "", fmt.Errorf("transcriber init: %w", err)
	}
	if err := t.Start(); err != nil {
		return "", fmt.Errorf("recording start: %w", err)
	}

	select {
	case <-time.After(r.chunk):
	case <-ctx.Done():
	}

	t.Stop()
	wg.Wait()
	if ctx.Err() != nil {
		return "", nil
	}
	return result, nil
}
