package shell

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"pantrychef/internal/logger"
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// OptionsFunc builds the options for each new session, so every session
// gets its own recognizer and cue instances.
type OptionsFunc func() []Option

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIdleTimeout expires sessions that have not been looked up for d and
// have no open connection. Zero disables expiry.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.idleTimeout = d
	}
}

// WithNow overrides the registry clock.
func WithNow(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

type entry struct {
	shell    *Shell
	lastSeen time.Time
	holds    int
}

// Registry keeps live sessions in memory. Safe for concurrent access.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	gen         Generator
	log         *logger.Logger
	options     OptionsFunc
	idleTimeout time.Duration
	now         func() time.Time
}

// NewRegistry creates an empty registry. options may be nil.
func NewRegistry(gen Generator, log *logger.Logger, options OptionsFunc, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		gen:      gen,
		log:      log,
		options:  options,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a new session under a fresh ID.
func (r *Registry) Create() *Shell {
	var opts []Option
	if r.options != nil {
		opts = r.options()
	}
	id := uuid.NewString()
	s := New(id, r.gen, r.log.Named("session"), opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry{shell: s, lastSeen: r.now()}
	r.log.Debugw("session created", "session", id, "live", len(r.sessions))
	return s
}

// Get returns a session by ID and marks it as recently used.
func (r *Registry) Get(id string) (*Shell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e.shell, nil
}

// Hold keeps a session from expiring until the returned release func is
// called. Releasing restarts the idle clock.
func (r *Registry) Hold(id string) (release func(), err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.holds++
	e.lastSeen = r.now()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			e.holds--
			e.lastSeen = r.now()
		})
	}, nil
}

// Delete closes and removes a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	e.shell.Close()
	r.log.Debugw("session deleted", "session", id)
	return nil
}

// Sweep closes every unheld session idle for longer than the idle timeout
// and returns how many were removed.
func (r *Registry) Sweep() int {
	if r.idleTimeout <= 0 {
		return 0
	}

	cutoff := r.now().Add(-r.idleTimeout)
	var expired []*Shell
	r.mu.Lock()
	for id, e := range r.sessions {
		if e.holds == 0 && e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			expired = append(expired, e.shell)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
		r.log.Debugw("session expired", "session", s.ID())
	}
	return len(expired)
}

// Run sweeps idle sessions until ctx is done. It returns at once when expiry
// is disabled.
func (r *Registry) Run(ctx context.Context) {
	if r.idleTimeout <= 0 {
		return
	}
	interval := r.idleTimeout / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Infow("idle sessions expired", "count", n, "live", r.Len())
			}
		}
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close tears down every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.shell.Close()
	}
	r.log.Infow("sessions closed", "count", len(sessions))
}
