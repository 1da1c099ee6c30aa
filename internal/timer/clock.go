package timer

import (
	"context"
	"sync"
	"time"

	"pantrychef/internal/logger"
)

// Cue is the audible completion signal.
type Cue interface {
	Ring(ctx context.Context) error
}

// CueFunc adapts a function to Cue.
type CueFunc func(ctx context.Context) error

// Ring calls f.
func (f CueFunc) Ring(ctx context.Context) error { return f(ctx) }

// EventKind distinguishes snapshots published by the Clock.
type EventKind string

const (
	// EventChanged is published after every transition and tick.
	EventChanged EventKind = "timer"
	// EventFinished is published once when a countdown reaches zero.
	EventFinished EventKind = "chime"
)

// Event is a timer snapshot pushed to subscribers.
type Event struct {
	Kind    EventKind `json:"kind"`
	State   State     `json:"state"`
	Phase   string    `json:"phase"`
	Display string    `json:"display"`
}

// Option configures the Clock.
type Option func(*Clock)

// WithTickInterval sets the wall-clock length of one timer second.
func WithTickInterval(d time.Duration) Option {
	return func(c *Clock) {
		c.tickInterval = d
	}
}

// WithCue sets the completion cue.
func WithCue(cue Cue) Option {
	return func(c *Clock) {
		c.cue = cue
	}
}

// Clock owns one State and at most one tick loop. Every transition that
// starts or stops the countdown tears down the previous loop first, so two
// loops never decrement the same timer.
type Clock struct {
	log          *logger.Logger
	tickInterval time.Duration
	cue          Cue

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	subs   map[int]chan Event
	nextID int
	closed bool
}

// NewClock creates an idle clock.
func NewClock(log *logger.Logger, opts ...Option) *Clock {
	c := &Clock{
		log:          log,
		tickInterval: 1 * time.Second,
		subs:         make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Seed replaces whatever timer was active with a fresh duration.
func (c *Clock) Seed(minutes int, autostart bool) State {
	return c.apply(func(s State) State { return s.Seed(minutes, autostart) })
}

// Start resumes or starts the countdown.
func (c *Clock) Start() State {
	return c.apply(State.Start)
}

// Pause stops the countdown.
func (c *Clock) Pause() State {
	return c.apply(State.Pause)
}

// Toggle flips between running and stopped.
func (c *Clock) Toggle() State {
	return c.apply(State.Toggle)
}

// Reset restores the seeded duration.
func (c *Clock) Reset() State {
	return c.apply(State.Reset)
}

// Subscribe returns a channel of events and a function that unsubscribes.
// Slow subscribers miss events rather than block the clock.
func (c *Clock) Subscribe() (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Event, 16)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Close stops the tick loop and closes every subscription.
func (c *Clock) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLoopLocked()
	c.state = c.state.Pause()
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Clock) apply(transition func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLoopLocked()
	c.state = transition(c.state)
	if c.state.Running && !c.closed {
		c.startLoopLocked()
	}
	c.publishLocked(EventChanged)
	return c.state
}

func (c *Clock) startLoopLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.loop(ctx)
}

func (c *Clock) stopLoopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// loop is the tick loop for one countdown.
func (c *Clock) loop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := c.tick(ctx); done {
				return
			}
		}
	}
}

// tick applies one second and reports whether the loop should end.
func (c *Clock) tick(ctx context.Context) bool {
	c.mu.Lock()
	// A cancelled loop may still win the race for the lock once.
	if ctx.Err() != nil {
		c.mu.Unlock()
		return true
	}
	next, fired := c.state.Tick()
	c.state = next
	c.publishLocked(EventChanged)
	var release context.CancelFunc
	if fired {
		release, c.cancel = c.cancel, nil
		c.publishLocked(EventFinished)
	}
	c.mu.Unlock()

	if fired {
		c.log.Infow("timer finished", "seconds", next.Initial)
		if c.cue != nil {
			if err := c.cue.Ring(ctx); err != nil {
				c.log.Warnw("timer cue failed", "err", err)
			}
		}
		if release != nil {
			release()
		}
		return true
	}
	return !next.Running
}

func (c *Clock) publishLocked(kind EventKind) {
	ev := Event{
		Kind:    kind,
		State:   c.state,
		Phase:   c.state.Phase().String(),
		Display: c.state.Display(),
	}
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
