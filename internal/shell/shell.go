// Package shell holds one cooking session: what the user typed or
// dictated, the dietary tags they picked, the generated recipe with its
// rescaled ingredient list, the cooking timer and the dictation session.
package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pantrychef/internal/dictation"
	"pantrychef/internal/logger"
	"pantrychef/internal/recipe"
	"pantrychef/internal/render"
	"pantrychef/internal/timer"
)

var (
	// ErrNoRecipe is returned by operations that need a generated recipe.
	ErrNoRecipe = errors.New("no recipe has been generated yet")
	// ErrInvalidServings rejects a rescale to the current count or below one.
	ErrInvalidServings = errors.New("target servings must differ from the current servings and be at least 1")
	// ErrNoSuchStep is returned for a step index outside the instructions.
	ErrNoSuchStep = errors.New("no such step")
	// ErrUntimedStep is returned when starting a timer on a step without a duration.
	ErrUntimedStep = errors.New("step has no duration")
)

// Generator is the recipe service as the shell uses it.
type Generator interface {
	GenerateRecipe(ctx context.Context, ingredients string, dietaryTags []string) (*recipe.Recipe, error)
	ScaleIngredients(ctx context.Context, ingredients []string, originalServings, targetServings int) ([]string, error)
}

// Update is pushed to subscribers when the session changes.
type Update struct {
	Kind      string            `json:"kind"`
	Snapshot  *Snapshot         `json:"snapshot,omitempty"`
	Dictation *dictation.Status `json:"dictation,omitempty"`
}

const (
	UpdateSession   = "session"
	UpdateDictation = "dictation"
)

// Option configures a Shell.
type Option func(*config)

type config struct {
	recognizer dictation.Recognizer
	clockOpts  []timer.Option
}

// WithRecognizer enables dictation through rec.
func WithRecognizer(rec dictation.Recognizer) Option {
	return func(c *config) {
		c.recognizer = rec
	}
}

// WithClockOptions passes options through to the cooking timer.
func WithClockOptions(opts ...timer.Option) Option {
	return func(c *config) {
		c.clockOpts = append(c.clockOpts, opts...)
	}
}

// Shell is one session. All methods are safe for concurrent use.
type Shell struct {
	id        string
	gen       Generator
	log       *logger.Logger
	field     *dictation.Field
	clock     *timer.Clock
	dictation *dictation.Session
	rec       dictation.Recognizer

	// lifetime scopes background work such as dictation.
	lifetime context.Context
	cancel   context.CancelFunc

	mu       sync.Mutex
	dietary  *recipe.DietarySet
	state    State
	scaled   []string
	servings int
	scaling  bool
	scaleErr error

	subsMu sync.Mutex
	subs   map[int]chan Update
	nextID int
}

// New creates an idle session.
func New(id string, gen Generator, log *logger.Logger, opts ...Option) *Shell {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	lifetime, cancel := context.WithCancel(context.Background())
	s := &Shell{
		id:       id,
		gen:      gen,
		log:      log,
		field:    &dictation.Field{},
		clock:    timer.NewClock(log, cfg.clockOpts...),
		rec:      cfg.recognizer,
		lifetime: lifetime,
		cancel:   cancel,
		dietary:  recipe.NewDietarySet(),
		subs:     make(map[int]chan Update),
	}
	s.dictation = dictation.NewSession(cfg.recognizer, s.field, log, dictation.WithObserver(func(st dictation.Status) {
		s.publish(Update{Kind: UpdateDictation, Dictation: &st})
	}))
	return s
}

// ID returns the session identifier.
func (s *Shell) ID() string { return s.id }

// Clock returns the cooking timer.
func (s *Shell) Clock() *timer.Clock { return s.clock }

// Dictation returns the dictation session.
func (s *Shell) Dictation() *dictation.Session { return s.dictation }

// Recognizer returns the speech recognizer the session was built with, or nil.
func (s *Shell) Recognizer() dictation.Recognizer { return s.rec }

// SetIngredients replaces the ingredient text.
func (s *Shell) SetIngredients(text string) Snapshot {
	s.field.Set(text)
	return s.changed()
}

// ToggleDietary flips one dietary tag and reports whether it is now set.
func (s *Shell) ToggleDietary(tag string) (bool, Snapshot) {
	s.mu.Lock()
	on := s.dietary.Toggle(tag)
	s.mu.Unlock()
	return on, s.changed()
}

// StartDictation begins listening for ingredients.
func (s *Shell) StartDictation() error {
	return s.dictation.Start(s.lifetime)
}

// StopDictation stops listening. Safe in any state.
func (s *Shell) StopDictation() {
	s.dictation.Stop()
}

// Generate requests a recipe for the current ingredients and tags. Only one
// generation may be outstanding; a second call returns ErrBusy.
func (s *Shell) Generate(ctx context.Context) (*recipe.Recipe, error) {
	s.mu.Lock()
	next, err := s.state.Begin()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = next
	ingredients := s.field.Text()
	tags := s.dietary.Tags()
	s.mu.Unlock()
	s.changed()

	r, err := s.gen.GenerateRecipe(ctx, ingredients, tags)

	s.mu.Lock()
	if err != nil {
		s.state = s.state.Fail(err)
		s.mu.Unlock()
		s.log.Infow("generation failed", "session", s.id, "kind", recipe.KindOf(err), "err", err)
		s.changed()
		return nil, err
	}
	s.state = s.state.Succeed(r)
	s.scaled = append([]string(nil), r.Ingredients...)
	s.servings = r.Servings
	s.scaling = false
	s.scaleErr = nil
	s.mu.Unlock()

	s.clock.Seed(render.TimerMinutes(r.TotalTime), false)
	s.changed()
	return r, nil
}

// Scale rescales the displayed ingredients to target servings. The scale
// always starts from the recipe as generated. On failure the previous list
// stays and the error is kept for display beside it.
func (s *Shell) Scale(ctx context.Context, target int) ([]string, error) {
	s.mu.Lock()
	if s.state.Phase != PhaseSuccess {
		s.mu.Unlock()
		return nil, ErrNoRecipe
	}
	if target < 1 || target == s.servings {
		s.mu.Unlock()
		return nil, ErrInvalidServings
	}
	if s.scaling {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	r := s.state.Recipe
	s.scaling = true
	s.scaleErr = nil
	s.mu.Unlock()
	s.changed()

	var (
		scaled []string
		err    error
	)
	if target == r.Servings {
		scaled = append([]string(nil), r.Ingredients...)
	} else {
		scaled, err = s.gen.ScaleIngredients(ctx, r.Ingredients, r.Servings, target)
	}

	s.mu.Lock()
	s.scaling = false
	// A newer recipe may have landed while scaling; its list wins.
	if s.state.Recipe != r {
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("recipe changed while scaling: %w", ErrBusy)
	}
	if err != nil {
		s.scaleErr = err
		s.mu.Unlock()
		s.log.Infow("rescale failed", "session", s.id, "target", target, "err", err)
		s.changed()
		return nil, err
	}
	s.scaled = scaled
	s.servings = target
	s.mu.Unlock()

	s.changed()
	return append([]string(nil), scaled...), nil
}

// StartStepTimer seeds and starts the timer from an instruction's duration.
// step is zero-based.
func (s *Shell) StartStepTimer(step int) (timer.State, error) {
	s.mu.Lock()
	if s.state.Phase != PhaseSuccess {
		s.mu.Unlock()
		return timer.State{}, ErrNoRecipe
	}
	steps := s.state.Recipe.Instructions
	s.mu.Unlock()

	if step < 0 || step >= len(steps) {
		return timer.State{}, ErrNoSuchStep
	}
	if !steps[step].Timed() {
		return timer.State{}, ErrUntimedStep
	}
	return s.clock.Seed(steps[step].Minutes(), true), nil
}

// ToggleTimer starts or pauses the timer.
func (s *Shell) ToggleTimer() timer.State {
	return s.clock.Toggle()
}

// ResetTimer returns the timer to its seeded duration.
func (s *Shell) ResetTimer() timer.State {
	return s.clock.Reset()
}

// Recipe returns the current recipe and the ingredient list to show for it.
func (s *Shell) Recipe() (*recipe.Recipe, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseSuccess {
		return nil, nil, ErrNoRecipe
	}
	return s.state.Recipe, append([]string(nil), s.scaled...), nil
}

// Subscribe returns a channel of session updates and a func to stop them.
// Slow subscribers miss updates rather than block the session.
func (s *Shell) Subscribe() (<-chan Update, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Update, 16)
	s.subs[id] = ch

	return ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close stops the timer and dictation and ends subscriptions.
func (s *Shell) Close() {
	s.cancel()
	s.dictation.Close()
	s.clock.Close()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Shell) changed() Snapshot {
	snap := s.Snapshot()
	s.publish(Update{Kind: UpdateSession, Snapshot: &snap})
	return snap
}

func (s *Shell) publish(u Update) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
		}
	}
}
