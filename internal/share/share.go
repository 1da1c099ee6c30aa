// Package share publishes a recipe as plain text, through a native share
// target when one exists and through the clipboard otherwise.
package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pantrychef/internal/logger"
	"pantrychef/internal/recipe"
)

// Attribution closes every shared recipe.
const Attribution = "Generated by PantryChef"

// ConfirmText is the transient confirmation shown after a clipboard copy.
const ConfirmText = "Copied!"

const defaultConfirmFor = 2 * time.Second

var (
	// ErrNothingToShare is returned when there is no recipe to share.
	ErrNothingToShare = errors.New("no recipe to share")
	// ErrClipboard is returned when both native share and the clipboard fail.
	ErrClipboard = errors.New("could not copy the recipe to the clipboard")
)

// Sharer is a native share target (title + text).
type Sharer interface {
	Share(ctx context.Context, title, text string) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Method tells how a recipe was shared.
type Method string

const (
	MethodNative    Method = "native"
	MethodClipboard Method = "clipboard"
)

// FormatPlainText renders the recipe for sharing. ingredients overrides the
// recipe's own list when non-empty, so a rescaled list is what gets shared.
func FormatPlainText(r *recipe.Recipe, ingredients []string) string {
	if len(ingredients) == 0 {
		ingredients = r.Ingredients
	}

	var b strings.Builder
	b.WriteString(r.RecipeName)
	b.WriteString("\n\n")
	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteString("\n\n")
	}

	b.WriteString("Ingredients:\n")
	for _, ing := range ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}

	b.WriteString("\nInstructions:\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step.Text)
	}

	b.WriteString("\n")
	b.WriteString(Attribution)
	return b.String()
}

// Option configures a Service.
type Option func(*Service)

// WithConfirmDuration sets how long the clipboard confirmation stays visible.
func WithConfirmDuration(d time.Duration) Option {
	return func(s *Service) {
		s.confirmFor = d
	}
}

// Service shares recipes and tracks the transient confirmation.
type Service struct {
	native     Sharer
	clipboard  Clipboard
	log        *logger.Logger
	confirmFor time.Duration

	mu      sync.Mutex
	confirm string
	timer   *time.Timer
}

// NewService builds a Service. Either collaborator may be nil.
func NewService(native Sharer, clipboard Clipboard, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		native:     native,
		clipboard:  clipboard,
		log:        log,
		confirmFor: defaultConfirmFor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Share publishes the recipe and reports how.
func (s *Service) Share(ctx context.Context, r *recipe.Recipe, ingredients []string) (Method, error) {
	if r == nil {
		return "", ErrNothingToShare
	}
	text := FormatPlainText(r, ingredients)

	if s.native != nil {
		err := s.native.Share(ctx, r.RecipeName, text)
		if err == nil {
			return MethodNative, nil
		}
		s.log.Infow("native share failed, falling back to clipboard", "err", err)
	}

	if s.clipboard == nil {
		s.log.Warnw("no clipboard available for share")
		return "", ErrClipboard
	}
	if err := s.clipboard.WriteText(text); err != nil {
		s.log.Errorw("clipboard write failed", "err", err)
		return "", fmt.Errorf("%w: %v", ErrClipboard, err)
	}

	s.flash()
	return MethodClipboard, nil
}

// Confirmation returns the visible confirmation, or "" once it has cleared.
func (s *Service) Confirmation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirm
}

// Close cancels a pending confirmation clear.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.confirm = ""
}

func (s *Service) flash() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.confirm = ConfirmText

	var t *time.Timer
	t = time.AfterFunc(s.confirmFor, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.timer == t {
			s.confirm = ""
			s.timer = nil
		}
	})
	s.timer = t
}
