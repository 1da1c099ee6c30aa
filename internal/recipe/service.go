package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pantrychef/internal/logger"
)

// Format tells a TextGenerator which output shape to request from the model.
type Format int

const (
	// FormatRecipe asks for a JSON object matching Recipe.
	FormatRecipe Format = iota
	// FormatStringList asks for a JSON array of strings.
	FormatStringList
	// FormatMarkdown asks for free markdown text.
	FormatMarkdown
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatRecipe:
		return "recipe"
	case FormatStringList:
		return "string_list"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// TextGenerator is the LLM endpoint contract: one prompt in, raw text out.
// Schema enforcement on the remote side is best effort.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, format Format) (string, error)
}

// Option configures the Service.
type Option func(*Service)

// WithTimeout bounds every endpoint call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// Service generates and rescales recipes. Every operation makes at most one
// endpoint call and never retries.
type Service struct {
	gen     TextGenerator
	log     *logger.Logger
	timeout time.Duration
}

// NewService creates a recipe service over the given generator.
func NewService(gen TextGenerator, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		gen:     gen,
		log:     log,
		timeout: 45 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateRecipe builds the prompt, asks the model for a structured recipe
// and validates its shape.
func (s *Service) GenerateRecipe(ctx context.Context, ingredients string, dietaryTags []string) (*Recipe, error) {
	if strings.TrimSpace(ingredients) == "" {
		return nil, ErrValidation
	}

	raw, err := s.call(ctx, BuildPrompt(ingredients, dietaryTags), FormatRecipe)
	if err != nil {
		return nil, err
	}

	r, err := ParseRecipe(raw)
	if err != nil {
		s.log.Warnw("recipe response rejected", "err", err, "bytes", len(raw))
		return nil, malformed(err)
	}

	s.log.Infow("recipe generated", "name", r.RecipeName, "ingredients", len(r.Ingredients), "steps", len(r.Instructions))
	return r, nil
}

// ScaleIngredients asks the model to rewrite quantities for targetServings.
// Callers must not invoke it with equal serving counts or a target below 1.
func (s *Service) ScaleIngredients(ctx context.Context, ingredients []string, originalServings, targetServings int) ([]string, error) {
	raw, err := s.call(ctx, BuildScalePrompt(ingredients, originalServings, targetServings), FormatStringList)
	if err != nil {
		return nil, err
	}

	scaled, err := ParseStringList(raw)
	if err != nil {
		s.log.Warnw("scale response rejected", "err", err)
		return nil, malformed(err)
	}
	if len(scaled) != len(ingredients) {
		return nil, malformed(fmt.Errorf("expected %d ingredients, got %d", len(ingredients), len(scaled)))
	}

	s.log.Infow("ingredients scaled", "from", originalServings, "to", targetServings, "count", len(scaled))
	return scaled, nil
}

// GenerateMarkdown returns the recipe as plain markdown text.
func (s *Service) GenerateMarkdown(ctx context.Context, ingredients string) (string, error) {
	if strings.TrimSpace(ingredients) == "" {
		return "", ErrValidation
	}

	raw, err := s.call(ctx, BuildMarkdownPrompt(ingredients), FormatMarkdown)
	if err != nil {
		return "", err
	}

	md := strings.TrimSpace(stripFence(raw, "markdown"))
	if md == "" {
		return "", malformed(errors.New("empty markdown response"))
	}
	return md, nil
}

func (s *Service) call(ctx context.Context, prompt string, format Format) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.gen.GenerateText(ctx, prompt, format)
	if err != nil {
		s.log.Errorw("llm call failed", "format", format.String(), "err", err, "elapsed", time.Since(start))
		return "", unavailable(err)
	}
	s.log.Debugw("llm call finished", "format", format.String(), "elapsed", time.Since(start))
	return raw, nil
}

// ParseRecipe decodes a model reply and applies the shallow shape check:
// a non-null object with a non-empty recipeName and non-empty
// ingredients and instructions arrays.
func ParseRecipe(raw string) (*Recipe, error) {
	data := []byte(stripFence(raw, "json"))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode recipe object: %w", err)
	}
	if fields == nil {
		return nil, errors.New("recipe is null")
	}
	for _, key := range []string{"ingredients", "instructions"} {
		if !isArray(fields[key]) {
			return nil, fmt.Errorf("%s is not an array", key)
		}
	}

	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode recipe: %w", err)
	}
	if strings.TrimSpace(r.RecipeName) == "" {
		return nil, errors.New("recipeName is empty")
	}
	if len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
		return nil, errors.New("recipe has no ingredients or instructions")
	}
	if r.Servings < 1 {
		r.Servings = 1
	}
	return &r, nil
}

// ParseStringList decodes a top-level JSON array of strings.
func ParseStringList(raw string) ([]string, error) {
	data := []byte(stripFence(raw, "json"))
	if !isArray(data) {
		return nil, errors.New("response is not a JSON array")
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode array: %w", err)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not a string", i, item)
		}
		out = append(out, str)
	}
	return out, nil
}

func isArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// stripFence removes a markdown code fence the model sometimes wraps
// around its answer despite being asked not to.
func stripFence(s, lang string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, lang)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
