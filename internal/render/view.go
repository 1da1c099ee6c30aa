// Package render turns a recipe into a display tree: a structured view for
// JSON recipes, a block list for legacy markdown recipes, and a styled
// terminal rendition of either.
package render

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"pantrychef/internal/recipe"
)

// ErrUnknownDifficulty is returned for a difficulty outside Easy/Medium/Hard.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Tier is the visual difficulty tier.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// DifficultyTier maps a recipe difficulty to its tier.
func DifficultyTier(d recipe.Difficulty) (Tier, error) {
	switch d {
	case recipe.DifficultyEasy:
		return TierEasy, nil
	case recipe.DifficultyMedium:
		return TierMedium, nil
	case recipe.DifficultyHard:
		return TierHard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
}

var firstInt = regexp.MustCompile(`\d+`)

// TimerMinutes returns the first integer found in a free-text duration,
// ignoring units: "1 hour 30 minutes" yields 1. Zero means no timer.
func TimerMinutes(totalTime string) int {
	m := firstInt.FindString(totalTime)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// View is the display tree for a structured recipe.
type View struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Difficulty    Tier                  `json:"difficulty"`
	TotalTime     string                `json:"total_time"`
	Servings      int                   `json:"servings"`
	TimerMinutes  int                   `json:"timer_minutes"`
	ShowTimer     bool                  `json:"show_timer"`
	Ingredients   []string              `json:"ingredients"`
	Steps         []Step                `json:"steps"`
	Substitutions []recipe.Substitution `json:"substitutions,omitempty"`
	Nutrition     *recipe.Nutrition     `json:"nutrition,omitempty"`
}

// Step is one numbered instruction. TimerMinutes > 0 means the step offers a
// "start N-minute timer" action.
type Step struct {
	Number       int    `json:"number"`
	Text         string `json:"text"`
	TimerMinutes int    `json:"timer_minutes,omitempty"`
}

// TimerLabel is the label of the step's timer action, empty when untimed.
func (s Step) TimerLabel() string {
	if s.TimerMinutes <= 0 {
		return ""
	}
	return fmt.Sprintf("Start %d-minute timer", s.TimerMinutes)
}

// Build maps a recipe onto its view. scaled replaces the ingredient list
// when non-nil.
func Build(r *recipe.Recipe, scaled []string) (*View, error) {
	if r == nil {
		return nil, errors.New("render: nil recipe")
	}
	tier, err := DifficultyTier(r.Difficulty)
	if err != nil {
		return nil, err
	}

	ingredients := scaled
	if ingredients == nil {
		ingredients = r.Ingredients
	}

	minutes := TimerMinutes(r.TotalTime)
	v := &View{
		Name:         r.RecipeName,
		Description:  r.Description,
		Difficulty:   tier,
		TotalTime:    r.TotalTime,
		Servings:     r.Servings,
		TimerMinutes: minutes,
		ShowTimer:    minutes > 0,
		Ingredients:  append([]string(nil), ingredients...),
		Steps:        make([]Step, 0, len(r.Instructions)),
	}
	for i, ins := range r.Instructions {
		v.Steps = append(v.Steps, Step{Number: i + 1, Text: ins.Text, TimerMinutes: ins.Minutes()})
	}
	if len(r.Substitutions) > 0 {
		v.Substitutions = append([]recipe.Substitution(nil), r.Substitutions...)
	}
	if !r.Nutrition.IsZero() {
		n := *r.Nutrition
		v.Nutrition = &n
	}
	return v, nil
}
