package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Difficulty is the coarse effort rating the model assigns to a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Recipe represents the structure of the generated recipe.
type Recipe struct {
	RecipeName    string         `json:"recipeName"`
	Description   string         `json:"description"`
	Difficulty    Difficulty     `json:"difficulty"`
	TotalTime     string         `json:"totalTime"`
	Servings      int            `json:"servings"`
	Ingredients   []string       `json:"ingredients"`
	Instructions  []Instruction  `json:"instructions"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	Nutrition     *Nutrition     `json:"nutrition,omitempty"`
}

// Instruction is one numbered cooking step.
type Instruction struct {
	Text            string `json:"text"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
}

// Substitution suggests a replacement for an assumed pantry staple.
type Substitution struct {
	MissingIngredient string `json:"missingIngredient"`
	Suggestion        string `json:"suggestion"`
}

// Nutrition is the model's per-serving estimate. Values are free text ("320 kcal").
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// IsZero reports whether no nutrition field was filled in.
func (n *Nutrition) IsZero() bool {
	return n == nil || (n.Calories == "" && n.Protein == "" && n.Carbs == "" && n.Fat == "")
}

// Timed reports whether the step carries a positive duration.
func (i Instruction) Timed() bool {
	return i.DurationMinutes != nil && *i.DurationMinutes > 0
}

// Minutes returns the step duration, 0 when the step is untimed.
func (i Instruction) Minutes() int {
	if !i.Timed() {
		return 0
	}
	return *i.DurationMinutes
}

// UnmarshalJSON normalizes the difficulty casing the model tends to vary on.
// Only the name and the two lists are load-bearing: servings may arrive as a
// numeric string, and substitutions or nutrition of the wrong shape are
// dropped rather than failing the whole recipe.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type Alias Recipe // Create an alias to avoid infinite recursion
	aux := &struct {
		Difficulty    string          `json:"difficulty"`
		Servings      json.RawMessage `json:"servings"`
		Substitutions json.RawMessage `json:"substitutions"`
		Nutrition     json.RawMessage `json:"nutrition"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Difficulty = normalizeDifficulty(aux.Difficulty)

	r.Servings = 0
	if v, ok := looseNumber(aux.Servings); ok {
		r.Servings = int(math.Round(v))
	}

	r.Substitutions = nil
	if len(aux.Substitutions) > 0 {
		var subs []Substitution
		if err := json.Unmarshal(aux.Substitutions, &subs); err == nil {
			r.Substitutions = subs
		}
	}

	r.Nutrition = nil
	if len(aux.Nutrition) > 0 {
		var n Nutrition
		if err := json.Unmarshal(aux.Nutrition, &n); err == nil {
			r.Nutrition = &n
		}
	}
	return nil
}

// UnmarshalJSON accepts either the structured step object or a bare string,
// and tolerates fractional or quoted durations such as 2.5 or "10".
func (i *Instruction) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*i = Instruction{Text: text}
		return nil
	}

	var aux struct {
		Text            string          `json:"text"`
		DurationMinutes json.RawMessage `json:"durationMinutes"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("instruction: %w", err)
	}

	i.Text = aux.Text
	i.DurationMinutes = nil
	if v, ok := looseNumber(aux.DurationMinutes); ok {
		m := int(math.Round(v))
		i.DurationMinutes = &m
	}
	return nil
}

// looseNumber reads a JSON number or a string holding one. Anything else,
// null included, reports false.
func looseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func normalizeDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		// Left as-is; the renderer rejects values outside the three tiers.
		return Difficulty(s)
	}
}

// IntPtr is a small helper for building instructions with durations.
func IntPtr(v int) *int {
	return &v
}
