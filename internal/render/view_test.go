package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/recipe"
)

func sampleRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		RecipeName:  "Lemon Pasta",
		Description: "Bright and quick.",
		Difficulty:  recipe.DifficultyMedium,
		TotalTime:   "about 25 minutes",
		Servings:    2,
		Ingredients: []string{"200 g spaghetti", "1 lemon"},
		Instructions: []recipe.Instruction{
			{Text: "Boil the pasta.", DurationMinutes: recipe.IntPtr(10)},
			{Text: "Zest the lemon."},
		},
	}
}

func TestDifficultyTier(t *testing.T) {
	tier, err := DifficultyTier(recipe.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, TierEasy, tier)

	tier, err = DifficultyTier(recipe.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, TierHard, tier)

	_, err = DifficultyTier("Impossible")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestTimerMinutes(t *testing.T) {
	tests := map[string]int{
		"25 minutes":         25,
		"about 45 mins":      45,
		"1 hour 30 minutes":  1,
		"1.5 hours":          1,
		"Prep: 10, Cook: 20": 10,
		"quick":              0,
		"":                   0,
	}
	for in, want := range tests {
		assert.Equal(t, want, TimerMinutes(in), "input %q", in)
	}
}

func TestBuild(t *testing.T) {
	v, err := Build(sampleRecipe(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Lemon Pasta", v.Name)
	assert.Equal(t, TierMedium, v.Difficulty)
	assert.Equal(t, 25, v.TimerMinutes)
	assert.True(t, v.ShowTimer)
	assert.Equal(t, []string{"200 g spaghetti", "1 lemon"}, v.Ingredients)
	require.Len(t, v.Steps, 2)
	assert.Equal(t, Step{Number: 1, Text: "Boil the pasta.", TimerMinutes: 10}, v.Steps[0])
	assert.Equal(t, "Start 10-minute timer", v.Steps[0].TimerLabel())
	assert.Empty(t, v.Steps[1].TimerLabel())
	assert.Nil(t, v.Substitutions)
	assert.Nil(t, v.Nutrition)
}

func TestBuildUsesScaledIngredientsAndOptionalBlocks(t *testing.T) {
	r := sampleRecipe()
	r.TotalTime = "a while"
	r.Substitutions = []recipe.Substitution{{MissingIngredient: "lemon", Suggestion: "lime"}}
	r.Nutrition = &recipe.Nutrition{Calories: "410 kcal"}

	v, err := Build(r, []string{"400 g spaghetti", "2 lemons"})
	require.NoError(t, err)

	assert.Equal(t, []string{"400 g spaghetti", "2 lemons"}, v.Ingredients)
	assert.False(t, v.ShowTimer)
	assert.Zero(t, v.TimerMinutes)
	assert.Len(t, v.Substitutions, 1)
	require.NotNil(t, v.Nutrition)
	assert.Equal(t, "410 kcal", v.Nutrition.Calories)
}

func TestBuildRejectsUnknownDifficulty(t *testing.T) {
	r := sampleRecipe()
	r.Difficulty = "Chef's Kiss"
	_, err := Build(r, nil)
	assert.ErrorIs(t, err, ErrUnknownDifficulty)

	_, err = Build(nil, nil)
	assert.Error(t, err)
}

func TestTerminalIncludesEverySection(t *testing.T) {
	r := sampleRecipe()
	r.Substitutions = []recipe.Substitution{{MissingIngredient: "lemon", Suggestion: "lime"}}
	r.Nutrition = &recipe.Nutrition{Calories: "410 kcal", Protein: "12 g", Carbs: "70 g", Fat: "8 g"}
	v, err := Build(r, nil)
	require.NoError(t, err)

	out := Terminal(v)
	for _, want := range []string{"Lemon Pasta", "Ingredients", "200 g spaghetti", "1. Boil the pasta.", "t1", "Substitutions", "lime", "410 kcal"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "t2:")
}
