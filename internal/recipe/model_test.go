package recipe

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeUnmarshalNormalizesDifficulty(t *testing.T) {
	for in, want := range map[string]Difficulty{
		"easy":    DifficultyEasy,
		" MEDIUM": DifficultyMedium,
		"Hard":    DifficultyHard,
		"Brutal":  Difficulty("Brutal"),
	} {
		var r Recipe
		require.NoError(t, json.Unmarshal([]byte(`{"difficulty": "`+in+`"}`), &r))
		assert.Equal(t, want, r.Difficulty)
	}
}

func TestNutritionIsZero(t *testing.T) {
	var n *Nutrition
	assert.True(t, n.IsZero())
	assert.True(t, (&Nutrition{}).IsZero())
	assert.False(t, (&Nutrition{Fat: "3 g"}).IsZero())
}

func TestInstructionZeroDurationIsUntimed(t *testing.T) {
	i := Instruction{Text: "Rest", DurationMinutes: IntPtr(0)}
	assert.False(t, i.Timed())
	assert.Zero(t, i.Minutes())
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := malformed(errors.New("boom"))
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "malformed_response", KindOf(err).String())
	assert.Equal(t, ErrServiceUnavailable.Message, UserMessage(errors.New("plain")))
	assert.Empty(t, UserMessage(nil))
}

func TestParseRecipeToleratesLooseFields(t *testing.T) {
	const base = `"recipeName": "Soup", "ingredients": ["water"]`
	tests := []struct {
		name  string
		extra string
		check func(t *testing.T, r *Recipe)
	}{
		{
			name:  "quoted servings",
			extra: `, "servings": "4", "instructions": ["Boil"]`,
			check: func(t *testing.T, r *Recipe) { assert.Equal(t, 4, r.Servings) },
		},
		{
			name:  "unparseable servings falls back to one",
			extra: `, "servings": "a few", "instructions": ["Boil"]`,
			check: func(t *testing.T, r *Recipe) { assert.Equal(t, 1, r.Servings) },
		},
		{
			name:  "quoted duration",
			extra: `, "instructions": [{"text": "Simmer", "durationMinutes": "10"}]`,
			check: func(t *testing.T, r *Recipe) { assert.Equal(t, 10, r.Instructions[0].Minutes()) },
		},
		{
			name:  "null duration stays untimed",
			extra: `, "instructions": [{"text": "Serve", "durationMinutes": null}]`,
			check: func(t *testing.T, r *Recipe) { assert.Nil(t, r.Instructions[0].DurationMinutes) },
		},
		{
			name:  "free text nutrition is dropped",
			extra: `, "instructions": ["Boil"], "nutrition": "about 400 kcal"`,
			check: func(t *testing.T, r *Recipe) { assert.Nil(t, r.Nutrition) },
		},
		{
			name:  "object substitutions are dropped",
			extra: `, "instructions": ["Boil"], "substitutions": {"salt": "soy sauce"}`,
			check: func(t *testing.T, r *Recipe) { assert.Nil(t, r.Substitutions) },
		},
		{
			name:  "well formed extras survive",
			extra: `, "instructions": ["Boil"], "nutrition": {"calories": "90 kcal"}, "substitutions": [{"missingIngredient": "salt", "suggestion": "soy sauce"}]`,
			check: func(t *testing.T, r *Recipe) {
				require.NotNil(t, r.Nutrition)
				assert.Equal(t, "90 kcal", r.Nutrition.Calories)
				require.Len(t, r.Substitutions, 1)
				assert.Equal(t, "soy sauce", r.Substitutions[0].Suggestion)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRecipe(`{` + base + tt.extra + `}`)
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}
