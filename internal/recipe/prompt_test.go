package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptEmbedsIngredientsVerbatim(t *testing.T) {
	p := BuildPrompt(`2 "large" eggs, spinach`, nil)

	assert.Contains(t, p, `Ingredients provided: "2 "large" eggs, spinach"`)
	assert.Contains(t, p, "No dietary restrictions.")
	for _, directive := range []string{"name", "description", "difficulty", "total time", "servings", "pantry staples", "step-by-step", "durationMinutes", "substitution", "nutrition"} {
		assert.Contains(t, strings.ToLower(p), strings.ToLower(directive))
	}
}

func TestBuildPromptDietaryClause(t *testing.T) {
	p := BuildPrompt("tofu", []string{"Vegan", "Nut-Free"})
	assert.Contains(t, p, "Dietary restrictions: Vegan, Nut-Free.")
	assert.NotContains(t, p, "No dietary restrictions.")
}

func TestBuildScalePrompt(t *testing.T) {
	p := BuildScalePrompt([]string{"1 egg", "a pinch of salt"}, 2, 4)
	assert.Contains(t, p, "- 1 egg\n- a pinch of salt\n")
	assert.Contains(t, p, "return exactly 2 strings")
	assert.Contains(t, p, "rounded")
}

func TestBuildMarkdownPrompt(t *testing.T) {
	p := BuildMarkdownPrompt("bread, garlic")
	assert.Contains(t, p, `"bread, garlic"`)
	assert.Contains(t, p, "'##' heading")
}
