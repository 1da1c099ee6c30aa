package recipe

import (
	"fmt"
	"strings"
)

const recipeDirectives = `Your task is to:
1. Create a creative and appealing name for the recipe.
2. Write a short, enticing description of the dish.
3. Rate the difficulty as exactly one of "Easy", "Medium" or "Hard".
4. Estimate the total time, for example "45 minutes".
5. State how many servings the recipe makes as a whole number.
6. List every ingredient with its quantity, including the ones provided and any common pantry staples you assume the user has (salt, pepper, oil, and so on).
7. Give clear, step-by-step instructions.
8. For every step that involves waiting or cooking for a known time, set durationMinutes to that number of minutes. Leave it out for untimed steps.
9. For each pantry staple you assumed, suggest a substitution in case the user does not have it.
10. Estimate the nutrition per serving: calories, protein, carbs and fat.`

// BuildPrompt turns the user's ingredient text and dietary tags into the
// recipe generation instruction. The caller rejects empty ingredient text.
func BuildPrompt(ingredients string, dietaryTags []string) string {
	var b strings.Builder
	b.WriteString("You are an expert chef with a talent for creating delicious and easy-to-follow recipes.\n")
	b.WriteString("A user has the following ingredients and wants a recipe.\n\n")
	fmt.Fprintf(&b, "Ingredients provided: \"%s\"\n", ingredients)
	b.WriteString(dietaryClause(dietaryTags))
	b.WriteString("\n\n")
	b.WriteString(recipeDirectives)
	b.WriteString("\n\nRespond only with the JSON object described by the response schema.")
	return b.String()
}

func dietaryClause(tags []string) string {
	if len(tags) == 0 {
		return "No dietary restrictions."
	}
	return fmt.Sprintf("Dietary restrictions: %s. The recipe must respect all of them.", strings.Join(tags, ", "))
}

// BuildScalePrompt asks the model to rewrite quantities for a new serving count.
func BuildScalePrompt(ingredients []string, originalServings, targetServings int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following ingredient list makes %d servings:\n", originalServings)
	for _, ing := range ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}
	fmt.Fprintf(&b, "\nRewrite every line so the recipe makes %d servings instead. ", targetServings)
	b.WriteString(`Adjust the quantities proportionally (for example "1 egg" for 2 servings becomes "2 eggs" for 4 servings). `)
	b.WriteString(`Small amounts such as "a pinch of salt" or "a dash of pepper" may be rounded sensibly rather than scaled linearly. `)
	fmt.Fprintf(&b, "Keep the same order and return exactly %d strings as a JSON array, one per original line.", len(ingredients))
	return b.String()
}

// BuildMarkdownPrompt is the plain markdown variant of the recipe prompt.
func BuildMarkdownPrompt(ingredients string) string {
	return fmt.Sprintf(`You are an expert chef with a talent for creating delicious and easy-to-follow recipes.
A user has the following ingredients and wants a recipe.

Ingredients provided: "%s"

Your task is to:
1. Create a creative and appealing name for the recipe.
2. List out the ingredients needed for the recipe, including the ones provided and any common pantry staples that might be required (like salt, pepper, oil).
3. Provide clear, step-by-step instructions for preparing the dish.
4. Format the entire response in simple Markdown. Use a main '##' heading for the recipe name, and '###' subheadings for 'Ingredients' and 'Instructions'. Use bullet points for lists of ingredients and numbered lists for instructions.`, ingredients)
}
