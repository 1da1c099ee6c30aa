package gemini

import "github.com/google/generative-ai-go/genai"

func stringField(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

// RecipeSchema mirrors recipe.Recipe so the model fills exactly those fields.
func RecipeSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recipeName":  stringField("A creative, appealing name for the dish."),
			"description": stringField("One or two sentences describing the dish."),
			"difficulty": {
				Type: genai.TypeString,
				Enum: []string{"Easy", "Medium", "Hard"},
			},
			"totalTime": stringField("Total preparation and cooking time, e.g. \"45 minutes\"."),
			"servings":  {Type: genai.TypeInteger, Description: "Number of servings, at least 1."},
			"ingredients": {
				Type:  genai.TypeArray,
				Items: stringField("One ingredient with its quantity."),
			},
			"instructions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text": stringField("The step."),
						"durationMinutes": {
							Type:        genai.TypeInteger,
							Description: "Minutes the step takes when it is timed.",
							Nullable:    true,
						},
					},
					Required: []string{"text"},
				},
			},
			"substitutions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"missingIngredient": stringField("The assumed pantry staple."),
						"suggestion":        stringField("What to use instead."),
					},
					Required: []string{"missingIngredient", "suggestion"},
				},
			},
			"nutrition": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"calories": stringField("Per serving."),
					"protein":  stringField("Per serving."),
					"carbs":    stringField("Per serving."),
					"fat":      stringField("Per serving."),
				},
			},
		},
		Required: []string{"recipeName", "description", "difficulty", "totalTime", "servings", "ingredients", "instructions"},
	}
}

// StringListSchema is a bare array of strings, used for rescaled ingredients.
func StringListSchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}
