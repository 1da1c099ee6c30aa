package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/recipe"
)

func TestConfigureRecipeFormat(t *testing.T) {
	model := &genai.GenerativeModel{}
	configure(model, recipe.FormatRecipe)

	assert.Equal(t, "application/json", model.ResponseMIMEType)
	require.NotNil(t, model.ResponseSchema)
	assert.Equal(t, genai.TypeObject, model.ResponseSchema.Type)
	assert.Contains(t, model.ResponseSchema.Required, "recipeName")
	assert.Equal(t, []string{"Easy", "Medium", "Hard"}, model.ResponseSchema.Properties["difficulty"].Enum)
	assert.Equal(t, genai.TypeArray, model.ResponseSchema.Properties["instructions"].Type)
}

func TestConfigureStringListAndMarkdown(t *testing.T) {
	model := &genai.GenerativeModel{}
	configure(model, recipe.FormatStringList)
	assert.Equal(t, genai.TypeArray, model.ResponseSchema.Type)
	assert.Equal(t, genai.TypeString, model.ResponseSchema.Items.Type)

	model = &genai.GenerativeModel{}
	configure(model, recipe.FormatMarkdown)
	assert.Equal(t, "text/plain", model.ResponseMIMEType)
	assert.Nil(t, model.ResponseSchema)
}

func TestResponseText(t *testing.T) {
	_, err := responseText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	text, err := responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}
