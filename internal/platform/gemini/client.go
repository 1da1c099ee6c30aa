package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"pantrychef/internal/recipe"
)

// ErrEmptyResponse is returned when Gemini answers without any text part.
var ErrEmptyResponse = errors.New("empty response from Gemini")

// Compile-time interface check.
var _ recipe.TextGenerator = (*Client)(nil)

// Client is a client for the Gemini API.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a new Gemini client for the given model.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{client: client, modelName: modelName}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateText sends a single prompt. Structured formats are requested as
// JSON constrained by a response schema.
func (c *Client) GenerateText(ctx context.Context, prompt string, format recipe.Format) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	configure(model, format)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return responseText(resp)
}

func configure(model *genai.GenerativeModel, format recipe.Format) {
	switch format {
	case recipe.FormatRecipe:
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = RecipeSchema()
	case recipe.FormatStringList:
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = StringListSchema()
	default:
		model.ResponseMIMEType = "text/plain"
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
