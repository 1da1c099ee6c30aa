package localllm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pantrychef/internal/recipe"
)

// Compile-time interface check.
var _ recipe.TextGenerator = (*Client)(nil)

// Client represents a client for an OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient *http.Client
	apiURL     string
	model      string
	apiKey     string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIKey sends a bearer token with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// NewClient creates a new client for the local LLM.
func NewClient(apiURL, model string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		apiURL:     apiURL,
		model:      model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request represents the request body for the local LLM.
type Request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// Message represents a message in the request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat switches the endpoint into JSON mode.
type ResponseFormat struct {
	Type string `json:"type"`
}

// Response represents the response from the local LLM.
type Response struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a choice in the response.
type Choice struct {
	Message Message `json:"message"`
}

// Local servers rarely honour schemas, so the expected shape is spelled out.
const (
	recipeShape = `Return a single JSON object with the keys recipeName (string), description (string), difficulty ("Easy", "Medium" or "Hard"), totalTime (string), servings (integer), ingredients (array of strings), instructions (array of objects with text and an optional integer durationMinutes), substitutions (array of objects with missingIngredient and suggestion) and nutrition (object with calories, protein, carbs and fat strings). Do not wrap it in markdown.`
	listShape   = `Return only a JSON array of strings. Do not wrap it in markdown.`
)

// GenerateText sends a request to the local LLM and returns the response text.
func (c *Client) GenerateText(ctx context.Context, prompt string, format recipe.Format) (string, error) {
	reqBody := Request{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: 1,
		MaxTokens:   2048,
	}
	switch format {
	case recipe.FormatRecipe:
		reqBody.Messages = append([]Message{{Role: "system", Content: recipeShape}}, reqBody.Messages...)
		reqBody.ResponseFormat = &ResponseFormat{Type: "json_object"}
	case recipe.FormatStringList:
		reqBody.Messages = append([]Message{{Role: "system", Content: listShape}}, reqBody.Messages...)
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("received non-OK status code %d: %s", resp.StatusCode, body)
	}

	var llmResp Response
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("no content found in response")
	}
	return llmResp.Choices[0].Message.Content, nil
}
