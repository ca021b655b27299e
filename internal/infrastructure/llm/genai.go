package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"alphahunter/internal/ports"
)

// GenAIClient implements ports.LLMClient over the official Gemini SDK.
type GenAIClient struct {
	client *genai.Client
}

var _ ports.LLMClient = (*GenAIClient)(nil)

// NewGenAIClient dials the Gemini API with the given key.
func NewGenAIClient(ctx context.Context, apiKey string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GenAIClient{client: client}, nil
}

// Generate asks one model for a completion and returns the raw text.
func (c *GenAIClient) Generate(ctx context.Context, model, systemInstruction, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("genai client is not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		})
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", model, err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("model %s returned no text", model)
	}

	return text, nil
}
