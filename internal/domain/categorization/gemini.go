package categorization

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const promptTemplate = `Categorize this merchant into ONE category from the following list:
%s

Merchant: %s

Return ONLY the category name, nothing else. Choose the most appropriate category.`

// GeminiClassifier asks Gemini for a category suggestion.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClassifier{client: client, model: model}, nil
}

func (g *GeminiClassifier) Classify(ctx context.Context, merchant string) (string, error) {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	prompt := fmt.Sprintf(promptTemplate, strings.Join(names, ", "), merchant)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return resp.Text(), nil
}
