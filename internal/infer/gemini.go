package infer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/skill-profiler/internal/extract"
)

const defaultGeminiModel = "gemini-2.5-flash"

// maxInferenceTokens bounds the provider response size.
const maxInferenceTokens = 2048

// GeminiProvider delegates inference to the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Name identifies the provider in logs.
func (p *GeminiProvider) Name() string { return "gemini" }

// Infer sends the combined document text to Gemini in a single call and
// decodes the structured skill list it returns.
func (p *GeminiProvider) Infer(ctx context.Context, text string) ([]extract.Candidate, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.SetMaxOutputTokens(maxInferenceTokens)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildInferencePrompt(text)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return parseCandidates(raw)
}

// Close releases resources held by the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// buildInferencePrompt constructs the skill-inference prompt.
func buildInferencePrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert career analyst. Identify professional skills that the ")
	sb.WriteString("following documents demonstrate but do not state outright.\n\n")
	sb.WriteString("Return ONLY a valid JSON array matching this exact structure:\n")
	sb.WriteString(`[{"skill": string, "type": "hard"|"soft"|"emerging", "confidence": number, "rationale": string}]`)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Base every skill on evidence in the text, do not invent.\n")
	sb.WriteString("- confidence is between 0.0 and 1.0.\n")
	sb.WriteString("- Return ONLY the JSON array, no markdown, no explanation.\n\n")
	sb.WriteString("Documents:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
