// Package ai implements the Gemini conversation engine: content
// normalization, the two-phase tool-calling cycle and plain streaming chat.
package ai

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

// Model generation parameters, fixed for every request.
const (
	defaultTemperature     = 0.7
	defaultCandidateCount  = 1
	defaultMaxOutputTokens = 2048
)

// Generator is the model backend the engine talks to. A fake implementation
// stands in for the Gemini API in tests.
type Generator interface {
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// GeminiGenerator backs Generator with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, g.model, contents, config)
}

func (g *GeminiGenerator) GenerateContentStream(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return g.client.Models.GenerateContentStream(ctx, g.model, contents, config)
}

// generationConfig builds the fixed request config, with tool declarations
// attached only for the first phase of a tooled cycle.
func generationConfig(tools []*genai.Tool) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](defaultTemperature),
		CandidateCount:  defaultCandidateCount,
		MaxOutputTokens: defaultMaxOutputTokens,
		Tools:           tools,
	}
}
