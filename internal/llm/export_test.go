package llm

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const OpeningTurn = openingTurn

var (
	ChatTurns        = chatTurns
	GeminiSchema     = geminiSchema
	StrictCompatible = strictCompatible
)

// NewTestAnthropicProvider points an Anthropic provider at baseURL with
// SDK retries off.
func NewTestAnthropicProvider(baseURL, model string) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: model}
}

// NewTestOpenAIProvider points an OpenAI provider at baseURL.
func NewTestOpenAIProvider(baseURL, model string) *OpenAIProvider {
	config := openai.DefaultConfig("test-key")
	config.BaseURL = baseURL
	return &OpenAIProvider{client: openai.NewClientWithConfig(config), model: model}
}

// NewTestGeminiProvider points a Gemini provider at baseURL.
func NewTestGeminiProvider(t *testing.T, baseURL, model string) *GeminiProvider {
	t.Helper()
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		t.Fatalf("genai.NewClient: %v", err)
	}
	return &GeminiProvider{client: client, model: model}
}
