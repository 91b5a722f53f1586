package llm

// TokenPrice is the list price of a chat model in USD per million tokens.
type TokenPrice struct {
	Input  float64
	Output float64
}

// Cost estimates the USD cost of the given token counts.
func (p TokenPrice) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1e6
}

// PriceFor looks up a model by ID or by the short names accepted in the
// provider model settings. Audio models bill per second or per character
// and are not listed.
func PriceFor(model string) (TokenPrice, bool) {
	for _, names := range []map[string]string{anthropicModels, openaiModels, geminiModels} {
		if id, ok := names[model]; ok {
			model = id
			break
		}
	}
	p, ok := tokenPrices[model]
	return p, ok
}

// tokenPrices covers the Groq chat, vision and reasoning models and the
// models behind each provider's short names. Prices as of 2026-02.
var tokenPrices = map[string]TokenPrice{
	// Groq
	DefaultChatModel:                            {0.20, 0.60},
	"meta-llama/llama-4-scout-17b-16e-instruct": {0.11, 0.34},
	"llama-3.3-70b-versatile":                   {0.59, 0.79},
	"llama-3.1-8b-instant":                      {0.05, 0.08},
	DefaultReasoningModel:                       {0.75, 0.99},
	"qwen/qwen3-32b":                            {0.29, 0.59},
	"openai/gpt-oss-20b":                        {0.10, 0.50},
	"openai/gpt-oss-120b":                       {0.15, 0.75},

	// Anthropic
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-haiku-4-5":           {1, 5},
	"claude-sonnet-4-5-20250929": {3, 15},
	"claude-sonnet-4-5":          {3, 15},

	// OpenAI
	"gpt-4o-mini":  {0.15, 0.60},
	"gpt-4o":       {2.50, 10},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.40, 1.60},
	"gpt-4.1-nano": {0.10, 0.40},

	// Gemini
	"gemini-2.5-flash":      {0.30, 2.50},
	"gemini-2.5-flash-lite": {0.10, 0.40},
	"gemini-2.5-pro":        {1.25, 10},
}
