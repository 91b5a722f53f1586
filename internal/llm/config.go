package llm

import (
	"fmt"
	"os"
	"time"
)

// Default model identifiers for the Groq endpoints.
const (
	DefaultGroqBaseURL        = "https://api.groq.com"
	DefaultChatModel          = "meta-llama/llama-4-maverick-17b-128e-instruct"
	DefaultTranscriptionModel = "whisper-large-v3-turbo"
	DefaultSpeechModel        = "playai-tts"
	DefaultSpeechVoice        = "alloy"
	DefaultSpeechFormat       = "mp3"
	DefaultReasoningModel     = "deepseek-r1-distill-llama-70b"
)

// Config holds all inference configuration.
type Config struct {
	// Provider selects the structured-generation backend used by tutor
	// flows. Values: "groq", "openai", "anthropic", "gemini", "mock".
	// The Groq client is always available regardless of this setting.
	Provider string

	Groq      GroqConfig
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig

	// Timeout bounds a single HTTP request. Default: 60s.
	Timeout time.Duration
}

// GroqConfig configures the Inference Client endpoints.
type GroqConfig struct {
	BaseURL            string
	APIKey             string
	ChatModel          string
	TranscriptionModel string
	SpeechModel        string
	SpeechVoice        string
	SpeechFormat       string
	ReasoningModel     string
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "mini" (gpt-4o-mini)
	BaseURL string // Optional. Any OpenAI-compatible server, e.g. a local Ollama.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Groq: GroqConfig{
			BaseURL:            DefaultGroqBaseURL,
			ChatModel:          DefaultChatModel,
			TranscriptionModel: DefaultTranscriptionModel,
			SpeechModel:        DefaultSpeechModel,
			SpeechVoice:        DefaultSpeechVoice,
			SpeechFormat:       DefaultSpeechFormat,
			ReasoningModel:     DefaultReasoningModel,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LINGUASPARK_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if u := os.Getenv("LINGUASPARK_GROQ_API_URL"); u != "" {
		cfg.Groq.BaseURL = u
	}
	// A missing key is not fatal: requests go out and the 401 comes back
	// as a Failure.
	cfg.Groq.APIKey = firstEnv("LINGUASPARK_GROQ_API_KEY", "GROQ_API_KEY")
	if m := os.Getenv("LINGUASPARK_CHAT_MODEL"); m != "" {
		cfg.Groq.ChatModel = m
	}
	if m := os.Getenv("LINGUASPARK_TRANSCRIPTION_MODEL"); m != "" {
		cfg.Groq.TranscriptionModel = m
	}
	if m := os.Getenv("LINGUASPARK_SPEECH_MODEL"); m != "" {
		cfg.Groq.SpeechModel = m
	}
	if v := os.Getenv("LINGUASPARK_SPEECH_VOICE"); v != "" {
		cfg.Groq.SpeechVoice = v
	}
	if m := os.Getenv("LINGUASPARK_REASONING_MODEL"); m != "" {
		cfg.Groq.ReasoningModel = m
	}

	cfg.Anthropic.APIKey = firstEnv("LINGUASPARK_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("LINGUASPARK_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.OpenAI.APIKey = firstEnv("LINGUASPARK_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("LINGUASPARK_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("LINGUASPARK_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Gemini.APIKey = firstEnv("LINGUASPARK_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("LINGUASPARK_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if t := os.Getenv("LINGUASPARK_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the selected provider has what it needs.
// The groq provider is exempt from the key check.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq":
		if c.Groq.BaseURL == "" {
			return fmt.Errorf("LINGUASPARK_GROQ_API_URL must not be empty")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LINGUASPARK_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LINGUASPARK_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LINGUASPARK_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
