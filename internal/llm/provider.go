package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Practice sessions send the
	// whole exchange; one-shot prompts send a single user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "speech-feedback".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. When no Schema was
	// provided, this is the raw text response wrapped as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response as plain text. Unstructured responses are
// unwrapped from their JSON string; structured ones are returned as-is.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// openingTurn stands in for the learner when a conversation opens with the
// tutor's greeting. Anthropic and Gemini reject histories that do not start
// with a user turn.
const openingTurn = "(The learner has joined the conversation.)"

// chatTurns folds system messages into the system prompt and merges
// consecutive turns from the same speaker, so the history alternates
// user/assistant and starts with the user.
func chatTurns(req Request) (string, []Message) {
	system := req.System
	var turns []Message
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			system = strings.TrimSpace(system + "\n\n" + m.Content)
			continue
		}
		role := RoleUser
		if m.Role == RoleAssistant {
			role = RoleAssistant
		}
		if n := len(turns); n > 0 && turns[n-1].Role == role {
			turns[n-1].Content += "\n\n" + m.Content
			continue
		}
		turns = append(turns, Message{Role: role, Content: m.Content})
	}
	if len(turns) > 0 && turns[0].Role == RoleAssistant {
		turns = append([]Message{{Role: RoleUser, Content: openingTurn}}, turns...)
	}
	return system, turns
}

// finishContent turns raw model text into Response content: validated JSON
// when the request carried a schema, a JSON string otherwise.
func finishContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		return textContent(text), nil
	}
	content := json.RawMessage(extractJSON(text))
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

func textContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}
