package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps the short names accepted in LINGUASPARK_OPENAI_MODEL.
var openaiModels = map[string]string{
	"mini":  "gpt-4o-mini",
	"full":  "gpt-4o",
	"nano":  "gpt-4.1-nano",
	"4.1":   "gpt-4.1",
	"4.1-m": "gpt-4.1-mini",
}

// OpenAIProvider generates tutor content through the OpenAI chat API, or
// any server speaking it when BaseURL is set.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, openaiModels),
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            openAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		format, err := openAIResponseFormat(req.Schema)
		if err != nil {
			return nil, err
		}
		chatReq.ResponseFormat = format
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in OpenAI response")}
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, &ErrInvalidResponse{
			Content: textContent(choice.Message.Refusal),
			Err:     fmt.Errorf("model refused: %s", choice.Message.Refusal),
		}
	}
	content, err := finishContent(req.Schema, choice.Message.Content)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(choice.FinishReason),
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func openAIMessages(req Request) []openai.ChatCompletionMessage {
	system, turns := chatTurns(req)
	out := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	if system != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		if t.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return out
}

// openAIResponseFormat asks for schema-constrained output. Strict mode is
// only requested when every object in the schema closes its properties and
// requires all of them, which is what the API demands for strict schemas.
func openAIResponseFormat(schema *Schema) (*openai.ChatCompletionResponseFormat, error) {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", schema.Name, err)
	}
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        schema.Name,
			Description: schema.Description,
			Schema:      json.RawMessage(def),
			Strict:      strictCompatible(schema.Definition),
		},
	}, nil
}

func strictCompatible(def map[string]any) bool {
	if props, ok := def["properties"].(map[string]any); ok {
		if open, ok := def["additionalProperties"].(bool); !ok || open {
			return false
		}
		required := map[string]bool{}
		if req, ok := def["required"].([]any); ok {
			for _, r := range req {
				if s, ok := r.(string); ok {
					required[s] = true
				}
			}
		}
		for name, v := range props {
			if !required[name] {
				return false
			}
			if sub, ok := v.(map[string]any); ok && !strictCompatible(sub) {
				return false
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		return strictCompatible(items)
	}
	return true
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonLength:
		return "max_tokens"
	case openai.FinishReasonContentFilter:
		return "error"
	default:
		return "end"
	}
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Failure{Op: OpChat, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := string(reqErr.Body)
		if msg == "" {
			msg = reqErr.Error()
		}
		return &Failure{Op: OpChat, StatusCode: reqErr.HTTPStatusCode, Message: msg, Err: err}
	}
	return &Failure{Op: OpChat, Message: err.Error(), Err: err}
}
