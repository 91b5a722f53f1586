package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// GroqProvider implements Provider on top of Client, so structured
// generation goes through the same transport, failure convention and
// event log as every other inference call.
type GroqProvider struct {
	client *Client
}

// NewGroqProvider creates a provider that uses client's chat model.
func NewGroqProvider(client *Client) *GroqProvider {
	return &GroqProvider{client: client}
}

func (p *GroqProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	body := chatRequest{
		Model:       p.client.cfg.ChatModel,
		Messages:    buildGroqMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.Schema != nil {
		body.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.chat(ctx, body)
	if err != nil {
		return nil, err
	}

	text, ok := resp.Content()
	if !ok {
		return nil, &ErrInvalidResponse{Content: resp.Raw, Err: fmt.Errorf("no content in chat response")}
	}

	content, err := finishContent(req.Schema, text)
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
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *GroqProvider) ModelID() string {
	return p.client.cfg.ChatModel
}

// buildGroqMessages prepends the system prompt. With a schema, the schema
// itself is appended to the system prompt since JSON-object mode does not
// take one.
func buildGroqMessages(req Request) []openai.ChatCompletionMessage {
	system := req.System
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			system = strings.TrimSpace(system + "\n\nRespond only with a JSON object matching this JSON Schema:\n" + string(def))
		}
	}

	msgs := req.Messages
	if system != "" {
		msgs = append([]Message{{Role: RoleSystem, Content: system}}, msgs...)
	}
	return toWireMessages(msgs)
}

// extractJSON strips Markdown code fences some models wrap JSON in.
func extractJSON(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSuffix(strings.TrimSpace(t), "```")
		return strings.TrimSpace(t)
	}
	if start, end := strings.Index(t, "{"), strings.LastIndex(t, "}"); start > 0 && end > start {
		return t[start : end+1]
	}
	return t
}
