package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const chatCompletionsPath = "/openai/v1/chat/completions"

// ChatCompletion is a parsed chat response. Raw keeps the response body
// verbatim for callers that need fields the typed view does not model.
type ChatCompletion struct {
	openai.ChatCompletionResponse
	Raw json.RawMessage `json:"-"`
}

// Content returns the first choice's message content. ok is false when the
// response carries no choices or an empty message.
func (c *ChatCompletion) Content() (string, bool) {
	if c == nil || len(c.Choices) == 0 {
		return "", false
	}
	content := c.Choices[0].Message.Content
	return content, content != ""
}

// chatRequest is the wire body. The extra fields are only set by the
// structured-generation provider.
type chatRequest struct {
	Model          string                                `json:"model"`
	Messages       []openai.ChatCompletionMessage        `json:"messages"`
	MaxTokens      int                                   `json:"max_tokens,omitempty"`
	Temperature    float64                               `json:"temperature,omitempty"`
	ResponseFormat *openai.ChatCompletionResponseFormat `json:"response_format,omitempty"`
}

// ChatCompletion sends messages to the chat model. An empty message list
// fails without sending a request.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (*ChatCompletion, error) {
	return c.chat(ctx, chatRequest{Model: c.cfg.ChatModel, Messages: toWireMessages(messages)})
}

func (c *Client) chat(ctx context.Context, body chatRequest) (*ChatCompletion, error) {
	if len(body.Messages) == 0 {
		return nil, &Failure{Op: OpChat, Message: ErrEmptyMessages.Error(), Err: ErrEmptyMessages}
	}

	res, err := c.doJSON(ctx, call{op: OpChat, model: body.Model, path: chatCompletionsPath}, body)
	if err != nil {
		return nil, err
	}

	out := &ChatCompletion{Raw: json.RawMessage(res.body)}
	if err := json.Unmarshal(res.body, &out.ChatCompletionResponse); err != nil {
		return nil, &ErrInvalidResponse{Content: res.body, Err: fmt.Errorf("decode chat response: %w", err)}
	}
	return out, nil
}

func toWireMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return out
}
