package llm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"google.golang.org/genai"
)

// geminiModels maps the short names accepted in LINGUASPARK_GEMINI_MODEL.
var geminiModels = map[string]string{
	"gemini-flash":      "gemini-2.5-flash",
	"gemini-flash-lite": "gemini-2.5-flash-lite",
	"gemini-pro":        "gemini-2.5-pro",
}

// GeminiProvider generates tutor content through the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	system, turns := chatTurns(req)

	config := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(turns), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("prompt blocked: %s", result.PromptFeedback.BlockReason)}
	}
	if len(result.Candidates) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no candidates in Gemini response")}
	}

	content, err := finishContent(req.Schema, result.Text())
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Content:    content,
		Model:      p.model,
		StopReason: mapGeminiStopReason(result.Candidates[0].FinishReason),
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func geminiContents(turns []Message) []*genai.Content {
	out := make([]*genai.Content, len(turns))
	for i, t := range turns {
		role := genai.RoleUser
		if t.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out[i] = genai.NewContentFromText(t.Content, genai.Role(role))
	}
	return out
}

// geminiSchema converts a JSON Schema definition into Gemini's schema type.
// Required properties keep their declared order so section titles come
// before bodies and vocabulary.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		s.Type = geminiType(t)
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	s.Enum = stringList(def["enum"])
	if v, ok := number(def["minimum"]); ok {
		s.Minimum = &v
	}
	if v, ok := number(def["maximum"]); ok {
		s.Maximum = &v
	}
	if v, ok := number(def["minItems"]); ok {
		n := int64(v)
		s.MinItems = &n
	}
	if v, ok := number(def["maxItems"]); ok {
		n := int64(v)
		s.MaxItems = &n
	}
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}

	props, ok := def["properties"].(map[string]any)
	if !ok {
		return s
	}
	s.Required = stringList(def["required"])
	s.Properties = make(map[string]*genai.Schema, len(props))
	var rest []string
	for name, v := range props {
		if sub, ok := v.(map[string]any); ok {
			s.Properties[name] = geminiSchema(sub)
		}
		if !slices.Contains(s.Required, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	s.PropertyOrdering = append(slices.Clone(s.Required), rest...)
	return s
}

func geminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func stringList(v any) []string {
	var out []string
	switch list := v.(type) {
	case []any:
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, list...)
	}
	return out
}

// number reads a numeric schema keyword. Definitions written in Go carry
// ints; ones decoded from JSON carry float64.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func mapGeminiStopReason(reason genai.FinishReason) string {
	switch reason {
	case genai.FinishReasonMaxTokens:
		return "max_tokens"
	case genai.FinishReasonSafety, genai.FinishReasonRecitation, genai.FinishReasonProhibitedContent:
		return "error"
	default:
		return "end"
	}
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return &Failure{Op: OpChat, StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	return &Failure{Op: OpChat, Message: err.Error(), Err: err}
}
