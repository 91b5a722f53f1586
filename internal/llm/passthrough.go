package llm

import (
	"context"
	"encoding/json"
)

const (
	reasoningPath = "/openai/v1/reasoning/completions"
	visionPath    = "/openai/v1/vision/analyze"
)

// RawResult carries an endpoint's JSON response without interpretation.
type RawResult struct {
	StatusCode int
	Body       json.RawMessage
}

// Reasoning sends a single prompt to the reasoning model.
func (c *Client) Reasoning(ctx context.Context, prompt string) (*RawResult, error) {
	body := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}{c.cfg.ReasoningModel, prompt}

	res, err := c.doJSON(ctx, call{op: OpReasoning, model: c.cfg.ReasoningModel, path: reasoningPath}, body)
	if err != nil {
		return nil, err
	}
	return &RawResult{StatusCode: res.status, Body: res.body}, nil
}

// VisionAnalyze uploads an image for analysis.
func (c *Client) VisionAnalyze(ctx context.Context, image Blob) (*RawResult, error) {
	if image.Name == "" {
		image.Name = "image"
	}
	res, err := c.doMultipart(ctx, call{op: OpVision, path: visionPath}, image, nil)
	if err != nil {
		return nil, err
	}
	return &RawResult{StatusCode: res.status, Body: res.body}, nil
}
