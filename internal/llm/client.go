package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/store"
)

// Client talks to the Groq OpenAI-compatible endpoints. Every operation
// returns either a parsed success value or a *Failure; none of them retry
// and none of them panic on HTTP errors.
type Client struct {
	cfg    GroqConfig
	http   *http.Client
	log    *zap.Logger
	events store.EventRepo
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// WithEventRepo records every call in the inference event log.
func WithEventRepo(repo store.EventRepo) ClientOption {
	return func(c *Client) { c.events = repo }
}

// NewClient creates a Client from configuration.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	g := cfg.Groq
	def := DefaultConfig().Groq
	if g.BaseURL == "" {
		g.BaseURL = def.BaseURL
	}
	if g.ChatModel == "" {
		g.ChatModel = def.ChatModel
	}
	if g.TranscriptionModel == "" {
		g.TranscriptionModel = def.TranscriptionModel
	}
	if g.SpeechModel == "" {
		g.SpeechModel = def.SpeechModel
	}
	if g.SpeechVoice == "" {
		g.SpeechVoice = def.SpeechVoice
	}
	if g.SpeechFormat == "" {
		g.SpeechFormat = def.SpeechFormat
	}
	if g.ReasoningModel == "" {
		g.ReasoningModel = def.ReasoningModel
	}
	g.BaseURL = strings.TrimRight(g.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	c := &Client{
		cfg:  g,
		http: &http.Client{Timeout: timeout},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChatModel returns the configured chat model id.
func (c *Client) ChatModel() string {
	return c.cfg.ChatModel
}

// SpeechFormat returns the audio encoding Speech responses use.
func (c *Client) SpeechFormat() string {
	return c.cfg.SpeechFormat
}

// call describes one outbound request for logging and the event log.
type call struct {
	op      Operation
	model   string
	path    string
	summary string // request body as recorded in the event log
}

// result is the raw outcome of a request that produced a response.
type result struct {
	status int
	body   []byte
}

func (c *Client) url(path string) string {
	return c.cfg.BaseURL + path
}

// doJSON posts a JSON body and returns the raw response. Non-2xx statuses
// and transport errors become a *Failure.
func (c *Client) doJSON(ctx context.Context, cl call, payload any) (*result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Failure{Op: cl.op, Message: fmt.Sprintf("encode request: %v", err), Err: err}
	}
	cl.summary = string(body)
	return c.send(ctx, cl, "application/json", body)
}

// doMultipart posts a multipart form with a single file part plus fields.
func (c *Client) doMultipart(ctx context.Context, cl call, file Blob, fields map[string]string) (*result, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := file.Name
	if name == "" {
		name = "upload"
	}
	part, err := w.CreateFormFile("file", name)
	if err == nil {
		_, err = part.Write(file.Data)
	}
	for k, v := range fields {
		if err != nil {
			break
		}
		err = w.WriteField(k, v)
	}
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		return nil, &Failure{Op: cl.op, Message: fmt.Sprintf("encode multipart: %v", err), Err: err}
	}

	cl.summary = fmt.Sprintf("[multipart] file=%s (%d bytes) %v", name, len(file.Data), fields)
	return c.send(ctx, cl, w.FormDataContentType(), buf.Bytes())
}

func (c *Client) send(ctx context.Context, cl call, contentType string, body []byte) (*result, error) {
	reqID := uuid.NewString()
	start := time.Now()

	res, err := c.roundTrip(ctx, cl, contentType, body)

	latency := time.Since(start)
	fields := []zap.Field{
		zap.String("request_id", reqID),
		zap.String("op", string(cl.op)),
		zap.String("model", cl.model),
		zap.Duration("latency", latency),
	}
	if f, ok := AsFailure(err); ok {
		c.log.Warn("inference request failed", append(fields,
			zap.Int("status", f.StatusCode), zap.String("error", f.Message))...)
	} else if res != nil {
		c.log.Debug("inference request", append(fields, zap.Int("status", res.status))...)
	}

	c.record(ctx, reqID, cl, res, err, latency)
	return res, err
}

func (c *Client) roundTrip(ctx context.Context, cl call, contentType string, body []byte) (*result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(cl.path), bytes.NewReader(body))
	if err != nil {
		return nil, &Failure{Op: cl.op, Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	// Sent even when empty; the service answers 401 and that surfaces as
	// a Failure like any other status.
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Failure{Op: cl.op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Failure{Op: cl.op, StatusCode: resp.StatusCode, Message: fmt.Sprintf("read body: %v", err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Failure{Op: cl.op, StatusCode: resp.StatusCode, Message: string(raw)}
	}
	return &result{status: resp.StatusCode, body: raw}, nil
}

// record appends the call to the event log. Failures to record are logged
// and never surface to the caller.
func (c *Client) record(ctx context.Context, reqID string, cl call, res *result, err error, latency time.Duration) {
	if c.events == nil {
		return
	}

	data := store.LLMRequestEventData{
		RequestID:   reqID,
		Operation:   string(cl.op),
		Provider:    "groq",
		Model:       cl.model,
		Purpose:     string(PurposeFrom(ctx)),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: cl.summary,
	}
	if res != nil {
		data.StatusCode = res.status
		if isTextual(cl.op) {
			data.ResponseBody = string(res.body)
		} else {
			data.ResponseBody = fmt.Sprintf("[binary %d bytes]", len(res.body))
		}
		if cl.op == OpChat {
			var u struct {
				Usage struct {
					PromptTokens     int `json:"prompt_tokens"`
					CompletionTokens int `json:"completion_tokens"`
				} `json:"usage"`
			}
			if json.Unmarshal(res.body, &u) == nil {
				data.InputTokens = u.Usage.PromptTokens
				data.OutputTokens = u.Usage.CompletionTokens
			}
		}
	}
	if f, ok := AsFailure(err); ok {
		data.StatusCode = f.StatusCode
		data.ErrorMessage = f.Message
		data.ResponseBody = f.Message
	}

	// The request may already be canceled; the event should still land.
	recCtx := context.WithoutCancel(ctx)
	if logErr := c.events.AppendLLMRequest(recCtx, data); logErr != nil {
		c.log.Warn("failed to log inference event", zap.Error(logErr))
	}
}

func isTextual(op Operation) bool {
	return op != OpSpeech
}
