package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a scripted reply for MockProvider.
type MockResponse struct {
	// Schema restricts the reply to requests carrying the schema of that
	// name, so concurrent feedback and reply calls each get their own.
	// Empty matches any request.
	Schema string

	// Content is the structured reply. Text is used for unstructured
	// replies when Content is empty.
	Content json.RawMessage
	Text    string

	Usage Usage
	Err   error
}

// MockProvider replays scripted responses. Structured replies are checked
// against the request schema the way real providers check model output.
// With nothing scripted every call fails, which drives the tutor flows to
// their canned fallbacks; the "mock" provider setting relies on that for
// offline use.
type MockProvider struct {
	mu       sync.Mutex
	queue    []MockResponse
	requests []Request
}

// NewMockProvider creates a MockProvider that replays responses in order.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	name := ""
	if req.Schema != nil {
		name = req.Schema.Name
	}
	i := m.next(name)
	if i < 0 {
		return nil, &Failure{Op: OpChat, Message: "mock: nothing scripted for " + describeRequest(name)}
	}
	r := m.queue[i]
	m.queue = append(m.queue[:i], m.queue[i+1:]...)
	if r.Err != nil {
		return nil, r.Err
	}

	content := r.Content
	if len(content) == 0 {
		content = textContent(r.Text)
	} else if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: r.Usage, Model: "mock", StopReason: "end"}, nil
}

// next finds the first queued reply usable for a request with the given
// schema name.
func (m *MockProvider) next(schema string) int {
	for i, r := range m.queue {
		if r.Schema == "" || r.Schema == schema {
			return i
		}
	}
	return -1
}

func describeRequest(schema string) string {
	if schema == "" {
		return "text request"
	}
	return "schema " + schema
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Script queues more replies.
func (m *MockProvider) Script(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// Pending reports how many scripted replies have not been used.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
