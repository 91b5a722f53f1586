package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Operation names a remote inference operation.
type Operation string

const (
	OpChat       Operation = "chat"
	OpTranscribe Operation = "transcribe"
	OpSpeech     Operation = "synthesize"
	OpReasoning  Operation = "reasoning"
	OpVision     Operation = "vision"
)

// Failure is the tagged error every inference operation returns instead of
// panicking. StatusCode is zero when no response was obtained (transport
// failure); otherwise it carries the HTTP status and Message holds the raw
// response body.
type Failure struct {
	Op         Operation
	StatusCode int
	Message    string
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode == 0 {
		return fmt.Sprintf("%s: request failed: %s", f.Op, f.Message)
	}
	return fmt.Sprintf("%s: http %d: %s", f.Op, f.StatusCode, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// IsError always reports true. It mirrors the isError tag callers check.
func (f *Failure) IsError() bool { return true }

// Transport reports whether the failure happened before any response.
func (f *Failure) Transport() bool { return f.StatusCode == 0 }

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema, or no usable content at all.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrEmptyMessages is returned when a chat request carries no messages.
var ErrEmptyMessages = errors.New("messages must not be empty")
