// Package speech speaks text aloud one sentence at a time.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrUnsupported means no speech backend is available.
var ErrUnsupported = errors.New("speech synthesis is not supported")

// Voice speaks one segment and returns once it has finished.
type Voice interface {
	Say(ctx context.Context, text string) error
}

// SegmentError reports a segment the voice failed to speak. Segments after
// it are not spoken.
type SegmentError struct {
	Index   int
	Segment string
	Code    string
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("speech synthesis error: %s (segment %d)", e.Code, e.Index)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// coder is implemented by voice errors that carry a short error code.
type coder interface {
	Code() string
}

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Segments splits text into sentences ending in '.', '!' or '?'. Trailing
// text without a terminator becomes its own final segment. Blank text
// yields no segments.
func Segments(text string) []string {
	var out []string
	end := 0
	for _, loc := range sentencePattern.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[loc[0]:loc[1]]); s != "" {
			out = append(out, s)
		}
		end = loc[1]
	}
	if tail := strings.TrimSpace(text[end:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// Speaker serializes speech. Starting a new Speak cancels the one in
// flight and waits for it to stop before speaking.
type Speaker struct {
	voice Voice
	log   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpeaker creates a Speaker. A nil voice makes every Speak call return
// ErrUnsupported.
func NewSpeaker(voice Voice, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{voice: voice, log: log}
}

// Speak says text segment by segment, in order, waiting for each to
// finish. It returns context.Canceled when stopped or preempted by a
// later Speak, and ctx's own error when ctx ends first.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	if s.voice == nil {
		return ErrUnsupported
	}

	qctx, cancel, done := s.begin(ctx)
	defer s.end(cancel, done)

	for i, seg := range Segments(text) {
		if err := qctx.Err(); err != nil {
			return err
		}
		if err := s.voice.Say(qctx, seg); err != nil {
			if qerr := qctx.Err(); qerr != nil {
				return qerr
			}
			s.log.Warn("speech segment failed", zap.Int("index", i), zap.Error(err))
			return &SegmentError{Index: i, Segment: seg, Code: errorCode(err), Err: err}
		}
	}
	return nil
}

// Stop cancels the speech in flight, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// begin cancels any active queue, waits for it to finish and installs a
// new one.
func (s *Speaker) begin(ctx context.Context) (context.Context, context.CancelFunc, chan struct{}) {
	s.mu.Lock()
	for s.cancel != nil {
		s.cancel()
		prev := s.done
		s.mu.Unlock()
		<-prev
		s.mu.Lock()
	}
	qctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	s.mu.Unlock()
	return qctx, cancel, done
}

func (s *Speaker) end(cancel context.CancelFunc, done chan struct{}) {
	cancel()
	s.mu.Lock()
	if s.done == done {
		s.cancel, s.done = nil, nil
	}
	s.mu.Unlock()
	close(done)
}

func errorCode(err error) string {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("exit-%d", exitErr.ExitCode())
	}
	return "synthesis-failed"
}
