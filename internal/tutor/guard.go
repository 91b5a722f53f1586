package tutor

import (
	"errors"
	"sync/atomic"
)

// ErrStale is returned when a response arrives after the conversation it
// belonged to was replaced. The response is discarded.
var ErrStale = errors.New("response superseded")

// Token identifies the generation a request was issued in.
type Token uint64

// Guard is a generation counter. Starting a new conversation advances it,
// which invalidates every token handed out before.
type Guard struct {
	gen atomic.Uint64
}

// Token returns the current generation.
func (g *Guard) Token() Token {
	return Token(g.gen.Load())
}

// Advance starts a new generation and returns its token.
func (g *Guard) Advance() Token {
	return Token(g.gen.Add(1))
}

// Valid reports whether tok is still the current generation.
func (g *Guard) Valid(tok Token) bool {
	return Token(g.gen.Load()) == tok
}
