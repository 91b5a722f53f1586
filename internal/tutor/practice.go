// Package tutor runs the inference-backed learning flows: conversation
// practice with feedback, translation, and dashboard recommendations.
// Every flow degrades to canned content when the model is unavailable.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/linguaspark/internal/history"
	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/llm"
)

// NoResponse replaces an assistant reply the model failed to produce.
const NoResponse = "No response from API"

// ErrEmptyInput is returned when the learner sends a blank message.
var ErrEmptyInput = errors.New("message is empty")

// DefaultFeedback is used when feedback cannot be generated or parsed.
func DefaultFeedback() history.Feedback {
	return history.Feedback{
		Pronunciation: "good",
		Grammar:       "good",
		Corrections:   []string{},
		Score:         80,
	}
}

// Exchange is the result of one learner message.
type Exchange struct {
	User  history.Turn
	Reply history.Turn

	// FeedbackErr and ReplyErr hold the failures behind any fallback
	// content. Both are nil when the model answered.
	FeedbackErr error
	ReplyErr    error
}

// Practice is a conversation practice session. It is safe for concurrent
// use; a response that arrives after Start or Resume replaced the
// conversation is dropped with ErrStale.
type Practice struct {
	provider llm.Provider
	recorder *history.Recorder
	cfg      Config
	log      *zap.Logger
	now      func() time.Time

	guard Guard

	mu       sync.Mutex
	scenario Scenario
	practice string
	response string
	turns    []history.Turn
}

// NewPractice creates a practice session. recorder may be nil to skip
// history.
func NewPractice(provider llm.Provider, recorder *history.Recorder, cfg Config, log *zap.Logger) *Practice {
	if log == nil {
		log = zap.NewNop()
	}
	scenario, _ := FindScenario(DefaultScenario)
	return &Practice{
		provider: provider,
		recorder: recorder,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		scenario: scenario,
		practice: "spanish",
		response: "english",
	}
}

// Scenario returns the current scenario.
func (p *Practice) Scenario() Scenario {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scenario
}

// Languages returns the practice and response languages.
func (p *Practice) Languages() (practice, response string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.practice, p.response
}

// SetResponseLanguage changes the language replies and translations use.
func (p *Practice) SetResponseLanguage(language string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.response = language
}

// Turns returns a copy of the conversation so far.
func (p *Practice) Turns() []history.Turn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]history.Turn(nil), p.turns...)
}

// Start begins a new conversation with an opening line in the practice
// language, translated when the response language differs. Any
// conversation in progress is ended.
func (p *Practice) Start(ctx context.Context, scenarioID, practice, response string) (history.Turn, error) {
	scenario, ok := FindScenario(scenarioID)
	if !ok {
		return history.Turn{}, fmt.Errorf("unknown scenario %q", scenarioID)
	}
	tok := p.guard.Advance()

	if p.recorder != nil {
		if err := p.recorder.EndSession(ctx); err != nil {
			return history.Turn{}, err
		}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeGreeting)
	greeting := history.Turn{Speaker: history.SpeakerAssistant, At: p.now()}

	text, err := p.generateText(ctx, greetingSystemPrompt(lessons.DisplayLanguage(practice), scenario), greetingUserMessage, p.cfg.ReplyMaxTokens)
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return history.Turn{}, ctx.Err()
		}
		p.log.Warn("greeting fell back to default", zap.String("scenario", scenario.ID), zap.Error(err))
		greeting.Text = DefaultGreeting(scenario.ID, practice)
		greeting.Translation = fallbackGreeting
	default:
		greeting.Text = text
		if response != practice {
			greeting.Translation, err = p.translate(ctx, text, practice, response)
			if err != nil {
				p.log.Warn("greeting translation failed", zap.Error(err))
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.guard.Valid(tok) {
		return history.Turn{}, ErrStale
	}
	p.scenario = scenario
	p.practice = practice
	p.response = response
	p.turns = []history.Turn{greeting}
	return greeting, nil
}

// Reply sends the learner's message. Feedback on the message and the
// assistant's reply are requested concurrently; either falls back to
// canned content on failure. The exchange is recorded in history once the
// conversation is long enough.
func (p *Practice) Reply(ctx context.Context, input string) (*Exchange, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	tok := p.guard.Token()
	p.mu.Lock()
	scenario, practice, response := p.scenario, p.practice, p.response
	prior := append([]history.Turn(nil), p.turns...)
	p.mu.Unlock()

	ex := &Exchange{
		User:  history.Turn{Speaker: history.SpeakerUser, Text: input, At: p.now()},
		Reply: history.Turn{Speaker: history.SpeakerAssistant},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fb, err := p.feedback(llm.WithPurpose(gctx, llm.PurposeFeedback), practice, input)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ex.FeedbackErr = err
			fb = DefaultFeedback()
		}
		ex.User.Feedback = &fb
		return nil
	})
	g.Go(func() error {
		msgs := conversationMessages(prior, input)
		text, err := p.generate(llm.WithPurpose(gctx, llm.PurposeConversation), llm.Request{
			System:      replySystemPrompt(lessons.DisplayLanguage(practice), lessons.DisplayLanguage(response), scenario),
			Messages:    msgs,
			MaxTokens:   p.cfg.ReplyMaxTokens,
			Temperature: p.cfg.Temperature,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ex.ReplyErr = err
			text = NoResponse
		}
		ex.Reply.Text = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ex.Reply.At = p.now()

	if ex.FeedbackErr != nil {
		p.log.Warn("feedback fell back to default", zap.Error(ex.FeedbackErr))
	}
	if ex.ReplyErr != nil {
		p.log.Warn("reply fell back to placeholder", zap.Error(ex.ReplyErr))
	}

	p.mu.Lock()
	if !p.guard.Valid(tok) {
		p.mu.Unlock()
		return nil, ErrStale
	}
	p.turns = append(p.turns, ex.User, ex.Reply)
	turns := append([]history.Turn(nil), p.turns...)
	p.mu.Unlock()

	p.record(ctx, scenario.ID, practice, turns)
	return ex, nil
}

// Translate returns the translation of turn i into the response language,
// requesting it once and caching it on the turn.
func (p *Practice) Translate(ctx context.Context, i int) (string, error) {
	tok := p.guard.Token()
	p.mu.Lock()
	if i < 0 || i >= len(p.turns) {
		p.mu.Unlock()
		return "", fmt.Errorf("no turn %d", i)
	}
	turn := p.turns[i]
	response := p.response
	p.mu.Unlock()

	if turn.Translation != "" {
		return turn.Translation, nil
	}

	text, err := p.translate(llm.WithPurpose(ctx, llm.PurposeTranslation), turn.Text, "", response)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	if !p.guard.Valid(tok) {
		p.mu.Unlock()
		return "", ErrStale
	}
	p.turns[i].Translation = text
	turns := append([]history.Turn(nil), p.turns...)
	scenario, practice := p.scenario.ID, p.practice
	p.mu.Unlock()

	p.record(ctx, scenario, practice, turns)
	return text, nil
}

// Resume reloads a stored conversation and makes it current.
func (p *Practice) Resume(ctx context.Context, id string) (*history.Record, error) {
	if p.recorder == nil {
		return nil, history.ErrNotFound
	}
	tok := p.guard.Advance()
	rec, err := p.recorder.Resume(ctx, id)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.guard.Valid(tok) {
		return nil, ErrStale
	}
	if s, ok := FindScenario(rec.Scenario); ok {
		p.scenario = s
	}
	if rec.Language != "" {
		p.practice = rec.Language
	}
	p.turns = append([]history.Turn(nil), rec.Turns...)
	return rec, nil
}

func (p *Practice) record(ctx context.Context, scenario, language string, turns []history.Turn) {
	if p.recorder == nil {
		return
	}
	id, err := p.recorder.Save(ctx, scenario, language, turns)
	if err != nil {
		p.log.Warn("saving conversation failed", zap.Error(err))
		return
	}
	if id != "" {
		p.log.Debug("conversation saved", zap.String("id", id), zap.Int("turns", len(turns)))
	}
}

func (p *Practice) feedback(ctx context.Context, practice, input string) (history.Feedback, error) {
	resp, err := p.provider.Generate(ctx, llm.Request{
		System:    feedbackSystemPrompt(lessons.DisplayLanguage(practice)),
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: input}},
		Schema:    FeedbackSchema,
		MaxTokens: p.cfg.FeedbackMaxTokens,
	})
	if err != nil {
		return history.Feedback{}, err
	}
	var fb history.Feedback
	if err := llm.Decode(resp, &fb); err != nil {
		return history.Feedback{}, err
	}
	if fb.Corrections == nil {
		fb.Corrections = []string{}
	}
	return fb, nil
}

func (p *Practice) translate(ctx context.Context, text, from, to string) (string, error) {
	if from != "" {
		from = lessons.DisplayLanguage(from)
	}
	return p.generateText(ctx, translateSystemPrompt(from, lessons.DisplayLanguage(to)), text, p.cfg.ReplyMaxTokens)
}

func (p *Practice) generateText(ctx context.Context, system, user string, maxTokens int) (string, error) {
	return p.generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		MaxTokens:   maxTokens,
		Temperature: p.cfg.Temperature,
	})
}

// generate returns the model's text, treating a blank answer as a failure.
func (p *Practice) generate(ctx context.Context, req llm.Request) (string, error) {
	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty response")}
	}
	return text, nil
}
