package tutor

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linguaspark/internal/history"
	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/store"
)

// fakeProvider answers by request kind, since feedback and reply calls
// race each other.
type fakeProvider struct {
	mu       sync.Mutex
	text     func(req llm.Request) (string, error)
	feedback func(req llm.Request) (json.RawMessage, error)
	calls    []llm.Request
}

func (f *fakeProvider) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if req.Schema != nil {
		raw, err := f.feedback(req)
		if err != nil {
			return nil, err
		}
		return &llm.Response{Content: raw}, nil
	}
	s, err := f.text(req)
	if err != nil {
		return nil, err
	}
	b, _ := json.Marshal(s)
	return &llm.Response{Content: b}, nil
}

func (f *fakeProvider) ModelID() string { return "fake" }

func (f *fakeProvider) systems() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		out = append(out, c.System)
	}
	return out
}

func echoProvider() *fakeProvider {
	return &fakeProvider{
		text: func(req llm.Request) (string, error) {
			switch {
			case strings.HasPrefix(req.System, "Translate"):
				return "EN: " + req.Messages[0].Content, nil
			case strings.Contains(req.System, "opening line"):
				return "¡Hola! ¿Qué tal?", nil
			default:
				return "Muy bien, gracias.", nil
			}
		},
		feedback: func(llm.Request) (json.RawMessage, error) {
			return json.RawMessage(`{"pronunciation":"needs-work","grammar":"good","corrections":["Estoy bien"],"score":72}`), nil
		},
	}
}

func newRecorder(t *testing.T) (*history.Recorder, *history.Repo) {
	t.Helper()
	repo := history.NewRepo(store.NewMemoryKV(), nil)
	return history.NewRecorder(repo, history.NewScope(store.NewMemoryKV())), repo
}

func TestStart_GreetsAndTranslates(t *testing.T) {
	prov := echoProvider()
	p := NewPractice(prov, nil, DefaultConfig(), nil)

	turn, err := p.Start(t.Context(), "restaurant", "spanish", "english")
	require.NoError(t, err)
	assert.Equal(t, history.SpeakerAssistant, turn.Speaker)
	assert.Equal(t, "¡Hola! ¿Qué tal?", turn.Text)
	assert.Equal(t, "EN: ¡Hola! ¿Qué tal?", turn.Translation)

	systems := prov.systems()
	require.Len(t, systems, 2)
	assert.Contains(t, systems[0], `"At a Restaurant" scenario in Spanish`)
	assert.Equal(t, "Translate this text from Spanish to English:", systems[1])
	assert.Equal(t, "restaurant", p.Scenario().ID)
	assert.Len(t, p.Turns(), 1)
}

func TestStart_SameLanguageSkipsTranslation(t *testing.T) {
	prov := echoProvider()
	p := NewPractice(prov, nil, DefaultConfig(), nil)

	turn, err := p.Start(t.Context(), "casual", "french", "french")
	require.NoError(t, err)
	assert.Empty(t, turn.Translation)
	assert.Len(t, prov.systems(), 1)
}

func TestStart_FallsBackToDefaultGreeting(t *testing.T) {
	prov := echoProvider()
	prov.text = func(llm.Request) (string, error) {
		return "", &llm.Failure{Op: llm.OpChat, StatusCode: 500, Message: "server error"}
	}
	p := NewPractice(prov, nil, DefaultConfig(), nil)

	turn, err := p.Start(t.Context(), "business", "german", "english")
	require.NoError(t, err)
	assert.Equal(t, "Guten Tag. Willkommen zu unserem Meeting.", turn.Text)
	assert.Equal(t, "Hello! How can I help you today?", turn.Translation)
}

func TestStart_UnknownScenario(t *testing.T) {
	p := NewPractice(echoProvider(), nil, DefaultConfig(), nil)
	_, err := p.Start(t.Context(), "karaoke", "spanish", "english")
	assert.Error(t, err)
}

func TestReply_FeedbackAndReply(t *testing.T) {
	prov := echoProvider()
	rec, repo := newRecorder(t)
	p := NewPractice(prov, rec, DefaultConfig(), nil)
	ctx := t.Context()

	_, err := p.Start(ctx, "casual", "spanish", "english")
	require.NoError(t, err)

	ex, err := p.Reply(ctx, "  Yo es bien  ")
	require.NoError(t, err)
	assert.Equal(t, "Yo es bien", ex.User.Text)
	require.NotNil(t, ex.User.Feedback)
	assert.Equal(t, 72, ex.User.Feedback.Score)
	assert.False(t, ex.User.Feedback.PronunciationOK())
	assert.True(t, ex.User.Feedback.GrammarOK())
	assert.Equal(t, []string{"Estoy bien"}, ex.User.Feedback.Corrections)
	assert.Equal(t, "Muy bien, gracias.", ex.Reply.Text)
	assert.NoError(t, ex.FeedbackErr)
	assert.NoError(t, ex.ReplyErr)

	// Greeting plus one exchange reaches the saving threshold.
	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "casual", records[0].Scenario)
	assert.Equal(t, "spanish", records[0].Language)
	assert.Len(t, records[0].Turns, 3)

	// The reply request carries the whole conversation.
	var replyReq llm.Request
	for _, c := range prov.calls {
		if strings.HasPrefix(c.System, "You are an AI language tutor helping users practice Spanish. The user") {
			replyReq = c
		}
	}
	require.Len(t, replyReq.Messages, 2)
	assert.Equal(t, llm.RoleAssistant, replyReq.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, replyReq.Messages[1].Role)
	assert.Contains(t, replyReq.System, "respond in English")
}

func TestReply_Fallbacks(t *testing.T) {
	prov := echoProvider()
	prov.feedback = func(llm.Request) (json.RawMessage, error) {
		return nil, &llm.ErrInvalidResponse{Err: assert.AnError}
	}
	prov.text = func(req llm.Request) (string, error) {
		if strings.Contains(req.System, "opening line") {
			return "Hola", nil
		}
		return "", &llm.Failure{Op: llm.OpChat, Message: "dial tcp: connection refused"}
	}
	p := NewPractice(prov, nil, DefaultConfig(), nil)
	_, err := p.Start(t.Context(), "casual", "spanish", "spanish")
	require.NoError(t, err)

	ex, err := p.Reply(t.Context(), "Hola")
	require.NoError(t, err)
	assert.Equal(t, DefaultFeedback(), *ex.User.Feedback)
	assert.Equal(t, NoResponse, ex.Reply.Text)
	assert.Error(t, ex.FeedbackErr)
	f, ok := llm.AsFailure(ex.ReplyErr)
	require.True(t, ok)
	assert.True(t, f.Transport())
}

func TestReply_EmptyInput(t *testing.T) {
	prov := echoProvider()
	p := NewPractice(prov, nil, DefaultConfig(), nil)
	_, err := p.Reply(t.Context(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, prov.calls)
}

func TestReply_StaleAfterRestart(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 2)
	prov := echoProvider()
	prov.text = func(req llm.Request) (string, error) {
		if strings.Contains(req.System, "The user is practicing") {
			entered <- struct{}{}
			<-release
		}
		return "Hola", nil
	}
	p := NewPractice(prov, nil, DefaultConfig(), nil)
	ctx := t.Context()
	_, err := p.Start(ctx, "casual", "spanish", "spanish")
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() {
		_, err := p.Reply(ctx, "¿Dónde está el baño?")
		errc <- err
	}()
	<-entered

	_, err = p.Start(ctx, "travel", "spanish", "spanish")
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-errc, ErrStale)
	turns := p.Turns()
	require.Len(t, turns, 1, "stale reply must not be applied")
	assert.Equal(t, "travel", p.Scenario().ID)
}

func TestReply_Canceled(t *testing.T) {
	prov := echoProvider()
	prov.text = func(req llm.Request) (string, error) {
		return "", context.Canceled
	}
	p := NewPractice(prov, nil, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := p.Reply(ctx, "hola")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslate_CachesOnTurn(t *testing.T) {
	prov := echoProvider()
	p := NewPractice(prov, nil, DefaultConfig(), nil)
	ctx := t.Context()
	_, err := p.Start(ctx, "casual", "spanish", "spanish")
	require.NoError(t, err)
	_, err = p.Reply(ctx, "Hola amigo")
	require.NoError(t, err)

	before := len(prov.calls)
	got, err := p.Translate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "EN: Muy bien, gracias.", got)
	assert.Equal(t, "Translate the following text to Spanish:", prov.calls[before].System)

	again, err := p.Translate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Len(t, prov.calls, before+1)

	_, err = p.Translate(ctx, 9)
	assert.Error(t, err)
}

func TestResume(t *testing.T) {
	prov := echoProvider()
	rec, repo := newRecorder(t)
	p := NewPractice(prov, rec, DefaultConfig(), nil)
	ctx := t.Context()

	_, err := p.Start(ctx, "shopping", "french", "english")
	require.NoError(t, err)
	_, err = p.Reply(ctx, "Bonjour")
	require.NoError(t, err)
	records, _ := repo.List(ctx)
	require.Len(t, records, 1)
	id := records[0].ID

	_, err = p.Start(ctx, "casual", "spanish", "english")
	require.NoError(t, err)

	got, err := p.Resume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "shopping", p.Scenario().ID)
	practice, _ := p.Languages()
	assert.Equal(t, "french", practice)

	p.SetResponseLanguage("german")
	_, response := p.Languages()
	assert.Equal(t, "german", response)
	assert.Len(t, p.Turns(), 3)

	// Continuing updates the same record in place.
	_, err = p.Reply(ctx, "Merci")
	require.NoError(t, err)
	records, _ = repo.List(ctx)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Turns, 5)

	_, err = p.Resume(ctx, "conv_missing")
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestDefaultGreeting(t *testing.T) {
	assert.Equal(t, "¡Hola! ¿Cómo estás hoy?", DefaultGreeting("casual", "spanish"))
	assert.Equal(t, "Where would you like to travel to?", DefaultGreeting("travel", "klingon"))
	assert.Equal(t, "Hello! How can I help you today?", DefaultGreeting("karaoke", "spanish"))
}

func TestGuard(t *testing.T) {
	var g Guard
	tok := g.Token()
	assert.True(t, g.Valid(tok))
	next := g.Advance()
	assert.False(t, g.Valid(tok))
	assert.True(t, g.Valid(next))
}
