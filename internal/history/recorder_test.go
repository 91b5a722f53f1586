package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linguaspark/internal/store"
)

func newTestRecorder(t *testing.T) (*Recorder, *Repo, *Scope) {
	t.Helper()
	repo := NewRepo(store.NewMemoryKV(), nil)
	scope := NewScope(store.NewMemoryKV())
	r := NewRecorder(repo, scope)
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return r, repo, scope
}

func turns(n int) []Turn {
	out := make([]Turn, n)
	for i := range out {
		sp := SpeakerAssistant
		if i%2 == 1 {
			sp = SpeakerUser
		}
		out[i] = Turn{Speaker: sp, Text: "hola"}
	}
	return out
}

func TestRecorderSkipsShortConversations(t *testing.T) {
	r, repo, scope := newTestRecorder(t)
	ctx := context.Background()

	id, err := r.Save(ctx, "casual", "spanish", turns(2))
	require.NoError(t, err)
	assert.Empty(t, id)

	records, _ := repo.List(ctx)
	assert.Empty(t, records)
	_, ok, _ := scope.Current(ctx)
	assert.False(t, ok, "no session id should be created for a short conversation")
}

func TestRecorderCreatesAndUpdates(t *testing.T) {
	r, repo, scope := newTestRecorder(t)
	ctx := context.Background()

	id, err := r.Save(ctx, "restaurant", "french", turns(3))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "conv_"))

	current, ok, err := scope.Current(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, current)

	first, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, first)

	id2, err := r.Save(ctx, "restaurant", "french", turns(5))
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Turns, 5)
	assert.Equal(t, first.StartedAt, records[0].StartedAt)
	assert.True(t, records[0].UpdatedAt.After(records[0].StartedAt))
}

func TestRecorderEndSessionStartsNewRecord(t *testing.T) {
	r, repo, _ := newTestRecorder(t)
	ctx := context.Background()

	id1, err := r.Save(ctx, "casual", "spanish", turns(3))
	require.NoError(t, err)
	require.NoError(t, r.EndSession(ctx))
	id2, err := r.Save(ctx, "shopping", "spanish", turns(3))
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	records, _ := repo.List(ctx)
	assert.Equal(t, []string{id2, id1}, ids(records))
}

func TestRecorderResume(t *testing.T) {
	r, repo, scope := newTestRecorder(t)
	ctx := context.Background()

	id, err := r.Save(ctx, "travel", "german", turns(3))
	require.NoError(t, err)
	require.NoError(t, r.EndSession(ctx))

	got, err := r.Resume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "travel", got.Scenario)

	current, _, _ := scope.Current(ctx)
	assert.Equal(t, id, current)

	_, err = r.Save(ctx, "travel", "german", turns(4))
	require.NoError(t, err)
	records, _ := repo.List(ctx)
	assert.Len(t, records, 1)

	_, err = r.Resume(ctx, "conv_missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFeedbackFlags(t *testing.T) {
	f := Feedback{Pronunciation: "good", Grammar: "needs-work"}
	assert.True(t, f.PronunciationOK())
	assert.False(t, f.GrammarOK())
}
