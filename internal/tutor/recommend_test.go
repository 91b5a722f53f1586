package tutor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/progress"
	"github.com/abhisek/linguaspark/internal/store"
)

const recommendationsJSON = `{"recommendations":[
	{"title":"Ser vs Estar","type":"Lesson","duration":"15 min","icon":"📘","link":"/lessons/advanced-1"},
	{"title":"Ordering Tapas","type":"Practice","duration":"10 min","icon":"🍽️","link":"/practice/restaurant"},
	{"title":"Number Sprint","type":"Game","duration":"5 min","icon":"🔢","link":"/games/numbers"}
]}`

func TestRecommend_StoresGenerated(t *testing.T) {
	ps := progress.New(store.NewMemoryKV(), progress.Options{})
	ctx := t.Context()
	_, err := ps.Initialize(ctx, "spanish")
	require.NoError(t, err)

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(recommendationsJSON)})
	r := NewRecommender(mock, ps, DefaultConfig(), nil)

	got, err := r.Recommend(ctx)
	require.NoError(t, err)
	assert.True(t, got.Generated)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Ser vs Estar", got.Items[0].Title)
	assert.Equal(t, "Lesson", got.Items[0].Kind)

	req := mock.Requests()[0]
	assert.Equal(t, recommendSystemPrompt, req.System)
	assert.Contains(t, req.Messages[0].Content, `"language":"spanish"`)

	p, err := ps.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, got.Items, p.Recommendations)
}

func TestRecommend_FallsBackToStored(t *testing.T) {
	ps := progress.New(store.NewMemoryKV(), progress.Options{})
	ctx := t.Context()
	stored := []progress.Recommendation{{Title: "Keep going", Kind: "Practice"}}
	_, err := ps.Save(ctx, progress.ProfilePatch{Recommendations: stored})
	require.NoError(t, err)

	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.Failure{Op: llm.OpChat, StatusCode: 500, Message: "server error"},
	})
	got, err := NewRecommender(mock, ps, DefaultConfig(), nil).Recommend(ctx)
	require.NoError(t, err)
	assert.False(t, got.Generated)
	assert.Error(t, got.Err)
	assert.Equal(t, stored, got.Items)
}

func TestRecommend_FallsBackToStarter(t *testing.T) {
	ps := progress.New(store.NewMemoryKV(), progress.Options{})
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"nope":true}`)})

	got, err := NewRecommender(mock, ps, DefaultConfig(), nil).Recommend(t.Context())
	require.NoError(t, err)
	assert.False(t, got.Generated)
	assert.Equal(t, progress.StarterRecommendations(), got.Items)
}
