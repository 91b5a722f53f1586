package tutor

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/progress"
)

// Recommendations is the outcome of a Recommend call.
type Recommendations struct {
	Items []progress.Recommendation

	// Generated is false when Items came from storage or the starter set.
	Generated bool
	Err       error
}

// Recommender suggests dashboard activities from the learner's profile.
type Recommender struct {
	provider llm.Provider
	progress *progress.Store
	cfg      Config
	log      *zap.Logger
}

// NewRecommender creates a Recommender.
func NewRecommender(provider llm.Provider, ps *progress.Store, cfg Config, log *zap.Logger) *Recommender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recommender{provider: provider, progress: ps, cfg: cfg, log: log}
}

type recommendationOutput struct {
	Recommendations []progress.Recommendation `json:"recommendations"`
}

// Recommend asks the model for three activities and stores them on the
// profile. When generation fails the stored recommendations, or the
// starter set if none are stored, are returned instead. Only storage
// errors are returned.
func (r *Recommender) Recommend(ctx context.Context) (*Recommendations, error) {
	profile, err := r.progress.Profile(ctx)
	if err != nil {
		return nil, err
	}

	items, genErr := r.generate(llm.WithPurpose(ctx, llm.PurposeRecommendations), profile)
	if genErr != nil {
		r.log.Warn("recommendations fell back to stored set", zap.Error(genErr))
		fallback := profile.Recommendations
		if len(fallback) == 0 {
			fallback = progress.StarterRecommendations()
		}
		return &Recommendations{Items: fallback, Err: genErr}, nil
	}

	if _, err := r.progress.Save(ctx, progress.ProfilePatch{Recommendations: items}); err != nil {
		return nil, err
	}
	return &Recommendations{Items: items, Generated: true}, nil
}

func (r *Recommender) generate(ctx context.Context, profile progress.Profile) ([]progress.Recommendation, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	resp, err := r.provider.Generate(ctx, llm.Request{
		System:      recommendSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: string(data)}},
		Schema:      RecommendationSchema,
		MaxTokens:   r.cfg.ReplyMaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}
	var out recommendationOutput
	if err := llm.Decode(resp, &out); err != nil {
		return nil, err
	}
	if len(out.Recommendations) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("no recommendations")}
	}
	return out.Recommendations, nil
}
