package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/linguaspark/internal/store"
)

// ErrNotFound is returned when resuming a conversation that is not stored.
var ErrNotFound = errors.New("conversation not found")

// Scope holds the id of the conversation in progress. It lives in the
// session KV so it does not outlive the session.
type Scope struct {
	kv store.KV
}

// NewScope creates a Scope on top of the session KV.
func NewScope(kv store.KV) *Scope {
	return &Scope{kv: kv}
}

// Current returns the active conversation id, if any.
func (s *Scope) Current(ctx context.Context) (string, bool, error) {
	id, ok, err := s.kv.Get(ctx, KeySession)
	if err != nil {
		return "", false, fmt.Errorf("read session id: %w", err)
	}
	return id, ok && id != "", nil
}

// Set makes id the active conversation.
func (s *Scope) Set(ctx context.Context, id string) error {
	if err := s.kv.Set(ctx, KeySession, id); err != nil {
		return fmt.Errorf("write session id: %w", err)
	}
	return nil
}

// Clear forgets the active conversation.
func (s *Scope) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("clear session id: %w", err)
	}
	return nil
}

// Recorder applies the saving rules for practice conversations.
type Recorder struct {
	repo  *Repo
	scope *Scope
	now   func() time.Time
}

// NewRecorder creates a Recorder.
func NewRecorder(repo *Repo, scope *Scope) *Recorder {
	return &Recorder{repo: repo, scope: scope, now: time.Now}
}

// Save records turns under the active conversation, starting one if
// needed. Conversations shorter than MinTurnsToSave are not recorded and
// Save returns an empty id.
func (r *Recorder) Save(ctx context.Context, scenario, language string, turns []Turn) (string, error) {
	if len(turns) < MinTurnsToSave {
		return "", nil
	}

	id, ok, err := r.scope.Current(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		id = NewID()
		if err := r.scope.Set(ctx, id); err != nil {
			return "", err
		}
	}

	now := r.now()
	rec := Record{
		ID:        id,
		Scenario:  scenario,
		Language:  language,
		StartedAt: now,
		UpdatedAt: now,
		Turns:     append([]Turn(nil), turns...),
	}
	existing, err := r.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if existing != nil {
		rec.StartedAt = existing.StartedAt
	}

	if err := r.repo.Upsert(ctx, rec); err != nil {
		return "", err
	}
	return id, nil
}

// Resume makes a stored conversation active again and returns it.
func (r *Recorder) Resume(ctx context.Context, id string) (*Record, error) {
	rec, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := r.scope.Set(ctx, id); err != nil {
		return nil, err
	}
	return rec, nil
}

// EndSession forgets the active conversation. The next Save starts a new
// record.
func (r *Recorder) EndSession(ctx context.Context) error {
	return r.scope.Clear(ctx)
}

// NewID returns a fresh conversation id.
func NewID() string {
	return "conv_" + uuid.NewString()
}
