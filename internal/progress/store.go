package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/store"
)

const dateLayout = "2006-01-02"

// Options tunes Store behavior.
type Options struct {
	// ClampCompletedLessons caps CompletedLessons at TotalLessons.
	ClampCompletedLessons bool

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time

	Logger *zap.Logger
}

// Store owns the learner profile and skill levels. Every read-modify-write
// runs under one mutex, so concurrent callers never lose updates.
type Store struct {
	mu   sync.Mutex
	kv   store.KV
	opts Options
	log  *zap.Logger
}

// New creates a Store on top of kv.
func New(kv store.KV, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, opts: opts, log: log}
}

// Profile returns the stored profile, or the default when none exists or
// the stored value cannot be decoded. Only storage errors are returned.
func (s *Store) Profile(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Onboarded reports whether a profile has been stored.
func (s *Store) Onboarded(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.kv.Get(ctx, KeyProfile)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	return ok, nil
}

// Initialize onboards the learner, replacing any existing profile.
func (s *Store) Initialize(ctx context.Context, language string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := DefaultProfile()
	p.Language = language
	p.Streak = 1
	p.Progress = 10
	p.DailyGoal = 20
	p.CompletedLessons = 1
	p.LastLoginDate = s.today()
	p.Recommendations = StarterRecommendations()

	if err := s.save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save merges the set fields of patch into the profile. Values are stored
// as given.
func (s *Store) Save(ctx context.Context, patch ProfilePatch) (Profile, error) {
	return s.update(ctx, func(p Profile) (Profile, bool) {
		return p.apply(patch), true
	})
}

// UpdateStreak advances the streak for a session started today. A login
// on the day after the last one extends the streak; a longer gap, or no
// previous login, restarts it at 1. Same-day or future-dated logins leave
// the profile untouched.
func (s *Store) UpdateStreak(ctx context.Context) (Profile, error) {
	return s.update(ctx, func(p Profile) (Profile, bool) {
		today := s.today()
		last, err := time.Parse(dateLayout, p.LastLoginDate)
		if p.LastLoginDate == "" || err != nil {
			p.Streak = 1
			p.LastLoginDate = today
			return p, true
		}

		now, _ := time.Parse(dateLayout, today)
		gap := int(now.Sub(last).Hours() / 24)
		switch {
		case gap == 1:
			p.Streak++
		case gap > 1:
			p.Streak = 1
		default:
			return p, false
		}
		p.LastLoginDate = today
		return p, true
	})
}

// UpdateProgress adds delta to both the overall and daily percentages,
// clamping each to [0, 100].
func (s *Store) UpdateProgress(ctx context.Context, delta int) (Profile, error) {
	return s.update(ctx, func(p Profile) (Profile, bool) {
		p.Progress = clampPercent(p.Progress + delta)
		p.DailyGoal = clampPercent(p.DailyGoal + delta)
		return p, true
	})
}

// CompleteLesson records a finished lesson: one more completed lesson,
// +10 overall progress, +20 daily goal.
func (s *Store) CompleteLesson(ctx context.Context) (Profile, error) {
	return s.update(ctx, func(p Profile) (Profile, bool) {
		p.CompletedLessons++
		if s.opts.ClampCompletedLessons && p.CompletedLessons > p.TotalLessons {
			p.CompletedLessons = p.TotalLessons
		}
		p.Progress = clampPercent(p.Progress + 10)
		p.DailyGoal = clampPercent(p.DailyGoal + 20)
		return p, true
	})
}

// Skills returns the stored levels merged over the defaults.
func (s *Store) Skills(ctx context.Context) (Skills, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSkills(ctx)
}

// AdvanceSkill raises skill by one step, capped at the maximum level, and
// returns the new level.
func (s *Store) AdvanceSkill(ctx context.Context, skill string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skills, err := s.loadSkills(ctx)
	if err != nil {
		return 0, err
	}
	level := min(MaxSkillLevel, skills.Level(skill)+SkillStep)
	skills[skill] = level

	raw, err := encode(skills)
	if err != nil {
		return 0, fmt.Errorf("encode skills: %w", err)
	}
	if err := s.kv.Set(ctx, KeySkills, raw); err != nil {
		return 0, fmt.Errorf("save skills: %w", err)
	}
	return level, nil
}

// Reset deletes the profile and skill levels.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{KeyProfile, KeySkills} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	s.log.Info("learner data reset")
	return nil
}

// update runs fn on the current profile and persists the result when fn
// reports a change.
func (s *Store) update(ctx context.Context, fn func(Profile) (Profile, bool)) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return Profile{}, err
	}
	next, changed := fn(p)
	if !changed {
		return p, nil
	}
	if err := s.save(ctx, next); err != nil {
		return Profile{}, err
	}
	return next, nil
}

func (s *Store) load(ctx context.Context) (Profile, error) {
	raw, ok, err := s.kv.Get(ctx, KeyProfile)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return DefaultProfile(), nil
	}
	p, err := decodeProfile(raw)
	if err != nil {
		s.log.Warn("discarding unreadable profile", zap.Error(err))
		return DefaultProfile(), nil
	}
	return p, nil
}

func (s *Store) save(ctx context.Context, p Profile) error {
	raw, err := encode(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, KeyProfile, raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Store) loadSkills(ctx context.Context) (Skills, error) {
	skills := DefaultSkills()
	raw, ok, err := s.kv.Get(ctx, KeySkills)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	if !ok {
		return skills, nil
	}
	stored, err := decodeSkills(raw)
	if err != nil {
		s.log.Warn("discarding unreadable skills", zap.Error(err))
		return skills, nil
	}
	for k, v := range stored {
		skills[k] = v
	}
	return skills, nil
}

// today is the UTC calendar date, matching what browsers stored via toISOString.
func (s *Store) today() string {
	return s.opts.Now().UTC().Format(dateLayout)
}
