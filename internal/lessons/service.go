package lessons

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/progress"
	"github.com/abhisek/linguaspark/internal/store"
)

var (
	// ErrLocked is returned when overall progress is below the lesson's
	// unlock threshold.
	ErrLocked = errors.New("lesson is locked")

	ErrUnknownLesson  = errors.New("unknown lesson")
	ErrUnknownSection = errors.New("unknown section")
)

// Service generates lesson section content and tracks which sections the
// learner has finished.
type Service struct {
	provider llm.Provider
	progress *progress.Store
	kv       store.KV
	cfg      Config
	log      *zap.Logger

	mu sync.Mutex
}

// NewService creates a lesson service. Section progress is kept in kv.
func NewService(provider llm.Provider, ps *progress.Store, kv store.KV, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, progress: ps, kv: kv, cfg: cfg, log: log}
}

// Completed returns the finished sections of every started lesson.
func (s *Service) Completed(ctx context.Context) (map[string][]SectionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Percent returns how much of lesson is done, rounded to a whole percent.
func Percent(lesson Lesson, done []SectionType) int {
	if len(lesson.Sections) == 0 {
		return 0
	}
	n := 0
	for _, sec := range lesson.Sections {
		if slices.Contains(done, sec.Type) {
			n++
		}
	}
	return (n*100 + len(lesson.Sections)/2) / len(lesson.Sections)
}

type sectionOutput struct {
	Title      string           `json:"title"`
	Body       string           `json:"body"`
	Vocabulary []VocabularyItem `json:"vocabulary"`
}

// Study generates content for one section of a lesson. The first
// successful study of a section marks it done and advances the matching
// skill; finishing the last section records a completed lesson.
func (s *Service) Study(ctx context.Context, lessonID string, section SectionType) (*Content, error) {
	if !section.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	profile, err := s.progress.Profile(ctx)
	if err != nil {
		return nil, err
	}
	lesson, ok := Find(profile.Language, lessonID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLesson, lessonID)
	}
	if !Unlocked(lesson, profile.Progress) {
		return nil, fmt.Errorf("%w: %s needs %d%% progress", ErrLocked, lesson.ID, lesson.UnlockAt)
	}

	skills, err := s.progress.Skills(ctx)
	if err != nil {
		return nil, err
	}
	difficulty := Difficulty(skills.Level(section.Skill()))

	out, err := s.generate(ctx, profile.Language, lesson, section, difficulty)
	if err != nil {
		return nil, err
	}

	content := &Content{
		LessonID:   lesson.ID,
		Section:    section,
		Difficulty: difficulty,
		Title:      out.Title,
		Body:       out.Body,
		Vocabulary: out.Vocabulary,
	}

	content.Completed, err = s.markDone(ctx, lesson, section)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *Service) generate(ctx context.Context, language string, lesson Lesson, section SectionType, difficulty string) (*sectionOutput, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLesson)

	req := llm.Request{
		System: buildSectionSystemPrompt(DisplayLanguage(language), lesson, section, difficulty),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSectionUserMessage(lesson, section)},
		},
		Schema:      SectionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s section generation: %w", section, err)
	}

	var out sectionOutput
	if err := llm.Decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// markDone records section as finished. It reports whether this call
// completed the lesson.
func (s *Service) markDone(ctx context.Context, lesson Lesson, section SectionType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	done := all[lesson.ID]
	if slices.Contains(done, section) {
		return false, nil
	}
	done = append(done, section)
	all[lesson.ID] = done
	if err := s.save(ctx, all); err != nil {
		return false, err
	}

	level, err := s.progress.AdvanceSkill(ctx, section.Skill())
	if err != nil {
		return false, err
	}
	s.log.Info("section completed",
		zap.String("lesson", lesson.ID),
		zap.String("section", string(section)),
		zap.Float64("skill_level", level),
	)

	if Percent(lesson, done) < 100 {
		return false, nil
	}
	if _, err := s.progress.CompleteLesson(ctx); err != nil {
		return false, err
	}
	s.log.Info("lesson completed", zap.String("lesson", lesson.ID))
	return true, nil
}

func (s *Service) load(ctx context.Context) (map[string][]SectionType, error) {
	all := map[string][]SectionType{}
	raw, ok, err := s.kv.Get(ctx, KeyLessonProgress)
	if err != nil {
		return nil, fmt.Errorf("load lesson progress: %w", err)
	}
	if !ok {
		return all, nil
	}
	all, err = decodeSectionProgress(raw)
	if err != nil {
		s.log.Warn("discarding unreadable lesson progress", zap.Error(err))
		return map[string][]SectionType{}, nil
	}
	return all, nil
}

func (s *Service) save(ctx context.Context, all map[string][]SectionType) error {
	raw, err := encodeSectionProgress(all)
	if err != nil {
		return fmt.Errorf("encode lesson progress: %w", err)
	}
	if err := s.kv.Set(ctx, KeyLessonProgress, raw); err != nil {
		return fmt.Errorf("save lesson progress: %w", err)
	}
	return nil
}

// Reset forgets all section progress.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, KeyLessonProgress); err != nil {
		return fmt.Errorf("reset lesson progress: %w", err)
	}
	return nil
}
