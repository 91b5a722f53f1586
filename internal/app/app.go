// Package app wires the stores, inference client, and learning services
// into one container shared by the CLI commands.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/config"
	"github.com/abhisek/linguaspark/internal/games"
	"github.com/abhisek/linguaspark/internal/history"
	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/progress"
	"github.com/abhisek/linguaspark/internal/speech"
	"github.com/abhisek/linguaspark/internal/store"
	"github.com/abhisek/linguaspark/internal/tutor"
)

const redisPrefix = "linguaspark:"

// App holds every long-lived dependency. Build it with New and release it
// with Close.
type App struct {
	Config config.Config
	Log    *zap.Logger

	Store   *store.Store
	Durable store.KV
	Session store.KV

	Client   *llm.Client
	Provider llm.Provider

	Progress    *progress.Store
	History     *history.Repo
	Recorder    *history.Recorder
	Lessons     *lessons.Service
	Practice    *tutor.Practice
	Recommender *tutor.Recommender
	Quizzes     *games.QuizMaster
	Typing      *games.TypingTest

	redis *redis.Client
}

// Option customizes New.
type Option func(*options)

type options struct {
	clientOpts []llm.ClientOption
	provider   llm.Provider
}

// WithClientOptions passes options through to the inference client.
func WithClientOptions(opts ...llm.ClientOption) Option {
	return func(o *options) { o.clientOpts = append(o.clientOpts, opts...) }
}

// WithProvider replaces the configured structured-output provider.
func WithProvider(p llm.Provider) Option {
	return func(o *options) { o.provider = p }
}

// New opens storage and builds the services described by cfg.
func New(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &App{Config: cfg, Log: log, Store: st, Durable: st.KV(), Session: store.NewMemoryKV()}

	if cfg.RedisURL != "" {
		rc, err := store.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			st.Close()
			return nil, err
		}
		a.redis = rc
		a.Session = store.NewRedisKV(rc, redisPrefix+"session:", cfg.SessionTTL)
		if cfg.RedisDurable {
			a.Durable = store.NewRedisKV(rc, redisPrefix, 0)
		}
		log.Debug("redis connected", zap.Bool("durable", cfg.RedisDurable))
	}

	events := st.EventRepo()
	clientOpts := append([]llm.ClientOption{
		llm.WithLogger(log.Named("llm")),
		llm.WithEventRepo(events),
	}, o.clientOpts...)
	a.Client = llm.NewClient(cfg.LLM, clientOpts...)

	a.Provider = o.provider
	if a.Provider == nil {
		a.Provider, err = a.buildProvider(ctx, events)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	a.Progress = progress.New(a.Durable, progress.Options{
		ClampCompletedLessons: cfg.ClampCompletedLessons,
		Logger:                log.Named("progress"),
	})
	a.History = history.NewRepo(a.Durable, log.Named("history"))
	a.Recorder = history.NewRecorder(a.History, history.NewScope(a.Session))
	a.Lessons = lessons.NewService(a.Provider, a.Progress, a.Durable, lessons.DefaultConfig(), log.Named("lessons"))
	a.Practice = tutor.NewPractice(a.Provider, a.Recorder, tutor.DefaultConfig(), log.Named("practice"))
	a.Recommender = tutor.NewRecommender(a.Provider, a.Progress, tutor.DefaultConfig(), log.Named("recommend"))
	a.Quizzes = games.NewQuizMaster(a.Provider, a.Progress, games.DefaultConfig(), log.Named("quiz"))
	a.Typing = games.NewTypingTest(a.Provider, games.DefaultConfig(), log.Named("typing"))
	return a, nil
}

// buildProvider picks the structured-output provider. A misconfigured
// SDK provider falls back to groq so the fallback flows still run.
func (a *App) buildProvider(ctx context.Context, events store.EventRepo) (llm.Provider, error) {
	cfg := a.Config.LLM
	if err := cfg.Validate(); err != nil {
		a.Log.Warn("LLM provider not configured, using groq", zap.String("provider", cfg.Provider), zap.Error(err))
		cfg.Provider = "groq"
	}
	return llm.NewProvider(ctx, cfg, a.Client, events, a.Log.Named("provider"))
}

// Speaker returns a speaker for language. With audioDir set, speech is
// synthesized remotely and written there; otherwise a host voice is used.
func (a *App) Speaker(language, audioDir string) (*speech.Speaker, error) {
	var voice speech.Voice
	if audioDir != "" {
		voice = speech.NewRemoteVoice(a.Client, speech.DirSink{Dir: audioDir, Prefix: "segment-", Ext: a.Client.SpeechFormat()})
	} else {
		cv, err := speech.DetectVoice(a.Config.TTSCommand, speech.VoiceOptions{Name: speech.LanguageVoice(language)})
		if err != nil {
			return nil, err
		}
		voice = cv
	}
	return speech.NewSpeaker(voice, a.Log.Named("speech")), nil
}

// Reset deletes all learner data: profile, skills, lesson progress,
// conversation history, and the active session.
func (a *App) Reset(ctx context.Context) error {
	return errors.Join(
		a.Progress.Reset(ctx),
		a.Lessons.Reset(ctx),
		a.History.Clear(ctx),
		a.Recorder.EndSession(ctx),
	)
}

// Close releases storage connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
