// Package config assembles runtime settings from the environment, an
// optional .env file, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/linguaspark/internal/llm"
)

// DefaultSessionTTL bounds how long a Redis-held session id survives.
const DefaultSessionTTL = 12 * time.Hour

// Config is the full runtime configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the default XDG location.
	DBPath string

	// RedisURL, when set, moves the session scope to Redis. With
	// RedisDurable the learner data lives there too.
	RedisURL     string
	RedisDurable bool
	SessionTTL   time.Duration

	LogLevel  string
	LogFormat string

	// TTSCommand forces a host speech program instead of auto-detection.
	TTSCommand string

	ClampCompletedLessons bool

	LLM llm.Config
}

// Load reads envFile (or ./.env when envFile is empty and the file
// exists) into the process environment without overriding variables that
// are already set, then builds the Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the Config from LINGUASPARK_* variables.
func FromEnv() (Config, error) {
	cfg := Config{
		DBPath:     os.Getenv("LINGUASPARK_DB"),
		RedisURL:   os.Getenv("LINGUASPARK_REDIS_URL"),
		SessionTTL: DefaultSessionTTL,
		LogLevel:   envOr("LINGUASPARK_LOG_LEVEL", "warn"),
		LogFormat:  envOr("LINGUASPARK_LOG_FORMAT", "console"),
		TTSCommand: os.Getenv("LINGUASPARK_TTS_COMMAND"),
		LLM:        llm.ConfigFromEnv(),
	}

	var err error
	if cfg.RedisDurable, err = envBool("LINGUASPARK_REDIS_DURABLE"); err != nil {
		return Config{}, err
	}
	if cfg.ClampCompletedLessons, err = envBool("LINGUASPARK_CLAMP_COMPLETED_LESSONS"); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("LINGUASPARK_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("LINGUASPARK_SESSION_TTL: invalid duration %q", v)
		}
		cfg.SessionTTL = d
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
