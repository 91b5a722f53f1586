package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/app"
	"github.com/abhisek/linguaspark/internal/config"
	"github.com/abhisek/linguaspark/internal/logger"
	"github.com/abhisek/linguaspark/internal/progress"
	"github.com/abhisek/linguaspark/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "linguaspark",
	Short:         "AI language tutor",
	Long:          "LinguaSpark: conversation practice, lessons, and progress tracking for language learners, powered by Groq.",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statsCmd.RunE(cmd, args)
	},
}

// Execute runs the root command. Canceling ctx aborts in-flight requests.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUASPARK_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file (default ./.env when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LINGUASPARK_LOG_LEVEL)")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(reasonCmd)
	rootCmd.AddCommand(visionCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(typingCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGUASPARK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openApp builds the dependency container for a command.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

// closeApp releases the container and flushes logs.
func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		a.Log.Warn("close", zap.Error(err))
	}
	a.Log.Sync()
}

// beginSession counts a visit toward the streak. Learners who have not
// onboarded are pointed at the onboard command.
func beginSession(cmd *cobra.Command, a *app.App) (progress.Profile, error) {
	onboarded, err := a.Progress.Onboarded(cmd.Context())
	if err != nil {
		return progress.Profile{}, err
	}
	if !onboarded {
		fmt.Fprintln(cmd.ErrOrStderr(), hint("New here? Run `linguaspark onboard <language>` to set up your profile."))
	}
	return a.Progress.UpdateStreak(cmd.Context())
}
