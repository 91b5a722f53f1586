package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/ui/components"
	"github.com/abhisek/linguaspark/internal/ui/theme"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Browse and study lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return lessonsListCmd.RunE(cmd, args)
	},
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons with lock state and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		p, err := beginSession(cmd, a)
		if err != nil {
			return err
		}
		done, err := a.Lessons.Completed(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, title(lessons.DisplayLanguage(p.Language)+" lessons"))
		fmt.Fprintln(w)
		for _, l := range lessons.Catalog(p.Language) {
			level := theme.Levels(string(l.Level)).Render(string(l.Level))
			if !lessons.Unlocked(l, p.Progress) {
				fmt.Fprintf(w, "%s  %s\n", theme.Locked.Render(fmt.Sprintf("🔒 %-14s %s", l.ID, l.Title)),
					hint(fmt.Sprintf("unlocks at %d%%", l.UnlockAt)))
				continue
			}
			fmt.Fprintf(w, "   %-14s %s  %s %s\n", l.ID, l.Title, level, hint(l.Duration))
			pct := lessons.Percent(l, done[l.ID])
			if pct > 0 {
				fmt.Fprintf(w, "   %s\n", components.NewProgressBar("", pct, true, 36).View())
			}
		}
		return nil
	},
}

var lessonsStudyCmd = &cobra.Command{
	Use:   "study <lesson-id> [section]",
	Short: "Generate and study one lesson section",
	Long:  "Generate and study one lesson section. Without a section, the first unfinished one is used.\n\nSections: reading, listening, speaking, writing",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		p, err := beginSession(cmd, a)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		section := lessons.SectionReading
		if len(args) == 2 {
			section = lessons.SectionType(args[1])
		} else {
			done, err := a.Lessons.Completed(ctx)
			if err != nil {
				return err
			}
			for _, s := range lessons.SectionOrder {
				if !slices.Contains(done[args[0]], s) {
					section = s
					break
				}
			}
		}

		content, err := a.Lessons.Study(ctx, args[0], section)
		switch {
		case errors.Is(err, lessons.ErrLocked):
			return fmt.Errorf("%w; keep practicing to raise your progress (now %d%%)", err, p.Progress)
		case err != nil:
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, title(content.Title))
		fmt.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("%s · %s", content.Section, content.Difficulty)))
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Body.Render(content.Body))
		if len(content.Vocabulary) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, theme.Subtitle.Render("Vocabulary"))
			for _, v := range content.Vocabulary {
				fmt.Fprintf(w, "%s%s\n", label(v.Term), v.Meaning)
			}
		}
		if content.Completed {
			fmt.Fprintln(w)
			fmt.Fprintln(w, theme.Good.Render("Lesson complete!"))
		}

		if speak, _ := cmd.Flags().GetBool("speak"); speak {
			audioDir, _ := cmd.Flags().GetString("audio-dir")
			sp, err := a.Speaker(p.Language, audioDir)
			if err != nil {
				return err
			}
			return sp.Speak(ctx, content.Body)
		}
		return nil
	},
}

func init() {
	lessonsStudyCmd.Flags().Bool("speak", false, "Read the section aloud")
	lessonsStudyCmd.Flags().String("audio-dir", "", "Synthesize speech remotely and write audio files here instead of using a local voice")

	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsStudyCmd)
}
