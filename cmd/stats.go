package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/progress"
	"github.com/abhisek/linguaspark/internal/ui/components"
	"github.com/abhisek/linguaspark/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the learner dashboard",
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
		skills, err := a.Progress.Skills(cmd.Context())
		if err != nil {
			return err
		}
		printDashboard(cmd.OutOrStdout(), p, skills)
		return nil
	},
}

func printDashboard(w io.Writer, p progress.Profile, skills progress.Skills) {
	const width = 48

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title(fmt.Sprintf("Welcome back, %s", p.Name)))
	fmt.Fprintf(&b, "%s\n\n", theme.Subtitle.Render("Learning "+lessons.DisplayLanguage(p.Language)))
	fmt.Fprintf(&b, "%s%s\n", label("Streak"), theme.Streak.Render(fmt.Sprintf("%d day(s)", p.Streak)))
	fmt.Fprintf(&b, "%s%d/%d\n", label("Lessons"), p.CompletedLessons, p.TotalLessons)
	fmt.Fprintf(&b, "%s\n", components.NewProgressBar("Overall", p.Progress, true, width).View())
	fmt.Fprintf(&b, "%s\n\n", components.NewProgressBar("Daily goal", p.DailyGoal, true, width).View())

	for _, skill := range []string{
		progress.SkillReading, progress.SkillListening, progress.SkillSpeaking,
		progress.SkillWriting, progress.SkillVocabulary, progress.SkillGrammar,
	} {
		level := skills.Level(skill)
		pct := int((level - progress.DefaultSkillLevel) / (progress.MaxSkillLevel - progress.DefaultSkillLevel) * 100)
		name := fmt.Sprintf("%s %.2f", skill, level)
		fmt.Fprintf(&b, "%s\n", components.NewProgressBar(name, pct, false, width).View())
	}

	if len(p.Recommendations) > 0 {
		fmt.Fprintf(&b, "\n%s\n", theme.Subtitle.Render("Recommended"))
		for _, r := range p.Recommendations {
			fmt.Fprintf(&b, "%s %s %s\n", r.Icon, r.Title, hint(fmt.Sprintf("(%s, %s)", r.Kind, r.Duration)))
		}
	}

	fmt.Fprintln(w, theme.Card.Render(strings.TrimRight(b.String(), "\n")))
}
