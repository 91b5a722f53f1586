package cmd

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/games"
	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/ui/components"
	"github.com/abhisek/linguaspark/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a five-question quiz on your language",
	Long: `Take a five-question multiple-choice quiz pitched at the lessons you have
completed. Answer with a letter (a-d) or a number (1-4).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		if _, err := beginSession(cmd, a); err != nil {
			return err
		}
		quiz, err := a.Quizzes.Quiz(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s %s\n", title(lessons.DisplayLanguage(quiz.Language)+" quiz"), theme.Levels(lessons.DisplayLanguage(quiz.Level)).Render(quiz.Level))
		if !quiz.Generated {
			fmt.Fprintln(w, hint("Could not reach the tutor; using the standard questions."))
		}

		var score games.Score
		in := bufio.NewScanner(cmd.InOrStdin())
	questions:
		for i, q := range quiz.Questions {
			mc := components.NewMultiChoice(q.Question, quizChoices(q), q.CorrectAnswer)
			fmt.Fprintf(w, "\n%s\n%s", hint(fmt.Sprintf("Question %d of %d", i+1, len(quiz.Questions))), mc.View())

			for {
				fmt.Fprint(w, theme.Learner.Render("> "))
				if !in.Scan() {
					fmt.Fprintln(w)
					if err := in.Err(); err != nil {
						return err
					}
					break questions
				}
				chosen, err := q.Choose(in.Text())
				if errors.Is(err, games.ErrNotAnOption) {
					fmt.Fprintln(w, hint("Answer with a-d or 1-4."))
					continue
				}
				ok := chosen.ID == q.CorrectAnswer
				score.Record(ok)
				fmt.Fprint(w, mc.Answer(chosen.ID).View())
				if ok {
					fmt.Fprintln(w, theme.Good.Render("Correct!"))
				} else {
					fmt.Fprintf(w, "%s The answer is %s.\n", theme.NeedsWork.Render("Not quite."), q.Correct().Text)
				}
				if q.Explanation != "" {
					fmt.Fprintln(w, theme.Translation.Render(q.Explanation))
				}
				break
			}
		}

		fmt.Fprintf(w, "\n%s %d/%d\n", label("Score"), score.Correct, score.Total)
		fmt.Fprintln(w, theme.Body.Render(score.Verdict()))
		return nil
	},
}

func quizChoices(q games.Question) []components.Choice {
	choices := make([]components.Choice, len(q.Options))
	for i, o := range q.Options {
		choices[i] = components.Choice{Label: o.ID, Text: o.Text}
	}
	return choices
}
