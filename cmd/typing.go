package cmd

import (
	"bufio"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/games"
	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/ui/theme"
)

var typingCmd = &cobra.Command{
	Use:   "typing",
	Short: "Take a timed typing test in your language",
	Long: `Type the passage shown and press enter. Speed and accuracy are scored
against the passage; time past the limit is not counted.`,
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
		language, _ := cmd.Flags().GetString("language")
		if language == "" {
			language = p.Language
			if !slices.Contains(games.TypingLanguages, language) {
				language = "english"
			}
		}
		difficulty, _ := cmd.Flags().GetString("difficulty")

		passage, err := a.Typing.Passage(cmd.Context(), strings.ToLower(language), strings.ToLower(difficulty))
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		limit := a.Typing.TimeLimit()
		fmt.Fprintf(w, "%s %s\n", title(lessons.DisplayLanguage(passage.Language)+" typing test"), theme.Levels(lessons.DisplayLanguage(passage.Difficulty)).Render(passage.Difficulty))
		if !passage.Generated {
			fmt.Fprintln(w, hint("Could not reach the tutor; using a standard passage."))
		}
		fmt.Fprintln(w, theme.Card.Render(passage.Text))
		fmt.Fprintln(w, hint(fmt.Sprintf("You have %s. Press enter when done.", limit)))

		start := time.Now()
		fmt.Fprint(w, theme.Learner.Render("> "))
		in := bufio.NewScanner(cmd.InOrStdin())
		if !in.Scan() {
			fmt.Fprintln(w)
			return in.Err()
		}
		elapsed := time.Since(start)
		if limit > 0 && elapsed > limit {
			fmt.Fprintln(w, theme.NeedsWork.Render("Time's up!"))
			elapsed = limit
		}

		typed := in.Text()
		res := games.ScoreTyping(passage.Text, typed, elapsed)
		fmt.Fprintf(w, "%s%d\n", label("WPM"), res.WPM)
		fmt.Fprintf(w, "%s%d%% (%d errors)\n", label("Accuracy"), res.Accuracy, res.Errors)

		var marked []string
		for _, m := range games.MarkWords(passage.Text, typed) {
			if m.Correct {
				marked = append(marked, theme.Good.Render(m.Word))
			} else {
				marked = append(marked, theme.Failure.Render(m.Word))
			}
		}
		fmt.Fprintln(w, strings.Join(marked, " "))
		return nil
	},
}

func init() {
	typingCmd.Flags().String("language", "", "Passage language: "+strings.Join(games.TypingLanguages, ", ")+" (default: your profile language)")
	typingCmd.Flags().String("difficulty", "beginner", "Passage difficulty: "+strings.Join(games.Difficulties, ", "))
}
