package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/linguaspark/internal/history"
	"github.com/abhisek/linguaspark/internal/ui/theme"
)

func hint(s string) string { return theme.Hint.Render(s) }

func title(s string) string { return theme.Title.Render(s) }

func label(s string) string { return theme.Label.Render(s) }

func failure(s string) string { return theme.Failure.Render(s) }

// rating colors a good/needs-work verdict.
func rating(ok bool) string {
	if ok {
		return theme.Good.Render("good")
	}
	return theme.NeedsWork.Render("needs work")
}

func printTurn(w io.Writer, i int, t history.Turn) {
	who := theme.Assistant.Render("Tutor")
	if t.Speaker == history.SpeakerUser {
		who = theme.Learner.Render("You")
	}
	fmt.Fprintf(w, "[%d] %s: %s\n", i, who, t.Text)
	if t.Translation != "" {
		fmt.Fprintf(w, "    %s\n", theme.Translation.Render(t.Translation))
	}
	if fb := t.Feedback; fb != nil {
		fmt.Fprintf(w, "    pronunciation %s, grammar %s, score %d\n",
			rating(fb.PronunciationOK()), rating(fb.GrammarOK()), fb.Score)
		for _, c := range fb.Corrections {
			fmt.Fprintf(w, "    %s %s\n", hint("try:"), c)
		}
	}
}
