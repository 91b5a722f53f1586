package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/app"
	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/speech"
	"github.com/abhisek/linguaspark/internal/tutor"
	"github.com/abhisek/linguaspark/internal/ui/theme"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice a conversation with the AI tutor",
	Long: `Practice a conversation with the AI tutor. Every message gets pronunciation
and grammar feedback. Inside a session:

  /translate N   translate turn N
  /scenario ID   start over in another scenario
  /turns         show the conversation so far
  /quit          leave`,
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
		w := cmd.OutOrStdout()

		language, _ := cmd.Flags().GetString("language")
		if language == "" {
			language = p.Language
		}
		respondIn, _ := cmd.Flags().GetString("respond-in")
		scenario, _ := cmd.Flags().GetString("scenario")

		var speaker *speech.Speaker
		if speak, _ := cmd.Flags().GetBool("speak"); speak {
			audioDir, _ := cmd.Flags().GetString("audio-dir")
			if speaker, err = a.Speaker(language, audioDir); err != nil {
				return err
			}
			defer speaker.Stop()
		}

		if id, _ := cmd.Flags().GetString("resume"); id != "" {
			rec, err := a.Practice.Resume(ctx, id)
			if err != nil {
				return err
			}
			a.Practice.SetResponseLanguage(respondIn)
			fmt.Fprintln(w, title("Resuming "+a.Practice.Scenario().Name))
			for i, t := range rec.Turns {
				printTurn(w, i, t)
			}
		} else if err := startPractice(cmd, a, speaker, scenario, language, respondIn); err != nil {
			return err
		}

		in := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(w, theme.Learner.Render("> "))
			if !in.Scan() {
				fmt.Fprintln(w)
				return in.Err()
			}
			line := strings.TrimSpace(in.Text())
			if line == "" {
				continue
			}

			if strings.HasPrefix(line, "/") {
				quit, err := practiceCommand(cmd, a, speaker, line)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					fmt.Fprintln(w, failure(err.Error()))
				}
				if quit {
					return nil
				}
				continue
			}

			ex, err := a.Practice.Reply(ctx, line)
			switch {
			case errors.Is(err, tutor.ErrStale):
				continue
			case err != nil:
				return err
			}
			n := len(a.Practice.Turns())
			printTurn(w, n-2, ex.User)
			printTurn(w, n-1, ex.Reply)
			if ex.ReplyErr != nil {
				fmt.Fprintln(w, hint("The tutor could not answer. Check your connection and API key."))
			}
			say(cmd, a, speaker, ex.Reply.Text)
		}
	},
}

func startPractice(cmd *cobra.Command, a *app.App, speaker *speech.Speaker, scenario, language, respondIn string) error {
	greeting, err := a.Practice.Start(cmd.Context(), scenario, language, respondIn)
	if err != nil {
		return err
	}
	s := a.Practice.Scenario()
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, title(fmt.Sprintf("%s %s", s.Icon, s.Name)))
	fmt.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("Practicing %s, replies in %s. /quit to leave.",
		lessons.DisplayLanguage(language), lessons.DisplayLanguage(respondIn))))
	printTurn(w, 0, greeting)
	say(cmd, a, speaker, greeting.Text)
	return nil
}

// practiceCommand runs a slash command and reports whether to quit.
func practiceCommand(cmd *cobra.Command, a *app.App, speaker *speech.Speaker, line string) (bool, error) {
	w := cmd.OutOrStdout()
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "translate", "t":
		i, err := strconv.Atoi(arg)
		if err != nil {
			return false, errors.New("usage: /translate N")
		}
		text, err := a.Practice.Translate(cmd.Context(), i)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(w, "    %s\n", theme.Translation.Render(text))
	case "scenario", "s":
		if _, ok := tutor.FindScenario(arg); !ok {
			var ids []string
			for _, s := range tutor.Scenarios {
				ids = append(ids, s.ID)
			}
			return false, fmt.Errorf("scenarios: %s", strings.Join(ids, ", "))
		}
		language, respondIn := a.Practice.Languages()
		return false, startPractice(cmd, a, speaker, arg, language, respondIn)
	case "turns":
		for i, t := range a.Practice.Turns() {
			printTurn(w, i, t)
		}
	default:
		return false, fmt.Errorf("unknown command /%s", name)
	}
	return false, nil
}

func say(cmd *cobra.Command, a *app.App, speaker *speech.Speaker, text string) {
	if speaker == nil {
		return
	}
	if err := speaker.Speak(cmd.Context(), text); err != nil {
		a.Log.Warn("speech failed", zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), hint("speech unavailable: "+err.Error()))
	}
}

func init() {
	practiceCmd.Flags().String("scenario", tutor.DefaultScenario, "Scenario: casual, restaurant, shopping, travel, business, emergency")
	practiceCmd.Flags().String("language", "", "Practice language (default: profile language)")
	practiceCmd.Flags().String("respond-in", "english", "Language for tutor replies and translations")
	practiceCmd.Flags().String("resume", "", "Continue a saved conversation by id")
	practiceCmd.Flags().Bool("speak", false, "Read tutor messages aloud")
	practiceCmd.Flags().String("audio-dir", "", "Synthesize speech remotely and write audio files here instead of using a local voice")
}
