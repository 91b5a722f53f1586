package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/speech"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>...",
	Short: "Read text aloud sentence by sentence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		language, _ := cmd.Flags().GetString("language")
		if language == "" {
			p, err := a.Progress.Profile(cmd.Context())
			if err != nil {
				return err
			}
			language = p.Language
		}
		out, _ := cmd.Flags().GetString("out")

		sp, err := a.Speaker(language, out)
		if err != nil {
			if errors.Is(err, speech.ErrUnsupported) {
				return fmt.Errorf("%w; pass --out to synthesize audio files instead", err)
			}
			return err
		}
		if err := sp.Speak(cmd.Context(), strings.Join(args, " ")); err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Audio written to", out)
		}
		return nil
	},
}

func init() {
	speakCmd.Flags().String("language", "", "Voice language (default: profile language)")
	speakCmd.Flags().String("out", "", "Synthesize remotely and write one audio file per sentence to this directory")
}
