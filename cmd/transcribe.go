package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/llm"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeTranscription)
		t, err := a.Client.TranscribeAudio(ctx, llm.Blob{Name: filepath.Base(args[0]), Data: data})
		if err != nil {
			return err
		}
		if raw, _ := cmd.Flags().GetBool("json"); raw {
			return printJSON(cmd, t.Raw)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Text)
		return nil
	},
}

// printJSON indents an endpoint's raw JSON response.
func printJSON(cmd *cobra.Command, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	transcribeCmd.Flags().Bool("json", false, "Print the raw response")
}
