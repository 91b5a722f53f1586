package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/llm"
)

var reasonCmd = &cobra.Command{
	Use:   "reason <prompt>...",
	Short: "Send a prompt to the reasoning model and print its raw response",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeReasoning)
		res, err := a.Client.Reasoning(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(cmd, res.Body)
	},
}
