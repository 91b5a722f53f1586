package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/history"
	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/tutor"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved practice conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyListCmd.RunE(cmd, args)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		records, err := a.History.List(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(w, "No conversations yet. Start one with `linguaspark practice`.")
			return nil
		}
		for _, r := range records {
			name := r.Scenario
			if s, ok := tutor.FindScenario(r.Scenario); ok {
				name = s.Icon + " " + s.Name
			}
			fmt.Fprintf(w, "%-26s  %-16s  %-10s  %3d msgs  %s\n",
				r.ID, r.UpdatedAt.Local().Format("2006-01-02 15:04"),
				lessons.DisplayLanguage(r.Language), len(r.Turns), name)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		rec, err := a.History.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: %s", history.ErrNotFound, args[0])
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, title(fmt.Sprintf("%s · %s", rec.Scenario, lessons.DisplayLanguage(rec.Language))))
		fmt.Fprintln(w, hint("Started "+rec.StartedAt.Local().Format("2006-01-02 15:04")))
		for i, t := range rec.Turns {
			printTurn(w, i, t)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		if err := a.History.Clear(cmd.Context()); err != nil {
			return err
		}
		if err := a.Recorder.EndSession(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Conversation history cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}
