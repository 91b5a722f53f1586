package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest next activities based on your progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		if _, err := beginSession(cmd, a); err != nil {
			return err
		}
		recs, err := a.Recommender.Recommend(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, title("Recommended for you"))
		if !recs.Generated {
			fmt.Fprintln(w, hint("Could not reach the tutor; showing saved suggestions."))
		}
		for _, r := range recs.Items {
			fmt.Fprintf(w, "%s %s  %s %s\n", r.Icon, theme.Body.Render(r.Title), theme.Subtitle.Render(r.Kind), hint(r.Duration))
		}
		return nil
	},
}
