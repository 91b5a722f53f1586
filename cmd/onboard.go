package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/progress"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard <language>",
	Short: "Create a learner profile for a target language",
	Long: "Create a learner profile for a target language. Onboarding again starts over.\n\nLanguages: " +
		strings.Join(progress.Languages, ", "),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language := strings.ToLower(strings.TrimSpace(args[0]))
		if !slices.Contains(progress.Languages, language) {
			fmt.Fprintln(cmd.ErrOrStderr(), hint(fmt.Sprintf("%q is not a built-in language; lessons will use generic titles.", language)))
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		ctx := cmd.Context()
		p, err := a.Progress.Initialize(ctx, language)
		if err != nil {
			return err
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			if p, err = a.Progress.Save(ctx, progress.ProfilePatch{Name: &name}); err != nil {
				return err
			}
		}
		skills, err := a.Progress.Skills(ctx)
		if err != nil {
			return err
		}
		printDashboard(cmd.OutOrStdout(), p, skills)
		return nil
	},
}

func init() {
	onboardCmd.Flags().String("name", "", "Display name")
}
