package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaspark/internal/llm"
)

var visionCmd = &cobra.Command{
	Use:   "vision <image-file>",
	Short: "Upload an image for analysis and print the raw response",
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

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeVision)
		res, err := a.Client.VisionAnalyze(ctx, llm.Blob{Name: filepath.Base(args[0]), Data: data})
		if err != nil {
			return err
		}
		return printJSON(cmd, res.Body)
	},
}
