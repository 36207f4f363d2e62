package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [plan-id]",
	Short: "Show what a plan would touch",
	Long: `Compute an informational preview of a plan: the unique files it touches,
best-effort diff summaries for overwrites, and an aggregate risk score
between 0 and 1. The preview is cached for display but never consulted by
approval or execution.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	planID, err := resolvePlanID(a, args)
	if err != nil {
		return err
	}

	preview, err := a.engine.Preview(planID)
	if err != nil {
		return err
	}

	fmt.Print(renderPreview(preview))
	return nil
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
