package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/greenlight/internal/plan"
)

var specsFile string

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Manage a plan's action specs",
}

var specsSetCmd = &cobra.Command{
	Use:   "set [plan-id]",
	Short: "Validate and attach action specs to a plan",
	Long: `Validate a batch of raw action requests and attach the normalized result
to a plan. The input is a JSON array of raw specs:

  [{"kind": "create", "path": "notes/a.txt", "content": "hi"}]

When validation finds issues, the stored plan is left untouched and every
issue is printed so the batch can be fixed and retried.

Examples:
  greenlight specs set --file actions.json
  agent-propose | greenlight specs set 4f6b... --file -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpecsSet,
}

func runSpecsSet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	planID, err := resolvePlanID(a, args)
	if err != nil {
		return err
	}

	data, err := readInput(specsFile)
	if err != nil {
		return fmt.Errorf("read specs: %w", err)
	}

	var rawSpecs []plan.RawSpec
	if err := json.Unmarshal(data, &rawSpecs); err != nil {
		return fmt.Errorf("parse specs: %w", err)
	}

	report, err := a.engine.SetActionSpecs(planID, rawSpecs)
	if err != nil {
		return err
	}

	if !report.OK {
		fmt.Println(outFailStyle.Render("validation failed, plan unchanged:"))
		fmt.Println(report.IssueSummary())
		return fmt.Errorf("%d validation issue(s)", len(report.Issues))
	}

	fmt.Printf("%d action specs attached to plan %s\n", len(report.Normalized), planID)
	for _, spec := range report.Normalized {
		fmt.Println(renderSpecLine(spec))
	}
	return nil
}

func init() {
	specsSetCmd.Flags().StringVar(&specsFile, "file", "-", "JSON file of raw specs ('-' for stdin)")
	specsCmd.AddCommand(specsSetCmd)
	rootCmd.AddCommand(specsCmd)
}
