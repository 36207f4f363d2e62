package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	proposeSources   []string
	proposeRationale string
	proposeTags      []string
	proposeFile      string
)

var proposeCmd = &cobra.Command{
	Use:   "propose [content]",
	Short: "Propose a new plan",
	Long: `Create a new plan from goal text. The plan starts in the proposed state
with no actions attached; attach validated actions with 'greenlight specs set'.

The new plan becomes the current plan.

Examples:
  greenlight propose "Refactor the config loader"
  greenlight propose --file goal.md --rationale "requested in #142" --tag refactor
  cat goal.md | greenlight propose --file -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPropose,
}

func runPropose(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	var content string
	switch {
	case len(args) == 1:
		content = args[0]
	case proposeFile != "":
		data, err := readInput(proposeFile)
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}
		content = string(data)
	default:
		return fmt.Errorf("provide plan content as an argument or via --file")
	}

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("plan content cannot be empty")
	}

	planID, err := a.engine.Propose(content, proposeSources, proposeRationale, proposeTags)
	if err != nil {
		return err
	}

	fmt.Printf("proposed plan %s\n", planID)
	return nil
}

func init() {
	proposeCmd.Flags().StringSliceVar(&proposeSources, "source", nil, "source reference (repeatable)")
	proposeCmd.Flags().StringVar(&proposeRationale, "rationale", "", "why this plan exists")
	proposeCmd.Flags().StringSliceVar(&proposeTags, "tag", nil, "tag for the plan index (repeatable)")
	proposeCmd.Flags().StringVar(&proposeFile, "file", "", "read plan content from a file ('-' for stdin)")
	rootCmd.AddCommand(proposeCmd)
}
