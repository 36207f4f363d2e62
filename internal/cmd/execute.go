package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/greenlight/internal/errors"
)

var executeCmd = &cobra.Command{
	Use:   "execute [plan-id]",
	Short: "Execute a plan's approved selection",
	Long: `Run the approved selection of actions sequentially. Each action's
preflight is re-checked immediately before it runs; if anything on disk no
longer matches what was reviewed, execution stops, nothing further runs, and
the plan drops back to pending review for re-approval.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExecute,
}

func runExecute(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	planID, err := resolvePlanID(a, args)
	if err != nil {
		return err
	}

	result, err := a.engine.Execute(planID)
	if err != nil {
		if errors.IsPreflightChanged(err) {
			fmt.Println(outFailStyle.Render("disk state changed since approval; plan returned to pending review"))
		}
		return err
	}

	fmt.Print(renderResult(result))
	return nil
}

func init() {
	rootCmd.AddCommand(executeCmd)
}
