package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/greenlight/internal/tui"
)

var (
	approveApprover    string
	approveAll         bool
	approveIDs         []string
	approveInteractive bool
	approveYes         bool
)

var approveCmd = &cobra.Command{
	Use:   "approve [plan-id]",
	Short: "Approve a selection of a plan's actions",
	Long: `Record an approval for a plan. Only the approved selection is ever
executed; approvals accumulate as an audit trail, but the latest approval's
selection is the one that governs execution.

With --interactive, a review TUI lists every action with its risk level and
lets you toggle the ones to include before approving.

Examples:
  greenlight approve --all
  greenlight approve 4f6b... --id 7c0d... --id 91a2... --approver alice@example.com
  greenlight approve --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApprove,
}

func runApprove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	planID, err := resolvePlanID(a, args)
	if err != nil {
		return err
	}

	p, state, err := a.engine.GetState(planID)
	if err != nil {
		return err
	}

	selection, err := parseSelection(approveAll, approveIDs)
	if approveInteractive {
		result, reviewErr := tui.RunReview(p.Title, state.ActionSpecs)
		if reviewErr != nil {
			return reviewErr
		}
		if !result.Approved {
			return fmt.Errorf("review rejected: %s", result.Reason)
		}
		selection = result.Selection

		if approveApprover == "" {
			approveApprover, err = tui.PromptForString("Approver identity", os.Getenv("USER"))
			if err != nil {
				return err
			}
		}
	} else {
		if err != nil {
			return err
		}

		if !approveYes {
			confirmed, promptErr := tui.PromptForConfirmation(
				fmt.Sprintf("Approve %q for execution?", p.Title), false)
			if promptErr != nil {
				return promptErr
			}
			if !confirmed {
				return fmt.Errorf("approval declined")
			}
		}
	}

	if _, err := a.engine.RequestApproval(planID, selection); err != nil {
		return err
	}

	approver := approveApprover
	if approver == "" {
		approver = os.Getenv("USER")
		if approver == "" {
			approver = "unknown"
		}
	}

	summary, err := a.engine.Approve(planID, approver, selection)
	if err != nil {
		return err
	}

	fmt.Printf("approved %d action(s) of plan %s as %s\n",
		summary.SelectedSpecs, summary.PlanID, summary.Approver)
	return nil
}

func init() {
	approveCmd.Flags().StringVar(&approveApprover, "approver", "", "approver identity (defaults to $USER)")
	approveCmd.Flags().BoolVar(&approveAll, "all", false, "approve every action in the plan")
	approveCmd.Flags().StringSliceVar(&approveIDs, "id", nil, "spec id to approve (repeatable)")
	approveCmd.Flags().BoolVarP(&approveInteractive, "interactive", "i", false, "pick the selection in a review TUI")
	approveCmd.Flags().BoolVarP(&approveYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(approveCmd)
}
