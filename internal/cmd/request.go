package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	requestAll bool
	requestIDs []string
)

var requestCmd = &cobra.Command{
	Use:   "request-approval [plan-id]",
	Short: "Record the selection a reviewer should approve",
	Long: `Store the selection of actions intended for approval and move the plan
to pending review. Fails if the selection names spec ids the plan does not
have.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRequestApproval,
}

func runRequestApproval(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	planID, err := resolvePlanID(a, args)
	if err != nil {
		return err
	}

	selection, err := parseSelection(requestAll, requestIDs)
	if err != nil {
		return err
	}

	requestID, err := a.engine.RequestApproval(planID, selection)
	if err != nil {
		return err
	}

	fmt.Printf("approval requested for plan %s (request %s)\n", planID, requestID)
	return nil
}

func init() {
	requestCmd.Flags().BoolVar(&requestAll, "all", false, "select every action in the plan")
	requestCmd.Flags().StringSliceVar(&requestIDs, "id", nil, "spec id to select (repeatable)")
	rootCmd.AddCommand(requestCmd)
}
