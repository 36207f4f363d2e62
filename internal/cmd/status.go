package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status [plan-id]",
	Aliases: []string{"current"},
	Short:   "Show a plan's lifecycle state and actions",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	fmt.Println(outHeaderStyle.Render(p.Title))
	fmt.Printf("  %s %s\n", outKeyStyle.Render("id:"), p.ID)
	fmt.Printf("  %s %s\n", outKeyStyle.Render("status:"), renderStatus(state.Status))
	fmt.Printf("  %s %s\n", outKeyStyle.Render("created:"), p.CreatedAt.Format("2006-01-02 15:04:05"))
	if p.Rationale != "" {
		fmt.Printf("  %s %s\n", outKeyStyle.Render("rationale:"), p.Rationale)
	}
	if len(p.Tags) > 0 {
		fmt.Printf("  %s %v\n", outKeyStyle.Render("tags:"), p.Tags)
	}

	if len(p.Steps) > 0 {
		fmt.Println(outHeaderStyle.Render("Steps (informational)"))
		for _, step := range p.Steps {
			fmt.Printf("  • %s", step.Name)
			if step.Description != "" {
				fmt.Printf("  %s", outDimStyle.Render(step.Description))
			}
			fmt.Println()
		}
	}

	if len(state.ActionSpecs) > 0 {
		fmt.Println(outHeaderStyle.Render(fmt.Sprintf("Actions (%d)", len(state.ActionSpecs))))
		for _, spec := range state.ActionSpecs {
			selected := " "
			if state.Selection.Includes(spec.ID) {
				selected = "x"
			}
			fmt.Printf("  [%s]%s\n", selected, renderSpecLine(spec))
		}
	}

	if len(state.Approvals) > 0 {
		fmt.Println(outHeaderStyle.Render("Approvals"))
		for _, record := range state.Approvals {
			fmt.Printf("  %s at %s\n", record.Approver, record.ApprovedAt.Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
