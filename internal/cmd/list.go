package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known plans, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	summaries := a.engine.List()
	if len(summaries) == 0 {
		fmt.Println("no plans yet; start with 'greenlight propose'")
		return nil
	}

	current := ""
	if p, _, err := a.engine.GetCurrent(); err == nil {
		current = p.ID.String()
	}

	for _, summary := range summaries {
		marker := "  "
		if summary.ID.String() == current {
			marker = outOkStyle.Render("* ")
		}
		fmt.Printf("%s%s  %-14s  %s  %s\n",
			marker,
			summary.ID,
			renderStatus(summary.Status),
			summary.CreatedAt.Format("2006-01-02 15:04"),
			summary.Title)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
