package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// resolvePlanID resolves the plan targeted by a command: an explicit argument
// wins, otherwise the store's current plan is used
func resolvePlanID(a *app, args []string) (domain.PlanID, error) {
	if len(args) > 0 {
		return domain.ParsePlanID(args[0])
	}

	p, _, err := a.engine.GetCurrent()
	if err != nil {
		return "", fmt.Errorf("no plan id given and no current plan is set")
	}
	return p.ID, nil
}

// parseSelection builds a Selection from the --all / --id flags
func parseSelection(all bool, ids []string) (plan.Selection, error) {
	if all && len(ids) > 0 {
		return plan.Selection{}, fmt.Errorf("--all and --id are mutually exclusive")
	}
	if all {
		return plan.SelectAll(), nil
	}
	if len(ids) == 0 {
		return plan.Selection{}, fmt.Errorf("a selection is required: pass --all or one or more --id")
	}

	specIDs := make([]domain.SpecID, 0, len(ids))
	for _, raw := range ids {
		id, err := domain.ParseSpecID(raw)
		if err != nil {
			return plan.Selection{}, err
		}
		specIDs = append(specIDs, id)
	}
	return plan.SelectIDs(specIDs...), nil
}

// readInput reads from a file path, or stdin when the path is "-"
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
