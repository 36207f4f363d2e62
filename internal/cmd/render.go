package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// CLI output styles
var (
	outHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	outKeyStyle    = lipgloss.NewStyle().Bold(true)
	outDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	outOkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	outFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	outWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// renderRisk renders a colored risk label
func renderRisk(level domain.RiskLevel) string {
	switch level {
	case domain.RiskHigh:
		return outFailStyle.Render("HIGH")
	case domain.RiskMedium:
		return outWarnStyle.Render("MEDIUM")
	default:
		return outOkStyle.Render("LOW")
	}
}

// renderStatus renders a colored plan status
func renderStatus(status domain.Status) string {
	switch status {
	case domain.StatusCompleted, domain.StatusApproved:
		return outOkStyle.Render(status.String())
	case domain.StatusAborted:
		return outFailStyle.Render(status.String())
	case domain.StatusExecuting, domain.StatusPendingReview:
		return outWarnStyle.Render(status.String())
	default:
		return status.String()
	}
}

// renderSpecLine renders one spec as a single list row
func renderSpecLine(spec plan.ActionSpecExt) string {
	target := spec.Spec.Path
	if target == "" {
		target = "(no path)"
	}

	var marks []string
	if spec.Preflight.WouldOverwrite {
		marks = append(marks, "overwrites")
	}
	if !spec.Validated {
		marks = append(marks, "invalid")
	}

	line := fmt.Sprintf("  %s  %-7s %s  %s", renderRisk(spec.Risk), spec.Spec.Kind, target, spec.ID)
	if len(marks) > 0 {
		line += "  " + outDimStyle.Render("["+strings.Join(marks, ", ")+"]")
	}
	return line
}

// renderPreview renders the informational preview block
func renderPreview(preview plan.Preview) string {
	var b strings.Builder

	b.WriteString(outHeaderStyle.Render("Preview"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %.2f\n", outKeyStyle.Render("risk score:"), preview.RiskScore))

	b.WriteString(fmt.Sprintf("  %s %d\n", outKeyStyle.Render("files:"), len(preview.Files)))
	for _, file := range preview.Files {
		b.WriteString(fmt.Sprintf("    %s\n", file))
	}

	if len(preview.Diffs) > 0 {
		b.WriteString(fmt.Sprintf("  %s\n", outKeyStyle.Render("diffs:")))
		for _, diff := range preview.Diffs {
			b.WriteString(fmt.Sprintf("    %s  %s\n", diff.Path, outDimStyle.Render(diff.Summary)))
		}
	}

	return b.String()
}

// renderResult renders an execution result with per-action outcomes
func renderResult(result plan.ExecutionResult) string {
	var b strings.Builder

	for _, outcome := range result.Outcomes {
		mark := outOkStyle.Render("✓")
		detail := outcome.Message
		if !outcome.Success {
			mark = outFailStyle.Render("✗")
			detail = outcome.Error
		}
		b.WriteString(fmt.Sprintf("  %s %-7s %s  %s\n", mark, outcome.Kind, outcome.Path, outDimStyle.Render(detail)))
	}

	if result.OverallSuccess {
		b.WriteString(outOkStyle.Render(fmt.Sprintf("\n%d actions completed in %s\n",
			len(result.Outcomes), result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))))
	} else {
		b.WriteString(outFailStyle.Render("\nexecution finished with failures\n"))
	}

	return b.String()
}
