package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// ReviewResult holds the outcome of an interactive review session
type ReviewResult struct {
	Approved  bool
	Selection plan.Selection
	Reason    string
}

// reviewModel is the BubbleTea model for reviewing a plan's action specs
type reviewModel struct {
	title    string
	specs    []plan.ActionSpecExt
	selected map[domain.SpecID]bool
	cursor   int
	viewMode string // "list" or "detail"
	detail   int
	result   *ReviewResult
	width    int
	height   int
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	detailKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginLeft(2).
			MarginTop(1)

	approveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	riskHighStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	riskMediumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	riskLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// riskBadge renders a colored risk label
func riskBadge(level domain.RiskLevel) string {
	switch level {
	case domain.RiskHigh:
		return riskHighStyle.Render("HIGH")
	case domain.RiskMedium:
		return riskMediumStyle.Render("MED ")
	default:
		return riskLowStyle.Render("LOW ")
	}
}

// Init initializes the model
func (m reviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.result == nil {
				m.result = &ReviewResult{
					Approved: false,
					Reason:   "review cancelled",
				}
			}
			return m, tea.Quit

		case "up", "k":
			if m.viewMode == "list" && m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.viewMode == "list" && m.cursor < len(m.specs)-1 {
				m.cursor++
			}
			return m, nil

		case " ", "x":
			if m.viewMode == "list" && len(m.specs) > 0 {
				id := m.specs[m.cursor].ID
				m.selected[id] = !m.selected[id]
			}
			return m, nil

		case "enter", "right", "l":
			if m.viewMode == "list" {
				m.detail = m.cursor
				m.viewMode = "detail"
			}
			return m, nil

		case "left", "h", "esc":
			if m.viewMode == "detail" {
				m.viewMode = "list"
			}
			return m, nil

		case "a", "A":
			m.result = &ReviewResult{
				Approved:  true,
				Selection: m.currentSelection(),
			}
			return m, tea.Quit

		case "r", "R":
			m.result = &ReviewResult{
				Approved: false,
				Reason:   "rejected by reviewer",
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// currentSelection converts the toggled set into a Selection. When every
// spec is toggled on, the selection collapses to all=true.
func (m reviewModel) currentSelection() plan.Selection {
	var ids []domain.SpecID
	for _, spec := range m.specs {
		if m.selected[spec.ID] {
			ids = append(ids, spec.ID)
		}
	}
	if len(ids) == len(m.specs) {
		return plan.SelectAll()
	}
	return plan.SelectIDs(ids...)
}

// View renders the current state
func (m reviewModel) View() string {
	if m.result != nil {
		if m.result.Approved {
			return approveStyle.Render("\n✓ Selection approved\n\n")
		}
		return rejectStyle.Render(fmt.Sprintf("\n✗ Plan rejected: %s\n\n", m.result.Reason))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Plan Review: " + m.title))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Actions: %d", len(m.specs))))
	b.WriteString("\n\n")

	if m.viewMode == "list" {
		for i, spec := range m.specs {
			style := itemStyle
			cursor := "  "
			if i == m.cursor {
				style = selectedItemStyle
				cursor = "→ "
			}

			checked := " "
			if m.selected[spec.ID] {
				checked = "x"
			}

			target := spec.Spec.Path
			if target == "" {
				target = "(no path)"
			}

			line := fmt.Sprintf("%s[%s] %s %-6s %s",
				cursor, checked, riskBadge(spec.Risk), spec.Spec.Kind, target)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	} else {
		spec := m.specs[m.detail]
		b.WriteString(headerStyle.Render(fmt.Sprintf("Action %d of %d", m.detail+1, len(m.specs))))
		b.WriteString("\n\n")

		details := []struct {
			key   string
			value string
		}{
			{"ID", spec.ID.String()},
			{"Kind", spec.Spec.Kind.String()},
			{"Path", spec.Spec.Path},
			{"Risk", spec.Risk.String()},
			{"Validated", fmt.Sprintf("%t", spec.Validated)},
			{"Exists", fmt.Sprintf("%t", spec.Preflight.Exists)},
			{"Overwrites", fmt.Sprintf("%t", spec.Preflight.WouldOverwrite)},
		}
		if spec.Preflight.DiffSummary != "" {
			details = append(details, struct{ key, value string }{"Diff", spec.Preflight.DiffSummary})
		}
		if spec.Notes != "" {
			details = append(details, struct{ key, value string }{"Notes", spec.Notes})
		}
		if spec.Spec.Description != "" {
			details = append(details, struct{ key, value string }{"Description", spec.Spec.Description})
		}

		for _, detail := range details {
			b.WriteString("  ")
			b.WriteString(detailKeyStyle.Render(fmt.Sprintf("%-12s:", detail.key)))
			b.WriteString(" ")
			b.WriteString(detailValueStyle.Render(detail.value))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.viewMode == "list" {
		b.WriteString(helpStyle.Render("↑/↓: navigate | space: toggle | enter: details | a: approve selection | r: reject | q: quit"))
	} else {
		b.WriteString(helpStyle.Render("h/esc: back | a: approve selection | r: reject | q: quit"))
	}

	return b.String()
}

// RunReview launches an interactive review of a plan's action specs. All
// specs start selected; the reviewer toggles the ones to exclude.
func RunReview(title string, specs []plan.ActionSpecExt) (*ReviewResult, error) {
	if len(specs) == 0 {
		return &ReviewResult{Approved: false, Reason: "nothing to review"}, nil
	}

	selected := make(map[domain.SpecID]bool, len(specs))
	for _, spec := range specs {
		selected[spec.ID] = true
	}

	model := reviewModel{
		title:    title,
		specs:    specs,
		selected: selected,
		viewMode: "list",
	}

	program := tea.NewProgram(model)
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running plan review UI: %w", err)
	}

	m, ok := finalModel.(reviewModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T", finalModel)
	}

	if m.result != nil {
		return m.result, nil
	}

	return &ReviewResult{Approved: false, Reason: "review ended without a decision"}, nil
}
