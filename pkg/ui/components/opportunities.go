// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// OpportunityRow is one ranked opportunity.
type OpportunityRow struct {
	Kind       string
	Path       string
	GrossPct   decimal.Decimal
	NetPct     decimal.Decimal
	MaxAmount  decimal.Decimal
	EstProfit  decimal.Decimal
	Risk       float64
	Confidence float64
	Execution  time.Duration
}

// OpportunitiesComponent renders the opportunities of the latest report
// with a scroll window.
type OpportunitiesComponent struct {
	rows    []OpportunityRow
	offset  int
	visible int
}

// NewOpportunitiesComponent creates a component showing visible rows at a time.
func NewOpportunitiesComponent(visible int) *OpportunitiesComponent {
	if visible < 1 {
		visible = 1
	}
	return &OpportunitiesComponent{visible: visible}
}

// Set replaces the rows; the scroll position is kept when still valid.
func (o *OpportunitiesComponent) Set(rows []OpportunityRow) {
	o.rows = rows
	if o.offset > o.maxOffset() {
		o.offset = o.maxOffset()
	}
}

// Clear clears all opportunities.
func (o *OpportunitiesComponent) Clear() {
	o.rows = nil
	o.offset = 0
}

// Len returns the number of rows.
func (o *OpportunitiesComponent) Len() int {
	return len(o.rows)
}

// ScrollUp moves the window one row up.
func (o *OpportunitiesComponent) ScrollUp() {
	if o.offset > 0 {
		o.offset--
	}
}

// ScrollDown moves the window one row down.
func (o *OpportunitiesComponent) ScrollDown() {
	if o.offset < o.maxOffset() {
		o.offset++
	}
}

func (o *OpportunitiesComponent) maxOffset() int {
	return max(len(o.rows)-o.visible, 0)
}

// View renders the opportunities component.
func (o *OpportunitiesComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	profitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("OPPORTUNITIES (%d)", len(o.rows))))
	b.WriteString("\n")
	if len(o.rows) == 0 {
		b.WriteString(mutedStyle.Render("No opportunities above the thresholds..."))
		return b.String()
	}

	b.WriteString("┌────┬────────────┬──────────────────────┬─────────┬──────────┬───────────┬───────┬───────┐\n")
	b.WriteString("│  # │    Kind    │         Path         │   Net   │  Max  G  │  Est. G   │ Risk  │ Conf  │\n")
	b.WriteString("├────┼────────────┼──────────────────────┼─────────┼──────────┼───────────┼───────┼───────┤\n")

	end := min(o.offset+o.visible, len(o.rows))
	for i := o.offset; i < end; i++ {
		row := o.rows[i]
		b.WriteString(fmt.Sprintf("│%3d │ %-10s │ %-20s │%s│%9s │%10s │ %.3f │ %.3f │\n",
			i+1,
			row.Kind,
			truncate(row.Path, 20),
			profitStyle.Render(fmt.Sprintf("%8s%%", row.NetPct.StringFixed(2))),
			row.MaxAmount.StringFixed(2),
			row.EstProfit.StringFixed(4),
			row.Risk,
			row.Confidence,
		))
	}
	b.WriteString("└────┴────────────┴──────────────────────┴─────────┴──────────┴───────────┴───────┴───────┘")

	if len(o.rows) > o.visible {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("rows %d-%d of %d", o.offset+1, end, len(o.rows))))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
