package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RegionRow is one row of an item's region ranking.
type RegionRow struct {
	Rank       int
	Region     string
	Country    string
	Efficiency decimal.Decimal
	BonusPct   decimal.Decimal
	Output     int
	Pollution  decimal.Decimal
	WageGold   decimal.Decimal
}

// RegionsComponent shows the region ranking of one item at a time.
type RegionsComponent struct {
	items   []string
	rows    map[string][]RegionRow
	current int
	table   table.Model
}

// NewRegionsComponent creates a component with a table height rows tall.
func NewRegionsComponent(height int) *RegionsComponent {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Region", Width: 18},
			{Title: "Country", Width: 14},
			{Title: "Eff.", Width: 8},
			{Title: "Bonus", Width: 7},
			{Title: "Out", Width: 5},
			{Title: "Poll.", Width: 6},
			{Title: "Wage", Width: 6},
		}),
		table.WithHeight(height),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#374151")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return &RegionsComponent{rows: make(map[string][]RegionRow), table: t}
}

// Set replaces the rankings. items fixes the cycling order; the selected
// item is kept when still present.
func (r *RegionsComponent) Set(items []string, rows map[string][]RegionRow) {
	selected := r.Current()
	r.items = items
	r.rows = rows
	r.current = 0
	for i, item := range items {
		if item == selected {
			r.current = i
		}
	}
	r.refresh()
}

// Current returns the item on display.
func (r *RegionsComponent) Current() string {
	if len(r.items) == 0 {
		return ""
	}
	return r.items[r.current]
}

// Next shows the next item.
func (r *RegionsComponent) Next() {
	if len(r.items) == 0 {
		return
	}
	r.current = (r.current + 1) % len(r.items)
	r.refresh()
}

// Prev shows the previous item.
func (r *RegionsComponent) Prev() {
	if len(r.items) == 0 {
		return
	}
	r.current = (r.current - 1 + len(r.items)) % len(r.items)
	r.refresh()
}

func (r *RegionsComponent) refresh() {
	rows := r.rows[r.Current()]
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, table.Row{
			fmt.Sprintf("%d", row.Rank),
			row.Region,
			row.Country,
			row.Efficiency.StringFixed(2),
			row.BonusPct.StringFixed(0) + "%",
			fmt.Sprintf("%d", row.Output),
			row.Pollution.StringFixed(1),
			row.WageGold.StringFixed(2),
		})
	}
	r.table.SetRows(out)
}

// View renders the item tabs and the table.
func (r *RegionsComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var b strings.Builder
	b.WriteString(headerStyle.Render("BEST REGIONS"))
	b.WriteString("\n")
	if len(r.items) == 0 {
		b.WriteString(mutedStyle.Render("Waiting for the first report..."))
		return b.String()
	}

	tabs := make([]string, len(r.items))
	for i, item := range r.items {
		if i == r.current {
			tabs[i] = activeStyle.Render("[" + item + "]")
		} else {
			tabs[i] = mutedStyle.Render(item)
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")
	if len(r.rows[r.Current()]) == 0 {
		b.WriteString(mutedStyle.Render("no regions"))
		return b.String()
	}
	b.WriteString(r.table.View())
	return b.String()
}
