package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// CurrencyRate is a currency and its GOLD value.
type CurrencyRate struct {
	Code string
	Gold decimal.Decimal
}

// MarketSummary describes the snapshot behind the latest report.
type MarketSummary struct {
	SnapshotAt time.Time
	Currencies int
	Rates      int
	Offers     int
	Regions    int
	Highest    *CurrencyRate
	Lowest     *CurrencyRate
}

// CurrenciesComponent renders the market summary panel.
type CurrenciesComponent struct {
	summary *MarketSummary
}

// NewCurrenciesComponent creates a new currencies component.
func NewCurrenciesComponent() *CurrenciesComponent {
	return &CurrenciesComponent{}
}

// Update replaces the summary.
func (c *CurrenciesComponent) Update(s MarketSummary) {
	c.summary = &s
}

// View renders the currencies component.
func (c *CurrenciesComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	goldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)

	var b strings.Builder
	b.WriteString(headerStyle.Render("MARKET"))
	b.WriteString("\n")
	if c.summary == nil {
		b.WriteString(labelStyle.Render("No snapshot yet..."))
		return b.String()
	}

	s := c.summary
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Snapshot:  "), s.SnapshotAt.Local().Format(time.TimeOnly)))
	b.WriteString(fmt.Sprintf("%s %d currencies, %d rates\n", labelStyle.Render("Market:    "), s.Currencies, s.Rates))
	b.WriteString(fmt.Sprintf("%s %d offers, %d regions\n", labelStyle.Render("Data:      "), s.Offers, s.Regions))
	if s.Highest != nil {
		b.WriteString(fmt.Sprintf("%s %s %s\n", labelStyle.Render("Strongest: "), s.Highest.Code, goldStyle.Render(s.Highest.Gold.StringFixed(6)+" G")))
	}
	if s.Lowest != nil {
		b.WriteString(fmt.Sprintf("%s %s %s", labelStyle.Render("Weakest:   "), s.Lowest.Code, goldStyle.Render(s.Lowest.Gold.StringFixed(6)+" G")))
	}
	return strings.TrimRight(b.String(), "\n")
}
