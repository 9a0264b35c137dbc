package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	arbitrage "github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
	ingestion "github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
)

func testReport() *domain.Report {
	ranked := func(rank int, name string, bonus string) production.RankedRegion {
		return production.RankedRegion{Rank: rank, Result: production.ProductionResult{
			RegionName:     name,
			CountryName:    "Poland",
			Item:           production.Iron,
			Tier:           1,
			QualityOutputs: [production.Qualities]int{12, 10, 8, 6, 4},
			Efficiency:     decimal.RequireFromString("1.5"),
			RegionalBonus:  decimal.RequireFromString(bonus),
		}}
	}
	return &domain.Report{
		GeneratedAt: time.Now(),
		Snapshot:    ingestion.Stats{Currencies: 3, Rates: 3, Offers: 4, Regions: 2},
		Detected:    2,
		Opportunities: []arbitrage.Opportunity{{
			Kind:   arbitrage.KindSimple,
			Path:   []market.CurrencyID{market.Gold, "USD"},
			Profit: arbitrage.ProfitResult{NetPct: decimal.RequireFromString("6.94")},
		}},
		Regions: map[production.ItemType][]production.RankedRegion{
			production.Iron: {ranked(1, "Mazovia", "0.3"), ranked(2, "Silesia", "0.1")},
		},
		Extremes: &domain.Extremes{
			Highest: market.CurrencyRate{Currency: "PLN", GoldPerUnit: decimal.RequireFromString("0.251")},
			Lowest:  market.CurrencyRate{Currency: "USD", GoldPerUnit: decimal.RequireFromString("0.14")},
		},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_ReportSwitchesToDashboard(t *testing.T) {
	m := New()
	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	m = update(t, m, ReportMsg{Report: testReport()})

	if m.phase != PhaseDashboard {
		t.Fatalf("phase = %s, want dashboard", m.phase)
	}
	if m.opportunities.Len() != 1 {
		t.Errorf("opportunities = %d, want 1", m.opportunities.Len())
	}
	if got := m.regions.Current(); got != production.Iron.Label() {
		t.Errorf("current item = %q", got)
	}
	if s := m.stats.Stats(); s.Detected != 2 || s.RegionsRanked != 2 {
		t.Errorf("stats = %+v", s)
	}

	view := m.View()
	for _, want := range []string{"GOLD -> USD", "Mazovia", "PLN", "Eclesiar Analyzer"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_RunnerStatus(t *testing.T) {
	m := New()
	m = update(t, m, RunnerStatusMsg{Phase: "collecting", Cycle: 1})
	if m.startupSteps["eclesiar"].Status != "connecting" {
		t.Errorf("eclesiar step = %s", m.startupSteps["eclesiar"].Status)
	}
	m = update(t, m, RunnerStatusMsg{Phase: "analyzing", Cycle: 1})
	if m.startupSteps["eclesiar"].Status != "connected" {
		t.Errorf("eclesiar step = %s", m.startupSteps["eclesiar"].Status)
	}

	m = update(t, m, RunnerStatusMsg{Phase: "failed", Cycle: 2, Err: errors.New("boom")})
	if m.stats.Stats().Failures != 1 || m.stats.Stats().Cycles != 2 {
		t.Errorf("stats = %+v", m.stats.Stats())
	}
	if len(m.errors) != 1 || m.errors[0].Message != "boom" {
		t.Errorf("errors = %+v", m.errors)
	}
	// the first snapshot already arrived, so startup is not marked failed
	if m.startupSteps["eclesiar"].Status != "connected" {
		t.Errorf("eclesiar step = %s", m.startupSteps["eclesiar"].Status)
	}
	if svc, _ := m.status.Get(serviceAPI); svc.State != "failed" {
		t.Errorf("api state = %s", svc.State)
	}
}

func TestModel_ErrorsAreCapped(t *testing.T) {
	m := New()
	for i := 0; i < 5; i++ {
		m = update(t, m, ErrorMsg{Error: errors.New("e")})
	}
	if len(m.errors) != maxErrors {
		t.Errorf("errors = %d, want %d", len(m.errors), maxErrors)
	}
	m.phase = PhaseDashboard
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if len(m.errors) != 0 {
		t.Errorf("errors not cleared: %d", len(m.errors))
	}
}

func TestModel_WelcomeKeyStartsModules(t *testing.T) {
	started := make(chan struct{}, 1)
	OnStartModules = func() { started <- struct{}{} }
	defer func() { OnStartModules = nil }()

	m := update(t, New(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.phase != PhaseStartup {
		t.Fatalf("phase = %s, want startup", m.phase)
	}
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("OnStartModules was not called")
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := New()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).quitting || cmd == nil {
		t.Error("ctrl+c should quit")
	}
}
