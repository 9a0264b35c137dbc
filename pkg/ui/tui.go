package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/eclesiar-analyzer/pkg/ui/components"
)

// Service names shown in the status line.
const (
	serviceAPI      = "Eclesiar API"
	serviceAnalysis = "Analysis"
)

// StartupStep represents a step in the startup process.
type StartupStep struct {
	Name   string
	Status string // "pending", "connecting", "connected", "failed"
}

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"
	PhaseStartup   Phase = "startup"
	PhaseDashboard Phase = "dashboard"
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

const (
	maxErrors   = 3
	maxActivity = 6
)

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	opportunities *components.OpportunitiesComponent
	regions       *components.RegionsComponent
	market        *components.CurrenciesComponent
	stats         *components.StatsComponent
	status        *components.StatusComponent

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	phase        Phase
	welcomeStart time.Time

	quitting    bool
	width       int
	height      int
	runnerPhase string
	cycle       int
	lastReport  time.Time
	errors      []ErrorEntry
	activity    []string

	startupSteps map[string]*StartupStep
	stepOrder    []string
	startupTime  time.Time
}

// New creates a new TUI model.
func New() Model {
	now := time.Now()
	return Model{
		opportunities: components.NewOpportunitiesComponent(10),
		regions:       components.NewRegionsComponent(8),
		market:        components.NewCurrenciesComponent(),
		stats:         components.NewStatsComponent(),
		status:        components.NewStatusComponent(serviceAPI, serviceAnalysis),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(PhaseBusy),
		),
		phase:        PhaseWelcome,
		welcomeStart: now,
		runnerPhase:  "idle",
		startupSteps: map[string]*StartupStep{
			"config":   {Name: "Loading configuration", Status: "pending"},
			"database": {Name: "Opening snapshot store", Status: "pending"},
			"eclesiar": {Name: "Fetching first snapshot", Status: "pending"},
		},
		stepOrder:   []string{"config", "database", "eclesiar"},
		startupTime: now,
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

// tickCmd drives the welcome timeout and the relative timestamps.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) startModules() Model {
	m.phase = PhaseStartup
	m.startupTime = time.Now()
	// Send() must not be called from within Update
	if OnStartModules != nil {
		go OnStartModules()
	}
	return m
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.phase == PhaseWelcome {
			return m.startModules(), nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.opportunities.ScrollUp()
		case key.Matches(msg, m.keys.Down):
			m.opportunities.ScrollDown()
		case key.Matches(msg, m.keys.NextItem):
			m.regions.Next()
		case key.Matches(msg, m.keys.PrevItem):
			m.regions.Prev()
		case key.Matches(msg, m.keys.Clear):
			m.opportunities.Clear()
			m.activity = nil
		case key.Matches(msg, m.keys.ClearErrors):
			m.errors = nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m = m.startModules()
		}
		return m, tickCmd()

	case StartModulesMsg:
		if m.phase == PhaseWelcome {
			m.phase = PhaseStartup
			m.startupTime = time.Now()
		}

	case StartupMsg:
		if step, ok := m.startupSteps[msg.Step]; ok {
			step.Status = msg.Status
		}

	case RunnerStatusMsg:
		m = m.applyStatus(msg)

	case ReportMsg:
		if msg.Report == nil {
			return m, nil
		}
		r := msg.Report
		m.opportunities.Set(opportunityRows(r))
		m.regions.Set(regionRows(r))
		m.market.Update(marketSummary(r))

		stats := m.stats.Stats()
		stats.Opportunities = len(r.Opportunities)
		stats.Detected = r.Detected
		stats.RegionsRanked = r.RegionsRanked()
		stats.LastDuration = r.Duration
		m.stats.Update(stats)

		m.lastReport = r.GeneratedAt
		m.phase = PhaseDashboard
		if best, ok := r.Best(); ok {
			m.activity = addActivity(m.activity, fmt.Sprintf("Best: %s %s%% net", best.PathString(), best.Profit.NetPct.StringFixed(2)))
		} else {
			m.activity = addActivity(m.activity, "No opportunities this cycle")
		}

	case ErrorMsg:
		if msg.Error != nil {
			m.errors = addError(m.errors, msg.Error.Error())
		}

	case LogMsg:
		prefix := ""
		if msg.Level == "warn" || msg.Level == "error" {
			prefix = strings.ToUpper(msg.Level) + " "
		}
		m.activity = addActivity(m.activity, prefix+msg.Message)
	}

	return m, nil
}

func (m Model) applyStatus(msg RunnerStatusMsg) Model {
	m.runnerPhase = msg.Phase
	m.cycle = msg.Cycle
	stats := m.stats.Stats()
	stats.Cycles = msg.Cycle

	switch msg.Phase {
	case "collecting":
		m.status.Update(components.ServiceStatus{Name: serviceAPI, State: components.StateWorking})
		if step := m.startupSteps["eclesiar"]; step.Status == "pending" {
			step.Status = "connecting"
		}
	case "analyzing":
		m.status.Update(components.ServiceStatus{Name: serviceAPI, State: components.StateOK})
		m.status.Update(components.ServiceStatus{Name: serviceAnalysis, State: components.StateWorking})
		m.startupSteps["eclesiar"].Status = "connected"
	case "idle":
		m.status.Update(components.ServiceStatus{Name: serviceAnalysis, State: components.StateOK})
		m.activity = addActivity(m.activity, fmt.Sprintf("Cycle #%d complete", msg.Cycle))
	case "failed":
		stats.Failures++
		m.status.Update(components.ServiceStatus{Name: serviceAPI, State: components.StateFailed})
		if step := m.startupSteps["eclesiar"]; step.Status != "connected" {
			step.Status = "failed"
		}
		if msg.Err != nil {
			m.errors = addError(m.errors, msg.Err.Error())
		}
	}
	m.stats.Update(stats)
	return m
}

func addError(errs []ErrorEntry, message string) []ErrorEntry {
	errs = append(errs, ErrorEntry{Message: message, Timestamp: time.Now()})
	if len(errs) > maxErrors {
		errs = errs[len(errs)-maxErrors:]
	}
	return errs
}

func addActivity(feed []string, message string) []string {
	feed = append(feed, fmt.Sprintf("[%s] %s", time.Now().Format(time.TimeOnly), message))
	if len(feed) > maxActivity {
		feed = feed[len(feed)-maxActivity:]
	}
	return feed
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseStartup:
		return m.renderStartupScreen()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(" Eclesiar Analyzer "))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	leftCol := m.market.View() + "\n\n" + m.stats.View() + "\n\n" + m.renderActivityFeed()
	rightCol := m.opportunities.View() + "\n\n" + m.regions.View()

	if m.width > 120 {
		left := BoxStyle.Width(m.width/3 - 2).Render(leftCol)
		right := BoxStyle.Width(m.width*2/3 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		w := max(m.width-4, 40)
		b.WriteString(BoxStyle.Width(w).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(w).Render(rightCol))
	}
	b.WriteString("\n\n")

	if len(m.errors) > 0 {
		errorStyle := lipgloss.NewStyle().Foreground(ColorDanger)
		errorHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
		mutedError := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString(mutedError.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(errorStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(mutedError.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderActivityFeed() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("ACTIVITY"))
	sb.WriteString("\n")
	if len(m.activity) == 0 {
		sb.WriteString(MutedValue.Render("  Waiting for the first cycle..."))
		return sb.String()
	}
	for _, line := range m.activity {
		sb.WriteString(MutedValue.Render("  " + line))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	greenStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	dots := strings.Repeat(".", int(time.Since(m.welcomeStart).Milliseconds()/300)%4)

	logo := `
   ███████╗ ██████╗██╗     ███████╗███████╗██╗ █████╗ ██████╗
   ██╔════╝██╔════╝██║     ██╔════╝██╔════╝██║██╔══██╗██╔══██╗
   █████╗  ██║     ██║     █████╗  ███████╗██║███████║██████╔╝
   ██╔══╝  ██║     ██║     ██╔══╝  ╚════██║██║██╔══██║██╔══██╗
   ███████╗╚██████╗███████╗███████╗███████║██║██║  ██║██║  ██║
   ╚══════╝ ╚═════╝╚══════╝╚══════╝╚══════╝╚═╝╚═╝  ╚═╝╚═╝  ╚═╝
`
	var sb strings.Builder
	sb.WriteString("\n\n\n")
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")
	sb.WriteString(MutedValue.Render("                     M A R K E T   A N A L Y Z E R"))
	sb.WriteString("\n\n\n")
	sb.WriteString(GoldValue.Render("           Currency arbitrage and production efficiency"))
	sb.WriteString("\n\n\n")
	sb.WriteString(greenStyle.Render(fmt.Sprintf("                        Initializing%s", dots)))
	sb.WriteString("\n\n")
	sb.WriteString(MutedValue.Render("                 Press any key to skip, or wait..."))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderStartupScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginBottom(1)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))

	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  Eclesiar Analyzer"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("  Starting up..."))
	sb.WriteString("\n\n")

	for _, name := range m.stepOrder {
		step := m.startupSteps[name]

		var icon, statusText string
		var style lipgloss.Style
		switch step.Status {
		case "connected", "done":
			icon, statusText, style = "✓", "Ready", PhaseIdle
		case "connecting":
			icon, statusText, style = m.spinner.View(), "Working...", PhaseBusy
		case "failed":
			icon, statusText, style = "✗", "Failed", PhaseFailed
		default:
			icon, statusText, style = "○", "Pending", MutedValue
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", style.Render(icon), MutedValue.Render(step.Name), style.Render(statusText)))
	}

	sb.WriteString("\n")
	sb.WriteString(MutedValue.Render(fmt.Sprintf("  Elapsed: %s", time.Since(m.startupTime).Round(time.Second))))
	sb.WriteString("\n\n")
	sb.WriteString(MutedValue.Render("  Waiting for the first report..."))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	switch m.runnerPhase {
	case "collecting", "analyzing":
		parts = append(parts, PhaseBusy.Render(m.spinner.View()+" "+strings.ToUpper(m.runnerPhase[:1])+m.runnerPhase[1:]))
	case "failed":
		parts = append(parts, PhaseFailed.Render("✗ Failed"))
	default:
		parts = append(parts, PhaseIdle.Render("● Idle"))
	}

	parts = append(parts, fmt.Sprintf("Cycle: #%d", m.cycle))
	if s := m.status.View(); s != "" {
		parts = append(parts, s)
	}
	if !m.lastReport.IsZero() {
		ago := time.Since(m.lastReport).Round(time.Second)
		parts = append(parts, MutedValue.Render(fmt.Sprintf("Updated: %s ago", ago)))
	}
	return strings.Join(parts, "  │  ")
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartModules is called once the welcome screen is done. main sets it
// to begin loading modules.
var OnStartModules func()

// Run starts the Bubble Tea program.
func Run() error {
	Program = tea.NewProgram(New(), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
	if _, ok := msg.(StartModulesMsg); ok && OnStartModules != nil {
		OnStartModules()
	}
}
