package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Service states.
const (
	StateUnknown = "unknown"
	StateWorking = "working"
	StateOK      = "ok"
	StateFailed  = "failed"
)

// ServiceStatus is the last known state of one dependency.
type ServiceStatus struct {
	Name       string
	State      string
	Detail     string
	LastUpdate time.Time
}

// StatusComponent renders dependency states in insertion order.
type StatusComponent struct {
	services []ServiceStatus
}

// NewStatusComponent creates a status component listing names as unknown.
func NewStatusComponent(names ...string) *StatusComponent {
	s := &StatusComponent{}
	for _, n := range names {
		s.services = append(s.services, ServiceStatus{Name: n, State: StateUnknown})
	}
	return s
}

// Update sets a service's status, adding it if new.
func (s *StatusComponent) Update(status ServiceStatus) {
	if status.LastUpdate.IsZero() {
		status.LastUpdate = time.Now()
	}
	for i, svc := range s.services {
		if svc.Name == status.Name {
			s.services[i] = status
			return
		}
	}
	s.services = append(s.services, status)
}

// Get returns a service's status.
func (s *StatusComponent) Get(name string) (ServiceStatus, bool) {
	for _, svc := range s.services {
		if svc.Name == name {
			return svc, true
		}
	}
	return ServiceStatus{}, false
}

// View renders the status component on one line.
func (s *StatusComponent) View() string {
	if len(s.services) == 0 {
		return ""
	}

	parts := make([]string, 0, len(s.services))
	for _, svc := range s.services {
		icon, style := "○", lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
		switch svc.State {
		case StateOK:
			icon, style = "●", lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
		case StateWorking:
			icon, style = "◐", lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
		case StateFailed:
			icon, style = "✗", lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
		}
		line := fmt.Sprintf("%s %s", icon, svc.Name)
		if svc.Detail != "" {
			line += fmt.Sprintf(" (%s)", svc.Detail)
		}
		parts = append(parts, style.Render(line))
	}
	return strings.Join(parts, "  │  ")
}
