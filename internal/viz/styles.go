package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)

	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a filled bar colored by how much is left.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return sparkHigh.Render(bar)
	} else if percent > 0.4 {
		return sparkMid.Render(bar)
	}
	return sparkLow.Render(bar)
}
