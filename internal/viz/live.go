package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/myolab/myolab/internal/muscle"
)

const historyCapacity = 600

type TickMsg time.Time

// LiveModel drives a muscle interactively: the arrow keys set the
// excitation, the plot shows the force history, and the bar tracks the
// remaining capacity.
type LiveModel struct {
	muscle     *muscle.Muscle
	excitation float64
	maxDrive   float64
	dt         float64
	t          float64
	running    bool
	showHelp   bool

	forceHistory []float64
	driveHistory []float64
	lastForce    float64
}

func NewLiveModel(m *muscle.Muscle, excitation, dt float64) LiveModel {
	return LiveModel{
		muscle:       m,
		excitation:   excitation,
		maxDrive:     m.MaxExcitation(),
		dt:           dt,
		running:      true,
		forceHistory: make([]float64, 0, historyCapacity),
		driveHistory: make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.adjustDrive(1)
		case "down", "j":
			m.adjustDrive(-1)
		case "0":
			m.excitation = 0
		case "m":
			m.excitation = m.maxDrive
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *LiveModel) adjustDrive(delta float64) {
	m.excitation += delta
	if m.excitation < 0 {
		m.excitation = 0
	}
	if m.excitation > m.maxDrive {
		m.excitation = m.maxDrive
	}
}

func (m *LiveModel) step() {
	m.lastForce = m.muscle.Step(m.excitation, m.dt)
	m.t += m.dt

	m.forceHistory = append(m.forceHistory, m.lastForce)
	if len(m.forceHistory) > historyCapacity {
		m.forceHistory = m.forceHistory[1:]
	}
	m.driveHistory = append(m.driveHistory, m.excitation)
	if len(m.driveHistory) > historyCapacity {
		m.driveHistory = m.driveHistory[1:]
	}
}

func (m *LiveModel) reset() {
	m.muscle.Reset()
	m.t = 0
	m.lastForce = 0
	m.forceHistory = m.forceHistory[:0]
	m.driveHistory = m.driveHistory[:0]
}

func (m LiveModel) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("MUSCLE") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(subtleStyle.Render(status) + "\n")

	if len(m.forceHistory) > 1 {
		chart := asciigraph.Plot(m.forceHistory,
			asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("Force"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	capacity := m.muscle.Capacity(m.muscle.State())

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Drive") + valueStyle.Render(fmt.Sprintf("%.1f / %.1f", m.excitation, m.maxDrive)) + "\n")
	s.WriteString(labelStyle.Render("Force") + valueStyle.Render(fmt.Sprintf("%.1f", m.lastForce)) + "\n")
	s.WriteString(labelStyle.Render("Capacity") + ProgressBar(capacity, 30) +
		valueStyle.Render(fmt.Sprintf(" %.0f%%", capacity*100)) + "\n")

	if m.showHelp {
		s.WriteString(helpStyle.Render(
			"up/k: more drive  down/j: less drive  0: rest  m: max\n" +
				"space: pause  r: reset  q: quit  ?: hide help"))
	} else {
		s.WriteString(helpStyle.Render("up/down: drive  space: pause  r: reset  q: quit  ?: help"))
	}

	return s.String()
}

// RunLive starts the interactive view and blocks until the user quits.
func RunLive(m *muscle.Muscle, excitation, dt float64) error {
	p := tea.NewProgram(NewLiveModel(m, excitation, dt))
	_, err := p.Run()
	return err
}
