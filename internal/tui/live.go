// Package tui is the interactive terminal front end: a braille canvas
// of the particle field next to a live stats sidebar.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partisim/internal/config"
	"github.com/san-kum/partisim/internal/engine"
	"github.com/san-kum/partisim/internal/viz"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the live view: it owns the engine and steps it on every
// tick while rendering the current particle field.
type Model struct {
	eng   *engine.Engine
	cfg   *config.Config
	world *viz.World

	dt      float64
	speed   float64
	running bool

	energyHistory []float64
	title         string
}

func NewModel(eng *engine.Engine, cfg *config.Config) Model {
	title := cfg.Preset
	if title == "" {
		title = "simulation"
	}
	return Model{
		eng:           eng,
		cfg:           cfg,
		world:         viz.NewWorld(canvasWidth, canvasHeight, cfg.Boundary.Rect()),
		dt:            cfg.Dt,
		speed:         1,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		title:         title,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			if m.speed < 8 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 0.125 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.eng.Step(m.dt * m.speed)

	m.energyHistory = append(m.energyHistory, m.eng.TotalEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	eng, err := engine.FromConfig(m.cfg)
	if err != nil {
		return
	}
	m.eng = eng
	m.energyHistory = m.energyHistory[:0]
	m.speed = 1
}

func (m Model) View() string {
	m.world.Plot(m.eng.System())
	canvasView := canvasStyle.Render(m.world.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	com := m.eng.CenterOfMass()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.eng.Time())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.eng.ParticleCount())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", m.eng.TotalEnergy())) + "\n")
	s.WriteString(labelStyle.Render("Center") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", com.X, com.Y)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%gx", m.speed)) + "\n")
	s.WriteString(labelStyle.Render("Integrator") + valueStyle.Render(m.cfg.Integrator) + "\n")
	s.WriteString(labelStyle.Render("Boundary") + valueStyle.Render(m.cfg.Boundary.Policy) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(eng *engine.Engine, cfg *config.Config) error {
	p := tea.NewProgram(NewModel(eng, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
