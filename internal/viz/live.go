// Package viz renders the live braking run in the terminal: a track
// strip with the vehicle, brake line and obstacle, a stats panel, a
// velocity graph, and the run history.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/brakelab/brakelab/internal/engine"
	"github.com/brakelab/brakelab/internal/history"
	"github.com/brakelab/brakelab/internal/scenario"
)

const (
	trackWidth      = 96
	historyCapacity = 600
	historyRows     = 6
)

type TickMsg time.Time

// Model holds the engine, the selected configuration and the
// visualization buffers.
type Model struct {
	eng *engine.Engine
	log *history.Log
	cfg scenario.RunConfiguration

	fps          int
	stepsPerTick int
	velHistory   []float64
	showHelp     bool
}

func NewModel(cfg scenario.RunConfiguration, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	steps := int(math.Round(1.0 / (scenario.Dt * float64(fps))))
	if steps < 1 {
		steps = 1
	}
	log := history.NewLog()
	return Model{
		eng:          engine.New(cfg, log),
		log:          log,
		cfg:          cfg,
		fps:          fps,
		stepsPerTick: steps,
		velHistory:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles input and steps the simulation. Configuration keys are
// ignored while a run is active; start is ignored while active and
// begins a fresh run once the previous one ends; reset is always
// available.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			if m.eng.Session().Phase.Terminal() {
				m.velHistory = m.velHistory[:0]
			}
			m.eng.Start()
		case "r":
			m.eng.Reset(m.cfg)
			m.velHistory = m.velHistory[:0]
		case "?":
			m.showHelp = !m.showHelp
		case "1":
			m.selectSpeed(scenario.SpeedLow)
		case "2":
			m.selectSpeed(scenario.SpeedMedium)
		case "3":
			m.selectSpeed(scenario.SpeedHigh)
		case "d":
			m.selectSurface(scenario.SurfaceDry)
		case "w":
			m.selectSurface(scenario.SurfaceWet)
		case "i":
			m.selectSurface(scenario.SurfaceIcy)
		case "+", "=":
			m.selectDistance(m.cfg.ObstacleDistance + 50)
		case "-", "_":
			m.selectDistance(m.cfg.ObstacleDistance - 50)
		}
	case TickMsg:
		if m.eng.Active() {
			for i := 0; i < m.stepsPerTick; i++ {
				m.eng.Step()
				if m.eng.Session().Phase.Terminal() {
					break
				}
			}
			if v := m.eng.World().Body(scenario.LabelVehicle); v != nil {
				if len(m.velHistory) >= historyCapacity {
					m.velHistory = m.velHistory[1:]
				}
				m.velHistory = append(m.velHistory, v.Vel.X)
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) selectSpeed(s scenario.SpeedClass) {
	cfg := m.cfg
	cfg.SpeedClass = s
	m.applyConfig(cfg)
}

func (m *Model) selectSurface(s scenario.Surface) {
	cfg := m.cfg
	cfg.Surface = s
	m.applyConfig(cfg)
}

func (m *Model) selectDistance(d float64) {
	if d < 50 {
		d = 50
	}
	if d > 800 {
		d = 800
	}
	cfg := m.cfg
	cfg.ObstacleDistance = d
	m.applyConfig(cfg)
}

func (m *Model) applyConfig(cfg scenario.RunConfiguration) {
	if m.eng.SetConfiguration(cfg) {
		m.cfg = cfg
		m.velHistory = m.velHistory[:0]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("brakelab :: braking distance demo"))
	b.WriteString("\n")
	b.WriteString(trackStyle.Render(m.renderTrack()))
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	if len(m.velHistory) > 1 {
		graph := asciigraph.Plot(m.velHistory,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("velocity (units/s)"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if out := m.eng.Session().Outcome; out != nil {
		title, message := history.Banner(*out)
		style := safeStyle
		if out.Crashed {
			style = crashStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s - %s", title, message)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHistory())

	if m.showHelp {
		b.WriteString(helpStyle.Render(
			"space start · r reset · 1/2/3 speed · d/w/i surface · +/- obstacle distance · q quit"))
	} else {
		b.WriteString(helpStyle.Render("? help · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderTrack draws a fixed strip from just before the start position to
// a little past the obstacle.
func (m Model) renderTrack() string {
	left := scenario.StartX - 10
	right := m.cfg.ObstacleX() + 40
	span := right - left

	cells := make([]rune, trackWidth)
	for i := range cells {
		cells[i] = '·'
	}
	place := func(x float64, r rune) {
		idx := int(float64(trackWidth-1) * (x - left) / span)
		if idx >= 0 && idx < trackWidth {
			cells[idx] = r
		}
	}

	place(scenario.BrakeLineX, '|')
	place(m.cfg.ObstacleX(), '▓')
	if v := m.eng.World().Body(scenario.LabelVehicle); v != nil {
		place(v.Pos.X, '█')
	}

	return string(cells)
}

func (m Model) renderStats() string {
	s := m.eng.Session()
	var vel, pos float64
	if v := m.eng.World().Body(scenario.LabelVehicle); v != nil {
		vel, pos = v.Vel.X, v.Pos.X
	}

	braked := math.Max(0, pos-scenario.BrakeLineX) * scenario.MetersPerUnit

	rows := []string{
		labelStyle.Render("phase") + activeStyle.Render(s.Phase.String()),
		labelStyle.Render("speed class") + valueStyle.Render(string(m.cfg.SpeedClass)+" ("+m.cfg.SpeedClass.Label()+")"),
		labelStyle.Render("surface") + valueStyle.Render(m.cfg.Surface.Label()),
		labelStyle.Render("obstacle") + valueStyle.Render(fmt.Sprintf("%.0f units past line", m.cfg.ObstacleDistance)),
		labelStyle.Render("velocity") + valueStyle.Render(fmt.Sprintf("%.2f units/s", vel)),
		labelStyle.Render("braked") + valueStyle.Render(fmt.Sprintf("%.1f m", braked)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHistory() string {
	entries := m.log.Entries()
	if len(entries) == 0 {
		return ""
	}
	if len(entries) > historyRows {
		entries = entries[:historyRows]
	}

	var b strings.Builder
	b.WriteString(historyHeaderStyle.Render(fmt.Sprintf("%-10s %-8s %-10s %s", "speed", "surface", "distance", "outcome")))
	b.WriteString("\n")
	for _, e := range entries {
		line := fmt.Sprintf("%-10s %-8s %-10s %s", e.Speed, e.Surface, e.Distance, e.Outcome)
		if e.Crashed {
			b.WriteString(crashStyle.Render(line))
		} else {
			b.WriteString(valueStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
