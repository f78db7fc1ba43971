package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/point"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	tickRate        = time.Second / 60
)

type TickMsg time.Time

// projection planes as (horizontal, vertical) component indices
var planes = [][2]int{{0, 2}, {0, 1}, {1, 2}}

// Model steps a single point under a force and draws its trail.
type Model struct {
	title         string
	force         dynamo.Force
	initial       point.MaterialPoint
	p             point.MaterialPoint
	t, dt         float64
	running       bool
	failed        bool
	canvas        *Canvas
	trail         *ring[mgl64.Vec3]
	energyHistory *ring[float64]
	plane         int
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

func NewModel(title string, p point.MaterialPoint, force dynamo.Force, dt float64) Model {
	params := make(map[string]float64)
	initialParams := make(map[string]float64)
	if c, ok := force.(dynamo.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
			initialParams[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := Model{
		title:         title,
		force:         force,
		initial:       p,
		p:             p,
		dt:            dt,
		running:       true,
		canvas:        NewCanvas(width, height),
		trail:         newRing[mgl64.Vec3](historyCapacity),
		energyHistory: newRing[float64](historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
	m.record()
	return m
}

func (m Model) Point() point.MaterialPoint { return m.p }
func (m Model) Time() float64              { return m.t }
func (m Model) Running() bool              { return m.running }
func (m Model) Failed() bool               { return m.failed }

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.failed {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "v":
			m.plane = (m.plane + 1) % len(planes)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances the point by one dt. A non-finite result stops the run and
// keeps the last valid state.
func (m *Model) step() {
	f := m.force.Force(m.p, m.t)
	next := m.p
	next.Evolute(f, m.dt)
	if !next.IsFinite() {
		m.failed = true
		m.running = false
		return
	}
	m.p = next
	m.t += m.dt
	m.record()
}

func (m *Model) record() {
	m.trail.push(m.p.Position())
	m.energyHistory.push(dynamo.Energy(m.force, m.p))
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key]
	if val == 0 {
		val = 1e-3
	}
	newVal := val * factor
	c, ok := m.force.(dynamo.Configurable)
	if !ok {
		return
	}
	if err := c.SetParam(key, newVal); err != nil {
		return
	}
	m.params[key] = newVal
}

// reset restores the initial point and parameters.
func (m *Model) reset() {
	m.p = m.initial
	m.t = 0
	m.failed = false
	m.running = true
	m.trail.reset()
	m.energyHistory.reset()
	if c, ok := m.force.(dynamo.Configurable); ok {
		for k, v := range m.initialParams {
			if err := c.SetParam(k, v); err == nil {
				m.params[k] = v
			}
		}
	}
	m.record()
}

func (m Model) draw() {
	m.canvas.Clear()
	axes := planes[m.plane]

	n := m.trail.len()
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		pos := m.trail.at(i)
		xs[i] = pos[axes[0]]
		ys[i] = pos[axes[1]]
	}
	b := Fit(xs, ys)

	for i := 1; i < n; i++ {
		x0, y0 := m.canvas.Project(b, xs[i-1], ys[i-1])
		x1, y1 := m.canvas.Project(b, xs[i], ys[i])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	if n > 0 {
		cx, cy := m.canvas.Project(b, xs[n-1], ys[n-1])
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				m.canvas.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (m Model) View() string {
	m.draw()
	axes := planes[m.plane]
	plane := componentNames[axes[0]] + componentNames[axes[1]]

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n")
	s.WriteString(m.row("time", fmt.Sprintf("%.3f s", m.t)))
	s.WriteString(m.row("mass", fmt.Sprintf("%g", m.p.Mass())))
	s.WriteString(m.row("position", FormatVec(m.p.Position())))
	s.WriteString(m.row("velocity", FormatVec(m.p.Velocity())))
	s.WriteString(m.row("speed", fmt.Sprintf("%.4f", m.p.Velocity().Len())))
	s.WriteString(m.row("energy", fmt.Sprintf("%.4f", dynamo.Energy(m.force, m.p))))
	s.WriteString(m.row("hash", fmt.Sprintf("%016x", m.p.Hash())))
	s.WriteString(m.row("plane", plane))

	if len(m.paramKeys) > 0 {
		s.WriteString("\n")
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-12s %.4g", k, m.params[k])
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString(valueStyle.Render("  "+line) + "\n")
			}
		}
	}

	s.WriteString("\n" + SparklineChart(m.energyHistory.values(), 36) + "\n")
	s.WriteString(helpStyle.Render("space pause · r reset · tab/↑/↓ params · v plane · q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()),
	)
}

func (m Model) status() string {
	switch {
	case m.failed:
		return StatusFailed.Render("INVALID STATE")
	case m.running:
		return StatusRunning.Render("RUNNING")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

func (m Model) row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func samplePoint(s dynamo.Sample) (point.MaterialPoint, error) {
	p, err := point.NewAt(s.Position, s.Mass)
	if err != nil {
		return p, err
	}
	p.SetVelocity(s.Velocity)
	return p, nil
}
