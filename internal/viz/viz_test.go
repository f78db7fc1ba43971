package viz

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/point"
)

type gravity struct{ g float64 }

func (g *gravity) Force(p point.MaterialPoint, t float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, -p.Mass() * g.g}
}

func (g *gravity) Potential(p point.MaterialPoint) float64 {
	return p.Mass() * g.g * p.Position()[2]
}

func (g *gravity) GetParams() map[string]float64 { return map[string]float64{"g": g.g} }

func (g *gravity) SetParam(name string, value float64) error {
	g.g = value
	return nil
}

type explode struct{}

func (explode) Force(p point.MaterialPoint, t float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Inf(1), 0, 0}
}

func newModel(t *testing.T, force dynamo.Force) Model {
	t.Helper()
	p, err := point.New(0, 0, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel("test", p, force, 0.01)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(100, 100)

	want := string([]rune{brailleBlank | 0x1, brailleBlank | 0x80}) + "\n"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	c.Clear()
	if strings.Trim(c.String(), string(rune(brailleBlank))+"\n") != "" {
		t.Errorf("canvas not cleared: %q", c.String())
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for i, r := range c.Grid[0] {
		if r != brailleBlank|0x1|0x8 {
			t.Errorf("cell %d = %U", i, r)
		}
	}
}

func TestFitAndProject(t *testing.T) {
	b := Fit([]float64{0, 10}, []float64{-5, 5})
	if b.MinX >= 0 || b.MaxX <= 10 || b.MinY >= -5 || b.MaxY <= 5 {
		t.Errorf("bounds do not cover data: %+v", b)
	}

	single := Fit([]float64{3}, []float64{3})
	if single.MaxX-single.MinX <= 0 || single.MaxY-single.MinY <= 0 {
		t.Errorf("degenerate bounds: %+v", single)
	}
	if empty := Fit(nil, nil); empty != (Bounds{-1, 1, -1, 1}) {
		t.Errorf("empty bounds = %+v", empty)
	}

	c := NewCanvas(10, 5)
	full := Bounds{0, 1, 0, 1}
	if x, y := c.Project(full, 0, 0); x != 0 || y != 19 {
		t.Errorf("origin projected to (%d, %d)", x, y)
	}
	if x, y := c.Project(full, 1, 1); x != 19 || y != 0 {
		t.Errorf("corner projected to (%d, %d)", x, y)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != strings.Repeat("─", 5) {
		t.Errorf("empty sparkline = %q", got)
	}
	got := SparklineChart([]float64{0, 1, 2, 3}, 4)
	for _, r := range []string{"▁", "█"} {
		if !strings.Contains(got, r) {
			t.Errorf("sparkline %q missing %s", got, r)
		}
	}
}

func TestPlotComponents(t *testing.T) {
	p, err := point.New(0, 0, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	f := &gravity{g: 9.81}
	result, err := dynamo.New(f).Run(context.Background(), p, dynamo.Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatal(err)
	}

	out := PlotComponents(result, 40, 5)
	if !strings.Contains(out, "z (position)") || !strings.Contains(out, "v_z (velocity)") {
		t.Errorf("missing z plots:\n%s", out)
	}
	if strings.Contains(out, "x (position)") {
		t.Errorf("constant x series should be skipped:\n%s", out)
	}

	if energy := PlotEnergy(result, f, 40, 5); !strings.Contains(energy, "total energy") {
		t.Errorf("energy plot missing caption:\n%s", energy)
	}
}

func TestModelStep(t *testing.T) {
	m := newModel(t, &gravity{g: 9.81})
	start := m.Point()

	m, cmd := update(m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.Time() != 0.01 {
		t.Errorf("time = %v, want 0.01", m.Time())
	}

	want := start
	want.Evolute(mgl64.Vec3{0, 0, -9.81}, 0.01)
	if !m.Point().Equal(want) {
		t.Errorf("point = %v, want %v", m.Point(), want)
	}
}

func TestModelPauseAndReset(t *testing.T) {
	m := newModel(t, &gravity{g: 9.81})
	start := m.Point()

	m, _ = update(m, key(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	m, _ = update(m, TickMsg{})
	if m.Time() != 0 {
		t.Errorf("paused model advanced to t=%v", m.Time())
	}

	m, _ = update(m, key(" "))
	for i := 0; i < 5; i++ {
		m, _ = update(m, TickMsg{})
	}
	if m.Point().Equal(start) {
		t.Fatal("running model did not move")
	}

	m, _ = update(m, key("r"))
	if !m.Point().Equal(start) || m.Time() != 0 || !m.Running() {
		t.Errorf("reset left point=%v t=%v running=%v", m.Point(), m.Time(), m.Running())
	}
}

func TestModelAdjustParam(t *testing.T) {
	f := &gravity{g: 10}
	m := newModel(t, f)

	m, _ = update(m, key("up"))
	if f.g <= 10 {
		t.Errorf("g = %v after increase", f.g)
	}
	m, _ = update(m, key("r"))
	if f.g != 10 {
		t.Errorf("reset did not restore g, got %v", f.g)
	}
	_, _ = update(m, key("down"))
	if f.g >= 10 {
		t.Errorf("g = %v after decrease", f.g)
	}
}

func TestModelInvalidState(t *testing.T) {
	m := newModel(t, explode{})
	m, _ = update(m, TickMsg{})
	m, _ = update(m, TickMsg{})

	if !m.Failed() || m.Running() {
		t.Fatalf("failed=%v running=%v", m.Failed(), m.Running())
	}
	if !m.Point().IsFinite() {
		t.Errorf("model kept a non-finite point: %v", m.Point())
	}
	if !strings.Contains(m.View(), "INVALID STATE") {
		t.Error("view does not report the invalid state")
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(t, &gravity{g: 9.81})
	_, cmd := update(m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelView(t *testing.T) {
	m := newModel(t, &gravity{g: 9.81})
	m, _ = update(m, TickMsg{})
	m, _ = update(m, key("v"))

	view := m.View()
	for _, want := range []string{"TEST", "RUNNING", "hash", "xy"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRing(t *testing.T) {
	r := newRing[int](3)
	if r.len() != 0 || len(r.values()) != 0 {
		t.Fatalf("new ring not empty: %v", r.values())
	}

	for i := 1; i <= 5; i++ {
		r.push(i)
	}
	got := r.values()
	if len(got) != 3 || got[0] != 3 || got[1] != 4 || got[2] != 5 {
		t.Errorf("values = %v, want [3 4 5]", got)
	}
	if r.at(0) != 3 || r.at(2) != 5 {
		t.Errorf("at(0)=%d at(2)=%d", r.at(0), r.at(2))
	}
	if cap(r.buf) != 3 {
		t.Errorf("buffer grew to %d", cap(r.buf))
	}

	r.reset()
	r.push(9)
	if got := r.values(); len(got) != 1 || got[0] != 9 {
		t.Errorf("after reset values = %v", got)
	}
}

func TestModelHistoryIsBounded(t *testing.T) {
	m := newModel(t, &gravity{g: 0})
	p := m.Point()
	p.SetVelocity(mgl64.Vec3{1, 0, 0})
	m = NewModel("test", p, &gravity{g: 0}, 0.01)

	for i := 0; i < historyCapacity+50; i++ {
		m, _ = update(m, TickMsg{})
	}

	if m.trail.len() != historyCapacity || m.energyHistory.len() != historyCapacity {
		t.Fatalf("trail=%d energy=%d, want %d", m.trail.len(), m.energyHistory.len(), historyCapacity)
	}
	if cap(m.trail.buf) != historyCapacity || cap(m.energyHistory.buf) != historyCapacity {
		t.Errorf("history buffers grew: trail=%d energy=%d", cap(m.trail.buf), cap(m.energyHistory.buf))
	}
	if last := m.trail.at(historyCapacity - 1); last != m.Point().Position() {
		t.Errorf("newest trail entry %v, point at %v", last, m.Point().Position())
	}
}
