package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/point"
)

// Force returns the force on p at time t. The simulator holds it constant
// over each step.
type Force interface {
	Force(p point.MaterialPoint, t float64) mgl64.Vec3
}

// Potential is implemented by conservative forces.
type Potential interface {
	Potential(p point.MaterialPoint) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Sample is the state of a point at the start of a step together with the
// force applied over that step.
type Sample struct {
	Step     int
	Time     float64
	Mass     float64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Force    mgl64.Vec3
}

func newSample(step int, t float64, p point.MaterialPoint, f mgl64.Vec3) Sample {
	return Sample{
		Step:     step,
		Time:     t,
		Mass:     p.Mass(),
		Position: p.Position(),
		Velocity: p.Velocity(),
		Force:    f,
	}
}

func (s Sample) Speed() float64 { return s.Velocity.Len() }

func (s Sample) KineticEnergy() float64 {
	return 0.5 * s.Mass * s.Velocity.Dot(s.Velocity)
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

// MaxSteps caps the number of steps a single run may take.
const MaxSteps = 1 << 24

// Validate checks that Dt and Duration are positive and finite and that
// Duration/Dt stays within MaxSteps.
func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrParameterBounds, c.Duration)
	}
	if n := c.Duration / c.Dt; math.IsInf(n, 0) || n > MaxSteps {
		return fmt.Errorf("%w: duration/dt = %g exceeds %d steps", ErrParameterBounds, n, MaxSteps)
	}
	return nil
}

// Steps returns the number of fixed steps covering Duration, clamped to
// [0, MaxSteps].
func (c Config) Steps() int {
	n := c.Duration/c.Dt + 1e-9
	switch {
	case !(n >= 1):
		return 0
	case n > MaxSteps:
		return MaxSteps
	}
	return int(n)
}

type Result struct {
	RunID       string
	Samples     []Sample
	Final       point.MaterialPoint
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Energy returns the kinetic energy of p plus its potential under f when f
// implements Potential.
func Energy(f Force, p point.MaterialPoint) float64 {
	e := p.KineticEnergy()
	if pot, ok := f.(Potential); ok {
		e += pot.Potential(p)
	}
	return e
}
