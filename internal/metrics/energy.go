package metrics

import (
	"math"

	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/point"
)

// KineticEnergy averages ½·m·|v|² over the observed samples.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s dynamo.Sample) {
	e.total += s.KineticEnergy()
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative deviation of total energy from
// its value at the first sample.
type EnergyDrift struct {
	name          string
	force         dynamo.Force
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(force dynamo.Force) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		force: force,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.Sample) {
	p, err := point.NewAt(s.Position, s.Mass)
	if err != nil {
		return
	}
	p.SetVelocity(s.Velocity)
	energy := dynamo.Energy(e.force, p)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
