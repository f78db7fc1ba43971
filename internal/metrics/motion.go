package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/dynamo"
)

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s dynamo.Sample) {
	m.max = math.Max(m.max, s.Speed())
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// PathLength sums the distance between consecutive sampled positions.
type PathLength struct {
	name   string
	last   mgl64.Vec3
	length float64
	seen   bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(s dynamo.Sample) {
	if p.seen {
		p.length += s.Position.Sub(p.last).Len()
	}
	p.last = s.Position
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.length = 0
	p.last = mgl64.Vec3{}
	p.seen = false
}

// Stability is the fraction of samples whose distance from the origin stays
// within threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(sample dynamo.Sample) {
	s.samples++
	if sample.Position.Len() > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
