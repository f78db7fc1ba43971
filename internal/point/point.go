package point

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidMass is returned when a point is constructed with a mass that
// is zero, negative, NaN or infinite.
var ErrInvalidMass = errors.New("point: mass must be positive and finite")

// MaterialPoint is a point mass with a 3D position and velocity.
//
// The mass is fixed at construction. Position and velocity change through
// Evolute and SetVelocity only. MaterialPoint is a plain value: copies never
// share state. It is not safe for concurrent mutation.
//
// The zero value has mass 0; calling Evolute on it yields non-finite state.
// Use New or NewAt.
type MaterialPoint struct {
	position mgl64.Vec3
	velocity mgl64.Vec3
	mass     float64
}

// New returns a point at (x, y, z) at rest.
func New(x, y, z, mass float64) (MaterialPoint, error) {
	return NewAt(mgl64.Vec3{x, y, z}, mass)
}

// NewAt returns a point at coords at rest.
func NewAt(coords mgl64.Vec3, mass float64) (MaterialPoint, error) {
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return MaterialPoint{}, fmt.Errorf("%w: got %v", ErrInvalidMass, mass)
	}
	return MaterialPoint{position: coords, mass: mass}, nil
}

func (p MaterialPoint) Position() mgl64.Vec3 { return p.position }
func (p MaterialPoint) Velocity() mgl64.Vec3 { return p.velocity }
func (p MaterialPoint) Mass() float64        { return p.mass }

func (p *MaterialPoint) SetVelocity(v mgl64.Vec3) {
	p.velocity = v
}

// Evolute advances the point by dt under a force held constant over the
// interval:
//
//	x' = x + (0.5/m)·dt²·F + v·dt
//	v' = v + (dt/m)·F
//
// Repeated calls accumulate motion. dt is used as given; the step is never
// subdivided.
func (p *MaterialPoint) Evolute(force mgl64.Vec3, dt float64) {
	p.position = p.position.Add(force.Mul(0.5 / p.mass * dt * dt)).Add(p.velocity.Mul(dt))
	p.velocity = p.velocity.Add(force.Mul(dt / p.mass))
}

// Equal reports whether mass, velocity and position are all exactly equal.
// No tolerance is applied.
func (p MaterialPoint) Equal(q MaterialPoint) bool {
	return p.mass == q.mass && p.velocity == q.velocity && p.position == q.position
}

// Hash is shorthand for Hash(p).
func (p MaterialPoint) Hash() uint64 { return Hash(p) }

// IsFinite reports whether every position and velocity component is finite.
func (p MaterialPoint) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if !finite(p.position[i]) || !finite(p.velocity[i]) {
			return false
		}
	}
	return true
}

// KineticEnergy returns ½·m·|v|².
func (p MaterialPoint) KineticEnergy() float64 {
	return 0.5 * p.mass * p.velocity.Dot(p.velocity)
}

// Momentum returns m·v.
func (p MaterialPoint) Momentum() mgl64.Vec3 {
	return p.velocity.Mul(p.mass)
}

func (p MaterialPoint) String() string {
	return fmt.Sprintf("point{m=%g pos=(%g, %g, %g) vel=(%g, %g, %g)}",
		p.mass,
		p.position[0], p.position[1], p.position[2],
		p.velocity[0], p.velocity[1], p.velocity[2],
	)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
