// Package forces provides force laws acting on a single material point.
//
// Every type implements [dynamo.Force]. [Gravity] and [Spring] are
// conservative and also implement [dynamo.Potential]; the tunable ones
// implement [dynamo.Configurable].
package forces

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/point"
)

const (
	DefaultGravity   = 9.81
	DefaultStiffness = 10.0
	DefaultDrag      = 0.1
)

// None applies no force.
type None struct{}

func NewNone() *None { return &None{} }

func (n *None) Force(p point.MaterialPoint, t float64) mgl64.Vec3 { return mgl64.Vec3{} }

// Constant applies the same force regardless of state.
type Constant struct {
	F mgl64.Vec3
}

func NewConstant(f mgl64.Vec3) *Constant { return &Constant{F: f} }

func (c *Constant) Force(p point.MaterialPoint, t float64) mgl64.Vec3 { return c.F }

func (c *Constant) GetParams() map[string]float64 {
	return map[string]float64{"fx": c.F[0], "fy": c.F[1], "fz": c.F[2]}
}

func (c *Constant) SetParam(name string, value float64) error {
	switch name {
	case "fx":
		c.F[0] = value
	case "fy":
		c.F[1] = value
	case "fz":
		c.F[2] = value
	default:
		return unknownParam(name)
	}
	return nil
}

// Gravity is a uniform field of strength G pulling along -z.
type Gravity struct {
	G float64
}

func NewGravity(g float64) *Gravity { return &Gravity{G: g} }

func (g *Gravity) Force(p point.MaterialPoint, t float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, -p.Mass() * g.G}
}

// Potential returns m·g·z.
func (g *Gravity) Potential(p point.MaterialPoint) float64 {
	return p.Mass() * g.G * p.Position()[2]
}

func (g *Gravity) GetParams() map[string]float64 {
	return map[string]float64{"g": g.G}
}

func (g *Gravity) SetParam(name string, value float64) error {
	if name != "g" {
		return unknownParam(name)
	}
	g.G = value
	return nil
}

// Spring pulls the point towards Anchor with stiffness K (Hooke's law).
type Spring struct {
	K      float64
	Anchor mgl64.Vec3
}

func NewSpring(k float64, anchor mgl64.Vec3) *Spring {
	return &Spring{K: k, Anchor: anchor}
}

func (s *Spring) Force(p point.MaterialPoint, t float64) mgl64.Vec3 {
	return p.Position().Sub(s.Anchor).Mul(-s.K)
}

// Potential returns ½·k·|x - anchor|².
func (s *Spring) Potential(p point.MaterialPoint) float64 {
	d := p.Position().Sub(s.Anchor)
	return 0.5 * s.K * d.Dot(d)
}

func (s *Spring) GetParams() map[string]float64 {
	return map[string]float64{
		"k":  s.K,
		"ax": s.Anchor[0],
		"ay": s.Anchor[1],
		"az": s.Anchor[2],
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "k":
		if value < 0 {
			return fmt.Errorf("%w: stiffness must be non-negative, got %f", dynamo.ErrParameterBounds, value)
		}
		s.K = value
	case "ax":
		s.Anchor[0] = value
	case "ay":
		s.Anchor[1] = value
	case "az":
		s.Anchor[2] = value
	default:
		return unknownParam(name)
	}
	return nil
}

// Drag is linear velocity damping, F = -b·v.
type Drag struct {
	B float64
}

func NewDrag(b float64) *Drag { return &Drag{B: b} }

func (d *Drag) Force(p point.MaterialPoint, t float64) mgl64.Vec3 {
	return p.Velocity().Mul(-d.B)
}

func (d *Drag) GetParams() map[string]float64 {
	return map[string]float64{"b": d.B}
}

func (d *Drag) SetParam(name string, value float64) error {
	if name != "b" {
		return unknownParam(name)
	}
	if value < 0 {
		return fmt.Errorf("%w: drag must be non-negative, got %f", dynamo.ErrParameterBounds, value)
	}
	d.B = value
	return nil
}

func unknownParam(name string) error {
	return fmt.Errorf("%w: unknown param: %s", dynamo.ErrParameterBounds, name)
}
