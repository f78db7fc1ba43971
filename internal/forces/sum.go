package forces

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/point"
)

// Sum is the superposition of named forces. Parameters of its terms are
// exposed as "<name>.<param>".
type Sum struct {
	names []string
	terms []dynamo.Force
}

func NewSum() *Sum {
	return &Sum{}
}

// Add appends a term. Names must be unique and free of dots.
func (s *Sum) Add(name string, f dynamo.Force) error {
	if name == "" || strings.Contains(name, ".") {
		return fmt.Errorf("%w: invalid term name %q", dynamo.ErrParameterBounds, name)
	}
	for _, n := range s.names {
		if n == name {
			return fmt.Errorf("%w: duplicate term %q", dynamo.ErrParameterBounds, name)
		}
	}
	s.names = append(s.names, name)
	s.terms = append(s.terms, f)
	return nil
}

func (s *Sum) Len() int { return len(s.terms) }

func (s *Sum) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Sum) Force(p point.MaterialPoint, t float64) mgl64.Vec3 {
	var total mgl64.Vec3
	for _, f := range s.terms {
		total = total.Add(f.Force(p, t))
	}
	return total
}

// Potential sums the potentials of the conservative terms; others
// contribute nothing.
func (s *Sum) Potential(p point.MaterialPoint) float64 {
	u := 0.0
	for _, f := range s.terms {
		if pot, ok := f.(dynamo.Potential); ok {
			u += pot.Potential(p)
		}
	}
	return u
}

func (s *Sum) GetParams() map[string]float64 {
	params := make(map[string]float64)
	for i, f := range s.terms {
		c, ok := f.(dynamo.Configurable)
		if !ok {
			continue
		}
		for k, v := range c.GetParams() {
			params[s.names[i]+"."+k] = v
		}
	}
	return params
}

func (s *Sum) SetParam(name string, value float64) error {
	term, param, ok := strings.Cut(name, ".")
	if !ok {
		return unknownParam(name)
	}
	for i, n := range s.names {
		if n != term {
			continue
		}
		c, ok := s.terms[i].(dynamo.Configurable)
		if !ok {
			return unknownParam(name)
		}
		return c.SetParam(param, value)
	}
	return unknownParam(name)
}
