package experiment

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/config"
	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/forces"
	"github.com/san-kum/matpoint/internal/metrics"
)

type forceFactory func(params map[string]float64) dynamo.Force

type Registry struct {
	forces map[string]forceFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		forces: make(map[string]forceFactory),
	}

	r.forces["none"] = func(params map[string]float64) dynamo.Force { return forces.NewNone() }
	r.forces["constant"] = func(params map[string]float64) dynamo.Force {
		return forces.NewConstant(mgl64.Vec3{params["fx"], params["fy"], params["fz"]})
	}
	r.forces["gravity"] = func(params map[string]float64) dynamo.Force {
		return forces.NewGravity(param(params, "g", forces.DefaultGravity))
	}
	r.forces["spring"] = func(params map[string]float64) dynamo.Force {
		anchor := mgl64.Vec3{params["ax"], params["ay"], params["az"]}
		return forces.NewSpring(param(params, "k", forces.DefaultStiffness), anchor)
	}
	r.forces["drag"] = func(params map[string]float64) dynamo.Force {
		return forces.NewDrag(param(params, "b", forces.DefaultDrag))
	}

	return r
}

func param(params map[string]float64, name string, def float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return def
}

// GetForce builds the named force. Parameters the force does not know are
// rejected so typos in configs surface early.
func (r *Registry) GetForce(name string, params map[string]float64) (dynamo.Force, error) {
	fn, ok := r.forces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownForce, name)
	}
	f := fn(params)

	known := map[string]float64{}
	if c, ok := f.(dynamo.Configurable); ok {
		known = c.GetParams()
	}
	for k := range params {
		if _, ok := known[k]; !ok {
			return nil, fmt.Errorf("%w: force %s has no param %s", dynamo.ErrParameterBounds, name, k)
		}
	}
	if c, ok := f.(dynamo.Configurable); ok {
		for k, v := range params {
			if err := c.SetParam(k, v); err != nil {
				return nil, fmt.Errorf("force %s: %w", name, err)
			}
		}
	}
	return f, nil
}

// Build turns a force list into one force: nothing yields None, a single
// entry is returned as is and several are combined into a Sum.
func (r *Registry) Build(cfgs []config.ForceConfig) (dynamo.Force, error) {
	switch len(cfgs) {
	case 0:
		return forces.NewNone(), nil
	case 1:
		return r.GetForce(cfgs[0].Type, cfgs[0].Params)
	}

	sum := forces.NewSum()
	for i, fc := range cfgs {
		f, err := r.GetForce(fc.Type, fc.Params)
		if err != nil {
			return nil, fmt.Errorf("force %d: %w", i, err)
		}
		if err := sum.Add(fc.TermName(), f); err != nil {
			return nil, fmt.Errorf("force %d: %w", i, err)
		}
	}
	return sum, nil
}

func (r *Registry) ListForces() []string {
	names := make([]string, 0, len(r.forces))
	for name := range r.forces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(force dynamo.Force) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewEnergyDrift(force),
		metrics.NewMaxSpeed(),
		metrics.NewPathLength(),
		metrics.NewStability(1e6),
	}
}
