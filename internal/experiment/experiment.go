package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/matpoint/internal/config"
	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/logging"
	"github.com/san-kum/matpoint/internal/point"
)

// Experiment is a validated config bound to its initial point, force and
// simulator.
type Experiment struct {
	cfg       *config.Config
	point     point.MaterialPoint
	force     dynamo.Force
	simulator *dynamo.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(registry *Registry, log logging.Logger) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	p, err := e.cfg.NewPoint()
	if err != nil {
		return err
	}

	f, err := registry.Build(e.cfg.Forces)
	if err != nil {
		return err
	}

	e.point = p
	e.force = f
	e.simulator = dynamo.New(f)
	e.simulator.SetLogger(log)
	for _, m := range registry.DefaultMetrics(f) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.point, e.cfg.SimConfig())
}

// Stream runs without keeping a trajectory, handing each sample to fn.
func (e *Experiment) Stream(ctx context.Context, fn func(dynamo.Sample) bool) (point.MaterialPoint, error) {
	if e.simulator == nil {
		return point.MaterialPoint{}, fmt.Errorf("experiment not setup")
	}
	return e.simulator.RunWithCallback(ctx, e.point, e.cfg.SimConfig(), fn)
}

func (e *Experiment) Point() point.MaterialPoint { return e.point }
func (e *Experiment) Force() dynamo.Force       { return e.force }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}
