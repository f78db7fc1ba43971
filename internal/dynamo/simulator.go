package dynamo

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/san-kum/matpoint/internal/logging"
	"github.com/san-kum/matpoint/internal/point"
)

// samplePrealloc bounds the initial capacity of Result.Samples.
const samplePrealloc = 1 << 16

type Simulator struct {
	force     Force
	metrics   []Metric
	observers []Observer
	log       logging.Logger
}

func New(force Force) *Simulator {
	return &Simulator{
		force:     force,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logging.Nop,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.Nop
	}
	s.log = l
}

func (s *Simulator) Force() Force { return s.force }

// Run advances p for cfg.Duration in steps of cfg.Dt. p is taken by value;
// the final state is returned in Result.Final. On an invalid state or a
// canceled context the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, p point.MaterialPoint, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		RunID:   uuid.NewString(),
		Samples: make([]Sample, 0, min(steps+1, samplePrealloc)),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Debug("run started", "run", result.RunID, "steps", steps, "dt", cfg.Dt, "point", p.String())

	initialEnergy := Energy(s.force, p)
	t := 0.0

	var runErr error
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("%w: %w", ErrContextCanceled, err)
			break
		}

		f := s.force.Force(p, t)
		sample := newSample(i, t, p, f)
		result.Samples = append(result.Samples, sample)

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnStep(sample)
		}

		next := p
		next.Evolute(f, cfg.Dt)

		if cfg.ValidateState && !next.IsFinite() {
			runErr = &SimulationError{Step: i, Time: t, Wrapped: ErrInvalidState}
			s.log.Warn("invalid state", "run", result.RunID, "step", i, "t", t)
			break
		}

		p = next
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++
	}

	if runErr == nil {
		result.Samples = append(result.Samples, newSample(steps, t, p, s.force.Force(p, t)))
	}
	result.Final = p

	finalEnergy := Energy(s.force, p)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug("run finished", "run", result.RunID, "steps", result.StepsTaken, "final", p.String())

	return result, runErr
}

// RunWithCallback advances p like Run without recording a trajectory. The
// callback sees each sample before its step and, after a complete run, the
// final state with Step == cfg.Steps(), so it receives the same samples as
// Run's Result.Samples. Returning false stops the run. The last valid point
// is returned, also on an invalid state.
func (s *Simulator) RunWithCallback(ctx context.Context, p point.MaterialPoint, cfg Config, callback func(Sample) bool) (point.MaterialPoint, error) {
	if err := cfg.Validate(); err != nil {
		return p, err
	}

	steps := cfg.Steps()
	t := 0.0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return p, fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}

		f := s.force.Force(p, t)
		if !callback(newSample(i, t, p, f)) {
			return p, nil
		}

		next := p
		next.Evolute(f, cfg.Dt)
		if cfg.ValidateState && !next.IsFinite() {
			return p, &SimulationError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		p = next
		t = float64(i+1) * cfg.Dt
	}

	callback(newSample(steps, t, p, s.force.Force(p, t)))
	return p, nil
}
