package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrInvalidState}

	expected := "step 150 (t=1.5000): dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimulationError should unwrap to ErrInvalidState")
	}

	var simErr *SimulationError
	if !errors.As(error(err), &simErr) || simErr.Step != 150 {
		t.Error("errors.As failed")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.Duration <= 0 {
		t.Error("DefaultConfig has invalid Duration")
	}
	if !cfg.ValidateState {
		t.Error("DefaultConfig should validate state")
	}
}

func TestConfigSteps(t *testing.T) {
	tests := []struct {
		dt, duration float64
		want         int
	}{
		{0.1, 1.0, 10},
		{0.01, 10.0, 1000},
		{0.3, 1.0, 3},
		{1.0, 0.5, 0},
		{1e-300, 1.0, MaxSteps},
		{1e-9, 1e3, MaxSteps},
		{math.NaN(), 1.0, 0},
		{0, 1.0, MaxSteps},
	}

	for _, tt := range tests {
		cfg := Config{Dt: tt.dt, Duration: tt.duration}
		if got := cfg.Steps(); got != tt.want {
			t.Errorf("Steps(dt=%v, duration=%v) = %d, want %d", tt.dt, tt.duration, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"at step cap", Config{Dt: 1, Duration: MaxSteps}, false},
		{"NaN dt", Config{Dt: math.NaN(), Duration: 1}, true},
		{"infinite dt", Config{Dt: math.Inf(1), Duration: 1}, true},
		{"NaN duration", Config{Dt: 0.1, Duration: math.NaN()}, true},
		{"ratio overflows", Config{Dt: 1e-300, Duration: 1}, true},
		{"ratio above cap", Config{Dt: 1e-9, Duration: 1e3}, true},
		{"ratio infinite", Config{Dt: 5e-324, Duration: 1e300}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
