// Package dynamo drives a single [point.MaterialPoint] through time.
//
// The package defines the interfaces a trajectory run is built from:
//
//   - [Force]: the force acting on a point at a given time
//   - [Potential]: optional potential energy, used for energy drift
//   - [Metric]: accumulates a scalar over the samples of a run
//   - [Observer]: sees every sample as it is produced
//   - [Simulator]: fixed-step driver that calls [point.MaterialPoint.Evolute]
//
// # Example
//
//	p, _ := point.New(0, 0, 10, 1)
//	sim := dynamo.New(forces.NewGravity(9.81))
//	result, err := sim.Run(ctx, p, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Run one simulator per goroutine.
package dynamo
