// Package sim provides the building evacuation simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - config.go: BuildingConfig and Stair, the immutable input of a run, and their validation
//   - capacity.go, travel.go: pure flow-rate and walking-time models
//   - simulator.go: the fixed time-step loop
//   - allocation.go: how floors board stairs within one step
//   - result.go: aggregation of a finished run into a Result
//
// # Lifetimes
//
// A run has three distinct lifetimes: the BuildingConfig value supplied by the
// caller, the State owned by exactly one Simulator, and the Result returned by
// Run. Nothing is shared between runs, so independent runs may execute
// concurrently without locking; a single Simulator is not safe for concurrent use.
//
// # Model
//
// People are treated as a continuous, divisible flow. Every step of
// TimeStepSeconds each stair first discharges through its exit door, then
// accepts boarders from every floor whose evacuation has started, throttled by
// how full the stair already is. Critical paths are computed separately from
// walking distance and a linear descent model.
//
// Sub-packages:
//   - sim/trace/: per-step snapshots and run summaries
//   - sim/scenario/: YAML scenario files and defaults
package sim
