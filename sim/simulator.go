// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/trace"
)

// EvacuatedFraction is the share of occupants after which the building is
// treated as evacuated when reading off the evacuation time.
const EvacuatedFraction = 0.99

// Observer receives every snapshot as soon as its step completes.
// The snapshot shares its slices and maps with the recorded trace and must not be modified.
type Observer func(trace.Snapshot)

// Simulator is the core object that holds the configuration, the run state and
// the recorded snapshots of one evacuation run. A Simulator runs once.
type Simulator struct {
	Config BuildingConfig
	// Trace holds one snapshot per executed step.
	Trace *trace.SimulationTrace

	state    *State
	allocate allocator
	observer Observer
	res      *Result
}

// NewSimulator validates cfg and prepares a fresh run state.
// It returns a *ConfigError when any parameter is out of range.
func NewSimulator(cfg BuildingConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.FloorStartDelaySeconds == nil {
		logrus.Infof("floor start delay not set; using stair %s floor_evacuation_delay=%.0fs",
			cfg.Stairs[0].Name, cfg.StartDelay())
	}
	state, err := newState(&cfg)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		Config:   cfg,
		Trace:    trace.NewSimulationTrace(cfg.StepBudget() + 1),
		state:    state,
		allocate: allocatorFor(cfg.AllocationOrDefault()),
	}, nil
}

// SetObserver registers a callback that is invoked after every step.
func (sim *Simulator) SetObserver(o Observer) {
	sim.observer = o
}

// Run advances the simulation one fixed step at a time until the building is
// empty or the step budget is spent, then aggregates the result.
func (sim *Simulator) Run() *Result {
	if sim.res != nil {
		return sim.res
	}

	cfg := &sim.Config
	dt := float64(cfg.TimeStepSeconds)
	budget := cfg.StepBudget()
	logrus.Infof("Starting evacuation simulation: %d stairs, %d floors, %d people, step=%ds, budget=%d steps, allocation=%s",
		len(cfg.Stairs), len(sim.state.floors), cfg.TotalPeople(), cfg.TimeStepSeconds, budget, cfg.AllocationOrDefault())

	for step := 0; step <= budget; step++ {
		elapsed := float64(step) * dt
		sim.allocate(sim.state, elapsed, dt)

		snap := sim.state.snapshot(step, elapsed)
		sim.Trace.Record(snap)
		if sim.observer != nil {
			sim.observer(snap)
		}
		logrus.Debugf("[step %05d] t=%7.1fs evacuated=%.2f on_stairs=%.2f remaining=%.2f",
			step, elapsed, snap.TotalEvacuated, snap.OnStairs(), snap.RemainingInBuilding)

		if snap.RemainingInBuilding <= EmptyTolerance {
			break
		}
	}

	res := sim.result()
	sim.res = res
	if !res.Converged {
		logrus.Warnf("simulation did not converge within %d steps; %.1f people still inside at %.1f min",
			budget, res.lastRemaining(), res.EvacuationMinutes)
	}
	logrus.Infof("[step %05d] Simulation ended: evacuation time %.2f min (limit %d min)",
		sim.Trace.Len()-1, res.EvacuationMinutes, cfg.MaxEvacuationMinutes)
	return res
}

func (sim *Simulator) result() *Result {
	// CriticalPaths only fails on configuration errors, which NewSimulator rejected.
	paths, _ := CriticalPaths(&sim.Config)
	return aggregate(&sim.Config, sim.state, sim.Trace, paths)
}

// Simulate validates cfg, runs one simulation and returns its result.
func Simulate(cfg BuildingConfig) (*Result, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}
