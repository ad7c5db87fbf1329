package sim

import (
	"math"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/trace"
)

// EmptyTolerance is the number of people below which the building counts as empty.
// Flows are real-valued, so cumulative sums carry rounding residue.
const EmptyTolerance = 1e-6

// stairState is the mutable per-run state of one stair. Capacities are derived
// once when the run starts; they do not change with simulation time.
type stairState struct {
	stair        Stair
	flowCapacity float64 // people/min along the stair
	exitCapacity float64 // people/min through the exit door
	floorExit    float64 // people/min from a floor into the stair

	onStair   float64
	evacuated float64
	byFloor   map[int]float64
}

// congestion returns the fraction of attempted boarders the stair accepts,
// clamped to [0, 1].
func (ss *stairState) congestion() float64 {
	if ss.stair.ReceivingCapacity <= 0 {
		return 0
	}
	return math.Max(0, 1-ss.onStair/ss.stair.ReceivingCapacity)
}

// discharge lets people leave through the exit door and returns how many left.
func (ss *stairState) discharge(dt float64) float64 {
	out := math.Min(ss.onStair, perStep(ss.exitCapacity, dt))
	if out <= 0 {
		return 0
	}
	ss.evacuated += out
	ss.onStair -= out
	return out
}

// board moves up to n people from the floor onto the stair and returns how many moved.
func (ss *stairState) board(fs *floorState, n float64) float64 {
	n = math.Min(n, fs.remaining)
	if n <= 0 {
		return 0
	}
	fs.remaining = math.Max(0, fs.remaining-n)
	ss.onStair += n
	ss.byFloor[fs.floor] += n
	return n
}

type floorState struct {
	floor     int
	people    int
	remaining float64
	startTime float64 // s
}

// started reports whether evacuation of the floor has begun at elapsed seconds.
func (fs *floorState) started(elapsed float64) bool {
	return elapsed >= fs.startTime
}

// State is the simulation state of a single run. It is created by the
// simulator, mutated once per step and never shared between runs.
type State struct {
	stairs []*stairState
	floors []*floorState // highest to lowest
	total  float64
}

func newState(cfg *BuildingConfig) (*State, error) {
	st := &State{
		stairs: make([]*stairState, 0, len(cfg.Stairs)),
		total:  float64(cfg.TotalPeople()),
	}
	floors := cfg.Floors()
	delay := cfg.StartDelay()
	for ordinal, f := range floors {
		people := cfg.PeopleByFloor[f]
		st.floors = append(st.floors, &floorState{
			floor:     f,
			people:    people,
			remaining: float64(people),
			startTime: float64(ordinal) * delay,
		})
	}
	for _, s := range cfg.Stairs {
		flow, err := StairFlowCapacity(s, cfg.StairFlowRate, cfg.VestibuleFlowReduction)
		if err != nil {
			return nil, err
		}
		ss := &stairState{
			stair:        s,
			flowCapacity: flow,
			exitCapacity: ExitDoorCapacity(s, cfg.FloorExitFlowRate),
			floorExit:    FloorExitCapacity(s, cfg.HighestFloor(), cfg.FloorExitFlowRate, cfg.VestibuleFlowReduction), // same on every floor
			byFloor:      make(map[int]float64, len(floors)),
		}
		for _, f := range floors {
			ss.byFloor[f] = 0
		}
		st.stairs = append(st.stairs, ss)
	}
	return st, nil
}

// evacuated sums the people that have left the building through any exit door.
func (st *State) evacuated() float64 {
	total := 0.0
	for _, ss := range st.stairs {
		total += ss.evacuated
	}
	return total
}

func (st *State) remainingInBuilding() float64 {
	return math.Max(0, st.total-st.evacuated())
}

func (st *State) snapshot(step int, elapsed float64) trace.Snapshot {
	snap := trace.Snapshot{
		Step:           step,
		ElapsedSeconds: elapsed,
		Stairs:         make([]trace.StairSample, len(st.stairs)),
		Floors:         make([]trace.FloorSample, len(st.floors)),
	}
	for i, ss := range st.stairs {
		byFloor := make(map[int]float64, len(ss.byFloor))
		for f, n := range ss.byFloor {
			byFloor[f] = n
		}
		snap.Stairs[i] = trace.StairSample{
			Name:      ss.stair.Name,
			OnStair:   ss.onStair,
			Evacuated: ss.evacuated,
			ByFloor:   byFloor,
		}
	}
	for i, fs := range st.floors {
		snap.Floors[i] = trace.FloorSample{Floor: fs.floor, Remaining: fs.remaining}
	}
	snap.TotalEvacuated = st.evacuated()
	snap.RemainingInBuilding = st.remainingInBuilding()
	return snap
}
