package sim

import (
	"math"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/trace"
)

// MaxSeriesPoints bounds the length of Result.TimeSeries.
const MaxSeriesPoints = 40

// SeriesPoint is one sample of the downsampled evacuation curve.
type SeriesPoint struct {
	Step           int       `json:"step"`
	TimeMinutes    float64   `json:"time_minutes"`
	StairEvacuated []float64 `json:"stair_evacuated"` // in stair order
	TotalEvacuated float64   `json:"total_evacuated"`
}

// FloorSummary describes one floor over the whole run.
type FloorSummary struct {
	Floor          int     `json:"floor"`
	People         int     `json:"people"`
	StartMinutes   float64 `json:"evacuation_start_minutes"`
	RemainingAtEnd float64 `json:"remaining_at_end"`
}

// Result is the immutable outcome of one run.
type Result struct {
	TotalPeople               int     `json:"total_people"`
	TotalHeightMeters         float64 `json:"total_height_meters"`
	StairCapacityPerMinute    int     `json:"stair_capacity_per_minute"`
	ExitDoorCapacityPerMinute int     `json:"exit_door_capacity_per_minute"`
	EvacuationMinutes         float64 `json:"evacuation_time_minutes"`
	MaxEvacuationMinutes      int     `json:"max_evacuation_minutes"`
	// Converged is false when the step budget ran out before the building was
	// (99%) empty; EvacuationMinutes is then the time of the last step.
	Converged bool `json:"converged"`
	// Compliant reports a converged run that finished within MaxEvacuationMinutes.
	Compliant bool `json:"compliant"`

	StairNames    []string         `json:"stair_names"`
	TimeSeries    []SeriesPoint    `json:"time_series"`
	Floors        []FloorSummary   `json:"floors"`
	CriticalPaths []CriticalPath   `json:"critical_paths"`
	Summary       *trace.Summary   `json:"summary"`
	Snapshots     []trace.Snapshot `json:"snapshots,omitempty"`
}

func (r *Result) lastRemaining() float64 {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return r.Snapshots[len(r.Snapshots)-1].RemainingInBuilding
}

// aggregate packages the run state, its trace and the critical paths.
// Capacities are taken from the run state rather than derived again.
func aggregate(cfg *BuildingConfig, st *State, tr *trace.SimulationTrace, paths []CriticalPath) *Result {
	res := &Result{
		TotalPeople:          cfg.TotalPeople(),
		TotalHeightMeters:    cfg.HeightMeters(),
		MaxEvacuationMinutes: cfg.MaxEvacuationMinutes,
		StairNames:           make([]string, len(st.stairs)),
		CriticalPaths:        paths,
		Summary:              trace.Summarize(tr),
		Snapshots:            tr.Snapshots,
	}

	stairCapacity, exitCapacity := 0.0, 0.0
	for i, ss := range st.stairs {
		res.StairNames[i] = ss.stair.Name
		stairCapacity += ss.flowCapacity
		exitCapacity += ss.exitCapacity
	}
	res.StairCapacityPerMinute = int(math.Round(stairCapacity))
	res.ExitDoorCapacityPerMinute = int(math.Round(exitCapacity))

	threshold := float64(res.TotalPeople) * EvacuatedFraction
	if snap, ok := tr.FirstWhere(func(s trace.Snapshot) bool {
		return s.RemainingInBuilding <= EmptyTolerance || s.TotalEvacuated >= threshold
	}); ok {
		res.EvacuationMinutes = snap.ElapsedMinutes()
		res.Converged = true
	} else if last, ok := tr.Last(); ok {
		res.EvacuationMinutes = last.ElapsedMinutes()
	}
	res.Compliant = res.Converged && res.EvacuationMinutes <= float64(cfg.MaxEvacuationMinutes)

	last, _ := tr.Last()
	remaining := make(map[int]float64, len(last.Floors))
	for _, f := range last.Floors {
		remaining[f.Floor] = f.Remaining
	}
	res.Floors = make([]FloorSummary, len(st.floors))
	for i, fs := range st.floors {
		res.Floors[i] = FloorSummary{
			Floor:          fs.floor,
			People:         fs.people,
			StartMinutes:   fs.startTime / 60,
			RemainingAtEnd: remaining[fs.floor],
		}
	}

	res.TimeSeries = Downsample(tr.Snapshots, MaxSeriesPoints)
	return res
}

// Downsample picks at most maxPoints snapshots with an even stride, starting
// with the first one, and converts them to series points.
func Downsample(snaps []trace.Snapshot, maxPoints int) []SeriesPoint {
	if len(snaps) == 0 || maxPoints <= 0 {
		return []SeriesPoint{}
	}
	stride := max(1, (len(snaps)+maxPoints-1)/maxPoints)
	points := make([]SeriesPoint, 0, (len(snaps)+stride-1)/stride)
	for i := 0; i < len(snaps); i += stride {
		s := snaps[i]
		perStair := make([]float64, len(s.Stairs))
		for j, st := range s.Stairs {
			perStair[j] = st.Evacuated
		}
		points = append(points, SeriesPoint{
			Step:           s.Step,
			TimeMinutes:    s.ElapsedMinutes(),
			StairEvacuated: perStair,
			TotalEvacuated: s.TotalEvacuated,
		})
	}
	return points
}
