// Package trace records the state of an evacuation run at every time step.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// StairSample captures one stair at the end of a step.
type StairSample struct {
	Name      string          `json:"name"`
	OnStair   float64         `json:"on_stair"`
	Evacuated float64         `json:"evacuated"`        // cumulative, through the exit door
	ByFloor   map[int]float64 `json:"boarded_by_floor"` // cumulative boarders per floor
}

// FloorSample captures the occupants still waiting on one floor.
type FloorSample struct {
	Floor     int     `json:"floor"`
	Remaining float64 `json:"remaining"`
}

// Snapshot is the immutable state of the building at one step.
// Stairs follow the configured stair order; Floors run from highest to lowest.
type Snapshot struct {
	Step                int           `json:"step"`
	ElapsedSeconds      float64       `json:"elapsed_seconds"`
	Stairs              []StairSample `json:"stairs"`
	Floors              []FloorSample `json:"floors"`
	TotalEvacuated      float64       `json:"total_evacuated"`
	RemainingInBuilding float64       `json:"remaining_in_building"`
}

// ElapsedMinutes returns the snapshot time in minutes.
func (s Snapshot) ElapsedMinutes() float64 {
	return s.ElapsedSeconds / 60
}

// OnStairs sums the people currently inside every stair.
func (s Snapshot) OnStairs() float64 {
	total := 0.0
	for _, st := range s.Stairs {
		total += st.OnStair
	}
	return total
}

// OnFloors sums the people still waiting on every floor.
func (s Snapshot) OnFloors() float64 {
	total := 0.0
	for _, f := range s.Floors {
		total += f.Remaining
	}
	return total
}
