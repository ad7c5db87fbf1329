package trace

// StairSummary aggregates one stair over a whole run.
type StairSummary struct {
	Name        string  `json:"name"`
	PeakOnStair float64 `json:"peak_on_stair"`
	PeakStep    int     `json:"peak_step"`
	Evacuated   float64 `json:"evacuated"`
	Share       float64 `json:"share"` // fraction of all evacuated people that used this stair
}

// Summary aggregates statistics from a SimulationTrace.
type Summary struct {
	Steps          int            `json:"steps"`
	TotalEvacuated float64        `json:"total_evacuated"`
	PeakOnStairs   float64        `json:"peak_on_stairs"`
	Stairs         []StairSummary `json:"stairs"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *Summary {
	summary := &Summary{}
	if st == nil || len(st.Snapshots) == 0 {
		return summary
	}

	summary.Steps = len(st.Snapshots)
	first := st.Snapshots[0]
	summary.Stairs = make([]StairSummary, len(first.Stairs))
	for i, s := range first.Stairs {
		summary.Stairs[i].Name = s.Name
	}

	for _, snap := range st.Snapshots {
		if on := snap.OnStairs(); on > summary.PeakOnStairs {
			summary.PeakOnStairs = on
		}
		for i, s := range snap.Stairs {
			if i >= len(summary.Stairs) {
				break
			}
			if s.OnStair > summary.Stairs[i].PeakOnStair {
				summary.Stairs[i].PeakOnStair = s.OnStair
				summary.Stairs[i].PeakStep = snap.Step
			}
		}
	}

	last := st.Snapshots[len(st.Snapshots)-1]
	summary.TotalEvacuated = last.TotalEvacuated
	for i, s := range last.Stairs {
		if i >= len(summary.Stairs) {
			break
		}
		summary.Stairs[i].Evacuated = s.Evacuated
		if last.TotalEvacuated > 0 {
			summary.Stairs[i].Share = s.Evacuated / last.TotalEvacuated
		}
	}
	return summary
}
