package trace

// SimulationTrace collects the snapshots of one run in step order.
type SimulationTrace struct {
	Snapshots []Snapshot
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// capacity is a hint for the expected number of steps.
func NewSimulationTrace(capacity int) *SimulationTrace {
	return &SimulationTrace{
		Snapshots: make([]Snapshot, 0, max(capacity, 0)),
	}
}

// Record appends a snapshot.
func (st *SimulationTrace) Record(s Snapshot) {
	st.Snapshots = append(st.Snapshots, s)
}

// Len returns the number of recorded snapshots.
func (st *SimulationTrace) Len() int {
	return len(st.Snapshots)
}

// Last returns the most recent snapshot; ok is false for an empty trace.
func (st *SimulationTrace) Last() (s Snapshot, ok bool) {
	if len(st.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return st.Snapshots[len(st.Snapshots)-1], true
}

// FirstWhere returns the first snapshot satisfying pred.
func (st *SimulationTrace) FirstWhere(pred func(Snapshot) bool) (s Snapshot, ok bool) {
	for _, snap := range st.Snapshots {
		if pred(snap) {
			return snap, true
		}
	}
	return Snapshot{}, false
}
