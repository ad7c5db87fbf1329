package trace

import (
	"testing"
)

func TestSimulationTrace_Record_PreservesOrder(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(4)

	// WHEN three snapshots are recorded
	for i := 0; i < 3; i++ {
		st.Record(Snapshot{Step: i, ElapsedSeconds: float64(i) * 30})
	}

	// THEN they are kept in step order
	if st.Len() != 3 {
		t.Fatalf("expected 3 snapshots, got %d", st.Len())
	}
	for i, s := range st.Snapshots {
		if s.Step != i {
			t.Errorf("snapshot %d has step %d", i, s.Step)
		}
	}
	last, ok := st.Last()
	if !ok || last.Step != 2 {
		t.Errorf("expected last step 2, got %d (ok=%v)", last.Step, ok)
	}
}

func TestSimulationTrace_Last_EmptyTrace(t *testing.T) {
	st := NewSimulationTrace(-1)
	if _, ok := st.Last(); ok {
		t.Error("expected ok=false for an empty trace")
	}
}

func TestSimulationTrace_FirstWhere(t *testing.T) {
	st := NewSimulationTrace(0)
	for i, evacuated := range []float64{0, 10, 50, 90, 100} {
		st.Record(Snapshot{Step: i, TotalEvacuated: evacuated})
	}

	got, ok := st.FirstWhere(func(s Snapshot) bool { return s.TotalEvacuated >= 50 })
	if !ok || got.Step != 2 {
		t.Errorf("expected step 2, got %d (ok=%v)", got.Step, ok)
	}

	if _, ok := st.FirstWhere(func(s Snapshot) bool { return s.TotalEvacuated > 100 }); ok {
		t.Error("expected no match")
	}
}

func TestSnapshot_Totals(t *testing.T) {
	s := Snapshot{
		ElapsedSeconds: 90,
		Stairs:         []StairSample{{Name: "A", OnStair: 4}, {Name: "B", OnStair: 6}},
		Floors:         []FloorSample{{Floor: 1, Remaining: 3}, {Floor: 0, Remaining: 2.5}},
	}
	if s.ElapsedMinutes() != 1.5 {
		t.Errorf("expected 1.5 minutes, got %v", s.ElapsedMinutes())
	}
	if s.OnStairs() != 10 {
		t.Errorf("expected 10 on stairs, got %v", s.OnStairs())
	}
	if s.OnFloors() != 5.5 {
		t.Errorf("expected 5.5 on floors, got %v", s.OnFloors())
	}
}
