// Package testutil provides assertion helpers and fixture paths shared by the
// sim/ test packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertNonDecreasing fails when any value drops below its predecessor by more than tol.
func AssertNonDecreasing(t *testing.T, name string, values []float64, tol float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1]-tol {
			t.Errorf("%s: value at index %d decreased from %v to %v", name, i, values[i-1], values[i])
			return
		}
	}
}

// AssertNonIncreasing fails when any value rises above its predecessor by more than tol.
func AssertNonIncreasing(t *testing.T, name string, values []float64, tol float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1]+tol {
			t.Errorf("%s: value at index %d increased from %v to %v", name, i, values[i-1], values[i])
			return
		}
	}
}
