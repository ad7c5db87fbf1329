package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriticalPaths_TiesGoToFirstStair(t *testing.T) {
	// GIVEN five identical stairs with landings, floors 4..-1
	cfg := multiStairConfig()

	// WHEN critical paths are computed
	paths, err := CriticalPaths(&cfg)

	// THEN every floor reports stair A, highest floor first
	require.NoError(t, err)
	require.Len(t, paths, 6)
	for i, p := range paths {
		assert.Equal(t, 4-i, p.Floor)
		assert.Equal(t, "A", p.Stair)
	}
	top := paths[0]
	assert.InDelta(t, 15/1.6, top.TravelSeconds, 1e-9)
	assert.Equal(t, 5*(SecondsPerFloor+2*SecondsPerLanding), top.DescentSeconds)
	assert.InDelta(t, top.TravelSeconds+top.DescentSeconds, top.TotalSeconds, 1e-9)

	bottom := paths[5]
	assert.Equal(t, -1, bottom.Floor)
	assert.Equal(t, 0.0, bottom.DescentSeconds)
}

func TestCriticalPaths_SlowestStairWins(t *testing.T) {
	// GIVEN stair C with a long walk on floor 2 only
	cfg := multiStairConfig()
	cfg.Stairs[2].TravelDistanceByFloor = map[int]float64{2: 60}

	paths, err := CriticalPaths(&cfg)

	require.NoError(t, err)
	for _, p := range paths {
		if p.Floor == 2 {
			assert.Equal(t, "C", p.Stair)
			assert.InDelta(t, 60/1.6, p.TravelSeconds, 1e-9)
		} else {
			assert.Equal(t, "A", p.Stair)
		}
	}
}

func TestCriticalPaths_NoStairs_Empty(t *testing.T) {
	cfg := singleStairConfig()
	cfg.Stairs = nil

	paths, err := CriticalPaths(&cfg)

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCriticalPaths_ZeroTravelSpeed_Error(t *testing.T) {
	cfg := singleStairConfig()
	cfg.Stairs[0].TravelSpeed = 0

	_, err := CriticalPaths(&cfg)

	assert.ErrorIs(t, err, ErrInvalidConfig)
}
