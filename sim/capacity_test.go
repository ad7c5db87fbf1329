package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/internal/testutil"
)

func TestStairFlowCapacity_FullWidthNoReductions_EqualsWidthTimesRate(t *testing.T) {
	// GIVEN a stair whose clear width equals its width, without landings or vestibule
	s := testStair("A")
	s.ClearWidth = s.Width

	// WHEN the flow capacity is computed
	got, err := StairFlowCapacity(s, 33, 0.85)

	// THEN it is exactly width × stairFlowRate
	require.NoError(t, err)
	assert.Equal(t, s.Width*33, got)
}

func TestStairFlowCapacity_ClearWidthAboveWidth_RatioCapped(t *testing.T) {
	s := testStair("A")
	s.ClearWidth = 2.0

	got, err := StairFlowCapacity(s, 33, 0.85)

	require.NoError(t, err)
	assert.InDelta(t, 1.2*33, got, 1e-9, "a clear width wider than the stair must not add capacity")
}

func TestStairFlowCapacity_LandingFactor_Clamped(t *testing.T) {
	tests := []struct {
		name   string
		size   float64
		factor float64
	}{
		{"small landing clamps to 0.6", 0.5, 0.6},
		{"default landing", 1.5, 0.75},
		{"reference landing", 2.0, 1.0},
		{"large landing clamps to 1", 3.0, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStair("A")
			s.ClearWidth = s.Width
			s.HasLandings = true
			s.LandingSize = tt.size

			got, err := StairFlowCapacity(s, 33, 0.85)

			require.NoError(t, err)
			assert.InDelta(t, 1.2*33*tt.factor, got, 1e-9)
		})
	}
}

func TestStairFlowCapacity_AllReductions_Multiply(t *testing.T) {
	// GIVEN the default stair with landings, a vestibule and a capacity reduction
	s := testStair("A")
	s.HasLandings = true
	s.HasVestibule = true
	s.CapacityReduction = 0.5

	got, err := StairFlowCapacity(s, 33, 0.85)

	// THEN width × rate × (1.0/1.2) × 0.75 × 0.85 × 0.5
	require.NoError(t, err)
	testutil.AssertFloat64Equal(t, "stair capacity", 33*0.75*0.85*0.5, got, 1e-12)
}

func TestStairFlowCapacity_ZeroWidth_ConfigError(t *testing.T) {
	s := testStair("A")
	s.Width = 0

	_, err := StairFlowCapacity(s, 33, 0.85)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "stairs[A].width", cfgErr.Field)
}

func TestFloorExitCapacity_VestibuleDoorIsBottleneck(t *testing.T) {
	s := testStair("A")

	assert.InDelta(t, 1.2*45, FloorExitCapacity(s, 3, 45, 0.85), 1e-9, "without vestibule the stair width binds")

	s.HasVestibule = true
	assert.InDelta(t, 0.85*45*0.85, FloorExitCapacity(s, 3, 45, 0.85), 1e-9, "with vestibule its door binds")
}

func TestExitDoorCapacity_WidthTimesFloorExitRate(t *testing.T) {
	s := testStair("A")
	assert.InDelta(t, 38.25, ExitDoorCapacity(s, 45), 1e-9)
}

func TestPerStep_ConvertsPerMinuteRate(t *testing.T) {
	assert.InDelta(t, 19.125, perStep(38.25, 30), 1e-9)
	assert.Equal(t, 0.0, perStep(0, 30))
}
