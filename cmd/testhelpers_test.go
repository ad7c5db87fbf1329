package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/scenario"
)

// smallScenarioJSON is a one-stair, two-floor building that empties in a few steps.
const smallScenarioJSON = `{"name": "small", "stair_count": 1, "floor_count": 2, "lowest_floor": 0, "default_people_per_floor": 10}`

func simulateDefault(t *testing.T) *sim.Result {
	t.Helper()
	sc := scenario.Default()
	res, err := sim.Simulate(sc.BuildingConfig())
	require.NoError(t, err)
	return res
}
