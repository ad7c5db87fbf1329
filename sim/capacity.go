package sim

import "math"

const (
	minLandingFactor = 0.6
	// landingReferenceSize is the landing depth (m) at which landings stop slowing the stair.
	landingReferenceSize = 2.0
)

// StairFlowCapacity returns the sustained throughput of a stair in people per minute.
//
//	width × stairFlowRate × min(1, clearWidth/width) × landing × vestibule × capacityReduction
//
// landing is clamp(landingSize/2, 0.6, 1) when the stair has landings and
// vestibule is vestibuleReduction when it has a vestibule; both are 1 otherwise.
func StairFlowCapacity(s Stair, stairFlowRate, vestibuleReduction float64) (float64, error) {
	if s.Width <= 0 {
		return 0, newConfigError("stairs["+s.Name+"].width", s.Width, "must be positive")
	}
	clearWidthFactor := math.Min(1, s.ClearWidth/s.Width)

	landingFactor := 1.0
	if s.HasLandings {
		landingFactor = math.Max(minLandingFactor, math.Min(1, s.LandingSize/landingReferenceSize))
	}

	vestibuleFactor := 1.0
	if s.HasVestibule {
		vestibuleFactor = vestibuleReduction
	}

	return s.Width * stairFlowRate * clearWidthFactor * landingFactor * vestibuleFactor * s.CapacityReduction, nil
}

// FloorExitCapacity returns how many people per minute can move from a floor
// into the stair. The narrowest doorway on that path is the bottleneck: the
// vestibule door when there is one, the stair itself otherwise.
// Every floor currently shares the same doorway geometry.
func FloorExitCapacity(s Stair, floor int, floorExitFlowRate, vestibuleReduction float64) float64 {
	if s.HasVestibule {
		return s.VestibuleDoorWidth * floorExitFlowRate * vestibuleReduction
	}
	return s.Width * floorExitFlowRate
}

// ExitDoorCapacity returns the discharge rate of the stair's exit door in people per minute.
func ExitDoorCapacity(s Stair, floorExitFlowRate float64) float64 {
	return s.ExitDoorWidth * floorExitFlowRate
}

// perStep converts a people/minute rate into people per step of dt seconds.
func perStep(ratePerMinute, dt float64) float64 {
	return ratePerMinute / 60 * dt
}
