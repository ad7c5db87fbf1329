package sim

const (
	// SecondsPerFloor is the assumed time to walk down one storey of stairs.
	SecondsPerFloor = 30.0
	// SecondsPerLanding is added for every landing passed on the way down.
	SecondsPerLanding = 2.0
)

// TravelDistanceFor returns the walking distance from floor to the stair:
// the explicit per-floor override when present, the flat default otherwise.
func (s Stair) TravelDistanceFor(floor int) float64 {
	if d, ok := s.TravelDistanceByFloor[floor]; ok {
		return d
	}
	return s.TravelDistance
}

// TravelTime returns the seconds needed to walk from floor to the stair entrance.
func TravelTime(s Stair, floor int) (float64, error) {
	if s.TravelSpeed <= 0 {
		return 0, newConfigError("stairs["+s.Name+"].travel_speed", s.TravelSpeed, "must be positive")
	}
	return s.TravelDistanceFor(floor) / s.TravelSpeed, nil
}

// DescentTime returns the seconds needed to walk down the stair from one floor
// to another. It is a linear approximation: a fixed time per storey plus a
// fixed delay per landing. Walking up or staying put costs nothing.
func DescentTime(s Stair, fromFloor, toFloor int) float64 {
	floors := fromFloor - toFloor
	if floors <= 0 {
		return 0
	}
	landingDelay := 0.0
	if s.HasLandings {
		landingDelay = float64(s.LandingsPerFloor) * SecondsPerLanding
	}
	return float64(floors) * (SecondsPerFloor + landingDelay)
}
