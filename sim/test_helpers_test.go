package sim

// testStair returns a stair with the calculator's default geometry: 1.2 m wide,
// 1.0 m clear, no landings, no vestibule.
func testStair(name string) Stair {
	return Stair{
		Name:                  name,
		Width:                 1.2,
		ClearWidth:            1.0,
		ExitDoorWidth:         0.85,
		LandingsPerFloor:      2,
		LandingSize:           1.5,
		VestibuleDepth:        1.5,
		VestibuleDoorWidth:    0.85,
		Resistance:            1.0,
		CapacityReduction:     1.0,
		ReceivingCapacity:     120,
		TravelSpeed:           1.6,
		TravelDistance:        15,
		TravelDistanceByFloor: map[int]float64{},
		FloorEvacuationDelay:  60,
	}
}

// singleStairConfig is the reference building: floors 4..0, one stair,
// 100 people per floor, 30 s steps and a 20 minute limit.
func singleStairConfig() BuildingConfig {
	return BuildingConfig{
		Stairs:                 []Stair{testStair("A")},
		FloorCount:             5,
		LowestFloor:            0,
		FloorHeight:            3.0,
		MaxEvacuationMinutes:   20,
		TimeStepSeconds:        30,
		FloorExitFlowRate:      45,
		StairFlowRate:          33,
		VestibuleFlowReduction: 0.85,
		PeopleByFloor:          map[int]int{4: 100, 3: 100, 2: 100, 1: 100, 0: 100},
	}
}

// multiStairConfig is a five-stair building with vestibules and a basement.
func multiStairConfig() BuildingConfig {
	cfg := singleStairConfig()
	cfg.LowestFloor = -1
	cfg.Stairs = nil
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		s := testStair(name)
		s.HasVestibule = true
		s.HasLandings = true
		cfg.Stairs = append(cfg.Stairs, s)
	}
	cfg.PeopleByFloor[-1] = 100
	return cfg
}

func float64Ptr(v float64) *float64 { return &v }
