package scenario

import (
	"strconv"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
)

// Defaults of the calculator's input form.
const (
	DefaultStairCount             = 5
	DefaultFloorCount             = 5
	DefaultLowestFloor            = -1
	DefaultFloorHeight            = 3.0
	DefaultMaxEvacuationMinutes   = 20
	DefaultTimeStepSeconds        = 30
	DefaultFloorExitFlowRate      = 45.0
	DefaultStairFlowRate          = 33.0
	DefaultVestibuleFlowReduction = 0.85
	DefaultPeoplePerFloor         = 100
)

// Default returns the scenario used when no file is given: five stairs with
// vestibules serving floors 4 down to -1, 100 people per floor.
func Default() Scenario {
	return Scenario{
		Version:                CurrentVersion,
		StairCount:             DefaultStairCount,
		HasVestibules:          true,
		FloorCount:             DefaultFloorCount,
		LowestFloor:            DefaultLowestFloor,
		FloorHeight:            DefaultFloorHeight,
		MaxEvacuationMinutes:   DefaultMaxEvacuationMinutes,
		TimeStepSeconds:        DefaultTimeStepSeconds,
		FloorExitFlowRate:      DefaultFloorExitFlowRate,
		StairFlowRate:          DefaultStairFlowRate,
		VestibuleFlowReduction: DefaultVestibuleFlowReduction,
		DefaultPeoplePerFloor:  DefaultPeoplePerFloor,
		PeopleByFloor:          map[int]int{},
	}
}

// DefaultStair returns a stair with the calculator's default geometry.
func DefaultStair(name string, hasVestibule bool) sim.Stair {
	return sim.Stair{
		Name:                  name,
		Width:                 1.2,
		ClearWidth:            1.0,
		ExitDoorWidth:         0.85,
		HasLandings:           true,
		LandingsPerFloor:      2,
		LandingSize:           1.5,
		HasVestibule:          hasVestibule,
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

// StairName returns the letter name of the i-th stair: A, B, C...
func StairName(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('A' + i))
	}
	return "S" + strconv.Itoa(i+1)
}
