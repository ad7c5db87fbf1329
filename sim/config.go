package sim

import (
	"fmt"
	"math"
	"sort"
)

// AllocationPolicy selects how a floor's leavers are shared between stairs within one step.
type AllocationPolicy string

const (
	// AllocationSequential visits stairs in configuration order; each stair drains
	// the floors before the next stair sees them. This is the default.
	AllocationSequential AllocationPolicy = "sequential"
	// AllocationProportional computes a floor's leavers once per step and splits
	// them over all stairs in proportion to their floor-exit capacity.
	AllocationProportional AllocationPolicy = "proportional"
)

// ValidAllocationPolicies is the set of recognized allocation policy names.
var ValidAllocationPolicies = map[AllocationPolicy]bool{
	"":                     true,
	AllocationSequential:   true,
	AllocationProportional: true,
}

// ValidMaxEvacuationMinutes lists the regulatory evacuation limits a run can be checked against.
var ValidMaxEvacuationMinutes = map[int]bool{15: true, 20: true, 30: true, 38: true, 76: true}

// Stair describes one stairwell: its geometry, its flow behaviour and how far
// occupants walk to reach it.
type Stair struct {
	Name  string
	Width float64 // m, must be > 0
	// ClearWidth is the unobstructed width; a ratio above 1 is capped.
	ClearWidth    float64
	ExitDoorWidth float64

	HasLandings      bool
	LandingsPerFloor int
	LandingSize      float64 // m

	HasVestibule       bool
	VestibuleDepth     float64
	VestibuleDoorWidth float64

	Resistance        float64 // reported only, not part of the flow model
	CapacityReduction float64
	ReceivingCapacity float64 // people the stair holds before ingress is throttled to zero

	TravelSpeed           float64 // m/s
	TravelDistance        float64 // m, used for every floor without an override
	TravelDistanceByFloor map[int]float64
	FloorEvacuationDelay  float64 // s
}

// BuildingConfig is the immutable input of one run.
// Floors are 0..FloorCount-1 above grade plus LowestFloor..-1 below grade.
type BuildingConfig struct {
	Stairs                 []Stair // iteration order of the simulator
	FloorCount             int
	LowestFloor            int
	FloorHeight            float64 // m
	MaxEvacuationMinutes   int
	TimeStepSeconds        int
	FloorExitFlowRate      float64 // people/min per metre of doorway
	StairFlowRate          float64 // people/min per metre of stair
	VestibuleFlowReduction float64
	PeopleByFloor          map[int]int

	// FloorStartDelaySeconds is the shared per-floor start delay. When nil the
	// first stair's FloorEvacuationDelay is used.
	FloorStartDelaySeconds *float64
	Allocation             AllocationPolicy
}

// HighestFloor returns the index of the top floor.
func (c *BuildingConfig) HighestFloor() int {
	return c.FloorCount - 1
}

// Floors returns every floor index ordered from highest to lowest.
func (c *BuildingConfig) Floors() []int {
	floors := make([]int, 0, c.FloorCount-c.LowestFloor)
	for f := c.HighestFloor(); f >= c.LowestFloor; f-- {
		floors = append(floors, f)
	}
	return floors
}

// HasFloor reports whether floor belongs to the building.
func (c *BuildingConfig) HasFloor(floor int) bool {
	return floor >= c.LowestFloor && floor <= c.HighestFloor()
}

// TotalPeople sums the configured occupants of every floor.
func (c *BuildingConfig) TotalPeople() int {
	total := 0
	for _, f := range c.Floors() {
		total += c.PeopleByFloor[f]
	}
	return total
}

// HeightMeters returns the height between the lowest and the highest floor level.
func (c *BuildingConfig) HeightMeters() float64 {
	levels := c.FloorCount - 1 + abs(min(0, c.LowestFloor))
	return float64(levels) * c.FloorHeight
}

// StepBudget is the last step index the simulator may execute: twice the
// allowed evacuation time, expressed in steps.
func (c *BuildingConfig) StepBudget() int {
	return int(math.Ceil(2 * float64(c.MaxEvacuationMinutes) * 60 / float64(c.TimeStepSeconds)))
}

// StartDelay resolves the shared floor start delay in seconds.
func (c *BuildingConfig) StartDelay() float64 {
	if c.FloorStartDelaySeconds != nil {
		return *c.FloorStartDelaySeconds
	}
	if len(c.Stairs) == 0 {
		return 0
	}
	return c.Stairs[0].FloorEvacuationDelay
}

// AllocationOrDefault returns the configured policy, defaulting to sequential.
func (c *BuildingConfig) AllocationOrDefault() AllocationPolicy {
	if c.Allocation == "" {
		return AllocationSequential
	}
	return c.Allocation
}

// Validate checks every parameter against its documented range.
// It returns the first violation as a *ConfigError.
func (c *BuildingConfig) Validate() error {
	if n := len(c.Stairs); n < 1 || n > 10 {
		return newConfigError("stairs", n, "stair count must be in [1, 10]")
	}
	if c.FloorCount < 1 || c.FloorCount > 100 {
		return newConfigError("floor_count", c.FloorCount, "must be in [1, 100]")
	}
	if c.LowestFloor < -10 || c.LowestFloor > 0 {
		return newConfigError("lowest_floor", c.LowestFloor, "must be in [-10, 0]")
	}
	if err := checkRange("floor_height", c.FloorHeight, 2.0, 6.0); err != nil {
		return err
	}
	if !ValidMaxEvacuationMinutes[c.MaxEvacuationMinutes] {
		return newConfigError("max_evacuation_minutes", c.MaxEvacuationMinutes, "must be one of 15, 20, 30, 38, 76")
	}
	if c.TimeStepSeconds < 5 || c.TimeStepSeconds > 60 {
		return newConfigError("time_step_seconds", c.TimeStepSeconds, "must be in [5, 60]")
	}
	if err := checkRange("floor_exit_flow_rate", c.FloorExitFlowRate, 20, 100); err != nil {
		return err
	}
	if err := checkRange("stair_flow_rate", c.StairFlowRate, 20, 100); err != nil {
		return err
	}
	if err := checkRange("vestibule_flow_reduction", c.VestibuleFlowReduction, 0.1, 1.0); err != nil {
		return err
	}
	if c.FloorStartDelaySeconds != nil {
		if err := checkRange("floor_start_delay_seconds", *c.FloorStartDelaySeconds, 0, 300); err != nil {
			return err
		}
	}
	if !ValidAllocationPolicies[c.Allocation] {
		return newConfigError("allocation", c.Allocation, "unknown allocation policy; valid: sequential, proportional")
	}
	for _, floor := range sortedKeys(c.PeopleByFloor) {
		field := fmt.Sprintf("people_by_floor[%d]", floor)
		if !c.HasFloor(floor) {
			return newConfigError(field, floor, "floor is outside [%d, %d]", c.LowestFloor, c.HighestFloor())
		}
		if n := c.PeopleByFloor[floor]; n < 0 {
			return newConfigError(field, n, "occupant count must be non-negative")
		}
	}
	seen := make(map[string]bool, len(c.Stairs))
	for i := range c.Stairs {
		s := &c.Stairs[i]
		if s.Name == "" {
			return newConfigError(fmt.Sprintf("stairs[%d].name", i), s.Name, "must not be empty")
		}
		if seen[s.Name] {
			return newConfigError(fmt.Sprintf("stairs[%d].name", i), s.Name, "duplicate stair name")
		}
		seen[s.Name] = true
		if err := c.validateStair(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *BuildingConfig) validateStair(s *Stair) error {
	prefix := "stairs[" + s.Name + "]"
	// divisors first
	if s.Width <= 0 {
		return newConfigError(prefix+".width", s.Width, "must be positive")
	}
	if s.TravelSpeed <= 0 {
		return newConfigError(prefix+".travel_speed", s.TravelSpeed, "must be positive")
	}
	if s.ReceivingCapacity <= 0 {
		return newConfigError(prefix+".receiving_capacity", s.ReceivingCapacity, "must be positive")
	}
	checks := []struct {
		field   string
		v       float64
		lo, hi  float64
		enabled bool
	}{
		{"width", s.Width, 0.8, 3.0, true},
		{"clear_width", s.ClearWidth, 0.6, 3.0, true},
		{"landings_per_floor", float64(s.LandingsPerFloor), 1, 4, s.HasLandings},
		{"landing_size", s.LandingSize, 0.5, 3.0, s.HasLandings},
		{"exit_door_width", s.ExitDoorWidth, 0.6, 2.5, true},
		{"vestibule_depth", s.VestibuleDepth, 0.5, 3.0, s.HasVestibule},
		{"vestibule_door_width", s.VestibuleDoorWidth, 0.6, 2.5, s.HasVestibule},
		{"resistance", s.Resistance, 0.5, 1.5, true},
		{"travel_distance", s.TravelDistance, 1, 100, true},
		{"travel_speed", s.TravelSpeed, 0.5, 2.5, true},
		{"floor_evacuation_delay", s.FloorEvacuationDelay, 0, 300, true},
		{"capacity_reduction", s.CapacityReduction, 0.1, 1.0, true},
		{"receiving_capacity", s.ReceivingCapacity, 10, 500, true},
	}
	for _, ck := range checks {
		if !ck.enabled {
			continue
		}
		if err := checkRange(prefix+"."+ck.field, ck.v, ck.lo, ck.hi); err != nil {
			return err
		}
	}
	for _, floor := range sortedKeys(s.TravelDistanceByFloor) {
		field := fmt.Sprintf("%s.travel_distance_by_floor[%d]", prefix, floor)
		if !c.HasFloor(floor) {
			return newConfigError(field, floor, "floor is outside [%d, %d]", c.LowestFloor, c.HighestFloor())
		}
		if err := checkRange(field, s.TravelDistanceByFloor[floor], 1, 100); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(field string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newConfigError(field, v, "must be a finite number")
	}
	if v < lo || v > hi {
		return newConfigError(field, v, "must be in [%g, %g]", lo, hi)
	}
	return nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
