// Package scenario loads building scenarios from YAML or JSON and turns them
// into sim.BuildingConfig values. Unset fields take the calculator defaults.
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
)

// CurrentVersion is written by Default and accepted by Validate.
const CurrentVersion = "1"

var validVersions = map[string]bool{"": true, "1": true}

// Scenario is the top-level scenario document.
// Building-level fields start from Default(); a document only lists what differs.
type Scenario struct {
	Version string `yaml:"version" json:"version"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`

	// StairCount generates stairs A, B, C... with default geometry when Stairs is
	// empty. It is ignored when Stairs lists the stairs explicitly.
	StairCount int `yaml:"stair_count,omitempty" json:"stair_count,omitempty"`
	// HasVestibules is the vestibule default for stairs that do not set has_vestibule.
	HasVestibules bool `yaml:"has_vestibules" json:"has_vestibules"`

	FloorCount             int      `yaml:"floor_count" json:"floor_count"`
	LowestFloor            int      `yaml:"lowest_floor" json:"lowest_floor"`
	FloorHeight            float64  `yaml:"floor_height" json:"floor_height"`
	MaxEvacuationMinutes   int      `yaml:"max_evacuation_minutes" json:"max_evacuation_minutes"`
	TimeStepSeconds        int      `yaml:"time_step_seconds" json:"time_step_seconds"`
	FloorExitFlowRate      float64  `yaml:"floor_exit_flow_rate" json:"floor_exit_flow_rate"`
	StairFlowRate          float64  `yaml:"stair_flow_rate" json:"stair_flow_rate"`
	VestibuleFlowReduction float64  `yaml:"vestibule_flow_reduction" json:"vestibule_flow_reduction"`
	FloorStartDelaySeconds *float64 `yaml:"floor_start_delay_seconds,omitempty" json:"floor_start_delay_seconds,omitempty"`
	Allocation             string   `yaml:"allocation,omitempty" json:"allocation,omitempty"`

	// DefaultPeoplePerFloor applies to every floor missing from PeopleByFloor.
	DefaultPeoplePerFloor int         `yaml:"default_people_per_floor" json:"default_people_per_floor"`
	PeopleByFloor         map[int]int `yaml:"people_by_floor,omitempty" json:"people_by_floor,omitempty"`

	Stairs []StairSpec `yaml:"stairs,omitempty" json:"stairs,omitempty"`
}

// StairSpec overrides the default stair. Nil fields mean "not set".
type StairSpec struct {
	Name                  string          `yaml:"name,omitempty" json:"name,omitempty"`
	Width                 *float64        `yaml:"width,omitempty" json:"width,omitempty"`
	ClearWidth            *float64        `yaml:"clear_width,omitempty" json:"clear_width,omitempty"`
	ExitDoorWidth         *float64        `yaml:"exit_door_width,omitempty" json:"exit_door_width,omitempty"`
	HasLandings           *bool           `yaml:"has_landings,omitempty" json:"has_landings,omitempty"`
	LandingsPerFloor      *int            `yaml:"landings_per_floor,omitempty" json:"landings_per_floor,omitempty"`
	LandingSize           *float64        `yaml:"landing_size,omitempty" json:"landing_size,omitempty"`
	HasVestibule          *bool           `yaml:"has_vestibule,omitempty" json:"has_vestibule,omitempty"`
	VestibuleDepth        *float64        `yaml:"vestibule_depth,omitempty" json:"vestibule_depth,omitempty"`
	VestibuleDoorWidth    *float64        `yaml:"vestibule_door_width,omitempty" json:"vestibule_door_width,omitempty"`
	Resistance            *float64        `yaml:"resistance,omitempty" json:"resistance,omitempty"`
	CapacityReduction     *float64        `yaml:"capacity_reduction,omitempty" json:"capacity_reduction,omitempty"`
	ReceivingCapacity     *float64        `yaml:"receiving_capacity,omitempty" json:"receiving_capacity,omitempty"`
	TravelSpeed           *float64        `yaml:"travel_speed,omitempty" json:"travel_speed,omitempty"`
	TravelDistance        *float64        `yaml:"travel_distance,omitempty" json:"travel_distance,omitempty"`
	TravelDistanceByFloor map[int]float64 `yaml:"travel_distance_by_floor,omitempty" json:"travel_distance_by_floor,omitempty"`
	FloorEvacuationDelay  *float64        `yaml:"floor_evacuation_delay,omitempty" json:"floor_evacuation_delay,omitempty"`
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses a YAML scenario document on top of Default().
func ParseYAML(data []byte) (*Scenario, error) {
	sc := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	upgrade(&sc)
	return &sc, nil
}

// ParseJSON parses a JSON scenario document on top of Default().
// Unknown fields are rejected.
func ParseJSON(data []byte) (*Scenario, error) {
	sc := Default()
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	upgrade(&sc)
	return &sc, nil
}

// upgrade fills the version of unversioned documents and aligns stair_count
// with an explicit stair list.
func upgrade(sc *Scenario) {
	if sc.Version == "" {
		sc.Version = CurrentVersion
	}
	if len(sc.Stairs) > 0 {
		sc.StairCount = len(sc.Stairs)
	}
	if sc.PeopleByFloor == nil {
		sc.PeopleByFloor = map[int]int{}
	}
}

// Validate checks the scenario-level fields, then every parameter of the
// resulting building configuration.
func (s *Scenario) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unknown scenario version %q; valid: 1", s.Version)
	}
	if len(s.Stairs) == 0 && (s.StairCount < 1 || s.StairCount > 10) {
		return fmt.Errorf("stair_count must be in [1, 10] when no stairs are listed, got %d", s.StairCount)
	}
	if s.DefaultPeoplePerFloor < 0 {
		return fmt.Errorf("default_people_per_floor must be non-negative, got %d", s.DefaultPeoplePerFloor)
	}
	cfg := s.BuildingConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", s.label(), err)
	}
	return nil
}

func (s *Scenario) label() string {
	if s.Name != "" {
		return fmt.Sprintf("%q", s.Name)
	}
	return "(unnamed)"
}

// BuildingConfig converts the scenario into the simulator input.
// The result shares no maps with the scenario.
func (s *Scenario) BuildingConfig() sim.BuildingConfig {
	cfg := sim.BuildingConfig{
		FloorCount:             s.FloorCount,
		LowestFloor:            s.LowestFloor,
		FloorHeight:            s.FloorHeight,
		MaxEvacuationMinutes:   s.MaxEvacuationMinutes,
		TimeStepSeconds:        s.TimeStepSeconds,
		FloorExitFlowRate:      s.FloorExitFlowRate,
		StairFlowRate:          s.StairFlowRate,
		VestibuleFlowReduction: s.VestibuleFlowReduction,
		Allocation:             sim.AllocationPolicy(s.Allocation),
		PeopleByFloor:          make(map[int]int),
	}
	if s.FloorStartDelaySeconds != nil {
		delay := *s.FloorStartDelaySeconds
		cfg.FloorStartDelaySeconds = &delay
	}

	// Listed floors outside the building are kept so validation can report them.
	for f, n := range s.PeopleByFloor {
		cfg.PeopleByFloor[f] = n
	}
	for f := s.FloorCount - 1; f >= s.LowestFloor; f-- {
		if _, ok := cfg.PeopleByFloor[f]; !ok {
			cfg.PeopleByFloor[f] = s.DefaultPeoplePerFloor
		}
	}

	if len(s.Stairs) == 0 {
		for i := 0; i < s.StairCount; i++ {
			cfg.Stairs = append(cfg.Stairs, DefaultStair(StairName(i), s.HasVestibules))
		}
		return cfg
	}
	for i, spec := range s.Stairs {
		cfg.Stairs = append(cfg.Stairs, spec.apply(i, s.HasVestibules))
	}
	return cfg
}

// apply overlays the set fields on the default stair for position i.
func (spec StairSpec) apply(i int, hasVestibule bool) sim.Stair {
	name := spec.Name
	if name == "" {
		name = StairName(i)
	}
	st := DefaultStair(name, hasVestibule)
	setFloat(&st.Width, spec.Width)
	setFloat(&st.ClearWidth, spec.ClearWidth)
	setFloat(&st.ExitDoorWidth, spec.ExitDoorWidth)
	setBool(&st.HasLandings, spec.HasLandings)
	if spec.LandingsPerFloor != nil {
		st.LandingsPerFloor = *spec.LandingsPerFloor
	}
	setFloat(&st.LandingSize, spec.LandingSize)
	setBool(&st.HasVestibule, spec.HasVestibule)
	setFloat(&st.VestibuleDepth, spec.VestibuleDepth)
	setFloat(&st.VestibuleDoorWidth, spec.VestibuleDoorWidth)
	setFloat(&st.Resistance, spec.Resistance)
	setFloat(&st.CapacityReduction, spec.CapacityReduction)
	setFloat(&st.ReceivingCapacity, spec.ReceivingCapacity)
	setFloat(&st.TravelSpeed, spec.TravelSpeed)
	setFloat(&st.TravelDistance, spec.TravelDistance)
	setFloat(&st.FloorEvacuationDelay, spec.FloorEvacuationDelay)
	for f, d := range spec.TravelDistanceByFloor {
		st.TravelDistanceByFloor[f] = d
	}
	return st
}

// SpecFromStair returns a fully populated StairSpec describing st.
func SpecFromStair(st sim.Stair) StairSpec {
	spec := StairSpec{
		Name:                 st.Name,
		Width:                ptr(st.Width),
		ClearWidth:           ptr(st.ClearWidth),
		ExitDoorWidth:        ptr(st.ExitDoorWidth),
		HasLandings:          ptr(st.HasLandings),
		LandingsPerFloor:     ptr(st.LandingsPerFloor),
		LandingSize:          ptr(st.LandingSize),
		HasVestibule:         ptr(st.HasVestibule),
		VestibuleDepth:       ptr(st.VestibuleDepth),
		VestibuleDoorWidth:   ptr(st.VestibuleDoorWidth),
		Resistance:           ptr(st.Resistance),
		CapacityReduction:    ptr(st.CapacityReduction),
		ReceivingCapacity:    ptr(st.ReceivingCapacity),
		TravelSpeed:          ptr(st.TravelSpeed),
		TravelDistance:       ptr(st.TravelDistance),
		FloorEvacuationDelay: ptr(st.FloorEvacuationDelay),
	}
	if len(st.TravelDistanceByFloor) > 0 {
		spec.TravelDistanceByFloor = make(map[int]float64, len(st.TravelDistanceByFloor))
		for f, d := range st.TravelDistanceByFloor {
			spec.TravelDistanceByFloor[f] = d
		}
	}
	return spec
}

// Expand returns a copy of the scenario with every stair listed explicitly.
func (s *Scenario) Expand() Scenario {
	out := *s
	cfg := s.BuildingConfig()
	out.StairCount = len(cfg.Stairs)
	out.Stairs = make([]StairSpec, len(cfg.Stairs))
	for i, st := range cfg.Stairs {
		out.Stairs[i] = SpecFromStair(st)
	}
	return out
}

// EncodeYAML renders the scenario as a YAML document with two-space indentation.
func (s *Scenario) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	return buf.Bytes(), nil
}

// Fingerprint identifies the building configuration of the scenario.
// Two scenarios with the same fingerprint produce identical results.
func (s *Scenario) Fingerprint() (string, error) {
	cfg := s.BuildingConfig()
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("fingerprinting scenario: %w", err)
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	sum := fmt.Sprintf("%016x", h.Sum64())
	logrus.Debugf("scenario %s fingerprint %s", s.label(), sum)
	return sum, nil
}

func ptr[T any](v T) *T { return &v }

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
