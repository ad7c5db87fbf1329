package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
)

func TestDefault_ProducesValidBuilding(t *testing.T) {
	// GIVEN the default scenario
	sc := Default()

	// THEN it validates and describes five vestibule stairs over floors 4..-1
	require.NoError(t, sc.Validate())
	cfg := sc.BuildingConfig()
	require.Len(t, cfg.Stairs, DefaultStairCount)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, stairNames(cfg))
	assert.True(t, cfg.Stairs[0].HasVestibule)
	assert.Equal(t, []int{4, 3, 2, 1, 0, -1}, cfg.Floors())
	assert.Equal(t, 600, cfg.TotalPeople())
	assert.Nil(t, cfg.FloorStartDelaySeconds)
}

func TestParseYAML_OnlyListedFieldsOverride(t *testing.T) {
	// GIVEN a document that changes the floor count and one floor's occupancy
	doc := []byte(`
floor_count: 3
lowest_floor: 0
people_by_floor:
  1: 7
`)

	// WHEN parsed
	sc, err := ParseYAML(doc)

	// THEN other fields keep their defaults and missing floors get the default occupancy
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, sc.Version)
	assert.Equal(t, DefaultStairCount, sc.StairCount)
	cfg := sc.BuildingConfig()
	assert.Equal(t, map[int]int{2: 100, 1: 7, 0: 100}, cfg.PeopleByFloor)
	assert.Equal(t, DefaultFloorExitFlowRate, cfg.FloorExitFlowRate)
	require.NoError(t, sc.Validate())
}

func TestParseYAML_UnknownKey_Rejected(t *testing.T) {
	_, err := ParseYAML([]byte("floor_cout: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floor_cout")
}

func TestParseYAML_StairOverrides(t *testing.T) {
	doc := []byte(`
stairs:
  - name: West
    width: 1.6
    has_vestibule: false
    travel_distance_by_floor:
      4: 30
  - width: 1.0
`)
	sc, err := ParseYAML(doc)
	require.NoError(t, err)

	// THEN stair_count follows the list and unnamed stairs get a letter
	assert.Equal(t, 2, sc.StairCount)
	cfg := sc.BuildingConfig()
	require.Len(t, cfg.Stairs, 2)
	west, second := cfg.Stairs[0], cfg.Stairs[1]
	assert.Equal(t, "West", west.Name)
	assert.Equal(t, 1.6, west.Width)
	assert.False(t, west.HasVestibule)
	assert.Equal(t, 30.0, west.TravelDistanceFor(4))
	assert.Equal(t, 15.0, west.TravelDistanceFor(3))
	assert.Equal(t, "B", second.Name)
	assert.Equal(t, 1.0, second.Width)
	assert.True(t, second.HasVestibule, "inherits has_vestibules")
	assert.Equal(t, 1.0, second.ClearWidth, "unset fields keep the default")
}

func TestParseJSON_UnknownField_Rejected(t *testing.T) {
	_, err := ParseJSON([]byte(`{"floor_count": 3, "colour": "red"}`))
	require.Error(t, err)
}

func TestParseJSON_SameAsYAML(t *testing.T) {
	fromJSON, err := ParseJSON([]byte(`{"floor_count": 3, "lowest_floor": 0, "allocation": "proportional", "people_by_floor": {"1": 7}}`))
	require.NoError(t, err)
	fromYAML, err := ParseYAML([]byte("floor_count: 3\nlowest_floor: 0\nallocation: proportional\npeople_by_floor:\n  1: 7\n"))
	require.NoError(t, err)

	assert.Equal(t, fromYAML.BuildingConfig(), fromJSON.BuildingConfig())
}

func TestValidate_ScenarioLevelErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
		want   string
	}{
		{"version", func(s *Scenario) { s.Version = "2" }, "unknown scenario version"},
		{"stair count", func(s *Scenario) { s.StairCount = 0 }, "stair_count"},
		{"default people", func(s *Scenario) { s.DefaultPeoplePerFloor = -1 }, "default_people_per_floor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := Default()
			tt.mutate(&sc)
			err := sc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_BuildingErrorWrapsConfigError(t *testing.T) {
	// GIVEN a named scenario with an occupancy for a floor that does not exist
	sc := Default()
	sc.Name = "tower"
	sc.PeopleByFloor[12] = 5

	err := sc.Validate()

	// THEN the error keeps its field and names the scenario
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrInvalidConfig))
	var cfgErr *sim.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "people_by_floor[12]", cfgErr.Field)
	assert.Contains(t, err.Error(), `scenario "tower"`)
}

func TestBuildingConfig_DoesNotShareMaps(t *testing.T) {
	sc := Default()
	sc.PeopleByFloor[0] = 5
	cfg := sc.BuildingConfig()

	cfg.PeopleByFloor[0] = 99
	cfg.Stairs[0].TravelDistanceByFloor[1] = 50

	assert.Equal(t, 5, sc.PeopleByFloor[0])
	again := sc.BuildingConfig()
	assert.Equal(t, 15.0, again.Stairs[0].TravelDistanceFor(1))
}

func TestExpand_EncodeYAML_RoundTrips(t *testing.T) {
	// GIVEN the default scenario with its stairs listed explicitly
	sc := Default()
	sc.Name = "roundtrip"
	sc.FloorStartDelaySeconds = ptr(45.0)
	expanded := sc.Expand()
	require.Len(t, expanded.Stairs, DefaultStairCount)

	// WHEN written as YAML and read back
	data, err := expanded.EncodeYAML()
	require.NoError(t, err)
	back, err := ParseYAML(data)
	require.NoError(t, err)

	// THEN the building configuration is unchanged
	assert.Equal(t, sc.BuildingConfig(), back.BuildingConfig())
	assert.Equal(t, "roundtrip", back.Name)
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	a := Default()
	b := Default()

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 16)

	// Listing the default stairs explicitly describes the same building.
	expanded := a.Expand()
	fe, err := expanded.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fe)

	b.FloorCount = 6
	fc, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: tmp\nstair_count: 2\n"), 0644))

	sc, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "tmp", sc.Name)
	assert.Len(t, sc.BuildingConfig().Stairs, 2)
}

func TestStairName(t *testing.T) {
	assert.Equal(t, "A", StairName(0))
	assert.Equal(t, "Z", StairName(25))
	assert.Equal(t, "S27", StairName(26))
}

func stairNames(cfg sim.BuildingConfig) []string {
	names := make([]string, len(cfg.Stairs))
	for i, s := range cfg.Stairs {
		names[i] = s.Name
	}
	return names
}
