package sim

// CriticalPath is the slowest escape route of one floor.
type CriticalPath struct {
	Floor          int     `json:"floor"`
	Stair          string  `json:"stair"`
	TravelSeconds  float64 `json:"travel_seconds"`
	DescentSeconds float64 `json:"descent_seconds"`
	TotalSeconds   float64 `json:"total_seconds"`
}

// CriticalPaths returns, for every floor from highest to lowest, the stair with
// the largest travel plus descent time down to the lowest floor. On ties the
// first stair in configuration order wins. It does not depend on the
// time-step simulation.
func CriticalPaths(cfg *BuildingConfig) ([]CriticalPath, error) {
	floors := cfg.Floors()
	paths := make([]CriticalPath, 0, len(floors))
	if len(cfg.Stairs) == 0 {
		return paths, nil
	}
	for _, floor := range floors {
		var slowest CriticalPath
		for i, s := range cfg.Stairs {
			travel, err := TravelTime(s, floor)
			if err != nil {
				return nil, err
			}
			descent := DescentTime(s, floor, cfg.LowestFloor)
			if total := travel + descent; i == 0 || total > slowest.TotalSeconds {
				slowest = CriticalPath{
					Floor:          floor,
					Stair:          s.Name,
					TravelSeconds:  travel,
					DescentSeconds: descent,
					TotalSeconds:   total,
				}
			}
		}
		paths = append(paths, slowest)
	}
	return paths, nil
}
