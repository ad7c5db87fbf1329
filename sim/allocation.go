package sim

// allocator applies the egress and ingress of one step to the run state.
type allocator func(st *State, elapsed, dt float64)

func allocatorFor(p AllocationPolicy) allocator {
	switch p {
	case AllocationProportional:
		return allocateProportional
	default:
		return allocateSequential
	}
}

// allocateSequential processes stairs in configuration order. For each stair it
// first discharges the exit door, then lets every started floor board it.
// A floor's remaining occupants are shared across stairs within the step, so an
// earlier stair can drain a floor before a later stair sees it.
func allocateSequential(st *State, elapsed, dt float64) {
	for _, ss := range st.stairs {
		ss.discharge(dt)
		stepCapacity := perStep(ss.floorExit, dt)
		for _, fs := range st.floors {
			if !fs.started(elapsed) || fs.remaining <= 0 {
				continue
			}
			attempting := min(fs.remaining, stepCapacity)
			ss.board(fs, attempting*ss.congestion())
		}
	}
}

// allocateProportional discharges every stair first. Then, per floor, the
// number of leavers is bounded once by the floor's remaining occupants and the
// combined doorway capacity, and split over the stairs in proportion to each
// stair's doorway capacity. Each share is throttled by its stair's congestion.
func allocateProportional(st *State, elapsed, dt float64) {
	for _, ss := range st.stairs {
		ss.discharge(dt)
	}
	combined := 0.0
	for _, ss := range st.stairs {
		combined += perStep(ss.floorExit, dt)
	}
	if combined <= 0 {
		return
	}
	for _, fs := range st.floors {
		if !fs.started(elapsed) || fs.remaining <= 0 {
			continue
		}
		leaving := min(fs.remaining, combined)
		for _, ss := range st.stairs {
			share := leaving * perStep(ss.floorExit, dt) / combined
			ss.board(fs, share*ss.congestion())
		}
	}
}
