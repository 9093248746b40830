package schedule

import "sort"

// LanePlacement positions one interval within its overlap cluster. Lane is
// zero-based; TotalLanes counts the lanes of that cluster only, so a crowded
// lunch service never squeezes an unrelated evening shift.
type LanePlacement struct {
	Lane       int `json:"lane"`
	TotalLanes int `json:"totalLanes"`
}

// AssignLanes packs a day's intervals into parallel lanes so that no two
// intervals sharing a lane overlap in time. Intervals are processed by start
// time, ties kept in input (creation) order, which makes the layout
// reproducible for identical input. Open-ended intervals occupy their lane
// until windowEnd.
//
// The sweep is minimal: each overlap cluster uses exactly as many lanes as
// its peak number of simultaneously active intervals. Layouts are recomputed
// from scratch on every render and never persisted.
func AssignLanes(day []Interval, windowEnd int) map[string]LanePlacement {
	placements := make(map[string]LanePlacement, len(day))
	if len(day) == 0 {
		return placements
	}

	ordered := make([]Interval, len(day))
	copy(ordered, day)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	var (
		laneEnds   []int    // end minute of each lane's current occupant
		cluster    []string // interval IDs of the cluster being swept
		clusterEnd int      // furthest end seen in that cluster
	)

	flush := func() {
		for _, id := range cluster {
			p := placements[id]
			p.TotalLanes = len(laneEnds)
			placements[id] = p
		}
		cluster = cluster[:0]
		laneEnds = laneEnds[:0]
	}

	for _, iv := range ordered {
		end := iv.renderEnd(windowEnd)

		// Starting at or after everything seen so far closes the cluster;
		// adjacency is not overlap.
		if len(cluster) > 0 && iv.Start >= clusterEnd {
			flush()
		}

		lane := -1
		for i, occupied := range laneEnds {
			if occupied <= iv.Start {
				lane = i
				break
			}
		}
		if lane == -1 {
			laneEnds = append(laneEnds, end)
			lane = len(laneEnds) - 1
		} else {
			laneEnds[lane] = end
		}

		placements[iv.ID] = LanePlacement{Lane: lane}
		cluster = append(cluster, iv.ID)
		if end > clusterEnd || len(cluster) == 1 {
			clusterEnd = end
		}
	}
	flush()

	return placements
}
