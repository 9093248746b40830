package schedule

// HasConflict reports whether the candidate interval intersects any interval
// already scheduled for the same worker and date. The caller supplies the
// existing intervals for that worker/date; entries carrying the candidate's
// own ID are skipped so an update never collides with the record it is
// replacing.
//
// The verdict is deterministic for a given snapshot and the check never
// fails: an empty or nil existing list simply yields false. The write path
// must call this before persisting and reject synchronously on true.
func HasConflict(existing []Interval, candidate Interval) bool {
	for _, iv := range existing {
		if candidate.ID != "" && iv.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
