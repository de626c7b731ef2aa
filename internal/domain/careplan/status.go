package careplan

// DeriveOverallStatus projects the per-category item statuses onto the
// plan-wide status. The result is recomputed on every read and never
// persisted; callers must not cache it.
//
// All NOT_STARTED, optionally mixed with NOT_APPLICABLE, is NOT_STARTED.
// All COMPLETED or NOT_APPLICABLE is COMPLETED. Any other mixture is
// IN_PROGRESS. An empty slice projects to NOT_STARTED.
func DeriveOverallStatus(statuses []ItemStatus) ItemStatus {
	if len(statuses) == 0 {
		return StatusNotStarted
	}
	var notStarted, inProgress, completed int
	for _, s := range statuses {
		switch s {
		case StatusNotStarted:
			notStarted++
		case StatusInProgress:
			inProgress++
		case StatusCompleted:
			completed++
		}
	}
	switch {
	case inProgress > 0:
		return StatusInProgress
	case notStarted > 0 && completed > 0:
		return StatusInProgress
	case notStarted > 0:
		return StatusNotStarted
	default:
		// Everything COMPLETED or NOT_APPLICABLE.
		return StatusCompleted
	}
}
