package progress

import (
	"time"

	"github.com/maendeleo/backend/core/course"
)

// effectiveDue is the assignment's due instant shifted by its grace period
// (0 minutes when absent). ok is false for non-assignments and assignments
// without a due date.
func effectiveDue(item course.ContentItem) (due time.Time, ok bool) {
	if !item.IsAssignment() || !item.DueDate.Valid {
		return time.Time{}, false
	}
	grace := time.Duration(item.GracePeriodMinutes.Int) * time.Minute
	return item.DueDate.Time.Add(grace), true
}

// isOverdueCandidate reports whether now is strictly past the item's
// effective due instant.
func isOverdueCandidate(item course.ContentItem, now time.Time) bool {
	due, ok := effectiveDue(item)
	return ok && now.After(due)
}
