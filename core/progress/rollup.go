package progress

import (
	"math"
	"time"

	"github.com/maendeleo/backend/core/course"
)

// progressIndex groups progress rows as student -> item -> status in a single
// pass; every downstream count derives from it. Absence of an entry is the
// store's canonical representation of StatusNotStarted and is mapped back to
// a status in statusFor only.
type progressIndex map[string]map[string]Status

func buildIndex(rows []ContentProgress) progressIndex {
	idx := make(progressIndex)
	for _, row := range rows {
		items, ok := idx[row.StudentID]
		if !ok {
			items = make(map[string]Status)
			idx[row.StudentID] = items
		}
		items[row.ContentItemID] = row.Status
	}
	return idx
}

func (idx progressIndex) statusFor(studentID, itemID string) Status {
	if st, ok := idx[studentID][itemID]; ok {
		return st
	}
	return StatusNotStarted
}

// roundPct is round-half-up of completed/total as a percentage; 0 when the
// denominator is empty, never NaN.
func roundPct(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(completed)/float64(total)*100 + 0.5))
}

// meanPct is the round-half-up mean of n percentage values; 0 for none.
func meanPct(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Floor(float64(sum)/float64(n) + 0.5))
}

// containerStatus classifies a container from its completed/total counts.
// A container with nothing to complete is NOT_STARTED, not COMPLETED.
func containerStatus(completed, total int) Status {
	switch {
	case total == 0, completed == 0:
		return StatusNotStarted
	case completed == total:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// moduleRollupResult carries the rollup plus the per-student tallies the
// dashboard composer aggregates across modules.
type moduleRollupResult struct {
	rollup ModuleRollup
	// completedBy is each cohort member's completed-item count in this module.
	completedBy map[string]int
	// lastAccessBy is each cohort member's most recent access in this module.
	lastAccessBy map[string]time.Time
}

// rollupModule computes the full module rollup for a cohort at a given
// instant. It is a pure function of its inputs. viewerID selects the single
// viewing student for the viewer-axis fields; pass "" for no viewer.
func rollupModule(mod course.Module, rows []ContentProgress, cohort []string, viewerID string, now time.Time) moduleRollupResult {
	idx := buildIndex(rows)
	cohortSize := len(cohort)

	sections := make([]SectionRollup, 0, len(mod.Sections))
	completedBy := make(map[string]int, cohortSize)
	var totalItems, overdueTotal int

	for _, sec := range mod.Sections {
		items := make([]ItemRollup, 0, len(sec.Items))
		secCompletedBy := make(map[string]int, cohortSize)

		for _, item := range sec.Items {
			ir := ItemRollup{
				ContentItemID:       item.ID,
				Title:               item.Title,
				ContentType:         item.ContentType,
				Order:               item.Order,
				ViewerStatus:        idx.statusFor(viewerID, item.ID),
				DueDate:             item.DueDate,
				AllowLateSubmission: item.AllowLateSubmission,
				Overdue:             isOverdueCandidate(item, now),
			}
			for _, sid := range cohort {
				if idx.statusFor(sid, item.ID) == StatusCompleted {
					ir.CompletedStudentsCount++
					secCompletedBy[sid]++
				} else if ir.Overdue {
					// a never-touched overdue assignment still counts
					ir.OverdueStudentsCount++
				}
			}
			ir.CompletionPercentage = roundPct(ir.CompletedStudentsCount, cohortSize)
			overdueTotal += ir.OverdueStudentsCount
			items = append(items, ir)
		}

		sr := SectionRollup{
			SectionID:         sec.ID,
			Title:             sec.Title,
			Order:             sec.Order,
			TotalContentItems: len(sec.Items),
			Items:             items,
		}
		for sid, n := range secCompletedBy {
			completedBy[sid] += n
			if sr.TotalContentItems > 0 && n == sr.TotalContentItems {
				sr.CompletedStudentsCount++
			}
		}
		sr.CompletedContentItems = secCompletedBy[viewerID]
		sr.ProgressPercentage = roundPct(sr.CompletedContentItems, sr.TotalContentItems)
		sr.CompletionPercentage = roundPct(sr.CompletedStudentsCount, cohortSize)
		sr.Status = containerStatus(sr.CompletedContentItems, sr.TotalContentItems)

		totalItems += sr.TotalContentItems
		sections = append(sections, sr)
	}

	mr := ModuleRollup{
		ModuleID:                mod.ID,
		Title:                   mod.Title,
		CourseOfferingID:        mod.CourseOfferingID,
		TotalContentItems:       totalItems,
		CompletedContentItems:   completedBy[viewerID],
		CohortSize:              cohortSize,
		OverdueAssignmentsCount: overdueTotal,
		Sections:                sections,
	}
	for _, n := range completedBy {
		if totalItems > 0 && n == totalItems {
			mr.CompletedStudentsCount++
		}
	}
	mr.ProgressPercentage = roundPct(mr.CompletedContentItems, totalItems)
	mr.CompletionPercentage = roundPct(mr.CompletedStudentsCount, cohortSize)
	mr.Status = containerStatus(mr.CompletedContentItems, totalItems)

	lastAccessBy := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		if !row.LastAccessedAt.Valid {
			continue
		}
		if ts, ok := lastAccessBy[row.StudentID]; !ok || row.LastAccessedAt.Time.After(ts) {
			lastAccessBy[row.StudentID] = row.LastAccessedAt.Time
		}
	}

	return moduleRollupResult{rollup: mr, completedBy: completedBy, lastAccessBy: lastAccessBy}
}
