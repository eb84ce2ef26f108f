package progress

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/course"
)

func Test_roundPct(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		want             int
	}{
		{name: "empty denominator", completed: 0, total: 0, want: 0},
		{name: "none completed", completed: 0, total: 5, want: 0},
		{name: "half", completed: 1, total: 2, want: 50},
		{name: "third rounds down", completed: 1, total: 3, want: 33},
		{name: "two thirds rounds up", completed: 2, total: 3, want: 67},
		{name: "exact half-point rounds up", completed: 1, total: 200, want: 1},
		{name: "below half-point rounds down", completed: 1, total: 1000, want: 0},
		{name: "all completed", completed: 3, total: 3, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roundPct(tt.completed, tt.total); got != tt.want {
				t.Errorf("roundPct(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func Test_meanPct(t *testing.T) {
	tests := []struct {
		name   string
		sum, n int
		want   int
	}{
		{name: "no values", sum: 0, n: 0, want: 0},
		{name: "single value", sum: 42, n: 1, want: 42},
		{name: "rounds half up", sum: 101, n: 2, want: 51},
		{name: "rounds down", sum: 100, n: 3, want: 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := meanPct(tt.sum, tt.n); got != tt.want {
				t.Errorf("meanPct(%d, %d) = %d, want %d", tt.sum, tt.n, got, tt.want)
			}
		})
	}
}

func Test_containerStatus(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		want             Status
	}{
		{name: "nothing to complete", completed: 0, total: 0, want: StatusNotStarted},
		{name: "untouched", completed: 0, total: 5, want: StatusNotStarted},
		{name: "partial", completed: 2, total: 5, want: StatusInProgress},
		{name: "complete", completed: 5, total: 5, want: StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containerStatus(tt.completed, tt.total); got != tt.want {
				t.Errorf("containerStatus(%d, %d) = %s, want %s", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func Test_progressIndex_statusFor(t *testing.T) {
	idx := buildIndex([]ContentProgress{
		{StudentID: "st1", ContentItemID: "i1", Status: StatusCompleted},
		{StudentID: "st1", ContentItemID: "i2", Status: StatusInProgress},
	})

	if got := idx.statusFor("st1", "i1"); got != StatusCompleted {
		t.Errorf("statusFor(st1, i1) = %s, want %s", got, StatusCompleted)
	}
	if got := idx.statusFor("st1", "i2"); got != StatusInProgress {
		t.Errorf("statusFor(st1, i2) = %s, want %s", got, StatusInProgress)
	}
	// absence of a row reads as NOT_STARTED
	if got := idx.statusFor("st1", "i3"); got != StatusNotStarted {
		t.Errorf("statusFor(st1, i3) = %s, want %s", got, StatusNotStarted)
	}
	if got := idx.statusFor("st2", "i1"); got != StatusNotStarted {
		t.Errorf("statusFor(st2, i1) = %s, want %s", got, StatusNotStarted)
	}
}

// scenarioModule is a module with one section holding an overdue assignment
// and a lesson without a due date.
func scenarioModule(now time.Time) course.Module {
	return course.Module{
		ID:    "m1",
		Title: "Basics of Accounting",
		Sections: []course.Section{
			{
				ID:       "s1",
				ModuleID: "m1",
				Title:    "Week 1",
				Order:    1,
				Items: []course.ContentItem{
					{
						ID:          "i1",
						SectionID:   "s1",
						Title:       "Essay",
						Order:       1,
						ContentType: course.ContentTypeAssignment,
						DueDate:     null.TimeFrom(now.Add(-24 * time.Hour)),
					},
					{
						ID:          "i2",
						SectionID:   "s1",
						Title:       "Intro Lesson",
						Order:       2,
						ContentType: course.ContentTypeLesson,
					},
				},
			},
		},
	}
}

func Test_rollupModule(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	mod := scenarioModule(now)
	rows := []ContentProgress{
		{StudentID: "st1", ContentItemID: "i1", ModuleID: "m1", Status: StatusCompleted, CompletedAt: null.TimeFrom(now.Add(-48 * time.Hour)), LastAccessedAt: null.TimeFrom(now.Add(-48 * time.Hour))},
		{StudentID: "st1", ContentItemID: "i2", ModuleID: "m1", Status: StatusCompleted, CompletedAt: null.TimeFrom(now.Add(-36 * time.Hour)), LastAccessedAt: null.TimeFrom(now.Add(-36 * time.Hour))},
		{StudentID: "st2", ContentItemID: "i2", ModuleID: "m1", Status: StatusCompleted, CompletedAt: null.TimeFrom(now.Add(-2 * time.Hour)), LastAccessedAt: null.TimeFrom(now.Add(-2 * time.Hour))},
	}
	cohort := []string{"st1", "st2"}

	res := rollupModule(mod, rows, cohort, "st1", now)
	mr := res.rollup

	if len(mr.Sections) != 1 || len(mr.Sections[0].Items) != 2 {
		t.Fatalf("rollupModule() unexpected shape: %+v", mr)
	}
	i1, i2 := mr.Sections[0].Items[0], mr.Sections[0].Items[1]

	if i1.CompletedStudentsCount != 1 || i1.CompletionPercentage != 50 {
		t.Errorf("i1 = %d (%d%%), want 1 (50%%)", i1.CompletedStudentsCount, i1.CompletionPercentage)
	}
	if !i1.Overdue || i1.OverdueStudentsCount != 1 {
		t.Errorf("i1 overdue = %v (%d students), want true (1 student)", i1.Overdue, i1.OverdueStudentsCount)
	}
	if i1.ViewerStatus != StatusCompleted {
		t.Errorf("i1.ViewerStatus = %s, want %s", i1.ViewerStatus, StatusCompleted)
	}
	if i2.CompletedStudentsCount != 2 || i2.CompletionPercentage != 100 {
		t.Errorf("i2 = %d (%d%%), want 2 (100%%)", i2.CompletedStudentsCount, i2.CompletionPercentage)
	}
	if i2.Overdue || i2.OverdueStudentsCount != 0 {
		t.Errorf("i2 overdue = %v (%d students), want false (0 students)", i2.Overdue, i2.OverdueStudentsCount)
	}

	sec := mr.Sections[0]
	if sec.TotalContentItems != 2 || sec.CompletedStudentsCount != 1 || sec.CompletionPercentage != 50 {
		t.Errorf("section cohort axis = %d/%d (%d%%), want 1/2 (50%%)", sec.CompletedStudentsCount, sec.TotalContentItems, sec.CompletionPercentage)
	}
	if sec.CompletedContentItems != 2 || sec.ProgressPercentage != 100 || sec.Status != StatusCompleted {
		t.Errorf("section viewer axis = %d items (%d%%, %s), want 2 items (100%%, %s)", sec.CompletedContentItems, sec.ProgressPercentage, sec.Status, StatusCompleted)
	}

	if mr.TotalContentItems != 2 || mr.CohortSize != 2 {
		t.Errorf("module totals = %d items, cohort %d, want 2 and 2", mr.TotalContentItems, mr.CohortSize)
	}
	if mr.CompletedStudentsCount != 1 || mr.CompletionPercentage != 50 {
		t.Errorf("module cohort axis = %d (%d%%), want 1 (50%%)", mr.CompletedStudentsCount, mr.CompletionPercentage)
	}
	if mr.CompletedContentItems != 2 || mr.ProgressPercentage != 100 || mr.Status != StatusCompleted {
		t.Errorf("module viewer axis = %d (%d%%, %s), want 2 (100%%, %s)", mr.CompletedContentItems, mr.ProgressPercentage, mr.Status, StatusCompleted)
	}
	if mr.OverdueAssignmentsCount != 1 {
		t.Errorf("module.OverdueAssignmentsCount = %d, want 1", mr.OverdueAssignmentsCount)
	}

	if res.completedBy["st1"] != 2 || res.completedBy["st2"] != 1 {
		t.Errorf("completedBy = %v, want st1:2 st2:1", res.completedBy)
	}
	if ts := res.lastAccessBy["st2"]; !ts.Equal(now.Add(-2 * time.Hour)) {
		t.Errorf("lastAccessBy[st2] = %v, want %v", ts, now.Add(-2*time.Hour))
	}
}

func Test_rollupModule_noViewer(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	mod := scenarioModule(now)
	rows := []ContentProgress{
		{StudentID: "st1", ContentItemID: "i1", ModuleID: "m1", Status: StatusCompleted, CompletedAt: null.TimeFrom(now)},
	}

	mr := rollupModule(mod, rows, []string{"st1", "st2"}, "", now).rollup

	if mr.CompletedContentItems != 0 || mr.ProgressPercentage != 0 || mr.Status != StatusNotStarted {
		t.Errorf("viewer axis without viewer = %d (%d%%, %s), want zeroes", mr.CompletedContentItems, mr.ProgressPercentage, mr.Status)
	}
	if got := mr.Sections[0].Items[0].ViewerStatus; got != StatusNotStarted {
		t.Errorf("ViewerStatus without viewer = %s, want %s", got, StatusNotStarted)
	}
	// cohort axis is unaffected
	if mr.Sections[0].Items[0].CompletedStudentsCount != 1 {
		t.Errorf("cohort axis changed without viewer")
	}
}

func Test_rollupModule_emptyCohort(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	mod := scenarioModule(now)

	mr := rollupModule(mod, nil, nil, "", now).rollup

	if mr.CohortSize != 0 {
		t.Errorf("CohortSize = %d, want 0", mr.CohortSize)
	}
	if mr.CompletionPercentage != 0 || mr.CompletedStudentsCount != 0 {
		t.Errorf("cohort axis = %d (%d%%), want zeroes", mr.CompletedStudentsCount, mr.CompletionPercentage)
	}
	for _, ir := range mr.Sections[0].Items {
		if ir.CompletionPercentage != 0 || ir.CompletedStudentsCount != 0 {
			t.Errorf("item %s cohort axis = %d (%d%%), want zeroes", ir.ContentItemID, ir.CompletedStudentsCount, ir.CompletionPercentage)
		}
	}
}

func Test_rollupModule_noSections(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)

	mr := rollupModule(course.Module{ID: "m2", Title: "Empty"}, nil, []string{"st1"}, "st1", now).rollup

	if mr.TotalContentItems != 0 || mr.ProgressPercentage != 0 {
		t.Errorf("empty module totals = %d (%d%%), want zeroes", mr.TotalContentItems, mr.ProgressPercentage)
	}
	if mr.Status != StatusNotStarted {
		t.Errorf("empty module Status = %s, want %s", mr.Status, StatusNotStarted)
	}
}
