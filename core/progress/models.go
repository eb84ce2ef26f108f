package progress

import (
	"github.com/volatiletech/null/v8"
)

// Status is the three-state completion status of a content item or container.
// Absence of a ContentProgress row means StatusNotStarted; that mapping is
// applied exactly once, where rows are indexed (see buildIndex).
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Role is the caller role cohort resolution keys on.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// Enrollment statuses counting toward cohorts.
const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type (
	// ContentProgress is a per-(student, content item) completion record,
	// denormalized with the module id for module-scoped batch reads.
	// Invariant: a completed row has a non-null CompletedAt.
	ContentProgress struct {
		StudentID      string    `json:"student_id"`
		ContentItemID  string    `json:"content_item_id"`
		ModuleID       string    `json:"module_id"`
		Status         Status    `json:"status"`
		CompletedAt    null.Time `json:"completed_at"`
		LastAccessedAt null.Time `json:"last_accessed_at"`
	}

	Enrollment struct {
		StudentID        string `json:"student_id"`
		CourseOfferingID string `json:"course_offering_id"`
		Status           string `json:"status"`
	}

	// CourseSection scopes a mentor's cohort to students in sections they own.
	CourseSection struct {
		ID               string `json:"id"`
		MentorID         string `json:"mentor_id"`
		CourseOfferingID string `json:"course_offering_id"`
	}

	// Scope optionally narrows cohort resolution to a single course offering.
	Scope struct {
		CourseOfferingID null.String `json:"course_offering_id"`
	}
)

// Completed reports whether the row counts toward completion tallies.
func (p ContentProgress) Completed() bool {
	return p.Status == StatusCompleted
}

// Rollup value objects. All recomputed per request; pure functions of
// (hierarchy snapshot, progress snapshot, cohort, now).
type (
	// ItemRollup aggregates one content item across the cohort.
	ItemRollup struct {
		ContentItemID string `json:"content_item_id"`
		Title         string `json:"title"`
		ContentType   string `json:"content_type"`
		Order         int    `json:"order"`

		CompletedStudentsCount int `json:"completed_students_count"`
		CompletionPercentage   int `json:"completion_percentage"`

		// ViewerStatus is the viewing student's own status for this item;
		// StatusNotStarted when there is no viewing student.
		ViewerStatus Status `json:"viewer_status"`

		// Assignment fields; zero-valued for non-assignments.
		DueDate              null.Time `json:"due_date"`
		AllowLateSubmission  bool      `json:"allow_late_submission"`
		Overdue              bool      `json:"overdue"`
		OverdueStudentsCount int       `json:"overdue_students_count"`
	}

	// SectionRollup aggregates a section. Two completion axes coexist:
	// CompletedContentItems counts items the viewing student completed;
	// CompletedStudentsCount counts cohort members who completed every item.
	SectionRollup struct {
		SectionID string `json:"section_id"`
		Title     string `json:"title"`
		Order     int    `json:"order"`

		TotalContentItems      int `json:"total_content_items"`
		CompletedContentItems  int `json:"completed_content_items"`
		CompletedStudentsCount int `json:"completed_students_count"`

		// ProgressPercentage is the viewer axis (items over total);
		// CompletionPercentage is the cohort axis (all-items students over cohort).
		ProgressPercentage   int    `json:"progress_percentage"`
		CompletionPercentage int    `json:"completion_percentage"`
		Status               Status `json:"status"`

		Items []ItemRollup `json:"items,omitempty"`
	}

	// ModuleRollup mirrors SectionRollup one level up.
	ModuleRollup struct {
		ModuleID         string      `json:"module_id"`
		Title            string      `json:"title"`
		CourseOfferingID null.String `json:"course_offering_id"`

		TotalContentItems      int `json:"total_content_items"`
		CompletedContentItems  int `json:"completed_content_items"`
		CompletedStudentsCount int `json:"completed_students_count"`
		CohortSize             int `json:"cohort_size"`

		ProgressPercentage   int    `json:"progress_percentage"`
		CompletionPercentage int    `json:"completion_percentage"`
		Status               Status `json:"status"`

		// OverdueAssignmentsCount sums, over every cohort member and every
		// overdue-candidate assignment in the module, the (student, item)
		// pairs the student has not completed.
		OverdueAssignmentsCount int `json:"overdue_assignments_count"`

		Sections []SectionRollup `json:"sections,omitempty"`
	}

	// CohortStats summarizes cohort completion across the dashboard's modules.
	CohortStats struct {
		AverageCompletionPercentage int `json:"average_completion_percentage"`
		ModulesCompleted            int `json:"modules_completed"`
		ModulesInProgress           int `json:"modules_in_progress"`
		ModulesNotStarted           int `json:"modules_not_started"`
	}

	// StudentStats is one cohort member's cross-module summary. Students with
	// zero progress rows are present with zero counts and a null LastActivityAt.
	StudentStats struct {
		StudentID                 string    `json:"student_id"`
		CompletedModules          int       `json:"completed_modules"`
		TotalModules              int       `json:"total_modules"`
		AverageProgressPercentage int       `json:"average_progress_percentage"`
		LastActivityAt            null.Time `json:"last_activity_at"`
	}

	DashboardResult struct {
		Modules []ModuleRollup `json:"modules"`
		// CohortStats and Students are only computed for non-student callers.
		CohortStats *CohortStats   `json:"cohort_stats,omitempty"`
		Students    []StudentStats `json:"students,omitempty"`
	}

	// FilteredModule is a module overview enriched with course metadata.
	FilteredModule struct {
		ModuleRollup
		CourseName string `json:"course_name"`
		CourseCode string `json:"course_code"`
	}

	// ModulesSummary is recomputed over the filtered set, not the unfiltered one.
	ModulesSummary struct {
		TotalModules            int `json:"total_modules"`
		ModulesCompleted        int `json:"modules_completed"`
		ModulesInProgress       int `json:"modules_in_progress"`
		ModulesNotStarted       int `json:"modules_not_started"`
		OverdueAssignmentsCount int `json:"overdue_assignments_count"`
		CompletedContentItems   int `json:"completed_content_items"`
		TotalContentItems       int `json:"total_content_items"`
		AverageProgress         int `json:"average_progress"`
	}

	FilteredModules struct {
		Modules []FilteredModule `json:"modules"`
		Summary ModulesSummary   `json:"summary"`
	}
)
