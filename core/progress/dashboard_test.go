package progress_test

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/course"
	"github.com/maendeleo/backend/core/progress"
	dummydb "github.com/maendeleo/backend/storage/database/dummy"
	testutil "github.com/maendeleo/backend/tests"
)

// seedSecondModule adds a published single-lesson module in off2 and a
// student enrolled there with no progress at all.
func seedSecondModule(t *testing.T, db *dummydb.DB) {
	t.Helper()
	testutil.CreateModule(t, db, "m2", "Advanced Statistics", off2, true)
	testutil.CreateSection(t, db, "s2", "m2", "Week 1", 1, true)
	testutil.CreateContentItem(t, db, "i3", "s2", "Sampling", 1, course.ContentTypeLesson, true)
	testutil.Enroll(t, db, "st3", off2, progress.EnrollmentEnrolled)
}

func Test_service_GetDashboard_admin(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	db := testutil.PrepareDB(t)
	seedScenario(t, db, now)
	seedSecondModule(t, db)
	svc := newTestService(t, db, now)

	dash, err := svc.GetDashboard(ctx, "adm1", progress.RoleAdmin, progress.Scope{})
	if err != nil {
		t.Fatalf("GetDashboard() failed: %v", err)
	}

	if len(dash.Modules) != 2 {
		t.Fatalf("len(Modules) = %d, want 2", len(dash.Modules))
	}
	m1, m2 := dash.Modules[0], dash.Modules[1]
	if m1.ModuleID != "m1" || m2.ModuleID != "m2" {
		t.Fatalf("module order = %s, %s, want m1, m2", m1.ModuleID, m2.ModuleID)
	}
	if m1.CohortSize != 3 || m1.CompletedStudentsCount != 1 || m1.CompletionPercentage != 33 {
		t.Errorf("m1 cohort axis = %d of %d (%d%%), want 1 of 3 (33%%)", m1.CompletedStudentsCount, m1.CohortSize, m1.CompletionPercentage)
	}
	if m2.CompletedStudentsCount != 0 || m2.CompletionPercentage != 0 {
		t.Errorf("m2 cohort axis = %d (%d%%), want zeroes", m2.CompletedStudentsCount, m2.CompletionPercentage)
	}

	if dash.CohortStats == nil {
		t.Fatal("CohortStats missing for admin caller")
	}
	stats := dash.CohortStats
	if stats.ModulesCompleted != 0 || stats.ModulesInProgress != 1 || stats.ModulesNotStarted != 1 {
		t.Errorf("module classification = %d/%d/%d, want 0 completed, 1 in progress, 1 not started",
			stats.ModulesCompleted, stats.ModulesInProgress, stats.ModulesNotStarted)
	}
	if stats.AverageCompletionPercentage != 17 {
		t.Errorf("AverageCompletionPercentage = %d, want 17", stats.AverageCompletionPercentage)
	}

	if len(dash.Students) != 3 {
		t.Fatalf("len(Students) = %d, want 3", len(dash.Students))
	}
	st1, st2, st3 := dash.Students[0], dash.Students[1], dash.Students[2]
	if st1.StudentID != "st1" || st1.CompletedModules != 1 || st1.AverageProgressPercentage != 50 {
		t.Errorf("st1 = %+v, want 1 completed module, 50%% average", st1)
	}
	if !st1.LastActivityAt.Valid || !st1.LastActivityAt.Time.Equal(now.Add(-36*time.Hour)) {
		t.Errorf("st1.LastActivityAt = %v, want %v", st1.LastActivityAt, now.Add(-36*time.Hour))
	}
	if st2.CompletedModules != 0 || st2.AverageProgressPercentage != 25 {
		t.Errorf("st2 = %+v, want 0 completed modules, 25%% average", st2)
	}
	// zero-row students stay in the list with a null last activity
	if st3.StudentID != "st3" || st3.TotalModules != 2 || st3.AverageProgressPercentage != 0 {
		t.Errorf("st3 = %+v, want 2 total modules, 0%% average", st3)
	}
	if st3.LastActivityAt.Valid {
		t.Errorf("st3.LastActivityAt = %v, want null", st3.LastActivityAt)
	}
}

func Test_service_GetDashboard_student(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	db := testutil.PrepareDB(t)
	seedScenario(t, db, now)
	seedSecondModule(t, db)
	svc := newTestService(t, db, now)

	dash, err := svc.GetDashboard(ctx, "st2", progress.RoleStudent, progress.Scope{})
	if err != nil {
		t.Fatalf("GetDashboard() failed: %v", err)
	}

	// only modules of the student's own offerings
	if len(dash.Modules) != 1 || dash.Modules[0].ModuleID != "m1" {
		t.Fatalf("Modules = %+v, want [m1]", dash.Modules)
	}
	if dash.CohortStats != nil || dash.Students != nil {
		t.Error("cohort statistics leaked to a student caller")
	}
	m1 := dash.Modules[0]
	if m1.CompletedContentItems != 1 || m1.ProgressPercentage != 50 || m1.Status != progress.StatusInProgress {
		t.Errorf("viewer axis = %d (%d%%, %s), want 1 (50%%, %s)", m1.CompletedContentItems, m1.ProgressPercentage, m1.Status, progress.StatusInProgress)
	}
}

func Test_service_GetDashboard_mentorScoped(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	db := testutil.PrepareDB(t)
	seedScenario(t, db, now)
	seedSecondModule(t, db)
	testutil.CreateCourseSection(t, db, "cs1", "mt1", off1)
	svc := newTestService(t, db, now)

	// a mentor scoped to an offering they own sees its modules
	dash, err := svc.GetDashboard(ctx, "mt1", progress.RoleMentor, progress.Scope{CourseOfferingID: null.StringFrom(off1)})
	if err != nil {
		t.Fatalf("GetDashboard() failed: %v", err)
	}
	if len(dash.Modules) != 1 || dash.Modules[0].ModuleID != "m1" {
		t.Fatalf("Modules = %+v, want [m1]", dash.Modules)
	}
	if dash.CohortStats == nil || len(dash.Students) != 2 {
		t.Errorf("mentor stats = %+v / %d students, want stats and 2 students", dash.CohortStats, len(dash.Students))
	}

	// scoping to a foreign offering never widens visibility
	dash, err = svc.GetDashboard(ctx, "mt1", progress.RoleMentor, progress.Scope{CourseOfferingID: null.StringFrom(off2)})
	if err != nil {
		t.Fatalf("GetDashboard() failed: %v", err)
	}
	if len(dash.Modules) != 0 || len(dash.Students) != 0 {
		t.Errorf("foreign scope = %d modules, %d students, want none", len(dash.Modules), len(dash.Students))
	}
}

func Test_service_GetDashboard_invalidScope(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	db := testutil.PrepareDB(t)
	svc := newTestService(t, db, now)

	scope := progress.Scope{CourseOfferingID: null.StringFrom("lol")}
	if _, err := svc.GetDashboard(ctx, "adm1", progress.RoleAdmin, scope); err != progress.ErrInvalidScope {
		t.Errorf("GetDashboard() error = %v, want %v", err, progress.ErrInvalidScope)
	}
}

func Test_service_GetDashboard_manyModules(t *testing.T) {
	now := time.Date(2021, 5, 10, 12, 0, 0, 0, time.UTC)
	db := testutil.PrepareDB(t)
	testutil.Enroll(t, db, "st1", off1, progress.EnrollmentEnrolled)
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		testutil.CreateModule(t, db, "mod-"+id, "Module "+id, off1, true)
	}
	svc := newTestService(t, db, now)

	// fan-out stays bounded and joins every module exactly once
	dash, err := svc.GetDashboard(ctx, "adm1", progress.RoleAdmin, progress.Scope{})
	if err != nil {
		t.Fatalf("GetDashboard() failed: %v", err)
	}
	if len(dash.Modules) != 20 {
		t.Fatalf("len(Modules) = %d, want 20", len(dash.Modules))
	}
	for i, mod := range dash.Modules {
		id := "mod-" + string(rune('a'+i))
		if mod.ModuleID != id {
			t.Errorf("Modules[%d] = %s, want %s", i, mod.ModuleID, id)
		}
	}
}
