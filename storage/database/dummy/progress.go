package dummydb

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) BatchByItems(_ context.Context, itemIDs, studentIDs []string) ([]progress.ContentProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	items, students := toSet(itemIDs), toSet(studentIDs)
	var rows []progress.ContentProgress
	for _, row := range repo.db.rows {
		if _, ok := items[row.ContentItemID]; !ok {
			continue
		}
		if _, ok := students[row.StudentID]; !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (repo *progressRepository) BatchByModules(_ context.Context, moduleIDs, studentIDs []string) ([]progress.ContentProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	modules, students := toSet(moduleIDs), toSet(studentIDs)
	var rows []progress.ContentProgress
	for _, row := range repo.db.rows {
		if _, ok := modules[row.ModuleID]; !ok {
			continue
		}
		if _, ok := students[row.StudentID]; !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type enrollmentRepository struct {
	db *DB
}

var _ progress.EnrollmentRepository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) progress.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func activeEnrollment(enr progress.Enrollment) bool {
	return enr.Status == progress.EnrollmentEnrolled || enr.Status == progress.EnrollmentCompleted
}

func (repo *enrollmentRepository) ActiveStudentIDs(_ context.Context, offeringID null.String) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var ids []string
	for _, enr := range repo.db.enrolls {
		if !activeEnrollment(enr) {
			continue
		}
		if offeringID.Valid && enr.CourseOfferingID != offeringID.String {
			continue
		}
		ids = append(ids, enr.StudentID)
	}
	return ids, nil
}

func (repo *enrollmentRepository) ActiveOfferingIDsForStudent(_ context.Context, studentID string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var ids []string
	for _, enr := range repo.db.enrolls {
		if enr.StudentID == studentID && activeEnrollment(enr) {
			ids = append(ids, enr.CourseOfferingID)
		}
	}
	return ids, nil
}

type courseSectionRepository struct {
	db *DB
}

var _ progress.CourseSectionRepository = (*courseSectionRepository)(nil) // interface compliance check

func NewCourseSectionRepository(db *DB) progress.CourseSectionRepository {
	return &courseSectionRepository{db: db}
}

func (repo *courseSectionRepository) mentorOfferings(mentorID string) map[string]struct{} {
	offerings := make(map[string]struct{})
	for _, cs := range repo.db.courseSec {
		if cs.MentorID == mentorID {
			offerings[cs.CourseOfferingID] = struct{}{}
		}
	}
	return offerings
}

func (repo *courseSectionRepository) ActiveStudentIDsForMentor(_ context.Context, mentorID string, offeringID null.String) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	offerings := repo.mentorOfferings(mentorID)
	var ids []string
	for _, enr := range repo.db.enrolls {
		if !activeEnrollment(enr) {
			continue
		}
		if _, ok := offerings[enr.CourseOfferingID]; !ok {
			continue
		}
		if offeringID.Valid && enr.CourseOfferingID != offeringID.String {
			continue
		}
		ids = append(ids, enr.StudentID)
	}
	return ids, nil
}

func (repo *courseSectionRepository) OfferingIDsForMentor(_ context.Context, mentorID string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var ids []string
	for offering := range repo.mentorOfferings(mentorID) {
		ids = append(ids, offering)
	}
	return ids, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
