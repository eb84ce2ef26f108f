package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/progress"
)

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ progress.EnrollmentRepository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo enrollmentRepository) ActiveStudentIDs(ctx context.Context, offeringID null.String) ([]string, error) {
	q := `SELECT DISTINCT student_id FROM enrollment WHERE status IN ($1, $2)`
	args := []interface{}{progress.EnrollmentEnrolled, progress.EnrollmentCompleted}
	if offeringID.Valid {
		q += ` AND course_offering_id = $3`
		args = append(args, offeringID.String)
	}
	var ids []string
	if err := repo.db.SelectContext(ctx, &ids, q, args...); err != nil {
		return nil, trapConnErr(err, "querying active students")
	}
	return ids, nil
}

func (repo enrollmentRepository) ActiveOfferingIDsForStudent(ctx context.Context, studentID string) ([]string, error) {
	q := `SELECT DISTINCT course_offering_id FROM enrollment
		WHERE student_id = $1 AND status IN ($2, $3)`
	var ids []string
	if err := repo.db.SelectContext(ctx, &ids, q, studentID, progress.EnrollmentEnrolled, progress.EnrollmentCompleted); err != nil {
		return nil, trapConnErr(err, "querying student offerings")
	}
	return ids, nil
}

type courseSectionRepository struct {
	db *sqlx.DB
}

var _ progress.CourseSectionRepository = (*courseSectionRepository)(nil) // interface compliance check

func NewCourseSectionRepository(db *sqlx.DB) *courseSectionRepository {
	return &courseSectionRepository{db: db}
}

// ActiveStudentIDsForMentor scopes the cohort to students actively enrolled
// in offerings having a course section owned by the mentor.
func (repo courseSectionRepository) ActiveStudentIDsForMentor(ctx context.Context, mentorID string, offeringID null.String) ([]string, error) {
	q := `SELECT DISTINCT e.student_id
		FROM enrollment e
		JOIN course_section cs ON cs.course_offering_id = e.course_offering_id
		WHERE cs.mentor_id = $1 AND e.status IN ($2, $3)`
	args := []interface{}{mentorID, progress.EnrollmentEnrolled, progress.EnrollmentCompleted}
	if offeringID.Valid {
		q += ` AND e.course_offering_id = $4`
		args = append(args, offeringID.String)
	}
	var ids []string
	if err := repo.db.SelectContext(ctx, &ids, q, args...); err != nil {
		return nil, trapConnErr(err, "querying mentor cohort")
	}
	return ids, nil
}

func (repo courseSectionRepository) OfferingIDsForMentor(ctx context.Context, mentorID string) ([]string, error) {
	q := `SELECT DISTINCT course_offering_id FROM course_section WHERE mentor_id = $1`
	var ids []string
	if err := repo.db.SelectContext(ctx, &ids, q, mentorID); err != nil {
		return nil, trapConnErr(err, "querying mentor offerings")
	}
	return ids, nil
}
