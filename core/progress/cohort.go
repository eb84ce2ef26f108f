package progress

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"
)

type (
	// EnrollmentRepository abstracts the enrollment store. Only enrollments
	// with status enrolled or completed count.
	EnrollmentRepository interface {
		ActiveStudentIDs(ctx context.Context, offeringID null.String) ([]string, error)
		ActiveOfferingIDsForStudent(ctx context.Context, studentID string) ([]string, error)
	}

	// CourseSectionRepository abstracts the course-section store, used to
	// scope a mentor's cohort and module list to sections they own.
	CourseSectionRepository interface {
		ActiveStudentIDsForMentor(ctx context.Context, mentorID string, offeringID null.String) ([]string, error)
		OfferingIDsForMentor(ctx context.Context, mentorID string) ([]string, error)
	}

	// CohortStrategy resolves the set of student ids visible to a caller.
	// An empty cohort is a valid result, never an error.
	CohortStrategy interface {
		Resolve(ctx context.Context, scope Scope) ([]string, error)
	}
)

// selfStrategy carries no scope state at all: a student's cohort is always
// exactly themself, whatever scope filter the request supplied.
type selfStrategy struct {
	studentID string
}

func (s selfStrategy) Resolve(context.Context, Scope) ([]string, error) {
	return []string{s.studentID}, nil
}

type mentorStrategy struct {
	mentorID string
	sections CourseSectionRepository
}

func (s mentorStrategy) Resolve(ctx context.Context, scope Scope) ([]string, error) {
	ids, err := s.sections.ActiveStudentIDsForMentor(ctx, s.mentorID, scope.CourseOfferingID)
	if err != nil {
		return nil, err
	}
	return dedupeSorted(ids), nil
}

type adminStrategy struct {
	enrollments EnrollmentRepository
}

func (s adminStrategy) Resolve(ctx context.Context, scope Scope) ([]string, error) {
	ids, err := s.enrollments.ActiveStudentIDs(ctx, scope.CourseOfferingID)
	if err != nil {
		return nil, err
	}
	return dedupeSorted(ids), nil
}

// emptyStrategy backs any unknown role.
type emptyStrategy struct{}

func (emptyStrategy) Resolve(context.Context, Scope) ([]string, error) {
	return []string{}, nil
}

func (svc *service) strategyFor(callerID string, role Role) CohortStrategy {
	switch role {
	case RoleStudent:
		return selfStrategy{studentID: callerID}
	case RoleMentor:
		return mentorStrategy{mentorID: callerID, sections: svc.sectionRepo}
	case RoleAdmin:
		return adminStrategy{enrollments: svc.enrollRepo}
	default:
		return emptyStrategy{}
	}
}

func dedupeSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
