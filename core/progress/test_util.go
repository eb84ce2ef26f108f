package progress

import (
	"time"

	"github.com/maendeleo/backend/core"
	"github.com/maendeleo/backend/core/course"
)

type serviceMock struct {
	service
}

// NewServiceMock returns a Service whose clock is pinned to now.
func NewServiceMock(
	logger core.Logger,
	conf *core.Config,
	repo Repository,
	enrollRepo EnrollmentRepository,
	sectionRepo CourseSectionRepository,
	courseSvc *course.Service,
	now time.Time,
) Service {
	return &serviceMock{
		service: service{
			logger:      logger,
			conf:        conf,
			repo:        repo,
			enrollRepo:  enrollRepo,
			sectionRepo: sectionRepo,
			courseSvc:   courseSvc,
			now:         func() time.Time { return now },
		},
	}
}
