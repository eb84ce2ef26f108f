package progress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maendeleo/backend/core"
	"github.com/maendeleo/backend/core/course"
)

var (
	// errors
	ErrInvalidScope = errors.New("invalid scope filter")
)

type (
	// Repository abstracts the progress-record store. Both reads must run as
	// bounded batch queries; cohorts run in the hundreds and trees in the
	// dozens, one query per pair does not survive that.
	Repository interface {
		BatchByItems(ctx context.Context, itemIDs, studentIDs []string) ([]ContentProgress, error)
		BatchByModules(ctx context.Context, moduleIDs, studentIDs []string) ([]ContentProgress, error)
	}

	// Service is the progress-aggregation engine. All operations are
	// read-only and idempotent: results change only when progress rows
	// change or now crosses a due-date+grace boundary.
	//
	// For mentor and admin callers an absent scope deliberately resolves the
	// full cohort; ErrInvalidScope is reserved for malformed scopes.
	Service interface {
		GetModuleOverview(ctx context.Context, moduleID, callerID string, role Role, scope Scope) (ModuleRollup, error)
		GetModuleDetail(ctx context.Context, moduleID, callerID string, role Role, scope Scope) (ModuleRollup, error)
		GetDashboard(ctx context.Context, callerID string, role Role, scope Scope) (DashboardResult, error)
		GetMyModules(ctx context.Context, callerID string, role Role, filter QueryFilter) (FilteredModules, error)
	}

	service struct {
		logger      core.Logger
		conf        *core.Config
		repo        Repository
		enrollRepo  EnrollmentRepository
		sectionRepo CourseSectionRepository
		courseSvc   *course.Service
		now         func() time.Time
	}
)

var _ Service = (*service)(nil)

func NewService(
	logger core.Logger,
	conf *core.Config,
	repo Repository,
	enrollRepo EnrollmentRepository,
	sectionRepo CourseSectionRepository,
	courseSvc *course.Service,
) Service {
	return &service{
		logger:      logger,
		conf:        conf,
		repo:        repo,
		enrollRepo:  enrollRepo,
		sectionRepo: sectionRepo,
		courseSvc:   courseSvc,
		now:         time.Now,
	}
}

// Validate rejects a malformed scope; an absent one is always valid.
func (s Scope) Validate() error {
	if s.CourseOfferingID.Valid {
		if _, err := uuid.Parse(s.CourseOfferingID.String); err != nil {
			return ErrInvalidScope
		}
	}
	return nil
}

func (svc *service) GetModuleOverview(ctx context.Context, moduleID, callerID string, role Role, scope Scope) (ModuleRollup, error) {
	res, err := svc.computeModule(ctx, moduleID, callerID, role, scope)
	if err != nil {
		return ModuleRollup{}, err
	}
	res.rollup.Sections = nil
	return res.rollup, nil
}

func (svc *service) GetModuleDetail(ctx context.Context, moduleID, callerID string, role Role, scope Scope) (ModuleRollup, error) {
	res, err := svc.computeModule(ctx, moduleID, callerID, role, scope)
	if err != nil {
		return ModuleRollup{}, err
	}
	return res.rollup, nil
}

// computeModule resolves the cohort, loads the published tree and the cohort's
// progress rows, and rolls the module up. An empty cohort yields a
// zero-content rollup, not an error; a missing module is course.ErrNotFound.
func (svc *service) computeModule(ctx context.Context, moduleID, callerID string, role Role, scope Scope) (moduleRollupResult, error) {
	if err := scope.Validate(); err != nil {
		return moduleRollupResult{}, err
	}

	cohort, err := svc.strategyFor(callerID, role).Resolve(ctx, scope)
	if err != nil {
		return moduleRollupResult{}, err
	}

	mod, err := svc.courseSvc.LoadPublished(ctx, moduleID)
	if err != nil {
		return moduleRollupResult{}, err
	}

	rows, err := svc.progressRows(ctx, mod, cohort)
	if err != nil {
		return moduleRollupResult{}, err
	}

	return rollupModule(mod, rows, cohort, viewerFor(callerID, role), svc.now()), nil
}

func (svc *service) progressRows(ctx context.Context, mod course.Module, cohort []string) ([]ContentProgress, error) {
	items := mod.PublishedItems()
	if len(items) == 0 || len(cohort) == 0 {
		return nil, nil
	}
	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	return svc.repo.BatchByItems(ctx, itemIDs, cohort)
}

// viewerFor selects the single viewing student for viewer-axis fields.
func viewerFor(callerID string, role Role) string {
	if role == RoleStudent {
		return callerID
	}
	return ""
}
