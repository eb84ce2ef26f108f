package progress

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/maendeleo/backend/core/course"
)

// GetDashboard composes one ModuleRollup per module relevant to the caller:
// a student sees the modules of offerings they are actively enrolled in, a
// mentor the modules of offerings owning their sections, an admin every live
// module; all optionally narrowed by scope. Per-module computations are
// independent and fanned out under a bounded concurrency limit; the join is
// all-or-nothing so a store failure never yields partial statistics.
func (svc *service) GetDashboard(ctx context.Context, callerID string, role Role, scope Scope) (DashboardResult, error) {
	if err := scope.Validate(); err != nil {
		return DashboardResult{}, err
	}

	cohort, err := svc.strategyFor(callerID, role).Resolve(ctx, scope)
	if err != nil {
		return DashboardResult{}, err
	}

	modules, err := svc.relevantModules(ctx, callerID, role, scope)
	if err != nil {
		return DashboardResult{}, err
	}

	results, err := svc.fanOutRollups(ctx, modules, cohort, viewerFor(callerID, role))
	if err != nil {
		return DashboardResult{}, err
	}

	dash := DashboardResult{Modules: make([]ModuleRollup, 0, len(results))}
	for _, res := range results {
		dash.Modules = append(dash.Modules, res.rollup)
	}
	if role != RoleStudent {
		dash.CohortStats = composeCohortStats(results)
		dash.Students = composeStudentStats(results, cohort)
	}
	return dash, nil
}

// relevantModules resolves the caller's module set. Callers whose offering
// set resolves empty get no modules; only the admin enumeration may span all
// live offerings.
func (svc *service) relevantModules(ctx context.Context, callerID string, role Role, scope Scope) ([]course.Module, error) {
	switch role {
	case RoleStudent:
		offerings, err := svc.enrollRepo.ActiveOfferingIDsForStudent(ctx, callerID)
		if err != nil {
			return nil, err
		}
		return svc.liveModulesScoped(ctx, offerings, scope)
	case RoleMentor:
		offerings, err := svc.sectionRepo.OfferingIDsForMentor(ctx, callerID)
		if err != nil {
			return nil, err
		}
		return svc.liveModulesScoped(ctx, offerings, scope)
	case RoleAdmin:
		if scope.CourseOfferingID.Valid {
			return svc.courseSvc.LiveModules(ctx, scope.CourseOfferingID.String)
		}
		return svc.courseSvc.LiveModules(ctx)
	default:
		return nil, nil
	}
}

func (svc *service) liveModulesScoped(ctx context.Context, offerings []string, scope Scope) ([]course.Module, error) {
	if scope.CourseOfferingID.Valid {
		offerings = intersectOne(offerings, scope.CourseOfferingID.String)
	}
	if len(offerings) == 0 {
		return nil, nil
	}
	return svc.courseSvc.LiveModules(ctx, offerings...)
}

// fanOutRollups loads and rolls up every module concurrently, bounded by
// config, and joins before returning. Cancellation propagates through gctx;
// nothing is persisted so abandoning in-flight work is safe.
func (svc *service) fanOutRollups(ctx context.Context, modules []course.Module, cohort []string, viewerID string) ([]moduleRollupResult, error) {
	results := make([]moduleRollupResult, len(modules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(svc.maxConcurrency(len(modules)))

	for i, mod := range modules {
		i, mod := i, mod
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			tree, err := svc.courseSvc.LoadPublished(gctx, mod.ID)
			if err != nil {
				return err
			}
			rows, err := svc.progressRows(gctx, tree, cohort)
			if err != nil {
				return err
			}
			results[i] = rollupModule(tree, rows, cohort, viewerID, svc.now())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (svc *service) maxConcurrency(moduleCount int) int {
	maxConc := svc.conf.Progress.DashboardConcurrency
	if maxConc < 1 {
		maxConc = 1
	}
	if moduleCount > 0 && moduleCount < maxConc {
		maxConc = moduleCount
	}
	return maxConc
}

// composeCohortStats aggregates cohort-axis completion across modules. A
// module is completed by the cohort iff its cohort-level percentage is 100,
// untouched iff no cohort member completed it end to end.
func composeCohortStats(results []moduleRollupResult) *CohortStats {
	stats := &CohortStats{}
	var pctSum int
	for _, res := range results {
		pctSum += res.rollup.CompletionPercentage
		switch {
		case res.rollup.CompletionPercentage == 100:
			stats.ModulesCompleted++
		case res.rollup.CompletedStudentsCount == 0:
			stats.ModulesNotStarted++
		default:
			stats.ModulesInProgress++
		}
	}
	stats.AverageCompletionPercentage = meanPct(pctSum, len(results))
	return stats
}

// composeStudentStats derives each cohort member's cross-module summary.
// Students with zero progress rows stay in the list with zero counts and a
// null last-activity timestamp.
func composeStudentStats(results []moduleRollupResult, cohort []string) []StudentStats {
	stats := make([]StudentStats, 0, len(cohort))
	for _, sid := range cohort {
		st := StudentStats{StudentID: sid, TotalModules: len(results)}
		var pctSum int
		for _, res := range results {
			completed := res.completedBy[sid]
			total := res.rollup.TotalContentItems
			if total > 0 && completed == total {
				st.CompletedModules++
			}
			pctSum += roundPct(completed, total)
			if ts, ok := res.lastAccessBy[sid]; ok {
				if !st.LastActivityAt.Valid || ts.After(st.LastActivityAt.Time) {
					st.LastActivityAt.SetValid(ts)
				}
			}
		}
		st.AverageProgressPercentage = meanPct(pctSum, len(results))
		stats = append(stats, st)
	}
	return stats
}

func intersectOne(ids []string, keep string) []string {
	for _, id := range ids {
		if id == keep {
			return []string{keep}
		}
	}
	return nil
}
