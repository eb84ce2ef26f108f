package progress

import (
	"context"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core"
)

// QueryFilter narrows the "my modules" view. Status matches the caller's
// viewer-axis module status; Search is a case-insensitive substring match on
// the module title.
type QueryFilter struct {
	Status           Status      `json:"status" validate:"omitempty,progressstatus"`
	Search           string      `json:"search"`
	CourseOfferingID null.String `json:"course_offering_id"`
}

func (f QueryFilter) scope() Scope {
	return Scope{CourseOfferingID: f.CourseOfferingID}
}

// GetMyModules composes the caller's dashboard, applies the filter, enriches
// each module with course metadata and recomputes the summary over the
// filtered set only.
func (svc *service) GetMyModules(ctx context.Context, callerID string, role Role, filter QueryFilter) (FilteredModules, error) {
	if err := filter.Validate(); err != nil {
		return FilteredModules{}, err
	}

	dash, err := svc.GetDashboard(ctx, callerID, role, filter.scope())
	if err != nil {
		return FilteredModules{}, err
	}

	mods := filterModules(dash, filter)

	offeringIDs := make([]string, 0, len(mods))
	for _, m := range mods {
		if m.CourseOfferingID.Valid {
			offeringIDs = append(offeringIDs, m.CourseOfferingID.String)
		}
	}
	infos, err := svc.courseSvc.CourseInfo(ctx, dedupeSorted(offeringIDs)...)
	if err != nil {
		return FilteredModules{}, err
	}
	for i := range mods {
		if mods[i].CourseOfferingID.Valid {
			info := infos[mods[i].CourseOfferingID.String]
			mods[i].CourseName = info.Name
			mods[i].CourseCode = info.Code
		}
	}

	return FilteredModules{Modules: mods, Summary: summarize(mods)}, nil
}

func filterModules(dash DashboardResult, filter QueryFilter) []FilteredModule {
	search := core.CleanString(filter.Search, true)
	mods := make([]FilteredModule, 0, len(dash.Modules))
	for _, m := range dash.Modules {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}
		m.Sections = nil
		mods = append(mods, FilteredModule{ModuleRollup: m})
	}
	return mods
}

func summarize(mods []FilteredModule) ModulesSummary {
	sum := ModulesSummary{TotalModules: len(mods)}
	var pctSum int
	for _, m := range mods {
		switch m.Status {
		case StatusCompleted:
			sum.ModulesCompleted++
		case StatusInProgress:
			sum.ModulesInProgress++
		default:
			sum.ModulesNotStarted++
		}
		sum.OverdueAssignmentsCount += m.OverdueAssignmentsCount
		sum.CompletedContentItems += m.CompletedContentItems
		sum.TotalContentItems += m.TotalContentItems
		pctSum += m.ProgressPercentage
	}
	sum.AverageProgress = meanPct(pctSum, len(mods))
	return sum
}
