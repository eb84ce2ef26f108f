package course

import (
	"context"
	"errors"
	"sort"
)

var (
	// errors
	ErrNotFound = errors.New("module not found")
)

type (
	// Repository abstracts the content hierarchy store. It returns raw rows;
	// publish gating and ordering are the Service's responsibility so that
	// every adapter behaves identically.
	Repository interface {
		GetModuleByID(ctx context.Context, id string) (Module, error)
		QuerySectionsByModuleID(ctx context.Context, moduleID string) ([]Section, error)
		QueryContentItemsBySectionIDs(ctx context.Context, sectionIDs ...string) ([]ContentItem, error)
		// QueryLiveModules returns modules attached to the given course
		// offerings (all live offerings when none is given). Template modules
		// (null offering) are never live.
		QueryLiveModules(ctx context.Context, offeringIDs ...string) ([]Module, error)
	}

	// LookupRepository abstracts the course metadata store; used only for
	// presentation enrichment.
	LookupRepository interface {
		CourseInfoByOfferingIDs(ctx context.Context, offeringIDs ...string) (map[string]CourseInfo, error)
	}

	Service struct {
		repo   Repository
		lookup LookupRepository
	}
)

func NewService(repo Repository, lookup LookupRepository) *Service {
	return &Service{repo: repo, lookup: lookup}
}

// LoadPublished loads the module tree keeping only sections and content items
// with a non-null PublishedAt; each level is gated independently. A module
// whose own PublishedAt is null predates publishing semantics and is still
// loadable by ID. Sections and items are sorted ascending by Order with ties
// broken by insertion order; this ordering drives UI numbering and must hold.
func (svc *Service) LoadPublished(ctx context.Context, moduleID string) (Module, error) {
	mod, err := svc.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return Module{}, err
	}

	sections, err := svc.repo.QuerySectionsByModuleID(ctx, moduleID)
	if err != nil {
		return Module{}, err
	}

	published := make([]Section, 0, len(sections))
	secIDs := make([]string, 0, len(sections))
	for _, sec := range sections {
		if sec.PublishedAt.Valid {
			published = append(published, sec)
			secIDs = append(secIDs, sec.ID)
		}
	}
	sort.SliceStable(published, func(i, j int) bool { return published[i].Order < published[j].Order })

	if len(secIDs) > 0 {
		items, err := svc.repo.QueryContentItemsBySectionIDs(ctx, secIDs...)
		if err != nil {
			return Module{}, err
		}
		bySection := make(map[string][]ContentItem, len(secIDs))
		for _, item := range items {
			if item.PublishedAt.Valid {
				bySection[item.SectionID] = append(bySection[item.SectionID], item)
			}
		}
		for i := range published {
			secItems := bySection[published[i].ID]
			sort.SliceStable(secItems, func(a, b int) bool { return secItems[a].Order < secItems[b].Order })
			published[i].Items = secItems
		}
	}

	mod.Sections = published
	return mod, nil
}

// LiveModules lists published modules attached to the given offerings
// (all live offerings when none is given).
func (svc *Service) LiveModules(ctx context.Context, offeringIDs ...string) ([]Module, error) {
	return svc.repo.QueryLiveModules(ctx, offeringIDs...)
}

// CourseInfo fetches course metadata for the given offerings, keyed by offering id.
func (svc *Service) CourseInfo(ctx context.Context, offeringIDs ...string) (map[string]CourseInfo, error) {
	if len(offeringIDs) == 0 {
		return map[string]CourseInfo{}, nil
	}
	return svc.lookup.CourseInfoByOfferingIDs(ctx, offeringIDs...)
}
