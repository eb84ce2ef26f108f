package dummydb

import (
	"context"

	"github.com/maendeleo/backend/core/course"
)

type hierarchyRepository struct {
	db *DB
}

var _ course.Repository = (*hierarchyRepository)(nil) // interface compliance check

func NewHierarchyRepository(db *DB) course.Repository {
	return &hierarchyRepository{db: db}
}

func (repo *hierarchyRepository) GetModuleByID(_ context.Context, id string) (course.Module, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, mod := range repo.db.modules {
		if mod.ID == id {
			mod.Sections = nil
			return mod, nil
		}
	}
	return course.Module{}, course.ErrNotFound
}

func (repo *hierarchyRepository) QuerySectionsByModuleID(_ context.Context, moduleID string) ([]course.Section, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var sections []course.Section
	for _, sec := range repo.db.sections {
		if sec.ModuleID == moduleID {
			sec.Items = nil
			sections = append(sections, sec)
		}
	}
	return sections, nil
}

func (repo *hierarchyRepository) QueryContentItemsBySectionIDs(_ context.Context, sectionIDs ...string) ([]course.ContentItem, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wanted := make(map[string]struct{}, len(sectionIDs))
	for _, id := range sectionIDs {
		wanted[id] = struct{}{}
	}
	var items []course.ContentItem
	for _, item := range repo.db.items {
		if _, ok := wanted[item.SectionID]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (repo *hierarchyRepository) QueryLiveModules(_ context.Context, offeringIDs ...string) ([]course.Module, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wanted := make(map[string]struct{}, len(offeringIDs))
	for _, id := range offeringIDs {
		wanted[id] = struct{}{}
	}
	var modules []course.Module
	for _, mod := range repo.db.modules {
		if !mod.PublishedAt.Valid || !mod.CourseOfferingID.Valid {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[mod.CourseOfferingID.String]; !ok {
				continue
			}
		}
		mod.Sections = nil
		modules = append(modules, mod)
	}
	return modules, nil
}

type lookupRepository struct {
	db *DB
}

var _ course.LookupRepository = (*lookupRepository)(nil) // interface compliance check

func NewLookupRepository(db *DB) course.LookupRepository {
	return &lookupRepository{db: db}
}

func (repo *lookupRepository) CourseInfoByOfferingIDs(_ context.Context, offeringIDs ...string) (map[string]course.CourseInfo, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wanted := make(map[string]struct{}, len(offeringIDs))
	for _, id := range offeringIDs {
		wanted[id] = struct{}{}
	}
	infos := make(map[string]course.CourseInfo)
	for _, info := range repo.db.offerings {
		if _, ok := wanted[info.OfferingID]; ok {
			infos[info.OfferingID] = info
		}
	}
	return infos, nil
}
