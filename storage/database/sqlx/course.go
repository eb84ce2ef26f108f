package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/course"
)

type (
	moduleRow struct {
		ID               string      `db:"id"`
		Title            string      `db:"title"`
		CourseOfferingID null.String `db:"course_offering_id"`
		PublishedAt      null.Time   `db:"published_at"`
	}

	sectionRow struct {
		ID          string    `db:"id"`
		ModuleID    string    `db:"module_id"`
		Title       string    `db:"title"`
		OrderIndex  int       `db:"order_index"`
		PublishedAt null.Time `db:"published_at"`
	}

	contentItemRow struct {
		ID                  string    `db:"id"`
		SectionID           string    `db:"section_id"`
		Title               string    `db:"title"`
		OrderIndex          int       `db:"order_index"`
		PublishedAt         null.Time `db:"published_at"`
		ContentType         string    `db:"content_type"`
		DueDate             null.Time `db:"due_date"`
		GracePeriodMinutes  null.Int  `db:"grace_period_minutes"`
		AllowLateSubmission bool      `db:"allow_late_submission"`
	}

	courseInfoRow struct {
		OfferingID string `db:"offering_id"`
		Name       string `db:"course_name"`
		Code       string `db:"course_code"`
	}
)

func (r moduleRow) domain() course.Module {
	return course.Module{
		ID:               r.ID,
		Title:            r.Title,
		CourseOfferingID: r.CourseOfferingID,
		PublishedAt:      r.PublishedAt,
	}
}

func (r sectionRow) domain() course.Section {
	return course.Section{
		ID:          r.ID,
		ModuleID:    r.ModuleID,
		Title:       r.Title,
		Order:       r.OrderIndex,
		PublishedAt: r.PublishedAt,
	}
}

func (r contentItemRow) domain() course.ContentItem {
	return course.ContentItem{
		ID:                  r.ID,
		SectionID:           r.SectionID,
		Title:               r.Title,
		Order:               r.OrderIndex,
		PublishedAt:         r.PublishedAt,
		ContentType:         r.ContentType,
		DueDate:             r.DueDate,
		GracePeriodMinutes:  r.GracePeriodMinutes,
		AllowLateSubmission: r.AllowLateSubmission,
	}
}

type hierarchyRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*hierarchyRepository)(nil) // interface compliance check

func NewHierarchyRepository(db *sqlx.DB) *hierarchyRepository {
	return &hierarchyRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to course.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return trapConnErr(err, msg)
}

func (repo hierarchyRepository) GetModuleByID(ctx context.Context, id string) (course.Module, error) {
	var row moduleRow
	q := `SELECT id, title, course_offering_id, published_at FROM module WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return course.Module{}, trapNoRowsErr(err, "getting module")
	}
	return row.domain(), nil
}

func (repo hierarchyRepository) QuerySectionsByModuleID(ctx context.Context, moduleID string) ([]course.Section, error) {
	var rows []sectionRow
	q := `SELECT id, module_id, title, order_index, published_at
		FROM module_section WHERE module_id = $1
		ORDER BY order_index, created_at`
	if err := repo.db.SelectContext(ctx, &rows, q, moduleID); err != nil {
		return nil, trapConnErr(err, "querying module sections")
	}
	sections := make([]course.Section, 0, len(rows))
	for _, row := range rows {
		sections = append(sections, row.domain())
	}
	return sections, nil
}

func (repo hierarchyRepository) QueryContentItemsBySectionIDs(ctx context.Context, sectionIDs ...string) ([]course.ContentItem, error) {
	if len(sectionIDs) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(
		`SELECT id, section_id, title, order_index, published_at, content_type,
			due_date, grace_period_minutes, allow_late_submission
		FROM content_item WHERE section_id IN (?)
		ORDER BY order_index, created_at`,
		sectionIDs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "binding content item query")
	}
	var rows []contentItemRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, trapConnErr(err, "querying content items")
	}
	items := make([]course.ContentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.domain())
	}
	return items, nil
}

func (repo hierarchyRepository) QueryLiveModules(ctx context.Context, offeringIDs ...string) ([]course.Module, error) {
	q := `SELECT id, title, course_offering_id, published_at
		FROM module
		WHERE published_at IS NOT NULL AND course_offering_id IS NOT NULL`
	var args []interface{}
	if len(offeringIDs) > 0 {
		inQ, inArgs, err := sqlx.In(q+` AND course_offering_id IN (?)`, offeringIDs)
		if err != nil {
			return nil, errors.Wrap(err, "binding live module query")
		}
		q, args = repo.db.Rebind(inQ), inArgs
	}
	q += ` ORDER BY created_at`

	var rows []moduleRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, trapConnErr(err, "querying live modules")
	}
	modules := make([]course.Module, 0, len(rows))
	for _, row := range rows {
		modules = append(modules, row.domain())
	}
	return modules, nil
}

type lookupRepository struct {
	db *sqlx.DB
}

var _ course.LookupRepository = (*lookupRepository)(nil) // interface compliance check

func NewLookupRepository(db *sqlx.DB) *lookupRepository {
	return &lookupRepository{db: db}
}

func (repo lookupRepository) CourseInfoByOfferingIDs(ctx context.Context, offeringIDs ...string) (map[string]course.CourseInfo, error) {
	if len(offeringIDs) == 0 {
		return map[string]course.CourseInfo{}, nil
	}
	q, args, err := sqlx.In(
		`SELECT id AS offering_id, course_name, course_code FROM course_offering WHERE id IN (?)`,
		offeringIDs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "binding course info query")
	}
	var rows []courseInfoRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, trapConnErr(err, "querying course info")
	}
	infos := make(map[string]course.CourseInfo, len(rows))
	for _, row := range rows {
		infos[row.OfferingID] = course.CourseInfo{OfferingID: row.OfferingID, Name: row.Name, Code: row.Code}
	}
	return infos, nil
}
