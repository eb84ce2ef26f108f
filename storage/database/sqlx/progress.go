package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/progress"
)

type contentProgressRow struct {
	StudentID      string          `db:"student_id"`
	ContentItemID  string          `db:"content_item_id"`
	ModuleID       string          `db:"module_id"`
	Status         progress.Status `db:"status"`
	CompletedAt    null.Time       `db:"completed_at"`
	LastAccessedAt null.Time       `db:"last_accessed_at"`
}

func (r contentProgressRow) domain() progress.ContentProgress {
	return progress.ContentProgress{
		StudentID:      r.StudentID,
		ContentItemID:  r.ContentItemID,
		ModuleID:       r.ModuleID,
		Status:         r.Status,
		CompletedAt:    r.CompletedAt,
		LastAccessedAt: r.LastAccessedAt,
	}
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

const progressCols = `student_id, content_item_id, module_id, status, completed_at, last_accessed_at`

func (repo progressRepository) batch(ctx context.Context, query string, keyIDs, studentIDs []string) ([]progress.ContentProgress, error) {
	if len(keyIDs) == 0 || len(studentIDs) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(query, keyIDs, studentIDs)
	if err != nil {
		return nil, errors.Wrap(err, "binding progress batch query")
	}
	var rows []contentProgressRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, trapConnErr(err, "querying progress rows")
	}
	recs := make([]progress.ContentProgress, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, row.domain())
	}
	return recs, nil
}

// BatchByItems fetches the cohort's rows for a set of content items in a
// single query. Missing (student, item) pairs mean NOT_STARTED; no
// placeholder rows are synthesized.
func (repo progressRepository) BatchByItems(ctx context.Context, itemIDs, studentIDs []string) ([]progress.ContentProgress, error) {
	q := `SELECT ` + progressCols + ` FROM content_progress
		WHERE content_item_id IN (?) AND student_id IN (?)`
	return repo.batch(ctx, q, itemIDs, studentIDs)
}

// BatchByModules fetches the cohort's rows for whole modules via the
// denormalized module id.
func (repo progressRepository) BatchByModules(ctx context.Context, moduleIDs, studentIDs []string) ([]progress.ContentProgress, error) {
	q := `SELECT ` + progressCols + ` FROM content_progress
		WHERE module_id IN (?) AND student_id IN (?)`
	return repo.batch(ctx, q, moduleIDs, studentIDs)
}
