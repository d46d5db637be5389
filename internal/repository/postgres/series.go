package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/types"
)

// seriesRepository deliberately does not cache reads: the correlative
// must always come from the store.
type seriesRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSeriesRepository(db *postgres.DB, logger *logger.Logger) series.Repository {
	return &seriesRepository{db: db, logger: logger}
}

func (r *seriesRepository) Create(ctx context.Context, s *series.Series) error {
	query := `
		INSERT INTO document_series (
			id, establishment_id, document_type, code, current_correlative, is_default,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :establishment_id, :document_type, :code, :current_correlative, :is_default,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Series %s already exists for this establishment and document type", s.Code).
				WithReportableDetails(map[string]any{
					"establishment_id": s.EstablishmentID,
					"document_type":    s.DocumentType,
					"code":             s.Code,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create series").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *seriesRepository) Get(ctx context.Context, id string) (*series.Series, error) {
	query := `
		SELECT id, establishment_id, document_type, code, current_correlative, is_default,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM document_series
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var s series.Series
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("series not found").
				WithHintf("Series with ID %s was not found", id).
				WithReportableDetails(map[string]any{"series_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get series").
			Mark(ierr.ErrDatabase)
	}

	return &s, nil
}

func (r *seriesRepository) List(ctx context.Context, filter series.Filter) ([]*series.Series, error) {
	orderBy := orderByClause(filter.Filter, map[string]bool{
		"code":                true,
		"created_at":          true,
		"current_correlative": true,
	}, "code ASC")

	query := `
		SELECT id, establishment_id, document_type, code, current_correlative, is_default,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM document_series
		WHERE tenant_id = $1 AND status = $2
			AND ($3 = '' OR establishment_id = $3)
			AND ($4 = '' OR document_type = $4)
		ORDER BY ` + orderBy + `
		LIMIT $5 OFFSET $6`

	result := make([]*series.Series, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &result, query,
		types.GetTenantID(ctx), filter.Status,
		filter.EstablishmentID, string(filter.DocumentType),
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list series").
			Mark(ierr.ErrDatabase)
	}

	return result, nil
}

func (r *seriesRepository) Update(ctx context.Context, s *series.Series) error {
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)

	// current_correlative is deliberately absent: the allocator is its
	// only writer once the series exists
	query := `
		UPDATE document_series SET
			code = :code, is_default = :is_default, status = :status,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Series %s already exists for this establishment and document type", s.Code).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update series").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("series not found").
			WithHintf("Series with ID %s was not found", s.ID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *seriesRepository) Delete(ctx context.Context, id string) error {
	// A series that has issued documents is kept for audit stability
	query := `
		UPDATE document_series
		SET status = 'deleted', updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted' AND current_correlative = 0`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id, types.GetTenantID(ctx), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete series").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing series from one that already issued documents
		if _, gerr := r.Get(ctx, id); gerr != nil {
			return gerr
		}
		return ierr.NewError("series has issued documents").
			WithHint("A series that has issued documents cannot be deleted").
			WithReportableDetails(map[string]any{"series_id": id}).
			Mark(ierr.ErrInvalidOperation)
	}

	return nil
}

// NextCorrelative advances the series correlative by exactly one and
// returns the consumed sequence. The increment and the reads of the new
// value and series code happen in a single UPDATE ... RETURNING
// statement, so the database row is the sole serialization point:
// concurrent callers each observe a distinct sequence and a failed call
// leaves the stored value untouched.
func (r *seriesRepository) NextCorrelative(ctx context.Context, id string) (int64, string, error) {
	query := `
		UPDATE document_series
		SET current_correlative = current_correlative + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND tenant_id = $2 AND status = 'published'
			AND current_correlative < $3
		RETURNING current_correlative, code`

	var (
		sequence int64
		code     string
	)
	err := r.db.GetQuerier(ctx).QueryRowContext(ctx, query,
		id, types.GetTenantID(ctx), int64(types.MaxCorrelative)).Scan(&sequence, &code)
	if err != nil {
		if err == sql.ErrNoRows {
			// No row matched: either the series does not exist or its
			// correlative would overflow the fixed number width.
			s, gerr := r.Get(ctx, id)
			if gerr != nil {
				return 0, "", gerr
			}
			if s.CurrentCorrelative >= int64(types.MaxCorrelative) {
				return 0, "", ierr.NewError("series correlative exhausted").
					WithHintf("Series %s has reached the maximum correlative %d", s.Code, types.MaxCorrelative).
					WithReportableDetails(map[string]any{
						"series_id":           id,
						"current_correlative": s.CurrentCorrelative,
					}).
					Mark(ierr.ErrInvalidOperation)
			}
			return 0, "", ierr.NewError("series not available for allocation").
				WithHintf("Series %s is not active", s.Code).
				Mark(ierr.ErrInvalidOperation)
		}
		return 0, "", ierr.WithError(err).
			WithHint("Document number allocation failed, please retry").
			WithReportableDetails(map[string]any{"series_id": id}).
			Mark(ierr.ErrDatabase)
	}

	r.logger.Infow("allocated document correlative",
		"series_id", id,
		"code", code,
		"sequence", sequence)

	return sequence, code, nil
}

func (r *seriesRepository) ClearDefault(ctx context.Context, establishmentID string, docType types.DocumentType) error {
	query := `
		UPDATE document_series
		SET is_default = false, updated_at = CURRENT_TIMESTAMP
		WHERE tenant_id = $1 AND establishment_id = $2 AND document_type = $3 AND is_default`

	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		types.GetTenantID(ctx), establishmentID, string(docType)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to clear default series").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *seriesRepository) CountByEstablishment(ctx context.Context, establishmentID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM document_series
		WHERE tenant_id = $1 AND establishment_id = $2 AND status != 'deleted'`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query,
		types.GetTenantID(ctx), establishmentID); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count series").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
