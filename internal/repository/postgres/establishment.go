package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestia/gestia/internal/cache"
	"github.com/gestia/gestia/internal/domain/establishment"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/types"
)

type establishmentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewEstablishmentRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) establishment.Repository {
	return &establishmentRepository{db: db, logger: logger, cache: cache}
}

func (r *establishmentRepository) Create(ctx context.Context, e *establishment.Establishment) error {
	query := `
		INSERT INTO establishments (
			id, code, name, trade_name, tax_id, address, city, phone, email,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :code, :name, :trade_name, :tax_id, :address, :city, :phone, :email,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, e); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An establishment with this code already exists").
				WithReportableDetails(map[string]any{"code": e.Code}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create establishment").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *establishmentRepository) Get(ctx context.Context, id string) (*establishment.Establishment, error) {
	cacheKey := cache.GenerateKey(cache.PrefixEstablishment, types.GetTenantID(ctx), id)
	if cached, found := r.cache.Get(ctx, cacheKey); found {
		if e, ok := cached.(*establishment.Establishment); ok {
			return e, nil
		}
	}

	query := `
		SELECT id, code, name, trade_name, tax_id, address, city, phone, email,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM establishments
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var e establishment.Establishment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &e, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("establishment not found").
				WithHintf("Establishment with ID %s was not found", id).
				WithReportableDetails(map[string]any{"establishment_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get establishment").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cacheKey, &e, cache.DefaultExpiration)
	return &e, nil
}

func (r *establishmentRepository) List(ctx context.Context, filter types.Filter) ([]*establishment.Establishment, error) {
	orderBy := orderByClause(filter, map[string]bool{
		"created_at": true,
		"name":       true,
		"code":       true,
		"city":       true,
	}, "created_at DESC")

	query := `
		SELECT id, code, name, trade_name, tax_id, address, city, phone, email,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM establishments
		WHERE tenant_id = $1 AND status = $2
		ORDER BY ` + orderBy + `
		LIMIT $3 OFFSET $4`

	establishments := make([]*establishment.Establishment, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &establishments, query,
		types.GetTenantID(ctx), filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list establishments").
			Mark(ierr.ErrDatabase)
	}

	return establishments, nil
}

func (r *establishmentRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM establishments WHERE tenant_id = $1 AND status = 'published'`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx)); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count establishments").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *establishmentRepository) Update(ctx context.Context, e *establishment.Establishment) error {
	e.UpdatedAt = time.Now().UTC()
	e.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE establishments SET
			code = :code, name = :name, trade_name = :trade_name, tax_id = :tax_id,
			address = :address, city = :city, phone = :phone, email = :email,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, e)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An establishment with this code already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update establishment").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("establishment not found").
			WithHintf("Establishment with ID %s was not found", e.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixEstablishment, e.TenantID, e.ID))
	return nil
}

func (r *establishmentRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE establishments
		SET status = 'deleted', updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id, types.GetTenantID(ctx), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete establishment").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("establishment not found").
			WithHintf("Establishment with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixEstablishment, types.GetTenantID(ctx), id))
	return nil
}
