package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestia/gestia/internal/domain/asset"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/types"
)

type assetRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAssetRepository(db *postgres.DB, logger *logger.Logger) asset.Repository {
	return &assetRepository{db: db, logger: logger}
}

func (r *assetRepository) Create(ctx context.Context, a *asset.Asset) error {
	query := `
		INSERT INTO assets (
			id, code, name, category, establishment_id, acquisition_date, acquisition_cost,
			residual_value, useful_life_months, state,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :code, :name, :category, :establishment_id, :acquisition_date, :acquisition_cost,
			:residual_value, :useful_life_months, :state,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An asset with this code already exists").
				WithReportableDetails(map[string]any{"code": a.Code}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create asset").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *assetRepository) Get(ctx context.Context, id string) (*asset.Asset, error) {
	query := `
		SELECT id, code, name, category, establishment_id, acquisition_date, acquisition_cost,
			residual_value, useful_life_months, state,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM assets
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var a asset.Asset
	err := r.db.GetQuerier(ctx).GetContext(ctx, &a, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("asset not found").
				WithHintf("Asset with ID %s was not found", id).
				WithReportableDetails(map[string]any{"asset_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get asset").
			Mark(ierr.ErrDatabase)
	}

	return &a, nil
}

func (r *assetRepository) List(ctx context.Context, filter asset.Filter) ([]*asset.Asset, error) {
	orderBy := orderByClause(filter.Filter, map[string]bool{
		"created_at":       true,
		"name":             true,
		"code":             true,
		"category":         true,
		"acquisition_date": true,
	}, "created_at DESC")

	query := `
		SELECT id, code, name, category, establishment_id, acquisition_date, acquisition_cost,
			residual_value, useful_life_months, state,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM assets
		WHERE tenant_id = $1 AND status = $2
			AND ($3 = '' OR establishment_id = $3)
			AND ($4 = '' OR category = $4)
			AND ($5 = '' OR state = $5)
		ORDER BY ` + orderBy + `
		LIMIT $6 OFFSET $7`

	assets := make([]*asset.Asset, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &assets, query,
		types.GetTenantID(ctx), filter.Status,
		filter.EstablishmentID, filter.Category, string(filter.State),
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list assets").
			Mark(ierr.ErrDatabase)
	}

	return assets, nil
}

func (r *assetRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM assets WHERE tenant_id = $1 AND status = 'published'`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx)); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count assets").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *assetRepository) Update(ctx context.Context, a *asset.Asset) error {
	a.UpdatedAt = time.Now().UTC()
	a.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE assets SET
			code = :code, name = :name, category = :category,
			establishment_id = :establishment_id, acquisition_date = :acquisition_date,
			acquisition_cost = :acquisition_cost, residual_value = :residual_value,
			useful_life_months = :useful_life_months, state = :state,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An asset with this code already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update asset").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("asset not found").
			WithHintf("Asset with ID %s was not found", a.ID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *assetRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE assets
		SET status = 'deleted', updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id, types.GetTenantID(ctx), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete asset").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("asset not found").
			WithHintf("Asset with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	return nil
}
