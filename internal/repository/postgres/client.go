package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestia/gestia/internal/cache"
	"github.com/gestia/gestia/internal/domain/client"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/types"
)

type clientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) client.Repository {
	return &clientRepository{db: db, logger: logger, cache: cache}
}

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (
			id, document_type, document_number, name, trade_name, address, phone, email, credit_days,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :document_type, :document_number, :name, :trade_name, :address, :phone, :email, :credit_days,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A client with this document number already exists").
				WithReportableDetails(map[string]any{"document_number": c.DocumentNumber}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	cacheKey := cache.GenerateKey(cache.PrefixClient, types.GetTenantID(ctx), id)
	if cached, found := r.cache.Get(ctx, cacheKey); found {
		if c, ok := cached.(*client.Client); ok {
			return c, nil
		}
	}

	query := `
		SELECT id, document_type, document_number, name, trade_name, address, phone, email, credit_days,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM clients
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var c client.Client
	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("client not found").
				WithHintf("Client with ID %s was not found", id).
				WithReportableDetails(map[string]any{"client_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get client").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cacheKey, &c, cache.DefaultExpiration)
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	orderBy := orderByClause(filter.Filter, map[string]bool{
		"created_at":      true,
		"name":            true,
		"document_number": true,
		"credit_days":     true,
	}, "created_at DESC")

	query := `
		SELECT id, document_type, document_number, name, trade_name, address, phone, email, credit_days,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM clients
		WHERE tenant_id = $1 AND status = $2
			AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR document_number ILIKE '%' || $3 || '%')
		ORDER BY ` + orderBy + `
		LIMIT $4 OFFSET $5`

	clients := make([]*client.Client, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &clients, query,
		types.GetTenantID(ctx), filter.Status, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list clients").
			Mark(ierr.ErrDatabase)
	}

	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM clients WHERE tenant_id = $1 AND status = 'published'`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx)); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count clients").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE clients SET
			document_type = :document_type, document_number = :document_number,
			name = :name, trade_name = :trade_name, address = :address,
			phone = :phone, email = :email, credit_days = :credit_days,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A client with this document number already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("client not found").
			WithHintf("Client with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixClient, c.TenantID, c.ID))
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE clients
		SET status = 'deleted', updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id, types.GetTenantID(ctx), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete client").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("client not found").
			WithHintf("Client with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixClient, types.GetTenantID(ctx), id))
	return nil
}
