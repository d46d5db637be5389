package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestia/gestia/internal/cache"
	"github.com/gestia/gestia/internal/domain/user"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) user.Repository {
	return &userRepository{db: db, logger: logger, cache: cache}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, name, role,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :email, :name, :role,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				WithReportableDetails(map[string]any{"email": u.Email}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	cacheKey := cache.GenerateKey(cache.PrefixUser, types.GetTenantID(ctx), id)
	if cached, found := r.cache.Get(ctx, cacheKey); found {
		if u, ok := cached.(*user.User); ok {
			return u, nil
		}
	}

	query := `
		SELECT id, email, name, role,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM users
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var u user.User
	err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("user not found").
				WithHintf("User with ID %s was not found", id).
				WithReportableDetails(map[string]any{"user_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cacheKey, &u, cache.DefaultExpiration)
	return &u, nil
}

// GetByEmail is not tenant-scoped: login resolves the account before
// any tenant is known, and emails are unique across tenants
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, name, role,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM users
		WHERE email = $1 AND status != 'deleted'`

	var u user.User
	err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("user not found").
				WithHintf("User with email %s was not found", email).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}

	return &u, nil
}

func (r *userRepository) List(ctx context.Context, filter types.Filter) ([]*user.User, error) {
	orderBy := orderByClause(filter, map[string]bool{
		"created_at": true,
		"email":      true,
		"name":       true,
		"role":       true,
	}, "created_at DESC")

	query := `
		SELECT id, email, name, role,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM users
		WHERE tenant_id = $1 AND status = $2
		ORDER BY ` + orderBy + `
		LIMIT $3 OFFSET $4`

	users := make([]*user.User, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &users, query,
		types.GetTenantID(ctx), filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND status = 'published'`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx)); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count users").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE users SET
			email = :email, name = :name, role = :role,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("user not found").
			WithHintf("User with ID %s was not found", u.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixUser, u.TenantID, u.ID))
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET status = 'deleted', updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id, types.GetTenantID(ctx), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete user").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("user not found").
			WithHintf("User with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixUser, types.GetTenantID(ctx), id))
	return nil
}
