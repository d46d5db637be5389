package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestia/gestia/internal/domain/inventory"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

type inventoryRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInventoryRepository(db *postgres.DB, logger *logger.Logger) inventory.Repository {
	return &inventoryRepository{db: db, logger: logger}
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		INSERT INTO inventory_items (
			id, sku, name, unit, unit_cost, unit_price, stock, minimum_stock,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :sku, :name, :unit, :unit_cost, :unit_price, :stock, :minimum_stock,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, item); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An item with this SKU already exists").
				WithReportableDetails(map[string]any{"sku": item.SKU}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create inventory item").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, id string) (*inventory.Item, error) {
	query := `
		SELECT id, sku, name, unit, unit_cost, unit_price, stock, minimum_stock,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM inventory_items
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var item inventory.Item
	err := r.db.GetQuerier(ctx).GetContext(ctx, &item, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("inventory item not found").
				WithHintf("Item with ID %s was not found", id).
				WithReportableDetails(map[string]any{"item_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get inventory item").
			Mark(ierr.ErrDatabase)
	}

	return &item, nil
}

func (r *inventoryRepository) ListItems(ctx context.Context, filter inventory.ItemFilter) ([]*inventory.Item, error) {
	orderBy := orderByClause(filter.Filter, map[string]bool{
		"created_at": true,
		"sku":        true,
		"name":       true,
		"stock":      true,
	}, "created_at DESC")

	query := `
		SELECT id, sku, name, unit, unit_cost, unit_price, stock, minimum_stock,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM inventory_items
		WHERE tenant_id = $1 AND status = $2
			AND ($3 = '' OR sku ILIKE '%' || $3 || '%' OR name ILIKE '%' || $3 || '%')
		ORDER BY ` + orderBy + `
		LIMIT $4 OFFSET $5`

	items := make([]*inventory.Item, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, query,
		types.GetTenantID(ctx), filter.Status, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list inventory items").
			Mark(ierr.ErrDatabase)
	}

	return items, nil
}

func (r *inventoryRepository) CountItems(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM inventory_items WHERE tenant_id = $1 AND status = 'published'`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx)); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count inventory items").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *inventory.Item) error {
	item.UpdatedAt = time.Now().UTC()
	item.UpdatedBy = types.GetUserID(ctx)

	// stock is deliberately absent: it moves only through ApplyMovement
	query := `
		UPDATE inventory_items SET
			sku = :sku, name = :name, unit = :unit, unit_cost = :unit_cost,
			unit_price = :unit_price, minimum_stock = :minimum_stock,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, item)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An item with this SKU already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update inventory item").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("inventory item not found").
			WithHintf("Item with ID %s was not found", item.ID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id string) error {
	query := `
		UPDATE inventory_items
		SET status = 'deleted', updated_at = CURRENT_TIMESTAMP, updated_by = $3
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id, types.GetTenantID(ctx), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete inventory item").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("inventory item not found").
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

// ApplyMovement applies the movement's stock effect with a single
// UPDATE ... RETURNING statement and records the movement row in the
// same ambient transaction. The arithmetic happens in the database, so
// the item row is the sole serialization point: concurrent movements
// each act on the committed level, and an out movement that would
// overdraw the stock matches no row instead of going negative.
func (r *inventoryRepository) ApplyMovement(ctx context.Context, m *inventory.Movement) (decimal.Decimal, error) {
	var updateQuery string
	switch m.Type {
	case types.MovementTypeIn:
		updateQuery = `
			UPDATE inventory_items
			SET stock = stock + $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
			WHERE id = $3 AND tenant_id = $4 AND status = 'published'
			RETURNING stock`
	case types.MovementTypeOut:
		updateQuery = `
			UPDATE inventory_items
			SET stock = stock - $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
			WHERE id = $3 AND tenant_id = $4 AND status = 'published'
				AND stock >= $1
			RETURNING stock`
	case types.MovementTypeAdjust:
		updateQuery = `
			UPDATE inventory_items
			SET stock = $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
			WHERE id = $3 AND tenant_id = $4 AND status = 'published'
			RETURNING stock`
	default:
		return decimal.Zero, ierr.NewErrorf("invalid movement type %s", m.Type).
			Mark(ierr.ErrValidation)
	}

	var stock decimal.Decimal
	err := r.db.GetQuerier(ctx).QueryRowContext(ctx, updateQuery,
		m.Quantity, types.GetUserID(ctx), m.ItemID, types.GetTenantID(ctx)).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			// No row matched: either the item does not exist or an out
			// movement would overdraw the stock.
			item, gerr := r.GetItem(ctx, m.ItemID)
			if gerr != nil {
				return decimal.Zero, gerr
			}
			return decimal.Zero, ierr.NewError("insufficient stock").
				WithHintf("Item %s has %s on hand, cannot remove %s", item.SKU, item.Stock, m.Quantity).
				WithReportableDetails(map[string]any{
					"item_id":   m.ItemID,
					"stock":     item.Stock,
					"requested": m.Quantity,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to update stock level").
			Mark(ierr.ErrDatabase)
	}

	insertQuery := `
		INSERT INTO stock_movements (
			id, item_id, type, quantity, reference, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :item_id, :type, :quantity, :reference, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, insertQuery, m); err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to record stock movement").
			Mark(ierr.ErrDatabase)
	}

	return stock, nil
}

func (r *inventoryRepository) ListMovements(ctx context.Context, itemID string, filter types.Filter) ([]*inventory.Movement, error) {
	orderBy := orderByClause(filter, map[string]bool{
		"created_at": true,
		"quantity":   true,
		"type":       true,
	}, "created_at DESC")

	query := `
		SELECT id, item_id, type, quantity, reference, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM stock_movements
		WHERE tenant_id = $1 AND item_id = $2
		ORDER BY ` + orderBy + `
		LIMIT $3 OFFSET $4`

	movements := make([]*inventory.Movement, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &movements, query,
		types.GetTenantID(ctx), itemID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list stock movements").
			Mark(ierr.ErrDatabase)
	}

	return movements, nil
}

func (r *inventoryRepository) ListLowStock(ctx context.Context) ([]*inventory.Item, error) {
	query := `
		SELECT id, sku, name, unit, unit_cost, unit_price, stock, minimum_stock,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM inventory_items
		WHERE tenant_id = $1 AND status = 'published' AND stock <= minimum_stock
		ORDER BY stock ASC`

	items := make([]*inventory.Item, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, query, types.GetTenantID(ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list low-stock items").
			Mark(ierr.ErrDatabase)
	}

	return items, nil
}
