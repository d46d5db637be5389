package inventory

import (
	"context"

	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for inventory persistence operations
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]*Item, error)
	CountItems(ctx context.Context) (int, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id string) error

	// ApplyMovement records the movement and applies its stock effect
	// in a single atomic statement, so concurrent movements against the
	// same item never act on a stale level. An out movement that would
	// drive the stock negative fails with ErrInvalidOperation and
	// leaves the item untouched. Returns the resulting stock level.
	ApplyMovement(ctx context.Context, m *Movement) (decimal.Decimal, error)
	ListMovements(ctx context.Context, itemID string, filter types.Filter) ([]*Movement, error)

	// ListLowStock returns published items whose stock is at or below
	// their minimum
	ListLowStock(ctx context.Context) ([]*Item, error)
}

// ItemFilter narrows item listings; Search matches SKU or name
type ItemFilter struct {
	types.Filter
	Search string `form:"search"`
}
