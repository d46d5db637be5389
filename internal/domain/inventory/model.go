package inventory

import (
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// Item is a stock-tracked inventory item
type Item struct {
	// ID is the unique identifier of the item
	ID string `db:"id" json:"id"`

	// SKU is the stock-keeping unit, unique per tenant
	SKU string `db:"sku" json:"sku"`

	Name string `db:"name" json:"name"`
	Unit string `db:"unit" json:"unit"`

	UnitCost  decimal.Decimal `db:"unit_cost" json:"unit_cost"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`

	// Stock is the current on-hand quantity. It is mutated only through
	// movements applied inside a transaction.
	Stock decimal.Decimal `db:"stock" json:"stock"`

	// MinimumStock is the reorder threshold used by the low-stock report
	MinimumStock decimal.Decimal `db:"minimum_stock" json:"minimum_stock"`

	types.BaseModel
}

// Movement is one stock in/out/adjust entry against an item
type Movement struct {
	// ID is the unique identifier of the movement
	ID string `db:"id" json:"id"`

	// ItemID references the item the movement applies to
	ItemID string `db:"item_id" json:"item_id"`

	Type types.MovementType `db:"type" json:"type"`

	// Quantity is always positive; Type carries the direction. For
	// adjustments it is the absolute stock level to set.
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// Reference is a free-form pointer to the originating document
	Reference string `db:"reference" json:"reference"`

	Notes string `db:"notes" json:"notes"`

	types.BaseModel
}
