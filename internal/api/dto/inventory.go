package dto

import (
	"context"

	"github.com/gestia/gestia/internal/domain/inventory"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	SKU          string          `json:"sku" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Unit         string          `json:"unit" validate:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

type UpdateItemRequest struct {
	SKU          *string          `json:"sku,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	MinimumStock *decimal.Decimal `json:"minimum_stock,omitempty"`
}

type CreateMovementRequest struct {
	Type      string          `json:"type" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

type ItemResponse struct {
	*inventory.Item
}

type ListItemsResponse struct {
	Items  []*ItemResponse `json:"items"`
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

type MovementResponse struct {
	*inventory.Movement
}

type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Total     int                 `json:"total"`
	Offset    int                 `json:"offset"`
	Limit     int                 `json:"limit"`
}

func (r *CreateItemRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.UnitCost.IsNegative() || r.UnitPrice.IsNegative() ||
		r.InitialStock.IsNegative() || r.MinimumStock.IsNegative() {
		return ierr.NewError("negative amount").
			WithHint("Cost, price and stock values must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateItemRequest) ToItem(ctx context.Context) *inventory.Item {
	return &inventory.Item{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVENTORY_ITEM),
		SKU:          r.SKU,
		Name:         r.Name,
		Unit:         r.Unit,
		UnitCost:     r.UnitCost,
		UnitPrice:    r.UnitPrice,
		Stock:        r.InitialStock,
		MinimumStock: r.MinimumStock,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateMovementRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := types.MovementType(r.Type).Validate(); err != nil {
		return err
	}
	if types.MovementType(r.Type) != types.MovementTypeAdjust && !r.Quantity.IsPositive() {
		return ierr.NewError("invalid quantity").
			WithHint("Movement quantity must be positive").
			Mark(ierr.ErrValidation)
	}
	if r.Quantity.IsNegative() {
		return ierr.NewError("invalid quantity").
			WithHint("Adjustment quantity must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateMovementRequest) ToMovement(ctx context.Context, itemID string) *inventory.Movement {
	return &inventory.Movement{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STOCK_MOVEMENT),
		ItemID:    itemID,
		Type:      types.MovementType(r.Type),
		Quantity:  r.Quantity,
		Reference: r.Reference,
		Notes:     r.Notes,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func NewItemResponse(item *inventory.Item) *ItemResponse {
	return &ItemResponse{Item: item}
}

func NewMovementResponse(m *inventory.Movement) *MovementResponse {
	return &MovementResponse{Movement: m}
}
