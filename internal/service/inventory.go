package service

import (
	"context"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/inventory"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

type InventoryService interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetItem(ctx context.Context, id string) (*dto.ItemResponse, error)
	ListItems(ctx context.Context, filter inventory.ItemFilter) (*dto.ListItemsResponse, error)
	UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	DeleteItem(ctx context.Context, id string) error

	RecordMovement(ctx context.Context, itemID string, req dto.CreateMovementRequest) (*dto.MovementResponse, error)
	ListMovements(ctx context.Context, itemID string, filter types.Filter) (*dto.ListMovementsResponse, error)
	ListLowStock(ctx context.Context) (*dto.ListItemsResponse, error)
}

type inventoryService struct {
	repo   inventory.Repository
	db     TxRunner
	logger *logger.Logger
}

func NewInventoryService(repo inventory.Repository, db TxRunner, logger *logger.Logger) InventoryService {
	return &inventoryService{repo: repo, db: db, logger: logger}
}

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := req.ToItem(ctx)
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return dto.NewItemResponse(item), nil
}

func (s *inventoryService) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

func (s *inventoryService) ListItems(ctx context.Context, filter inventory.ItemFilter) (*dto.ListItemsResponse, error) {
	if filter.Limit == 0 {
		filter.Filter = types.GetDefaultFilter()
	}

	items, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListItemsResponse{
		Items:  make([]*dto.ItemResponse, len(items)),
		Total:  len(items),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}
	for i, item := range items {
		response.Items[i] = dto.NewItemResponse(item)
	}

	return response, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		item.SKU = *req.SKU
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.MinimumStock != nil {
		item.MinimumStock = *req.MinimumStock
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return dto.NewItemResponse(item), nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string) error {
	return s.repo.DeleteItem(ctx, id)
}

// RecordMovement applies a stock movement inside one transaction: the
// movement row and the resulting stock level land together or not at
// all. The stock arithmetic lives in the repository as one atomic
// statement; this layer never reads the level and writes it back.
func (s *inventoryService) RecordMovement(ctx context.Context, itemID string, req dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := req.ToMovement(ctx, itemID)

	var newStock decimal.Decimal
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		newStock, err = s.repo.ApplyMovement(ctx, m)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("applied stock movement",
		"item_id", itemID,
		"type", m.Type,
		"stock", newStock)

	return dto.NewMovementResponse(m), nil
}

func (s *inventoryService) ListMovements(ctx context.Context, itemID string, filter types.Filter) (*dto.ListMovementsResponse, error) {
	if filter.Limit == 0 {
		filter = types.GetDefaultFilter()
	}

	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	movements, err := s.repo.ListMovements(ctx, itemID, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListMovementsResponse{
		Movements: make([]*dto.MovementResponse, len(movements)),
		Total:     len(movements),
		Offset:    filter.Offset,
		Limit:     filter.Limit,
	}
	for i, m := range movements {
		response.Movements[i] = dto.NewMovementResponse(m)
	}

	return response, nil
}

func (s *inventoryService) ListLowStock(ctx context.Context) (*dto.ListItemsResponse, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.ListItemsResponse{
		Items: make([]*dto.ItemResponse, len(items)),
		Total: len(items),
	}
	for i, item := range items {
		response.Items[i] = dto.NewItemResponse(item)
	}

	return response, nil
}
