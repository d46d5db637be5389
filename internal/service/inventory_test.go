package service

import (
	"sync"
	"testing"

	"github.com/gestia/gestia/internal/api/dto"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InventoryServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InventoryService
	repo    *testutil.InMemoryInventoryStore
}

func TestInventoryService(t *testing.T) {
	suite.Run(t, new(InventoryServiceSuite))
}

func (s *InventoryServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.repo = s.GetStores().InventoryRepo.(*testutil.InMemoryInventoryStore)
	s.service = NewInventoryService(s.repo, s.GetDB(), s.GetLogger())
}

func (s *InventoryServiceSuite) createItem(sku string, stock, minimum int64) *dto.ItemResponse {
	resp, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:          sku,
		Name:         "Item " + sku,
		Unit:         "unit",
		UnitCost:     decimal.NewFromInt(10),
		UnitPrice:    decimal.NewFromInt(15),
		InitialStock: decimal.NewFromInt(stock),
		MinimumStock: decimal.NewFromInt(minimum),
	})
	s.NoError(err)
	return resp
}

func (s *InventoryServiceSuite) TestCreateItem() {
	resp := s.createItem("SKU-001", 20, 5)
	s.Equal("SKU-001", resp.SKU)
	s.True(resp.Stock.Equal(decimal.NewFromInt(20)))

	got, err := s.service.GetItem(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.ID, got.ID)
}

func (s *InventoryServiceSuite) TestCreateItemDuplicateSKU() {
	s.createItem("SKU-001", 0, 0)

	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:  "SKU-001",
		Name: "Duplicate",
		Unit: "unit",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *InventoryServiceSuite) TestCreateItemNegativeValues() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:      "SKU-002",
		Name:     "Bad",
		Unit:     "unit",
		UnitCost: decimal.NewFromInt(-1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InventoryServiceSuite) TestUpdateItem() {
	item := s.createItem("SKU-001", 10, 2)

	updated, err := s.service.UpdateItem(s.GetContext(), item.ID, dto.UpdateItemRequest{
		Name:         lo.ToPtr("Renamed"),
		MinimumStock: lo.ToPtr(decimal.NewFromInt(8)),
	})
	s.NoError(err)
	s.Equal("Renamed", updated.Name)
	s.True(updated.MinimumStock.Equal(decimal.NewFromInt(8)))
	// Stock only moves through movements
	s.True(updated.Stock.Equal(decimal.NewFromInt(10)))
}

func (s *InventoryServiceSuite) TestRecordMovementIn() {
	item := s.createItem("SKU-001", 10, 2)

	m, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
		Type:     string(types.MovementTypeIn),
		Quantity: decimal.NewFromInt(5),
	})
	s.NoError(err)
	s.Equal(types.MovementTypeIn, m.Type)

	got, err := s.service.GetItem(s.GetContext(), item.ID)
	s.NoError(err)
	s.True(got.Stock.Equal(decimal.NewFromInt(15)))
}

func (s *InventoryServiceSuite) TestRecordMovementOut() {
	item := s.createItem("SKU-001", 10, 2)

	_, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
		Type:     string(types.MovementTypeOut),
		Quantity: decimal.NewFromInt(4),
	})
	s.NoError(err)

	got, err := s.service.GetItem(s.GetContext(), item.ID)
	s.NoError(err)
	s.True(got.Stock.Equal(decimal.NewFromInt(6)))
}

func (s *InventoryServiceSuite) TestRecordMovementInsufficientStock() {
	item := s.createItem("SKU-001", 3, 0)

	_, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
		Type:     string(types.MovementTypeOut),
		Quantity: decimal.NewFromInt(4),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// Neither the stock nor the ledger moved
	got, err := s.service.GetItem(s.GetContext(), item.ID)
	s.NoError(err)
	s.True(got.Stock.Equal(decimal.NewFromInt(3)))

	list, err := s.service.ListMovements(s.GetContext(), item.ID, types.Filter{})
	s.NoError(err)
	s.Equal(0, list.Total)
}

func (s *InventoryServiceSuite) TestRecordMovementConcurrent() {
	const workers = 50

	item := s.createItem("SKU-001", 100, 0)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
				Type:     string(types.MovementTypeOut),
				Quantity: decimal.NewFromInt(1),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	// Every movement landed on the committed level, none on a stale read
	got, err := s.service.GetItem(s.GetContext(), item.ID)
	s.NoError(err)
	s.True(got.Stock.Equal(decimal.NewFromInt(50)), "stock %s", got.Stock)

	list, err := s.service.ListMovements(s.GetContext(), item.ID, types.Filter{})
	s.NoError(err)
	s.Equal(workers, list.Total)
}

func (s *InventoryServiceSuite) TestRecordMovementConcurrentNeverOverdraws() {
	const workers = 20

	item := s.createItem("SKU-001", 10, 0)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
				Type:     string(types.MovementTypeOut),
				Quantity: decimal.NewFromInt(1),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.True(ierr.IsInvalidOperation(err))
		}
	}
	s.Equal(10, succeeded)

	got, err := s.service.GetItem(s.GetContext(), item.ID)
	s.NoError(err)
	s.True(got.Stock.IsZero(), "stock %s", got.Stock)
}

func (s *InventoryServiceSuite) TestRecordMovementAdjust() {
	item := s.createItem("SKU-001", 10, 2)

	_, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
		Type:     string(types.MovementTypeAdjust),
		Quantity: decimal.NewFromInt(7),
		Notes:    "yearly count",
	})
	s.NoError(err)

	got, err := s.service.GetItem(s.GetContext(), item.ID)
	s.NoError(err)
	s.True(got.Stock.Equal(decimal.NewFromInt(7)))
}

func (s *InventoryServiceSuite) TestRecordMovementInvalidType() {
	item := s.createItem("SKU-001", 10, 2)

	_, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
		Type:     "transfer",
		Quantity: decimal.NewFromInt(1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InventoryServiceSuite) TestRecordMovementUnknownItem() {
	_, err := s.service.RecordMovement(s.GetContext(), "item_missing", dto.CreateMovementRequest{
		Type:     string(types.MovementTypeIn),
		Quantity: decimal.NewFromInt(1),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InventoryServiceSuite) TestListMovements() {
	item := s.createItem("SKU-001", 10, 2)

	for i := 0; i < 3; i++ {
		_, err := s.service.RecordMovement(s.GetContext(), item.ID, dto.CreateMovementRequest{
			Type:     string(types.MovementTypeIn),
			Quantity: decimal.NewFromInt(1),
		})
		s.NoError(err)
	}

	list, err := s.service.ListMovements(s.GetContext(), item.ID, types.Filter{})
	s.NoError(err)
	s.Equal(3, list.Total)

	_, err = s.service.ListMovements(s.GetContext(), "item_missing", types.Filter{})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InventoryServiceSuite) TestListLowStock() {
	s.createItem("SKU-001", 10, 2)
	low := s.createItem("SKU-002", 1, 5)
	edge := s.createItem("SKU-003", 5, 5)

	list, err := s.service.ListLowStock(s.GetContext())
	s.NoError(err)
	s.Equal(2, list.Total)

	ids := []string{list.Items[0].ID, list.Items[1].ID}
	s.Contains(ids, low.ID)
	s.Contains(ids, edge.ID)
}

func (s *InventoryServiceSuite) TestDeleteItem() {
	item := s.createItem("SKU-001", 10, 2)

	s.NoError(s.service.DeleteItem(s.GetContext(), item.ID))

	_, err := s.service.GetItem(s.GetContext(), item.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
