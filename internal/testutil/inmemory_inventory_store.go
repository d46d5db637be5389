package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/gestia/gestia/internal/domain/inventory"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// InMemoryInventoryStore implements inventory.Repository
type InMemoryInventoryStore struct {
	*InMemoryStore[*inventory.Item]
	movements map[string][]*inventory.Movement // map[itemID][]movements
}

func NewInMemoryInventoryStore() *InMemoryInventoryStore {
	return &InMemoryInventoryStore{
		InMemoryStore: NewInMemoryStore[*inventory.Item](),
		movements:     make(map[string][]*inventory.Movement),
	}
}

func itemFilterFn(ctx context.Context, item *inventory.Item, filter interface{}) bool {
	if item == nil {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && item.TenantID != tenantID {
		return false
	}

	f, ok := filter.(inventory.ItemFilter)
	if !ok {
		return item.Status != types.StatusDeleted
	}

	status := f.Status
	if status == "" {
		status = types.StatusPublished
	}
	if item.Status != status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.SKU), needle) &&
			!strings.Contains(strings.ToLower(item.Name), needle) {
			return false
		}
	}
	return true
}

func itemSortFn(i, j *inventory.Item) bool {
	return i.SKU < j.SKU
}

func (s *InMemoryInventoryStore) CreateItem(ctx context.Context, item *inventory.Item) error {
	if item == nil {
		return ierr.NewError("item cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Status != types.StatusDeleted &&
			existing.TenantID == item.TenantID &&
			existing.SKU == item.SKU {
			return ierr.NewError("item already exists").
				WithHintf("Item with SKU %s already exists", item.SKU).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.items[item.ID] = item
	return nil
}

func (s *InMemoryInventoryStore) GetItem(ctx context.Context, id string) (*inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists || item.Status == types.StatusDeleted || item.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return item, nil
}

func (s *InMemoryInventoryStore) ListItems(ctx context.Context, filter inventory.ItemFilter) ([]*inventory.Item, error) {
	return s.InMemoryStore.List(ctx, filter, itemFilterFn, itemSortFn)
}

func (s *InMemoryInventoryStore) CountItems(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, item *inventory.Item, _ interface{}) bool {
		return item.TenantID == types.GetTenantID(ctx) && item.Status == types.StatusPublished
	})
}

func (s *InMemoryInventoryStore) UpdateItem(ctx context.Context, item *inventory.Item) error {
	if _, err := s.GetItem(ctx, item.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, item.ID, item)
}

func (s *InMemoryInventoryStore) DeleteItem(ctx context.Context, id string) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item.Status = types.StatusDeleted
	return nil
}

// ApplyMovement checks and mutates the stock under one lock, matching
// the single-statement arithmetic of the SQL store: concurrent
// movements each act on the committed level, never on a stale read.
func (s *InMemoryInventoryStore) ApplyMovement(ctx context.Context, m *inventory.Movement) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[m.ItemID]
	if !exists || item.Status != types.StatusPublished || item.TenantID != types.GetTenantID(ctx) {
		return decimal.Zero, ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", m.ItemID).
			Mark(ierr.ErrNotFound)
	}

	switch m.Type {
	case types.MovementTypeIn:
		item.Stock = item.Stock.Add(m.Quantity)
	case types.MovementTypeOut:
		if item.Stock.LessThan(m.Quantity) {
			return decimal.Zero, ierr.NewError("insufficient stock").
				WithHintf("Item %s has %s on hand, cannot remove %s", item.SKU, item.Stock, m.Quantity).
				WithReportableDetails(map[string]any{
					"item_id":   m.ItemID,
					"stock":     item.Stock,
					"requested": m.Quantity,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
		item.Stock = item.Stock.Sub(m.Quantity)
	case types.MovementTypeAdjust:
		item.Stock = m.Quantity
	default:
		return decimal.Zero, ierr.NewErrorf("invalid movement type %s", m.Type).
			Mark(ierr.ErrValidation)
	}

	s.movements[m.ItemID] = append(s.movements[m.ItemID], m)
	return item.Stock, nil
}

func (s *InMemoryInventoryStore) ListMovements(ctx context.Context, itemID string, filter types.Filter) ([]*inventory.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*inventory.Movement, 0, len(s.movements[itemID]))
	for _, m := range s.movements[itemID] {
		if m.TenantID == types.GetTenantID(ctx) {
			result = append(result, m)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	start := filter.GetOffset()
	if start >= len(result) {
		return []*inventory.Movement{}, nil
	}
	end := start + filter.GetLimit()
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], nil
}

func (s *InMemoryInventoryStore) ListLowStock(ctx context.Context) ([]*inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*inventory.Item
	for _, item := range s.items {
		if item.TenantID == types.GetTenantID(ctx) &&
			item.Status == types.StatusPublished &&
			item.Stock.LessThanOrEqual(item.MinimumStock) {
			result = append(result, item)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].SKU < result[j].SKU
	})
	return result, nil
}

// Clear resets items and movements
func (s *InMemoryInventoryStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = make(map[string][]*inventory.Movement)
}
