package testutil

import (
	"context"

	"github.com/gestia/gestia/internal/domain/asset"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
)

// InMemoryAssetStore implements asset.Repository
type InMemoryAssetStore struct {
	*InMemoryStore[*asset.Asset]
}

func NewInMemoryAssetStore() *InMemoryAssetStore {
	return &InMemoryAssetStore{
		InMemoryStore: NewInMemoryStore[*asset.Asset](),
	}
}

func assetFilterFn(ctx context.Context, a *asset.Asset, filter interface{}) bool {
	if a == nil {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && a.TenantID != tenantID {
		return false
	}

	f, ok := filter.(asset.Filter)
	if !ok {
		return a.Status != types.StatusDeleted
	}

	status := f.Status
	if status == "" {
		status = types.StatusPublished
	}
	if a.Status != status {
		return false
	}
	if f.EstablishmentID != "" && a.EstablishmentID != f.EstablishmentID {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.State != "" && a.State != f.State {
		return false
	}
	return true
}

func assetSortFn(i, j *asset.Asset) bool {
	return i.Code < j.Code
}

func (s *InMemoryAssetStore) Create(ctx context.Context, a *asset.Asset) error {
	if a == nil {
		return ierr.NewError("asset cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, a.ID, a)
}

func (s *InMemoryAssetStore) Get(ctx context.Context, id string) (*asset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.items[id]
	if !exists || a.Status == types.StatusDeleted || a.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("asset not found").
			WithHintf("Asset with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return a, nil
}

func (s *InMemoryAssetStore) List(ctx context.Context, filter asset.Filter) ([]*asset.Asset, error) {
	return s.InMemoryStore.List(ctx, filter, assetFilterFn, assetSortFn)
}

func (s *InMemoryAssetStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, a *asset.Asset, _ interface{}) bool {
		return a.TenantID == types.GetTenantID(ctx) && a.Status == types.StatusPublished
	})
}

func (s *InMemoryAssetStore) Update(ctx context.Context, a *asset.Asset) error {
	if _, err := s.Get(ctx, a.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, a.ID, a)
}

func (s *InMemoryAssetStore) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a.Status = types.StatusDeleted
	return nil
}
