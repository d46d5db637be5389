package testutil

import (
	"context"

	"github.com/gestia/gestia/internal/domain/establishment"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
)

// InMemoryEstablishmentStore implements establishment.Repository
type InMemoryEstablishmentStore struct {
	*InMemoryStore[*establishment.Establishment]
}

func NewInMemoryEstablishmentStore() *InMemoryEstablishmentStore {
	return &InMemoryEstablishmentStore{
		InMemoryStore: NewInMemoryStore[*establishment.Establishment](),
	}
}

func establishmentFilterFn(ctx context.Context, e *establishment.Establishment, filter interface{}) bool {
	if e == nil {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && e.TenantID != tenantID {
		return false
	}

	status := types.StatusPublished
	if f, ok := filter.(types.Filter); ok && f.Status != "" {
		status = f.Status
	}
	return e.Status == status
}

func establishmentSortFn(i, j *establishment.Establishment) bool {
	return i.Code < j.Code
}

func (s *InMemoryEstablishmentStore) Create(ctx context.Context, e *establishment.Establishment) error {
	if e == nil {
		return ierr.NewError("establishment cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Status != types.StatusDeleted &&
			existing.TenantID == e.TenantID &&
			existing.Code == e.Code {
			return ierr.NewError("establishment already exists").
				WithHintf("Establishment with code %s already exists", e.Code).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.items[e.ID] = e
	return nil
}

func (s *InMemoryEstablishmentStore) Get(ctx context.Context, id string) (*establishment.Establishment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.items[id]
	if !exists || e.Status == types.StatusDeleted || e.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("establishment not found").
			WithHintf("Establishment with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return e, nil
}

func (s *InMemoryEstablishmentStore) List(ctx context.Context, filter types.Filter) ([]*establishment.Establishment, error) {
	return s.InMemoryStore.List(ctx, filter, establishmentFilterFn, establishmentSortFn)
}

func (s *InMemoryEstablishmentStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, types.Filter{Status: types.StatusPublished}, establishmentFilterFn)
}

func (s *InMemoryEstablishmentStore) Update(ctx context.Context, e *establishment.Establishment) error {
	if _, err := s.Get(ctx, e.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, e.ID, e)
}

func (s *InMemoryEstablishmentStore) Delete(ctx context.Context, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e.Status = types.StatusDeleted
	return nil
}
