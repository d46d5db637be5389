package testutil

import (
	"context"

	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
)

// InMemorySeriesStore implements series.Repository
type InMemorySeriesStore struct {
	*InMemoryStore[*series.Series]

	// allocErr, when set, makes the next NextCorrelative call fail
	// without touching the stored correlative
	allocErr error
}

func NewInMemorySeriesStore() *InMemorySeriesStore {
	return &InMemorySeriesStore{
		InMemoryStore: NewInMemoryStore[*series.Series](),
	}
}

// FailNextAllocation arms a one-shot allocation failure
func (s *InMemorySeriesStore) FailNextAllocation(err error) {
	s.allocErr = err
}

func seriesFilterFn(ctx context.Context, sr *series.Series, filter interface{}) bool {
	if sr == nil {
		return false
	}

	if tenantID := types.GetTenantID(ctx); tenantID != "" && sr.TenantID != tenantID {
		return false
	}

	f, ok := filter.(series.Filter)
	if !ok {
		return sr.Status != types.StatusDeleted
	}

	status := f.Status
	if status == "" {
		status = types.StatusPublished
	}
	if sr.Status != status {
		return false
	}
	if f.EstablishmentID != "" && sr.EstablishmentID != f.EstablishmentID {
		return false
	}
	if f.DocumentType != "" && sr.DocumentType != f.DocumentType {
		return false
	}
	return true
}

func seriesSortFn(i, j *series.Series) bool {
	return i.Code < j.Code
}

func (s *InMemorySeriesStore) Create(ctx context.Context, sr *series.Series) error {
	if sr == nil {
		return ierr.NewError("series cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Status != types.StatusDeleted &&
			existing.EstablishmentID == sr.EstablishmentID &&
			existing.DocumentType == sr.DocumentType &&
			existing.Code == sr.Code {
			return ierr.NewError("series already exists").
				WithHintf("Series %s already exists for this establishment and document type", sr.Code).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.items[sr.ID] = sr
	return nil
}

func (s *InMemorySeriesStore) Get(ctx context.Context, id string) (*series.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sr, exists := s.items[id]
	if !exists || sr.Status == types.StatusDeleted || sr.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("series not found").
			WithHintf("Series with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return sr, nil
}

func (s *InMemorySeriesStore) List(ctx context.Context, filter series.Filter) ([]*series.Series, error) {
	return s.InMemoryStore.List(ctx, filter, seriesFilterFn, seriesSortFn)
}

func (s *InMemorySeriesStore) Update(ctx context.Context, sr *series.Series) error {
	if _, err := s.Get(ctx, sr.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, sr.ID, sr)
}

func (s *InMemorySeriesStore) Delete(ctx context.Context, id string) error {
	sr, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if sr.CurrentCorrelative > 0 {
		return ierr.NewError("series has issued documents").
			WithHint("A series that has issued documents cannot be deleted").
			Mark(ierr.ErrInvalidOperation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sr.Status = types.StatusDeleted
	return nil
}

// NextCorrelative mirrors the production allocator: the increment and
// the reads of sequence and code happen under one lock, and any failure
// leaves the stored correlative untouched.
func (s *InMemorySeriesStore) NextCorrelative(ctx context.Context, id string) (int64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allocErr != nil {
		err := s.allocErr
		s.allocErr = nil
		return 0, "", err
	}

	sr, exists := s.items[id]
	if !exists || sr.Status == types.StatusDeleted || sr.TenantID != types.GetTenantID(ctx) {
		return 0, "", ierr.NewError("series not found").
			WithHintf("Series with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if sr.Status != types.StatusPublished {
		return 0, "", ierr.NewError("series not available for allocation").
			WithHintf("Series %s is not active", sr.Code).
			Mark(ierr.ErrInvalidOperation)
	}
	if sr.CurrentCorrelative >= int64(types.MaxCorrelative) {
		return 0, "", ierr.NewError("series correlative exhausted").
			WithHintf("Series %s has reached the maximum correlative %d", sr.Code, types.MaxCorrelative).
			Mark(ierr.ErrInvalidOperation)
	}

	sr.CurrentCorrelative++
	return sr.CurrentCorrelative, sr.Code, nil
}

func (s *InMemorySeriesStore) ClearDefault(ctx context.Context, establishmentID string, docType types.DocumentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sr := range s.items {
		if sr.TenantID == types.GetTenantID(ctx) &&
			sr.EstablishmentID == establishmentID &&
			sr.DocumentType == docType {
			sr.IsDefault = false
		}
	}
	return nil
}

func (s *InMemorySeriesStore) CountByEstablishment(ctx context.Context, establishmentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, sr := range s.items {
		if sr.TenantID == types.GetTenantID(ctx) &&
			sr.EstablishmentID == establishmentID &&
			sr.Status != types.StatusDeleted {
			count++
		}
	}
	return count, nil
}
