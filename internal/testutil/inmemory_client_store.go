package testutil

import (
	"context"
	"strings"

	"github.com/gestia/gestia/internal/domain/client"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func clientFilterFn(ctx context.Context, c *client.Client, filter interface{}) bool {
	if c == nil {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && c.TenantID != tenantID {
		return false
	}

	f, ok := filter.(client.Filter)
	if !ok {
		return c.Status != types.StatusDeleted
	}

	status := f.Status
	if status == "" {
		status = types.StatusPublished
	}
	if c.Status != status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(c.DocumentNumber, f.Search) {
			return false
		}
	}
	return true
}

func clientSortFn(i, j *client.Client) bool {
	return i.Name < j.Name
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	if c == nil {
		return ierr.NewError("client cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Status != types.StatusDeleted &&
			existing.TenantID == c.TenantID &&
			existing.DocumentNumber == c.DocumentNumber {
			return ierr.NewError("client already exists").
				WithHintf("Client with document number %s already exists", c.DocumentNumber).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.items[c.ID] = c
	return nil
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.items[id]
	if !exists || c.Status == types.StatusDeleted || c.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("client not found").
			WithHintf("Client with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryClientStore) List(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	return s.InMemoryStore.List(ctx, filter, clientFilterFn, clientSortFn)
}

func (s *InMemoryClientStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, c *client.Client, _ interface{}) bool {
		return c.TenantID == types.GetTenantID(ctx) && c.Status == types.StatusPublished
	})
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, c)
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.Status = types.StatusDeleted
	return nil
}
