package testutil

import (
	"context"

	"github.com/gestia/gestia/internal/domain/user"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.items[id]
	if !exists || u.Status == types.StatusDeleted || u.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("user not found").
			WithHintf("User with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}

// GetByEmail is not tenant-scoped, matching the store used in login
func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.items {
		if u.Status != types.StatusDeleted && u.Email == email {
			return u, nil
		}
	}
	return nil, ierr.NewError("user not found").
		WithHintf("User with email %s was not found", email).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) List(ctx context.Context, filter types.Filter) ([]*user.User, error) {
	return s.InMemoryStore.List(ctx, filter, func(ctx context.Context, u *user.User, _ interface{}) bool {
		return u.TenantID == types.GetTenantID(ctx) && u.Status == types.StatusPublished
	}, func(i, j *user.User) bool {
		return i.Email < j.Email
	})
}

func (s *InMemoryUserStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, u *user.User, _ interface{}) bool {
		return u.TenantID == types.GetTenantID(ctx) && u.Status == types.StatusPublished
	})
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if _, err := s.Get(ctx, u.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, u.ID, u)
}

func (s *InMemoryUserStore) Delete(ctx context.Context, id string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u.Status = types.StatusDeleted
	return nil
}
