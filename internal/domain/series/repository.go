package series

import (
	"context"

	"github.com/gestia/gestia/internal/types"
)

// Repository defines the interface for series persistence operations
type Repository interface {
	Create(ctx context.Context, s *Series) error
	Get(ctx context.Context, id string) (*Series, error)
	List(ctx context.Context, filter Filter) ([]*Series, error)
	Update(ctx context.Context, s *Series) error
	Delete(ctx context.Context, id string) error

	// NextCorrelative atomically advances the series correlative by one
	// and returns the new sequence together with the series code read in
	// the same statement. The read-increment-write must execute as a
	// single atomic operation against the store; callers must never
	// read the correlative and write it back as two round trips.
	// Returns ErrNotFound without mutation when the series does not exist.
	NextCorrelative(ctx context.Context, id string) (sequence int64, code string, err error)

	// ClearDefault unsets is_default on every series of the given
	// establishment and document type
	ClearDefault(ctx context.Context, establishmentID string, docType types.DocumentType) error

	CountByEstablishment(ctx context.Context, establishmentID string) (int, error)
}

// Filter narrows series listings
type Filter struct {
	types.Filter
	EstablishmentID string             `form:"establishment_id"`
	DocumentType    types.DocumentType `form:"document_type"`
}
