package establishment

import (
	"context"

	"github.com/gestia/gestia/internal/types"
)

// Repository defines the interface for establishment persistence operations
type Repository interface {
	Create(ctx context.Context, e *Establishment) error
	Get(ctx context.Context, id string) (*Establishment, error)
	List(ctx context.Context, filter types.Filter) ([]*Establishment, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, e *Establishment) error
	Delete(ctx context.Context, id string) error
}
