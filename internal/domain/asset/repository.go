package asset

import (
	"context"

	"github.com/gestia/gestia/internal/types"
)

// Repository defines the interface for asset persistence operations
type Repository interface {
	Create(ctx context.Context, a *Asset) error
	Get(ctx context.Context, id string) (*Asset, error)
	List(ctx context.Context, filter Filter) ([]*Asset, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id string) error
}

// Filter narrows asset listings
type Filter struct {
	types.Filter
	EstablishmentID string            `form:"establishment_id"`
	Category        string            `form:"category"`
	State           types.AssetStatus `form:"state"`
}
