package client

import (
	"context"

	"github.com/gestia/gestia/internal/types"
)

// Repository defines the interface for client persistence operations
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
}

// Filter narrows client listings; Search matches name or document number
type Filter struct {
	types.Filter
	Search string `form:"search"`
}
