package invoice

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// CreateWithLineItems persists the invoice and its lines together;
	// callers wrap it and the number allocation in one transaction
	CreateWithLineItems(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter Filter) ([]*Invoice, error)
	Count(ctx context.Context) (int, error)

	// UpdateStatus transitions the issuance status; invoices are never
	// deleted and rows are never renumbered
	UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus) error

	CountBySeries(ctx context.Context, seriesID string) (int, error)

	// TotalsForPeriod sums issued invoice totals per currency within
	// [from, to] for the dashboard
	TotalsForPeriod(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error)
}

// Filter narrows invoice listings
type Filter struct {
	types.Filter
	EstablishmentID string              `form:"establishment_id"`
	ClientID        string              `form:"client_id"`
	DocumentType    types.DocumentType  `form:"document_type"`
	InvoiceStatus   types.InvoiceStatus `form:"invoice_status"`
	From            *time.Time          `form:"from" time_format:"2006-01-02"`
	To              *time.Time          `form:"to" time_format:"2006-01-02"`
}
