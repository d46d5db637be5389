package invoice

import (
	"time"

	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is an issued business document. The number triple
// (FullNumber, Sequence, SeriesCode) is denormalized from the
// allocation result at issuance time and never changes afterwards,
// even if the series record is later edited.
type Invoice struct {
	// ID is the unique identifier of the invoice
	ID string `db:"id" json:"id"`

	EstablishmentID string `db:"establishment_id" json:"establishment_id"`
	SeriesID        string `db:"series_id" json:"series_id"`
	ClientID        string `db:"client_id" json:"client_id"`

	// ClientName is cached at issuance for list rendering; it is not
	// refreshed when the client record changes
	ClientName string `db:"client_name" json:"client_name"`

	DocumentType types.DocumentType `db:"document_type" json:"document_type"`

	// FullNumber is the allocated document number, e.g. "F001-0000042"
	FullNumber string `db:"full_number" json:"full_number"`

	// Sequence is the correlative consumed from the series
	Sequence int64 `db:"sequence" json:"sequence"`

	// SeriesCode echoes the series code at issuance time
	SeriesCode string `db:"series_code" json:"series_code"`

	IssueDate time.Time `db:"issue_date" json:"issue_date"`
	DueDate   time.Time `db:"due_date" json:"due_date"`

	Currency string          `db:"currency" json:"currency"`
	Subtotal decimal.Decimal `db:"subtotal" json:"subtotal"`
	Tax      decimal.Decimal `db:"tax" json:"tax"`
	Total    decimal.Decimal `db:"total" json:"total"`

	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`

	Notes string `db:"notes" json:"notes"`

	LineItems []*LineItem `json:"line_items,omitempty"`

	types.BaseModel
}

// LineItem is one line of an invoice
type LineItem struct {
	ID        string `db:"id" json:"id"`
	InvoiceID string `db:"invoice_id" json:"invoice_id"`

	// ItemID optionally references an inventory item
	ItemID string `db:"item_id" json:"item_id"`

	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`

	types.BaseModel
}
