package dto

import (
	"time"

	"github.com/gestia/gestia/internal/domain/invoice"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	EstablishmentID string `json:"establishment_id" validate:"required"`
	SeriesID        string `json:"series_id" validate:"required"`
	ClientID        string `json:"client_id" validate:"required"`
	DocumentType    string `json:"document_type" validate:"required"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	Currency string `json:"currency" validate:"required,len=3"`
	Notes    string `json:"notes"`

	LineItems []CreateInvoiceLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type CreateInvoiceLineItemRequest struct {
	ItemID      string          `json:"item_id"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type InvoiceResponse struct {
	*invoice.Invoice
}

type ListInvoicesResponse struct {
	Invoices []*InvoiceResponse `json:"invoices"`
	Total    int                `json:"total"`
	Offset   int                `json:"offset"`
	Limit    int                `json:"limit"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := types.DocumentType(r.DocumentType).Validate(); err != nil {
		return err
	}
	for _, line := range r.LineItems {
		if !line.Quantity.IsPositive() {
			return ierr.NewError("invalid line quantity").
				WithHint("Line item quantity must be positive").
				Mark(ierr.ErrValidation)
		}
		if line.UnitPrice.IsNegative() {
			return ierr.NewError("invalid line price").
				WithHint("Line item unit price must not be negative").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}
