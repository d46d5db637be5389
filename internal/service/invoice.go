package service

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/domain/invoice"
	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// taxRate is the IGV applied to every taxable line
var taxRate = decimal.NewFromFloat(0.18)

type InvoiceService interface {
	// CreateInvoice issues a new document: it allocates the next number
	// from the series and persists the invoice with its lines in one
	// transaction, so an allocation is never observed without its
	// document and vice versa
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter invoice.Filter) (*dto.ListInvoicesResponse, error)
	VoidInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	repo       invoice.Repository
	seriesRepo series.Repository
	clientRepo client.Repository
	db         TxRunner
	logger     *logger.Logger
}

func NewInvoiceService(
	repo invoice.Repository,
	seriesRepo series.Repository,
	clientRepo client.Repository,
	db TxRunner,
	logger *logger.Logger,
) InvoiceService {
	return &invoiceService{
		repo:       repo,
		seriesRepo: seriesRepo,
		clientRepo: clientRepo,
		db:         db,
		logger:     logger,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ser, err := s.seriesRepo.Get(ctx, req.SeriesID)
	if err != nil {
		return nil, err
	}
	if ser.EstablishmentID != req.EstablishmentID {
		return nil, ierr.NewError("series does not belong to the establishment").
			WithHint("Pick a series defined for the selected establishment").
			WithReportableDetails(map[string]any{
				"series_id":        req.SeriesID,
				"establishment_id": req.EstablishmentID,
			}).
			Mark(ierr.ErrValidation)
	}
	if ser.DocumentType != types.DocumentType(req.DocumentType) {
		return nil, ierr.NewError("series document type mismatch").
			WithHintf("Series %s numbers %s documents, not %s", ser.Code, ser.DocumentType, req.DocumentType).
			Mark(ierr.ErrValidation)
	}

	cli, err := s.clientRepo.Get(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	inv := &invoice.Invoice{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		EstablishmentID: req.EstablishmentID,
		SeriesID:        req.SeriesID,
		ClientID:        req.ClientID,
		ClientName:      cli.Name,
		DocumentType:    types.DocumentType(req.DocumentType),
		IssueDate:       req.IssueDate,
		Currency:        req.Currency,
		InvoiceStatus:   types.InvoiceStatusIssued,
		Notes:           req.Notes,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	if inv.IssueDate.IsZero() {
		inv.IssueDate = time.Now().UTC()
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	} else if cli.CreditDays > 0 {
		inv.DueDate = inv.IssueDate.AddDate(0, 0, cli.CreditDays)
	} else {
		inv.DueDate = inv.IssueDate
	}

	subtotal := decimal.Zero
	inv.LineItems = make([]*invoice.LineItem, len(req.LineItems))
	for i, line := range req.LineItems {
		amount := line.Quantity.Mul(line.UnitPrice)
		subtotal = subtotal.Add(amount)
		inv.LineItems[i] = &invoice.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   inv.ID,
			ItemID:      line.ItemID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      amount,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
	}
	inv.Subtotal = subtotal.Round(2)
	inv.Tax = subtotal.Mul(taxRate).Round(2)
	inv.Total = inv.Subtotal.Add(inv.Tax)

	// Allocation and persistence share one transaction. If the insert
	// fails the allocated correlative rolls back with it, so the series
	// never shows a consumed number without a matching document.
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		sequence, code, err := s.seriesRepo.NextCorrelative(ctx, req.SeriesID)
		if err != nil {
			return err
		}

		inv.Sequence = sequence
		inv.SeriesCode = code
		inv.FullNumber = types.FormatDocumentNumber(code, sequence)

		return s.repo.CreateWithLineItems(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("issued document",
		"invoice_id", inv.ID,
		"full_number", inv.FullNumber,
		"series_id", inv.SeriesID)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter invoice.Filter) (*dto.ListInvoicesResponse, error) {
	if filter.Limit == 0 {
		filter.Filter = types.GetDefaultFilter()
	}

	invoices, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListInvoicesResponse{
		Invoices: make([]*dto.InvoiceResponse, len(invoices)),
		Total:    len(invoices),
		Offset:   filter.Offset,
		Limit:    filter.Limit,
	}
	for i, inv := range invoices {
		response.Invoices[i] = dto.NewInvoiceResponse(inv)
	}

	return response, nil
}

// VoidInvoice cancels an issued document. The row and its number stay
// in place; voiding never frees a correlative for reuse.
func (s *invoiceService) VoidInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.InvoiceStatus == types.InvoiceStatusVoided {
		return nil, ierr.NewError("invoice already voided").
			WithHintf("Document %s is already voided", inv.FullNumber).
			Mark(ierr.ErrInvalidState)
	}

	if err := s.repo.UpdateStatus(ctx, id, types.InvoiceStatusVoided); err != nil {
		return nil, err
	}
	inv.InvoiceStatus = types.InvoiceStatusVoided

	return dto.NewInvoiceResponse(inv), nil
}
