package testutil

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/domain/invoice"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]

	// createErr, when set, makes the next CreateWithLineItems call fail
	createErr error
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

// FailNextCreate arms a one-shot create failure
func (s *InMemoryInvoiceStore) FailNextCreate(err error) {
	s.createErr = err
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if inv == nil {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && inv.TenantID != tenantID {
		return false
	}

	f, ok := filter.(invoice.Filter)
	if !ok {
		return true
	}

	if f.EstablishmentID != "" && inv.EstablishmentID != f.EstablishmentID {
		return false
	}
	if f.ClientID != "" && inv.ClientID != f.ClientID {
		return false
	}
	if f.DocumentType != "" && inv.DocumentType != f.DocumentType {
		return false
	}
	if f.InvoiceStatus != "" && inv.InvoiceStatus != f.InvoiceStatus {
		return false
	}
	if f.From != nil && inv.IssueDate.Before(*f.From) {
		return false
	}
	if f.To != nil && inv.IssueDate.After(*f.To) {
		return false
	}
	return true
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	return i.IssueDate.After(j.IssueDate)
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		err := s.createErr
		s.createErr = nil
		return err
	}

	// Reject correlative reuse the way the unique index does
	for _, existing := range s.items {
		if existing.SeriesID == inv.SeriesID && existing.Sequence == inv.Sequence {
			return ierr.NewError("duplicate document number").
				WithHintf("Document %s already exists", inv.FullNumber).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.items[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, exists := s.items[id]
	if !exists || inv.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter invoice.Filter) ([]*invoice.Invoice, error) {
	return s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.TenantID == types.GetTenantID(ctx)
	})
}

func (s *InMemoryInvoiceStore) UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	inv.InvoiceStatus = status
	return nil
}

func (s *InMemoryInvoiceStore) CountBySeries(ctx context.Context, seriesID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, inv := range s.items {
		if inv.TenantID == types.GetTenantID(ctx) && inv.SeriesID == seriesID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryInvoiceStore) TotalsForPeriod(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]decimal.Decimal)
	for _, inv := range s.items {
		if inv.TenantID != types.GetTenantID(ctx) ||
			inv.InvoiceStatus != types.InvoiceStatusIssued ||
			inv.IssueDate.Before(from) || inv.IssueDate.After(to) {
			continue
		}
		totals[inv.Currency] = totals[inv.Currency].Add(inv.Total)
	}
	return totals, nil
}
