package service

import (
	"context"
	"testing"
	"time"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/domain/invoice"
	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// testInvoice builds a minimal issued invoice for fixtures
func testInvoice(ctx context.Context, seriesID string, sequence int64) *invoice.Invoice {
	return &invoice.Invoice{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		EstablishmentID: "est_01",
		SeriesID:        seriesID,
		ClientID:        "cli_01",
		ClientName:      "Test Client",
		DocumentType:    types.DocumentTypeInvoice,
		FullNumber:      types.FormatDocumentNumber("F001", sequence),
		Sequence:        sequence,
		SeriesCode:      "F001",
		IssueDate:       time.Now().UTC(),
		DueDate:         time.Now().UTC(),
		Currency:        "PEN",
		InvoiceStatus:   types.InvoiceStatusIssued,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     InvoiceService
	seriesRepo  *testutil.InMemorySeriesStore
	clientRepo  *testutil.InMemoryClientStore
	invoiceRepo *testutil.InMemoryInvoiceStore
	testData    struct {
		series *series.Series
		client *client.Client
	}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.seriesRepo = s.GetStores().SeriesRepo.(*testutil.InMemorySeriesStore)
	s.clientRepo = s.GetStores().ClientRepo.(*testutil.InMemoryClientStore)
	s.invoiceRepo = s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore)
	s.service = NewInvoiceService(s.invoiceRepo, s.seriesRepo, s.clientRepo, s.GetDB(), s.GetLogger())
	s.setupTestData()
}

func (s *InvoiceServiceSuite) setupTestData() {
	s.testData.series = &series.Series{
		ID:              "ser_01",
		EstablishmentID: "est_01",
		DocumentType:    types.DocumentTypeInvoice,
		Code:            "F001",
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.seriesRepo.Create(s.GetContext(), s.testData.series))

	s.testData.client = &client.Client{
		ID:             "cli_01",
		DocumentType:   types.ClientDocumentRUC,
		DocumentNumber: "20123456789",
		Name:           "Comercial Andina SAC",
		CreditDays:     30,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.clientRepo.Create(s.GetContext(), s.testData.client))
}

func (s *InvoiceServiceSuite) validRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		EstablishmentID: "est_01",
		SeriesID:        "ser_01",
		ClientID:        "cli_01",
		DocumentType:    string(types.DocumentTypeInvoice),
		Currency:        "PEN",
		LineItems: []dto.CreateInvoiceLineItemRequest{
			{
				Description: "Consulting services",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(100),
			},
			{
				Description: "Travel expenses",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromFloat(50.50),
			},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)
	s.NotNil(resp)

	s.Equal("F001-0000001", resp.FullNumber)
	s.Equal(int64(1), resp.Sequence)
	s.Equal("F001", resp.SeriesCode)
	s.Equal("Comercial Andina SAC", resp.ClientName)
	s.Equal(types.InvoiceStatusIssued, resp.InvoiceStatus)

	// 2*100 + 1*50.50 = 250.50, IGV 18% = 45.09
	s.True(resp.Subtotal.Equal(decimal.NewFromFloat(250.50)), "subtotal %s", resp.Subtotal)
	s.True(resp.Tax.Equal(decimal.NewFromFloat(45.09)), "tax %s", resp.Tax)
	s.True(resp.Total.Equal(decimal.NewFromFloat(295.59)), "total %s", resp.Total)

	s.Len(resp.LineItems, 2)
	s.True(resp.LineItems[0].Amount.Equal(decimal.NewFromInt(200)))

	// Due date follows the client's credit days
	s.Equal(resp.IssueDate.AddDate(0, 0, 30), resp.DueDate)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceConsumesSequentialNumbers() {
	for i := int64(1); i <= 3; i++ {
		resp, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
		s.NoError(err)
		s.Equal(i, resp.Sequence)
	}

	sr, err := s.seriesRepo.Get(s.GetContext(), "ser_01")
	s.NoError(err)
	s.Equal(int64(3), sr.CurrentCorrelative)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceSeriesEstablishmentMismatch() {
	req := s.validRequest()
	req.EstablishmentID = "est_02"

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceDocumentTypeMismatch() {
	req := s.validRequest()
	req.DocumentType = string(types.DocumentTypeReceipt)

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownClient() {
	req := s.validRequest()
	req.ClientID = "cli_missing"

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// Nothing was allocated for the failed issuance
	sr, err := s.seriesRepo.Get(s.GetContext(), "ser_01")
	s.NoError(err)
	s.Equal(int64(0), sr.CurrentCorrelative)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceNoLineItems() {
	req := s.validRequest()
	req.LineItems = nil

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceAllocationFailure() {
	s.seriesRepo.FailNextAllocation(ierr.NewError("store unavailable").
		Mark(ierr.ErrDatabase))

	_, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.Error(err)

	count, err := s.invoiceRepo.Count(s.GetContext())
	s.NoError(err)
	s.Equal(0, count)

	// Retry issues the first number of the series
	resp, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)
	s.Equal(int64(1), resp.Sequence)
}

func (s *InvoiceServiceSuite) TestVoidInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	voided, err := s.service.VoidInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoided, voided.InvoiceStatus)

	// The number stays with the voided document and is never reissued
	s.Equal("F001-0000001", voided.FullNumber)
	next, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)
	s.Equal(int64(2), next.Sequence)
}

func (s *InvoiceServiceSuite) TestVoidInvoiceTwice() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	_, err = s.service.VoidInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.VoidInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidState(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesFilters() {
	first, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)
	_, err = s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	_, err = s.service.VoidInvoice(s.GetContext(), first.ID)
	s.NoError(err)

	resp, err := s.service.ListInvoices(s.GetContext(), invoice.Filter{
		InvoiceStatus: types.InvoiceStatusIssued,
	})
	s.NoError(err)
	s.Equal(1, resp.Total)

	resp, err = s.service.ListInvoices(s.GetContext(), invoice.Filter{
		ClientID: "cli_01",
	})
	s.NoError(err)
	s.Equal(2, resp.Total)
}

func (s *InvoiceServiceSuite) TestTotalsForPeriod() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	voided, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)
	_, err = s.service.VoidInvoice(s.GetContext(), voided.ID)
	s.NoError(err)

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC().Add(time.Hour)
	totals, err := s.invoiceRepo.TotalsForPeriod(s.GetContext(), from, to)
	s.NoError(err)

	// Voided documents do not count towards issued totals
	s.True(totals["PEN"].Equal(decimal.NewFromFloat(295.59)), "totals %s", totals["PEN"])
}
