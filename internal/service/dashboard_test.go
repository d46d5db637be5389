package service

import (
	"testing"
	"time"

	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/domain/establishment"
	"github.com/gestia/gestia/internal/domain/inventory"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DashboardService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewDashboardService(
		stores.EstablishmentRepo,
		stores.ClientRepo,
		stores.AssetRepo,
		stores.InventoryRepo,
		stores.InvoiceRepo,
		stores.UserRepo,
		s.GetLogger(),
	)
}

func (s *DashboardServiceSuite) seedData() {
	ctx := s.GetContext()

	s.NoError(s.GetStores().EstablishmentRepo.Create(ctx, &establishment.Establishment{
		ID:        "est_01",
		Code:      "MAIN",
		Name:      "Main Office",
		TaxID:     "20123456789",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}))

	s.NoError(s.GetStores().ClientRepo.Create(ctx, &client.Client{
		ID:             "cli_01",
		DocumentType:   types.ClientDocumentRUC,
		DocumentNumber: "20987654321",
		Name:           "Comercial Andina SAC",
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}))

	s.NoError(s.GetStores().InventoryRepo.CreateItem(ctx, &inventory.Item{
		ID:           "item_01",
		SKU:          "SKU-001",
		Name:         "Depleted item",
		Unit:         "unit",
		Stock:        decimal.NewFromInt(1),
		MinimumStock: decimal.NewFromInt(5),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}))

	now := time.Now().UTC()
	issued := testInvoice(ctx, "ser_01", 1)
	issued.IssueDate = now
	issued.Total = decimal.NewFromInt(100)
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLineItems(ctx, issued))

	voided := testInvoice(ctx, "ser_01", 2)
	voided.IssueDate = now
	voided.Total = decimal.NewFromInt(999)
	voided.InvoiceStatus = types.InvoiceStatusVoided
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLineItems(ctx, voided))

	stale := testInvoice(ctx, "ser_01", 3)
	stale.IssueDate = now.AddDate(0, -2, 0)
	stale.Total = decimal.NewFromInt(500)
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLineItems(ctx, stale))
}

func (s *DashboardServiceSuite) TestGetSummary() {
	s.seedData()

	from := time.Now().UTC().AddDate(0, 0, -7)
	to := time.Now().UTC().AddDate(0, 0, 1)
	summary, err := s.service.GetSummary(s.GetContext(), from, to)
	s.NoError(err)

	s.Equal(1, summary.Establishments)
	s.Equal(1, summary.Clients)
	s.Equal(0, summary.Assets)
	s.Equal(1, summary.InventoryItems)
	s.Equal(3, summary.Invoices)

	// Only the issued invoice inside the window counts
	s.True(summary.InvoiceTotals["PEN"].Equal(decimal.NewFromInt(100)),
		"totals %s", summary.InvoiceTotals["PEN"])

	s.Len(summary.LowStockItems, 1)
	s.Equal("SKU-001", summary.LowStockItems[0].SKU)
}

func (s *DashboardServiceSuite) TestGetSummaryEmptyTenant() {
	summary, err := s.service.GetSummary(s.GetContext(), time.Time{}, time.Time{})
	s.NoError(err)

	s.Equal(0, summary.Establishments)
	s.Equal(0, summary.Invoices)
	s.Empty(summary.LowStockItems)
	s.Empty(summary.InvoiceTotals["PEN"])
}

func (s *DashboardServiceSuite) TestGetSummaryExcludesOtherPeriods() {
	s.seedData()

	// A window three months back catches only the stale invoice
	from := time.Now().UTC().AddDate(0, -3, 0)
	to := time.Now().UTC().AddDate(0, -1, 0)
	summary, err := s.service.GetSummary(s.GetContext(), from, to)
	s.NoError(err)

	s.True(summary.InvoiceTotals["PEN"].Equal(decimal.NewFromInt(500)),
		"totals %s", summary.InvoiceTotals["PEN"])
}
