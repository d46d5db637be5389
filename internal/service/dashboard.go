package service

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/asset"
	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/domain/establishment"
	"github.com/gestia/gestia/internal/domain/inventory"
	"github.com/gestia/gestia/internal/domain/invoice"
	"github.com/gestia/gestia/internal/domain/user"
	"github.com/gestia/gestia/internal/logger"
)

type DashboardService interface {
	// GetSummary aggregates tenant-wide counts, invoice totals for
	// [from, to] and the current low stock list
	GetSummary(ctx context.Context, from, to time.Time) (*dto.DashboardSummaryResponse, error)
}

type dashboardService struct {
	establishmentRepo establishment.Repository
	clientRepo        client.Repository
	assetRepo         asset.Repository
	inventoryRepo     inventory.Repository
	invoiceRepo       invoice.Repository
	userRepo          user.Repository
	logger            *logger.Logger
}

func NewDashboardService(
	establishmentRepo establishment.Repository,
	clientRepo client.Repository,
	assetRepo asset.Repository,
	inventoryRepo inventory.Repository,
	invoiceRepo invoice.Repository,
	userRepo user.Repository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		establishmentRepo: establishmentRepo,
		clientRepo:        clientRepo,
		assetRepo:         assetRepo,
		inventoryRepo:     inventoryRepo,
		invoiceRepo:       invoiceRepo,
		userRepo:          userRepo,
		logger:            logger,
	}
}

func (s *dashboardService) GetSummary(ctx context.Context, from, to time.Time) (*dto.DashboardSummaryResponse, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		// default to the current calendar month
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	summary := &dto.DashboardSummaryResponse{}

	var err error
	if summary.Establishments, err = s.establishmentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Clients, err = s.clientRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Assets, err = s.assetRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.InventoryItems, err = s.inventoryRepo.CountItems(ctx); err != nil {
		return nil, err
	}
	if summary.Invoices, err = s.invoiceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}

	if summary.InvoiceTotals, err = s.invoiceRepo.TotalsForPeriod(ctx, from, to); err != nil {
		return nil, err
	}

	lowStock, err := s.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	summary.LowStockItems = make([]*dto.ItemResponse, len(lowStock))
	for i, item := range lowStock {
		summary.LowStockItems[i] = dto.NewItemResponse(item)
	}

	return summary, nil
}
