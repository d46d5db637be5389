package repository

import (
	"github.com/gestia/gestia/internal/cache"
	"github.com/gestia/gestia/internal/domain/asset"
	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/domain/establishment"
	"github.com/gestia/gestia/internal/domain/inventory"
	"github.com/gestia/gestia/internal/domain/invoice"
	"github.com/gestia/gestia/internal/domain/series"
	"github.com/gestia/gestia/internal/domain/user"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	postgresRepo "github.com/gestia/gestia/internal/repository/postgres"
)

func NewEstablishmentRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) establishment.Repository {
	return postgresRepo.NewEstablishmentRepository(db, logger, cache)
}

func NewSeriesRepository(db *postgres.DB, logger *logger.Logger) series.Repository {
	return postgresRepo.NewSeriesRepository(db, logger)
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) client.Repository {
	return postgresRepo.NewClientRepository(db, logger, cache)
}

func NewAssetRepository(db *postgres.DB, logger *logger.Logger) asset.Repository {
	return postgresRepo.NewAssetRepository(db, logger)
}

func NewInventoryRepository(db *postgres.DB, logger *logger.Logger) inventory.Repository {
	return postgresRepo.NewInventoryRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) user.Repository {
	return postgresRepo.NewUserRepository(db, logger, cache)
}
