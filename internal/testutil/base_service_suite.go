package testutil

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/cache"
	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/domain/asset"
	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/domain/establishment"
	"github.com/gestia/gestia/internal/domain/inventory"
	"github.com/gestia/gestia/internal/domain/invoice"
	"github.com/gestia/gestia/internal/domain/series"
	"github.com/gestia/gestia/internal/domain/user"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	EstablishmentRepo establishment.Repository
	SeriesRepo        series.Repository
	ClientRepo        client.Repository
	AssetRepo         asset.Repository
	InventoryRepo     inventory.Repository
	InvoiceRepo       invoice.Repository
	UserRepo          user.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     *MockTxRunner
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := &config.Configuration{
		Deployment: config.DeploymentConfig{Mode: types.ModeLocal},
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Cache: config.CacheConfig{Enabled: true},
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	cache.Initialize(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		EstablishmentRepo: NewInMemoryEstablishmentStore(),
		SeriesRepo:        NewInMemorySeriesStore(),
		ClientRepo:        NewInMemoryClientStore(),
		AssetRepo:         NewInMemoryAssetStore(),
		InventoryRepo:     NewInMemoryInventoryStore(),
		InvoiceRepo:       NewInMemoryInvoiceStore(),
		UserRepo:          NewInMemoryUserStore(),
	}

	s.db = NewMockTxRunner()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.EstablishmentRepo.(*InMemoryEstablishmentStore).Clear()
	s.stores.SeriesRepo.(*InMemorySeriesStore).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.AssetRepo.(*InMemoryAssetStore).Clear()
	s.stores.InventoryRepo.(*InMemoryInventoryStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test transaction runner
func (s *BaseServiceTestSuite) GetDB() *MockTxRunner {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
