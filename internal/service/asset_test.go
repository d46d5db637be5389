package service

import (
	"testing"
	"time"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/asset"
	"github.com/gestia/gestia/internal/domain/establishment"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AssetServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AssetService
	repo    *testutil.InMemoryAssetStore
}

func TestAssetService(t *testing.T) {
	suite.Run(t, new(AssetServiceSuite))
}

func (s *AssetServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.repo = s.GetStores().AssetRepo.(*testutil.InMemoryAssetStore)
	s.service = NewAssetService(s.repo, s.GetStores().EstablishmentRepo)

	s.NoError(s.GetStores().EstablishmentRepo.Create(s.GetContext(), &establishment.Establishment{
		ID:        "est_01",
		Code:      "MAIN",
		Name:      "Main Office",
		TaxID:     "20123456789",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *AssetServiceSuite) createAsset(name string) *dto.AssetResponse {
	resp, err := s.service.CreateAsset(s.GetContext(), dto.CreateAssetRequest{
		Name:             name,
		Category:         "machinery",
		EstablishmentID:  "est_01",
		AcquisitionDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		AcquisitionCost:  decimal.NewFromInt(12000),
		ResidualValue:    decimal.NewFromInt(2000),
		UsefulLifeMonths: 48,
	})
	s.NoError(err)
	return resp
}

func (s *AssetServiceSuite) TestCreateAsset() {
	resp := s.createAsset("Lathe")
	s.Equal("Lathe", resp.Name)
	s.Equal(types.AssetStatusActive, resp.State)

	// (12000 - 2000) / 48 = 208.33
	s.True(resp.MonthlyDepreciation.Equal(decimal.NewFromFloat(208.33)),
		"depreciation %s", resp.MonthlyDepreciation)
}

func (s *AssetServiceSuite) TestCreateAssetUnknownEstablishment() {
	_, err := s.service.CreateAsset(s.GetContext(), dto.CreateAssetRequest{
		Name:            "Lathe",
		Category:        "machinery",
		EstablishmentID: "est_missing",
		AcquisitionDate: time.Now().UTC(),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *AssetServiceSuite) TestDepreciationWithoutUsefulLife() {
	resp, err := s.service.CreateAsset(s.GetContext(), dto.CreateAssetRequest{
		Name:            "Land",
		Category:        "property",
		EstablishmentID: "est_01",
		AcquisitionDate: time.Now().UTC(),
		AcquisitionCost: decimal.NewFromInt(50000),
	})
	s.NoError(err)
	s.True(resp.MonthlyDepreciation.IsZero())
}

func (s *AssetServiceSuite) TestUpdateAssetState() {
	created := s.createAsset("Lathe")

	updated, err := s.service.UpdateAsset(s.GetContext(), created.ID, dto.UpdateAssetRequest{
		State: lo.ToPtr(string(types.AssetStatusInRepair)),
	})
	s.NoError(err)
	s.Equal(types.AssetStatusInRepair, updated.State)
}

func (s *AssetServiceSuite) TestListAssetsByCategory() {
	s.createAsset("Lathe")

	_, err := s.service.CreateAsset(s.GetContext(), dto.CreateAssetRequest{
		Name:            "Delivery Van",
		Category:        "vehicle",
		EstablishmentID: "est_01",
		AcquisitionDate: time.Now().UTC(),
	})
	s.NoError(err)

	resp, err := s.service.ListAssets(s.GetContext(), asset.Filter{Category: "vehicle"})
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal("Delivery Van", resp.Assets[0].Name)
}

func (s *AssetServiceSuite) TestDeleteAsset() {
	created := s.createAsset("Lathe")

	s.NoError(s.service.DeleteAsset(s.GetContext(), created.ID))

	_, err := s.service.GetAsset(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
