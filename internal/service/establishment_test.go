package service

import (
	"testing"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type EstablishmentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    EstablishmentService
	repo       *testutil.InMemoryEstablishmentStore
	seriesRepo *testutil.InMemorySeriesStore
}

func TestEstablishmentService(t *testing.T) {
	suite.Run(t, new(EstablishmentServiceSuite))
}

func (s *EstablishmentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.repo = s.GetStores().EstablishmentRepo.(*testutil.InMemoryEstablishmentStore)
	s.seriesRepo = s.GetStores().SeriesRepo.(*testutil.InMemorySeriesStore)
	s.service = NewEstablishmentService(s.repo, s.seriesRepo)
}

func (s *EstablishmentServiceSuite) createEstablishment(code, name string) *dto.EstablishmentResponse {
	resp, err := s.service.CreateEstablishment(s.GetContext(), dto.CreateEstablishmentRequest{
		Code:  code,
		Name:  name,
		TaxID: "20123456789",
	})
	s.NoError(err)
	return resp
}

func (s *EstablishmentServiceSuite) TestCreateEstablishment() {
	resp := s.createEstablishment("MAIN", "Main Office")
	s.Equal("MAIN", resp.Code)

	got, err := s.service.GetEstablishment(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal("Main Office", got.Name)
}

func (s *EstablishmentServiceSuite) TestCreateEstablishmentDuplicateCode() {
	s.createEstablishment("MAIN", "Main Office")

	_, err := s.service.CreateEstablishment(s.GetContext(), dto.CreateEstablishmentRequest{
		Code:  "MAIN",
		Name:  "Second",
		TaxID: "20123456789",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *EstablishmentServiceSuite) TestUpdateEstablishment() {
	created := s.createEstablishment("MAIN", "Main Office")

	updated, err := s.service.UpdateEstablishment(s.GetContext(), created.ID, dto.UpdateEstablishmentRequest{
		TradeName: lo.ToPtr("HQ"),
	})
	s.NoError(err)
	s.Equal("HQ", updated.TradeName)
	s.Equal("MAIN", updated.Code)
}

func (s *EstablishmentServiceSuite) TestDeleteEstablishment() {
	created := s.createEstablishment("MAIN", "Main Office")

	s.NoError(s.service.DeleteEstablishment(s.GetContext(), created.ID))

	_, err := s.service.GetEstablishment(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *EstablishmentServiceSuite) TestDeleteEstablishmentWithSeries() {
	created := s.createEstablishment("MAIN", "Main Office")

	s.NoError(s.seriesRepo.Create(s.GetContext(), &series.Series{
		ID:              "ser_01",
		EstablishmentID: created.ID,
		DocumentType:    types.DocumentTypeInvoice,
		Code:            "F001",
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}))

	err := s.service.DeleteEstablishment(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// Still there
	_, err = s.service.GetEstablishment(s.GetContext(), created.ID)
	s.NoError(err)
}

func (s *EstablishmentServiceSuite) TestListEstablishments() {
	s.createEstablishment("MAIN", "Main Office")
	s.createEstablishment("WH01", "Warehouse")

	resp, err := s.service.ListEstablishments(s.GetContext(), types.Filter{})
	s.NoError(err)
	s.Equal(2, resp.Total)
}
