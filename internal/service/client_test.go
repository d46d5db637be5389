package service

import (
	"testing"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/client"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ClientServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ClientService
	repo    *testutil.InMemoryClientStore
}

func TestClientService(t *testing.T) {
	suite.Run(t, new(ClientServiceSuite))
}

func (s *ClientServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.repo = s.GetStores().ClientRepo.(*testutil.InMemoryClientStore)
	s.service = NewClientService(s.repo)
}

func (s *ClientServiceSuite) createClient(name, docNumber string) *dto.ClientResponse {
	resp, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		DocumentType:   "ruc",
		DocumentNumber: docNumber,
		Name:           name,
		CreditDays:     15,
	})
	s.NoError(err)
	return resp
}

func (s *ClientServiceSuite) TestCreateClient() {
	resp := s.createClient("Comercial Andina SAC", "20123456789")
	s.Equal("Comercial Andina SAC", resp.Name)
	s.Equal(15, resp.CreditDays)

	got, err := s.service.GetClient(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.ID, got.ID)
}

func (s *ClientServiceSuite) TestCreateClientInvalidDocumentType() {
	_, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		DocumentType:   "passport",
		DocumentNumber: "X123",
		Name:           "Traveler",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ClientServiceSuite) TestCreateClientDuplicateDocument() {
	s.createClient("Comercial Andina SAC", "20123456789")

	_, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		DocumentType:   "ruc",
		DocumentNumber: "20123456789",
		Name:           "Same Tax ID",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *ClientServiceSuite) TestUpdateClient() {
	created := s.createClient("Comercial Andina SAC", "20123456789")

	updated, err := s.service.UpdateClient(s.GetContext(), created.ID, dto.UpdateClientRequest{
		TradeName:  lo.ToPtr("Andina"),
		CreditDays: lo.ToPtr(30),
	})
	s.NoError(err)
	s.Equal("Andina", updated.TradeName)
	s.Equal(30, updated.CreditDays)
	s.Equal("20123456789", updated.DocumentNumber)
}

func (s *ClientServiceSuite) TestListClientsSearch() {
	s.createClient("Comercial Andina SAC", "20123456789")
	s.createClient("Ferreteria El Sol", "20987654321")

	resp, err := s.service.ListClients(s.GetContext(), client.Filter{Search: "andina"})
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal("Comercial Andina SAC", resp.Clients[0].Name)

	// Search also matches the document number
	resp, err = s.service.ListClients(s.GetContext(), client.Filter{Search: "2098765"})
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal("Ferreteria El Sol", resp.Clients[0].Name)
}

func (s *ClientServiceSuite) TestDeleteClient() {
	created := s.createClient("Comercial Andina SAC", "20123456789")

	s.NoError(s.service.DeleteClient(s.GetContext(), created.ID))

	_, err := s.service.GetClient(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// The document number can be reused after deletion
	s.createClient("Reborn SAC", "20123456789")
}
