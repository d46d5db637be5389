package service

import (
	"context"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/types"
)

type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, filter client.Filter) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	repo client.Repository
}

func NewClientService(repo client.Repository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient(ctx)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c), nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewClientResponse(c), nil
}

func (s *clientService) ListClients(ctx context.Context, filter client.Filter) (*dto.ListClientsResponse, error) {
	if filter.Limit == 0 {
		filter.Filter = types.GetDefaultFilter()
	}

	clients, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListClientsResponse{
		Clients: make([]*dto.ClientResponse, len(clients)),
		Total:   len(clients),
		Offset:  filter.Offset,
		Limit:   filter.Limit,
	}
	for i, c := range clients {
		response.Clients[i] = dto.NewClientResponse(c)
	}

	return response, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DocumentType != nil {
		c.DocumentType = types.ClientDocumentType(*req.DocumentType)
	}
	if req.DocumentNumber != nil {
		c.DocumentNumber = *req.DocumentNumber
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.TradeName != nil {
		c.TradeName = *req.TradeName
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.CreditDays != nil {
		c.CreditDays = *req.CreditDays
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
