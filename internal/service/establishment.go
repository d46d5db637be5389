package service

import (
	"context"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/establishment"
	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
)

type EstablishmentService interface {
	CreateEstablishment(ctx context.Context, req dto.CreateEstablishmentRequest) (*dto.EstablishmentResponse, error)
	GetEstablishment(ctx context.Context, id string) (*dto.EstablishmentResponse, error)
	ListEstablishments(ctx context.Context, filter types.Filter) (*dto.ListEstablishmentsResponse, error)
	UpdateEstablishment(ctx context.Context, id string, req dto.UpdateEstablishmentRequest) (*dto.EstablishmentResponse, error)
	DeleteEstablishment(ctx context.Context, id string) error
}

type establishmentService struct {
	repo       establishment.Repository
	seriesRepo series.Repository
}

func NewEstablishmentService(repo establishment.Repository, seriesRepo series.Repository) EstablishmentService {
	return &establishmentService{repo: repo, seriesRepo: seriesRepo}
}

func (s *establishmentService) CreateEstablishment(ctx context.Context, req dto.CreateEstablishmentRequest) (*dto.EstablishmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := req.ToEstablishment(ctx)
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	return dto.NewEstablishmentResponse(e), nil
}

func (s *establishmentService) GetEstablishment(ctx context.Context, id string) (*dto.EstablishmentResponse, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewEstablishmentResponse(e), nil
}

func (s *establishmentService) ListEstablishments(ctx context.Context, filter types.Filter) (*dto.ListEstablishmentsResponse, error) {
	if filter.Limit == 0 {
		filter = types.GetDefaultFilter()
	}

	establishments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListEstablishmentsResponse{
		Establishments: make([]*dto.EstablishmentResponse, len(establishments)),
		Total:          len(establishments),
		Offset:         filter.Offset,
		Limit:          filter.Limit,
	}
	for i, e := range establishments {
		response.Establishments[i] = dto.NewEstablishmentResponse(e)
	}

	return response, nil
}

func (s *establishmentService) UpdateEstablishment(ctx context.Context, id string, req dto.UpdateEstablishmentRequest) (*dto.EstablishmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		e.Code = *req.Code
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.TradeName != nil {
		e.TradeName = *req.TradeName
	}
	if req.TaxID != nil {
		e.TaxID = *req.TaxID
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.City != nil {
		e.City = *req.City
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Email != nil {
		e.Email = *req.Email
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return dto.NewEstablishmentResponse(e), nil
}

func (s *establishmentService) DeleteEstablishment(ctx context.Context, id string) error {
	count, err := s.seriesRepo.CountByEstablishment(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ierr.NewError("establishment has series").
			WithHint("Delete or reassign the establishment's document series first").
			WithReportableDetails(map[string]any{"establishment_id": id, "series": count}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.repo.Delete(ctx, id)
}
