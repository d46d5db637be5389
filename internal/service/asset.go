package service

import (
	"context"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/asset"
	"github.com/gestia/gestia/internal/domain/establishment"
	"github.com/gestia/gestia/internal/types"
)

type AssetService interface {
	CreateAsset(ctx context.Context, req dto.CreateAssetRequest) (*dto.AssetResponse, error)
	GetAsset(ctx context.Context, id string) (*dto.AssetResponse, error)
	ListAssets(ctx context.Context, filter asset.Filter) (*dto.ListAssetsResponse, error)
	UpdateAsset(ctx context.Context, id string, req dto.UpdateAssetRequest) (*dto.AssetResponse, error)
	DeleteAsset(ctx context.Context, id string) error
}

type assetService struct {
	repo              asset.Repository
	establishmentRepo establishment.Repository
}

func NewAssetService(repo asset.Repository, establishmentRepo establishment.Repository) AssetService {
	return &assetService{repo: repo, establishmentRepo: establishmentRepo}
}

func (s *assetService) CreateAsset(ctx context.Context, req dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.establishmentRepo.Get(ctx, req.EstablishmentID); err != nil {
		return nil, err
	}

	a := req.ToAsset(ctx)
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return dto.NewAssetResponse(a), nil
}

func (s *assetService) GetAsset(ctx context.Context, id string) (*dto.AssetResponse, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAssetResponse(a), nil
}

func (s *assetService) ListAssets(ctx context.Context, filter asset.Filter) (*dto.ListAssetsResponse, error) {
	if filter.Limit == 0 {
		filter.Filter = types.GetDefaultFilter()
	}

	assets, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListAssetsResponse{
		Assets: make([]*dto.AssetResponse, len(assets)),
		Total:  len(assets),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}
	for i, a := range assets {
		response.Assets[i] = dto.NewAssetResponse(a)
	}

	return response, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, id string, req dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EstablishmentID != nil {
		if _, err := s.establishmentRepo.Get(ctx, *req.EstablishmentID); err != nil {
			return nil, err
		}
		a.EstablishmentID = *req.EstablishmentID
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.AcquisitionCost != nil {
		a.AcquisitionCost = *req.AcquisitionCost
	}
	if req.ResidualValue != nil {
		a.ResidualValue = *req.ResidualValue
	}
	if req.UsefulLifeMonths != nil {
		a.UsefulLifeMonths = *req.UsefulLifeMonths
	}
	if req.State != nil {
		a.State = types.AssetStatus(*req.State)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return dto.NewAssetResponse(a), nil
}

func (s *assetService) DeleteAsset(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
