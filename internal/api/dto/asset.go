package dto

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/domain/asset"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateAssetRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name" validate:"required"`
	Category         string          `json:"category" validate:"required"`
	EstablishmentID  string          `json:"establishment_id" validate:"required"`
	AcquisitionDate  time.Time       `json:"acquisition_date" validate:"required"`
	AcquisitionCost  decimal.Decimal `json:"acquisition_cost"`
	ResidualValue    decimal.Decimal `json:"residual_value"`
	UsefulLifeMonths int             `json:"useful_life_months" validate:"min=0"`
}

type UpdateAssetRequest struct {
	Name             *string          `json:"name,omitempty"`
	Category         *string          `json:"category,omitempty"`
	EstablishmentID  *string          `json:"establishment_id,omitempty"`
	AcquisitionCost  *decimal.Decimal `json:"acquisition_cost,omitempty"`
	ResidualValue    *decimal.Decimal `json:"residual_value,omitempty"`
	UsefulLifeMonths *int             `json:"useful_life_months,omitempty" validate:"omitempty,min=0"`
	State            *string          `json:"state,omitempty"`
}

type AssetResponse struct {
	*asset.Asset
	MonthlyDepreciation decimal.Decimal `json:"monthly_depreciation"`
}

type ListAssetsResponse struct {
	Assets []*AssetResponse `json:"assets"`
	Total  int              `json:"total"`
	Offset int              `json:"offset"`
	Limit  int              `json:"limit"`
}

func (r *CreateAssetRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.AcquisitionCost.IsNegative() || r.ResidualValue.IsNegative() {
		return ierr.NewError("negative amount").
			WithHint("Acquisition cost and residual value must not be negative").
			Mark(ierr.ErrValidation)
	}
	if r.ResidualValue.GreaterThan(r.AcquisitionCost) {
		return ierr.NewError("residual value exceeds cost").
			WithHint("Residual value cannot exceed the acquisition cost").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateAssetRequest) ToAsset(ctx context.Context) *asset.Asset {
	code := r.Code
	if code == "" {
		code = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ASSET)
	}
	return &asset.Asset{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ASSET),
		Code:             code,
		Name:             r.Name,
		Category:         r.Category,
		EstablishmentID:  r.EstablishmentID,
		AcquisitionDate:  r.AcquisitionDate,
		AcquisitionCost:  r.AcquisitionCost,
		ResidualValue:    r.ResidualValue,
		UsefulLifeMonths: r.UsefulLifeMonths,
		State:            types.AssetStatusActive,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateAssetRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.State != nil {
		return types.AssetStatus(*r.State).Validate()
	}
	return nil
}

func NewAssetResponse(a *asset.Asset) *AssetResponse {
	return &AssetResponse{
		Asset:               a,
		MonthlyDepreciation: a.MonthlyDepreciation(),
	}
}
