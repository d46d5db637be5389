package dto

import (
	"context"

	"github.com/gestia/gestia/internal/domain/establishment"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
)

type CreateEstablishmentRequest struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	TradeName string `json:"trade_name"`
	TaxID     string `json:"tax_id" validate:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type UpdateEstablishmentRequest struct {
	Code      *string `json:"code,omitempty"`
	Name      *string `json:"name,omitempty"`
	TradeName *string `json:"trade_name,omitempty"`
	TaxID     *string `json:"tax_id,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

type EstablishmentResponse struct {
	*establishment.Establishment
}

type ListEstablishmentsResponse struct {
	Establishments []*EstablishmentResponse `json:"establishments"`
	Total          int                      `json:"total"`
	Offset         int                      `json:"offset"`
	Limit          int                      `json:"limit"`
}

func (r *CreateEstablishmentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateEstablishmentRequest) ToEstablishment(ctx context.Context) *establishment.Establishment {
	return &establishment.Establishment{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ESTABLISHMENT),
		Code:      r.Code,
		Name:      r.Name,
		TradeName: r.TradeName,
		TaxID:     r.TaxID,
		Address:   r.Address,
		City:      r.City,
		Phone:     r.Phone,
		Email:     r.Email,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateEstablishmentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func NewEstablishmentResponse(e *establishment.Establishment) *EstablishmentResponse {
	return &EstablishmentResponse{Establishment: e}
}
