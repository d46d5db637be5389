package dto

import (
	"context"

	"github.com/gestia/gestia/internal/domain/client"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
)

type CreateClientRequest struct {
	DocumentType   string `json:"document_type" validate:"required"`
	DocumentNumber string `json:"document_number" validate:"required"`
	Name           string `json:"name" validate:"required"`
	TradeName      string `json:"trade_name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	CreditDays     int    `json:"credit_days" validate:"min=0"`
}

type UpdateClientRequest struct {
	DocumentType   *string `json:"document_type,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`
	Name           *string `json:"name,omitempty"`
	TradeName      *string `json:"trade_name,omitempty"`
	Address        *string `json:"address,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	CreditDays     *int    `json:"credit_days,omitempty" validate:"omitempty,min=0"`
}

type ClientResponse struct {
	*client.Client
}

type ListClientsResponse struct {
	Clients []*ClientResponse `json:"clients"`
	Total   int               `json:"total"`
	Offset  int               `json:"offset"`
	Limit   int               `json:"limit"`
}

func (r *CreateClientRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return types.ClientDocumentType(r.DocumentType).Validate()
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	return &client.Client{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		DocumentType:   types.ClientDocumentType(r.DocumentType),
		DocumentNumber: r.DocumentNumber,
		Name:           r.Name,
		TradeName:      r.TradeName,
		Address:        r.Address,
		Phone:          r.Phone,
		Email:          r.Email,
		CreditDays:     r.CreditDays,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateClientRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.DocumentType != nil {
		return types.ClientDocumentType(*r.DocumentType).Validate()
	}
	return nil
}

func NewClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{Client: c}
}
