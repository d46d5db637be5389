package dto

import (
	"context"

	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
)

type CreateSeriesRequest struct {
	EstablishmentID string `json:"establishment_id" validate:"required"`
	DocumentType    string `json:"document_type" validate:"required"`
	Code            string `json:"code" validate:"required"`
	IsDefault       bool   `json:"is_default"`

	// StartingCorrelative seeds the counter when migrating numbering
	// from a previous system; it can only be set at creation time
	StartingCorrelative *int64 `json:"starting_correlative,omitempty" validate:"omitempty,min=0"`
}

type UpdateSeriesRequest struct {
	Code      *string `json:"code,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

type SeriesResponse struct {
	*series.Series
}

type ListSeriesResponse struct {
	Series []*SeriesResponse `json:"series"`
	Total  int               `json:"total"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
}

// AllocateNumberResponse is the allocation result returned to the caller
type AllocateNumberResponse struct {
	FullNumber     string `json:"full_number"`
	Sequence       int64  `json:"sequence"`
	SeriesCodeUsed string `json:"series_code_used"`
}

func (r *CreateSeriesRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := types.DocumentType(r.DocumentType).Validate(); err != nil {
		return err
	}
	if err := types.ValidateSeriesCode(r.Code); err != nil {
		return err
	}
	if r.StartingCorrelative != nil && *r.StartingCorrelative > int64(types.MaxCorrelative) {
		return ierr.NewError("starting correlative out of range").
			WithHintf("Starting correlative cannot exceed %d", types.MaxCorrelative).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateSeriesRequest) ToSeries(ctx context.Context) *series.Series {
	s := &series.Series{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SERIES),
		EstablishmentID: r.EstablishmentID,
		DocumentType:    types.DocumentType(r.DocumentType),
		Code:            r.Code,
		IsDefault:       r.IsDefault,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	if r.StartingCorrelative != nil {
		s.CurrentCorrelative = *r.StartingCorrelative
	}
	return s
}

func (r *UpdateSeriesRequest) Validate() error {
	if r.Code != nil {
		if err := types.ValidateSeriesCode(*r.Code); err != nil {
			return err
		}
	}
	return nil
}

func NewSeriesResponse(s *series.Series) *SeriesResponse {
	return &SeriesResponse{Series: s}
}

func NewAllocateNumberResponse(n *series.DocumentNumber) *AllocateNumberResponse {
	return &AllocateNumberResponse{
		FullNumber:     n.FullNumber,
		Sequence:       n.Sequence,
		SeriesCodeUsed: n.SeriesCodeUsed,
	}
}
