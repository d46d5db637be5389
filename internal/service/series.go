package service

import (
	"context"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/invoice"
	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/types"
)

type SeriesService interface {
	CreateSeries(ctx context.Context, req dto.CreateSeriesRequest) (*dto.SeriesResponse, error)
	GetSeries(ctx context.Context, id string) (*dto.SeriesResponse, error)
	ListSeries(ctx context.Context, filter series.Filter) (*dto.ListSeriesResponse, error)
	UpdateSeries(ctx context.Context, id string, req dto.UpdateSeriesRequest) (*dto.SeriesResponse, error)
	DeleteSeries(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*dto.SeriesResponse, error)

	// AllocateNext atomically reserves the next correlative of the
	// series and returns the formatted document number. Any error means
	// no number was consumed from the caller's point of view; callers
	// must not advance anything locally and may simply call again.
	AllocateNext(ctx context.Context, seriesID string) (*series.DocumentNumber, error)
}

type seriesService struct {
	repo        series.Repository
	invoiceRepo invoice.Repository
	db          TxRunner
	logger      *logger.Logger
}

func NewSeriesService(repo series.Repository, invoiceRepo invoice.Repository, db TxRunner, logger *logger.Logger) SeriesService {
	return &seriesService{repo: repo, invoiceRepo: invoiceRepo, db: db, logger: logger}
}

func (s *seriesService) CreateSeries(ctx context.Context, req dto.CreateSeriesRequest) (*dto.SeriesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sr := req.ToSeries(ctx)

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if sr.IsDefault {
			if err := s.repo.ClearDefault(ctx, sr.EstablishmentID, sr.DocumentType); err != nil {
				return err
			}
		}
		return s.repo.Create(ctx, sr)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewSeriesResponse(sr), nil
}

func (s *seriesService) GetSeries(ctx context.Context, id string) (*dto.SeriesResponse, error) {
	sr, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSeriesResponse(sr), nil
}

func (s *seriesService) ListSeries(ctx context.Context, filter series.Filter) (*dto.ListSeriesResponse, error) {
	if filter.Limit == 0 {
		filter.Filter = types.GetDefaultFilter()
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListSeriesResponse{
		Series: make([]*dto.SeriesResponse, len(list)),
		Total:  len(list),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}
	for i, sr := range list {
		response.Series[i] = dto.NewSeriesResponse(sr)
	}

	return response, nil
}

func (s *seriesService) UpdateSeries(ctx context.Context, id string, req dto.UpdateSeriesRequest) (*dto.SeriesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sr, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renaming a series that already issued documents would break the
	// audit trail between stored numbers and the series label
	if req.Code != nil && *req.Code != sr.Code && sr.CurrentCorrelative > 0 {
		return nil, ierr.NewError("series code is locked").
			WithHint("The code of a series that has issued documents cannot be changed").
			WithReportableDetails(map[string]any{
				"series_id":           id,
				"current_correlative": sr.CurrentCorrelative,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if req.Code != nil {
		sr.Code = *req.Code
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if req.IsDefault != nil && *req.IsDefault && !sr.IsDefault {
			if err := s.repo.ClearDefault(ctx, sr.EstablishmentID, sr.DocumentType); err != nil {
				return err
			}
		}
		if req.IsDefault != nil {
			sr.IsDefault = *req.IsDefault
		}
		return s.repo.Update(ctx, sr)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewSeriesResponse(sr), nil
}

func (s *seriesService) DeleteSeries(ctx context.Context, id string) error {
	count, err := s.invoiceRepo.CountBySeries(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ierr.NewError("series is referenced by invoices").
			WithHint("A series referenced by issued invoices cannot be deleted").
			WithReportableDetails(map[string]any{"series_id": id, "invoices": count}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.repo.Delete(ctx, id)
}

func (s *seriesService) SetDefault(ctx context.Context, id string) (*dto.SeriesResponse, error) {
	sr, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.ClearDefault(ctx, sr.EstablishmentID, sr.DocumentType); err != nil {
			return err
		}
		sr.IsDefault = true
		return s.repo.Update(ctx, sr)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewSeriesResponse(sr), nil
}

func (s *seriesService) AllocateNext(ctx context.Context, seriesID string) (*series.DocumentNumber, error) {
	if seriesID == "" {
		return nil, ierr.NewError("series id is required").
			WithHint("Please select a document series").
			Mark(ierr.ErrValidation)
	}

	// The repository performs the read-increment-write as one atomic
	// statement; there is no application-level locking or retry here.
	sequence, code, err := s.repo.NextCorrelative(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	return &series.DocumentNumber{
		FullNumber:     types.FormatDocumentNumber(code, sequence),
		Sequence:       sequence,
		SeriesCodeUsed: code,
	}, nil
}
