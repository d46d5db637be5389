package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type SeriesServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     SeriesService
	seriesRepo  *testutil.InMemorySeriesStore
	invoiceRepo *testutil.InMemoryInvoiceStore
}

func TestSeriesService(t *testing.T) {
	suite.Run(t, new(SeriesServiceSuite))
}

func (s *SeriesServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.seriesRepo = s.GetStores().SeriesRepo.(*testutil.InMemorySeriesStore)
	s.invoiceRepo = s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore)
	s.service = NewSeriesService(s.seriesRepo, s.invoiceRepo, s.GetDB(), s.GetLogger())
}

func (s *SeriesServiceSuite) createSeries(code string, startAt int64) *dto.SeriesResponse {
	req := dto.CreateSeriesRequest{
		EstablishmentID: "est_01",
		DocumentType:    string(types.DocumentTypeInvoice),
		Code:            code,
	}
	if startAt > 0 {
		req.StartingCorrelative = lo.ToPtr(startAt)
	}
	resp, err := s.service.CreateSeries(s.GetContext(), req)
	s.NoError(err)
	return resp
}

func (s *SeriesServiceSuite) TestCreateSeries() {
	testCases := []struct {
		name          string
		request       dto.CreateSeriesRequest
		expectedError bool
	}{
		{
			name: "successful_creation",
			request: dto.CreateSeriesRequest{
				EstablishmentID: "est_01",
				DocumentType:    string(types.DocumentTypeInvoice),
				Code:            "F001",
			},
		},
		{
			name: "invalid_code_format",
			request: dto.CreateSeriesRequest{
				EstablishmentID: "est_01",
				DocumentType:    string(types.DocumentTypeInvoice),
				Code:            "INVALID",
			},
			expectedError: true,
		},
		{
			name: "invalid_document_type",
			request: dto.CreateSeriesRequest{
				EstablishmentID: "est_01",
				DocumentType:    "purchase_order",
				Code:            "F002",
			},
			expectedError: true,
		},
		{
			name: "missing_establishment",
			request: dto.CreateSeriesRequest{
				DocumentType: string(types.DocumentTypeInvoice),
				Code:         "F003",
			},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateSeries(s.GetContext(), tc.request)
			if tc.expectedError {
				s.Error(err)
				return
			}
			s.NoError(err)
			s.NotNil(resp)
			s.Equal(tc.request.Code, resp.Code)
			s.Equal(int64(0), resp.CurrentCorrelative)
		})
	}
}

func (s *SeriesServiceSuite) TestCreateSeriesDuplicateCode() {
	s.createSeries("F001", 0)

	_, err := s.service.CreateSeries(s.GetContext(), dto.CreateSeriesRequest{
		EstablishmentID: "est_01",
		DocumentType:    string(types.DocumentTypeInvoice),
		Code:            "F001",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *SeriesServiceSuite) TestAllocateNextSequential() {
	created := s.createSeries("F001", 0)

	for i := int64(1); i <= 5; i++ {
		number, err := s.service.AllocateNext(s.GetContext(), created.ID)
		s.NoError(err)
		s.Equal(i, number.Sequence)
		s.Equal("F001", number.SeriesCodeUsed)
		s.Equal(fmt.Sprintf("F001-%07d", i), number.FullNumber)
	}

	sr, err := s.seriesRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(int64(5), sr.CurrentCorrelative)
}

func (s *SeriesServiceSuite) TestAllocateNextFormatting() {
	created := s.createSeries("F001", 41)

	number, err := s.service.AllocateNext(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(int64(42), number.Sequence)
	s.Equal("F001-0000042", number.FullNumber)
}

func (s *SeriesServiceSuite) TestAllocateNextConcurrent() {
	const workers = 50

	created := s.createSeries("B001", 0)

	var wg sync.WaitGroup
	results := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := s.service.AllocateNext(s.GetContext(), created.ID)
			if err == nil {
				results <- number.Sequence
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool)
	for seq := range results {
		s.False(seen[seq], "sequence %d allocated twice", seq)
		seen[seq] = true
	}
	s.Len(seen, workers)

	sr, err := s.seriesRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(int64(workers), sr.CurrentCorrelative)
}

func (s *SeriesServiceSuite) TestAllocateNextNotFound() {
	_, err := s.service.AllocateNext(s.GetContext(), "ser_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SeriesServiceSuite) TestAllocateNextExhausted() {
	created := s.createSeries("F001", int64(types.MaxCorrelative))

	_, err := s.service.AllocateNext(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// The stored correlative stays at the ceiling
	sr, err := s.seriesRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(int64(types.MaxCorrelative), sr.CurrentCorrelative)
}

func (s *SeriesServiceSuite) TestAllocateNextFailureLeavesCounterUntouched() {
	created := s.createSeries("F001", 10)

	s.seriesRepo.FailNextAllocation(ierr.NewError("store unavailable").
		Mark(ierr.ErrDatabase))

	_, err := s.service.AllocateNext(s.GetContext(), created.ID)
	s.Error(err)

	sr, err := s.seriesRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(int64(10), sr.CurrentCorrelative)

	// A plain retry succeeds and consumes the next number; nothing was
	// lost or skipped by the failed attempt
	number, err := s.service.AllocateNext(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(int64(11), number.Sequence)
	s.Equal("F001-0000011", number.FullNumber)
}

func (s *SeriesServiceSuite) TestUpdateSeriesCodeLockedAfterIssuance() {
	created := s.createSeries("F001", 0)

	// Before any allocation the code may change
	resp, err := s.service.UpdateSeries(s.GetContext(), created.ID, dto.UpdateSeriesRequest{
		Code: lo.ToPtr("F002"),
	})
	s.NoError(err)
	s.Equal("F002", resp.Code)

	_, err = s.service.AllocateNext(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.UpdateSeries(s.GetContext(), created.ID, dto.UpdateSeriesRequest{
		Code: lo.ToPtr("F003"),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SeriesServiceSuite) TestSetDefaultClearsPrevious() {
	first := s.createSeries("F001", 0)
	second := s.createSeries("F002", 0)

	_, err := s.service.SetDefault(s.GetContext(), first.ID)
	s.NoError(err)

	_, err = s.service.SetDefault(s.GetContext(), second.ID)
	s.NoError(err)

	firstAfter, err := s.seriesRepo.Get(s.GetContext(), first.ID)
	s.NoError(err)
	s.False(firstAfter.IsDefault)

	secondAfter, err := s.seriesRepo.Get(s.GetContext(), second.ID)
	s.NoError(err)
	s.True(secondAfter.IsDefault)
}

func (s *SeriesServiceSuite) TestDeleteSeries() {
	created := s.createSeries("F001", 0)

	err := s.service.DeleteSeries(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.GetSeries(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SeriesServiceSuite) TestDeleteSeriesRefusedWhenReferenced() {
	created := s.createSeries("F001", 0)

	number, err := s.service.AllocateNext(s.GetContext(), created.ID)
	s.NoError(err)

	inv := &invoiceFixture{
		seriesID: created.ID,
		sequence: number.Sequence,
	}
	s.NoError(inv.insert(s))

	err = s.service.DeleteSeries(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SeriesServiceSuite) TestListSeriesFilters() {
	s.createSeries("F001", 0)
	s.createSeries("F002", 0)

	resp, err := s.service.ListSeries(s.GetContext(), series.Filter{
		EstablishmentID: "est_01",
	})
	s.NoError(err)
	s.Equal(2, resp.Total)
	s.Equal("F001", resp.Series[0].Code)
	s.Equal("F002", resp.Series[1].Code)

	resp, err = s.service.ListSeries(s.GetContext(), series.Filter{
		EstablishmentID: "est_other",
	})
	s.NoError(err)
	s.Equal(0, resp.Total)
}

// invoiceFixture inserts a minimal issued invoice row for reference checks
type invoiceFixture struct {
	seriesID string
	sequence int64
}

func (f *invoiceFixture) insert(s *SeriesServiceSuite) error {
	return s.invoiceRepo.CreateWithLineItems(s.GetContext(), testInvoice(s.GetContext(), f.seriesID, f.sequence))
}
