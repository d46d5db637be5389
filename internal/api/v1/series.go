package v1

import (
	"net/http"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/series"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/service"
	"github.com/gin-gonic/gin"
)

type SeriesHandler struct {
	service service.SeriesService
	log     *logger.Logger
}

func NewSeriesHandler(service service.SeriesService, log *logger.Logger) *SeriesHandler {
	return &SeriesHandler{service: service, log: log}
}

func (h *SeriesHandler) CreateSeries(c *gin.Context) {
	var req dto.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSeries(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SeriesHandler) GetSeries(c *gin.Context) {
	resp, err := h.service.GetSeries(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SeriesHandler) ListSeries(c *gin.Context) {
	var filter series.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListSeries(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SeriesHandler) UpdateSeries(c *gin.Context) {
	var req dto.UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSeries(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SeriesHandler) DeleteSeries(c *gin.Context) {
	if err := h.service.DeleteSeries(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "series deleted successfully"})
}

func (h *SeriesHandler) SetDefault(c *gin.Context) {
	resp, err := h.service.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AllocateNext reserves the next document number from the series. The
// response is the only place the allocated number is reported; on any
// error nothing was consumed.
func (h *SeriesHandler) AllocateNext(c *gin.Context) {
	number, err := h.service.AllocateNext(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAllocateNumberResponse(number))
}
