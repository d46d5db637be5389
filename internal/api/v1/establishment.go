package v1

import (
	"net/http"

	"github.com/gestia/gestia/internal/api/dto"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/service"
	"github.com/gestia/gestia/internal/types"
	"github.com/gin-gonic/gin"
)

type EstablishmentHandler struct {
	service service.EstablishmentService
	log     *logger.Logger
}

func NewEstablishmentHandler(service service.EstablishmentService, log *logger.Logger) *EstablishmentHandler {
	return &EstablishmentHandler{service: service, log: log}
}

func (h *EstablishmentHandler) CreateEstablishment(c *gin.Context) {
	var req dto.CreateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateEstablishment(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *EstablishmentHandler) GetEstablishment(c *gin.Context) {
	resp, err := h.service.GetEstablishment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstablishmentHandler) ListEstablishments(c *gin.Context) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListEstablishments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstablishmentHandler) UpdateEstablishment(c *gin.Context) {
	var req dto.UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateEstablishment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstablishmentHandler) DeleteEstablishment(c *gin.Context) {
	if err := h.service.DeleteEstablishment(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "establishment deleted successfully"})
}
