package v1

import (
	"net/http"
	"time"

	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	var from, to time.Time
	var err error

	if v := c.Query("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Invalid from date, expected YYYY-MM-DD").
				Mark(ierr.ErrValidation))
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Invalid to date, expected YYYY-MM-DD").
				Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.service.GetSummary(c.Request.Context(), from, to)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
