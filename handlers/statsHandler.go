package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/services"
)

type StatsHandler struct {
	service *services.StatsService
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get returns the admin dashboard counts.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.service.Get(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, stats, http.StatusOK)
}
