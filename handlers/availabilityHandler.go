package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/services"
)

type AvailabilityHandler struct {
	service *services.AvailabilityService
}

func NewAvailabilityHandler(service *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// GetAvailability returns the calling doctor's weekly template.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	template, err := h.service.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, template, http.StatusOK)
}

// ReplaceAvailability swaps the calling doctor's entire template.
func (h *AvailabilityHandler) ReplaceAvailability(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	var body struct {
		Availability models.Availability `json:"availability"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid availability format", http.StatusBadRequest, err)
		return
	}

	template, err := h.service.Replace(c.Request.Context(), identity.UserID, body.Availability)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, template, http.StatusOK)
}
