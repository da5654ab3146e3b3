package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/services"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// ListForDoctor returns the calling doctor's own appointments, filtered
// by the optional date and status query parameters.
func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	appointments, err := h.service.ListForDoctor(c.Request.Context(), identity.UserID,
		c.Query("date"), c.Query("status"))
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointments, http.StatusOK)
}

// UpdateMedical lets the assigned doctor set status and amend the medical
// record of their own appointment.
func (h *AppointmentHandler) UpdateMedical(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	var body services.UpdateMedicalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	appointment, err := h.service.UpdateMedical(c.Request.Context(), identity.UserID, body)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusOK)
}

// ListAll is the receptionist projection across all doctors.
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	appointments, err := h.service.ListAll(c.Request.Context(),
		c.Query("date"), c.Query("status"), c.Query("doctor"))
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointments, http.StatusOK)
}

// Create books a new appointment on behalf of a patient.
func (h *AppointmentHandler) Create(c *gin.Context) {
	identity, err := middlewares.ExtractIdentity(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Unauthorized", http.StatusUnauthorized, err)
		return
	}

	var body services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	appointment, err := h.service.Create(c.Request.Context(), body, identity.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusCreated)
}

// Update changes an appointment's status and/or slot.
func (h *AppointmentHandler) Update(c *gin.Context) {
	var body services.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	appointment, err := h.service.Update(c.Request.Context(), body)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusOK)
}
