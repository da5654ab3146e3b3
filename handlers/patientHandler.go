package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/services"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List returns patients with optional search and pagination.
func (h *PatientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.List(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}

type patientRequest struct {
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	PhoneNumber      string                  `json:"phoneNumber"`
	DateOfBirth      string                  `json:"dateOfBirth"`
	Gender           string                  `json:"gender"`
	Address          string                  `json:"address"`
	MedicalHistory   models.MedicalHistory   `json:"medicalHistory"`
	EmergencyContact models.EmergencyContact `json:"emergencyContact"`
}

// Register creates a new patient record.
func (h *PatientHandler) Register(c *gin.Context) {
	var body patientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	dob, err := time.Parse("2006-01-02", body.DateOfBirth)
	if err != nil {
		middlewares.HttpError(c, "Invalid date of birth, expected YYYY-MM-DD", http.StatusBadRequest, err)
		return
	}

	patient := &models.Patient{
		Name:             body.Name,
		Email:            body.Email,
		PhoneNumber:      body.PhoneNumber,
		DateOfBirth:      dob,
		Gender:           body.Gender,
		Address:          body.Address,
		MedicalHistory:   body.MedicalHistory,
		EmergencyContact: body.EmergencyContact,
	}

	created, err := h.service.Register(c.Request.Context(), patient)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, created, http.StatusCreated)
}

// Update mutates an existing patient record.
func (h *PatientHandler) Update(c *gin.Context) {
	var body struct {
		PatientID string `json:"patientId"`
		services.PatientUpdate
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	patient, err := h.service.Update(c.Request.Context(), body.PatientID, body.PatientUpdate)
	if err != nil {
		serviceError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusOK)
}
