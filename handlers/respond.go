package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/middlewares"
	"github.com/Maheshkadam-Delxn/eye/repositories"
	"github.com/Maheshkadam-Delxn/eye/services"
)

// serviceError translates a service-layer error into the HTTP taxonomy:
// validation/conflict 400, invalid credentials 401, closed registration
// 403, missing entity 404, anything else a generic 500 with the detail
// kept server-side.
func serviceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		middlewares.HttpError(c, ve.Error(), http.StatusBadRequest, err)
		return
	}

	switch {
	case errors.Is(err, repositories.ErrSlotUnavailable),
		errors.Is(err, repositories.ErrEmailTaken),
		errors.Is(err, repositories.ErrPatientEmailTaken):
		middlewares.HttpError(c, err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrDoctorNotFound),
		errors.Is(err, repositories.ErrPatientNotFound),
		errors.Is(err, repositories.ErrAppointmentNotFound):
		middlewares.HttpError(c, err.Error(), http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		middlewares.HttpError(c, err.Error(), http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrRegistrationClosed):
		middlewares.HttpError(c, err.Error(), http.StatusForbidden, err)
	default:
		middlewares.HttpError(c, "Internal server error", http.StatusInternalServerError, err)
	}
}
