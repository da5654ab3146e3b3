package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/handlers"
)

type DoctorController struct {
	Availability *handlers.AvailabilityHandler
	Appointments *handlers.AppointmentHandler
}

func NewDoctorController(availability *handlers.AvailabilityHandler, appointments *handlers.AppointmentHandler) *DoctorController {
	return &DoctorController{Availability: availability, Appointments: appointments}
}

// RegisterRoutes wires the doctor-scoped routes. The access gate already
// guarantees the caller holds the doctor role for this prefix.
func (dc *DoctorController) RegisterRoutes(router *gin.Engine) {
	doctor := router.Group("/doctor")
	{
		doctor.GET("/availability", dc.Availability.GetAvailability)
		doctor.PUT("/availability", dc.Availability.ReplaceAvailability)
		doctor.GET("/appointments", dc.Appointments.ListForDoctor)
		doctor.PUT("/appointments", dc.Appointments.UpdateMedical)
	}
}
