package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Maheshkadam-Delxn/eye/handlers"
)

type ReceptionistController struct {
	Appointments *handlers.AppointmentHandler
	Patients     *handlers.PatientHandler
}

func NewReceptionistController(appointments *handlers.AppointmentHandler, patients *handlers.PatientHandler) *ReceptionistController {
	return &ReceptionistController{Appointments: appointments, Patients: patients}
}

// RegisterRoutes wires the receptionist-scoped routes.
func (rc *ReceptionistController) RegisterRoutes(router *gin.Engine) {
	receptionist := router.Group("/receptionist")
	{
		receptionist.GET("/appointments", rc.Appointments.ListAll)
		receptionist.POST("/appointments", rc.Appointments.Create)
		receptionist.PUT("/appointments", rc.Appointments.Update)
		receptionist.GET("/patients", rc.Patients.List)
		receptionist.POST("/patients", rc.Patients.Register)
		receptionist.PUT("/patients", rc.Patients.Update)
	}
}
