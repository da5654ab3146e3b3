package repositories

import "errors"

// Sentinel errors surfaced to services and mapped to HTTP codes at the
// handler layer. Messages are caller-facing.
var (
	ErrUserNotFound        = errors.New("User not found")
	ErrDoctorNotFound      = errors.New("Doctor not found")
	ErrPatientNotFound     = errors.New("Patient not found")
	ErrAppointmentNotFound = errors.New("Appointment not found")
	ErrSlotUnavailable     = errors.New("Time slot is not available")
	ErrEmailTaken          = errors.New("User with this email already exists")
	ErrPatientEmailTaken   = errors.New("Patient with this email already exists")
)
