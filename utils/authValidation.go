package utils

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Maheshkadam-Delxn/eye/models"
)

// Validation errors
var (
	ErrInvalidAvailability = errors.New("Invalid availability format")
)

// ValidateLogin checks the login payload.
func ValidateLogin(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
}

// ValidateNewUser validates a staff account before provisioning. Doctors
// must carry a specialization.
func ValidateNewUser(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&user.Role, validation.Required, validation.In(models.RoleAdmin, models.RoleDoctor, models.RoleReceptionist)),
	)
	if err != nil {
		return err
	}
	if user.Role == models.RoleDoctor && user.Specialization == "" {
		return validation.Errors{"specialization": errors.New("specialization is required for doctors")}.Filter()
	}
	return nil
}

// ValidateAvailability checks a doctor's availability template: every day
// entry must name a day and every slot must have both a start and end time.
func ValidateAvailability(template models.Availability) error {
	for _, day := range template {
		if err := validation.ValidateStruct(&day,
			validation.Field(&day.Day, validation.Required),
		); err != nil {
			return ErrInvalidAvailability
		}
		for _, slot := range day.Slots {
			if slot.StartTime == "" || slot.EndTime == "" {
				return ErrInvalidAvailability
			}
		}
	}
	return nil
}

// ValidateTimeSlot checks that a booking slot has both boundaries.
func ValidateTimeSlot(slot models.TimeSlot) error {
	return validation.Errors{
		"startTime": validation.Validate(slot.StartTime, validation.Required),
		"endTime":   validation.Validate(slot.EndTime, validation.Required),
	}.Filter()
}

// ValidateStatus checks membership in the appointment status set. The set
// is closed, but transitions are not: any member may replace any other.
func ValidateStatus(status string) error {
	return validation.Validate(status,
		validation.In(models.StatusPending, models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted))
}

// ValidateAppointmentType checks membership in the appointment type set.
func ValidateAppointmentType(t string) error {
	return validation.Validate(t,
		validation.In(models.TypeRegular, models.TypeFollowUp, models.TypeEmergency))
}

// ValidateNewPatient validates a patient record before registration.
func ValidateNewPatient(patient models.Patient) error {
	return validation.ValidateStruct(&patient,
		validation.Field(&patient.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&patient.Email, validation.Required, is.Email),
		validation.Field(&patient.PhoneNumber, validation.Required),
		validation.Field(&patient.DateOfBirth, validation.Required),
		validation.Field(&patient.Gender, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&patient.Address, validation.Required),
	)
}
