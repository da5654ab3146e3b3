package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/repositories"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

const dateLayout = "2006-01-02"

// AppointmentService owns the appointment lifecycle: listing, creation
// and mutation, with the slot-conflict protocol delegated to the
// repository (lock + transaction + partial unique index).
type AppointmentService struct {
	appointmentRepo *repositories.AppointmentRepository
	patientRepo     *repositories.PatientRepository
	userRepo        *repositories.UserRepository
	mailer          *utils.Mailer
}

func NewAppointmentService(
	appointmentRepo *repositories.AppointmentRepository,
	patientRepo *repositories.PatientRepository,
	userRepo *repositories.UserRepository,
	mailer *utils.Mailer,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		mailer:          mailer,
	}
}

// parseFilterDate turns an optional yyyy-mm-dd query value into a date.
func parseFilterDate(date string) (*time.Time, error) {
	if date == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, invalidMsg("Invalid date format, expected YYYY-MM-DD")
	}
	return &t, nil
}

// ListForDoctor returns the doctor's own appointments, patient populated,
// ordered by appointment date ascending.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID, date, status string) ([]models.AppointmentView, error) {
	d, err := parseFilterDate(date)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.List(ctx, repositories.AppointmentListFilter{
		DoctorID: doctorID,
		Date:     d,
		Status:   status,
	})
	if err != nil {
		return nil, err
	}
	return views(appointments, false), nil
}

// ListAll is the receptionist projection across doctors, patient and
// doctor populated.
func (s *AppointmentService) ListAll(ctx context.Context, date, status, doctorID string) ([]models.AppointmentView, error) {
	d, err := parseFilterDate(date)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.List(ctx, repositories.AppointmentListFilter{
		DoctorID:   doctorID,
		Date:       d,
		Status:     status,
		WithDoctor: true,
	})
	if err != nil {
		return nil, err
	}
	return views(appointments, true), nil
}

// CreateAppointmentInput is the receptionist booking request.
type CreateAppointmentInput struct {
	PatientID       string          `json:"patientId"`
	DoctorID        string          `json:"doctorId"`
	AppointmentDate string          `json:"appointmentDate"`
	TimeSlot        models.TimeSlot `json:"timeSlot"`
	Type            string          `json:"type"`
}

// Create books a slot for a patient with a doctor. The new appointment is
// confirmed immediately; a conflicting non-cancelled booking for the same
// doctor, date and exact slot rejects the request with no write.
func (s *AppointmentService) Create(ctx context.Context, in CreateAppointmentInput, createdBy string) (*models.AppointmentView, error) {
	if in.PatientID == "" || in.DoctorID == "" || in.AppointmentDate == "" {
		return nil, invalidMsg("Missing required fields")
	}
	if err := utils.ValidateTimeSlot(in.TimeSlot); err != nil {
		return nil, invalidMsg("Missing required fields")
	}
	if in.Type == "" {
		in.Type = models.TypeRegular
	}
	if err := utils.ValidateAppointmentType(in.Type); err != nil {
		return nil, invalid(err)
	}

	date, err := time.Parse(dateLayout, in.AppointmentDate)
	if err != nil {
		return nil, invalidMsg("Invalid date format, expected YYYY-MM-DD")
	}

	patient, err := s.patientRepo.GetByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.userRepo.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ID:              uuid.New().String(),
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		AppointmentDate: date,
		StartTime:       in.TimeSlot.StartTime,
		EndTime:         in.TimeSlot.EndTime,
		Status:          models.StatusConfirmed,
		Type:            in.Type,
		CreatedBy:       createdBy,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.LoadAssociations(ctx, appointment, true); err != nil {
		return nil, err
	}

	// Best-effort confirmation email; booking success never depends on it.
	go s.mailer.SendAppointmentConfirmation(patient, doctor, appointment)

	v := appointment.View(true)
	return &v, nil
}

// UpdateAppointmentInput is the receptionist mutation request. Nil fields
// are left untouched.
type UpdateAppointmentInput struct {
	AppointmentID string           `json:"appointmentId"`
	Status        *string          `json:"status"`
	TimeSlot      *models.TimeSlot `json:"timeSlot"`
}

// Update changes an appointment's status and/or slot. A slot change
// re-runs the conflict check against the same doctor and date, excluding
// this appointment; on conflict the stored record is left unchanged.
// Status transitions are unrestricted by design.
func (s *AppointmentService) Update(ctx context.Context, in UpdateAppointmentInput) (*models.AppointmentView, error) {
	if in.AppointmentID == "" {
		return nil, invalidMsg("Appointment ID is required")
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if err := utils.ValidateStatus(*in.Status); err != nil {
			return nil, invalid(err)
		}
		appointment.Status = *in.Status
	}

	if in.TimeSlot != nil {
		if err := utils.ValidateTimeSlot(*in.TimeSlot); err != nil {
			return nil, invalid(err)
		}
		if err := s.appointmentRepo.UpdateSlot(ctx, appointment, *in.TimeSlot); err != nil {
			return nil, err
		}
	} else if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.LoadAssociations(ctx, appointment, true); err != nil {
		return nil, err
	}
	v := appointment.View(true)
	return &v, nil
}

// MedicalRecordPatch carries the doctor's partial medical-record update.
// Present fields replace their counterparts; absent fields are preserved.
type MedicalRecordPatch struct {
	Symptoms     []string            `json:"symptoms"`
	Diagnosis    *string             `json:"diagnosis"`
	Prescription []string            `json:"prescription"`
	Notes        *string             `json:"notes"`
	Attachments  []models.Attachment `json:"attachments"`
}

// UpdateMedicalInput is the doctor-scoped mutation request.
type UpdateMedicalInput struct {
	AppointmentID string              `json:"appointmentId"`
	Status        *string             `json:"status"`
	MedicalRecord *MedicalRecordPatch `json:"medicalRecord"`
}

// UpdateMedical lets the assigned doctor set the status and amend the
// medical record. The record is shallow-merged, not replaced: this is
// deliberately asymmetric with the availability template's whole-replace
// contract. Appointments of other doctors read as not found.
func (s *AppointmentService) UpdateMedical(ctx context.Context, doctorID string, in UpdateMedicalInput) (*models.AppointmentView, error) {
	if in.AppointmentID == "" {
		return nil, invalidMsg("Appointment ID is required")
	}

	appointment, err := s.appointmentRepo.GetForDoctor(ctx, in.AppointmentID, doctorID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if err := utils.ValidateStatus(*in.Status); err != nil {
			return nil, invalid(err)
		}
		appointment.Status = *in.Status
	}

	if in.MedicalRecord != nil {
		record := appointment.MedicalRecord
		patch := in.MedicalRecord
		if patch.Symptoms != nil {
			record.Symptoms = patch.Symptoms
		}
		if patch.Diagnosis != nil {
			record.Diagnosis = *patch.Diagnosis
		}
		if patch.Prescription != nil {
			record.Prescription = patch.Prescription
		}
		if patch.Notes != nil {
			record.Notes = *patch.Notes
		}
		if patch.Attachments != nil {
			record.Attachments = patch.Attachments
		}
		appointment.MedicalRecord = record
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.LoadAssociations(ctx, appointment, false); err != nil {
		return nil, err
	}
	v := appointment.View(false)
	return &v, nil
}

func views(appointments []models.Appointment, withDoctor bool) []models.AppointmentView {
	out := make([]models.AppointmentView, 0, len(appointments))
	for i := range appointments {
		out = append(out, appointments[i].View(withDoctor))
	}
	return out
}
