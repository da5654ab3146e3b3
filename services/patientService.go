package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/repositories"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

type PatientService struct {
	patientRepo *repositories.PatientRepository
}

func NewPatientService(patientRepo *repositories.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// PatientPage is a paged patient listing.
type PatientPage struct {
	Patients   []models.Patient `json:"patients"`
	Pagination Pagination       `json:"pagination"`
}

func (s *PatientService) List(ctx context.Context, search string, page, limit int) (*PatientPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	patients, total, err := s.patientRepo.List(ctx, repositories.PatientListFilter{
		Search: search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return &PatientPage{
		Patients: patients,
		Pagination: Pagination{
			Total: total,
			Pages: (total + int64(limit) - 1) / int64(limit),
			Page:  page,
			Limit: limit,
		},
	}, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

func (s *PatientService) Register(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	patient.ID = uuid.New().String()
	if err := utils.ValidateNewPatient(*patient); err != nil {
		return nil, invalid(err)
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// PatientUpdate carries the mutable patient fields. Nil fields are left
// untouched; medicalHistory and emergencyContact replace wholesale.
type PatientUpdate struct {
	Name             *string                  `json:"name"`
	Email            *string                  `json:"email"`
	PhoneNumber      *string                  `json:"phoneNumber"`
	Address          *string                  `json:"address"`
	MedicalHistory   *models.MedicalHistory   `json:"medicalHistory"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact"`
}

func (s *PatientService) Update(ctx context.Context, id string, update PatientUpdate) (*models.Patient, error) {
	if id == "" {
		return nil, invalidMsg("Patient ID is required")
	}
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		patient.Name = *update.Name
	}
	if update.Email != nil {
		patient.Email = *update.Email
	}
	if update.PhoneNumber != nil {
		patient.PhoneNumber = *update.PhoneNumber
	}
	if update.Address != nil {
		patient.Address = *update.Address
	}
	if update.MedicalHistory != nil {
		patient.MedicalHistory = *update.MedicalHistory
	}
	if update.EmergencyContact != nil {
		patient.EmergencyContact = *update.EmergencyContact
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}
