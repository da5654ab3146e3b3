package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Maheshkadam-Delxn/eye/database"
	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/repositories"
)

// These tests run against real Postgres and Redis instances. Set
// TEST_DB_URL and TEST_REDIS_URL (a .env in the repo root works) to
// enable them; otherwise they skip.

var (
	setupOnce sync.Once
	testDB    *gorm.DB
	setupErr  error
)

func testEnv(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../.env")

	dsn := os.Getenv("TEST_DB_URL")
	redisURL := os.Getenv("TEST_REDIS_URL")
	if dsn == "" || redisURL == "" {
		t.Skip("TEST_DB_URL and TEST_REDIS_URL not set, skipping database-backed tests")
	}

	setupOnce.Do(func() {
		testDB, setupErr = database.InitDB(context.Background(), dsn)
		if setupErr != nil {
			return
		}
		setupErr = database.InitializeRedis(redisURL)
	})
	if setupErr != nil {
		t.Fatalf("test environment setup failed: %v", setupErr)
	}
	return testDB
}

func newAppointmentService(t *testing.T) (*AppointmentService, *repositories.UserRepository, *repositories.PatientRepository) {
	t.Helper()
	db := testEnv(t)
	userRepo := repositories.NewUserRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	return NewAppointmentService(appointmentRepo, patientRepo, userRepo, nil), userRepo, patientRepo
}

func seedDoctor(t *testing.T, repo *repositories.UserRepository) *models.User {
	t.Helper()
	doctor := &models.User{
		ID:             uuid.New().String(),
		Name:           "Dr. Test",
		Email:          uuid.New().String() + "@clinic.test",
		Password:       "hashed-password-placeholder",
		Role:           models.RoleDoctor,
		Specialization: "General Dentistry",
		IsActive:       true,
	}
	if err := repo.Create(context.Background(), doctor); err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	return doctor
}

func seedPatient(t *testing.T, repo *repositories.PatientRepository) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		ID:          uuid.New().String(),
		Name:        "Test Patient",
		Email:       uuid.New().String() + "@patients.test",
		PhoneNumber: "+1-555-0100",
		DateOfBirth: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:      "Female",
		Address:     "12 Test Lane",
	}
	if err := repo.Create(context.Background(), patient); err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return patient
}

func strPtr(s string) *string { return &s }

func TestCreateRejectsDuplicateSlot(t *testing.T) {
	svc, userRepo, patientRepo := newAppointmentService(t)
	ctx := context.Background()

	doctor := seedDoctor(t, userRepo)
	patient := seedPatient(t, patientRepo)
	other := seedPatient(t, patientRepo)

	in := CreateAppointmentInput{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: "2030-05-20",
		TimeSlot:        models.TimeSlot{StartTime: "10:00", EndTime: "10:30"},
	}

	created, err := svc.Create(ctx, in, "test-receptionist")
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if created.Status != models.StatusConfirmed {
		t.Errorf("new appointment status = %q, want %q", created.Status, models.StatusConfirmed)
	}
	if created.Type != models.TypeRegular {
		t.Errorf("type defaulted to %q, want %q", created.Type, models.TypeRegular)
	}

	// Same doctor, date and slot for a different patient must be refused.
	in.PatientID = other.ID
	if _, err := svc.Create(ctx, in, "test-receptionist"); !errors.Is(err, repositories.ErrSlotUnavailable) {
		t.Fatalf("duplicate booking error = %v, want ErrSlotUnavailable", err)
	}

	// An adjacent slot is a different key and books fine.
	in.TimeSlot = models.TimeSlot{StartTime: "10:30", EndTime: "11:00"}
	if _, err := svc.Create(ctx, in, "test-receptionist"); err != nil {
		t.Fatalf("adjacent slot booking failed: %v", err)
	}
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	svc, userRepo, patientRepo := newAppointmentService(t)
	ctx := context.Background()

	doctor := seedDoctor(t, userRepo)
	patient := seedPatient(t, patientRepo)

	in := CreateAppointmentInput{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: "2030-06-02",
		TimeSlot:        models.TimeSlot{StartTime: "09:00", EndTime: "09:30"},
	}
	created, err := svc.Create(ctx, in, "test-receptionist")
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	if _, err := svc.Update(ctx, UpdateAppointmentInput{
		AppointmentID: created.ID,
		Status:        strPtr(models.StatusCancelled),
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The cancelled appointment no longer occupies the slot.
	if _, err := svc.Create(ctx, in, "test-receptionist"); err != nil {
		t.Fatalf("rebooking a cancelled slot failed: %v", err)
	}
}

func TestUpdateSlotConflictLeavesRecordUnchanged(t *testing.T) {
	svc, userRepo, patientRepo := newAppointmentService(t)
	ctx := context.Background()

	doctor := seedDoctor(t, userRepo)
	patient := seedPatient(t, patientRepo)

	book := func(start, end string) *models.AppointmentView {
		t.Helper()
		v, err := svc.Create(ctx, CreateAppointmentInput{
			PatientID:       patient.ID,
			DoctorID:        doctor.ID,
			AppointmentDate: "2030-07-10",
			TimeSlot:        models.TimeSlot{StartTime: start, EndTime: end},
		}, "test-receptionist")
		if err != nil {
			t.Fatalf("booking %s-%s failed: %v", start, end, err)
		}
		return v
	}

	first := book("11:00", "11:30")
	second := book("14:00", "14:30")

	_, err := svc.Update(ctx, UpdateAppointmentInput{
		AppointmentID: second.ID,
		TimeSlot:      &models.TimeSlot{StartTime: first.TimeSlot.StartTime, EndTime: first.TimeSlot.EndTime},
	})
	if !errors.Is(err, repositories.ErrSlotUnavailable) {
		t.Fatalf("conflicting slot move error = %v, want ErrSlotUnavailable", err)
	}

	// The failed move must not have touched the stored record.
	stored, err := repositories.NewAppointmentRepository(testDB).GetByID(ctx, second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.StartTime != "14:00" || stored.EndTime != "14:30" {
		t.Errorf("record changed after rejected move: %s-%s", stored.StartTime, stored.EndTime)
	}

	// Moving to a free slot works.
	if _, err := svc.Update(ctx, UpdateAppointmentInput{
		AppointmentID: second.ID,
		TimeSlot:      &models.TimeSlot{StartTime: "15:00", EndTime: "15:30"},
	}); err != nil {
		t.Fatalf("move to free slot failed: %v", err)
	}
}

func TestUpdateMedicalOwnership(t *testing.T) {
	svc, userRepo, patientRepo := newAppointmentService(t)
	ctx := context.Background()

	doctor := seedDoctor(t, userRepo)
	otherDoctor := seedDoctor(t, userRepo)
	patient := seedPatient(t, patientRepo)

	created, err := svc.Create(ctx, CreateAppointmentInput{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: "2030-08-01",
		TimeSlot:        models.TimeSlot{StartTime: "10:00", EndTime: "10:30"},
	}, "test-receptionist")
	if err != nil {
		t.Fatal(err)
	}

	// Another doctor cannot see, let alone update, this appointment.
	_, err = svc.UpdateMedical(ctx, otherDoctor.ID, UpdateMedicalInput{
		AppointmentID: created.ID,
		Status:        strPtr(models.StatusCompleted),
	})
	if !errors.Is(err, repositories.ErrAppointmentNotFound) {
		t.Fatalf("cross-doctor update error = %v, want ErrAppointmentNotFound", err)
	}

	if _, err := svc.UpdateMedical(ctx, doctor.ID, UpdateMedicalInput{
		AppointmentID: created.ID,
		Status:        strPtr(models.StatusCompleted),
	}); err != nil {
		t.Fatalf("assigned doctor update failed: %v", err)
	}
}

func TestUpdateMedicalShallowMerge(t *testing.T) {
	svc, userRepo, patientRepo := newAppointmentService(t)
	ctx := context.Background()

	doctor := seedDoctor(t, userRepo)
	patient := seedPatient(t, patientRepo)

	created, err := svc.Create(ctx, CreateAppointmentInput{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: "2030-09-15",
		TimeSlot:        models.TimeSlot{StartTime: "12:00", EndTime: "12:30"},
	}, "test-receptionist")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateMedical(ctx, doctor.ID, UpdateMedicalInput{
		AppointmentID: created.ID,
		MedicalRecord: &MedicalRecordPatch{
			Symptoms:  []string{"toothache"},
			Diagnosis: strPtr("Cavity, lower left molar"),
		},
	}); err != nil {
		t.Fatal(err)
	}

	// Patching only the notes must preserve the earlier fields.
	updated, err := svc.UpdateMedical(ctx, doctor.ID, UpdateMedicalInput{
		AppointmentID: created.ID,
		MedicalRecord: &MedicalRecordPatch{
			Notes: strPtr("Follow up in two weeks"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	record := updated.MedicalRecord
	if record.Diagnosis != "Cavity, lower left molar" {
		t.Errorf("diagnosis lost on partial patch: %q", record.Diagnosis)
	}
	if len(record.Symptoms) != 1 || record.Symptoms[0] != "toothache" {
		t.Errorf("symptoms lost on partial patch: %v", record.Symptoms)
	}
	if record.Notes != "Follow up in two weeks" {
		t.Errorf("notes = %q, want patched value", record.Notes)
	}
}

func TestAvailabilityReplaceIsIdempotent(t *testing.T) {
	db := testEnv(t)
	userRepo := repositories.NewUserRepository(db)
	svc := NewAvailabilityService(userRepo)
	ctx := context.Background()

	doctor := seedDoctor(t, userRepo)

	template := models.Availability{
		{Day: "Monday", Slots: []models.TimeSlot{
			{StartTime: "09:00", EndTime: "09:30"},
			{StartTime: "09:30", EndTime: "10:00"},
		}},
		{Day: "Wednesday", Slots: []models.TimeSlot{}},
	}

	first, err := svc.Replace(ctx, doctor.ID, template)
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	second, err := svc.Replace(ctx, doctor.ID, template)
	if err != nil {
		t.Fatalf("second replace failed: %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("repeated replace changed the template: %d vs %d days", len(first), len(second))
	}

	stored, err := svc.Get(ctx, doctor.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 || stored[0].Day != "Monday" || len(stored[0].Slots) != 2 {
		t.Errorf("stored template does not match: %+v", stored)
	}

	// An invalid template is rejected and the stored one survives.
	var vErr *ValidationError
	_, err = svc.Replace(ctx, doctor.ID, models.Availability{{Day: ""}})
	if !errors.As(err, &vErr) {
		t.Fatalf("invalid template error = %v, want ValidationError", err)
	}
	after, err := svc.Get(ctx, doctor.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 2 {
		t.Errorf("rejected replace modified stored template: %+v", after)
	}
}
