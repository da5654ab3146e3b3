package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Maheshkadam-Delxn/eye/database"
	"github.com/Maheshkadam-Delxn/eye/models"
)

const (
	slotLockTTL        = 10 * time.Second
	slotLockRetries    = 3
	slotLockRetryDelay = 500 * time.Millisecond
)

// AppointmentListFilter narrows appointment listings. Zero values mean
// "no constraint" for that dimension.
type AppointmentListFilter struct {
	DoctorID string
	Date     *time.Time
	Status   string
	// WithDoctor controls whether the doctor association is loaded.
	WithDoctor bool
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// List returns appointments matching the filter, patient populated and
// ordered by appointment date ascending.
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentListFilter) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&models.Appointment{}).Preload("Patient")
	if filter.WithDoctor {
		q = q.Preload("Doctor")
	}
	if filter.DoctorID != "" {
		q = q.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Date != nil {
		q = q.Where("appointment_date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var appointments []models.Appointment
	if err := q.Order("appointment_date ASC, start_time ASC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var appointment models.Appointment
	err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// GetForDoctor fetches an appointment only when it is assigned to the
// given doctor. A foreign appointment reads as not-found so the response
// does not disclose its existence.
func (r *AppointmentRepository) GetForDoctor(ctx context.Context, id, doctorID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var appointment models.Appointment
	err := r.db.WithContext(ctx).First(&appointment, "id = ? AND doctor_id = ?", id, doctorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Create inserts the appointment unless its slot is already booked. The
// check and insert run inside one transaction under a distributed slot
// lock, and the partial unique index backs both up: even if two writers
// race past the check, only one insert commits.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	release, err := acquireSlotLock(ctx, appointment.DoctorID, appointment.AppointmentDate, appointment.TimeSlot())
	if err != nil {
		return err
	}
	defer release()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, appointment.DoctorID, appointment.AppointmentDate, appointment.TimeSlot(), "")
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotUnavailable
		}
		return tx.Create(appointment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotUnavailable
		}
		if errors.Is(err, ErrSlotUnavailable) {
			return err
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// UpdateSlot moves the appointment to a new slot after re-running the
// conflict check against the same doctor and date, excluding the record
// itself. On conflict nothing is written.
func (r *AppointmentRepository) UpdateSlot(ctx context.Context, appointment *models.Appointment, slot models.TimeSlot) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	release, err := acquireSlotLock(ctx, appointment.DoctorID, appointment.AppointmentDate, slot)
	if err != nil {
		return err
	}
	defer release()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, appointment.DoctorID, appointment.AppointmentDate, slot, appointment.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotUnavailable
		}
		appointment.StartTime = slot.StartTime
		appointment.EndTime = slot.EndTime
		return tx.Save(appointment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotUnavailable
		}
		if errors.Is(err, ErrSlotUnavailable) {
			return err
		}
		return fmt.Errorf("failed to update appointment slot: %w", err)
	}
	return nil
}

// Save persists non-slot mutations (status, medical record).
func (r *AppointmentRepository) Save(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotUnavailable
		}
		return fmt.Errorf("failed to save appointment: %w", err)
	}
	return nil
}

// LoadAssociations populates the patient and, optionally, doctor summaries
// on a freshly written appointment.
func (r *AppointmentRepository) LoadAssociations(ctx context.Context, appointment *models.Appointment, withDoctor bool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Preload("Patient")
	if withDoctor {
		q = q.Preload("Doctor")
	}
	if err := q.First(appointment, "id = ?", appointment.ID).Error; err != nil {
		return fmt.Errorf("failed to load appointment associations: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	return count, err
}

func (r *AppointmentRepository) CountOnDate(ctx context.Context, date time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("appointment_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

// slotTaken reports whether a non-cancelled appointment already holds the
// exact slot for the doctor and date. Slot equality is component-wise
// string equality; cancelled appointments do not occupy a slot.
func slotTaken(tx *gorm.DB, doctorID string, date time.Time, slot models.TimeSlot, excludeID string) (bool, error) {
	q := tx.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Where("appointment_date = ?", date.Format("2006-01-02")).
		Where("start_time = ? AND end_time = ?", slot.StartTime, slot.EndTime).
		Where("status <> ?", models.StatusCancelled)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slot conflicts: %w", err)
	}
	return count > 0, nil
}

// acquireSlotLock serializes writers targeting the same slot key. The
// returned release function is safe to call once the write committed.
func acquireSlotLock(ctx context.Context, doctorID string, date time.Time, slot models.TimeSlot) (func(), error) {
	lockKey := fmt.Sprintf("slot_lock:%s_%s_%s_%s", doctorID, date.Format("2006-01-02"), slot.StartTime, slot.EndTime)
	lockValue := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < slotLockRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, slotLockTTL)
		if err == nil && locked {
			break
		}
		if i < slotLockRetries-1 {
			time.Sleep(slotLockRetryDelay)
		}
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire slot lock after retries: %w", err)
	}

	release := func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release slot lock %s: %v", lockKey, err)
		}
	}
	return release, nil
}
