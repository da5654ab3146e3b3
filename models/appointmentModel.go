package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Appointment statuses. Any status may replace any other; there is no
// enforced transition graph.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment types.
const (
	TypeRegular   = "regular"
	TypeFollowUp  = "follow-up"
	TypeEmergency = "emergency"
)

// Attachment is a file reference inside a medical record.
type Attachment struct {
	Name       string    `json:"name,omitempty"`
	URL        string    `json:"url,omitempty"`
	Type       string    `json:"type,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
}

// MedicalRecord holds the treating doctor's notes for an appointment,
// stored as JSONB. Updates are shallow-merged field by field, unlike the
// availability template which is replaced wholesale.
type MedicalRecord struct {
	Symptoms     []string     `json:"symptoms,omitempty"`
	Diagnosis    string       `json:"diagnosis,omitempty"`
	Prescription []string     `json:"prescription,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

func (m MedicalRecord) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MedicalRecord) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// Appointment model. The slot key {doctor_id, appointment_date, start_time,
// end_time} is guarded by a partial unique index over non-cancelled rows;
// see database.InitDB.
type Appointment struct {
	ID              string        `gorm:"primaryKey;column:id" json:"id"`
	PatientID       string        `gorm:"column:patient_id;not null;index" json:"patientId"`
	DoctorID        string        `gorm:"column:doctor_id;not null;index:idx_doctor_date" json:"doctorId"`
	AppointmentDate time.Time     `gorm:"column:appointment_date;type:date;not null;index:idx_doctor_date" json:"appointmentDate"`
	StartTime       string        `gorm:"column:start_time;not null" json:"-"`
	EndTime         string        `gorm:"column:end_time;not null" json:"-"`
	Status          string        `gorm:"column:status;not null;default:'pending';check:status IN ('pending', 'confirmed', 'cancelled', 'completed')" json:"status"`
	Type            string        `gorm:"column:type;not null;default:'regular';check:type IN ('regular', 'follow-up', 'emergency')" json:"type"`
	MedicalRecord   MedicalRecord `gorm:"column:medical_record;type:jsonb" json:"medicalRecord"`
	CreatedBy       string        `gorm:"column:created_by;not null" json:"createdBy"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Patient Patient `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor  User    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// TimeSlot returns the appointment's slot as a pair.
func (a *Appointment) TimeSlot() TimeSlot {
	return TimeSlot{StartTime: a.StartTime, EndTime: a.EndTime}
}

// AppointmentView is the API projection of an appointment with its
// identity summaries attached.
type AppointmentView struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patientId"`
	DoctorID        string          `json:"doctorId"`
	AppointmentDate string          `json:"appointmentDate"`
	TimeSlot        TimeSlot        `json:"timeSlot"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
	MedicalRecord   MedicalRecord   `json:"medicalRecord"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Patient         *PatientSummary `json:"patient,omitempty"`
	Doctor          *UserSummary    `json:"doctor,omitempty"`
}

// View builds the response projection. withDoctor controls whether the
// doctor summary is attached (doctor-scoped listings omit it).
func (a *Appointment) View(withDoctor bool) AppointmentView {
	v := AppointmentView{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentDate: a.AppointmentDate.Format("2006-01-02"),
		TimeSlot:        a.TimeSlot(),
		Status:          a.Status,
		Type:            a.Type,
		MedicalRecord:   a.MedicalRecord,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Patient.ID != "" {
		s := a.Patient.Summary()
		v.Patient = &s
	}
	if withDoctor && a.Doctor.ID != "" {
		s := a.Doctor.Summary()
		v.Doctor = &s
	}
	return v
}
