package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MedicalHistory is the patient's background record, stored as JSONB.
type MedicalHistory struct {
	Allergies          []string `json:"allergies,omitempty"`
	ChronicConditions  []string `json:"chronicConditions,omitempty"`
	CurrentMedications []string `json:"currentMedications,omitempty"`
	PastSurgeries      []string `json:"pastSurgeries,omitempty"`
}

func (m MedicalHistory) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MedicalHistory) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// EmergencyContact is the person to call for a patient, stored as JSONB.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

func (e EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *EmergencyContact) Scan(value interface{}) error {
	return scanJSON(value, e)
}

// Patient model
type Patient struct {
	ID               string           `gorm:"primaryKey;column:id" json:"id"`
	Name             string           `gorm:"column:name;not null;index" json:"name"`
	Email            string           `gorm:"column:email;not null;unique" json:"email"`
	PhoneNumber      string           `gorm:"column:phone_number;not null" json:"phoneNumber"`
	DateOfBirth      time.Time        `gorm:"column:date_of_birth;type:date;not null" json:"dateOfBirth"`
	Gender           string           `gorm:"column:gender;check:gender IN ('Male', 'Female', 'Other');not null" json:"gender"`
	Address          string           `gorm:"column:address;not null" json:"address"`
	MedicalHistory   MedicalHistory   `gorm:"column:medical_history;type:jsonb" json:"medicalHistory"`
	EmergencyContact EmergencyContact `gorm:"column:emergency_contact;type:jsonb" json:"emergencyContact"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientSummary is the projection embedded in appointment responses.
type PatientSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (p *Patient) Summary() PatientSummary {
	return PatientSummary{ID: p.ID, Name: p.Name, Email: p.Email, PhoneNumber: p.PhoneNumber}
}

// scanJSON decodes a JSONB column into dst, tolerating both []byte and
// string driver representations.
func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type: %T", value)
	}
	return json.Unmarshal(raw, dst)
}
