package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Role is the closed set of staff roles. Role is immutable after creation.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReceptionist:
		return true
	}
	return false
}

// TimeSlot is a bookable interval within a day, kept as wall-clock strings
// ("09:00"). Slot equality is exact string equality on both fields.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DaySlot is one weekday entry of a doctor's availability template.
type DaySlot struct {
	Day   string     `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

// Availability is a doctor's weekly template of open slots. It is stored as
// a single JSONB column and replaced wholesale on update, never merged.
type Availability []DaySlot

func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Availability) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for availability: %T", value)
	}
	return json.Unmarshal(raw, a)
}

// User represents a staff account (admin, doctor or receptionist).
type User struct {
	ID             string       `gorm:"primaryKey;column:id" json:"id"`
	Name           string       `gorm:"column:name;not null" json:"name"`
	Email          string       `gorm:"column:email;not null;unique;index" json:"email"`
	Password       string       `gorm:"column:password;not null" json:"-"`
	Role           Role         `gorm:"column:role;not null;check:role IN ('admin', 'doctor', 'receptionist')" json:"role"`
	Specialization string       `gorm:"column:specialization" json:"specialization,omitempty"`
	IsActive       bool         `gorm:"column:is_active;not null;default:true" json:"isActive"`
	Availability   Availability `gorm:"column:availability;type:jsonb" json:"availability,omitempty"`
	CreatedAt      time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the identity projection attached to API responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Summary strips the user down to the fields safe to return to callers.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
