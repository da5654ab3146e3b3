package utils

import (
	"testing"

	"github.com/Maheshkadam-Delxn/eye/models"
)

func TestValidateAvailability(t *testing.T) {
	tests := []struct {
		name     string
		template models.Availability
		wantErr  bool
	}{
		{
			name:     "empty template clears availability",
			template: models.Availability{},
			wantErr:  false,
		},
		{
			name: "valid week",
			template: models.Availability{
				{Day: "Monday", Slots: []models.TimeSlot{{StartTime: "09:00", EndTime: "09:30"}}},
				{Day: "Tuesday", Slots: []models.TimeSlot{}},
			},
			wantErr: false,
		},
		{
			name: "missing day name",
			template: models.Availability{
				{Day: "", Slots: []models.TimeSlot{{StartTime: "09:00", EndTime: "09:30"}}},
			},
			wantErr: true,
		},
		{
			name: "slot missing end time",
			template: models.Availability{
				{Day: "Monday", Slots: []models.TimeSlot{{StartTime: "09:00"}}},
			},
			wantErr: true,
		},
		{
			name: "slot missing start time",
			template: models.Availability{
				{Day: "Monday", Slots: []models.TimeSlot{{EndTime: "09:30"}}},
			},
			wantErr: true,
		},
		{
			name: "one bad day rejects the whole template",
			template: models.Availability{
				{Day: "Monday", Slots: []models.TimeSlot{{StartTime: "09:00", EndTime: "09:30"}}},
				{Day: "Tuesday", Slots: []models.TimeSlot{{StartTime: "", EndTime: ""}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAvailability(tt.template)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAvailability() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimeSlot(t *testing.T) {
	if err := ValidateTimeSlot(models.TimeSlot{StartTime: "10:00", EndTime: "10:30"}); err != nil {
		t.Errorf("valid slot rejected: %v", err)
	}
	if err := ValidateTimeSlot(models.TimeSlot{StartTime: "10:00"}); err == nil {
		t.Error("slot without end time accepted")
	}
	if err := ValidateTimeSlot(models.TimeSlot{}); err == nil {
		t.Error("empty slot accepted")
	}
}

func TestValidateStatus(t *testing.T) {
	for _, status := range []string{
		models.StatusPending, models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted,
	} {
		if err := ValidateStatus(status); err != nil {
			t.Errorf("ValidateStatus(%q) = %v, want nil", status, err)
		}
	}
	for _, status := range []string{"done", "Confirmed", "no-show", "archived"} {
		if err := ValidateStatus(status); err == nil {
			t.Errorf("ValidateStatus(%q) = nil, want error", status)
		}
	}
}

func TestValidateAppointmentType(t *testing.T) {
	for _, typ := range []string{models.TypeRegular, models.TypeFollowUp, models.TypeEmergency} {
		if err := ValidateAppointmentType(typ); err != nil {
			t.Errorf("ValidateAppointmentType(%q) = %v, want nil", typ, err)
		}
	}
	if err := ValidateAppointmentType("walk-in"); err == nil {
		t.Error("ValidateAppointmentType(walk-in) = nil, want error")
	}
}

func TestValidateNewUser(t *testing.T) {
	base := models.User{
		Name:     "Nina Joshi",
		Email:    "nina@clinic.test",
		Password: "averylongpassword",
		Role:     models.RoleReceptionist,
	}

	if err := ValidateNewUser(base); err != nil {
		t.Errorf("valid receptionist rejected: %v", err)
	}

	doctor := base
	doctor.Role = models.RoleDoctor
	if err := ValidateNewUser(doctor); err == nil {
		t.Error("doctor without specialization accepted")
	}
	doctor.Specialization = "Orthodontics"
	if err := ValidateNewUser(doctor); err != nil {
		t.Errorf("valid doctor rejected: %v", err)
	}

	short := base
	short.Password = "short"
	if err := ValidateNewUser(short); err == nil {
		t.Error("short password accepted")
	}

	badRole := base
	badRole.Role = "nurse"
	if err := ValidateNewUser(badRole); err == nil {
		t.Error("unknown role accepted")
	}
}
