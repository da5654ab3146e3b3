package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/Maheshkadam-Delxn/eye/models"
)

// Mailer sends appointment notifications over SMTP. A nil Mailer is a
// no-op, so the server runs fine without SMTP configured.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerFromEnv builds a Mailer from SMTP_* environment variables.
// Returns nil when SMTP_HOST is unset.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Printf("Invalid SMTP_PORT, mail notifications disabled: %v", err)
		return nil
	}
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

// SendAppointmentConfirmation emails the patient their booked slot.
// Best effort: failures are logged, never surfaced to the caller.
func (m *Mailer) SendAppointmentConfirmation(patient *models.Patient, doctor *models.User, appointment *models.Appointment) {
	if m == nil {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", patient.Email)
	msg.SetHeader("Subject", "Appointment Confirmation")

	date := appointment.AppointmentDate.Format("2006-01-02")
	body := fmt.Sprintf("Dear %s,\n\nYour appointment with Dr. %s is confirmed for %s, %s - %s.\n\nPlease arrive 10 minutes early.",
		patient.Name, doctor.Name, date, appointment.StartTime, appointment.EndTime)
	msg.SetBody("text/plain", body)

	htmlBody := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2>Appointment Confirmed</h2>
		<p>Dear %s,</p>
		<p>Your appointment with <strong>Dr. %s</strong> is confirmed.</p>
		<p><strong>Date:</strong> %s<br/><strong>Time:</strong> %s - %s</p>
		<p>Please arrive 10 minutes early.</p>
	</div>`, patient.Name, doctor.Name, date, appointment.StartTime, appointment.EndTime)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("Failed to send appointment confirmation to %s: %v", patient.Email, err)
	}
}
