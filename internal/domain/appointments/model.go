package appointments

import (
	"fmt"
	"strings"
	"time"
)

// formLayout is the value format of an HTML datetime-local input.
const formLayout = "2006-01-02T15:04"

// wireLayouts are the formats the API is known to emit for datetimes. The
// backend returns naive timestamps without a zone designator, so plain
// RFC 3339 parsing is not enough.
var wireLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	formLayout,
}

// DateTime is a timestamp as exchanged with the API. Naive values are read
// as UTC.
type DateTime struct {
	time.Time
}

func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02T15:04:05")
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t.Time
	return nil
}

// ParseDateTime accepts any of the wire formats.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range wireLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return DateTime{Time: t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date/time %q", s)
}

// Appointment statuses accepted by the API.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func validStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a booking as returned by the API. Patient and doctor are
// carried as bare foreign keys and resolved against the reference lists at
// render time.
type Appointment struct {
	ID              int      `json:"id"`
	PatientID       int      `json:"patient_id"`
	DoctorID        int      `json:"doctor_id"`
	AppointmentDate DateTime `json:"appointment_date"`
	DurationMinutes int      `json:"duration_minutes"`
	Status          string   `json:"status"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       DateTime `json:"created_at,omitempty"`
}

// Draft is the editable copy of an appointment's fields held by an open
// form. The date stays in datetime-local string form until validation.
type Draft struct {
	PatientID       int    `json:"patient_id"`
	DoctorID        int    `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
}

// NewDraft returns the defaults for a blank booking form.
func NewDraft() Draft {
	return Draft{DurationMinutes: 30, Status: StatusScheduled}
}

// DraftOf seeds a draft from an existing appointment for editing.
func DraftOf(a *Appointment) Draft {
	return Draft{
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentDate: a.AppointmentDate.Format(formLayout),
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		Notes:           a.Notes,
	}
}

// Validate checks the draft before any API call is issued.
func (d Draft) Validate() error {
	if d.PatientID <= 0 {
		return fmt.Errorf("patient is required")
	}
	if d.DoctorID <= 0 {
		return fmt.Errorf("doctor is required")
	}
	if strings.TrimSpace(d.AppointmentDate) == "" {
		return fmt.Errorf("date and time is required")
	}
	if _, err := ParseDateTime(d.AppointmentDate); err != nil {
		return err
	}
	if d.DurationMinutes < 15 {
		return fmt.Errorf("duration must be at least 15 minutes")
	}
	if d.DurationMinutes%15 != 0 {
		return fmt.Errorf("duration must be a multiple of 15 minutes")
	}
	if !validStatus(d.Status) {
		return fmt.Errorf("status %q is not valid", d.Status)
	}
	return nil
}
