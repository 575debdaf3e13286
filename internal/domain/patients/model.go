package patients

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for date-only fields.
const dateLayout = "2006-01-02"

// Date is a date-only value (no time component) as exchanged with the API.
type Date struct {
	time.Time
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// ParseDate parses a form date value.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{Time: t}, nil
}

// Patient is a clinic patient as returned by the API.
type Patient struct {
	ID             int    `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    Date   `json:"date_of_birth"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history,omitempty"`
	Allergies      string `json:"allergies,omitempty"`
	IsActive       bool   `json:"is_active"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Draft is the editable copy of a patient's fields held by an open form. The
// date of birth stays a string until validation so an invalid form value can
// round-trip back to the user unchanged.
type Draft struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history,omitempty"`
	Allergies      string `json:"allergies,omitempty"`
}

// DraftOf seeds a draft from an existing patient for editing.
func DraftOf(p *Patient) Draft {
	return Draft{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		DateOfBirth:    p.DateOfBirth.String(),
		Address:        p.Address,
		MedicalHistory: p.MedicalHistory,
		Allergies:      p.Allergies,
	}
}

// Validate checks the draft's required fields before any API call is issued.
func (d Draft) Validate() error {
	required := []struct {
		label, value string
	}{
		{"first name", d.FirstName},
		{"last name", d.LastName},
		{"email", d.Email},
		{"phone", d.Phone},
		{"date of birth", d.DateOfBirth},
		{"address", d.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required", f.label)
		}
	}
	if !strings.Contains(d.Email, "@") {
		return fmt.Errorf("email %q is not valid", d.Email)
	}
	if _, err := ParseDate(d.DateOfBirth); err != nil {
		return err
	}
	return nil
}
