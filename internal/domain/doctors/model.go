package doctors

import (
	"fmt"
	"strings"
)

// Doctor is a clinic doctor as returned by the API.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	LicenseNumber  string `json:"license_number"`
	Bio            string `json:"bio,omitempty"`
	IsActive       bool   `json:"is_active"`
}

// Draft is the editable copy of a doctor's fields held by an open form. It is
// also the JSON payload sent on create and update.
type Draft struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	LicenseNumber  string `json:"license_number"`
	Bio            string `json:"bio,omitempty"`
}

// DraftOf seeds a draft from an existing doctor for editing.
func DraftOf(d *Doctor) Draft {
	return Draft{
		Name:           d.Name,
		Specialization: d.Specialization,
		Email:          d.Email,
		Phone:          d.Phone,
		LicenseNumber:  d.LicenseNumber,
		Bio:            d.Bio,
	}
}

// Validate checks the draft's required fields before any API call is issued.
func (d Draft) Validate() error {
	required := []struct {
		label, value string
	}{
		{"name", d.Name},
		{"specialization", d.Specialization},
		{"email", d.Email},
		{"phone", d.Phone},
		{"license number", d.LicenseNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required", f.label)
		}
	}
	if !strings.Contains(d.Email, "@") {
		return fmt.Errorf("email %q is not valid", d.Email)
	}
	return nil
}
