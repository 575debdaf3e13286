package appointments

import (
	"github.com/clinicdesk/clinicdesk/internal/domain/doctors"
	"github.com/clinicdesk/clinicdesk/internal/domain/patients"
)

// unresolvedLabel stands in for a referenced doctor or patient that is not
// present in the loaded reference lists. An appointment with a dangling
// foreign key still renders rather than breaking the page.
const unresolvedLabel = "unknown"

// Card is an appointment joined with its resolved references for display.
type Card struct {
	Appointment *Appointment
	Doctor      *doctors.Doctor
	Patient     *patients.Patient
}

func (c Card) DoctorLabel() string {
	if c.Doctor == nil {
		return unresolvedLabel
	}
	return c.Doctor.Name
}

func (c Card) PatientLabel() string {
	if c.Patient == nil {
		return unresolvedLabel
	}
	return c.Patient.FullName()
}

// Resolve joins each appointment with its doctor and patient by ID. Missing
// references leave the corresponding pointer nil.
func Resolve(items []*Appointment, docs []*doctors.Doctor, pats []*patients.Patient) []Card {
	docByID := make(map[int]*doctors.Doctor, len(docs))
	for _, d := range docs {
		docByID[d.ID] = d
	}
	patByID := make(map[int]*patients.Patient, len(pats))
	for _, p := range pats {
		patByID[p.ID] = p
	}

	cards := make([]Card, 0, len(items))
	for _, a := range items {
		cards = append(cards, Card{
			Appointment: a,
			Doctor:      docByID[a.DoctorID],
			Patient:     patByID[a.PatientID],
		})
	}
	return cards
}
