package entity

import "time"

// PatientRecord represents a currently admitted patient
type PatientRecord struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	AgeInYears int       `json:"age_in_years"`
	Diagnosis  string    `json:"diagnosis"`
	RoomNumber int       `json:"room_number"`
	AdmittedAt time.Time `json:"admitted_at"`
}

// AdmissionDate returns the admission timestamp; used by timeframe filters.
func (p PatientRecord) AdmissionDate() time.Time {
	return p.AdmittedAt
}

// Default values for a register with no stored patients
const (
	DefaultPatientID = 1
)
