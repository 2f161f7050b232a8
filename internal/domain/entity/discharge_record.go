package entity

import "time"

// DischargeRecord is the archived snapshot of a patient at discharge time.
// It is written once and never modified.
type DischargeRecord struct {
	Patient      PatientRecord `json:"patient"`
	DischargedAt time.Time     `json:"discharged_at"`
}

// NewDischargeRecord snapshots patient at the given time. The discharge
// time never precedes the admission time.
func NewDischargeRecord(patient PatientRecord, at time.Time) DischargeRecord {
	if at.Before(patient.AdmittedAt) {
		at = patient.AdmittedAt
	}
	return DischargeRecord{
		Patient:      patient,
		DischargedAt: at,
	}
}

// DischargeDate returns the discharge timestamp; used by timeframe filters.
func (d DischargeRecord) DischargeDate() time.Time {
	return d.DischargedAt
}
