package dto

import (
	"time"
)

// Request DTOs

// AdmitPatientRequest carries the admission fields. Bounds are configured
// at runtime and checked by the validator rules; the tags cover what is fixed.
type AdmitPatientRequest struct {
	Name       string `json:"name" validate:"required"`
	AgeInYears int    `json:"age_in_years" validate:"gte=0"`
	Diagnosis  string `json:"diagnosis" validate:"required"`
	RoomNumber int    `json:"room_number" validate:"gte=1"`
}

// Response DTOs

type PatientResponse struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	AgeInYears int       `json:"age_in_years"`
	Diagnosis  string    `json:"diagnosis"`
	RoomNumber int       `json:"room_number"`
	AdmittedAt time.Time `json:"admitted_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type AdmissionResponse struct {
	Patient  PatientResponse `json:"patient"`
	Warnings []string        `json:"warnings,omitempty"`
}

type DischargeResponse struct {
	Patient      PatientResponse `json:"patient"`
	DischargedAt time.Time       `json:"discharged_at"`
	Warnings     []string        `json:"warnings,omitempty"`
}

type BackupResponse struct {
	Records int    `json:"records"`
	File    string `json:"file"`
}

type RestoreResponse struct {
	Records  int      `json:"records"`
	NextID   int      `json:"next_id"`
	Warnings []string `json:"warnings,omitempty"`
}
