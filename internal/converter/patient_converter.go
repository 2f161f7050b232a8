package converter

import (
	"patient-register/internal/delivery/dto"
	"patient-register/internal/domain/entity"
)

// PatientRecordToResponse converts a PatientRecord entity to PatientResponse DTO
func PatientRecordToResponse(p entity.PatientRecord) dto.PatientResponse {
	return dto.PatientResponse{
		ID:         p.ID,
		Name:       p.Name,
		AgeInYears: p.AgeInYears,
		Diagnosis:  p.Diagnosis,
		RoomNumber: p.RoomNumber,
		AdmittedAt: p.AdmittedAt,
	}
}

// PatientRecordsToResponses converts a slice of PatientRecord entities to slice of PatientResponse DTOs
func PatientRecordsToResponses(records []entity.PatientRecord) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(records))
	for i, p := range records {
		responses[i] = PatientRecordToResponse(p)
	}
	return responses
}

// DischargeRecordToResponse converts a DischargeRecord entity to DischargeResponse DTO
func DischargeRecordToResponse(d entity.DischargeRecord, warnings []error) *dto.DischargeResponse {
	return &dto.DischargeResponse{
		Patient:      PatientRecordToResponse(d.Patient),
		DischargedAt: d.DischargedAt,
		Warnings:     ErrorsToStrings(warnings),
	}
}

// ErrorsToStrings flattens tolerated errors for display
func ErrorsToStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
