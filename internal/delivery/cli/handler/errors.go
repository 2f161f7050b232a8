package handler

import (
	"errors"
	"io"

	"patient-register/internal/service"
	"patient-register/internal/usecase"
	"patient-register/pkg/response"
	"patient-register/pkg/validator"
)

// ReportedError marks an error whose message was already shown to the
// operator.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// writeError prints the operator message for err and returns it marked as
// reported so commands exit non-zero without printing it twice.
func writeError(w io.Writer, err error, fallback string) error {
	if ve, ok := validator.AsValidationError(err); ok {
		response.ValidationError(w, ve.Fields)
		return &ReportedError{Err: err}
	}

	switch {
	case errors.Is(err, service.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, service.ErrRoomOccupied):
		response.Error(w, "Room is already occupied")
	case errors.Is(err, usecase.ErrInvalidTimeframe):
		response.Error(w, "Unknown report timeframe")
	case errors.Is(err, service.ErrPersistence):
		response.Error(w, fallback+": "+err.Error())
	default:
		response.InternalError(w, fallback)
	}
	return &ReportedError{Err: err}
}
