package repository

import (
	"context"

	"patient-register/internal/domain/entity"
)

// PatientRecordRepository persists the active patient collection.
type PatientRecordRepository interface {
	// LoadAll reads every stored record in file order. When a record is
	// truncated or corrupt the records before it are returned together
	// with the error.
	LoadAll(ctx context.Context) ([]entity.PatientRecord, error)
	// Append writes one record to the end of the file.
	Append(ctx context.Context, record entity.PatientRecord) error
	// RewriteAll replaces the file with records through a temporary file.
	// The existing file is left untouched when any step fails.
	RewriteAll(ctx context.Context, records []entity.PatientRecord) error
}
