package repository

import (
	"context"

	"patient-register/internal/domain/entity"
)

// DischargeRecordRepository is the append-only discharge archive.
type DischargeRecordRepository interface {
	Append(ctx context.Context, record entity.DischargeRecord) error
	FindAll(ctx context.Context) ([]entity.DischargeRecord, error)
}
