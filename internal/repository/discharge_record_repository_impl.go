package repository

import (
	"context"
	"fmt"

	"patient-register/internal/domain/entity"
	domainRepo "patient-register/internal/domain/repository"

	"github.com/spf13/afero"
)

type dischargeRecordRepository struct {
	fs   afero.Fs
	path string
}

func NewDischargeRecordRepository(fs afero.Fs, path string) domainRepo.DischargeRecordRepository {
	return &dischargeRecordRepository{fs: fs, path: path}
}

func (r *dischargeRecordRepository) Append(ctx context.Context, record entity.DischargeRecord) error {
	buf := make([]byte, DischargeRecordSize)
	if err := encodeDischargeRecord(buf, record); err != nil {
		return err
	}
	if err := appendBytes(r.fs, r.path, buf); err != nil {
		return fmt.Errorf("append to %s: %w", r.path, err)
	}
	return nil
}

func (r *dischargeRecordRepository) FindAll(ctx context.Context) ([]entity.DischargeRecord, error) {
	f, err := openIfExists(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	records, err := readRecords(f, DischargeRecordSize, decodeDischargeRecord)
	if err != nil {
		return records, fmt.Errorf("load %s: %w", r.path, err)
	}
	return records, nil
}
