package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"patient-register/internal/domain/entity"
	domainRepo "patient-register/internal/domain/repository"

	"github.com/spf13/afero"
)

type patientRecordRepository struct {
	fs       afero.Fs
	path     string
	tempPath string
}

func NewPatientRecordRepository(fs afero.Fs, path, tempPath string) domainRepo.PatientRecordRepository {
	return &patientRecordRepository{
		fs:       fs,
		path:     path,
		tempPath: tempPath,
	}
}

func (r *patientRecordRepository) LoadAll(ctx context.Context) ([]entity.PatientRecord, error) {
	f, err := openIfExists(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	records, err := readRecords(f, PatientRecordSize, decodePatientRecord)
	if err != nil {
		return records, fmt.Errorf("load %s: %w", r.path, err)
	}
	return records, nil
}

func (r *patientRecordRepository) Append(ctx context.Context, record entity.PatientRecord) error {
	buf := make([]byte, PatientRecordSize)
	if err := encodePatientRecord(buf, record); err != nil {
		return err
	}
	if err := appendBytes(r.fs, r.path, buf); err != nil {
		return fmt.Errorf("append to %s: %w", r.path, err)
	}
	return nil
}

func (r *patientRecordRepository) RewriteAll(ctx context.Context, records []entity.PatientRecord) error {
	if err := r.writeTemp(records); err != nil {
		// The primary file has not been touched yet.
		_ = r.fs.Remove(r.tempPath)
		return fmt.Errorf("write %s: %w", r.tempPath, err)
	}

	if err := r.fs.Rename(r.tempPath, r.path); err == nil {
		return nil
	}
	// Some filesystems refuse to rename over an existing file.
	if err := r.fs.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		_ = r.fs.Remove(r.tempPath)
		return fmt.Errorf("remove old %s: %w", r.path, err)
	}
	if err := r.fs.Rename(r.tempPath, r.path); err != nil {
		// Keep the temp file: it is now the only complete copy.
		return fmt.Errorf("rename %s to %s: %w", r.tempPath, r.path, err)
	}
	return nil
}

func (r *patientRecordRepository) writeTemp(records []entity.PatientRecord) (err error) {
	tmp, err := r.fs.OpenFile(r.tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tmp.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	buf := make([]byte, PatientRecordSize)
	for _, rec := range records {
		if err := encodePatientRecord(buf, rec); err != nil {
			return err
		}
		n, err := tmp.Write(buf)
		if err != nil {
			return err
		}
		if n < len(buf) {
			return io.ErrShortWrite
		}
	}
	return tmp.Sync()
}
