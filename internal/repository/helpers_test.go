package repository

import (
	"errors"
	"os"
	"time"

	"patient-register/internal/domain/entity"

	"github.com/spf13/afero"
)

var errDiskFull = errors.New("no space left on device")

// failingFs wraps an afero.Fs and fails selected operations.
type failingFs struct {
	afero.Fs
	failWriteTo  string
	failRenameTo string
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if name == f.failWriteTo {
		return &failingFile{File: file}, nil
	}
	return file, nil
}

func (f *failingFs) Rename(oldname, newname string) error {
	if newname == f.failRenameTo {
		return errDiskFull
	}
	return f.Fs.Rename(oldname, newname)
}

// failingFile accepts the first write and fails every later one.
type failingFile struct {
	afero.File
	writes int
}

func (f *failingFile) Write(p []byte) (int, error) {
	f.writes++
	if f.writes > 1 {
		return 0, errDiskFull
	}
	return f.File.Write(p)
}

func samplePatient(id, room int) entity.PatientRecord {
	return entity.PatientRecord{
		ID:         id,
		Name:       "Jane Doe",
		AgeInYears: 34,
		Diagnosis:  "Influenza",
		RoomNumber: room,
		AdmittedAt: time.Unix(1710504000, 0),
	}
}
