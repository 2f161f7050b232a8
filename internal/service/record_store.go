package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"patient-register/internal/domain/entity"
	"patient-register/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrRoomOccupied    = errors.New("room already occupied")
	// ErrPersistence wraps every file failure reported by the store.
	ErrPersistence = errors.New("persistence failure")
)

// AdmitInput carries already validated admission fields
type AdmitInput struct {
	Name       string
	AgeInYears int
	Diagnosis  string
	RoomNumber int
}

// Admission is the result of a successful Admit. Warnings lists write
// failures that were tolerated in lenient mode.
type Admission struct {
	Patient  entity.PatientRecord
	Warnings []error
}

type DischargeOutcome struct {
	Record   entity.DischargeRecord
	Warnings []error
}

type LoadOutcome struct {
	Loaded   int
	NextID   int
	Warnings []error
}

// RecordStore owns the active patient collection and keeps the patient
// file in step with it.
//
// The collection is kept in admission order and searched linearly; the
// register only ever holds as many patients as there are rooms.
type RecordStore struct {
	log           *logrus.Logger
	patientRepo   repository.PatientRecordRepository
	dischargeRepo repository.DischargeRecordRepository
	roomUsageRepo repository.RoomUsageRepository
	mode          entity.DurabilityMode
	now           func() time.Time

	records []entity.PatientRecord
	nextID  int
	// needsRewrite is set when the patient file may not match records, so
	// the next write replaces the whole file instead of appending.
	needsRewrite bool
}

func NewRecordStore(
	log *logrus.Logger,
	patientRepo repository.PatientRecordRepository,
	dischargeRepo repository.DischargeRecordRepository,
	roomUsageRepo repository.RoomUsageRepository,
	mode entity.DurabilityMode,
	now func() time.Time,
) *RecordStore {
	if now == nil {
		now = time.Now
	}
	return &RecordStore{
		log:           log,
		patientRepo:   patientRepo,
		dischargeRepo: dischargeRepo,
		roomUsageRepo: roomUsageRepo,
		mode:          mode,
		now:           now,
		nextID:        entity.DefaultPatientID,
	}
}

func persistenceErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// Load replaces the in-memory collection with the contents of the patient
// file. The next ID is one above the highest ID found in the patient file
// or the discharge archive.
func (s *RecordStore) Load(ctx context.Context) (LoadOutcome, error) {
	var warnings []error
	needsRewrite := false

	records, err := s.patientRepo.LoadAll(ctx)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTruncatedRecord), errors.Is(err, repository.ErrCorruptRecord):
			s.log.Warnf("Patient file is damaged, kept the %d records before the damage: %v", len(records), err)
			warnings = append(warnings, persistenceErr("load patient records", err))
			needsRewrite = true
		case s.mode.IsStrict():
			return LoadOutcome{}, persistenceErr("load patient records", err)
		default:
			s.log.Warnf("Failed to read patient file, starting with an empty register: %v", err)
			warnings = append(warnings, persistenceErr("load patient records", err))
			records = nil
			needsRewrite = true
		}
	}

	nextID := entity.DefaultPatientID
	for _, rec := range records {
		if rec.ID >= nextID {
			nextID = rec.ID + 1
		}
	}

	archived, err := s.dischargeRepo.FindAll(ctx)
	if err != nil {
		s.log.Warnf("Failed to read the whole discharge archive, IDs are checked against %d archived records: %v", len(archived), err)
		warnings = append(warnings, persistenceErr("load discharge archive", err))
	}
	for _, rec := range archived {
		if rec.Patient.ID >= nextID {
			nextID = rec.Patient.ID + 1
		}
	}

	s.records = records
	s.nextID = nextID
	s.needsRewrite = needsRewrite

	if len(records) == 0 {
		s.log.Info("No stored patients, register initialized with default settings")
	} else {
		s.log.Infof("Loaded %d patients from file, next patient ID is %d", len(records), nextID)
	}

	return LoadOutcome{Loaded: len(records), NextID: nextID, Warnings: warnings}, nil
}

// Admit creates a patient record in the given room. The room must not be
// held by another active patient.
func (s *RecordStore) Admit(ctx context.Context, in AdmitInput) (Admission, error) {
	if s.IsRoomOccupied(in.RoomNumber) {
		return Admission{}, ErrRoomOccupied
	}

	rec := entity.PatientRecord{
		ID:         s.nextID,
		Name:       in.Name,
		AgeInYears: in.AgeInYears,
		Diagnosis:  in.Diagnosis,
		RoomNumber: in.RoomNumber,
		AdmittedAt: s.timestamp(),
	}
	all := append(s.ListAll(), rec)

	if s.mode.IsStrict() {
		if err := s.persistAdmission(ctx, rec, all); err != nil {
			return Admission{}, err
		}
		s.records = all
		s.nextID++
		return Admission{Patient: rec}, nil
	}

	s.records = all
	s.nextID++

	var warnings []error
	if err := s.persistAdmission(ctx, rec, all); err != nil {
		s.log.WithField("patient_id", rec.ID).Warnf("Patient admitted but not saved to disk: %v", err)
		s.needsRewrite = true
		warnings = append(warnings, err)
	}
	return Admission{Patient: rec, Warnings: warnings}, nil
}

func (s *RecordStore) persistAdmission(ctx context.Context, rec entity.PatientRecord, all []entity.PatientRecord) error {
	if s.needsRewrite {
		if err := s.patientRepo.RewriteAll(ctx, all); err != nil {
			return persistenceErr("rewrite patient file", err)
		}
		s.needsRewrite = false
		return nil
	}
	if err := s.patientRepo.Append(ctx, rec); err != nil {
		return persistenceErr("append patient record", err)
	}
	s.log.WithField("patient_id", rec.ID).Debug("Patient added to file")
	return nil
}

// Discharge removes the patient from the active collection, archives a
// discharge record and logs the freed room.
func (s *RecordStore) Discharge(ctx context.Context, id int) (DischargeOutcome, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return DischargeOutcome{}, ErrPatientNotFound
	}

	patient := s.records[idx]
	record := entity.NewDischargeRecord(patient, s.timestamp())
	remaining := make([]entity.PatientRecord, 0, len(s.records)-1)
	remaining = append(remaining, s.records[:idx]...)
	remaining = append(remaining, s.records[idx+1:]...)

	var warnings []error
	logger := s.log.WithFields(logrus.Fields{"patient_id": id, "room": patient.RoomNumber})

	if s.mode.IsStrict() {
		if err := s.patientRepo.RewriteAll(ctx, remaining); err != nil {
			return DischargeOutcome{}, persistenceErr("rewrite patient file", err)
		}
		if err := s.dischargeRepo.Append(ctx, record); err != nil {
			if rerr := s.patientRepo.RewriteAll(ctx, s.records); rerr != nil {
				logger.Errorf("Failed to restore patient file after archive failure: %v", rerr)
				s.needsRewrite = true
			}
			return DischargeOutcome{}, persistenceErr("append discharge record", err)
		}
		s.records = remaining
		s.needsRewrite = false
	} else {
		s.records = remaining
		if err := s.dischargeRepo.Append(ctx, record); err != nil {
			logger.Warnf("Discharge not archived: %v", err)
			warnings = append(warnings, persistenceErr("append discharge record", err))
		}
	}

	if err := s.roomUsageRepo.Append(ctx, patient.RoomNumber); err != nil {
		logger.Warnf("Room usage not logged: %v", err)
		warnings = append(warnings, persistenceErr("append room usage", err))
	}

	if !s.mode.IsStrict() {
		if err := s.patientRepo.RewriteAll(ctx, remaining); err != nil {
			logger.Warnf("Patient file not updated, original kept: %v", err)
			s.needsRewrite = true
			warnings = append(warnings, persistenceErr("rewrite patient file", err))
		} else {
			s.needsRewrite = false
		}
	}

	logger.Info("Patient discharged")
	return DischargeOutcome{Record: record, Warnings: warnings}, nil
}

// Backup rewrites the patient file from memory.
func (s *RecordStore) Backup(ctx context.Context) error {
	if err := s.patientRepo.RewriteAll(ctx, s.records); err != nil {
		return persistenceErr("rewrite patient file", err)
	}
	s.needsRewrite = false
	s.log.Infof("Patient file updated with %d records", len(s.records))
	return nil
}

func (s *RecordStore) FindByID(id int) (entity.PatientRecord, error) {
	if idx := s.indexOf(id); idx >= 0 {
		return s.records[idx], nil
	}
	return entity.PatientRecord{}, ErrPatientNotFound
}

// ListAll returns a copy of the active records in admission order.
func (s *RecordStore) ListAll() []entity.PatientRecord {
	out := make([]entity.PatientRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *RecordStore) IsRoomOccupied(room int) bool {
	for _, rec := range s.records {
		if rec.RoomNumber == room {
			return true
		}
	}
	return false
}

func (s *RecordStore) Count() int {
	return len(s.records)
}

func (s *RecordStore) NextID() int {
	return s.nextID
}

// Now returns the store clock reading.
func (s *RecordStore) Now() time.Time {
	return s.now()
}

func (s *RecordStore) indexOf(id int) int {
	for i, rec := range s.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// timestamp drops sub-second precision so in-memory records compare equal
// to records read back from disk.
func (s *RecordStore) timestamp() time.Time {
	return s.now().Truncate(time.Second)
}
