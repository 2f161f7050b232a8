package usecase

import (
	"io"
	"testing"
	"time"

	"patient-register/internal/domain/entity"
	domainRepo "patient-register/internal/domain/repository"
	"patient-register/internal/repository"
	"patient-register/internal/service"
	"patient-register/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type testRegister struct {
	fs            afero.Fs
	now           time.Time
	store         *service.RecordStore
	dischargeRepo domainRepo.DischargeRecordRepository
	auditRepo     domainRepo.AuditLogRepository
	patients      PatientUsecase
	reports       ReportUsecase
	audit         AuditLogUsecase
}

// newTestRegister wires the usecases over an in-memory filesystem with a
// clock fixed at now.
func newTestRegister(t *testing.T, fs afero.Fs, now time.Time) *testRegister {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	r := &testRegister{fs: fs, now: now}
	clock := func() time.Time { return r.now }

	patientRepo := repository.NewPatientRecordRepository(fs, "patients.dat", "patients.tmp")
	r.dischargeRepo = repository.NewDischargeRecordRepository(fs, "discharged_patients.dat")
	roomUsageRepo := repository.NewRoomUsageRepository(fs, "room_usage.txt", 1, 50)
	r.auditRepo = repository.NewAuditLogRepository(fs, "audit_log.jsonl")

	r.store = service.NewRecordStore(log, patientRepo, r.dischargeRepo, roomUsageRepo, entity.DurabilityLenient, clock)
	auditService := service.NewAuditService(log, r.auditRepo, clock)

	r.patients = NewPatientUsecase(log, validator.NewValidator(validator.DefaultPatientRules()), r.store, auditService, "patients.dat")
	r.reports = NewReportUsecase(log, r.store, r.dischargeRepo, roomUsageRepo,
		repository.NewReportTranscriptRepository(fs, "patient_reports.txt"),
		repository.NewReportTranscriptRepository(fs, "discharged_reports.txt"),
		50)
	r.audit = NewAuditLogUsecase(log, r.auditRepo)
	return r
}
