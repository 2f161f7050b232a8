package usecase

import (
	"context"
	"strconv"

	"patient-register/internal/converter"
	"patient-register/internal/delivery/dto"
	"patient-register/internal/domain/entity"
	"patient-register/internal/service"
	"patient-register/pkg/validator"

	validatorlib "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type PatientUsecase interface {
	AdmitPatient(ctx context.Context, req *dto.AdmitPatientRequest) (*dto.AdmissionResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error)
	DischargePatient(ctx context.Context, id int) (*dto.DischargeResponse, error)
	IsRoomOccupied(ctx context.Context, room int) bool
	BackupRecords(ctx context.Context) (*dto.BackupResponse, error)
	RestoreRecords(ctx context.Context) (*dto.RestoreResponse, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	validator    *validator.CustomValidator
	store        *service.RecordStore
	auditService service.AuditService
	patientsFile string
}

func NewPatientUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	store *service.RecordStore,
	auditService service.AuditService,
	patientsFile string,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		validator:    validator,
		store:        store,
		auditService: auditService,
		patientsFile: patientsFile,
	}
}

// AdmitPatient normalizes and validates the request, then admits the patient
func (u *patientUsecase) AdmitPatient(ctx context.Context, req *dto.AdmitPatientRequest) (*dto.AdmissionResponse, error) {
	in := service.AdmitInput{
		Name:       validator.NormalizeText(req.Name),
		AgeInYears: req.AgeInYears,
		Diagnosis:  validator.NormalizeText(req.Diagnosis),
		RoomNumber: req.RoomNumber,
	}

	normalized := &dto.AdmitPatientRequest{
		Name:       in.Name,
		AgeInYears: in.AgeInYears,
		Diagnosis:  in.Diagnosis,
		RoomNumber: in.RoomNumber,
	}
	if err := u.validator.Validate(normalized); err != nil {
		if _, ok := err.(validatorlib.ValidationErrors); ok {
			return nil, &validator.ValidationError{Fields: u.validator.FormatValidationErrors(err)}
		}
		return nil, err
	}
	if err := u.validator.ValidateAdmission(in.Name, in.AgeInYears, in.Diagnosis, in.RoomNumber); err != nil {
		return nil, err
	}

	admission, err := u.store.Admit(ctx, in)
	if err != nil {
		u.log.Warnf("Failed to admit patient to room %d: %+v", in.RoomNumber, err)
		return nil, err
	}

	patient := converter.PatientRecordToResponse(admission.Patient)
	_ = u.auditService.LogCreate(ctx, entity.AuditActionPatientAdmit, "patient", strconv.Itoa(patient.ID), patient)

	u.log.Infof("Patient admitted: id=%d, room=%d", patient.ID, patient.RoomNumber)
	return &dto.AdmissionResponse{
		Patient:  patient,
		Warnings: converter.ErrorsToStrings(admission.Warnings),
	}, nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	records := u.store.ListAll()
	return &dto.PatientListResponse{
		Patients: converter.PatientRecordsToResponses(records),
		Total:    len(records),
	}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error) {
	rec, err := u.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := converter.PatientRecordToResponse(rec)
	return &resp, nil
}

// DischargePatient moves the patient to the discharge archive
func (u *patientUsecase) DischargePatient(ctx context.Context, id int) (*dto.DischargeResponse, error) {
	outcome, err := u.store.Discharge(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to discharge patient %d: %+v", id, err)
		return nil, err
	}

	resp := converter.DischargeRecordToResponse(outcome.Record, outcome.Warnings)
	_ = u.auditService.LogDelete(ctx, entity.AuditActionPatientDischarge, "patient", strconv.Itoa(id), resp.Patient)

	return resp, nil
}

func (u *patientUsecase) IsRoomOccupied(ctx context.Context, room int) bool {
	return u.store.IsRoomOccupied(room)
}

// BackupRecords rewrites the patient file from the in-memory register
func (u *patientUsecase) BackupRecords(ctx context.Context) (*dto.BackupResponse, error) {
	if err := u.store.Backup(ctx); err != nil {
		u.log.Warnf("Failed to back up patient records: %+v", err)
		return nil, err
	}

	count := u.store.Count()
	_ = u.auditService.LogEvent(ctx, entity.AuditActionRecordsBackup, entity.JSON{"records": count})

	return &dto.BackupResponse{Records: count, File: u.patientsFile}, nil
}

// RestoreRecords discards the in-memory register and reloads it from disk
func (u *patientUsecase) RestoreRecords(ctx context.Context) (*dto.RestoreResponse, error) {
	outcome, err := u.store.Load(ctx)
	if err != nil {
		u.log.Warnf("Failed to restore patient records: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogEvent(ctx, entity.AuditActionRecordsRestore, entity.JSON{
		"records": outcome.Loaded,
		"next_id": outcome.NextID,
	})

	return &dto.RestoreResponse{
		Records:  outcome.Loaded,
		NextID:   outcome.NextID,
		Warnings: converter.ErrorsToStrings(outcome.Warnings),
	}, nil
}
