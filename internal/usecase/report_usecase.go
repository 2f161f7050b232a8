package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"patient-register/internal/converter"
	"patient-register/internal/delivery/dto"
	"patient-register/internal/domain/entity"
	"patient-register/internal/domain/repository"
	"patient-register/internal/report"
	"patient-register/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidTimeframe = errors.New("invalid timeframe")
)

type ReportUsecase interface {
	AdmissionReport(ctx context.Context, tf entity.Timeframe) (*dto.ReportResponse, error)
	DischargeReport(ctx context.Context, tf entity.Timeframe) (*dto.ReportResponse, error)
	RoomUsageReport(ctx context.Context) (*dto.ReportResponse, error)
}

type reportUsecase struct {
	log                 *logrus.Logger
	store               *service.RecordStore
	dischargeRepo       repository.DischargeRecordRepository
	roomUsageRepo       repository.RoomUsageRepository
	admissionTranscript repository.ReportTranscriptRepository
	dischargeTranscript repository.ReportTranscriptRepository
	maxRoom             int
}

func NewReportUsecase(
	log *logrus.Logger,
	store *service.RecordStore,
	dischargeRepo repository.DischargeRecordRepository,
	roomUsageRepo repository.RoomUsageRepository,
	admissionTranscript repository.ReportTranscriptRepository,
	dischargeTranscript repository.ReportTranscriptRepository,
	maxRoom int,
) ReportUsecase {
	return &reportUsecase{
		log:                 log,
		store:               store,
		dischargeRepo:       dischargeRepo,
		roomUsageRepo:       roomUsageRepo,
		admissionTranscript: admissionTranscript,
		dischargeTranscript: dischargeTranscript,
		maxRoom:             maxRoom,
	}
}

// AdmissionReport lists the active patients admitted within tf
func (u *reportUsecase) AdmissionReport(ctx context.Context, tf entity.Timeframe) (*dto.ReportResponse, error) {
	if !tf.IsValid() {
		return nil, ErrInvalidTimeframe
	}

	now := u.store.Now()
	u.noteYearBoundary(tf, now)
	matches := report.FilterByTimeframe(u.store.ListAll(), tf, entity.PatientRecord.AdmissionDate, func() time.Time { return now })
	body := report.RenderAdmissionReport(matches, tf, now)

	resp := &dto.ReportResponse{
		Title: "Patient Admission Report - " + tf.String(),
		Total: len(matches),
		Body:  body,
	}
	u.saveTranscript(ctx, u.admissionTranscript, resp)
	return resp, nil
}

// DischargeReport lists the archived discharges that happened within tf.
// A damaged archive tail is reported as a warning; the readable prefix is
// still reported.
func (u *reportUsecase) DischargeReport(ctx context.Context, tf entity.Timeframe) (*dto.ReportResponse, error) {
	if !tf.IsValid() {
		return nil, ErrInvalidTimeframe
	}

	var warnings []error
	archived, err := u.dischargeRepo.FindAll(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrTruncatedRecord) && !errors.Is(err, repository.ErrCorruptRecord) {
			u.log.Warnf("Failed to read discharge archive: %+v", err)
			return nil, fmt.Errorf("%w: read discharge archive: %w", service.ErrPersistence, err)
		}
		u.log.Warnf("Discharge archive is damaged, reporting the first %d records: %v", len(archived), err)
		warnings = append(warnings, err)
	}

	now := u.store.Now()
	u.noteYearBoundary(tf, now)
	matches := report.FilterByTimeframe(archived, tf, entity.DischargeRecord.DischargeDate, func() time.Time { return now })
	body := report.RenderDischargeReport(matches, tf, now)

	resp := &dto.ReportResponse{
		Title:    "Discharged Patient Report - " + tf.String(),
		Total:    len(matches),
		Body:     body,
		Warnings: converter.ErrorsToStrings(warnings),
	}
	u.saveTranscript(ctx, u.dischargeTranscript, resp)
	return resp, nil
}

// RoomUsageReport tallies the discharges logged per room
func (u *reportUsecase) RoomUsageReport(ctx context.Context) (*dto.ReportResponse, error) {
	usage, err := u.roomUsageRepo.LoadCounts(ctx)
	if err != nil {
		u.log.Warnf("Failed to read room usage log: %+v", err)
		return nil, fmt.Errorf("%w: read room usage log: %w", service.ErrPersistence, err)
	}

	for _, entry := range usage.InvalidEntries {
		u.log.WithField("entry", entry).Warn("Invalid room usage entry skipped")
	}

	return &dto.ReportResponse{
		Title: "Room Usage Report",
		Total: usage.ValidEntries,
		Body:  report.RenderRoomUsageReport(usage, u.maxRoom),
	}, nil
}

// saveTranscript appends the report body to its transcript file. A failed
// write is added to the response warnings.
func (u *reportUsecase) saveTranscript(ctx context.Context, transcript repository.ReportTranscriptRepository, resp *dto.ReportResponse) {
	if err := transcript.Append(ctx, resp.Body); err != nil {
		u.log.Warnf("Failed to save report to %s: %+v", transcript.Name(), err)
		resp.Warnings = append(resp.Warnings, err.Error())
		return
	}
	resp.Transcript = transcript.Name()
}

func (u *reportUsecase) noteYearBoundary(tf entity.Timeframe, now time.Time) {
	if tf == entity.TimeframeWeekly && report.CrossesYearBoundary(now) {
		u.log.Debugf("Weekly report on day %d of the year leaves out last year's days", now.YearDay())
	}
}
