package service

import (
	"context"
	"errors"
	"io"
	"time"

	"patient-register/internal/domain/entity"
	"patient-register/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var errDisk = errors.New("disk failure")

var (
	_ repository.PatientRecordRepository   = (*MockPatientRecordRepository)(nil)
	_ repository.DischargeRecordRepository = (*MockDischargeRecordRepository)(nil)
	_ repository.RoomUsageRepository       = (*MockRoomUsageRepository)(nil)
	_ repository.AuditLogRepository        = (*MockAuditLogRepository)(nil)
)

// MockPatientRecordRepository keeps the file image in memory unless a Func
// field overrides the call.
type MockPatientRecordRepository struct {
	Stored []entity.PatientRecord

	LoadAllFunc    func(ctx context.Context) ([]entity.PatientRecord, error)
	AppendFunc     func(ctx context.Context, record entity.PatientRecord) error
	RewriteAllFunc func(ctx context.Context, records []entity.PatientRecord) error

	AppendCalls  int
	RewriteCalls int
}

func (m *MockPatientRecordRepository) LoadAll(ctx context.Context) ([]entity.PatientRecord, error) {
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}
	return append([]entity.PatientRecord(nil), m.Stored...), nil
}

func (m *MockPatientRecordRepository) Append(ctx context.Context, record entity.PatientRecord) error {
	m.AppendCalls++
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, record)
	}
	m.Stored = append(m.Stored, record)
	return nil
}

func (m *MockPatientRecordRepository) RewriteAll(ctx context.Context, records []entity.PatientRecord) error {
	m.RewriteCalls++
	if m.RewriteAllFunc != nil {
		return m.RewriteAllFunc(ctx, records)
	}
	m.Stored = append([]entity.PatientRecord(nil), records...)
	return nil
}

type MockDischargeRecordRepository struct {
	Stored []entity.DischargeRecord

	AppendFunc  func(ctx context.Context, record entity.DischargeRecord) error
	FindAllFunc func(ctx context.Context) ([]entity.DischargeRecord, error)
}

func (m *MockDischargeRecordRepository) Append(ctx context.Context, record entity.DischargeRecord) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, record)
	}
	m.Stored = append(m.Stored, record)
	return nil
}

func (m *MockDischargeRecordRepository) FindAll(ctx context.Context) ([]entity.DischargeRecord, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return append([]entity.DischargeRecord(nil), m.Stored...), nil
}

type MockRoomUsageRepository struct {
	Rooms []int

	AppendFunc func(ctx context.Context, room int) error
}

func (m *MockRoomUsageRepository) Append(ctx context.Context, room int) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, room)
	}
	m.Rooms = append(m.Rooms, room)
	return nil
}

func (m *MockRoomUsageRepository) LoadCounts(ctx context.Context) (*entity.RoomUsage, error) {
	usage := entity.NewRoomUsage()
	for _, room := range m.Rooms {
		usage.Counts[room]++
		usage.TotalEntries++
		usage.ValidEntries++
	}
	return usage, nil
}

type MockAuditLogRepository struct {
	Logs []entity.AuditLog

	CreateFunc func(ctx context.Context, log *entity.AuditLog) error
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.Logs = append(m.Logs, *log)
	return nil
}

func (m *MockAuditLogRepository) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	return m.Logs, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fixedClock returns a clock that advances one minute per reading.
func fixedClock(start time.Time) func() time.Time {
	current := start.Add(-time.Minute)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}
