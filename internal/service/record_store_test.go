package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"patient-register/internal/domain/entity"
	"patient-register/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admittedAt = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type storeFixture struct {
	store      *RecordStore
	patients   *MockPatientRecordRepository
	discharges *MockDischargeRecordRepository
	rooms      *MockRoomUsageRepository
}

func newStoreFixture(mode entity.DurabilityMode) *storeFixture {
	f := &storeFixture{
		patients:   &MockPatientRecordRepository{},
		discharges: &MockDischargeRecordRepository{},
		rooms:      &MockRoomUsageRepository{},
	}
	f.store = NewRecordStore(quietLogger(), f.patients, f.discharges, f.rooms, mode, fixedClock(admittedAt))
	return f
}

func janeDoe() AdmitInput {
	return AdmitInput{Name: "Jane Doe", AgeInYears: 34, Diagnosis: "Influenza", RoomNumber: 12}
}

func TestRecordStore_Admit(t *testing.T) {
	ctx := context.Background()

	t.Run("first admission", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		admission, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		assert.Empty(t, admission.Warnings)

		p := admission.Patient
		assert.Equal(t, 1, p.ID)
		assert.Equal(t, "Jane Doe", p.Name)
		assert.Equal(t, 12, p.RoomNumber)
		assert.True(t, p.AdmittedAt.Equal(admittedAt))
		assert.Equal(t, 1, f.store.Count())
		assert.Equal(t, 2, f.store.NextID())
		assert.True(t, f.store.IsRoomOccupied(12))
		assert.Equal(t, []entity.PatientRecord{p}, f.patients.Stored)
	})

	t.Run("IDs are unique and increasing", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		for i := 1; i <= 3; i++ {
			in := janeDoe()
			in.RoomNumber = i
			admission, err := f.store.Admit(ctx, in)
			require.NoError(t, err)
			assert.Equal(t, i, admission.Patient.ID)
		}
		assert.Equal(t, 4, f.store.NextID())
	})

	t.Run("occupied room is refused", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		_, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)

		in := janeDoe()
		in.Name = "John Roe"
		_, err = f.store.Admit(ctx, in)
		assert.ErrorIs(t, err, ErrRoomOccupied)
		assert.Equal(t, 1, f.store.Count())
		assert.Equal(t, 2, f.store.NextID())
	})

	t.Run("timestamps drop sub-second precision", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		f.store.now = func() time.Time { return admittedAt.Add(750 * time.Millisecond) }
		admission, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		assert.True(t, admission.Patient.AdmittedAt.Equal(admittedAt))
	})

	t.Run("lenient append failure keeps the admission", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		f.patients.AppendFunc = func(ctx context.Context, record entity.PatientRecord) error { return errDisk }

		admission, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		require.Len(t, admission.Warnings, 1)
		assert.ErrorIs(t, admission.Warnings[0], ErrPersistence)
		assert.ErrorIs(t, admission.Warnings[0], errDisk)
		assert.Equal(t, 1, f.store.Count())

		// the next admission repairs the file with a full rewrite
		in := janeDoe()
		in.RoomNumber = 13
		_, err = f.store.Admit(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, f.patients.RewriteCalls)
		assert.Equal(t, f.store.ListAll(), f.patients.Stored)
	})

	t.Run("strict append failure changes nothing", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityStrict)
		f.patients.AppendFunc = func(ctx context.Context, record entity.PatientRecord) error { return errDisk }

		_, err := f.store.Admit(ctx, janeDoe())
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Zero(t, f.store.Count())
		assert.Equal(t, 1, f.store.NextID())
		assert.False(t, f.store.IsRoomOccupied(12))
	})
}

func TestRecordStore_FindAndList(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(entity.DurabilityLenient)

	assert.Empty(t, f.store.ListAll())
	_, err := f.store.FindByID(1)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	first, err := f.store.Admit(ctx, janeDoe())
	require.NoError(t, err)
	in := janeDoe()
	in.Name, in.RoomNumber = "John Roe", 7
	second, err := f.store.Admit(ctx, in)
	require.NoError(t, err)

	found, err := f.store.FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, second.Patient, found)

	list := f.store.ListAll()
	assert.Equal(t, []entity.PatientRecord{first.Patient, second.Patient}, list)

	// the snapshot is a copy
	list[0].Name = "changed"
	found, err = f.store.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.Name)
}

func TestRecordStore_Discharge(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the patient to the archive", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		admission, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)

		outcome, err := f.store.Discharge(ctx, admission.Patient.ID)
		require.NoError(t, err)
		assert.Empty(t, outcome.Warnings)
		assert.Equal(t, admission.Patient, outcome.Record.Patient)
		assert.True(t, outcome.Record.DischargedAt.After(admission.Patient.AdmittedAt))

		assert.Zero(t, f.store.Count())
		assert.False(t, f.store.IsRoomOccupied(12))
		_, err = f.store.FindByID(1)
		assert.ErrorIs(t, err, ErrPatientNotFound)

		assert.Equal(t, []entity.DischargeRecord{outcome.Record}, f.discharges.Stored)
		assert.Equal(t, []int{12}, f.rooms.Rooms)
		assert.Empty(t, f.patients.Stored)
	})

	t.Run("discharge is terminal", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		_, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		_, err = f.store.Discharge(ctx, 1)
		require.NoError(t, err)

		_, err = f.store.Discharge(ctx, 1)
		assert.ErrorIs(t, err, ErrPatientNotFound)
		assert.Len(t, f.discharges.Stored, 1)
	})

	t.Run("unknown ID", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		_, err := f.store.Discharge(ctx, 42)
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})

	t.Run("keeps admission order of the rest", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		for room := 1; room <= 3; room++ {
			in := janeDoe()
			in.RoomNumber = room
			_, err := f.store.Admit(ctx, in)
			require.NoError(t, err)
		}
		_, err := f.store.Discharge(ctx, 2)
		require.NoError(t, err)

		ids := []int{}
		for _, p := range f.store.ListAll() {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []int{1, 3}, ids)
		assert.Equal(t, f.store.ListAll(), f.patients.Stored)
	})

	t.Run("lenient failures are warnings", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		_, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		f.discharges.AppendFunc = func(ctx context.Context, record entity.DischargeRecord) error { return errDisk }
		f.rooms.AppendFunc = func(ctx context.Context, room int) error { return errDisk }
		f.patients.RewriteAllFunc = func(ctx context.Context, records []entity.PatientRecord) error { return errDisk }

		outcome, err := f.store.Discharge(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, outcome.Warnings, 3)
		for _, w := range outcome.Warnings {
			assert.ErrorIs(t, w, ErrPersistence)
		}
		assert.Zero(t, f.store.Count())

		// the stale file is replaced on the next admission
		f.patients.RewriteAllFunc = nil
		in := janeDoe()
		in.RoomNumber = 5
		_, err = f.store.Admit(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, f.store.ListAll(), f.patients.Stored)
	})

	t.Run("strict rewrite failure leaves the patient active", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityStrict)
		_, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		f.patients.RewriteAllFunc = func(ctx context.Context, records []entity.PatientRecord) error { return errDisk }

		_, err = f.store.Discharge(ctx, 1)
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Equal(t, 1, f.store.Count())
		assert.Empty(t, f.discharges.Stored)
		assert.Empty(t, f.rooms.Rooms)
	})

	t.Run("strict archive failure restores the patient file", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityStrict)
		_, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		before := f.patients.Stored
		f.discharges.AppendFunc = func(ctx context.Context, record entity.DischargeRecord) error { return errDisk }

		_, err = f.store.Discharge(ctx, 1)
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Equal(t, 1, f.store.Count())
		assert.Equal(t, 2, f.patients.RewriteCalls)
		assert.Equal(t, before, f.patients.Stored)
		assert.Empty(t, f.rooms.Rooms)
	})

	t.Run("strict room usage failure is a warning", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityStrict)
		_, err := f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		f.rooms.AppendFunc = func(ctx context.Context, room int) error { return errDisk }

		outcome, err := f.store.Discharge(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, outcome.Warnings, 1)
		assert.Zero(t, f.store.Count())
		assert.Len(t, f.discharges.Stored, 1)
	})
}

func TestRecordStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("empty register", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		outcome, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.Zero(t, outcome.Loaded)
		assert.Equal(t, entity.DefaultPatientID, outcome.NextID)
	})

	t.Run("next ID follows the highest stored ID", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		f.patients.Stored = []entity.PatientRecord{
			{ID: 3, Name: "A", RoomNumber: 1, AdmittedAt: admittedAt},
			{ID: 9, Name: "B", RoomNumber: 2, AdmittedAt: admittedAt},
		}
		outcome, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, outcome.Loaded)
		assert.Equal(t, 10, f.store.NextID())
	})

	t.Run("archived IDs are never reused", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		f.patients.Stored = []entity.PatientRecord{{ID: 2, Name: "A", RoomNumber: 1, AdmittedAt: admittedAt}}
		f.discharges.Stored = []entity.DischargeRecord{
			entity.NewDischargeRecord(entity.PatientRecord{ID: 5, Name: "B", RoomNumber: 2, AdmittedAt: admittedAt}, admittedAt),
		}
		_, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 6, f.store.NextID())
	})

	t.Run("load is idempotent", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		f.patients.Stored = []entity.PatientRecord{{ID: 1, Name: "A", RoomNumber: 1, AdmittedAt: admittedAt}}
		first, err := f.store.Load(ctx)
		require.NoError(t, err)
		list := f.store.ListAll()

		second, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, list, f.store.ListAll())
	})

	t.Run("damaged file keeps the prefix and is rewritten on next admission", func(t *testing.T) {
		f := newStoreFixture(entity.DurabilityLenient)
		prefix := []entity.PatientRecord{{ID: 1, Name: "A", RoomNumber: 1, AdmittedAt: admittedAt}}
		f.patients.LoadAllFunc = func(ctx context.Context) ([]entity.PatientRecord, error) {
			return prefix, fmt.Errorf("load patients.dat: %w", repository.ErrTruncatedRecord)
		}

		outcome, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.Loaded)
		require.Len(t, outcome.Warnings, 1)
		assert.ErrorIs(t, outcome.Warnings[0], repository.ErrTruncatedRecord)

		_, err = f.store.Admit(ctx, janeDoe())
		require.NoError(t, err)
		assert.Zero(t, f.patients.AppendCalls)
		assert.Equal(t, 1, f.patients.RewriteCalls)
		assert.Len(t, f.patients.Stored, 2)
	})

	t.Run("unreadable file", func(t *testing.T) {
		for _, mode := range []entity.DurabilityMode{entity.DurabilityLenient, entity.DurabilityStrict} {
			f := newStoreFixture(mode)
			f.patients.LoadAllFunc = func(ctx context.Context) ([]entity.PatientRecord, error) { return nil, errDisk }

			outcome, err := f.store.Load(ctx)
			if mode.IsStrict() {
				assert.ErrorIs(t, err, ErrPersistence)
				continue
			}
			require.NoError(t, err)
			assert.Zero(t, outcome.Loaded)
			assert.Len(t, outcome.Warnings, 1)

			// records left in the unread file must not sit next to reused IDs
			_, err = f.store.Admit(ctx, janeDoe())
			require.NoError(t, err)
			assert.Zero(t, f.patients.AppendCalls)
			assert.Equal(t, 1, f.patients.RewriteCalls)
		}
	})
}

func TestRecordStore_Backup(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(entity.DurabilityLenient)
	_, err := f.store.Admit(ctx, janeDoe())
	require.NoError(t, err)

	f.patients.Stored = nil
	require.NoError(t, f.store.Backup(ctx))
	assert.Equal(t, f.store.ListAll(), f.patients.Stored)

	f.patients.RewriteAllFunc = func(ctx context.Context, records []entity.PatientRecord) error { return errDisk }
	assert.ErrorIs(t, f.store.Backup(ctx), ErrPersistence)
}
