package repository

import (
	"context"
	"testing"
	"time"

	"patient-register/internal/domain/entity"
	domainRepo "patient-register/internal/domain/repository"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDischargeRecordRepository(t *testing.T) {
	ctx := context.Background()
	dischargedAt := time.Unix(1710590400, 0)

	t.Run("missing archive is empty", func(t *testing.T) {
		repo := NewDischargeRecordRepository(afero.NewMemMapFs(), "discharged_patients.dat")
		records, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("appends accumulate", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewDischargeRecordRepository(fs, "discharged_patients.dat")
		want := []entity.DischargeRecord{
			entity.NewDischargeRecord(samplePatient(1, 12), dischargedAt),
			entity.NewDischargeRecord(samplePatient(2, 7), dischargedAt.Add(time.Hour)),
		}
		for _, rec := range want {
			require.NoError(t, repo.Append(ctx, rec))
		}

		records, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, records)

		info, err := fs.Stat("discharged_patients.dat")
		require.NoError(t, err)
		assert.Equal(t, int64(2*DischargeRecordSize), info.Size())
	})

	t.Run("patient-sized tail is truncated", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewDischargeRecordRepository(fs, "discharged_patients.dat")
		require.NoError(t, repo.Append(ctx, entity.NewDischargeRecord(samplePatient(1, 12), dischargedAt)))
		require.NoError(t, appendBytes(fs, "discharged_patients.dat", make([]byte, PatientRecordSize)))

		records, err := repo.FindAll(ctx)
		assert.ErrorIs(t, err, domainRepo.ErrTruncatedRecord)
		assert.Len(t, records, 1)
	})
}
