package repository

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomUsageRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing log yields zero counts", func(t *testing.T) {
		repo := NewRoomUsageRepository(afero.NewMemMapFs(), "room_usage.txt", 1, 50)
		usage, err := repo.LoadCounts(ctx)
		require.NoError(t, err)
		assert.Zero(t, usage.TotalEntries)
		assert.Empty(t, usage.Counts)
	})

	t.Run("appends are counted per room", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewRoomUsageRepository(fs, "room_usage.txt", 1, 50)
		for _, room := range []int{12, 7, 12} {
			require.NoError(t, repo.Append(ctx, room))
		}

		content, err := afero.ReadFile(fs, "room_usage.txt")
		require.NoError(t, err)
		assert.Equal(t, "12\n7\n12\n", string(content))

		usage, err := repo.LoadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, usage.Count(12))
		assert.Equal(t, 1, usage.Count(7))
		assert.Equal(t, 3, usage.ValidEntries)
	})

	t.Run("invalid lines are listed and skipped", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "room_usage.txt", []byte("12\n\nabc\n51\n0\n 7 \n"), 0o644))
		repo := NewRoomUsageRepository(fs, "room_usage.txt", 1, 50)

		usage, err := repo.LoadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, usage.TotalEntries)
		assert.Equal(t, 2, usage.ValidEntries)
		assert.Equal(t, []string{"abc", "51", "0"}, usage.InvalidEntries)
		assert.Equal(t, 1, usage.Count(7))
	})
}
