package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"patient-register/config"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataFs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "register")

	fs, err := NewDataFs(config.StorageConfig{DataDir: dir})
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "room_usage.txt", []byte("12\n"), 0o644))

	content, err := os.ReadFile(filepath.Join(dir, "room_usage.txt"))
	require.NoError(t, err)
	assert.Equal(t, "12\n", string(content))
}

func TestNewDataFs_RelativeDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	fs, err := NewDataFs(config.StorageConfig{DataDir: "."})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "patients.dat", nil, 0o644))

	_, err = os.Stat("patients.dat")
	assert.NoError(t, err)
}
