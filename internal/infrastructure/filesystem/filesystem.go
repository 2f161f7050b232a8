package filesystem

import (
	"fmt"
	"path/filepath"

	"patient-register/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// NewDataFs returns a filesystem rooted at the configured data directory,
// creating the directory when it does not exist yet.
func NewDataFs(cfg config.StorageConfig) (afero.Fs, error) {
	// BasePathFs rejects paths outside a relative base such as "."
	dir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory %s: %w", cfg.DataDir, err)
	}

	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	fs := afero.NewBasePathFs(osFs, dir)

	logrus.Debugf("Using data directory %s", dir)

	return fs, nil
}
