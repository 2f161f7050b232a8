package repository

import (
	"context"
	"fmt"
	"strings"

	domainRepo "patient-register/internal/domain/repository"

	"github.com/spf13/afero"
)

type reportTranscriptRepository struct {
	fs   afero.Fs
	path string
}

func NewReportTranscriptRepository(fs afero.Fs, path string) domainRepo.ReportTranscriptRepository {
	return &reportTranscriptRepository{fs: fs, path: path}
}

// Append writes a blank separator line followed by report.
func (r *reportTranscriptRepository) Append(ctx context.Context, report string) error {
	if !strings.HasSuffix(report, "\n") {
		report += "\n"
	}
	if err := appendBytes(r.fs, r.path, []byte("\n"+report)); err != nil {
		return fmt.Errorf("append to %s: %w", r.path, err)
	}
	return nil
}

func (r *reportTranscriptRepository) Name() string {
	return r.path
}
