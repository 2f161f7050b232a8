package repository

import "context"

// ReportTranscriptRepository appends rendered reports to a text transcript.
type ReportTranscriptRepository interface {
	Append(ctx context.Context, report string) error
	Name() string
}
