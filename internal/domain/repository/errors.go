package repository

import "errors"

// Load errors. Repositories return them wrapped, together with the records
// decoded before the failure.
var (
	ErrTruncatedRecord = errors.New("truncated record")
	ErrCorruptRecord   = errors.New("corrupt record")
)
