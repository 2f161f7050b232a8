package entity

// DurabilityMode controls what happens when a disk write fails after the
// operator asked for a change.
type DurabilityMode string

const (
	// DurabilityLenient applies the change in memory and reports the write
	// failure as a warning.
	DurabilityLenient DurabilityMode = "lenient"
	// DurabilityStrict refuses the change when it cannot be persisted.
	DurabilityStrict DurabilityMode = "strict"
)

// IsStrict checks if write failures must abort the operation
func (m DurabilityMode) IsStrict() bool {
	return m == DurabilityStrict
}
