package utils

// -----------------------------------------------------------------------------

// Retention defaults for the storage recorder.
const (
	DefaultRetentionDays = 7
)
