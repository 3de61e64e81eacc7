package domain

import (
	"errors"
	"fmt"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrStatsNotFound  = errors.New("no stats found")
	ErrInvalidJobData = errors.New("invalid job data")
)

// NewValidationError wraps a field-level message so callers can both match on
// ErrInvalidJobData and surface the concrete message.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidJobData, message)
}
