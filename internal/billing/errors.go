package billing

import (
	"fmt"
	"time"
)

// InvalidRangeError is returned when a duration is requested for a range
// whose end date precedes its start date. Callers are expected to clamp
// user input before calling; this is never silently corrected here.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// InvalidDateError is returned when a renewal date violates ordering
// constraints (e.g. a custom end date not after the new start date).
type InvalidDateError struct {
	Field  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownBillingModeError is returned by ComputeRent for a mode that has no
// registered strategy.
type UnknownBillingModeError struct {
	Mode BillingMode
}

func (e *UnknownBillingModeError) Error() string {
	return fmt.Sprintf("unknown billing mode %q", e.Mode)
}
