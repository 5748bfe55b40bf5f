package errors

import "fmt"

// bookingError is a comparable sentinel so callers can branch with errors.Is.
type bookingError string

func (e bookingError) Error() string { return string(e) }

const (
	// ErrOutsideWorkingHours rejects a booking whose window does not fit
	// between the dealership's open and close on the start's calendar day.
	ErrOutsideWorkingHours = bookingError("booking is outside of working hours")

	// ErrCapacityExceeded rejects a booking whose window already has as many
	// overlapping bookings as the dealership has capacity.
	ErrCapacityExceeded = bookingError("capacity limit exceeded")

	// ErrInvalidCapacity rejects any attempt to set capacity below 1.
	ErrInvalidCapacity = bookingError("capacity should be >= 1")

	// ErrInvalidVINFormat rejects VIN lookups that are not exactly 17 chars.
	ErrInvalidVINFormat = bookingError("vin has wrong format")
)

// ValidationError reports the first structural violation found in a booking
// request. Field is the JSON path of the offending field, Rule the broken
// constraint (e.g. "required", "max=50", "email", "len=17").
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking request: field '%s' fails rule '%s'", e.Field, e.Rule)
}
