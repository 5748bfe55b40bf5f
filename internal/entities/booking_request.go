package entities

import "time"

// BookingRequest is what a caller submits to book a service bay. It carries
// only a start time; the end time is always derived from the configured
// booking duration. Validation runs in declaration order and stops at the
// first violation.
type BookingRequest struct {
	Customer  Customer  `json:"customer"`
	Vehicle   Vehicle   `json:"vehicle"`
	StartTime time.Time `json:"start_time" validate:"required"`
}
