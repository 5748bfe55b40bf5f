package repository

import "concesionaria/internal/entities"

// Store holds the committed bookings and the shared capacity value. The two
// are one logical resource with one locking boundary: Atomically serializes a
// read-then-write sequence (capacity read, overlap scan, insert) against
// every other writer, which is what keeps concurrent admissions from both
// seeing free capacity and both committing.
type Store interface {
	// Insert appends a committed booking. Callers must only insert after
	// admission checks pass; the store does not re-validate.
	Insert(b entities.Booking) error

	// FindOverlapping returns every stored booking whose window overlaps w
	// under the inclusive-bound rule (touching endpoints overlap).
	FindOverlapping(w entities.TimeWindow) ([]entities.Booking, error)

	// FindWithin returns every stored booking fully contained in w,
	// inclusive on both ends.
	FindWithin(w entities.TimeWindow) ([]entities.Booking, error)

	// FindByVIN returns every stored booking for the exact VIN.
	FindByVIN(vin string) ([]entities.Booking, error)

	GetCapacity() (int, error)
	SetCapacity(capacity int) error

	// Atomically runs fn with exclusive access to the store. The Store
	// handed to fn must only be used inside fn.
	Atomically(fn func(tx Store) error) error
}
