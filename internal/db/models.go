package db

import (
	"time"

	"concesionaria/internal/entities"
)

// BookingRow is the flat persisted shape of a booking, one column per field.
type BookingRow struct {
	ID          int
	Name        string
	Email       string
	PhoneNumber string
	Make        string
	Model       string
	VIN         string
	StartTime   time.Time
	EndTime     time.Time
}

func BookingRowFromEntity(b entities.Booking) BookingRow {
	return BookingRow{
		Name:        b.Customer.Name,
		Email:       b.Customer.Email,
		PhoneNumber: b.Customer.PhoneNumber,
		Make:        b.Vehicle.Make,
		Model:       b.Vehicle.Model,
		VIN:         b.Vehicle.VIN,
		StartTime:   b.Window.Start,
		EndTime:     b.Window.End,
	}
}

func (r BookingRow) ToEntity() entities.Booking {
	return entities.Booking{
		Customer: entities.Customer{
			Name:        r.Name,
			Email:       r.Email,
			PhoneNumber: r.PhoneNumber,
		},
		Vehicle: entities.Vehicle{
			Make:  r.Make,
			Model: r.Model,
			VIN:   r.VIN,
		},
		Window: entities.TimeWindow{
			Start: r.StartTime.UTC(),
			End:   r.EndTime.UTC(),
		},
	}
}
