package entities

// Customer is immutable once attached to a booking.
type Customer struct {
	Name        string `json:"name" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,max=50"`
}

// Vehicle identifies the car a booking is for. The VIN is not unique across
// bookings, a vehicle can be booked many times.
type Vehicle struct {
	Make  string `json:"make" validate:"required,max=50"`
	Model string `json:"model" validate:"required,max=50"`
	VIN   string `json:"vin" validate:"len=17"`
}

// Booking is only ever built by the booking service after admission checks
// pass. Window.End is derived from the configured duration, never supplied
// by the caller.
type Booking struct {
	Customer Customer   `json:"customer"`
	Vehicle  Vehicle    `json:"vehicle"`
	Window   TimeWindow `json:"window"`
}
