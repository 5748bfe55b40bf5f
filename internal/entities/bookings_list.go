package entities

type BookingsList struct {
	Total    int       `json:"total"`
	Bookings []Booking `json:"bookings"`
}
