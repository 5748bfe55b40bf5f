package entities

type BookingEmailData struct {
	CustomerName       string
	VehicleMake        string
	VehicleModel       string
	VIN                string
	StartTimeFormatted string
	EndTimeFormatted   string
	CurrentYear        int
}
