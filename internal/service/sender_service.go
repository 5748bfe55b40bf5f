package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"concesionaria/internal/entities"
)

const timeLayout = "02 Jan 2006 15:04 MST"

// SenderService composes and dispatches booking notifications. Sends run on
// their own goroutine so a slow provider never delays an admission.
type SenderService struct {
	logger zerolog.Logger
}

func NewSenderService(logger zerolog.Logger) *SenderService {
	return &SenderService{logger: logger}
}

func (s *SenderService) BookingConfirmed(booking entities.Booking) {
	data := emailData(booking)

	subject := fmt.Sprintf("Your service appointment for the %s %s is confirmed", data.VehicleMake, data.VehicleModel)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour service appointment is confirmed.\n\n"+
			"Appointment details:\n"+
			"Vehicle: %s %s (VIN: %s)\n"+
			"Drop-off: %s\n"+
			"Pick-up: %s\n\n"+
			"Thank you for choosing Concesionaria.\n\n"+
			"Concesionaria. All rights reserved. %d",
		data.CustomerName, data.VehicleMake, data.VehicleModel, data.VIN,
		data.StartTimeFormatted, data.EndTimeFormatted, data.CurrentYear,
	)

	sms := fmt.Sprintf("Concesionaria: your service appointment is confirmed!\nDrop-off: %s.\nMore details in your email.",
		booking.Window.Start.Format("02/01 15:04"))

	go func(toEmail, toName, subject, body, toPhone, sms string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body, body); err != nil {
			s.logger.Warn().Err(err).Str("email", toEmail).Msg("booking confirmation email failed")
		}
		if err := SendSMS(toPhone, sms); err != nil {
			s.logger.Warn().Err(err).Str("phone", toPhone).Msg("booking confirmation SMS failed")
		}
	}(booking.Customer.Email, booking.Customer.Name, subject, body, booking.Customer.PhoneNumber, sms)
}

func (s *SenderService) BookingReminder(booking entities.Booking) {
	sms := fmt.Sprintf("Concesionaria: reminder, your %s %s is booked for service today at %s.",
		booking.Vehicle.Make, booking.Vehicle.Model, booking.Window.Start.Format("15:04"))

	go func(toPhone, sms string) {
		if err := SendSMS(toPhone, sms); err != nil {
			s.logger.Warn().Err(err).Str("phone", toPhone).Msg("booking reminder SMS failed")
		}
	}(booking.Customer.PhoneNumber, sms)
}

func emailData(booking entities.Booking) entities.BookingEmailData {
	return entities.BookingEmailData{
		CustomerName:       booking.Customer.Name,
		VehicleMake:        booking.Vehicle.Make,
		VehicleModel:       booking.Vehicle.Model,
		VIN:                booking.Vehicle.VIN,
		StartTimeFormatted: booking.Window.Start.Format(timeLayout),
		EndTimeFormatted:   booking.Window.End.Format(timeLayout),
		CurrentYear:        time.Now().UTC().Year(),
	}
}
