package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// JobService runs the scheduled work wired up in main via cron.
type JobService struct {
	bookings *BookingService
	notifier Notifier
	logger   zerolog.Logger
}

func NewJobService(bookings *BookingService, notifier Notifier, logger zerolog.Logger) *JobService {
	return &JobService{bookings: bookings, notifier: notifier, logger: logger}
}

// SendDailyReminders texts every customer with an appointment today.
func (s *JobService) SendDailyReminders() error {
	s.logger.Info().Msg("cron job: checking for bookings to remind")

	bookings, err := s.bookings.GetBookingsByDay(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cron job: failed to get today's bookings: %w", err)
	}

	if len(bookings) == 0 {
		s.logger.Info().Msg("cron job: no bookings today")
		return nil
	}

	s.logger.Info().Int("count", len(bookings)).Msg("cron job: sending reminders")
	for _, b := range bookings {
		s.notifier.BookingReminder(b)
	}
	return nil
}
