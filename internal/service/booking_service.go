package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"concesionaria/internal/config"
	"concesionaria/internal/entities"
	apperrors "concesionaria/internal/errors"
	"concesionaria/internal/repository"
)

// Notifier is told about bookings after they are committed. Implementations
// must not block the caller.
type Notifier interface {
	BookingConfirmed(b entities.Booking)
	BookingReminder(b entities.Booking)
}

// BookingService decides whether a requested time slot may be booked against
// the dealership's shared service bays, and answers queries about existing
// bookings. All time arithmetic happens in UTC.
type BookingService struct {
	store    repository.Store
	notifier Notifier
	logger   zerolog.Logger
	hours    config.DealershipHours
	validate *validator.Validate
}

// NewBookingService wires the service with its store and the immutable
// business-hours configuration. notifier may be nil.
func NewBookingService(store repository.Store, notifier Notifier, logger zerolog.Logger, hours config.DealershipHours) *BookingService {
	v := validator.New()
	// Report field paths by their json names, the way callers see them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &BookingService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		hours:    hours,
		validate: v,
	}
}

// Create admits a booking request: structural validation first, then
// end-time derivation, business-hours containment, and the capacity check
// under the store's lock. Either every check passes and the booking is
// stored, or nothing is stored.
func (s *BookingService) Create(req *entities.BookingRequest) (*entities.Booking, error) {
	s.logger.Info().
		Str("vin", req.Vehicle.VIN).
		Time("start_time", req.StartTime).
		Msg("create booking")

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	start := req.StartTime.UTC()
	end := start.Add(time.Duration(s.hours.Duration) * time.Hour)

	openAt, closeAt := s.workingHours(start)
	if start.Before(openAt) || end.After(closeAt) {
		return nil, apperrors.ErrOutsideWorkingHours
	}

	booking := entities.Booking{
		Customer: req.Customer,
		Vehicle:  req.Vehicle,
		Window:   entities.NewTimeWindow(start, end),
	}

	err := s.store.Atomically(func(tx repository.Store) error {
		capacity, err := tx.GetCapacity()
		if err != nil {
			return err
		}
		overlapping, err := tx.FindOverlapping(booking.Window)
		if err != nil {
			return err
		}
		if len(overlapping) >= capacity {
			return apperrors.ErrCapacityExceeded
		}
		return tx.Insert(booking)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingConfirmed(booking)
	}
	return &booking, nil
}

// SetCapacity replaces the shared capacity value. Values below 1 are
// rejected without touching the store.
func (s *BookingService) SetCapacity(capacity int) error {
	s.logger.Info().Int("capacity", capacity).Msg("set capacity")
	if capacity < 1 {
		return apperrors.ErrInvalidCapacity
	}
	return s.store.Atomically(func(tx repository.Store) error {
		return tx.SetCapacity(capacity)
	})
}

func (s *BookingService) GetCapacity() (int, error) {
	return s.store.GetCapacity()
}

// GetBookingsByDay returns the bookings lying fully inside the dealership's
// working hours on the given calendar day, inclusive on both ends.
func (s *BookingService) GetBookingsByDay(date time.Time) ([]entities.Booking, error) {
	openAt, closeAt := s.workingHours(date)
	return s.store.FindWithin(entities.NewTimeWindow(openAt, closeAt))
}

// GetBookingsByVIN returns all bookings for the exact 17-character VIN.
func (s *BookingService) GetBookingsByVIN(vin string) ([]entities.Booking, error) {
	if len(vin) != 17 {
		return nil, apperrors.ErrInvalidVINFormat
	}
	return s.store.FindByVIN(vin)
}

// workingHours pins the configured open and close clock times onto the
// calendar day of the given instant, in UTC.
func (s *BookingService) workingHours(day time.Time) (time.Time, time.Time) {
	year, month, d := day.UTC().Date()
	openAt := time.Date(year, month, d, s.hours.OpenHour, s.hours.OpenMinute, 0, 0, time.UTC)
	closeAt := time.Date(year, month, d, s.hours.CloseHour, s.hours.CloseMinute, 0, 0, time.UTC)
	return openAt, closeAt
}

// validateRequest checks fields in declaration order (customer, vehicle,
// date) and reports only the first violation.
func (s *BookingService) validateRequest(req *entities.BookingRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return &apperrors.ValidationError{Field: field, Rule: rule}
	}
	return err
}
