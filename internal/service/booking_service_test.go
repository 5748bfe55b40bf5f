package service

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concesionaria/internal/config"
	"concesionaria/internal/entities"
	apperrors "concesionaria/internal/errors"
	"concesionaria/internal/repository"
)

// Business hours 09:00-17:00, bookings last 2 hours.
func newTestService(capacity int) *BookingService {
	hours := config.DealershipHours{
		OpenHour:    9,
		OpenMinute:  0,
		CloseHour:   17,
		CloseMinute: 0,
		Duration:    2,
	}
	return NewBookingService(repository.NewMemoryStore(capacity), nil, zerolog.Nop(), hours)
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func validRequest(start time.Time) *entities.BookingRequest {
	return &entities.BookingRequest{
		Customer: entities.Customer{
			Name:        "John Doe",
			Email:       "johndoe@mail.com",
			PhoneNumber: "+1979795443",
		},
		Vehicle: entities.Vehicle{
			Make:  "Volvo",
			Model: "XC 90",
			VIN:   "11111111111111111",
		},
		StartTime: start,
	}
}

func TestCreateEmptyCustomerName(t *testing.T) {
	svc := newTestService(2)
	req := validRequest(at(10, 0))
	req.Customer.Name = ""

	_, err := svc.Create(req)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customer.name", validationErr.Field)
	assert.Equal(t, "required", validationErr.Rule)
}

func TestCreateWrongEmail(t *testing.T) {
	svc := newTestService(2)
	req := validRequest(at(10, 0))
	req.Customer.Email = "jd.email"

	_, err := svc.Create(req)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customer.email", validationErr.Field)
	assert.Equal(t, "email", validationErr.Rule)
}

func TestCreateNameTooLong(t *testing.T) {
	svc := newTestService(2)
	req := validRequest(at(10, 0))
	req.Customer.Name = strings.Repeat("x", 51)

	_, err := svc.Create(req)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customer.name", validationErr.Field)
	assert.Equal(t, "max=50", validationErr.Rule)
}

func TestCreateWrongVINLength(t *testing.T) {
	svc := newTestService(2)
	req := validRequest(at(10, 0))
	req.Vehicle.VIN = "4s3..."

	_, err := svc.Create(req)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "vehicle.vin", validationErr.Field)
	assert.Equal(t, "len=17", validationErr.Rule)
}

func TestCreateMissingStartTime(t *testing.T) {
	svc := newTestService(2)
	req := validRequest(time.Time{})

	_, err := svc.Create(req)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "start_time", validationErr.Field)
	assert.Equal(t, "required", validationErr.Rule)
}

// Validation follows declaration order and reports only the first violation:
// a broken customer field wins over a broken vehicle field.
func TestCreateReportsFirstViolationOnly(t *testing.T) {
	svc := newTestService(2)
	req := validRequest(at(10, 0))
	req.Customer.Name = ""
	req.Vehicle.VIN = "4s3..."

	_, err := svc.Create(req)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customer.name", validationErr.Field)
}

func TestCreateOutsideWorkingHours(t *testing.T) {
	svc := newTestService(2)

	// Starting at 18:00 can never fit before close.
	_, err := svc.Create(validRequest(at(18, 0)))
	assert.ErrorIs(t, err, apperrors.ErrOutsideWorkingHours)

	// Starting before open is rejected too.
	_, err = svc.Create(validRequest(at(8, 59)))
	assert.ErrorIs(t, err, apperrors.ErrOutsideWorkingHours)

	// Starting inside hours but running past close is rejected, not
	// truncated.
	_, err = svc.Create(validRequest(at(16, 0)))
	assert.ErrorIs(t, err, apperrors.ErrOutsideWorkingHours)

	// Ending exactly at close is fine.
	_, err = svc.Create(validRequest(at(15, 0)))
	assert.NoError(t, err)
}

func TestCreateDerivesEndTime(t *testing.T) {
	svc := newTestService(2)

	booking, err := svc.Create(validRequest(at(9, 0)))
	require.NoError(t, err)
	assert.Equal(t, at(9, 0), booking.Window.Start)
	assert.Equal(t, at(11, 0), booking.Window.End)

	stored, err := svc.GetBookingsByVIN("11111111111111111")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, at(11, 0), stored[0].Window.End)
}

func TestCreateSuccessfullyCreated(t *testing.T) {
	svc := newTestService(2)

	_, err := svc.Create(validRequest(at(9, 0)))
	require.NoError(t, err)
	_, err = svc.Create(validRequest(at(12, 30)))
	require.NoError(t, err)
	_, err = svc.Create(validRequest(at(15, 0)))
	require.NoError(t, err)
}

func TestCreateCapacityLimitExceeded(t *testing.T) {
	svc := newTestService(2)

	_, err := svc.Create(validRequest(at(11, 0)))
	require.NoError(t, err)
	_, err = svc.Create(validRequest(at(13, 0)))
	require.NoError(t, err)

	// 11:15-13:15 overlaps both existing windows.
	_, err = svc.Create(validRequest(at(11, 15)))
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	// A rejected create leaves the store unchanged.
	bookings, err := svc.GetBookingsByDay(at(0, 0))
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

// With capacity 2 the admission decision and the commit are one atomic unit:
// racing creates on the same window must never over-commit.
func TestCreateConcurrentAdmissions(t *testing.T) {
	svc := newTestService(2)

	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(validRequest(at(10, 0))); err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 2, successes)
}

func TestSetCapacity(t *testing.T) {
	svc := newTestService(2)

	require.NoError(t, svc.SetCapacity(10))
	capacity, err := svc.GetCapacity()
	require.NoError(t, err)
	assert.Equal(t, 10, capacity)
}

func TestSetWrongCapacity(t *testing.T) {
	svc := newTestService(2)

	assert.ErrorIs(t, svc.SetCapacity(0), apperrors.ErrInvalidCapacity)
	assert.ErrorIs(t, svc.SetCapacity(-1), apperrors.ErrInvalidCapacity)

	capacity, err := svc.GetCapacity()
	require.NoError(t, err)
	assert.Equal(t, 2, capacity, "a rejected set leaves capacity unchanged")
}

func TestGetBookingsByDay(t *testing.T) {
	svc := newTestService(2)

	_, err := svc.Create(validRequest(at(9, 0)))
	require.NoError(t, err)
	_, err = svc.Create(validRequest(at(12, 30)))
	require.NoError(t, err)
	_, err = svc.Create(validRequest(at(15, 0)))
	require.NoError(t, err)
	// A booking on the previous day must not show up.
	_, err = svc.Create(validRequest(at(14, 0).AddDate(0, 0, -1)))
	require.NoError(t, err)

	bookings, err := svc.GetBookingsByDay(at(0, 0))
	require.NoError(t, err)
	assert.Len(t, bookings, 3)

	bookings, err = svc.GetBookingsByDay(at(0, 0).AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestGetBookingsByVIN(t *testing.T) {
	svc := newTestService(2)

	_, err := svc.Create(validRequest(at(9, 0)))
	require.NoError(t, err)

	other := validRequest(at(9, 0))
	other.Vehicle.VIN = "22222222222222222"
	_, err = svc.Create(other)
	require.NoError(t, err)

	bookings, err := svc.GetBookingsByVIN("11111111111111111")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestGetBookingsByVINWrongFormat(t *testing.T) {
	svc := newTestService(2)

	_, err := svc.GetBookingsByVIN(strings.Repeat("1", 16))
	assert.ErrorIs(t, err, apperrors.ErrInvalidVINFormat)

	_, err = svc.GetBookingsByVIN(strings.Repeat("1", 18))
	assert.ErrorIs(t, err, apperrors.ErrInvalidVINFormat)
}

func TestGetBookingsByVINUnknown(t *testing.T) {
	svc := newTestService(2)

	bookings, err := svc.GetBookingsByVIN("99999999999999999")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
