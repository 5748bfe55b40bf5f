package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"concesionaria/internal/entities"
	apperrors "concesionaria/internal/errors"
	"concesionaria/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.Create(&req)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) GetBookingsByDay(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		httpErr := apperrors.ErrBadRequest("Invalid date, expected YYYY-MM-DD")
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	bookings, err := h.Service.GetBookingsByDay(date)
	if err != nil {
		http.Error(w, "Could not get bookings", http.StatusInternalServerError)
		return
	}
	writeBookingsList(w, bookings)
}

func (h *BookingHandler) GetBookingsByVIN(w http.ResponseWriter, r *http.Request) {
	vin := mux.Vars(r)["vin"]
	bookings, err := h.Service.GetBookingsByVIN(vin)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeBookingsList(w, bookings)
}

func writeBookingsList(w http.ResponseWriter, bookings []entities.Booking) {
	if bookings == nil {
		bookings = []entities.Booking{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.BookingsList{Total: len(bookings), Bookings: bookings})
}

// writeBookingError maps the service's error kinds onto HTTP status codes.
func writeBookingError(w http.ResponseWriter, err error) {
	httpErr := toHTTPError(err)
	http.Error(w, httpErr.Message, httpErr.Code)
}

func toHTTPError(err error) *apperrors.HTTPError {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, apperrors.ErrInvalidVINFormat),
		errors.Is(err, apperrors.ErrInvalidCapacity):
		return apperrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrOutsideWorkingHours):
		return apperrors.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return apperrors.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return apperrors.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
