package api

import (
	"encoding/json"
	"net/http"

	"concesionaria/internal/service"
)

type AdminHandler struct {
	Service *service.BookingService
}

func NewAdminHandler(svc *service.BookingService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) GetCapacity(w http.ResponseWriter, r *http.Request) {
	capacity, err := h.Service.GetCapacity()
	if err != nil {
		http.Error(w, "Could not get capacity", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CapacityResponse{Capacity: capacity})
}

func (h *AdminHandler) SetCapacity(w http.ResponseWriter, r *http.Request) {
	var req SetCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetCapacity(req.Capacity); err != nil {
		writeBookingError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Capacity updated"})
}
