package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/user/salon-service/internal/delivery/http/request"
	"github.com/user/salon-service/internal/delivery/http/response"
	"github.com/user/salon-service/internal/repository"
	"github.com/user/salon-service/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	booking usecase.Booking
}

func NewHandler(booking usecase.Booking) *Handler {
	return &Handler{
		booking: booking,
	}
}

func (h *Handler) HandleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	appt, err := h.booking.Create(r.Context(), req.ToEntity())
	if err != nil {
		h.writeBookingError(w, "create", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, appt)
}

func (h *Handler) HandleListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.booking.List(r.Context())
	if err != nil {
		h.writeBookingError(w, "list", err)
		return
	}
	h.writeJSON(w, http.StatusOK, appts)
}

func (h *Handler) HandleGetAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.booking.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeBookingError(w, "get", err)
		return
	}
	h.writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) HandleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	appt, err := h.booking.Update(r.Context(), chi.URLParam(r, "id"), req.ToEntity())
	if err != nil {
		h.writeBookingError(w, "update", err)
		return
	}
	h.writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) HandleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.booking.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeBookingError(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.booking.Ping(ctx); err != nil {
		slog.Error("Health check failed for appointment store", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, response.HealthResponse{Status: "unavailable", Store: "unhealthy"})
		return
	}
	h.writeJSON(w, http.StatusOK, response.HealthResponse{Status: "ok", Store: "healthy"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (request.AppointmentRequest, bool) {
	var req request.AppointmentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *Handler) writeBookingError(w http.ResponseWriter, op string, err error) {
	var invalid *usecase.ValidationError
	switch {
	case errors.As(err, &invalid):
		h.writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: "Validation failed", Fields: invalid.Fields})
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSONError(w, "Appointment not found", http.StatusNotFound)
	default:
		slog.Error("Appointment operation failed", "operation", op, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message})
}
