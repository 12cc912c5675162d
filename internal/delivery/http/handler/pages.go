package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/user/salon-service/internal/delivery/http/request"
	"github.com/user/salon-service/internal/usecase"
	"github.com/user/salon-service/web"
)

const (
	indexTitle   = "BarberShop - Premium Hair Care"
	bookingTitle = "Book Appointment"
)

// PageHandler serves the server-rendered marketing and booking pages.
type PageHandler struct {
	booking usecase.Booking
	pages   *web.Pages
}

func NewPageHandler(booking usecase.Booking, pages *web.Pages) *PageHandler {
	return &PageHandler{booking: booking, pages: pages}
}

func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index", web.NewPageData(indexTitle))
}

func (h *PageHandler) HandleBookingForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "booking", web.NewPageData(bookingTitle))
}

// HandleBookingSubmit creates an appointment from the urlencoded form and
// re-renders the form with either the confirmation or the missing fields.
func (h *PageHandler) HandleBookingSubmit(w http.ResponseWriter, r *http.Request) {
	data := web.NewPageData(bookingTitle)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		data.Errors = []string{"The form could not be read. Please try again."}
		h.render(w, http.StatusBadRequest, "booking", data)
		return
	}

	appt, err := h.booking.Create(r.Context(), request.BookingForm(r.PostForm))
	if err != nil {
		var invalid *usecase.ValidationError
		data.Form = r.PostForm
		if errors.As(err, &invalid) {
			data.Errors = invalid.Fields
			h.render(w, http.StatusBadRequest, "booking", data)
			return
		}
		slog.Error("Failed to book appointment", "error", err)
		data.Errors = []string{"We could not save your booking. Please try again later."}
		h.render(w, http.StatusInternalServerError, "booking", data)
		return
	}

	data.Confirmation = appt
	h.render(w, http.StatusCreated, "booking", data)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, page string, data web.PageData) {
	var buf bytes.Buffer
	if err := h.pages.Render(&buf, page, data); err != nil {
		slog.Error("Failed to render page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
