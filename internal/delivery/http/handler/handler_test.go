package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/salon-service/internal/adapter/sqlite"
	"github.com/user/salon-service/internal/delivery/http/handler"
	"github.com/user/salon-service/internal/delivery/http/response"
	"github.com/user/salon-service/internal/delivery/http/router"
	"github.com/user/salon-service/internal/entity"
	"github.com/user/salon-service/internal/repository"
	"github.com/user/salon-service/internal/usecase"
	"github.com/user/salon-service/pkg/metrics"
	"github.com/user/salon-service/web"
)

const validBody = `{
	"client": {"firstName": " Ada ", "lastName": "Lovelace", "phoneNumber": "555-0100"},
	"service": {"serviceType": "Haircut", "styleType": "Fade", "comments": "short"},
	"stylist": {"name": "Marco"},
	"date": "2026-12-24T10:30:00Z"
}`

func newServer(t *testing.T, repo repository.AppointmentRepository) http.Handler {
	t.Helper()
	metrics.Init()

	if repo == nil {
		db, err := sqlite.Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		repo = sqlite.NewAppointmentRepo(db)
	}

	seq := 0
	booking := usecase.NewBooking(repo,
		usecase.WithIDGenerator(func() string { seq++; return fmt.Sprintf("appt-%d", seq) }),
		usecase.WithClock(func() time.Time { return time.Date(2026, 10, 1, 9, 0, seq, 0, time.UTC) }),
	)
	pages, err := web.NewPages()
	require.NoError(t, err)

	return router.New(handler.NewHandler(booking), handler.NewPageHandler(booking, pages))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateAndGetAppointment(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/appointments", validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	created := decode[entity.Appointment](t, rec)
	assert.Equal(t, "appt-1", created.ID)
	assert.Equal(t, "Ada", created.Client.FirstName)
	assert.False(t, created.CreatedAt.IsZero())

	rec = do(t, srv, http.MethodGet, "/api/appointments/appt-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[entity.Appointment](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Marco", got.Stylist.Name)
	assert.True(t, created.Date.Equal(got.Date))
}

func TestCreateValidationError(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/appointments", `{"client": {"firstName": "  "}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[response.ErrorResponse](t, rec)
	assert.Equal(t, "Validation failed", body.Error)
	assert.Equal(t, []string{"client.firstName", "client.lastName", "client.phoneNumber", "date"}, body.Fields)
}

func TestCreateInvalidJSON(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/appointments", `{"client":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode[response.ErrorResponse](t, rec).Error)
}

func TestListAppointments(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/appointments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	do(t, srv, http.MethodPost, "/api/appointments", validBody)
	do(t, srv, http.MethodPost, "/api/appointments", validBody)

	rec = do(t, srv, http.MethodGet, "/api/appointments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]entity.Appointment](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "appt-1", list[0].ID)
	assert.Equal(t, "appt-2", list[1].ID)
}

func TestUpdateAppointment(t *testing.T) {
	srv := newServer(t, nil)
	created := decode[entity.Appointment](t, do(t, srv, http.MethodPost, "/api/appointments", validBody))

	updated := strings.Replace(validBody, `"Marco"`, `"Dee"`, 1)
	rec := do(t, srv, http.MethodPut, "/api/appointments/appt-1", updated)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[entity.Appointment](t, rec)
	assert.Equal(t, "appt-1", got.ID)
	assert.Equal(t, "Dee", got.Stylist.Name)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	rec = do(t, srv, http.MethodPut, "/api/appointments/ghost", updated)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPut, "/api/appointments/appt-1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAppointment(t *testing.T) {
	srv := newServer(t, nil)
	do(t, srv, http.MethodPost, "/api/appointments", validBody)

	rec := do(t, srv, http.MethodDelete, "/api/appointments/appt-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, srv, http.MethodDelete, "/api/appointments/appt-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/appointments/appt-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Appointment not found", decode[response.ErrorResponse](t, rec).Error)
}

func TestHealthCheck(t *testing.T) {
	rec := do(t, newServer(t, nil), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","store":"healthy"}`, rec.Body.String())

	rec = do(t, newServer(t, downRepo{}), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","store":"unhealthy"}`, rec.Body.String())
}

func TestStoreFailureIsInternalError(t *testing.T) {
	srv := newServer(t, downRepo{})

	rec := do(t, srv, http.MethodPost, "/api/appointments", validBody)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode[response.ErrorResponse](t, rec).Error)

	rec = do(t, srv, http.MethodGet, "/api/appointments", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPages(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "BarberShop - Premium Hair Care")

	rec = do(t, srv, http.MethodGet, "/booking", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<form method="post" action="/booking"`)
}

func postForm(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBookingSubmit(t *testing.T) {
	srv := newServer(t, nil)

	rec := postForm(t, srv, url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"phoneNumber": {"555-0100"},
		"serviceType": {"Haircut"},
		"stylist":     {"Marco"},
		"date":        {"2026-12-24T10:30"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thanks Ada, you are booked with Marco")
	assert.Contains(t, rec.Body.String(), "appt-1")

	rec = do(t, srv, http.MethodGet, "/api/appointments/appt-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookingSubmitValidation(t *testing.T) {
	srv := newServer(t, nil)

	rec := postForm(t, srv, url.Values{"firstName": {"Ada"}, "date": {"not a date"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "<li>client.lastName</li>")
	assert.Contains(t, html, "<li>date</li>")
	assert.Contains(t, html, `value="Ada"`)
	assert.NotContains(t, html, "Thanks")
}

var errDown = errors.New("store unreachable")

type downRepo struct{}

func (downRepo) Save(context.Context, *entity.Appointment) error { return errDown }
func (downRepo) FindByID(context.Context, string) (*entity.Appointment, error) {
	return nil, errDown
}
func (downRepo) FindAll(context.Context) ([]*entity.Appointment, error) { return nil, errDown }
func (downRepo) Update(context.Context, *entity.Appointment) error      { return errDown }
func (downRepo) Delete(context.Context, string) error                   { return errDown }
func (downRepo) Ping(context.Context) error                             { return errDown }
