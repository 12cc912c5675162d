package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/salon-service/internal/entity"
	"github.com/user/salon-service/internal/repository"
	"github.com/user/salon-service/pkg/metrics"
)

// ValidationError lists the required document fields that were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Booking defines the appointment operations exposed to the delivery layer.
type Booking interface {
	Create(ctx context.Context, appt entity.Appointment) (*entity.Appointment, error)
	Get(ctx context.Context, id string) (*entity.Appointment, error)
	List(ctx context.Context) ([]*entity.Appointment, error)
	Update(ctx context.Context, id string, appt entity.Appointment) (*entity.Appointment, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Option customises the booking use case.
type Option func(*bookingUseCase)

// WithIDGenerator replaces the UUIDv7 id generator.
func WithIDGenerator(gen func() string) Option {
	return func(uc *bookingUseCase) { uc.newID = gen }
}

// WithClock replaces time.Now for createdAt stamping.
func WithClock(now func() time.Time) Option {
	return func(uc *bookingUseCase) { uc.now = now }
}

type bookingUseCase struct {
	appointments repository.AppointmentRepository
	newID        func() string
	now          func() time.Time
}

// NewBooking creates a new Booking use case.
func NewBooking(appointments repository.AppointmentRepository, opts ...Option) Booking {
	uc := &bookingUseCase{
		appointments: appointments,
		newID:        func() string { return uuid.Must(uuid.NewV7()).String() },
		now:          time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

func (uc *bookingUseCase) Create(ctx context.Context, appt entity.Appointment) (*entity.Appointment, error) {
	appt.Normalize()
	if missing := appt.MissingFields(); len(missing) > 0 {
		record("create", errInvalid)
		return nil, &ValidationError{Fields: missing}
	}

	appt.ID = uc.newID()
	appt.CreatedAt = uc.now().UTC()

	if err := uc.appointments.Save(ctx, &appt); err != nil {
		record("create", err)
		return nil, fmt.Errorf("failed to save appointment: %w", err)
	}
	record("create", nil)

	slog.Info("Appointment booked", "id", appt.ID, "date", appt.Date, "stylist", appt.Stylist.Name)
	return &appt, nil
}

func (uc *bookingUseCase) Get(ctx context.Context, id string) (*entity.Appointment, error) {
	appt, err := uc.appointments.FindByID(ctx, id)
	record("get", err)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment %s: %w", id, err)
	}
	return appt, nil
}

func (uc *bookingUseCase) List(ctx context.Context) ([]*entity.Appointment, error) {
	appts, err := uc.appointments.FindAll(ctx)
	record("list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if appts == nil {
		appts = []*entity.Appointment{}
	}
	metrics.AppointmentsLastListed.Set(float64(len(appts)))
	return appts, nil
}

func (uc *bookingUseCase) Update(ctx context.Context, id string, appt entity.Appointment) (*entity.Appointment, error) {
	appt.Normalize()
	if missing := appt.MissingFields(); len(missing) > 0 {
		record("update", errInvalid)
		return nil, &ValidationError{Fields: missing}
	}

	existing, err := uc.appointments.FindByID(ctx, id)
	if err != nil {
		record("update", err)
		return nil, fmt.Errorf("failed to find appointment %s: %w", id, err)
	}

	appt.ID = existing.ID
	appt.CreatedAt = existing.CreatedAt

	if err := uc.appointments.Update(ctx, &appt); err != nil {
		record("update", err)
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	record("update", nil)
	return &appt, nil
}

func (uc *bookingUseCase) Delete(ctx context.Context, id string) error {
	err := uc.appointments.Delete(ctx, id)
	record("delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	slog.Info("Appointment cancelled", "id", id)
	return nil
}

func (uc *bookingUseCase) Ping(ctx context.Context) error {
	return uc.appointments.Ping(ctx)
}

var errInvalid = errors.New("invalid")

func record(operation string, err error) {
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, errInvalid):
		status = "invalid"
	case errors.Is(err, repository.ErrNotFound):
		status = "not_found"
	default:
		status = "error"
	}
	metrics.AppointmentOperations.WithLabelValues(operation, status).Inc()
}
