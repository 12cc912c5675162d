package repository

import (
	"context"
	"errors"

	"github.com/user/salon-service/internal/entity"
)

// ErrNotFound is returned by every store backend when no document has the given id.
var ErrNotFound = errors.New("appointment not found")

// AppointmentRepository defines the document store for client appointments.
type AppointmentRepository interface {
	// Save inserts a new appointment document. The id must already be set.
	Save(ctx context.Context, appt *entity.Appointment) error
	// FindByID retrieves one appointment or ErrNotFound.
	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	// FindAll retrieves every appointment ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
	// Update replaces an existing document or returns ErrNotFound.
	Update(ctx context.Context, appt *entity.Appointment) error
	// Delete removes a document or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// Ping checks connectivity with the backing store.
	Ping(ctx context.Context) error
}
