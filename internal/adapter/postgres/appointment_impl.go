package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/user/salon-service/internal/entity"
	"github.com/user/salon-service/internal/repository"
)

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const schema = `
	CREATE TABLE IF NOT EXISTS appointments (
		id               TEXT PRIMARY KEY,
		document         JSONB NOT NULL,
		appointment_date TIMESTAMPTZ NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS appointments_created_at_idx ON appointments (created_at);
`

// AppointmentRepoImpl stores appointment documents in a JSONB column.
type AppointmentRepoImpl struct {
	db DB
}

// NewAppointmentRepo creates a new instance of AppointmentRepoImpl.
func NewAppointmentRepo(db DB) *AppointmentRepoImpl {
	return &AppointmentRepoImpl{db: db}
}

// EnsureSchema creates the appointments table if it does not exist yet.
func (r *AppointmentRepoImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure appointments schema: %w", err)
	}
	return nil
}

// Save inserts a new appointment document.
func (r *AppointmentRepoImpl) Save(ctx context.Context, appt *entity.Appointment) error {
	doc, err := json.Marshal(appt)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO appointments (id, document, appointment_date, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = r.db.Exec(ctx, query, appt.ID, doc, appt.Date, appt.CreatedAt)
	return err
}

// FindByID retrieves a single appointment document.
func (r *AppointmentRepoImpl) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	query := `SELECT document FROM appointments WHERE id = $1;`

	var doc []byte
	if err := r.db.QueryRow(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return decode(doc)
}

// FindAll retrieves every appointment document ordered by creation time.
func (r *AppointmentRepoImpl) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	query := `SELECT document FROM appointments ORDER BY created_at ASC, id ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []*entity.Appointment
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		appt, err := decode(doc)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}

// Update replaces an existing appointment document.
func (r *AppointmentRepoImpl) Update(ctx context.Context, appt *entity.Appointment) error {
	doc, err := json.Marshal(appt)
	if err != nil {
		return err
	}

	query := `
		UPDATE appointments
		SET document = $2, appointment_date = $3
		WHERE id = $1;
	`
	tag, err := r.db.Exec(ctx, query, appt.ID, doc, appt.Date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an appointment document.
func (r *AppointmentRepoImpl) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepoImpl) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func decode(doc []byte) (*entity.Appointment, error) {
	var appt entity.Appointment
	if err := json.Unmarshal(doc, &appt); err != nil {
		return nil, fmt.Errorf("failed to decode appointment document: %w", err)
	}
	return &appt, nil
}
