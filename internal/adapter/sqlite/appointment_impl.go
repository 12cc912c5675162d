package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/salon-service/internal/entity"
	"github.com/user/salon-service/internal/repository"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS appointments (
		id               TEXT PRIMARY KEY,
		document         TEXT NOT NULL,
		appointment_date INTEGER NOT NULL,
		created_at       INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS appointments_created_at_idx ON appointments (created_at);
`

// Open opens the SQLite file at path with WAL journaling, a busy timeout and
// the appointments schema applied. ":memory:" is accepted for tests; the pool
// is then pinned to one connection since each connection would otherwise see
// its own empty database.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range append(pragmas, schema) {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	return db, nil
}

// AppointmentRepoImpl stores appointment documents as JSON text.
type AppointmentRepoImpl struct {
	db *sql.DB
}

// NewAppointmentRepo creates a new instance of AppointmentRepoImpl.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepoImpl {
	return &AppointmentRepoImpl{db: db}
}

func (r *AppointmentRepoImpl) Save(ctx context.Context, appt *entity.Appointment) error {
	doc, err := json.Marshal(appt)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO appointments (id, document, appointment_date, created_at) VALUES (?, ?, ?, ?)`,
		appt.ID, string(doc), appt.Date.UnixMilli(), appt.CreatedAt.UnixMilli(),
	)
	return err
}

func (r *AppointmentRepoImpl) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM appointments WHERE id = ?`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return decode(doc)
}

func (r *AppointmentRepoImpl) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT document FROM appointments ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []*entity.Appointment
	for rows.Next() {
		var doc string
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

func (r *AppointmentRepoImpl) Update(ctx context.Context, appt *entity.Appointment) error {
	doc, err := json.Marshal(appt)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET document = ?, appointment_date = ? WHERE id = ?`,
		string(doc), appt.Date.UnixMilli(), appt.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *AppointmentRepoImpl) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *AppointmentRepoImpl) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func decode(doc string) (*entity.Appointment, error) {
	var appt entity.Appointment
	if err := json.Unmarshal([]byte(doc), &appt); err != nil {
		return nil, fmt.Errorf("failed to decode appointment document: %w", err)
	}
	return &appt, nil
}
