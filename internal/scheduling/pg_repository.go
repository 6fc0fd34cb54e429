package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so the same repository code serves plain and transactional calls.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var ErrAppointmentNotFound = errors.New("appointment not found")

type PgRepository struct {
	pool *pgxpool.Pool
	q    querier
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool, q: pool}
}

func (r *PgRepository) InTx(ctx context.Context, fn func(tx Repository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&PgRepository{pool: r.pool, q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Helpers

func scanWindow(row pgx.Row) (*Window, error) {
	var w Window
	err := row.Scan(
		&w.ID,
		&w.ProfessorID,
		&w.StartTime,
		&w.EndTime,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID,
		&a.ProfessorID,
		&a.StudentID,
		&a.StartTime,
		&a.EndTime,
		&a.IsCanceled,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func collectWindows(rows pgx.Rows) ([]Window, error) {
	defer rows.Close()

	var result []Window
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	return result, rows.Err()
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

// Interval store

func (r *PgRepository) ListWindows(ctx context.Context, professorID uuid.UUID) ([]Window, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, professor_id, start_time, end_time, created_at
		FROM availability_windows
		WHERE professor_id = $1
		ORDER BY start_time
	`, professorID)
	if err != nil {
		return nil, err
	}
	return collectWindows(rows)
}

func (r *PgRepository) FindOverlappingWindows(ctx context.Context, professorID uuid.UUID, start, end time.Time) ([]Window, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, professor_id, start_time, end_time, created_at
		FROM availability_windows
		WHERE professor_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`, professorID, start, end)
	if err != nil {
		return nil, err
	}
	return collectWindows(rows)
}

func (r *PgRepository) InsertWindow(ctx context.Context, w Window) (Window, error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO availability_windows (id, professor_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, professor_id, start_time, end_time, created_at
	`, w.ID, w.ProfessorID, w.StartTime, w.EndTime)

	created, err := scanWindow(row)
	if err != nil {
		return Window{}, err
	}
	return *created, nil
}

func (r *PgRepository) DeleteWindow(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM availability_windows WHERE id = $1
	`, id)
	return err
}

func (r *PgRepository) UpdateWindowSpan(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE availability_windows
		SET start_time = $2,
		    end_time = $3
		WHERE id = $1
	`, id, start, end)
	return err
}

// Booking ledger

func (r *PgRepository) FindOverlappingAppointments(ctx context.Context, professorID uuid.UUID, start, end time.Time) ([]Appointment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, professor_id, student_id, start_time, end_time, is_canceled, created_at, updated_at
		FROM appointments
		WHERE professor_id = $1
		  AND NOT is_canceled
		  AND start_time < $3
		  AND end_time > $2
	`, professorID, start, end)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) InsertAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO appointments (id, professor_id, student_id, start_time, end_time, is_canceled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, now(), now())
		RETURNING id, professor_id, student_id, start_time, end_time, is_canceled, created_at, updated_at
	`, a.ID, a.ProfessorID, a.StudentID, a.StartTime, a.EndTime)

	created, err := scanAppointment(row)
	if err != nil {
		return Appointment{}, err
	}
	return *created, nil
}

func (r *PgRepository) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, professor_id, student_id, start_time, end_time, is_canceled, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) MarkCanceled(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE appointments
		SET is_canceled = true,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, professor_id, student_id, start_time, end_time, is_canceled, created_at, updated_at
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListByProfessor(ctx context.Context, professorID uuid.UUID) ([]Appointment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, professor_id, student_id, start_time, end_time, is_canceled, created_at, updated_at
		FROM appointments
		WHERE professor_id = $1
		  AND NOT is_canceled
		ORDER BY start_time
	`, professorID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Appointment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, professor_id, student_id, start_time, end_time, is_canceled, created_at, updated_at
		FROM appointments
		WHERE student_id = $1
		  AND NOT is_canceled
		ORDER BY start_time
	`, studentID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}
