package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campushours/officehours/internal/identity"
)

// Repository contains the interval-store and booking-ledger operations the
// service needs. InTx runs a function against a transactional view; the
// booking decision's reads and writes all happen inside one transaction so
// nothing partial is ever observable.
type Repository interface {
	// Interval store
	ListWindows(ctx context.Context, professorID uuid.UUID) ([]Window, error)
	FindOverlappingWindows(ctx context.Context, professorID uuid.UUID, start, end time.Time) ([]Window, error)
	InsertWindow(ctx context.Context, w Window) (Window, error)
	DeleteWindow(ctx context.Context, id uuid.UUID) error
	UpdateWindowSpan(ctx context.Context, id uuid.UUID, start, end time.Time) error

	// Booking ledger
	FindOverlappingAppointments(ctx context.Context, professorID uuid.UUID, start, end time.Time) ([]Appointment, error)
	InsertAppointment(ctx context.Context, a Appointment) (Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error)
	MarkCanceled(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByProfessor(ctx context.Context, professorID uuid.UUID) ([]Appointment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Appointment, error)

	InTx(ctx context.Context, fn func(tx Repository) error) error
}

// Directory is the read-only slice of the user directory the core needs: does
// this id resolve to a user, and with what role.
type Directory interface {
	FindRole(ctx context.Context, id uuid.UUID) (role identity.Role, ok bool, err error)
}
