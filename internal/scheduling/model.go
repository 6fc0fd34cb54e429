package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Window is an open interval a professor has published for booking.
// Windows for one professor never overlap each other; the span is half-open,
// [StartTime, EndTime).
type Window struct {
	ID          uuid.UUID
	ProfessorID uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
}

// Appointment is a booked sub-interval of a window. Appointments are never
// deleted, only flipped to canceled.
type Appointment struct {
	ID          uuid.UUID
	ProfessorID uuid.UUID
	StudentID   uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	IsCanceled  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
