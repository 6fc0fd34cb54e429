package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campushours/officehours/internal/identity"
	redisclient "github.com/campushours/officehours/internal/redis"
)

type Service struct {
	repo   Repository
	dir    Directory
	locker redisclient.Locker
}

func NewService(repo Repository, dir Directory, locker redisclient.Locker) *Service {
	return &Service{repo: repo, dir: dir, locker: locker}
}

// CreateWindow publishes a new availability window. Professors may only
// publish their own time, and a new window must not overlap any existing
// window of the same professor.
func (s *Service) CreateWindow(ctx context.Context, professorID uuid.UUID, start, end time.Time, caller identity.Claims) (Window, error) {
	if caller.Role != identity.RoleProfessor {
		return Window{}, forbidden("only professors can add availability")
	}
	if caller.Subject != professorID {
		return Window{}, forbidden("cannot set availability for another professor")
	}
	if !start.Before(end) {
		return Window{}, invalidInput("start time must be earlier than end time")
	}

	existing, err := s.repo.FindOverlappingWindows(ctx, professorID, start, end)
	if err != nil {
		return Window{}, internal(err, "check overlapping windows")
	}
	if len(existing) > 0 {
		return Window{}, conflict("time slot conflicts found", existing)
	}

	created, err := s.repo.InsertWindow(ctx, Window{
		ProfessorID: professorID,
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		return Window{}, internal(err, "insert window")
	}
	return created, nil
}

// ListWindows returns a professor's open windows to a student. A professor
// with no windows is reported as NotFound rather than an empty list; the
// appointment listing below deliberately does the opposite.
func (s *Service) ListWindows(ctx context.Context, professorID uuid.UUID, caller identity.Claims) ([]Window, error) {
	if caller.Role != identity.RoleStudent {
		return nil, forbidden("only students can view availability")
	}

	role, ok, err := s.dir.FindRole(ctx, professorID)
	if err != nil {
		return nil, internal(err, "resolve professor")
	}
	if !ok || role != identity.RoleProfessor {
		return nil, notFound("professor not found")
	}

	windows, err := s.repo.ListWindows(ctx, professorID)
	if err != nil {
		return nil, internal(err, "list windows")
	}
	if len(windows) == 0 {
		return nil, notFound("no availability found for the professor")
	}
	return windows, nil
}

type BookRequest struct {
	ProfessorID uuid.UUID
	StudentID   uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
}

// Book validates a requested appointment and, under a per-professor lock,
// records it and consumes the booked span from the professor's availability.
// The containment check, the double-booking check, the appointment insert and
// the window reconciliation all run inside one transaction so a failure at
// any point leaves no partial state behind.
func (s *Service) Book(ctx context.Context, req BookRequest, caller identity.Claims) (Appointment, error) {
	if caller.Role != identity.RoleStudent {
		return Appointment{}, forbidden("only students can book appointments")
	}

	role, ok, err := s.dir.FindRole(ctx, req.ProfessorID)
	if err != nil {
		return Appointment{}, internal(err, "resolve professor")
	}
	if !ok || role != identity.RoleProfessor {
		return Appointment{}, notFound("professor not found")
	}

	if caller.Subject != req.StudentID {
		return Appointment{}, forbidden("you can only book appointments for yourself")
	}
	if !req.StartTime.Before(req.EndTime) {
		return Appointment{}, invalidInput("start time must be earlier than end time")
	}

	var created Appointment

	err = s.locker.WithProfessorLock(ctx, req.ProfessorID, func(lockCtx context.Context) error {
		return s.repo.InTx(lockCtx, func(tx Repository) error {
			windows, err := tx.ListWindows(lockCtx, req.ProfessorID)
			if err != nil {
				return internal(err, "list windows")
			}

			containing := false
			for _, w := range windows {
				if contains(w, req.StartTime, req.EndTime) {
					containing = true
					break
				}
			}
			if !containing {
				return conflict("requested time is outside the professor's availability slots; available slots are: "+formatSpans(windows), windows)
			}

			clashing, err := tx.FindOverlappingAppointments(lockCtx, req.ProfessorID, req.StartTime, req.EndTime)
			if err != nil {
				return internal(err, "check overlapping appointments")
			}
			if len(clashing) > 0 {
				return conflict("there is already an existing appointment during this time slot", nil)
			}

			appt, err := tx.InsertAppointment(lockCtx, Appointment{
				ProfessorID: req.ProfessorID,
				StudentID:   req.StudentID,
				StartTime:   req.StartTime,
				EndTime:     req.EndTime,
			})
			if err != nil {
				return internal(err, "insert appointment")
			}
			created = appt

			if err := reconcile(lockCtx, tx, windows, req.StartTime, req.EndTime); err != nil {
				return internal(err, "reconcile availability")
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return Appointment{}, conflict("professor's schedule is currently being booked, please retry", nil)
		}
		var e *Error
		if errors.As(err, &e) {
			return Appointment{}, err
		}
		return Appointment{}, internal(err, "book appointment")
	}

	return created, nil
}

// Cancel flips an appointment to canceled. Only the owning professor may
// cancel, and canceling an already-canceled appointment succeeds without
// touching anything. The freed span is intentionally NOT returned to the
// professor's availability.
func (s *Service) Cancel(ctx context.Context, appointmentID uuid.UUID, caller identity.Claims) (Appointment, error) {
	if caller.Role != identity.RoleProfessor {
		return Appointment{}, forbidden("only professors can cancel appointments")
	}

	appt, err := s.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return Appointment{}, notFound("appointment not found")
		}
		return Appointment{}, internal(err, "load appointment")
	}

	if appt.ProfessorID != caller.Subject {
		return Appointment{}, forbidden("you can only cancel your own appointments")
	}

	if appt.IsCanceled {
		return *appt, nil
	}

	canceled, err := s.repo.MarkCanceled(ctx, appointmentID)
	if err != nil {
		return Appointment{}, internal(err, "cancel appointment")
	}
	return *canceled, nil
}

// ListAppointments returns the caller's non-canceled appointments: a
// professor sees bookings against them, a student sees their own bookings.
// An empty schedule is an empty list, not an error.
func (s *Service) ListAppointments(ctx context.Context, caller identity.Claims) ([]Appointment, error) {
	var (
		appts []Appointment
		err   error
	)

	switch caller.Role {
	case identity.RoleProfessor:
		appts, err = s.repo.ListByProfessor(ctx, caller.Subject)
	case identity.RoleStudent:
		appts, err = s.repo.ListByStudent(ctx, caller.Subject)
	default:
		return nil, forbidden("unauthorized role")
	}

	if err != nil {
		return nil, internal(err, "list appointments")
	}
	if appts == nil {
		appts = []Appointment{}
	}
	return appts, nil
}

func formatSpans(windows []Window) string {
	if len(windows) == 0 {
		return "none"
	}
	spans := make([]string, len(windows))
	for i, w := range windows {
		spans[i] = fmt.Sprintf("%s - %s", w.StartTime.Format(time.RFC3339), w.EndTime.Format(time.RFC3339))
	}
	return strings.Join(spans, ", ")
}
