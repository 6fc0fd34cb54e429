package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/campushours/officehours/internal/scheduling"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=student professor"`
}

type RegisterResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

type CreateWindowRequest struct {
	ProfessorID string    `json:"professor_id" validate:"required,uuid"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
}

type WindowResponse struct {
	ID          uuid.UUID `json:"id"`
	ProfessorID uuid.UUID `json:"professor_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type BookAppointmentRequest struct {
	ProfessorID string    `json:"professor_id" validate:"required,uuid"`
	StudentID   string    `json:"student_id" validate:"required,uuid"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
}

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	ProfessorID uuid.UUID `json:"professor_id"`
	StudentID   uuid.UUID `json:"student_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsCanceled  bool      `json:"is_canceled"`
}

type ErrorResponse struct {
	Error     string           `json:"error"`
	Details   string           `json:"details,omitempty"`
	Conflicts []WindowResponse `json:"conflicts,omitempty"`
}

func toWindowResponse(w scheduling.Window) WindowResponse {
	return WindowResponse{
		ID:          w.ID,
		ProfessorID: w.ProfessorID,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
	}
}

func toAppointmentResponse(a scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		ProfessorID: a.ProfessorID,
		StudentID:   a.StudentID,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		IsCanceled:  a.IsCanceled,
	}
}
