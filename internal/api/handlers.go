package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/campushours/officehours/internal/identity"
	"github.com/campushours/officehours/internal/scheduling"
	"github.com/campushours/officehours/internal/user"
)

func registerHandler(svc *user.Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		role, err := identity.ParseRole(req.Role)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_role", "role must be student or professor")
			return
		}

		u, err := svc.Register(r.Context(), req.Username, req.Password, role)
		if err != nil {
			if errors.Is(err, user.ErrUsernameTaken) {
				writeError(w, http.StatusConflict, "username_taken", "username already exists")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			ID:       u.ID,
			Username: u.Username,
			Role:     string(u.Role),
		})
	}
}

func loginHandler(svc *user.Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		token, role, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrBadCredentials) {
				writeError(w, http.StatusBadRequest, "invalid_credentials", "invalid credentials")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{AccessToken: token, Role: string(role)})
	}
}

func createWindowHandler(svc *scheduling.Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		var req CreateWindowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		professorID, err := uuid.Parse(req.ProfessorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professor_id", "professor_id must be a valid UUID")
			return
		}

		win, err := svc.CreateWindow(r.Context(), professorID, req.StartTime, req.EndTime, claims)
		if err != nil {
			writeSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toWindowResponse(win))
	}
}

func listWindowsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		professorID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professor_id", "id must be a valid UUID")
			return
		}

		windows, err := svc.ListWindows(r.Context(), professorID, claims)
		if err != nil {
			writeSchedulingError(w, err)
			return
		}

		resp := make([]WindowResponse, len(windows))
		for i, win := range windows {
			resp[i] = toWindowResponse(win)
		}
		writeJSON(w, http.StatusOK, map[string]any{"availability": resp})
	}
}

func bookAppointmentHandler(svc *scheduling.Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		professorID, err := uuid.Parse(req.ProfessorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_professor_id", "professor_id must be a valid UUID")
			return
		}
		studentID, err := uuid.Parse(req.StudentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_student_id", "student_id must be a valid UUID")
			return
		}

		appt, err := svc.Book(r.Context(), scheduling.BookRequest{
			ProfessorID: professorID,
			StudentID:   studentID,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
		}, claims)
		if err != nil {
			writeSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func cancelAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.Cancel(r.Context(), id, claims)
		if err != nil {
			writeSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func listAppointmentsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		appts, err := svc.ListAppointments(r.Context(), claims)
		if err != nil {
			writeSchedulingError(w, err)
			return
		}

		resp := make([]AppointmentResponse, len(appts))
		for i, appt := range appts {
			resp[i] = toAppointmentResponse(appt)
		}
		writeJSON(w, http.StatusOK, map[string]any{"appointments": resp})
	}
}
