package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campushours/officehours/internal/identity"
	"github.com/campushours/officehours/internal/scheduling"
)

func TestAuthenticator_MissingToken(t *testing.T) {
	tokens := identity.NewTokenManager("test-secret", time.Hour)
	handler := Authenticator(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler reached without a token")
	}))

	for _, header := range []string{"", "Bearer ", "Basic abc123", "sometoken"} {
		req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	tokens := identity.NewTokenManager("test-secret", time.Hour)
	handler := Authenticator(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler reached with a forged token")
	}))

	forged, err := identity.NewTokenManager("other-secret", time.Hour).
		Issue(identity.Claims{Subject: uuid.New(), Role: identity.RoleStudent})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticator_PassesClaimsThrough(t *testing.T) {
	tokens := identity.NewTokenManager("test-secret", time.Hour)
	want := identity.Claims{Subject: uuid.New(), Role: identity.RoleProfessor}

	token, err := tokens.Issue(want)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	var got identity.Claims
	handler := Authenticator(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatalf("no claims in request context")
		}
		got = claims
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got != want {
		t.Fatalf("claims = %+v, want %+v", got, want)
	}
}

func TestWriteSchedulingError_StatusMapping(t *testing.T) {
	cases := []struct {
		kind scheduling.Kind
		want int
	}{
		{scheduling.KindForbidden, http.StatusForbidden},
		{scheduling.KindNotFound, http.StatusNotFound},
		{scheduling.KindInvalidInput, http.StatusBadRequest},
		{scheduling.KindConflict, http.StatusConflict},
		{scheduling.KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeSchedulingError(rec, &scheduling.Error{Kind: tc.kind, Message: "boom"})

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}

			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != string(tc.kind) {
				t.Fatalf("error code = %q, want %q", body.Error, tc.kind)
			}
		})
	}
}

func TestWriteSchedulingError_ConflictCarriesWindows(t *testing.T) {
	w := scheduling.Window{
		ID:          uuid.New(),
		ProfessorID: uuid.New(),
		StartTime:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	rec := httptest.NewRecorder()
	writeSchedulingError(rec, &scheduling.Error{
		Kind:      scheduling.KindConflict,
		Message:   "time slot conflicts found",
		Conflicts: []scheduling.Window{w},
	})

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(body.Conflicts))
	}
	if body.Conflicts[0].ID != w.ID || !body.Conflicts[0].StartTime.Equal(w.StartTime) {
		t.Fatalf("conflict payload = %+v, want window %s", body.Conflicts[0], w.ID)
	}
}

func TestWriteSchedulingError_UnclassifiedIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSchedulingError(rec, errors.New("pool exhausted"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
