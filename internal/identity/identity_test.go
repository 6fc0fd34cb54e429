package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseRole(t *testing.T) {
	if role, err := ParseRole("student"); err != nil || role != RoleStudent {
		t.Fatalf("ParseRole(student) = %v, %v", role, err)
	}
	if role, err := ParseRole("professor"); err != nil || role != RoleProfessor {
		t.Fatalf("ParseRole(professor) = %v, %v", role, err)
	}

	if _, err := ParseRole("dean"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("ParseRole(dean) error = %v, want ErrUnknownRole", err)
	}
	if _, err := ParseRole(""); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("ParseRole(\"\") error = %v, want ErrUnknownRole", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	want := Claims{Subject: uuid.New(), Role: RoleProfessor}

	raw, err := tm.Issue(want)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := tm.Verify(raw)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != want {
		t.Fatalf("claims = %+v, want %+v", got, want)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewTokenManager("secret-a", time.Hour).Issue(Claims{Subject: uuid.New(), Role: RoleStudent})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)
	raw, err := tm.Issue(Claims{Subject: uuid.New(), Role: RoleStudent})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := tm.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := tm.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q) error = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash equals the plaintext")
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatalf("wrong password accepted")
	}
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Fatalf("malformed hash accepted")
	}
}
