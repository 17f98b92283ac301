package auth

import (
	"errors"
	"testing"
	"time"
)

func testService() *Service {
	return NewService(NewMemoryStore(), "test-secret-at-least-32-characters!!", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	s := testService()

	if err := s.Register("alice", "hunter2"); err != nil {
		t.Fatal(err)
	}

	token, err := s.Login("alice", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	subject, err := s.Validate(token)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "alice" {
		t.Errorf("subject = %q, want alice", subject)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := testService()
	if err := s.Register("alice", "hunter2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("alice", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("error = %v, want ErrUsernameTaken", err)
	}
}

func TestRegister_RejectsEmptyFields(t *testing.T) {
	s := testService()
	if err := s.Register("", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("empty username error = %v, want ErrInvalidCredentials", err)
	}
	if err := s.Register("bob", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("empty password error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := testService()
	s.Register("alice", "hunter2")

	if _, err := s.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.Login("nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidate_RejectsGarbageAndForeignTokens(t *testing.T) {
	s := testService()

	if _, err := s.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token error = %v, want ErrInvalidToken", err)
	}

	other := NewService(NewMemoryStore(), "a-different-secret-also-32-chars!!!!", time.Hour)
	other.Register("alice", "hunter2")
	foreign, err := other.Login("alice", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Validate(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign-signed token error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	s := NewService(NewMemoryStore(), "test-secret-at-least-32-characters!!", -time.Minute)
	s.Register("alice", "hunter2")
	token, err := s.Login("alice", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}
