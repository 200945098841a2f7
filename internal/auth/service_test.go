package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/taskloop/todo-backend/internal/user"
)

func strPtr(s string) *string { return &s }

func registerInput(username, email string) user.RegisterInput {
	return user.RegisterInput{
		Username: username,
		Email:    email,
		Password: "Secret123",
		FullName: strPtr("Test User"),
	}
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, registerInput("alice", "alice@example.com"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if u.ID == 0 {
		t.Error("Register() did not assign an ID")
	}
	if !u.IsActive {
		t.Error("Register() should create an active user")
	}
	if u.HashedPassword == "Secret123" {
		t.Error("Register() stored the plaintext password")
	}
	if !VerifyPassword("Secret123", u.HashedPassword) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		in   user.RegisterInput
	}{
		{
			name: "username too short",
			in:   user.RegisterInput{Username: "al", Email: "a@example.com", Password: "Secret123"},
		},
		{
			name: "email without at sign",
			in:   user.RegisterInput{Username: "alice", Email: "not-an-email", Password: "Secret123"},
		},
		{
			name: "password too short",
			in:   user.RegisterInput{Username: "alice", Email: "a@example.com", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("alice", "alice@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Same username, different email.
	if _, err := svc.Register(ctx, registerInput("alice", "other@example.com")); !errors.Is(err, user.ErrAlreadyExists) {
		t.Errorf("Register(duplicate username) error = %v, want ErrAlreadyExists", err)
	}

	// Same email, different username.
	if _, err := svc.Register(ctx, registerInput("bob", "alice@example.com")); !errors.Is(err, user.ErrAlreadyExists) {
		t.Errorf("Register(duplicate email) error = %v, want ErrAlreadyExists", err)
	}

	// Email match is case-insensitive.
	if _, err := svc.Register(ctx, registerInput("carol", "Alice@Example.com")); !errors.Is(err, user.ErrAlreadyExists) {
		t.Errorf("Register(duplicate email, different case) error = %v, want ErrAlreadyExists", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("alice", "alice@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	u, err := svc.Authenticate(ctx, "alice", "Secret123")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("Authenticate() Username = %q, want %q", u.Username, "alice")
	}
}

func TestAuthenticateFailuresAreIdentical(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("alice", "alice@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Wrong password for a real user and a nonexistent user must fail
	// with the exact same error value.
	_, errWrongPassword := svc.Authenticate(ctx, "alice", "WrongPassword")
	_, errUnknownUser := svc.Authenticate(ctx, "mallory", "WrongPassword")

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Errorf("Authenticate(wrong password) error = %v, want ErrInvalidCredentials", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Errorf("Authenticate(unknown user) error = %v, want ErrInvalidCredentials", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Errorf("failure messages differ: %q vs %q", errWrongPassword, errUnknownUser)
	}
}
