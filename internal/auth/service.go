package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskloop/todo-backend/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrValidation         = errors.New("validation failed")
)

// dummyHash is verified against when login hits an unknown username, so
// that the miss costs roughly the same as a real password check.
var dummyHash, _ = HashPassword("timing-equalizer")

// AuthService orchestrates registration and login over the credential
// store. Token minting stays in TokenService.
type AuthService interface {
	Register(ctx context.Context, in user.RegisterInput) (*user.User, error)
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

type authService struct {
	users user.UserRepository
}

func NewService(users user.UserRepository) AuthService {
	return &authService{users: users}
}

func validateRegisterInput(in user.RegisterInput) error {
	if n := len(in.Username); n < 3 || n > 50 {
		return fmt.Errorf("%w: username must be 3-50 characters", ErrValidation)
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, in user.RegisterInput) (*user.User, error) {
	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	// Single combined check: a collision on either field is rejected
	// identically.
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrAlreadyExists
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
		FullName:       in.FullName,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Unknown username and wrong password must be
			// indistinguishable, in message and in latency.
			VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *authService) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.users.FindByUsername(ctx, username)
}
