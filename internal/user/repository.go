package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("username or email already registered")
)

const uniqueViolationCode = "23505"

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type repo struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) UserRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, email, hashed_password, full_name)
		VALUES ($1, LOWER($2), $3, $4)
		RETURNING id, is_active, created_at
	`
	row := r.db.QueryRow(ctx, query, u.Username, u.Email, u.HashedPassword, u.FullName)
	if err := row.Scan(&u.ID, &u.IsActive, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repo) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, hashed_password, full_name, is_active, created_at
		FROM users
		WHERE username = $1
		LIMIT 1
	`
	var u User
	row := r.db.QueryRow(ctx, query, username)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.FullName, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE username = $1 OR LOWER(email) = LOWER($2)
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
