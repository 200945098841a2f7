package todo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers both a missing row and a row owned by someone
// else. The two cases must stay indistinguishable to callers.
var ErrNotFound = errors.New("todo not found")

func checkRowsAffectedOne(cmdTag pgconn.CommandTag) error {
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type TodoRepository interface {
	Create(ctx context.Context, t *Todo) error
	GetByID(ctx context.Context, id, userID int64) (*Todo, error)
	List(ctx context.Context, userID int64, f ListFilter) ([]Todo, error)
	Update(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, id, userID int64) error
	Summarize(ctx context.Context, userID int64, now time.Time) (*Summary, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) TodoRepository {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, t *Todo) error {
	query := `
		INSERT INTO todos (title, description, status, priority, due_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.UserID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id, userID int64) (*Todo, error) {
	query := `
		SELECT id, title, description, status, priority, due_date,
		       completed_at, user_id, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2
	`
	var t Todo
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CompletedAt,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepo) List(ctx context.Context, userID int64, f ListFilter) ([]Todo, error) {
	query := `
		SELECT id, title, description, status, priority, due_date,
		       completed_at, user_id, created_at, updated_at
		FROM todos
		WHERE user_id = $1
	`
	args := []any{userID}

	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Priority != nil {
		args = append(args, *f.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}

	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.Priority,
			&t.DueDate,
			&t.CompletedAt,
			&t.UserID,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *PostgresRepo) Update(ctx context.Context, t *Todo) error {
	query := `
		UPDATE todos
		SET title = $1,
		    description = $2,
		    status = $3,
		    priority = $4,
		    due_date = $5,
		    completed_at = $6,
		    updated_at = now()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRow(
		ctx,
		query,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.CompletedAt,
		t.ID,
		t.UserID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	return checkRowsAffectedOne(cmdTag)
}

func (r *PostgresRepo) Summarize(ctx context.Context, userID int64, now time.Time) (*Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'todo'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE priority = 'high'),
			COUNT(*) FILTER (WHERE due_date < $2 AND status <> 'completed')
		FROM todos
		WHERE user_id = $1
	`
	var s Summary
	err := r.db.QueryRow(ctx, query, userID, now).Scan(
		&s.Total,
		&s.Todo,
		&s.InProgress,
		&s.Completed,
		&s.HighPriority,
		&s.Overdue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
