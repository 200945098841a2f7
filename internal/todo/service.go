package todo

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrValidation = errors.New("validation failed")

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000

	DefaultListLimit = 100
	MaxListLimit     = 100
)

type Service interface {
	Create(ctx context.Context, userID int64, in CreateTodoInput) (*Todo, error)
	Get(ctx context.Context, id, userID int64) (*Todo, error)
	List(ctx context.Context, userID int64, f ListFilter) ([]Todo, error)
	Update(ctx context.Context, id, userID int64, in UpdateTodoInput) (*Todo, error)
	Complete(ctx context.Context, id, userID int64) (*Todo, error)
	Delete(ctx context.Context, id, userID int64) error
	Summarize(ctx context.Context, userID int64) (*Summary, error)
}

type service struct {
	repo TodoRepository
}

func NewService(repo TodoRepository) Service {
	return &service{repo: repo}
}

func validateTitle(title string) error {
	if n := len(title); n < 1 || n > maxTitleLen {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrValidation, maxTitleLen)
	}
	return nil
}

func validateDescription(desc *string) error {
	if desc != nil && len(*desc) > maxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrValidation, maxDescriptionLen)
	}
	return nil
}

func (s *service) Create(ctx context.Context, userID int64, in CreateTodoInput) (*Todo, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, priority)
	}

	// completed_at stays unset even when a todo is created already
	// completed; it is only stamped by the transition into that status.
	t := &Todo{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		UserID:      userID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *service) Get(ctx context.Context, id, userID int64) (*Todo, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *service) List(ctx context.Context, userID int64, f ListFilter) ([]Todo, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *f.Status)
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, *f.Priority)
	}
	return s.repo.List(ctx, userID, f)
}

func (s *service) Update(ctx context.Context, id, userID int64, in UpdateTodoInput) (*Todo, error) {
	existing, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		existing.Title = *in.Title
	}

	if in.Description != nil {
		if err := validateDescription(in.Description); err != nil {
			return nil, err
		}
		existing.Description = in.Description
	}

	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, *in.Priority)
		}
		existing.Priority = *in.Priority
	}

	if in.DueDate != nil {
		existing.DueDate = in.DueDate
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *in.Status)
		}
		existing.Status = *in.Status

		// One-way reset rule: the transition into completed stamps
		// completed_at once; any non-completed status clears it.
		if *in.Status == StatusCompleted {
			if existing.CompletedAt == nil {
				now := time.Now().UTC()
				existing.CompletedAt = &now
			}
		} else {
			existing.CompletedAt = nil
		}
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Complete forces the completed status and restamps completed_at on
// every call, matching the dedicated complete endpoint's semantics.
func (s *service) Complete(ctx context.Context, id, userID int64) (*Todo, error) {
	existing, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing.Status = StatusCompleted
	existing.CompletedAt = &now

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *service) Summarize(ctx context.Context, userID int64) (*Summary, error) {
	return s.repo.Summarize(ctx, userID, time.Now().UTC())
}
