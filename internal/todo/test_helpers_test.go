package todo

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskloop/todo-backend/internal/auth"
	"github.com/taskloop/todo-backend/internal/user"
)

// fakeRepo is an in-memory stand-in for the postgres repository. It
// mirrors the SQL behavior: owner filtering on every access, newest
// first ordering, and an updated_at stamp on every update.
type fakeRepo struct {
	todos  map[int64]*Todo
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{todos: make(map[int64]*Todo)}
}

func (r *fakeRepo) stamp(after time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(after) {
		now = after.Add(time.Nanosecond)
	}
	return now
}

func (r *fakeRepo) Create(_ context.Context, t *Todo) error {
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = r.stamp(time.Time{})
	t.UpdatedAt = t.CreatedAt

	clone := *t
	r.todos[t.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id, userID int64) (*Todo, error) {
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, userID int64, f ListFilter) ([]Todo, error) {
	var matched []Todo
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		matched = append(matched, *t)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if f.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r *fakeRepo) Update(_ context.Context, t *Todo) error {
	stored, ok := r.todos[t.ID]
	if !ok || stored.UserID != t.UserID {
		return ErrNotFound
	}
	t.UpdatedAt = r.stamp(stored.UpdatedAt)

	clone := *t
	r.todos[t.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id, userID int64) error {
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *fakeRepo) Summarize(_ context.Context, userID int64, now time.Time) (*Summary, error) {
	var s Summary
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		s.Total++
		switch t.Status {
		case StatusTodo:
			s.Todo++
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		}
		if t.Priority == PriorityHigh {
			s.HighPriority++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted {
			s.Overdue++
		}
	}
	return &s, nil
}

// withTestUser injects an authenticated user the way the auth
// middleware would, so handler tests can skip real tokens.
func withTestUser(id int64, username string) func(http.Handler) http.Handler {
	u := &user.User{ID: id, Username: username, Email: username + "@example.com", IsActive: true}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), u)))
		})
	}
}

func newTodoRouter(repo TodoRepository, userID int64, username string) http.Handler {
	h := NewHandler(NewService(repo))

	r := chi.NewRouter()
	r.Route("/todos", func(r chi.Router) {
		r.Use(withTestUser(userID, username))

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/summary", h.Summary)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/complete", h.Complete)
	})
	return r
}
