package auth

import (
	"context"
	"strings"
	"time"

	"github.com/taskloop/todo-backend/internal/user"
)

// fakeUserRepo is an in-memory stand-in for the postgres repository.
type fakeUserRepo struct {
	users  map[string]*user.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || strings.EqualFold(existing.Email, u.Email) {
			return user.ErrAlreadyExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.Email = strings.ToLower(u.Email)
	u.IsActive = true
	u.CreatedAt = time.Now().UTC()

	clone := *u
	r.users[u.Username] = &clone
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) setActive(username string, active bool) {
	if u, ok := r.users[username]; ok {
		u.IsActive = active
	}
}
