package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskloop/todo-backend/internal/user"
	"github.com/taskloop/todo-backend/pkg/utils"
)

type ctxKey string

const ctxKeyUser ctxKey = "currentUser"

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(*user.User)
	return u, ok && u != nil
}

// Middleware resolves the bearer token to a concrete user record and
// stores it in the request context. Every failure short of an inactive
// account is a plain 401; the message never says which stage failed.
func Middleware(ts TokenService, svc AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				utils.WriteError(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}

			tokenStr := strings.TrimSpace(authHeader[len(prefix):])
			if tokenStr == "" {
				utils.WriteError(w, http.StatusUnauthorized, "empty bearer token")
				return
			}

			claims, err := ts.ParseAccessToken(tokenStr)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			u, err := svc.FindByUsername(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					utils.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				utils.WriteError(w, http.StatusInternalServerError, "could not resolve user")
				return
			}

			if !u.IsActive {
				utils.WriteError(w, http.StatusBadRequest, "inactive user")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), u)))
		})
	}
}
