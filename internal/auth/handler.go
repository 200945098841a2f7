package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskloop/todo-backend/internal/user"
	"github.com/taskloop/todo-backend/pkg/utils"
)

type Handler struct {
	authService  AuthService
	tokenService TokenService
}

func NewHandler(svc AuthService, ts TokenService) *Handler {
	return &Handler{
		authService:  svc,
		tokenService: ts,
	}
}

// POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	u, err := h.authService.Register(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			utils.WriteError(w, http.StatusBadRequest, "username or email already registered")
		case errors.Is(err, ErrValidation):
			utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, "could not register user")
		}
		return
	}

	pair, err := h.tokenService.GeneratePair(u.Username, u.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not generate tokens")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, pair)
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	u, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.WriteError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "could not log in")
		return
	}

	pair, err := h.tokenService.GeneratePair(u.Username, u.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not generate tokens")
		return
	}

	utils.WriteJSON(w, http.StatusOK, pair)
}

// POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		utils.WriteError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	pair, err := h.tokenService.RefreshPair(req.RefreshToken)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, pair)
}

// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user.ToUserDTO(u))
}
