package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sekelas/kelasku/internal/auth"
)

var validate = validator.New()

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type authErrorResponse struct {
	Kind    auth.ErrorKind `json:"kind"`
	Message string         `json:"message"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			status := http.StatusUnauthorized
			if authErr.Kind == auth.KindTooManyRequests {
				status = http.StatusTooManyRequests
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)

			if err := json.NewEncoder(w).Encode(authErrorResponse{Kind: authErr.Kind, Message: authErr.Error()}); err != nil {
				slog.Error("failed to encode response", "error", err)
			}

			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(loginResponse{Token: token}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// logout exists for symmetry with the sign-in form; sessions are stateless
// tokens the client simply discards.
func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
