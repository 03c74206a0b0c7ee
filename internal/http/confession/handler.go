package confession

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/confession"
)

type Handler struct {
	svc   *confession.Service
	admin func(http.Handler) http.Handler
}

func NewHandler(svc *confession.Service, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{svc: svc, admin: admin}
}

// Routes: submitting and reading the feed is open to everyone. The raw
// listing (deleted entries included) and moderation are admin-only.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.submit)
	r.Get("/", h.feed)
	r.With(h.admin).Get("/all", h.all)
	r.With(h.admin).Get("/count", h.count)
	r.With(h.admin).Delete("/{id}", h.delete)
}

type mentionRequest struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

type submitRequest struct {
	Message string          `json:"message"`
	Name    string          `json:"name"`
	Kelas   string          `json:"kelas"`
	Mention *mentionRequest `json:"mention"`
}

type mentionResponse struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

type confessionResponse struct {
	ID        uuid.UUID        `json:"id"`
	Message   string           `json:"message"`
	Name      string           `json:"name"`
	Kelas     string           `json:"kelas,omitempty"`
	Mention   *mentionResponse `json:"mention,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Status    string           `json:"status"`
}

func toResponse(c *confession.Confession) confessionResponse {
	resp := confessionResponse{
		ID:        c.ID,
		Message:   c.Message,
		Name:      c.Name,
		Kelas:     c.Kelas,
		CreatedAt: c.CreatedAt,
		Status:    string(c.Status),
	}
	if c.Mention != nil {
		resp.Mention = &mentionResponse{
			Type:   string(c.Mention.Type),
			Target: c.Mention.Target,
		}
	}

	return resp
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := confession.SubmitParams{
		Message: req.Message,
		Name:    req.Name,
		Kelas:   req.Kelas,
	}
	if req.Mention != nil {
		params.Mention = &confession.Mention{
			Type:   confession.MentionType(req.Mention.Type),
			Target: req.Mention.Target,
		}
	}

	c, err := h.svc.Submit(r.Context(), params)
	if err != nil {
		if errors.Is(err, confession.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "failed to submit confession", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, confession.ListFilter{})
}

func (h *Handler) all(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, confession.ListFilter{IncludeDeleted: true})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, filter confession.ListFilter) {
	cs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "failed to list confessions", http.StatusInternalServerError)
		return
	}

	resp := make([]confessionResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ActiveCount(r.Context())
	if err != nil {
		http.Error(w, "failed to count confessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]int{"count": n}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.SoftDelete(r.Context(), id); err != nil {
		http.Error(w, "failed to delete confession", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
