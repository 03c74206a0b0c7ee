package kas

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/ledger"
)

var validate = validator.New()

type Handler struct {
	svc          *ledger.Service
	admin        func(http.Handler) http.Handler
	pollInterval time.Duration
}

func NewHandler(svc *ledger.Service, admin func(http.Handler) http.Handler, pollInterval time.Duration) *Handler {
	return &Handler{svc: svc, admin: admin, pollInterval: pollInterval}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/roster", h.roster)
	r.Get("/summary", h.summary)
	r.Get("/summary/stream", h.stream)
	r.With(h.admin).Delete("/{id}", h.delete)
}

type createPaymentRequest struct {
	StudentName string    `json:"student_name" validate:"required"`
	Amount      int64     `json:"amount" validate:"gte=0"`
	Week        int       `json:"week" validate:"gte=1,lte=4"`
	Note        string    `json:"note"`
	Date        time.Time `json:"date" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.RecordPayment(r.Context(), ledger.PaymentParams{
		StudentName: req.StudentName,
		Amount:      req.Amount,
		Week:        req.Week,
		Note:        req.Note,
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "failed to record payment", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toPaymentResponse(*p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.Payments(r.Context())
	if err != nil {
		http.Error(w, "failed to list payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPaymentResponseList(ps)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) roster(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.Roster()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		http.Error(w, "failed to delete payment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// periodFromQuery reads ?month=&year=, defaulting to the current period the
// way the ledger page opens on the current month.
func periodFromQuery(r *http.Request) ledger.Period {
	period := ledger.PeriodOf(time.Now())

	if m := r.URL.Query().Get("month"); m != "" {
		period.Month = m
	}

	if y := r.URL.Query().Get("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			period.Year = year
		}
	}

	return period
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summarize(r.Context(), periodFromQuery(r))
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "failed to summarize", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(sum)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// stream pushes the recomputed read model as server-sent events whenever a
// collection snapshot changes. The watcher is torn down when the client
// disconnects.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	period := periodFromQuery(r)
	if !ledger.ValidMonth(period.Month) {
		http.Error(w, fmt.Sprintf("unknown month %q", period.Month), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	watcher := h.svc.Watch(r.Context(), period, h.pollInterval)
	defer watcher.Close()

	for {
		select {
		case <-r.Context().Done():
			return
		case sum, ok := <-watcher.Summaries():
			if !ok {
				return
			}

			data, err := json.Marshal(toSummaryResponse(sum))
			if err != nil {
				slog.Error("failed to encode summary event", "error", err)
				return
			}

			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}

			flusher.Flush()
		}
	}
}
