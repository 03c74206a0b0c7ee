package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/importer"
	"github.com/sekelas/kelasku/internal/ledger"
	"github.com/sekelas/kelasku/internal/matching"
)

type Handler struct {
	parser    *importer.Parser
	ledgerSvc *ledger.Service
	matchSvc  *matching.Service
}

func NewHandler(parser *importer.Parser, ledgerSvc *ledger.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		parser:    parser,
		ledgerSvc: ledgerSvc,
		matchSvc:  matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type paymentResponse struct {
	ID          uuid.UUID `json:"id"`
	StudentName string    `json:"student_name"`
	Amount      int64     `json:"amount"`
	Week        int       `json:"week"`
	Note        string    `json:"note,omitempty"`
	Date        time.Time `json:"date"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Payments []paymentResponse `json:"payments"`
}

type paymentParamsDTO struct {
	StudentName string    `json:"student_name"`
	RawName     string    `json:"raw_name,omitempty"`
	Amount      int64     `json:"amount"`
	Week        int       `json:"week"`
	Note        string    `json:"note,omitempty"`
	Date        time.Time `json:"date"`
}

// importConflictResponse is returned when some rows name students that are
// neither on the roster nor covered by a learned mapping. The admin fixes
// the unresolved rows and posts the whole set back to /confirm.
type importConflictResponse struct {
	Resolved   []paymentParamsDTO `json:"resolved"`
	Unresolved []paymentParamsDTO `json:"unresolved"`
}

type mappingDTO struct {
	RawName     string `json:"raw_name"`
	StudentName string `json:"student_name"`
}

type confirmRequest struct {
	Params   []paymentParamsDTO `json:"params"`
	Mappings []mappingDTO       `json:"mappings"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		resolved   []ledger.PaymentParams
		unresolved []paymentParamsDTO
	)

	for _, p := range params {
		suggested, err := h.matchSvc.Suggest(r.Context(), p.StudentName)
		if err != nil || suggested == "" {
			unresolved = append(unresolved, toParamsDTO(p, p.StudentName))
			continue
		}

		p.StudentName = suggested
		resolved = append(resolved, p)
	}

	if len(unresolved) > 0 {
		resp := importConflictResponse{
			Resolved:   make([]paymentParamsDTO, 0, len(resolved)),
			Unresolved: unresolved,
		}
		for _, p := range resolved {
			resp.Resolved = append(resp.Resolved, toParamsDTO(p, ""))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	h.record(w, r, resolved)
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	for _, m := range req.Mappings {
		if err := h.matchSvc.Learn(r.Context(), m.RawName, m.StudentName); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	params := make([]ledger.PaymentParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, ledger.PaymentParams{
			StudentName: p.StudentName,
			Amount:      p.Amount,
			Week:        p.Week,
			Note:        p.Note,
			Date:        p.Date,
		})
	}

	h.record(w, r, params)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request, params []ledger.PaymentParams) {
	payments, err := h.ledgerSvc.ImportPayments(r.Context(), params)
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "failed to import payments", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(payments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(payments []*ledger.Payment) importSuccessResponse {
	responses := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, paymentResponse{
			ID:          p.ID,
			StudentName: p.StudentName,
			Amount:      p.Amount,
			Week:        p.Week,
			Note:        p.Note,
			Date:        p.Date,
			Month:       p.Month,
			Year:        p.Year,
			CreatedAt:   p.CreatedAt,
		})
	}

	return importSuccessResponse{
		Imported: len(responses),
		Payments: responses,
	}
}

func toParamsDTO(p ledger.PaymentParams, rawName string) paymentParamsDTO {
	return paymentParamsDTO{
		StudentName: p.StudentName,
		RawName:     rawName,
		Amount:      p.Amount,
		Week:        p.Week,
		Note:        p.Note,
		Date:        p.Date,
	}
}
