package kas

import (
	"time"

	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/currency"
	"github.com/sekelas/kelasku/internal/ledger"
)

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

func toPaymentResponse(p ledger.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		StudentName: p.StudentName,
		Amount:      p.Amount,
		Week:        p.Week,
		Note:        p.Note,
		Date:        p.Date,
		Month:       p.Month,
		Year:        p.Year,
		CreatedAt:   p.CreatedAt,
	}
}

func toPaymentResponseList(ps []ledger.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(ps))
	for i, p := range ps {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}

type studentSummaryResponse struct {
	Total          int64             `json:"total"`
	TotalFormatted string            `json:"total_formatted"`
	Payments       []paymentResponse `json:"payments"`
}

type summaryResponse struct {
	Month                 string                            `json:"month"`
	Year                  int                               `json:"year"`
	TotalIncome           int64                             `json:"total_income"`
	TotalIncomeFormatted  string                            `json:"total_income_formatted"`
	TotalExpense          int64                             `json:"total_expense"`
	TotalExpenseFormatted string                            `json:"total_expense_formatted"`
	Balance               int64                             `json:"balance"`
	BalanceFormatted      string                            `json:"balance_formatted"`
	TodayIncome           int64                             `json:"today_income"`
	TodayIncomeFormatted  string                            `json:"today_income_formatted"`
	PerStudent            map[string]studentSummaryResponse `json:"per_student"`
}

func toSummaryResponse(sum ledger.Summary) summaryResponse {
	perStudent := make(map[string]studentSummaryResponse, len(sum.PerStudent))

	for name, entry := range sum.PerStudent {
		perStudent[name] = studentSummaryResponse{
			Total:          entry.Total,
			TotalFormatted: currency.FormatIDR(entry.Total),
			Payments:       toPaymentResponseList(entry.Payments),
		}
	}

	return summaryResponse{
		Month:                 sum.Period.Month,
		Year:                  sum.Period.Year,
		TotalIncome:           sum.TotalIncome,
		TotalIncomeFormatted:  currency.FormatIDR(sum.TotalIncome),
		TotalExpense:          sum.TotalExpense,
		TotalExpenseFormatted: currency.FormatIDR(sum.TotalExpense),
		Balance:               sum.Balance,
		BalanceFormatted:      currency.FormatIDR(sum.Balance),
		TodayIncome:           sum.TodayIncome,
		TodayIncomeFormatted:  currency.FormatIDR(sum.TodayIncome),
		PerStudent:            perStudent,
	}
}
