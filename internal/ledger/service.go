package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	CreatePayments(ctx context.Context, ps []*Payment) error
	ListPayments(ctx context.Context) ([]Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

type ExpenseRepository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	ListExpenses(ctx context.Context) ([]Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

// Service owns the kas and pengeluaran collections and derives the ledger
// read model from them.
type Service struct {
	payments PaymentRepository
	expenses ExpenseRepository
	roster   []string
	now      func() time.Time
}

func NewService(payments PaymentRepository, expenses ExpenseRepository, roster []string) *Service {
	return &Service{
		payments: payments,
		expenses: expenses,
		roster:   roster,
		now:      time.Now,
	}
}

// Roster returns the fixed list of enrolled students.
func (s *Service) Roster() []string {
	return s.roster
}

type PaymentParams struct {
	StudentName string
	Amount      int64
	Week        int
	Note        string
	Date        time.Time
	Month       string // derived from Date when empty
	Year        int    // derived from Date when zero
}

func (s *Service) RecordPayment(ctx context.Context, params PaymentParams) (*Payment, error) {
	p, err := s.paymentFromParams(params)
	if err != nil {
		return nil, err
	}

	if err := s.payments.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ImportPayments records a batch of payments, e.g. from a CSV upload. The
// whole batch is validated before anything is written.
func (s *Service) ImportPayments(ctx context.Context, params []PaymentParams) ([]*Payment, error) {
	if len(params) == 0 {
		return nil, nil
	}

	ps := make([]*Payment, len(params))

	for i, param := range params {
		p, err := s.paymentFromParams(param)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		ps[i] = p
	}

	if err := s.payments.CreatePayments(ctx, ps); err != nil {
		return nil, err
	}

	return ps, nil
}

func (s *Service) Payments(ctx context.Context) ([]Payment, error) {
	return s.payments.ListPayments(ctx)
}

// DeletePayment removes a payment. Deleting an id that no longer exists is
// not an error.
func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.payments.DeletePayment(ctx, id)
}

type ExpenseParams struct {
	Description string
	Amount      int64
	Date        time.Time
	Month       string
	Year        int
}

func (s *Service) RecordExpense(ctx context.Context, params ExpenseParams) (*Expense, error) {
	if strings.TrimSpace(params.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	if params.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrValidation)
	}

	month, year, err := resolvePeriod(params.Month, params.Year, params.Date)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		Description: strings.TrimSpace(params.Description),
		Amount:      params.Amount,
		Date:        params.Date,
		Month:       month,
		Year:        year,
	}

	if err := s.expenses.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Expenses(ctx context.Context) ([]Expense, error) {
	return s.expenses.ListExpenses(ctx)
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.expenses.DeleteExpense(ctx, id)
}

// Summarize loads the current snapshots and recomputes the read model for
// the period.
func (s *Service) Summarize(ctx context.Context, period Period) (Summary, error) {
	if !ValidMonth(period.Month) {
		return Summary{}, fmt.Errorf("%w: unknown month %q", ErrValidation, period.Month)
	}

	payments, err := s.payments.ListPayments(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing payments: %w", err)
	}

	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing expenses: %w", err)
	}

	return Aggregate(payments, expenses, period, s.roster, s.now()), nil
}

func (s *Service) paymentFromParams(params PaymentParams) (*Payment, error) {
	name := strings.TrimSpace(params.StudentName)
	if name == "" {
		return nil, fmt.Errorf("%w: student name is required", ErrValidation)
	}

	if params.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrValidation)
	}

	if params.Week < 1 || params.Week > 4 {
		return nil, fmt.Errorf("%w: week must be between 1 and 4", ErrValidation)
	}

	month, year, err := resolvePeriod(params.Month, params.Year, params.Date)
	if err != nil {
		return nil, err
	}

	return &Payment{
		StudentName: name,
		Amount:      params.Amount,
		Week:        params.Week,
		Note:        strings.TrimSpace(params.Note),
		Date:        params.Date,
		Month:       month,
		Year:        year,
	}, nil
}

func resolvePeriod(month string, year int, date time.Time) (string, int, error) {
	if month == "" {
		month = MonthName(date.Month())
	} else if !ValidMonth(month) {
		return "", 0, fmt.Errorf("%w: unknown month %q", ErrValidation, month)
	}

	if year == 0 {
		year = date.Year()
	}

	return month, year, nil
}
