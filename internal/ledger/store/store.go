package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPayment reads a kas row. Amount and note are nullable in the source
// documents; a missing amount counts as zero rather than failing the scan.
func scanPayment(s scanner) (ledger.Payment, error) {
	var p ledger.Payment

	var amount sql.NullInt64

	var note sql.NullString

	if err := s.Scan(
		&p.ID, &p.StudentName, &amount, &p.Week, &note,
		&p.Date, &p.Month, &p.Year, &p.CreatedAt,
	); err != nil {
		return ledger.Payment{}, err
	}

	p.Amount = amount.Int64
	p.Note = note.String

	return p, nil
}

const paymentColumns = `id, student_name, amount, week, note, date, month, year, created_at`

func (s *Store) CreatePayment(ctx context.Context, p *ledger.Payment) error {
	p.ID = uuid.New()

	query := `
		INSERT INTO kas (id, student_name, amount, week, note, date, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.ID, p.StudentName, p.Amount, p.Week, nullString(p.Note),
		p.Date, p.Month, p.Year,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) CreatePayments(ctx context.Context, ps []*ledger.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO kas (id, student_name, amount, week, note, date, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range ps {
		p.ID = uuid.New()

		if err := stmt.QueryRowContext(ctx,
			p.ID, p.StudentName, p.Amount, p.Week, nullString(p.Note),
			p.Date, p.Month, p.Year,
		).Scan(&p.CreatedAt); err != nil {
			return fmt.Errorf("creating payment for %s: %w", p.StudentName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	return nil
}

func (s *Store) ListPayments(ctx context.Context) ([]ledger.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM kas ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var ps []ledger.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		ps = append(ps, p)
	}

	return ps, rows.Err()
}

// DeletePayment removes the row if it exists. Deleting a missing id is fine:
// the caller may be racing another admin.
func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	return nil
}

func (s *Store) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	e.ID = uuid.New()

	query := `
		INSERT INTO pengeluaran (id, description, amount, date, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.ID, e.Description, e.Amount, e.Date, e.Month, e.Year,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]ledger.Expense, error) {
	query := `
		SELECT id, description, amount, date, month, year, created_at
		FROM pengeluaran
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var es []ledger.Expense

	for rows.Next() {
		var e ledger.Expense

		var amount sql.NullInt64

		if err := rows.Scan(&e.ID, &e.Description, &amount, &e.Date, &e.Month, &e.Year, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		e.Amount = amount.Int64

		es = append(es, e)
	}

	return es, rows.Err()
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pengeluaran WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
