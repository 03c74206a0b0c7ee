package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, rawName string) (string, error) {
	query := `
		SELECT student_name
		FROM name_mappings
		WHERE LOWER(raw_name) = LOWER($1)
		ORDER BY created_at DESC
		LIMIT 1
	`

	var student string

	err := s.db.QueryRowContext(ctx, query, rawName).Scan(&student)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return student, nil
}

func (s *Store) CreateMapping(ctx context.Context, rawName, studentName string) error {
	query := `
		INSERT INTO name_mappings (raw_name, student_name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (raw_name) DO UPDATE SET student_name = EXCLUDED.student_name
	`

	if _, err := s.db.ExecContext(ctx, query, rawName, studentName); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
