package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/note"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateNote(ctx context.Context, n *note.Note) error {
	query := `
		INSERT INTO notes (title, content, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, n.Title, n.Content).Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("creating note: %w", err)
	}

	return nil
}

func (s *Store) GetNote(ctx context.Context, id uuid.UUID) (*note.Note, error) {
	query := `SELECT id, title, content, created_at, updated_at FROM notes WHERE id = $1`

	var n note.Note
	if err := s.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, note.ErrNotFound
		}

		return nil, fmt.Errorf("getting note: %w", err)
	}

	return &n, nil
}

func (s *Store) ListNotes(ctx context.Context) ([]*note.Note, error) {
	query := `SELECT id, title, content, created_at, updated_at FROM notes ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var ns []*note.Note

	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}

		ns = append(ns, &n)
	}

	return ns, rows.Err()
}

func (s *Store) UpdateNote(ctx context.Context, n *note.Note) error {
	query := `UPDATE notes SET title = $1, content = $2, updated_at = NOW() WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, n.Title, n.Content, n.ID)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return note.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	return nil
}
