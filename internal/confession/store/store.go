package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/confession"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateConfession(ctx context.Context, c *confession.Confession) error {
	query := `
		INSERT INTO confessions (message, name, kelas, mention_type, mention_target, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	var mentionType, mentionTarget sql.NullString

	if c.Mention != nil {
		mentionType = sql.NullString{String: string(c.Mention.Type), Valid: true}
		mentionTarget = sql.NullString{String: c.Mention.Target, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query,
		c.Message, c.Name, c.Kelas, mentionType, mentionTarget, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating confession: %w", err)
	}

	return nil
}

func (s *Store) ListConfessions(ctx context.Context, filter confession.ListFilter) ([]*confession.Confession, error) {
	query := `
		SELECT id, message, name, kelas, mention_type, mention_target, status, created_at
		FROM confessions
	`

	if !filter.IncludeDeleted {
		query += ` WHERE status != 'deleted'`
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing confessions: %w", err)
	}
	defer rows.Close()

	var cs []*confession.Confession

	for rows.Next() {
		var c confession.Confession

		var statusStr string

		var mentionType, mentionTarget sql.NullString

		if err := rows.Scan(
			&c.ID, &c.Message, &c.Name, &c.Kelas,
			&mentionType, &mentionTarget, &statusStr, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning confession: %w", err)
		}

		c.Status = confession.Status(statusStr)

		if mentionType.Valid {
			c.Mention = &confession.Mention{
				Type:   confession.MentionType(mentionType.String),
				Target: mentionTarget.String,
			}
		}

		cs = append(cs, &c)
	}

	return cs, rows.Err()
}

// SetStatus flips the lifecycle state. Missing ids are not an error: the
// confession may have been moderated concurrently.
func (s *Store) SetStatus(ctx context.Context, id uuid.UUID, status confession.Status) error {
	query := `UPDATE confessions SET status = $1 WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating confession status: %w", err)
	}

	return nil
}
