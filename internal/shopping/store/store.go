package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sekelas/kelasku/internal/shopping"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const itemColumns = `id, name, price, category, priority, link, description, quantity, status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*shopping.Item, error) {
	var item shopping.Item

	var priorityStr, statusStr string

	var link, description sql.NullString

	if err := s.Scan(
		&item.ID, &item.Name, &item.Price, &item.Category, &priorityStr,
		&link, &description, &item.Quantity, &statusStr,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	item.Priority = shopping.Priority(priorityStr)
	item.Status = shopping.Status(statusStr)
	item.Link = link.String
	item.Description = description.String

	return &item, nil
}

func (s *Store) CreateItem(ctx context.Context, item *shopping.Item) error {
	item.ID = uuid.New()

	query := `
		INSERT INTO shopping_items (id, name, price, category, priority, link, description, quantity, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		item.ID, item.Name, item.Price, item.Category, item.Priority,
		nullString(item.Link), nullString(item.Description), item.Quantity, item.Status,
	).Scan(&item.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*shopping.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM shopping_items WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shopping.ErrNotFound
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]*shopping.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM shopping_items ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*shopping.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// UpdateItem replaces all editable columns. Updating a vanished id surfaces
// ErrNotFound, unlike delete.
func (s *Store) UpdateItem(ctx context.Context, item *shopping.Item) error {
	query := `
		UPDATE shopping_items
		SET name = $1, price = $2, category = $3, priority = $4, link = $5,
			description = $6, quantity = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		item.Name, item.Price, item.Category, item.Priority, nullString(item.Link),
		nullString(item.Description), item.Quantity, item.Status, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return shopping.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
