package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("item not found")
	ErrValidation = errors.New("validation failed")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=shopping
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ItemParams struct {
	Name        string
	Price       int64
	Category    string
	Priority    Priority
	Link        string
	Description string
	Quantity    int
}

func (p ItemParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	if p.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	switch p.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, p.Priority)
	}

	return nil
}

func (s *Service) Add(ctx context.Context, params ItemParams) (*Item, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	item := &Item{
		Name:        strings.TrimSpace(params.Name),
		Price:       params.Price,
		Category:    strings.TrimSpace(params.Category),
		Priority:    params.Priority,
		Link:        strings.TrimSpace(params.Link),
		Description: params.Description,
		Quantity:    params.Quantity,
		Status:      StatusPlanned,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.ListItems(ctx)
}

// Update replaces the editable fields of an item. Unlike delete, updating an
// item that vanished underneath the editor is an error the caller must see.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params ItemParams, status Status) (*Item, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	switch status {
	case StatusPlanned, StatusPurchased:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(params.Name)
	item.Price = params.Price
	item.Category = strings.TrimSpace(params.Category)
	item.Priority = params.Priority
	item.Link = strings.TrimSpace(params.Link)
	item.Description = params.Description
	item.Quantity = params.Quantity
	item.Status = status

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the item permanently. Idempotent.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}
