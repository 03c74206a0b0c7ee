package note

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("note not found")
	ErrValidation = errors.New("validation failed")
)

type Repository interface {
	CreateNote(ctx context.Context, n *Note) error
	GetNote(ctx context.Context, id uuid.UUID) (*Note, error)
	ListNotes(ctx context.Context) ([]*Note, error)
	UpdateNote(ctx context.Context, n *Note) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, title, content string) (*Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	n := &Note{Title: strings.TrimSpace(title), Content: content}

	if err := s.repo.CreateNote(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.repo.GetNote(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Note, error) {
	return s.repo.ListNotes(ctx)
}

// Update replaces title and content. ErrNotFound when the note vanished.
func (s *Service) Update(ctx context.Context, id uuid.UUID, title, content string) (*Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	n, err := s.repo.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	n.Title = strings.TrimSpace(title)
	n.Content = content

	if err := s.repo.UpdateNote(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Delete is idempotent.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteNote(ctx, id)
}
