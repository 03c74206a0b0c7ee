package confession

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation failed")

// DefaultName is used when the submitter leaves the name field empty.
const DefaultName = "Anonymous"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=confession
type Repository interface {
	CreateConfession(ctx context.Context, c *Confession) error
	ListConfessions(ctx context.Context, filter ListFilter) ([]*Confession, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type ListFilter struct {
	// IncludeDeleted lifts the status != deleted filter for the raw
	// admin listing.
	IncludeDeleted bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type SubmitParams struct {
	Message string
	Name    string
	Kelas   string
	Mention *Mention
}

func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Confession, error) {
	message := strings.TrimSpace(params.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = DefaultName
	}

	if params.Mention != nil {
		switch params.Mention.Type {
		case MentionPeople, MentionKelas, MentionOther:
		default:
			return nil, fmt.Errorf("%w: unknown mention type %q", ErrValidation, params.Mention.Type)
		}
	}

	c := &Confession{
		Message: message,
		Name:    name,
		Kelas:   strings.TrimSpace(params.Kelas),
		Mention: params.Mention,
		Status:  StatusActive,
	}

	if err := s.repo.CreateConfession(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// List returns the public feed: active confessions only, unless the filter
// asks for the raw collection.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Confession, error) {
	return s.repo.ListConfessions(ctx, filter)
}

// SoftDelete flips the status to deleted. Like a hard delete, it is
// idempotent: flipping an already-deleted or missing confession is fine.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetStatus(ctx, id, StatusDeleted)
}

// ActiveCount is what the admin dashboard shows next to the feed.
func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	active, err := s.repo.ListConfessions(ctx, ListFilter{})
	if err != nil {
		return 0, err
	}

	return len(active), nil
}
