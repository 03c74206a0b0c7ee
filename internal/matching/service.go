// Package matching canonicalizes free-form student names against the
// roster. The kas form keys payments to a student name with no referential
// enforcement, so imports and typos would otherwise create orphaned total
// buckets.
package matching

import (
	"context"
	"fmt"
	"strings"
)

type Repository interface {
	FindMatch(ctx context.Context, rawName string) (string, error)
	CreateMapping(ctx context.Context, rawName, studentName string) error
}

type Service struct {
	repo   Repository
	roster []string
}

func NewService(repo Repository, roster []string) *Service {
	return &Service{repo: repo, roster: roster}
}

// Suggest returns the roster name a raw name should be booked under, or
// empty when nothing matches. Exact (case-insensitive) roster hits win;
// otherwise previously learned mappings are consulted.
func (s *Service) Suggest(ctx context.Context, rawName string) (string, error) {
	rawName = strings.TrimSpace(rawName)

	for _, name := range s.roster {
		if strings.EqualFold(name, rawName) {
			return name, nil
		}
	}

	return s.repo.FindMatch(ctx, rawName)
}

// Learn remembers that a raw name belongs to a roster member, so the next
// import resolves it without asking.
func (s *Service) Learn(ctx context.Context, rawName, studentName string) error {
	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return fmt.Errorf("raw name is required")
	}

	for _, name := range s.roster {
		if name == studentName {
			return s.repo.CreateMapping(ctx, rawName, studentName)
		}
	}

	return fmt.Errorf("%q is not on the roster", studentName)
}
