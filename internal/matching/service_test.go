package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekelas/kelasku/internal/matching"
)

// fakeRepo is a simple in-memory mapping table.
type fakeRepo struct {
	mappings map[string]string
}

func (f *fakeRepo) FindMatch(_ context.Context, rawName string) (string, error) {
	return f.mappings[rawName], nil
}

func (f *fakeRepo) CreateMapping(_ context.Context, rawName, studentName string) error {
	f.mappings[rawName] = studentName
	return nil
}

func TestService_Suggest(t *testing.T) {
	repo := &fakeRepo{mappings: map[string]string{"alicia p.": "Alicia"}}
	svc := matching.NewService(repo, []string{"Alicia", "Dara"})

	t.Run("ExactRosterMatchWins", func(t *testing.T) {
		got, err := svc.Suggest(context.Background(), " alicia ")
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got)
	})

	t.Run("LearnedMapping", func(t *testing.T) {
		got, err := svc.Suggest(context.Background(), "alicia p.")
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		got, err := svc.Suggest(context.Background(), "Zzz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestService_Learn(t *testing.T) {
	repo := &fakeRepo{mappings: map[string]string{}}
	svc := matching.NewService(repo, []string{"Alicia", "Dara"})

	require.NoError(t, svc.Learn(context.Background(), "dara s", "Dara"))
	assert.Equal(t, "Dara", repo.mappings["dara s"])

	assert.Error(t, svc.Learn(context.Background(), "x", "NotOnRoster"))
	assert.Error(t, svc.Learn(context.Background(), "  ", "Dara"))
}
